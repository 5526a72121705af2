package secrets

import (
	"fmt"
	"regexp"

	gitleaksConfig "github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"
	gitleaksRegexp "github.com/zricethezav/gitleaks/v8/regexp"
)

// Finding is a detected secret.
type Finding struct {
	RuleID string
	Secret string
}

// Detector scans text with the default Gitleaks rules plus an allowlist.
// Building one compiles several hundred rules; reuse it within a run.
type Detector struct {
	gl *detect.Detector
}

// NewDetector creates a detector. allowlist may be nil.
func NewDetector(allowlist *Allowlist) (*Detector, error) {
	gl, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("creating gitleaks detector: %w", err)
	}

	if !allowlist.Empty() {
		if err := applyAllowlist(&gl.Config, allowlist); err != nil {
			return nil, err
		}
	}

	return &Detector{gl: gl}, nil
}

// Detect returns the secrets found in content.
func (d *Detector) Detect(content string) []Finding {
	found := d.gl.DetectString(content)

	out := make([]Finding, 0, len(found))
	for _, f := range found {
		if f.Secret == "" {
			continue
		}
		out = append(out, Finding{RuleID: f.RuleID, Secret: f.Secret})
	}
	return out
}

// applyAllowlist appends a global allowlist entry to the Gitleaks config.
func applyAllowlist(cfg *gitleaksConfig.Config, allowlist *Allowlist) error {
	global := &gitleaksConfig.Allowlist{
		Description: "autoreflect project allowlist",
		StopWords:   allowlist.StopWords,
	}

	for _, pattern := range allowlist.Regexes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidRegex, pattern, err)
		}
		global.Regexes = append(global.Regexes, (*gitleaksRegexp.Regexp)(re))
	}

	cfg.Allowlists = append(cfg.Allowlists, global)
	return nil
}
