package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Allowlist holds content patterns that are never redacted.
type Allowlist struct {
	Regexes   []string
	StopWords []string
}

// allowlistFile mirrors the [allowlist] table of a .gitleaks.toml file.
type allowlistFile struct {
	Allowlist struct {
		Description string
		Regexes     []string
		StopWords   []string
	}
}

// LoadAllowlists loads and merges allowlist files. Empty paths and missing
// files are skipped; an unparsable file or pattern is an error.
func LoadAllowlists(paths ...string) (*Allowlist, error) {
	merged := &Allowlist{}

	for _, p := range paths {
		if p == "" {
			continue
		}
		al, err := loadTOML(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		merged.Regexes = append(merged.Regexes, al.Regexes...)
		merged.StopWords = append(merged.StopWords, al.StopWords...)
	}

	return merged, nil
}

// Empty reports whether the allowlist has no entries.
func (a *Allowlist) Empty() bool {
	return a == nil || (len(a.Regexes) == 0 && len(a.StopWords) == 0)
}

func loadTOML(path string) (*Allowlist, error) {
	var file allowlistFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTOML, path, err)
	}

	for _, pattern := range file.Allowlist.Regexes {
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, fmt.Errorf("%w: %q in %s: %v", ErrInvalidRegex, pattern, path, err)
		}
	}

	return &Allowlist{
		Regexes:   file.Allowlist.Regexes,
		StopWords: file.Allowlist.StopWords,
	}, nil
}
