// Package vcs stages and commits the memory directory with go-git.
//
// Every operation here is best effort from the caller's point of view: a
// missing repository or an empty stage is reported through sentinel errors
// that the reflection pipeline logs and ignores.
package vcs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	// ErrNotRepository indicates the project is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")

	// ErrOutsideRepository indicates the directory to commit is not inside
	// the work tree of the project repository.
	ErrOutsideRepository = errors.New("directory outside repository")

	// ErrNothingStaged indicates staging left nothing to commit under the
	// directory.
	ErrNothingStaged = errors.New("nothing staged")
)

// Fallback identity when git config has no user.
const (
	DefaultAuthorName  = "autoreflect"
	DefaultAuthorEmail = "autoreflect@localhost"
)

// Committer commits one directory of a repository.
type Committer struct {
	now func() time.Time
}

// NewCommitter returns a committer using the wall clock.
func NewCommitter() *Committer {
	return &Committer{now: time.Now}
}

// CommitDir stages dir and commits it with message. projectDir locates the
// repository; parent directories are searched for .git. Anything the user
// had already staged is committed too.
func (c *Committer) CommitDir(projectDir, dir, message string) (plumbing.Hash, error) {
	repo, err := git.PlainOpenWithOptions(projectDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return plumbing.ZeroHash, fmt.Errorf("%w: %s", ErrNotRepository, projectDir)
		}
		return plumbing.ZeroHash, fmt.Errorf("opening repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return plumbing.ZeroHash, fmt.Errorf("%w: bare repository", ErrNotRepository)
		}
		return plumbing.ZeroHash, fmt.Errorf("opening worktree: %w", err)
	}

	rel, err := relativeTo(wt.Filesystem.Root(), dir)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if _, err := wt.Add(rel); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("staging %s: %w", rel, err)
	}

	staged, err := stagedUnder(wt, rel)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if !staged {
		return plumbing.ZeroHash, fmt.Errorf("%w: %s", ErrNothingStaged, rel)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: c.signature(repo),
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("committing: %w", err)
	}
	return hash, nil
}

// relativeTo returns dir relative to root in slash form.
func relativeTo(root, dir string) (string, error) {
	root = resolve(root)
	dir = resolve(dir)

	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepository, dir)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepository, dir)
	}
	return filepath.ToSlash(rel), nil
}

func resolve(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// stagedUnder reports whether the index differs from HEAD for any path
// under rel.
func stagedUnder(wt *git.Worktree, rel string) (bool, error) {
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading status: %w", err)
	}

	prefix := strings.TrimSuffix(rel, "/") + "/"
	for path, st := range status {
		if rel != "." && !strings.HasPrefix(path, prefix) {
			continue
		}
		if st.Staging != git.Unmodified && st.Staging != git.Untracked {
			return true, nil
		}
	}
	return false, nil
}

// signature resolves the author from local then global git config.
func (c *Committer) signature(repo *git.Repository) *object.Signature {
	sig := &object.Signature{
		Name:  DefaultAuthorName,
		Email: DefaultAuthorEmail,
		When:  c.now(),
	}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
