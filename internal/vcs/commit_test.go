package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateGitConfig keeps the developer's global git identity out of tests.
func isolateGitConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testCommitter() *Committer {
	return &Committer{now: func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }}
}

func TestCommitDir_CommitsMemoryDirectory(t *testing.T) {
	isolateGitConfig(t)
	root, repo := initRepo(t)
	memDir := filepath.Join(root, ".claude-project", "memory")
	writeFile(t, filepath.Join(memDir, "LEARNINGS.md"), "# Session Learnings\n")
	writeFile(t, filepath.Join(root, "unrelated.txt"), "not staged")

	hash, err := testCommitter().CommitDir(root, memDir, "reflect(auto): capture 1 session learning(s)")
	require.NoError(t, err)
	require.False(t, hash.IsZero())

	commit, err := repo.CommitObject(hash)
	require.NoError(t, err)
	assert.Equal(t, "reflect(auto): capture 1 session learning(s)", commit.Message)
	assert.Equal(t, DefaultAuthorName, commit.Author.Name)
	assert.Equal(t, DefaultAuthorEmail, commit.Author.Email)

	_, err = commit.File(".claude-project/memory/LEARNINGS.md")
	assert.NoError(t, err)
	_, err = commit.File("unrelated.txt")
	assert.ErrorIs(t, err, object.ErrFileNotFound)
}

func TestCommitDir_NothingStagedWhenUnchanged(t *testing.T) {
	isolateGitConfig(t)
	root, _ := initRepo(t)
	memDir := filepath.Join(root, ".claude-project", "memory")
	writeFile(t, filepath.Join(memDir, "LEARNINGS.md"), "v1\n")

	c := testCommitter()
	_, err := c.CommitDir(root, memDir, "first")
	require.NoError(t, err)

	_, err = c.CommitDir(root, memDir, "second")
	assert.ErrorIs(t, err, ErrNothingStaged)

	writeFile(t, filepath.Join(memDir, "LEARNINGS.md"), "v1\nv2\n")
	_, err = c.CommitDir(root, memDir, "third")
	assert.NoError(t, err)
}

func TestCommitDir_FindsRepositoryFromSubdirectory(t *testing.T) {
	isolateGitConfig(t)
	root, _ := initRepo(t)
	project := filepath.Join(root, "services", "api")
	memDir := filepath.Join(project, ".claude-project", "memory")
	writeFile(t, filepath.Join(memDir, "LEARNINGS.md"), "x\n")

	_, err := testCommitter().CommitDir(project, memDir, "msg")
	assert.NoError(t, err)
}

func TestCommitDir_NotRepository(t *testing.T) {
	isolateGitConfig(t)
	dir := t.TempDir()
	memDir := filepath.Join(dir, ".claude-project", "memory")
	writeFile(t, filepath.Join(memDir, "LEARNINGS.md"), "x\n")

	_, err := testCommitter().CommitDir(dir, memDir, "msg")
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestCommitDir_OutsideRepository(t *testing.T) {
	isolateGitConfig(t)
	root, _ := initRepo(t)
	elsewhere := filepath.Join(t.TempDir(), "memory")
	writeFile(t, filepath.Join(elsewhere, "LEARNINGS.md"), "x\n")

	_, err := testCommitter().CommitDir(root, elsewhere, "msg")
	assert.ErrorIs(t, err, ErrOutsideRepository)
}

func TestCommitDir_AuthorFromRepositoryConfig(t *testing.T) {
	isolateGitConfig(t)
	root, repo := initRepo(t)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Dana Reviewer"
	cfg.User.Email = "dana@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	memDir := filepath.Join(root, ".claude", "base", "memory")
	writeFile(t, filepath.Join(memDir, "LEARNINGS.md"), "x\n")

	hash, err := testCommitter().CommitDir(root, memDir, "msg")
	require.NoError(t, err)

	commit, err := repo.CommitObject(hash)
	require.NoError(t, err)
	assert.Equal(t, "Dana Reviewer", commit.Author.Name)
	assert.Equal(t, "dana@example.com", commit.Author.Email)
}

func TestRelativeTo(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))

	rel, err := relativeTo(root, filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "a/b", rel)

	_, err = relativeTo(filepath.Join(root, "a"), root)
	assert.ErrorIs(t, err, ErrOutsideRepository)
}
