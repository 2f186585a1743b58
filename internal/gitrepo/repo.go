package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// logFormat separates fields with US (0x1f) and records with RS (0x1e) so
// multi-line bodies survive parsing.
const logFormat = "--format=%H%x1f%an%x1f%aI%x1f%B%x1e"

type RepoConfig struct {
	Path    string
	Timeout time.Duration // default: 30s
}

// Repo implements Backend by shelling out to the git binary.
type Repo struct {
	cfg    RepoConfig
	runner Runner
}

func New(cfg RepoConfig) *Repo {
	if cfg.Path == "" {
		cfg.Path = "."
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Repo{cfg: cfg, runner: Runner{Timeout: cfg.Timeout}}
}

type Runner struct {
	Timeout time.Duration
}

func (r Runner) Git(ctx context.Context, dir string, args ...string) (string, error) {
	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir
	c.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_PAGER=cat")
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Start(); err != nil {
		return "", formatGitError(args, err, stderr.String())
	}
	done := make(chan error, 1)
	go func() { done <- c.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return "", formatGitError(args, err, stderr.String())
		}
		return stdout.String(), nil
	case <-time.After(r.Timeout):
		_ = c.Process.Kill()
		<-done
		return "", formatGitTimeoutError(args, r.Timeout, stderr.String())
	case <-ctx.Done():
		_ = c.Process.Kill()
		<-done
		return "", formatGitContextError(args, ctx.Err(), stderr.String())
	}
}

func formatGitError(args []string, cause error, stderr string) error {
	cmd := strings.Join(args, " ")
	stderr = strings.TrimSpace(stderr)
	if stderr != "" {
		return fmt.Errorf("git %s: %w: %s", cmd, cause, stderr)
	}
	return fmt.Errorf("git %s: %w", cmd, cause)
}

func formatGitTimeoutError(args []string, timeout time.Duration, stderr string) error {
	return formatGitError(args, fmt.Errorf("command timed out after %s", timeout), stderr)
}

func formatGitContextError(args []string, cause error, stderr string) error {
	if cause == nil {
		cause = errors.New("context canceled")
	}
	return formatGitError(args, cause, stderr)
}

// exitCode reports the process exit status wrapped in err, or -1.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Run is a helper to execute arbitrary git subcommands in the repo path.
func (r *Repo) Run(ctx context.Context, args ...string) (string, error) {
	return r.runner.Git(ctx, r.cfg.Path, args...)
}

// CurrentBranch returns the short name of the branch HEAD points to. It works
// on unborn branches and fails with ErrDetachedHead when HEAD is detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		if exitCode(err) == 1 {
			return "", ErrDetachedHead
		}
		return "", err
	}
	name := strings.TrimSpace(out)
	if name == "" {
		return "", ErrDetachedHead
	}
	return name, nil
}

// RefExists probes whether ref names a commit without walking any history.
func (r *Repo) RefExists(ctx context.Context, ref string) (bool, error) {
	if strings.TrimSpace(ref) == "" || checkRef(ref) != nil {
		return false, nil
	}
	_, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, err
}

// LogRange lists commits reachable from branch but not from base, newest
// first, capped at max. Total is the uncapped match count.
func (r *Repo) LogRange(ctx context.Context, base, branch string, max int) (LogResult, error) {
	if err := checkRef(base, branch); err != nil {
		return LogResult{}, err
	}
	return r.log(ctx, base+".."+branch, max)
}

// LogRecent lists the most recent max commits reachable from ref.
func (r *Repo) LogRecent(ctx context.Context, ref string, max int) (LogResult, error) {
	if err := checkRef(ref); err != nil {
		return LogResult{}, err
	}
	return r.log(ctx, ref, max)
}

func (r *Repo) log(ctx context.Context, revision string, max int) (LogResult, error) {
	args := []string{"log", logFormat}
	if max > 0 {
		args = append(args, "--max-count="+strconv.Itoa(max))
	}
	args = append(args, revision, "--")
	out, err := r.Run(ctx, args...)
	if err != nil {
		return LogResult{}, err
	}
	commits, err := parseLog(out)
	if err != nil {
		return LogResult{}, err
	}

	countOut, err := r.Run(ctx, "rev-list", "--count", revision, "--")
	if err != nil {
		return LogResult{}, err
	}
	total, err := strconv.Atoi(strings.TrimSpace(countOut))
	if err != nil {
		return LogResult{}, fmt.Errorf("parse rev-list count %q: %w", strings.TrimSpace(countOut), err)
	}
	return LogResult{Commits: commits, Total: total}, nil
}

// ParentDiff returns per-file numstat between hash and its first parent. Root
// commits fail because hash~1 does not resolve.
func (r *Repo) ParentDiff(ctx context.Context, hash string) ([]FileStat, error) {
	if err := checkRef(hash); err != nil {
		return nil, err
	}
	out, err := r.Run(ctx, "-c", "core.quotepath=off", "diff", "--numstat", "--no-color", "--no-ext-diff", hash+"~1", hash, "--")
	if err != nil {
		return nil, err
	}
	return parseNumstat(out)
}

// RemoteURL returns the fetch URL configured for the named remote.
func (r *Repo) RemoteURL(ctx context.Context, name string) (string, error) {
	out, err := r.Run(ctx, "remote", "get-url", name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
