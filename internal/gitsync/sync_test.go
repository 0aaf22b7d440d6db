// SPDX-License-Identifier: MPL-2.0

package gitsync

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
)

type fakeRunner struct {
	calls   []string
	failOn  map[string]error
	outputs map[string]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		failOn:  map[string]error{},
		outputs: map[string]string{},
	}
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) error {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	return f.failOn[key]
}

func (f *fakeRunner) Output(_ context.Context, _ string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if err := f.failOn[key]; err != nil {
		return "", err
	}
	return f.outputs[key], nil
}

func (f *fakeRunner) called(key string) bool {
	for _, call := range f.calls {
		if call == key {
			return true
		}
	}
	return false
}

func (f *fakeRunner) calledPrefix(prefix string) bool {
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// initClone creates a real empty git repository so ensureClone recognizes an
// existing working copy.
func initClone(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "KernelSU")
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSync_BranchCheckoutAndPull(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	lister := &fakeLister{refs: RemoteRefs{Branches: []string{"dev"}}}
	syncer := New(runner, lister, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{
		RepoURL:  "url",
		CloneDir: initClone(t),
		Target:   "dev",
	})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if result.Kind != RefKindBranch || result.Ref != "dev" || result.FellBack {
		t.Errorf("result = %+v, want branch dev without fallback", result)
	}
	for _, want := range []string{"stash", "fetch --all --tags", "checkout dev", "pull origin dev"} {
		if !runner.called(want) {
			t.Errorf("expected git %q to run, calls: %v", want, runner.calls)
		}
	}
	if runner.calledPrefix("clone") {
		t.Error("existing clone must not be re-cloned")
	}
}

func TestSync_BranchPullFailureFallsBack(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	runner.failOn["pull origin dev"] = errors.New("diverged")
	runner.outputs["describe --tags --abbrev=0"] = "v1.2.0"
	lister := &fakeLister{refs: RemoteRefs{Branches: []string{"dev"}}}
	syncer := New(runner, lister, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t), Target: "dev"})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if !result.FellBack || result.Ref != "v1.2.0" {
		t.Errorf("result = %+v, want fallback to v1.2.0", result)
	}
	if !runner.called("checkout v1.2.0") {
		t.Errorf("expected fallback tag checkout, calls: %v", runner.calls)
	}
}

func TestSync_TagPrefersQualifiedRef(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	lister := &fakeLister{refs: RemoteRefs{Tags: []string{"v2.0.0"}}}
	syncer := New(runner, lister, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t), Target: "v2.0.0"})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if result.Kind != RefKindTag || result.Ref != "v2.0.0" {
		t.Errorf("result = %+v, want tag v2.0.0", result)
	}
	if !runner.called("checkout refs/tags/v2.0.0") {
		t.Errorf("expected qualified tag checkout first, calls: %v", runner.calls)
	}
	if runner.called("checkout v2.0.0") {
		t.Error("bare-name retry should not run when the qualified ref succeeds")
	}
}

func TestSync_TagBareNameRetry(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	runner.failOn["checkout refs/tags/v2.0.0"] = errors.New("unknown ref")
	lister := &fakeLister{refs: RemoteRefs{Tags: []string{"v2.0.0"}}}
	syncer := New(runner, lister, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t), Target: "v2.0.0"})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if result.FellBack || result.Ref != "v2.0.0" {
		t.Errorf("result = %+v, want bare-name checkout without fallback", result)
	}
	if !runner.called("checkout v2.0.0") {
		t.Errorf("expected bare-name retry, calls: %v", runner.calls)
	}
}

func TestSync_NoTargetGoesStraightToLatestTag(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	runner.outputs["describe --tags --abbrev=0"] = "v0.5.1"
	syncer := New(runner, &fakeLister{}, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t)})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if result.Kind != RefKindNone || !result.FellBack || result.Ref != "v0.5.1" {
		t.Errorf("result = %+v, want latest-tag fallback v0.5.1", result)
	}
}

func TestSync_CommitCheckout(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	lister := &fakeLister{err: errors.New("must not be called")}
	syncer := New(runner, lister, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t), Target: "abc1234"})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if result.Kind != RefKindCommit || result.Ref != "abc1234" {
		t.Errorf("result = %+v, want commit abc1234", result)
	}
	if lister.calls != 0 {
		t.Error("commit targets must not query the remote")
	}
}

func TestSync_AutoDetachedHeadSkipsPull(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	runner.failOn["symbolic-ref -q HEAD"] = errors.New("detached")
	syncer := New(runner, &fakeLister{}, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t), Target: "HEAD~1"})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if result.Kind != RefKindAuto || result.Ref != "HEAD~1" || result.FellBack {
		t.Errorf("result = %+v, want auto checkout of HEAD~1", result)
	}
	if runner.called("pull") {
		t.Error("detached HEAD must not pull")
	}
}

func TestSync_AutoOnBranchPulls(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	syncer := New(runner, &fakeLister{}, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t), Target: "feature/x"})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if result.Ref != "feature/x" {
		t.Errorf("result = %+v, want auto checkout of feature/x", result)
	}
	if !runner.called("pull") {
		t.Errorf("symbolic-ref success should trigger a pull, calls: %v", runner.calls)
	}
}

func TestSync_FallbackTriesMainThenMaster(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	runner.failOn["describe --tags --abbrev=0"] = errors.New("no tags")
	runner.failOn["checkout main"] = errors.New("no main")
	syncer := New(runner, &fakeLister{}, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t)})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if result.Ref != "master" || result.StayedPut {
		t.Errorf("result = %+v, want master checkout", result)
	}
}

func TestSync_FallbackExhaustedIsNonFatal(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	runner.failOn["describe --tags --abbrev=0"] = errors.New("no tags")
	runner.failOn["checkout main"] = errors.New("no main")
	runner.failOn["checkout master"] = errors.New("no master")
	syncer := New(runner, &fakeLister{}, quietLogger())

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: initClone(t)})
	if err != nil {
		t.Fatalf("exhausted fallback must stay non-fatal, got: %v", err)
	}
	if !result.StayedPut || result.Ref != "" {
		t.Errorf("result = %+v, want StayedPut with empty ref", result)
	}
}

func TestSync_ClonesWhenAbsent(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	runner.outputs["describe --tags --abbrev=0"] = "v1.0.0"
	syncer := New(runner, &fakeLister{}, quietLogger())
	cloneDir := filepath.Join(t.TempDir(), "KernelSU")

	result, err := syncer.Sync(context.Background(), Request{RepoURL: "https://example.com/mod.git", CloneDir: cloneDir})
	if err != nil {
		t.Fatalf("Sync = %v, want nil", err)
	}
	if !result.Cloned {
		t.Error("Cloned = false, want true")
	}
	if !runner.called("clone https://example.com/mod.git "+cloneDir) {
		t.Errorf("expected clone, calls: %v", runner.calls)
	}
}

func TestSync_CloneFailureIsFatal(t *testing.T) {
	t.Parallel()
	runner := newFakeRunner()
	cloneDir := filepath.Join(t.TempDir(), "KernelSU")
	cloneErr := errors.New("could not resolve host")
	runner.failOn["clone url "+cloneDir] = cloneErr
	syncer := New(runner, &fakeLister{}, quietLogger())

	_, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: cloneDir})
	if !errors.Is(err, cloneErr) {
		t.Errorf("Sync = %v, want wrapped clone error", err)
	}
}

func TestSync_NonRepoCloneDirIsFatal(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "KernelSU")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	syncer := New(newFakeRunner(), &fakeLister{}, quietLogger())

	if _, err := syncer.Sync(context.Background(), Request{RepoURL: "url", CloneDir: dir}); err == nil {
		t.Fatal("a non-repository clone dir should be fatal")
	}
}
