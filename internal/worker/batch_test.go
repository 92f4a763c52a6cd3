package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/groundcheck/internal/model"
)

// mockChecker implements Checker
type mockChecker struct {
	shouldError bool
}

func (m *mockChecker) Check(ctx context.Context, subject, text string) (*model.Report, error) {
	time.Sleep(5 * time.Millisecond) // Simulate work
	if m.shouldError {
		return nil, errors.New("check error")
	}
	return &model.Report{
		Subject:     subject,
		SourceCount: len(strings.Fields(text)),
	}, nil
}

func writeDrafts(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("Draft text for "+name), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	dir := t.TempDir()
	paths := writeDrafts(t, dir, "a.md", "b.md", "c.md")

	processor := NewBatchProcessor(&mockChecker{}, 2)
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
			continue
		}
		if res.Path != paths[i] {
			t.Errorf("expected result %d for %s, got %s", i, paths[i], res.Path)
		}
		if res.Report == nil || res.Report.Subject != filepath.Base(paths[i]) {
			t.Errorf("expected report subject %s", filepath.Base(paths[i]))
		}
	}
}

func TestBatchProcessor_ProcessPaths_Error(t *testing.T) {
	dir := t.TempDir()
	paths := writeDrafts(t, dir, "a.md")

	processor := NewBatchProcessor(&mockChecker{shouldError: true}, 2)
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessPaths_MissingFile(t *testing.T) {
	processor := NewBatchProcessor(&mockChecker{}, 2)
	results := processor.ProcessPaths(context.Background(), []string{filepath.Join(t.TempDir(), "missing.md")})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected read error for missing draft")
	}
}

func TestBatchProcessor_ProcessPaths_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockChecker{}, 2)

	results := processor.ProcessPaths(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

// slowChecker takes delay per draft unless ctx ends first
type slowChecker struct {
	delay time.Duration
}

func (s *slowChecker) Check(ctx context.Context, subject, text string) (*model.Report, error) {
	select {
	case <-time.After(s.delay):
		return &model.Report{Subject: subject}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestBatchProcessor_ProcessPaths_Timeout(t *testing.T) {
	dir := t.TempDir()
	names := make([]string, 10)
	for i := range names {
		names[i] = fmt.Sprintf("draft-%d.md", i)
	}
	paths := writeDrafts(t, dir, names...)

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	processor := NewBatchProcessor(&slowChecker{delay: 30 * time.Millisecond}, 1)
	results := processor.ProcessPaths(ctx, paths)

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}

	errored := 0
	for i, res := range results {
		if res == nil {
			t.Fatalf("result %d is nil", i)
		}
		if res.Path != paths[i] {
			t.Errorf("expected result %d for %s, got %s", i, paths[i], res.Path)
		}
		if (res.Report == nil) == (res.Error == nil) {
			t.Errorf("result %d: expected exactly one of report or error", i)
		}
		if res.Error != nil {
			errored++
			if !errors.Is(res.Error, context.DeadlineExceeded) {
				t.Errorf("result %d: expected deadline error, got %v", i, res.Error)
			}
		}
	}

	if errored == 0 {
		t.Error("expected drafts cut off by the timeout to be reported as errors")
	}
	if results[len(results)-1].Error == nil {
		t.Error("expected the last draft to miss the deadline")
	}
}

func TestBatchProcessor_ProcessPaths_Canceled(t *testing.T) {
	paths := writeDrafts(t, t.TempDir(), "a.md", "b.md")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewBatchProcessor(&mockChecker{}, 2).ProcessPaths(ctx, paths)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if !errors.Is(res.Error, context.Canceled) {
			t.Errorf("expected canceled error for %s, got %v", res.Path, res.Error)
		}
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	writeDrafts(t, dir, "a.md", "b.md", "c.md")

	list := filepath.Join(dir, "drafts.txt")
	content := "a.md\nb.md\n# comment\n\nc.md\n"
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&mockChecker{}, 2)
	results, err := processor.ProcessFile(context.Background(), list)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&mockChecker{}, 2)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "drafts.txt")
	content := "intro.md\n# comment\n/abs/summary.md\n   \nintro.md\n"
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(list)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	expected := []string{filepath.Join(dir, "intro.md"), "/abs/summary.md"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d: %v", len(expected), len(paths), paths)
	}
	for i, p := range paths {
		if p != expected[i] {
			t.Errorf("expected path %s at index %d, got %s", expected[i], i, p)
		}
	}
}

func TestCheckResult_GetError(t *testing.T) {
	r1 := &CheckResult{Path: "a.md"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("check failed")
	r2 := &CheckResult{Path: "a.md", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
