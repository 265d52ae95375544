package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dossier-dev/dossier/internal/lint"
	"github.com/dossier-dev/dossier/internal/pipeline"
)

// stubProcessor satisfies Processor without touching the filesystem.
type stubProcessor struct {
	failOn map[string]bool
}

func (p *stubProcessor) ProcessFile(path string) (*pipeline.FileResult, error) {
	if p.failOn[path] {
		return nil, errors.New("boom")
	}
	return &pipeline.FileResult{Path: path, Lint: &lint.Result{}}, nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	paths := []string{"c.md", "a.md", "b.md"}
	bp := NewBatchProcessor(&stubProcessor{}, 2)

	results := bp.ProcessPaths(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	if !sort.SliceIsSorted(results, func(i, j int) bool { return results[i].Path < results[j].Path }) {
		t.Error("results are not sorted by path")
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: unexpected error %v", r.Path, r.Err)
		}
		if r.Result == nil || r.Result.Path != r.Path {
			t.Errorf("%s: missing or mismatched file result", r.Path)
		}
	}
}

func TestBatchProcessor_ErrorsPerFile(t *testing.T) {
	bp := NewBatchProcessor(&stubProcessor{failOn: map[string]bool{"bad.md": true}}, 2)

	results := bp.ProcessPaths(context.Background(), []string{"good.md", "bad.md"})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		wantErr := r.Path == "bad.md"
		if (r.GetError() != nil) != wantErr {
			t.Errorf("%s: err = %v", r.Path, r.GetError())
		}
	}
}

func TestBatchProcessor_LargeBatch(t *testing.T) {
	// Far more paths than the pool buffers; must not deadlock.
	paths := make([]string, 200)
	for i := range paths {
		paths[i] = filepath.Join("docs", string(rune('a'+i%26))+".md")
	}
	bp := NewBatchProcessor(&stubProcessor{}, 2)

	results := bp.ProcessPaths(context.Background(), paths)
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	bp := NewBatchProcessor(&stubProcessor{}, 2)
	if results := bp.ProcessPaths(context.Background(), nil); results != nil {
		t.Errorf("expected nil results for empty input, got %v", results)
	}
}

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	files := map[string]bool{
		"report.md":       true,
		"notes.markdown":  true,
		"page.html":       true,
		"snapshot.htm":    true,
		"data.json":       false,
		"readme.txt":      false,
		"sub/inner.md":    true,
		"sub/ignore.yaml": false,
	}
	for name := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("# x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := CollectDocuments(dir)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := 0
	for name, keep := range files {
		if !keep {
			continue
		}
		want++
		found := false
		for _, p := range got {
			if p == filepath.Join(dir, name) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing %s", name)
		}
	}
	if len(got) != want {
		t.Errorf("got %d documents, want %d: %v", len(got), want, got)
	}
	if !sort.StringsAreSorted(got) {
		t.Error("paths are not sorted")
	}
}

func TestCollectDocuments_MissingDir(t *testing.T) {
	if _, err := CollectDocuments(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
