package walker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates files (with parent directories) under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
}

func sampleProject(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "proj")
	writeTree(t, root,
		"main.py",
		"utils.py",
		"auth/middleware.go",
		"node_modules/lib/index.js",
		".git/HEAD",
		"build/out.bin",
		"logs/app.log",
		"secret.env",
	)
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("logs/\n*.env\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestCollectFolder(t *testing.T) {
	root := sampleProject(t)

	got, err := CollectFolder(Config{RootDir: root})
	if err != nil {
		t.Fatalf("CollectFolder: %v", err)
	}

	want := []string{
		"proj/.gitignore",
		"proj/auth/middleware.go",
		"proj/main.py",
		"proj/utils.py",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectFolderIncludeExclude(t *testing.T) {
	root := sampleProject(t)

	got, err := CollectFolder(Config{
		RootDir: root,
		Include: []string{"**/*.py", "**/*.go"},
		Exclude: []string{"utils.py"},
	})
	if err != nil {
		t.Fatalf("CollectFolder: %v", err)
	}
	if len(got) != 2 || got[0] != "proj/auth/middleware.go" || got[1] != "proj/main.py" {
		t.Errorf("got %v", got)
	}
}

func TestCollectFolderErrors(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty")
	os.MkdirAll(filepath.Join(empty, "node_modules"), 0o755)
	writeTree(t, empty, "node_modules/a.js")

	if _, err := CollectFolder(Config{RootDir: empty}); !errors.Is(err, ErrEmptyFolder) {
		t.Errorf("expected ErrEmptyFolder, got %v", err)
	}

	if _, err := CollectFolder(Config{RootDir: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("expected error for a missing folder")
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	os.WriteFile(file, []byte("x"), 0o644)
	if _, err := CollectFolder(Config{RootDir: file}); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"src/a.go", nil, false},
		{"src/a.go", []string{"**/*.go"}, true},
		{"a.go", []string{"*.go"}, true},
		{"src/a.py", []string{"**/*.go"}, false},
		{"deep/dir/yarn.lock", []string{"*.lock"}, true},
		{"vendor/x/y.go", []string{"vendor/**"}, true},
	}
	for _, tt := range tests {
		if got := Match(tt.path, tt.patterns); got != tt.want {
			t.Errorf("Match(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}

func TestFilterIncludeExclude(t *testing.T) {
	f := newFilter(t.TempDir(), Config{Include: []string{"**/*.py", " "}, Exclude: []string{"tests/**"}})
	if !f.keepFile("pkg/app.py") {
		t.Error("included file should be kept")
	}
	if f.keepFile("pkg/app.go") {
		t.Error("file outside include should be dropped")
	}
	if f.keepFile("tests/test_app.py") {
		t.Error("excluded file should be dropped")
	}
	if !f.skipDir("web/node_modules") || !f.skipDir("Vendor") {
		t.Error("default excluded directories should be skipped")
	}
	if f.skipDir("src") {
		t.Error("ordinary directory should be walked")
	}
}
