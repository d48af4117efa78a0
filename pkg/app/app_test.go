package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/embedded"
)

func initTestEmbedded(t *testing.T) {
	t.Helper()
	embedded.Init(fstest.MapFS{
		"data/scene.yaml":        {Data: []byte("tickRate: 20\n")},
		"data/scenes/small.yaml": {Data: []byte("grid:\n  cols: 8\n  rows: 6\n")},
	})
}

// TestLoadScene 测试场景来源选择
func TestLoadScene(t *testing.T) {
	initTestEmbedded(t)

	sc, err := LoadScene(DefaultSceneName, "")
	if err != nil {
		t.Fatalf("LoadScene(default) error: %v", err)
	}
	if sc.TickRate != 20 || sc.Grid.Cols != config.DefaultGridColumns {
		t.Errorf("default scene = tickRate %d, cols %d", sc.TickRate, sc.Grid.Cols)
	}

	sc, err = LoadScene("small", "")
	if err != nil {
		t.Fatalf("LoadScene(small) error: %v", err)
	}
	if sc.Grid.Cols != 8 || sc.Grid.Rows != 6 {
		t.Errorf("small scene grid = %dx%d", sc.Grid.Cols, sc.Grid.Rows)
	}

	if _, err := LoadScene("missing", ""); err == nil {
		t.Error("LoadScene(missing) should fail")
	}
}

// TestLoadSceneFromFile 测试 --config 指定的文件
func TestLoadSceneFromFile(t *testing.T) {
	initTestEmbedded(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("grid:\n  cols: 3\n  rows: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScene(DefaultSceneName, good)
	if err != nil {
		t.Fatalf("LoadScene(file) error: %v", err)
	}
	if sc.Grid.Cols != 3 {
		t.Errorf("cols = %d, want 3", sc.Grid.Cols)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid:\n  gapSize: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScene(DefaultSceneName, bad); !errors.Is(err, config.ErrConfiguration) {
		t.Errorf("LoadScene(bad) error = %v, want ErrConfiguration", err)
	}
}

// TestNextSceneName 测试场景循环切换
func TestNextSceneName(t *testing.T) {
	names := []string{"default", "noise", "small"}

	tests := []struct {
		current string
		want    string
	}{
		{"default", "noise"},
		{"small", "default"},
		{"unknown", "default"},
	}
	for _, tt := range tests {
		if got := nextSceneName(names, tt.current); got != tt.want {
			t.Errorf("nextSceneName(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if got := nextSceneName(nil, "x"); got != "x" {
		t.Errorf("nextSceneName(nil) = %q, want x", got)
	}
}
