package embedded

import (
	"slices"
	"testing"
	"testing/fstest"
)

func initTestFS(t *testing.T) {
	t.Helper()
	Init(fstest.MapFS{
		"data/scene.yaml":         {Data: []byte("tickRate: 28\n")},
		"data/scenes/small.yaml":  {Data: []byte("grid:\n  cols: 4\n")},
		"data/scenes/noise.yaml":  {Data: []byte("palette:\n  mode: noise\n")},
		"data/scenes/README.txt":  {Data: []byte("not a scene")},
		"data/other/ignored.yaml": {Data: []byte("x: 1")},
	})
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	initTestFS(t)
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 测试未初始化时的调用
func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := ReadFile(DefaultScenePath); err != errNotInitialized {
		t.Errorf("ReadFile() error = %v, want errNotInitialized", err)
	}
	if _, err := Glob("data/*.yaml"); err != errNotInitialized {
		t.Errorf("Glob() error = %v, want errNotInitialized", err)
	}
	if Exists(DefaultScenePath) {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试读取与路径标准化
func TestReadFile(t *testing.T) {
	initTestFS(t)

	for _, p := range []string{"data/scene.yaml", "./data/scene.yaml"} {
		data, err := ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile(%q) error: %v", p, err)
		}
		if string(data) != "tickRate: 28\n" {
			t.Errorf("ReadFile(%q) = %q", p, data)
		}
	}

	if _, err := ReadFile("assets/scene.yaml"); err == nil {
		t.Error("expected error for unknown prefix")
	}
	if _, err := ReadFile("data/missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestScenePresets 测试列出内置预设
func TestScenePresets(t *testing.T) {
	initTestFS(t)

	names, err := ScenePresets()
	if err != nil {
		t.Fatalf("ScenePresets() error: %v", err)
	}
	if want := []string{"noise", "small"}; !slices.Equal(names, want) {
		t.Errorf("ScenePresets() = %v, want %v", names, want)
	}

	if !Exists(ScenePresetPath("small")) {
		t.Errorf("preset path %s should exist", ScenePresetPath("small"))
	}
}
