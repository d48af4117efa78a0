// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的场景配置。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// 嵌入资源路径
const (
	DefaultScenePath = "data/scene.yaml"
	ScenePresetDir   = "data/scenes"
)

var errNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入的文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并检查前缀
// 路径必须以 "data/" 开头
func normalize(p string) (string, error) {
	if !initialized {
		return "", errNotInitialized
	}

	// embed.FS 使用正斜杠，移除可能的 "./" 前缀
	p = strings.TrimPrefix(filepath.ToSlash(p), "./")

	if !strings.HasPrefix(p, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", p)
	}
	return p, nil
}

// Open 打开嵌入文件
func Open(p string) (fs.File, error) {
	p, err := normalize(p)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取嵌入文件内容
func ReadFile(p string) ([]byte, error) {
	p, err := normalize(p)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(p string) bool {
	file, err := Open(p)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配嵌入文件
func Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}

// ScenePresets 返回内置场景预设的名称（不含扩展名），按字母顺序
func ScenePresets() ([]string, error) {
	matches, err := Glob(ScenePresetDir + "/*.yaml")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".yaml"))
	}
	return names, nil
}

// ScenePresetPath 返回场景预设的嵌入路径
func ScenePresetPath(name string) string {
	return path.Join(ScenePresetDir, name+".yaml")
}
