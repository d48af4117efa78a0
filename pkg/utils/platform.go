//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设置为 1 时桌面端也按移动端处理（用于本地调试触摸交互）
const MobileEmulateEnv = "GRIDFLOOR_MOBILE_EMULATE"

// IsMobile 是否运行在移动端
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
