package components

// CameraComponent 保存观察地板的镜头状态。
// 世界坐标 (X, Z) 经过平移、旋转、缩放和俯仰压缩后映射到屏幕。
type CameraComponent struct {
	// CenterX, CenterZ 镜头注视点（世界坐标）
	CenterX float64
	CenterZ float64

	// Rotation 绕竖直轴的旋转角（弧度）
	Rotation float64

	// Zoom 缩放倍数，1.0 表示地板刚好充满视口
	Zoom float64

	// PixelsPerUnit 缩放为 1 时每个世界单位对应的像素数
	PixelsPerUnit float64

	// ThreeD 为 true 时使用倾斜视角，实体高度可见
	// 为 false 时为正上方俯视
	ThreeD bool

	// Pitch 倾斜视角下视线与竖直方向的夹角（弧度）
	Pitch float64
}
