package components

// ShadowComponent 阴影组件
// 在实体正下方的地板平面上绘制圆形阴影，用于球体
type ShadowComponent struct {
	// Radius 阴影半径（世界单位）
	Radius float64

	// Alpha 阴影透明度 (0.0-1.0)
	Alpha float32
}
