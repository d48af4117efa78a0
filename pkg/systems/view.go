package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/gridfloor/pkg/components"
)

// View 世界坐标到屏幕坐标的投影
//
// 地板平面 (X, Z) 通过 GeoM 变换到屏幕；Y（垂直方向）在倾斜视角下
// 沿屏幕竖直方向偏移。实体位于 -Y 一侧，因此 Y 越小在屏幕上越靠上。
type View struct {
	geoM        ebiten.GeoM
	heightScale float64
	scale       float64
}

// NewView 根据镜头状态和屏幕尺寸构造投影
func NewView(cam *components.CameraComponent, screenWidth, screenHeight int) View {
	scale := cam.PixelsPerUnit * cam.Zoom
	tilt := 1.0
	heightScale := 0.0
	if cam.ThreeD {
		tilt = math.Cos(cam.Pitch)
		heightScale = scale * math.Sin(cam.Pitch)
	}

	var g ebiten.GeoM
	g.Translate(-cam.CenterX, -cam.CenterZ)
	g.Rotate(cam.Rotation)
	g.Scale(scale, scale*tilt)
	g.Translate(float64(screenWidth)/2, float64(screenHeight)/2)

	return View{geoM: g, heightScale: heightScale, scale: scale}
}

// Project 将世界坐标投影到屏幕
func (v View) Project(x, y, z float64) (float64, float64) {
	sx, sy := v.geoM.Apply(x, z)
	return sx, sy + y*v.heightScale
}

// Unproject 将屏幕坐标反投影到地板平面 (Y=0)
// 投影矩阵不可逆（缩放为 0）时返回 false
func (v View) Unproject(sx, sy float64) (x, z float64, ok bool) {
	inv := v.geoM
	if !inv.IsInvertible() {
		return 0, 0, false
	}
	inv.Invert()
	x, z = inv.Apply(sx, sy)
	return x, z, true
}

// Scale 返回每个世界单位对应的像素数（水平方向）
func (v View) Scale() float64 {
	return v.scale
}

// Equal 判断两个投影是否相同，用于跳过重复的顶点投影
func (v View) Equal(o View) bool {
	return v.geoM == o.geoM && v.heightScale == o.heightScale
}
