package systems

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// 纯色三角形使用的白色贴图，顶点颜色直接决定最终颜色
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// whiteSource 返回 1x1 白色子图，首次调用时创建（需要图形上下文）
func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// 顶点采样白色子图的中心
const (
	whiteSrcX = 1.5
	whiteSrcY = 1.5
)
