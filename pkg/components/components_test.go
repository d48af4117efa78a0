package components

import (
	"testing"

	"github.com/decker502/gridfloor/pkg/grid"
)

// TestWallComponentLength 测试墙段长度
func TestWallComponentLength(t *testing.T) {
	tests := []struct {
		name string
		wall WallComponent
		want int
	}{
		{"竖墙", WallComponent{Start: grid.Coordinate{X: 1, Y: 1}, End: grid.Coordinate{X: 1, Y: 30}}, 30},
		{"反向横墙", WallComponent{Start: grid.Coordinate{X: 29, Y: 1}, End: grid.Coordinate{X: 2, Y: 1}}, 28},
		{"单格", WallComponent{Start: grid.Coordinate{X: 4, Y: 4}, End: grid.Coordinate{X: 4, Y: 4}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.wall.Length(); got != tt.want {
				t.Errorf("Length() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestShapeKindString 测试形状名称
func TestShapeKindString(t *testing.T) {
	if ShapeBox.String() != "box" || ShapeSphere.String() != "sphere" || ShapeKind(9).String() != "unknown" {
		t.Error("unexpected ShapeKind names")
	}
}
