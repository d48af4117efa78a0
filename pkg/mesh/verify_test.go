package mesh

import (
	"strings"
	"testing"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/grid"
)

// TestVerifyValidFloor 测试正常地板通过校验
func TestVerifyValidFloor(t *testing.T) {
	cfg := config.DefaultGridConfig()
	f, err := NewFloor(cfg, func(c grid.Coordinate) ColorRGB {
		return ColorRGB{R: float32(c.X) / 30, G: float32(c.Y) / 30, B: 1}
	})
	if err != nil {
		t.Fatalf("NewFloor() error: %v", err)
	}

	if err := Verify(f.Mesh, f.Tiles, cfg); err != nil {
		t.Errorf("Verify() error: %v", err)
	}
}

// TestVerifyDetectsCorruption 测试各类损坏都能被发现
func TestVerifyDetectsCorruption(t *testing.T) {
	cfg := config.GridConfig{CellWidth: 1, CellHeight: 1, Cols: 3, Rows: 3, BorderThickness: 0.05, GapSize: 0.05}

	tests := []struct {
		name    string
		corrupt func(m *MeshBuffers, tiles []FloorTile)
		want    string
	}{
		{
			name:    "法线翻转",
			corrupt: func(m *MeshBuffers, _ []FloorTile) { m.Normals[4] = 1 },
			want:    "normal",
		},
		{
			name:    "顶点离开平面",
			corrupt: func(m *MeshBuffers, _ []FloorTile) { m.Positions[1] = 0.5 },
			want:    "Y =",
		},
		{
			name:    "颜色不一致",
			corrupt: func(m *MeshBuffers, _ []FloorTile) { m.Colors[FloatsPerTile+3] = 0.25 },
			want:    "color",
		},
		{
			name:    "超出单元格",
			corrupt: func(m *MeshBuffers, _ []FloorTile) { m.Positions[3] = 1.5 },
			want:    "leaves its cell",
		},
		{
			name:    "格子列表不匹配",
			corrupt: func(m *MeshBuffers, tiles []FloorTile) {},
			want:    "tile list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewFloorTiles(cfg, nil)
			m, err := BuildFloor(tiles, cfg)
			if err != nil {
				t.Fatalf("BuildFloor() error: %v", err)
			}
			tt.corrupt(m, tiles)
			if tt.want == "tile list" {
				tiles = tiles[:len(tiles)-1]
			}

			err = Verify(m, tiles, cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Verify() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
