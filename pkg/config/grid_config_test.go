package config

import (
	"errors"
	"math"
	"testing"
)

// TestDefaultGridConfig 测试默认网格配置
func TestDefaultGridConfig(t *testing.T) {
	cfg := DefaultGridConfig()

	if cfg.CellWidth != 0.761 || cfg.CellHeight != 0.561 {
		t.Errorf("cell size = %vx%v, want 0.761x0.561", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.Cols != 30 || cfg.Rows != 30 {
		t.Errorf("grid = %dx%d, want 30x30", cfg.Cols, cfg.Rows)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
	if got := cfg.TileCount(); got != 900 {
		t.Errorf("TileCount() = %d, want 900", got)
	}
}

// TestGridConfigValidate 测试配置约束检查
func TestGridConfigValidate(t *testing.T) {
	base := DefaultGridConfig()

	tests := []struct {
		name    string
		mutate  func(c *GridConfig)
		wantErr bool
	}{
		{name: "默认配置", mutate: func(c *GridConfig) {}, wantErr: false},
		{name: "零边框零间隙", mutate: func(c *GridConfig) { c.BorderThickness, c.GapSize = 0, 0 }, wantErr: false},
		{name: "格子宽度为0", mutate: func(c *GridConfig) { c.CellWidth = 0 }, wantErr: true},
		{name: "格子高度为负", mutate: func(c *GridConfig) { c.CellHeight = -1 }, wantErr: true},
		{name: "列数为0", mutate: func(c *GridConfig) { c.Cols = 0 }, wantErr: true},
		{name: "行数为负", mutate: func(c *GridConfig) { c.Rows = -3 }, wantErr: true},
		{name: "边框为负", mutate: func(c *GridConfig) { c.BorderThickness = -0.01 }, wantErr: true},
		{name: "间隙为负", mutate: func(c *GridConfig) { c.GapSize = -0.01 }, wantErr: true},
		{
			// 2*(0.14+0.14) = 0.56 < 0.561，仍有正面积
			name:    "内缩刚好小于高度",
			mutate:  func(c *GridConfig) { c.BorderThickness, c.GapSize = 0.14, 0.14 },
			wantErr: false,
		},
		{
			// 2*0.2805 = 0.561，面积为0
			name:    "内缩等于高度",
			mutate:  func(c *GridConfig) { c.BorderThickness, c.GapSize = 0.2805, 0 },
			wantErr: true,
		},
		{
			name:    "内缩超过格子",
			mutate:  func(c *GridConfig) { c.BorderThickness, c.GapSize = 0.3, 0.3 },
			wantErr: true,
		},
		{name: "格子宽度为正无穷", mutate: func(c *GridConfig) { c.CellWidth = math.Inf(1) }, wantErr: true},
		{name: "格子高度为NaN", mutate: func(c *GridConfig) { c.CellHeight = math.NaN() }, wantErr: true},
		{name: "边框为正无穷", mutate: func(c *GridConfig) { c.BorderThickness = math.Inf(1) }, wantErr: true},
		{name: "间隙为NaN", mutate: func(c *GridConfig) { c.GapSize = math.NaN() }, wantErr: true},
		{name: "格子数乘积溢出", mutate: func(c *GridConfig) { c.Cols, c.Rows = 1<<33, 1<<31 }, wantErr: true},
		{name: "格子数超过上限", mutate: func(c *GridConfig) { c.Cols, c.Rows = MaxTileCount, 2 }, wantErr: true},
		{name: "格子数等于上限", mutate: func(c *GridConfig) { c.Cols, c.Rows = MaxTileCount/4, 4 }, wantErr: false},
		{name: "世界尺寸溢出", mutate: func(c *GridConfig) { c.CellWidth = math.MaxFloat64 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("error should wrap ErrConfiguration, got %v", err)
			}
		})
	}
}

// TestGridConfigInsetIsAdditive 测试间隙和边框叠加
func TestGridConfigInsetIsAdditive(t *testing.T) {
	cfg := GridConfig{BorderThickness: 0.01, GapSize: 0.02}
	if got := cfg.Inset(); got < 0.0299 || got > 0.0301 {
		t.Errorf("Inset() = %v, want 0.03", got)
	}
}

// TestGridConfigCenter 测试网格中心（摄像机复位位置）
func TestGridConfigCenter(t *testing.T) {
	cfg := DefaultGridConfig()
	x, z := cfg.Center()

	epsilon := 1e-9
	if x < 15*0.761-epsilon || x > 15*0.761+epsilon {
		t.Errorf("Center() x = %v, want %v", x, 15*0.761)
	}
	if z < 15*0.561-epsilon || z > 15*0.561+epsilon {
		t.Errorf("Center() z = %v, want %v", z, 15*0.561)
	}
}
