// Package palette 生成地板格子的颜色
package palette

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/grid"
	"github.com/decker502/gridfloor/pkg/mesh"
)

// PastelFloor 粉彩色通道的下限
// 每个通道取值 [PastelFloor, PastelFloor+0.2)，即亮度最高的五分之一区间
const PastelFloor = 0.8

// NewRand 按种子创建随机数生成器，seed 为 0 时使用当前时间
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Pastel 返回一个随机粉彩色
func Pastel(rng *rand.Rand) mesh.ColorRGB {
	topQuintile := func() float32 {
		return float32(rng.Float64()/5 + PastelFloor)
	}
	return mesh.ColorRGB{R: topQuintile(), G: topQuintile(), B: topQuintile()}
}

// NewPastel 返回为每个格子生成随机粉彩色的颜色函数
// 相同种子、相同调用顺序产生相同颜色
func NewPastel(seed int64) mesh.ColorFunc {
	rng := NewRand(seed)
	return func(grid.Coordinate) mesh.ColorRGB {
		return Pastel(rng)
	}
}

// NewNoise 返回按 Perlin 噪声在 low 与 high 之间插值的颜色函数
// 插值在 Lab 色彩空间进行，避免中间色发灰
func NewNoise(pc config.PaletteConfig) (mesh.ColorFunc, error) {
	low, err := colorful.Hex(pc.Low)
	if err != nil {
		return nil, fmt.Errorf("invalid palette low color %q: %w", pc.Low, err)
	}
	high, err := colorful.Hex(pc.High)
	if err != nil {
		return nil, fmt.Errorf("invalid palette high color %q: %w", pc.High, err)
	}

	seed := pc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	octaves := pc.Octaves
	if octaves <= 0 {
		octaves = 3
	}
	if !(pc.Alpha > 0) || !(pc.Beta > 0) || math.IsInf(pc.Alpha, 0) || math.IsInf(pc.Beta, 0) {
		return nil, fmt.Errorf("noise alpha and beta must be positive and finite, got %v and %v", pc.Alpha, pc.Beta)
	}
	noise := perlin.NewPerlin(pc.Alpha, pc.Beta, octaves, seed)

	frequency := pc.Frequency
	if !(frequency > 0) || math.IsInf(frequency, 0) {
		frequency = 0.15
	}

	return func(c grid.Coordinate) mesh.ColorRGB {
		// 噪声值约为 -1 ~ 1，映射到 0 ~ 1
		t := (noise.Noise2D(float64(c.X)*frequency, float64(c.Y)*frequency) + 1.0) / 2.0
		t = min(max(t, 0), 1)
		return FromColorful(low.BlendLab(high, t).Clamped())
	}, nil
}

// FromConfig 按调色板配置创建颜色函数
func FromConfig(pc config.PaletteConfig) (mesh.ColorFunc, error) {
	switch pc.Mode {
	case config.PaletteModeNoise:
		log.Printf("[Palette] Using Perlin noise palette (seed=%d)", pc.Seed)
		return NewNoise(pc)
	case config.PaletteModePastel, "":
		log.Printf("[Palette] Using random pastel palette (seed=%d)", pc.Seed)
		return NewPastel(pc.Seed), nil
	default:
		return nil, fmt.Errorf("unknown palette mode %q", pc.Mode)
	}
}

// ParseHex 解析十六进制颜色（如 "#a2b9e7"）
func ParseHex(hex string) (mesh.ColorRGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mesh.ColorRGB{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return FromColorful(c), nil
}

// MustParseHex 与 ParseHex 相同，解析失败时 panic
// 仅用于已经通过配置校验的颜色
func MustParseHex(hex string) mesh.ColorRGB {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColorful 将 colorful.Color 转换为 mesh.ColorRGB
func FromColorful(c colorful.Color) mesh.ColorRGB {
	return mesh.ColorRGB{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

// ToRGBA 将 mesh.ColorRGB 转换为不透明的 color.RGBA
func ToRGBA(c mesh.ColorRGB) color.RGBA {
	r, g, b := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
