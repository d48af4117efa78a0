package mesh

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTileIndexOutOfRange 表示 SetTileColor 的格子索引超出缓冲区范围
var ErrTileIndexOutOfRange = errors.New("tile index out of range")

// DynamicColorBuffer 可局部更新的颜色缓冲区
//
// 持有实时的扁平颜色数组和单调递增的版本号。
// 写入（SetTileColor）只覆盖对应格子的 18 个分量；
// 读取（ConsumeIfDirty）在同一把锁内完成"读取 + 清除脏标记"，
// 因此两次读取之间的任何写入都不会丢失，也不会被重复报告。
//
// 缓冲区长度在创建后不再改变。
type DynamicColorBuffer struct {
	mu       sync.Mutex
	colors   []float32
	version  uint64 // 每次写入加 1
	consumed uint64 // 最近一次 ConsumeIfDirty 看到的版本
}

// NewDynamicColorBuffer 以 initial 的副本创建颜色缓冲区
// initial 长度必须是 FloatsPerTile 的整数倍
func NewDynamicColorBuffer(initial []float32) (*DynamicColorBuffer, error) {
	if len(initial)%FloatsPerTile != 0 {
		return nil, fmt.Errorf("color buffer length %d is not a multiple of %d", len(initial), FloatsPerTile)
	}
	colors := make([]float32, len(initial))
	copy(colors, initial)
	return &DynamicColorBuffer{colors: colors}, nil
}

// TileCount 返回缓冲区包含的格子数
func (b *DynamicColorBuffer) TileCount() int {
	return len(b.colors) / FloatsPerTile
}

// Len 返回缓冲区的 float32 数量
func (b *DynamicColorBuffer) Len() int {
	return len(b.colors)
}

// SetTileColor 覆盖指定格子的 6 个顶点颜色
//
// 参数：
//   - tileIndex: 格子索引（与 BuildFloor 的格子顺序一致）
//   - c: 新颜色
//
// 返回：
//   - error: 索引越界时返回包装了 ErrTileIndexOutOfRange 的错误，缓冲区保持不变
func (b *DynamicColorBuffer) SetTileColor(tileIndex int, c ColorRGB) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if tileIndex < 0 || tileIndex >= b.TileCount() {
		return fmt.Errorf("%w: index %d, tile count %d", ErrTileIndexOutOfRange, tileIndex, b.TileCount())
	}

	offset := tileIndex * FloatsPerTile
	writeTileColors(b.colors[offset:offset+FloatsPerTile], c)
	b.version++
	return nil
}

// TileColor 返回指定格子当前的颜色（取第一个顶点）
func (b *DynamicColorBuffer) TileColor(tileIndex int) (ColorRGB, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if tileIndex < 0 || tileIndex >= b.TileCount() {
		return ColorRGB{}, fmt.Errorf("%w: index %d, tile count %d", ErrTileIndexOutOfRange, tileIndex, b.TileCount())
	}
	offset := tileIndex * FloatsPerTile
	return ColorRGB{R: b.colors[offset], G: b.colors[offset+1], B: b.colors[offset+2]}, nil
}

// ConsumeIfDirty 返回当前缓冲区的快照，以及自上次调用以来是否有写入
//
// 读取和清除脏标记是一个原子步骤：同一节拍内的多次写入只报告一次 changed=true，
// 下一次调用（中间没有写入）返回 changed=false。
// 返回的切片是副本，调用者可以自由持有。
func (b *DynamicColorBuffer) ConsumeIfDirty() ([]float32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	changed := b.version != b.consumed
	b.consumed = b.version

	snapshot := make([]float32, len(b.colors))
	copy(snapshot, b.colors)
	return snapshot, changed
}

// Dirty 返回是否有尚未被 ConsumeIfDirty 读取的写入
func (b *DynamicColorBuffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version != b.consumed
}

// Version 返回写入版本号
func (b *DynamicColorBuffer) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// Snapshot 返回当前缓冲区的副本，不影响脏标记
func (b *DynamicColorBuffer) Snapshot() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make([]float32, len(b.colors))
	copy(snapshot, b.colors)
	return snapshot
}
