package systems

import "log"

// maxCatchUpTicks 单帧最多补跑的节拍数，超出部分丢弃
const maxCatchUpTicks = 5

// TickHandler 逻辑节拍回调，tick 从 1 开始递增
type TickHandler func(tick uint64)

// TickSystem 以固定频率驱动逻辑节拍，与渲染帧率解耦
//
// 每帧累加经过的时间，够一个节拍间隔就执行一次所有回调。
type TickSystem struct {
	interval    float64
	accumulator float64
	ticks       uint64
	dropped     uint64
	handlers    []TickHandler
}

// NewTickSystem 创建节拍系统
// rate 为每秒节拍数，必须为正数
func NewTickSystem(rate int) *TickSystem {
	if rate <= 0 {
		log.Printf("[TickSystem] Invalid tick rate %d, using 1", rate)
		rate = 1
	}
	return &TickSystem{interval: 1.0 / float64(rate)}
}

// AddHandler 注册节拍回调，按注册顺序执行
func (s *TickSystem) AddHandler(h TickHandler) {
	s.handlers = append(s.handlers, h)
}

// Update 推进 dt 秒，返回本帧执行的节拍数
func (s *TickSystem) Update(dt float64) int {
	if dt <= 0 {
		return 0
	}
	s.accumulator += dt

	ran := 0
	for s.accumulator >= s.interval {
		s.accumulator -= s.interval
		if ran == maxCatchUpTicks {
			s.dropped++
			continue
		}
		s.ticks++
		ran++
		for _, h := range s.handlers {
			h(s.ticks)
		}
	}
	return ran
}

// Ticks 返回已执行的节拍总数
func (s *TickSystem) Ticks() uint64 {
	return s.ticks
}

// Dropped 返回因帧间隔过长而丢弃的节拍数
func (s *TickSystem) Dropped() uint64 {
	return s.dropped
}

// Interval 返回节拍间隔（秒）
func (s *TickSystem) Interval() float64 {
	return s.interval
}
