package service

import "radlands/engine"

// handTracker 记录每位玩家抽了几张牌，真正的手牌由玩家自己管理
type handTracker struct {
	drawn map[engine.Player]int
}

func newHandTracker() *handTracker {
	return &handTracker{drawn: make(map[engine.Player]int)}
}

func (h *handTracker) Draw(p engine.Player) {
	h.drawn[p]++
}

func (h *handTracker) counts() map[int]int {
	return map[int]int{
		1: h.drawn[engine.Player1],
		2: h.drawn[engine.Player2],
	}
}

func (h *handTracker) reset() {
	h.drawn = make(map[engine.Player]int)
}
