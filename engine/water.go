package engine

const (
	DefaultWaterCap = 3
	// 手动加水最多可以超过上限这么多
	waterSoftMargin = 5
)

// WaterCounter 玩家的水资源，永远不小于 0
type WaterCounter struct {
	value int
	cap   int
}

func NewWaterCounter(cap int) *WaterCounter {
	if cap < 0 {
		cap = DefaultWaterCap
	}
	return &WaterCounter{value: cap, cap: cap}
}

func (w *WaterCounter) Value() int { return w.value }
func (w *WaterCounter) Cap() int   { return w.cap }

// Increment 手动加 1，达到 cap+5 后不再生效
func (w *WaterCounter) Increment() bool {
	if w.value >= w.cap+waterSoftMargin {
		return false
	}
	w.value++
	return true
}

// Decrement 已经是 0 时不做任何事
func (w *WaterCounter) Decrement() bool {
	if w.value <= 0 {
		return false
	}
	w.value--
	return true
}

func (w *WaterCounter) Reset() {
	w.value = w.cap
}

// Grant 补给阶段使用，无条件累加，不受软上限限制
func (w *WaterCounter) Grant(amount int) {
	if amount <= 0 {
		return
	}
	w.value += amount
}
