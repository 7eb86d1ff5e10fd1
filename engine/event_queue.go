package engine

// QueueSize 事件队列固定 3 个槽位，槽位 1 最先结算
const QueueSize = 3

// Event 事件创建后不可修改，同一时间只属于一个槽位
type Event struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// EventQueue 3 槽位的移位寄存器。slots[0..2] 直接对应槽位号 1..3，
// 槽位号与下标的换算只在 Insert/Advance/Remove 里出现。
type EventQueue struct {
	slots [QueueSize]*Event
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Advance 结算槽位 1 的事件并整体前移一格，槽位 3 变空
func (q *EventQueue) Advance() *Event {
	resolved := q.slots[0]
	copy(q.slots[:], q.slots[1:])
	q.slots[QueueSize-1] = nil
	return resolved
}

// Insert 目标槽位为空则直接放入，否则向后（槽位号更大）找最近的空位。
// 插入只会被顺延，不会提前，也不会挤掉已有事件。
func (q *EventQueue) Insert(event Event, targetSlot int) (int, error) {
	if targetSlot < 1 || targetSlot > QueueSize {
		return 0, ErrInvalidSlot
	}
	for slot := targetSlot; slot <= QueueSize; slot++ {
		if q.slots[slot-1] == nil {
			e := event
			q.slots[slot-1] = &e
			return slot, nil
		}
	}
	return 0, ErrSlotUnavailable
}

// Remove 按 id 移除事件，其余事件保持原槽位
func (q *EventQueue) Remove(eventID int) (Event, error) {
	for i, e := range q.slots {
		if e != nil && e.ID == eventID {
			q.slots[i] = nil
			return *e, nil
		}
	}
	return Event{}, ErrEventNotFound
}

// Reset 清空所有槽位（事件 id 计数器归调用方所有，不受影响）
func (q *EventQueue) Reset() {
	q.slots = [QueueSize]*Event{}
}

// At 返回槽位号 slot 上的事件
func (q *EventQueue) At(slot int) (Event, bool) {
	if slot < 1 || slot > QueueSize || q.slots[slot-1] == nil {
		return Event{}, false
	}
	return *q.slots[slot-1], true
}

func (q *EventQueue) Len() int {
	n := 0
	for _, e := range q.slots {
		if e != nil {
			n++
		}
	}
	return n
}

// Slots 返回快照，下标 i 对应槽位 i+1
func (q *EventQueue) Slots() [QueueSize]*Event {
	var out [QueueSize]*Event
	for i, e := range q.slots {
		if e != nil {
			c := *e
			out[i] = &c
		}
	}
	return out
}
