package engine

// StepKind 状态机每一步的类型
type StepKind string

const (
	StepEventsStarted    StepKind = "events_started"
	StepEventsResolved   StepKind = "events_resolved"
	StepReplenishStarted StepKind = "replenish_started"
	StepCardDrawn        StepKind = "card_drawn"
	StepWaterCollected   StepKind = "water_collected"
	StepActionsReady     StepKind = "actions_ready"
	StepActionsStarted   StepKind = "actions_started"
	StepTurnEnded        StepKind = "turn_ended"
	StepPlayerTurn       StepKind = "player_turn"

	StepEventAdded   StepKind = "event_added"
	StepEventRemoved StepKind = "event_removed"
	StepQueueReset   StepKind = "queue_reset"
	StepWaterChanged StepKind = "water_changed"
	StepBoardChanged StepKind = "board_changed"
	StepGameReset    StepKind = "game_reset"
)

// NoticeKind 提示级别
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
)

// Notice 给通知端的文案
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	Detail  string     `json:"detail,omitempty"`
}

// Step 一次已经生效的状态变化。Phase 是该步完成后的阶段，Player 默认是当前玩家。
type Step struct {
	Kind   StepKind `json:"step"`
	Player Player   `json:"player"`
	Phase  Phase    `json:"phase"`
	Amount int      `json:"amount,omitempty"`
	Event  *Event   `json:"event,omitempty"`
	Notice Notice   `json:"notice"`
}

// Notifier 每一步完成后被同步调用，只用于展示，不能阻塞也不能让状态机失败
type Notifier interface {
	Notify(step Step)
}

type NotifierFunc func(Step)

func (f NotifierFunc) Notify(step Step) { f(step) }

// Hand 抽牌协作方
type Hand interface {
	Draw(player Player)
}

type HandFunc func(Player)

func (f HandFunc) Draw(p Player) { f(p) }

type nopNotifier struct{}

func (nopNotifier) Notify(Step) {}

type nopHand struct{}

func (nopHand) Draw(Player) {}

// stepFunc 执行一个效果并描述它
type stepFunc func() Step

// run 按顺序执行每一步，每步完成后立即通知，再执行下一步
func (g *Game) run(steps ...stepFunc) []Step {
	out := make([]Step, 0, len(steps))
	for _, apply := range steps {
		s := apply()
		if s.Player == 0 {
			s.Player = g.turn.CurrentPlayer
		}
		s.Phase = g.turn.Phase
		g.notifier.Notify(s)
		out = append(out, s)
	}
	return out
}
