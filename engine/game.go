package engine

import "fmt"

const (
	// 补给阶段的水
	ReplenishWater = 3
	// 先手玩家第一回合只拿 1 点水
	FirstTurnWater = 1
)

// TurnState 当前回合状态。IsFirstTurn 在第一次结束回合之前一直为 true。
type TurnState struct {
	CurrentPlayer Player `json:"currentPlayer"`
	Phase         Phase  `json:"currentPhase"`
	IsFirstTurn   bool   `json:"isFirstTurn"`
	TurnNumber    int    `json:"turnNumber"`
}

// Options 游戏选项，零值即默认行为
type Options struct {
	StartPlayer Player
	WaterCap    int

	// ManualReplenish 事件完成后停在补给阶段，等待 StartActions 再执行补给
	ManualReplenish bool
	// AdvanceOnEventsEntry 在进入事件阶段时推进队列，而不是在事件完成时
	AdvanceOnEventsEntry bool

	Hand     Hand
	Notifier Notifier
}

// Game 一局游戏的全部可变状态，只允许单个调用方同步驱动
type Game struct {
	opts     Options
	hand     Hand
	notifier Notifier

	turn   TurnState
	queues [2]*EventQueue
	water  [2]*WaterCounter
	boards [2]*Board

	nextEventID int
}

func New(opts Options) *Game {
	if !opts.StartPlayer.Valid() {
		opts.StartPlayer = Player1
	}
	if opts.WaterCap <= 0 {
		opts.WaterCap = DefaultWaterCap
	}
	g := &Game{
		opts:        opts,
		hand:        opts.Hand,
		notifier:    opts.Notifier,
		nextEventID: 1,
	}
	if g.hand == nil {
		g.hand = nopHand{}
	}
	if g.notifier == nil {
		g.notifier = nopNotifier{}
	}
	for i := range g.queues {
		g.queues[i] = NewEventQueue()
		g.water[i] = NewWaterCounter(opts.WaterCap)
		g.boards[i] = NewBoard()
	}
	g.turn = g.initialTurn()
	return g
}

func (g *Game) initialTurn() TurnState {
	return TurnState{
		CurrentPlayer: g.opts.StartPlayer,
		Phase:         PhaseEvents,
		IsFirstTurn:   true,
		TurnNumber:    1,
	}
}

func (g *Game) Turn() TurnState {
	return g.turn
}

func (g *Game) StartPlayer() Player {
	return g.opts.StartPlayer
}

// SetNotifier 替换通知端，nil 表示不通知
func (g *Game) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	g.notifier = n
}

// ---------- 阶段切换 ----------

// StartEvents 重新进入事件阶段，不换人、不推进队列
func (g *Game) StartEvents() []Step {
	return g.run(g.stepEventsStarted)
}

// CompleteEvents 事件阶段 -> 补给阶段，当前玩家的队列推进一次，然后自动补给
func (g *Game) CompleteEvents() ([]Step, error) {
	if g.turn.Phase != PhaseEvents {
		return nil, fmt.Errorf("events complete during %s: %w", g.turn.Phase, ErrInvalidTransition)
	}
	if g.opts.ManualReplenish {
		return g.run(g.stepEventsResolved, g.stepReplenishStarted), nil
	}
	return g.run(g.stepEventsResolved, g.stepReplenishStarted, g.stepCardDrawn, g.stepWaterCollected, g.stepActionsReady), nil
}

// StartActions 进入行动阶段。仍在补给阶段时先执行补给；仍在事件阶段时走完整的事件完成流程。
func (g *Game) StartActions() []Step {
	switch g.turn.Phase {
	case PhaseEvents:
		return g.run(g.stepEventsResolved, g.stepReplenishStarted, g.stepCardDrawn, g.stepWaterCollected, g.stepActionsReady)
	case PhaseReplenish:
		return g.run(g.stepCardDrawn, g.stepWaterCollected, g.stepActionsReady)
	default:
		return g.run(g.stepActionsStarted)
	}
}

// EndTurn 行动阶段 -> 对手的事件阶段。不会推进队列（AdvanceOnEventsEntry 除外）。
func (g *Game) EndTurn() ([]Step, error) {
	if g.turn.Phase != PhaseActions {
		return nil, fmt.Errorf("end turn during %s: %w", g.turn.Phase, ErrInvalidTransition)
	}
	steps := []stepFunc{g.stepTurnEnded, g.stepPlayerTurn}
	if g.opts.AdvanceOnEventsEntry {
		steps = append(steps, g.stepEventsEntered)
	}
	return g.run(steps...), nil
}

// WaterGrant 当前玩家在补给阶段能拿到的水
func (g *Game) WaterGrant() int {
	if g.turn.IsFirstTurn && g.turn.CurrentPlayer == g.opts.StartPlayer {
		return FirstTurnWater
	}
	return ReplenishWater
}

func (g *Game) stepEventsStarted() Step {
	g.turn.Phase = PhaseEvents
	return Step{Kind: StepEventsStarted, Notice: Notice{
		Kind: NoticeInfo, Message: "Events Phase Started", Detail: "Resolve any events in the queue",
	}}
}

func (g *Game) stepEventsResolved() Step {
	return g.resolveEvents(!g.opts.AdvanceOnEventsEntry)
}

// stepEventsEntered 只在 AdvanceOnEventsEntry 下使用：新玩家进入事件阶段即结算
func (g *Game) stepEventsEntered() Step {
	s := g.resolveEvents(true)
	s.Notice.Detail = "Resolved on entering Events Phase"
	return s
}

func (g *Game) resolveEvents(advance bool) Step {
	var resolved *Event
	if advance {
		resolved = g.queues[g.turn.CurrentPlayer.index()].Advance()
	}
	s := Step{Kind: StepEventsResolved, Event: resolved, Notice: Notice{
		Kind: NoticeSuccess, Message: "Events Resolved", Detail: "Moving to Replenish Phase",
	}}
	if resolved != nil {
		s.Notice.Message = "Event Resolved: " + resolved.Name
	}
	return s
}

func (g *Game) stepReplenishStarted() Step {
	g.turn.Phase = PhaseReplenish
	return Step{Kind: StepReplenishStarted, Notice: Notice{
		Kind: NoticeInfo, Message: "Replenish Phase", Detail: "Drawing card and collecting water",
	}}
}

func (g *Game) stepCardDrawn() Step {
	g.hand.Draw(g.turn.CurrentPlayer)
	return Step{Kind: StepCardDrawn, Amount: 1, Notice: Notice{
		Kind: NoticeInfo, Message: "Draw 1 Card", Detail: "Add a card to your hand",
	}}
}

func (g *Game) stepWaterCollected() Step {
	amount := g.WaterGrant()
	detail := "Collect your water for the turn"
	if amount == FirstTurnWater {
		detail = "First turn: start player gets 1 water"
	}
	g.water[g.turn.CurrentPlayer.index()].Grant(amount)
	return Step{Kind: StepWaterCollected, Amount: amount, Notice: Notice{
		Kind: NoticeInfo, Message: fmt.Sprintf("Collect %d Water", amount), Detail: detail,
	}}
}

func (g *Game) stepActionsReady() Step {
	g.turn.Phase = PhaseActions
	return Step{Kind: StepActionsReady, Notice: Notice{
		Kind: NoticeSuccess, Message: "Ready for Actions", Detail: "You can now play cards and use abilities",
	}}
}

func (g *Game) stepActionsStarted() Step {
	g.turn.Phase = PhaseActions
	return Step{Kind: StepActionsStarted, Notice: Notice{
		Kind: NoticeInfo, Message: "Actions Phase Started", Detail: "Play cards and use abilities",
	}}
}

func (g *Game) stepTurnEnded() Step {
	return Step{Kind: StepTurnEnded, Notice: Notice{
		Kind: NoticeSuccess, Message: "Turn Ended", Detail: "Returning water to the pool",
	}}
}

func (g *Game) stepPlayerTurn() Step {
	next := g.turn.CurrentPlayer.Opponent()
	g.turn.CurrentPlayer = next
	g.turn.IsFirstTurn = false
	g.turn.Phase = PhaseEvents
	if next == g.opts.StartPlayer {
		g.turn.TurnNumber++
	}
	return Step{Kind: StepPlayerTurn, Notice: Notice{
		Kind: NoticeInfo, Message: fmt.Sprintf("Player %d's Turn", int(next)), Detail: "Starting Events Phase",
	}}
}

// ---------- 事件队列 ----------

func (g *Game) Queue(p Player) (*EventQueue, error) {
	if !p.Valid() {
		return nil, ErrInvalidPlayer
	}
	return g.queues[p.index()], nil
}

// AddEvent 新建事件（分配 id）并插入玩家的队列。失败时队列和 id 计数器都不变。
func (g *Game) AddEvent(p Player, name string, targetSlot int) (Event, int, error) {
	q, err := g.Queue(p)
	if err != nil {
		return Event{}, 0, err
	}
	event := Event{ID: g.nextEventID, Name: name}
	slot, err := q.Insert(event, targetSlot)
	if err != nil {
		return Event{}, 0, err
	}
	g.nextEventID++
	g.run(func() Step {
		e := event
		return Step{Kind: StepEventAdded, Player: p, Amount: slot, Event: &e, Notice: Notice{
			Kind: NoticeInfo, Message: "Event Added: " + name, Detail: fmt.Sprintf("Queued in slot %d", slot),
		}}
	})
	return event, slot, nil
}

func (g *Game) RemoveEvent(p Player, eventID int) (Event, error) {
	q, err := g.Queue(p)
	if err != nil {
		return Event{}, err
	}
	removed, err := q.Remove(eventID)
	if err != nil {
		return Event{}, err
	}
	g.run(func() Step {
		e := removed
		return Step{Kind: StepEventRemoved, Player: p, Event: &e, Notice: Notice{
			Kind: NoticeInfo, Message: "Event Removed: " + removed.Name,
		}}
	})
	return removed, nil
}

func (g *Game) ResetQueue(p Player) error {
	q, err := g.Queue(p)
	if err != nil {
		return err
	}
	q.Reset()
	g.run(func() Step {
		return Step{Kind: StepQueueReset, Player: p, Notice: Notice{Kind: NoticeInfo, Message: "Event queue reset"}}
	})
	return nil
}

// ---------- 水 ----------

// WaterOp 手动调整水的操作
type WaterOp string

const (
	WaterIncrement WaterOp = "increment"
	WaterDecrement WaterOp = "decrement"
	WaterReset     WaterOp = "reset"
)

func (g *Game) Water(p Player) (*WaterCounter, error) {
	if !p.Valid() {
		return nil, ErrInvalidPlayer
	}
	return g.water[p.index()], nil
}

// AdjustWater 返回调整后的值。未生效的加减（到达软上限或已经为 0）不发通知。
func (g *Game) AdjustWater(p Player, op WaterOp) (int, error) {
	w, err := g.Water(p)
	if err != nil {
		return 0, err
	}
	changed := true
	switch op {
	case WaterIncrement:
		changed = w.Increment()
	case WaterDecrement:
		changed = w.Decrement()
	case WaterReset:
		w.Reset()
	default:
		return w.Value(), fmt.Errorf("water op %q: %w", op, ErrUnknownOp)
	}
	if changed {
		g.run(func() Step {
			return Step{Kind: StepWaterChanged, Player: p, Amount: w.Value(), Notice: Notice{
				Kind: NoticeInfo, Message: fmt.Sprintf("%s water: %d", p, w.Value()),
			}}
		})
	}
	return w.Value(), nil
}

// ---------- 场地 ----------

// BoardOp 对场地槽位的操作
type BoardOp string

const (
	BoardPlace       BoardOp = "place"
	BoardClear       BoardOp = "clear"
	BoardReady       BoardOp = "ready"
	BoardDamage      BoardOp = "damage"
	BoardDestroy     BoardOp = "destroy"
	BoardWaterAdd    BoardOp = "water-add"
	BoardWaterRemove BoardOp = "water-remove"
)

func (g *Game) Board(p Player) (*Board, error) {
	if !p.Valid() {
		return nil, ErrInvalidPlayer
	}
	return g.boards[p.index()], nil
}

// ApplyBoard 对某一列的某个槽位执行操作。card 只在 place 时使用。
func (g *Game) ApplyBoard(p Player, column int, slot SlotType, op BoardOp, card CardRef) error {
	b, err := g.Board(p)
	if err != nil {
		return err
	}
	col, err := b.Column(column)
	if err != nil {
		return err
	}
	changed := true
	switch op {
	case BoardPlace:
		err = col.Place(slot, card)
	case BoardClear:
		_, err = col.Clear(slot)
	case BoardReady:
		err = col.ToggleReady(slot)
	case BoardDamage:
		err = col.ToggleDamage(slot)
	case BoardDestroy:
		if slot != SlotCamp {
			return ErrInvalidSlotType
		}
		changed, err = col.DestroyCamp()
	case BoardWaterAdd:
		err = col.AddWater(slot)
	case BoardWaterRemove:
		err = col.RemoveWater(slot)
	default:
		return fmt.Errorf("board op %q: %w", op, ErrUnknownOp)
	}
	if err != nil || !changed {
		return err
	}
	g.run(func() Step {
		return Step{Kind: StepBoardChanged, Player: p, Amount: column, Notice: Notice{
			Kind:    NoticeInfo,
			Message: fmt.Sprintf("%s %s column %d %s", p, op, column+1, slot),
		}}
	})
	return nil
}

// ---------- 重置 ----------

// Reset 回到初始状态。营地保留（恢复完好），人物、事件清空，水回到上限。
// 事件 id 计数器不重置。
func (g *Game) Reset() {
	for i := range g.queues {
		g.queues[i].Reset()
		g.water[i].Reset()
		g.boards[i].reset()
	}
	g.turn = g.initialTurn()
	g.run(func() Step {
		return Step{Kind: StepGameReset, Notice: Notice{Kind: NoticeInfo, Message: "Game reset"}}
	})
}
