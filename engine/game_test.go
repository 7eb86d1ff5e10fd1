package engine_test

import (
	"errors"
	"testing"

	"radlands/engine"
)

type recorder struct {
	steps []engine.Step
	draws []engine.Player
}

func (r *recorder) Notify(s engine.Step)     { r.steps = append(r.steps, s) }
func (r *recorder) Draw(p engine.Player)     { r.draws = append(r.draws, p) }
func (r *recorder) kinds() []engine.StepKind { return stepKinds(r.steps) }

func stepKinds(steps []engine.Step) []engine.StepKind {
	out := make([]engine.StepKind, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Kind)
	}
	return out
}

func newTestGame(opts engine.Options) (*engine.Game, *recorder) {
	r := &recorder{}
	opts.Hand = r
	opts.Notifier = r
	return engine.New(opts), r
}

func equalKinds(a, b []engine.StepKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func waterOf(t *testing.T, g *engine.Game, p engine.Player) int {
	t.Helper()
	w, err := g.Water(p)
	if err != nil {
		t.Fatalf("water: %v", err)
	}
	return w.Value()
}

func TestInitialTurnState(t *testing.T) {
	g, _ := newTestGame(engine.Options{})
	turn := g.Turn()
	if turn.CurrentPlayer != engine.Player1 || turn.Phase != engine.PhaseEvents || !turn.IsFirstTurn {
		t.Fatalf("unexpected initial state %+v", turn)
	}
	if turn.TurnNumber != 1 {
		t.Fatalf("expected turn 1, got %d", turn.TurnNumber)
	}
}

func TestFullFirstTurn(t *testing.T) {
	g, rec := newTestGame(engine.Options{})

	steps, err := g.CompleteEvents()
	if err != nil {
		t.Fatalf("complete events: %v", err)
	}
	want := []engine.StepKind{
		engine.StepEventsResolved,
		engine.StepReplenishStarted,
		engine.StepCardDrawn,
		engine.StepWaterCollected,
		engine.StepActionsReady,
	}
	if got := stepKinds(steps); !equalKinds(got, want) {
		t.Fatalf("steps = %v, want %v", got, want)
	}
	if steps[3].Amount != 1 {
		t.Fatalf("first-turn water grant = %d, want 1", steps[3].Amount)
	}
	if waterOf(t, g, engine.Player1) != 4 {
		t.Fatalf("player 1 water = %d, want 4", waterOf(t, g, engine.Player1))
	}
	if g.Turn().Phase != engine.PhaseActions {
		t.Fatalf("expected Actions, got %s", g.Turn().Phase)
	}

	if _, err := g.EndTurn(); err != nil {
		t.Fatalf("end turn: %v", err)
	}
	turn := g.Turn()
	if turn.CurrentPlayer != engine.Player2 || turn.Phase != engine.PhaseEvents || turn.IsFirstTurn {
		t.Fatalf("unexpected state after end turn %+v", turn)
	}
	if len(rec.draws) != 1 || rec.draws[0] != engine.Player1 {
		t.Fatalf("expected one draw for player 1, got %v", rec.draws)
	}
}

func TestDrawNotifiedBeforeWater(t *testing.T) {
	g, rec := newTestGame(engine.Options{})
	g.CompleteEvents()

	drawAt, waterAt := -1, -1
	for i, s := range rec.steps {
		switch s.Kind {
		case engine.StepCardDrawn:
			drawAt = i
		case engine.StepWaterCollected:
			waterAt = i
		}
	}
	if drawAt < 0 || waterAt < 0 || drawAt > waterAt {
		t.Fatalf("draw must be observed before water: %v", rec.kinds())
	}
}

func TestNotifierSeesEachStepState(t *testing.T) {
	var phases []engine.Phase
	var water []int
	var g *engine.Game
	g = engine.New(engine.Options{Notifier: engine.NotifierFunc(func(s engine.Step) {
		phases = append(phases, s.Phase)
		w, _ := g.Water(engine.Player1)
		water = append(water, w.Value())
	})})
	g.CompleteEvents()

	wantPhases := []engine.Phase{
		engine.PhaseEvents, engine.PhaseReplenish, engine.PhaseReplenish, engine.PhaseReplenish, engine.PhaseActions,
	}
	for i, p := range wantPhases {
		if phases[i] != p {
			t.Fatalf("step %d phase = %s, want %s", i, phases[i], p)
		}
	}
	// 水在 water_collected 这一步才到账
	if water[2] != 3 || water[3] != 4 {
		t.Fatalf("water observed per step = %v", water)
	}
}

func TestSecondPlayerGetsFullWater(t *testing.T) {
	g, _ := newTestGame(engine.Options{})
	g.CompleteEvents()
	g.EndTurn()

	w, _ := g.Water(engine.Player2)
	w.Decrement()
	w.Decrement()
	w.Decrement()

	steps, err := g.CompleteEvents()
	if err != nil {
		t.Fatalf("complete events: %v", err)
	}
	for _, s := range steps {
		if s.Kind == engine.StepWaterCollected && s.Amount != 3 {
			t.Fatalf("player 2 grant = %d, want 3", s.Amount)
		}
	}
	if waterOf(t, g, engine.Player2) != 3 {
		t.Fatalf("player 2 water = %d, want 3", waterOf(t, g, engine.Player2))
	}
}

func TestTurnNumberIncrementsOnReturnToStartPlayer(t *testing.T) {
	g, _ := newTestGame(engine.Options{})
	for i := 0; i < 2; i++ {
		g.CompleteEvents()
		g.EndTurn()
	}
	if g.Turn().TurnNumber != 2 || g.Turn().CurrentPlayer != engine.Player1 {
		t.Fatalf("unexpected turn %+v", g.Turn())
	}
	// 回到先手后不再是第一回合
	if g.WaterGrant() != engine.ReplenishWater {
		t.Fatalf("grant = %d, want %d", g.WaterGrant(), engine.ReplenishWater)
	}
}

func TestStartPlayerTwo(t *testing.T) {
	g, _ := newTestGame(engine.Options{StartPlayer: engine.Player2})
	if g.Turn().CurrentPlayer != engine.Player2 {
		t.Fatalf("expected player 2 to start")
	}
	if g.WaterGrant() != engine.FirstTurnWater {
		t.Fatalf("start player should get first-turn grant")
	}
}

func TestEventsAdvanceOncePerTurn(t *testing.T) {
	g, _ := newTestGame(engine.Options{})
	g.AddEvent(engine.Player1, "A", 1)
	g.AddEvent(engine.Player1, "B", 2)
	g.AddEvent(engine.Player2, "X", 1)

	steps, _ := g.CompleteEvents()
	if steps[0].Event == nil || steps[0].Event.Name != "A" {
		t.Fatalf("expected A resolved, got %+v", steps[0].Event)
	}
	q1, _ := g.Queue(engine.Player1)
	if e, ok := q1.At(1); !ok || e.Name != "B" {
		t.Fatalf("B should move to slot 1, got %+v", e)
	}
	q2, _ := g.Queue(engine.Player2)
	if q2.Len() != 1 {
		t.Fatal("opponent queue must not advance")
	}

	// 结束回合不推进队列
	g.EndTurn()
	if e, ok := q2.At(1); !ok || e.Name != "X" {
		t.Fatal("end turn must not advance the next player's queue")
	}
}

func TestStartEventsIsReentrant(t *testing.T) {
	g, _ := newTestGame(engine.Options{})
	g.AddEvent(engine.Player1, "A", 1)

	steps := g.StartEvents()
	if len(steps) != 1 || steps[0].Kind != engine.StepEventsStarted {
		t.Fatalf("unexpected steps %v", stepKinds(steps))
	}
	q, _ := g.Queue(engine.Player1)
	if q.Len() != 1 || g.Turn().CurrentPlayer != engine.Player1 {
		t.Fatal("start events must not advance the queue or change player")
	}
}

func TestSoftInvalidTransitions(t *testing.T) {
	g, _ := newTestGame(engine.Options{})
	if _, err := g.EndTurn(); !errors.Is(err, engine.ErrInvalidTransition) {
		t.Fatalf("end turn in Events: expected ErrInvalidTransition, got %v", err)
	}
	if g.Turn().Phase != engine.PhaseEvents || g.Turn().CurrentPlayer != engine.Player1 {
		t.Fatal("rejected transition must not change state")
	}

	g.CompleteEvents()
	if _, err := g.CompleteEvents(); !errors.Is(err, engine.ErrInvalidTransition) {
		t.Fatalf("events complete in Actions: expected ErrInvalidTransition, got %v", err)
	}
	if waterOf(t, g, engine.Player1) != 4 {
		t.Fatal("rejected transition must not grant water again")
	}
}

func TestStartActionsFoldsIntoPipeline(t *testing.T) {
	g, rec := newTestGame(engine.Options{})
	steps := g.StartActions()
	if len(steps) != 5 || g.Turn().Phase != engine.PhaseActions {
		t.Fatalf("start actions from Events should run the whole sequence, got %v", stepKinds(steps))
	}
	if len(rec.draws) != 1 {
		t.Fatal("expected one draw")
	}

	steps = g.StartActions()
	if len(steps) != 1 || steps[0].Kind != engine.StepActionsStarted {
		t.Fatalf("start actions in Actions should only re-announce, got %v", stepKinds(steps))
	}
	if len(rec.draws) != 1 || waterOf(t, g, engine.Player1) != 4 {
		t.Fatal("re-announce must not replenish again")
	}
}

func TestManualReplenish(t *testing.T) {
	g, rec := newTestGame(engine.Options{ManualReplenish: true})
	steps, err := g.CompleteEvents()
	if err != nil {
		t.Fatalf("complete events: %v", err)
	}
	if g.Turn().Phase != engine.PhaseReplenish || len(steps) != 2 {
		t.Fatalf("expected to stop in Replenish, got %s %v", g.Turn().Phase, stepKinds(steps))
	}
	if len(rec.draws) != 0 {
		t.Fatal("no draw before start actions")
	}

	steps = g.StartActions()
	want := []engine.StepKind{engine.StepCardDrawn, engine.StepWaterCollected, engine.StepActionsReady}
	if got := stepKinds(steps); !equalKinds(got, want) {
		t.Fatalf("steps = %v, want %v", got, want)
	}
	if waterOf(t, g, engine.Player1) != 4 {
		t.Fatalf("water = %d, want 4", waterOf(t, g, engine.Player1))
	}
}

func TestAdvanceOnEventsEntry(t *testing.T) {
	g, _ := newTestGame(engine.Options{AdvanceOnEventsEntry: true})
	g.AddEvent(engine.Player1, "A", 1)
	g.AddEvent(engine.Player2, "X", 1)

	steps, _ := g.CompleteEvents()
	if steps[0].Event != nil {
		t.Fatal("queue must not advance on events complete in this mode")
	}
	q1, _ := g.Queue(engine.Player1)
	if q1.Len() != 1 {
		t.Fatal("player 1 queue should be untouched")
	}

	steps, _ = g.EndTurn()
	last := steps[len(steps)-1]
	if last.Kind != engine.StepEventsResolved || last.Event == nil || last.Event.Name != "X" {
		t.Fatalf("expected X resolved on entering player 2 events, got %+v", last)
	}
}

func TestAddEventAllocatesIDs(t *testing.T) {
	g, rec := newTestGame(engine.Options{})
	e1, slot, err := g.AddEvent(engine.Player1, "Raiders", 2)
	if err != nil || slot != 2 || e1.ID != 1 {
		t.Fatalf("add: %+v slot=%d err=%v", e1, slot, err)
	}
	g.AddEvent(engine.Player1, "B", 2)
	if _, _, err := g.AddEvent(engine.Player1, "C", 2); !errors.Is(err, engine.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	if err := g.ResetQueue(engine.Player1); err != nil {
		t.Fatalf("reset queue: %v", err)
	}
	e4, _, _ := g.AddEvent(engine.Player1, "D", 1)
	if e4.ID != 3 {
		t.Fatalf("ids are never reused, got %d", e4.ID)
	}
	if _, _, err := g.AddEvent(engine.Player(3), "E", 1); !errors.Is(err, engine.ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer, got %v", err)
	}
	if rec.steps[0].Kind != engine.StepEventAdded || rec.steps[0].Amount != 2 {
		t.Fatalf("unexpected notification %+v", rec.steps[0])
	}
}

func TestAdjustWaterNotifiesOnlyOnChange(t *testing.T) {
	g, rec := newTestGame(engine.Options{})
	for i := 0; i < 4; i++ {
		g.AdjustWater(engine.Player2, engine.WaterDecrement)
	}
	if len(rec.steps) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(rec.steps))
	}
	v, err := g.AdjustWater(engine.Player2, engine.WaterReset)
	if err != nil || v != 3 {
		t.Fatalf("reset: %d %v", v, err)
	}
	if rec.steps[len(rec.steps)-1].Player != engine.Player2 {
		t.Fatal("water notification should name the adjusted player")
	}
}

func TestApplyBoard(t *testing.T) {
	g, rec := newTestGame(engine.Options{})
	card := engine.CardRef{ID: 1, Name: "Railgun"}
	if err := g.ApplyBoard(engine.Player1, 0, engine.SlotCamp, engine.BoardPlace, card); err != nil {
		t.Fatalf("place camp: %v", err)
	}
	if err := g.ApplyBoard(engine.Player1, 0, engine.SlotCamp, engine.BoardDestroy, engine.CardRef{}); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	n := len(rec.steps)
	if err := g.ApplyBoard(engine.Player1, 0, engine.SlotCamp, engine.BoardDestroy, engine.CardRef{}); err != nil {
		t.Fatalf("second destroy: %v", err)
	}
	if len(rec.steps) != n {
		t.Fatal("repeated destroy should not notify")
	}
	if err := g.ApplyBoard(engine.Player1, 4, engine.SlotFront, engine.BoardReady, card); !errors.Is(err, engine.ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if err := g.ApplyBoard(engine.Player1, 1, engine.SlotFront, engine.BoardDamage, card); !errors.Is(err, engine.ErrEmptySlot) {
		t.Fatalf("expected ErrEmptySlot, got %v", err)
	}
}

func TestResetGame(t *testing.T) {
	g, _ := newTestGame(engine.Options{})
	camp := engine.CardRef{ID: 2, Name: "Garage"}
	g.ApplyBoard(engine.Player1, 0, engine.SlotCamp, engine.BoardPlace, camp)
	g.ApplyBoard(engine.Player1, 0, engine.SlotCamp, engine.BoardDestroy, engine.CardRef{})
	g.ApplyBoard(engine.Player1, 0, engine.SlotFront, engine.BoardPlace, engine.CardRef{ID: 3, Name: "Raider"})
	g.AddEvent(engine.Player1, "A", 1)
	g.CompleteEvents()
	g.EndTurn()

	g.Reset()
	turn := g.Turn()
	if turn.CurrentPlayer != engine.Player1 || turn.Phase != engine.PhaseEvents || !turn.IsFirstTurn || turn.TurnNumber != 1 {
		t.Fatalf("unexpected turn after reset %+v", turn)
	}
	snap := g.Snapshot()
	col := snap.Players[0].Columns[0]
	if col.Camp == nil || col.Camp.IsDestroyed || col.Front != nil {
		t.Fatalf("unexpected column after reset %+v", col)
	}
	if snap.Players[0].Water != 3 {
		t.Fatalf("water after reset = %d", snap.Players[0].Water)
	}
}

func TestSnapshot(t *testing.T) {
	g, _ := newTestGame(engine.Options{})
	g.AddEvent(engine.Player2, "Acid Rain", 3)
	g.ApplyBoard(engine.Player2, 1, engine.SlotFront, engine.BoardPlace, engine.CardRef{ID: 3, Name: "Raider"})

	snap := g.Snapshot()
	if len(snap.Players) != 2 {
		t.Fatalf("expected 2 players")
	}
	p2 := snap.Players[1]
	if p2.Queue[2] == nil || p2.Queue[2].Name != "Acid Rain" {
		t.Fatalf("unexpected queue %+v", p2.Queue)
	}
	if !p2.Columns[1].Protection.CampProtected || p2.Columns[0].Protection.CampProtected {
		t.Fatalf("unexpected protection %+v", p2.Columns)
	}
	if snap.WaterGrant != engine.FirstTurnWater {
		t.Fatalf("water grant = %d", snap.WaterGrant)
	}
}

func TestUnknownOps(t *testing.T) {
	g, r := newTestGame(engine.Options{})
	if _, err := g.AdjustWater(engine.Player1, engine.WaterOp("spill")); !errors.Is(err, engine.ErrUnknownOp) {
		t.Fatalf("water op: %v", err)
	}
	if err := g.ApplyBoard(engine.Player1, 0, engine.SlotFront, engine.BoardOp("flip"), engine.CardRef{}); !errors.Is(err, engine.ErrUnknownOp) {
		t.Fatalf("board op: %v", err)
	}
	if len(r.steps) != 0 {
		t.Fatalf("failed ops notified %d steps", len(r.steps))
	}
}
