package engine

// Snapshot 对外展示的只读状态
type Snapshot struct {
	Turn        TurnState        `json:"turn"`
	StartPlayer Player           `json:"startPlayer"`
	WaterGrant  int              `json:"waterGrant"`
	Players     []PlayerSnapshot `json:"players"`
}

type PlayerSnapshot struct {
	Player   Player           `json:"player"`
	Water    int              `json:"water"`
	WaterCap int              `json:"waterCap"`
	Queue    []*Event         `json:"eventQueue"`
	Columns  []ColumnSnapshot `json:"columns"`
}

type ColumnSnapshot struct {
	Index      int        `json:"index"`
	Camp       *CardState `json:"camp"`
	Front      *CardState `json:"front"`
	Behind     *CardState `json:"behind"`
	Protection Protection `json:"protection"`
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Turn:        g.turn,
		StartPlayer: g.opts.StartPlayer,
		WaterGrant:  g.WaterGrant(),
	}
	for _, p := range []Player{Player1, Player2} {
		i := p.index()
		slots := g.queues[i].Slots()
		ps := PlayerSnapshot{
			Player:   p,
			Water:    g.water[i].Value(),
			WaterCap: g.water[i].Cap(),
			Queue:    slots[:],
		}
		for _, c := range g.boards[i].Columns() {
			ps.Columns = append(ps.Columns, snapshotColumn(c))
		}
		snap.Players = append(snap.Players, ps)
	}
	return snap
}

func snapshotColumn(c *Column) ColumnSnapshot {
	cs := ColumnSnapshot{Index: c.Index, Protection: ProtectionOf(c)}
	if card, ok := c.Card(SlotCamp); ok {
		cs.Camp = &card
	}
	if card, ok := c.Card(SlotFront); ok {
		cs.Front = &card
	}
	if card, ok := c.Card(SlotBehind); ok {
		cs.Behind = &card
	}
	return cs
}
