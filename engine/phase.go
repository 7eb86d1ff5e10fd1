package engine

// Phase 回合内的阶段
type Phase string

const (
	PhaseEvents    Phase = "events"
	PhaseReplenish Phase = "replenish"
	PhaseActions   Phase = "actions"
)

var phaseLabels = map[Phase]string{
	PhaseEvents:    "Events Phase",
	PhaseReplenish: "Replenish Phase",
	PhaseActions:   "Actions Phase",
}

func (p Phase) String() string {
	if s, ok := phaseLabels[p]; ok {
		return s
	}
	return "Unknown"
}

// Progress 阶段在回合中的序号（1/3 .. 3/3）
func (p Phase) Progress() int {
	switch p {
	case PhaseEvents:
		return 1
	case PhaseReplenish:
		return 2
	case PhaseActions:
		return 3
	}
	return 0
}
