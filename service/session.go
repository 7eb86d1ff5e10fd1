package service

import (
	"sync"

	"radlands/dto"
	"radlands/engine"
	"radlands/entities"
)

// Session 一局游戏的内存状态。engine.Game 只允许单个调用方，所以每个公开操作都加锁。
type Session struct {
	mu     sync.Mutex
	record entities.GameRecord
	game   *engine.Game
	hand   *handTracker
}

func (s *Session) view() dto.GameView {
	return dto.GameView{
		Game:  s.record,
		State: s.game.Snapshot(),
		Hands: s.hand.counts(),
	}
}

func (s *Session) View() dto.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) summary() dto.GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn := s.game.Turn()
	return dto.GameSummary{
		ID:            s.record.ID,
		Player1Name:   s.record.Player1Name,
		Player2Name:   s.record.Player2Name,
		Status:        s.record.Status,
		Live:          true,
		CurrentPlayer: int(turn.CurrentPlayer),
		Phase:         turn.Phase,
		TurnNumber:    turn.TurnNumber,
	}
}

// Signal 阶段信号
type Signal string

const (
	SignalStartEvents    Signal = "start-events"
	SignalEventsComplete Signal = "events-complete"
	SignalStartActions   Signal = "start-actions"
	SignalEndTurn        Signal = "end-turn"
)

func (s *Session) signal(sig Signal) (dto.TransitionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record.Status == entities.GameStatusFinished {
		return dto.TransitionResponse{}, ErrGameFinished
	}

	var (
		steps []engine.Step
		err   error
	)
	switch sig {
	case SignalStartEvents:
		steps = s.game.StartEvents()
	case SignalEventsComplete:
		steps, err = s.game.CompleteEvents()
	case SignalStartActions:
		steps = s.game.StartActions()
	case SignalEndTurn:
		steps, err = s.game.EndTurn()
	default:
		return dto.TransitionResponse{}, ErrInvalidSignal
	}
	if err != nil {
		return dto.TransitionResponse{}, err
	}
	return dto.TransitionResponse{Steps: steps, State: s.game.Snapshot()}, nil
}

func (s *Session) addEvent(p engine.Player, name string, slot int) (dto.AddEventResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, placed, err := s.game.AddEvent(p, name, slot)
	if err != nil {
		return dto.AddEventResponse{}, err
	}
	return dto.AddEventResponse{Event: event, Slot: placed}, nil
}

func (s *Session) removeEvent(p engine.Player, eventID int) (engine.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.RemoveEvent(p, eventID)
}

func (s *Session) resetQueue(p engine.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ResetQueue(p)
}

func (s *Session) adjustWater(p engine.Player, op engine.WaterOp) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.AdjustWater(p, op)
}

func (s *Session) applyBoard(p engine.Player, column int, slot engine.SlotType, op engine.BoardOp, card engine.CardRef) (engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.game.ApplyBoard(p, column, slot, op, card); err != nil {
		return engine.Snapshot{}, err
	}
	return s.game.Snapshot(), nil
}

func (s *Session) reset() dto.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hand.reset()
	s.game.Reset()
	return s.view()
}

func (s *Session) setStatus(status entities.GameStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.Status = status
}
