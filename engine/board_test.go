package engine_test

import (
	"errors"
	"testing"

	"radlands/engine"
)

var (
	camp   = engine.CardRef{ID: 31, Name: "Water Bank"}
	raider = engine.CardRef{ID: 3, Name: "Raider"}
	medic  = engine.CardRef{ID: 4, Name: "Medic"}
)

func TestProtectionFollowsFrontOccupancy(t *testing.T) {
	tests := []struct {
		name          string
		front, behind bool
		campProtected bool
	}{
		{"empty", false, false, false},
		{"front only", true, false, true},
		{"behind only", false, true, false},
		{"both", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := engine.NewColumn(0)
			c.Place(engine.SlotCamp, camp)
			if tt.front {
				c.Place(engine.SlotFront, raider)
			}
			if tt.behind {
				c.Place(engine.SlotBehind, medic)
			}
			if got := engine.IsCampProtected(c); got != tt.campProtected {
				t.Errorf("IsCampProtected = %v, want %v", got, tt.campProtected)
			}
			if got := engine.IsBehindProtected(c); got != tt.campProtected {
				t.Errorf("IsBehindProtected = %v, want %v", got, tt.campProtected)
			}
			if !engine.IsFrontExposed(c) {
				t.Error("front should always be exposed")
			}
		})
	}
}

func TestProtectionIgnoresFrontState(t *testing.T) {
	c := engine.NewColumn(1)
	c.Place(engine.SlotFront, raider)
	c.ToggleReady(engine.SlotFront)
	c.ToggleDamage(engine.SlotFront)
	if !engine.IsCampProtected(c) {
		t.Fatal("exhausted, damaged front person still protects the camp")
	}

	c.Clear(engine.SlotFront)
	p := engine.ProtectionOf(c)
	if p.CampProtected || p.BehindProtected || !p.FrontExposed {
		t.Fatalf("unexpected protection after clearing front: %+v", p)
	}
}

func TestToggleOnEmptySlot(t *testing.T) {
	c := engine.NewColumn(0)
	if err := c.ToggleReady(engine.SlotFront); !errors.Is(err, engine.ErrEmptySlot) {
		t.Fatalf("expected ErrEmptySlot, got %v", err)
	}
	if err := c.ToggleDamage(engine.SlotBehind); !errors.Is(err, engine.ErrEmptySlot) {
		t.Fatalf("expected ErrEmptySlot, got %v", err)
	}
}

func TestToggleFlipsFlags(t *testing.T) {
	c := engine.NewColumn(0)
	c.Place(engine.SlotBehind, medic)

	c.ToggleReady(engine.SlotBehind)
	c.ToggleDamage(engine.SlotBehind)
	got, _ := c.Card(engine.SlotBehind)
	if got.IsReady || !got.IsDamaged {
		t.Fatalf("unexpected state %+v", got)
	}
	c.ToggleReady(engine.SlotBehind)
	got, _ = c.Card(engine.SlotBehind)
	if !got.IsReady {
		t.Fatal("second toggle should ready the card again")
	}
}

func TestDestroyCampIsIdempotent(t *testing.T) {
	c := engine.NewColumn(2)
	c.Place(engine.SlotCamp, camp)

	changed, err := c.DestroyCamp()
	if err != nil || !changed {
		t.Fatalf("first destroy: changed=%v err=%v", changed, err)
	}
	changed, err = c.DestroyCamp()
	if err != nil || changed {
		t.Fatalf("second destroy should be a silent no-op: changed=%v err=%v", changed, err)
	}
	if err := c.ToggleDamage(engine.SlotCamp); !errors.Is(err, engine.ErrCampDestroyed) {
		t.Fatalf("expected ErrCampDestroyed, got %v", err)
	}
	got, ok := c.Card(engine.SlotCamp)
	if !ok || !got.IsDestroyed {
		t.Fatal("destroyed camp stays in its slot")
	}
}

func TestPlaceAndClear(t *testing.T) {
	c := engine.NewColumn(0)
	if err := c.Place(engine.SlotFront, raider); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := c.Place(engine.SlotFront, medic); !errors.Is(err, engine.ErrSlotOccupied) {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}
	got, _ := c.Card(engine.SlotFront)
	if !got.IsReady || got.IsDamaged {
		t.Fatalf("person should enter ready and undamaged: %+v", got)
	}
	if _, err := c.Clear(engine.SlotCamp); !errors.Is(err, engine.ErrCampNotRemovable) {
		t.Fatalf("expected ErrCampNotRemovable, got %v", err)
	}
	removed, err := c.Clear(engine.SlotFront)
	if err != nil || removed.Card != raider {
		t.Fatalf("clear: %+v %v", removed, err)
	}
	if _, err := c.Clear(engine.SlotFront); !errors.Is(err, engine.ErrEmptySlot) {
		t.Fatalf("expected ErrEmptySlot, got %v", err)
	}
}

func TestCardWater(t *testing.T) {
	c := engine.NewColumn(0)
	c.Place(engine.SlotCamp, camp)
	c.AddWater(engine.SlotCamp)
	c.AddWater(engine.SlotCamp)
	c.RemoveWater(engine.SlotCamp)
	c.RemoveWater(engine.SlotCamp)
	c.RemoveWater(engine.SlotCamp)
	got, _ := c.Card(engine.SlotCamp)
	if got.WaterOnCard != 0 {
		t.Fatalf("water on card should stop at 0, got %d", got.WaterOnCard)
	}
	if err := c.AddWater(engine.SlotBehind); !errors.Is(err, engine.ErrEmptySlot) {
		t.Fatalf("expected ErrEmptySlot, got %v", err)
	}
}

func TestBoardColumnBounds(t *testing.T) {
	b := engine.NewBoard()
	for _, i := range []int{-1, 3} {
		if _, err := b.Column(i); !errors.Is(err, engine.ErrInvalidColumn) {
			t.Errorf("column %d: expected ErrInvalidColumn, got %v", i, err)
		}
	}
	if len(b.Columns()) != engine.ColumnCount {
		t.Fatalf("expected %d columns", engine.ColumnCount)
	}
}

func TestParseSlotType(t *testing.T) {
	if _, err := engine.ParseSlotType("middle"); !errors.Is(err, engine.ErrInvalidSlotType) {
		t.Fatalf("expected ErrInvalidSlotType, got %v", err)
	}
	if st, err := engine.ParseSlotType("behind"); err != nil || st != engine.SlotBehind {
		t.Fatalf("parse behind: %v %v", st, err)
	}
}
