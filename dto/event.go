package dto

import "radlands/engine"

// AddEventRequest 直接给出事件名和槽位，或者给出事件牌 id（槽位取卡牌的 bomb_position）
type AddEventRequest struct {
	Player int    `json:"player" binding:"required"`
	Name   string `json:"name"`
	Slot   int    `json:"slot"`
	CardID int    `json:"card_id"`
}

type AddEventResponse struct {
	Event engine.Event `json:"event"`
	Slot  int          `json:"slot"`
}
