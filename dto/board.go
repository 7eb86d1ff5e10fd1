package dto

// BoardRequest 只有 place 操作需要卡牌 id
type BoardRequest struct {
	CardID int `json:"card_id"`
}

type WaterResponse struct {
	Player int `json:"player"`
	Water  int `json:"water"`
}
