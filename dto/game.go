package dto

import (
	"radlands/engine"
	"radlands/entities"
)

type CreateGameRequest struct {
	Player1Name  string `json:"player1_name"`
	Player2Name  string `json:"player2_name"`
	Player1Camps []int  `json:"player1_camps"`
	Player2Camps []int  `json:"player2_camps"`
	StartPlayer  int    `json:"start_player"` // 0 表示随机
}

type CreateGameResponse struct {
	ID          int `json:"id"`
	StartPlayer int `json:"start_player"`
}

// GameView 游戏记录 + 当前对局状态
type GameView struct {
	Game  entities.GameRecord `json:"game"`
	State engine.Snapshot     `json:"state"`
	Hands map[int]int         `json:"hands"` // 每位玩家本局抽过的牌数
}

type GameSummary struct {
	ID            int                 `json:"id"`
	Player1Name   string              `json:"player1_name"`
	Player2Name   string              `json:"player2_name"`
	Status        entities.GameStatus `json:"status"`
	Live          bool                `json:"live"`
	CurrentPlayer int                 `json:"current_player,omitempty"`
	Phase         engine.Phase        `json:"phase,omitempty"`
	TurnNumber    int                 `json:"turn_number,omitempty"`
}

type GetGameList struct {
	Games []GameSummary `json:"games"`
}

// TransitionResponse 一次操作依次产生的步骤和操作后的状态
type TransitionResponse struct {
	Steps []engine.Step   `json:"steps"`
	State engine.Snapshot `json:"state"`
}
