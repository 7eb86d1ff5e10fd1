package entities

type GameStatus string

const (
	GameStatusActive   GameStatus = "active"
	GameStatusFinished GameStatus = "finished"
)

// GameRecord 创建游戏时保存到 Redis 的信息（对局过程中的状态不持久化）
type GameRecord struct {
	ID           int        `json:"id" mapstructure:"id"`
	Player1Name  string     `json:"player1_name" mapstructure:"player1Name"`
	Player2Name  string     `json:"player2_name" mapstructure:"player2Name"`
	Player1Camps []int      `json:"player1_camps" mapstructure:"player1Camps"`
	Player2Camps []int      `json:"player2_camps" mapstructure:"player2Camps"`
	StartPlayer  int        `json:"start_player" mapstructure:"startPlayer"`
	Status       GameStatus `json:"status" mapstructure:"status"`
	CreatedAt    int64      `json:"created_at" mapstructure:"createdAt"`
}
