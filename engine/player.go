package engine

import "fmt"

// Player 玩家编号，只有 1 和 2
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

// Opponent 返回对手
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) index() int {
	return int(p) - 1
}

func (p Player) String() string {
	return fmt.Sprintf("Player %d", int(p))
}

// ParsePlayer 校验外部传入的玩家编号
func ParsePlayer(n int) (Player, error) {
	p := Player(n)
	if !p.Valid() {
		return 0, ErrInvalidPlayer
	}
	return p, nil
}
