package entities

// 卡牌类型
const (
	CardTypePerson = "person"
	CardTypeCamp   = "camp"
	CardTypeEvent  = "event"
)

type Ability struct {
	Description string `json:"description"`
	WaterCost   int    `json:"water_cost"`
}

// Card 卡牌目录中的一张牌
type Card struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	WaterCost    int       `json:"water_cost"`
	Abilities    []Ability `json:"abilities"`
	Traits       []string  `json:"traits"`
	JunkEffect   string    `json:"junk_effect,omitempty"`
	EventEffect  string    `json:"event_effect,omitempty"`
	BombPosition *int      `json:"bomb_position,omitempty"` // 事件牌进入事件队列的槽位
	InitialDraw  *int      `json:"initial_draw,omitempty"`  // 营地牌的起手抽牌数
	Expansion    string    `json:"expansion"`
}
