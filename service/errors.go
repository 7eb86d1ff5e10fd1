package service

import "errors"

var (
	ErrInvalidSignal  = errors.New("未知的阶段信号")
	ErrInvalidCamp    = errors.New("只能选择营地牌")
	ErrTooManyCamps   = errors.New("每位玩家最多 3 个营地")
	ErrNotEventCard   = errors.New("只能用事件牌添加事件")
	ErrMissingEvent   = errors.New("需要事件名或事件牌 id")
	ErrMissingCard    = errors.New("放置卡牌需要卡牌 id")
	ErrWrongCardType  = errors.New("卡牌类型与槽位不符")
	ErrGameFinished   = errors.New("游戏已结束")
	ErrInvalidStarter = errors.New("先手玩家只能是 0（随机）、1 或 2")
)
