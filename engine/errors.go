package engine

import "errors"

var (
	// 事件队列
	ErrInvalidSlot     = errors.New("事件槽位必须是 1、2 或 3")
	ErrSlotUnavailable = errors.New("目标槽位及其后方没有空位")
	ErrEventNotFound   = errors.New("队列中没有该事件")

	// 场地
	ErrEmptySlot        = errors.New("该槽位没有卡牌")
	ErrSlotOccupied     = errors.New("该槽位已有卡牌")
	ErrCampDestroyed    = errors.New("营地已被摧毁")
	ErrCampNotRemovable = errors.New("营地不能移除，只能摧毁")
	ErrInvalidColumn    = errors.New("列号必须是 0、1 或 2")
	ErrInvalidSlotType  = errors.New("槽位类型必须是 camp、front 或 behind")

	// 回合
	ErrInvalidTransition = errors.New("当前阶段不接受该操作")
	ErrInvalidPlayer     = errors.New("玩家只能是 1 或 2")

	ErrUnknownOp = errors.New("未知的操作")
)
