package controller

import (
	"net/http"
	"strconv"

	"radlands/dto"
	"radlands/engine"
	"radlands/service"
	"radlands/ws"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	svc *service.GameService
	hub *ws.Hub
}

func NewGameController(svc *service.GameService, hub *ws.Hub) *GameController {
	return &GameController{svc: svc, hub: hub}
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, "无效的参数 "+name)
		return 0, false
	}
	return v, true
}

func (gc *GameController) CreateGame(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "缺少必要字段")
		return
	}
	resp, err := gc.svc.CreateGame(c.Request.Context(), req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "游戏创建成功", resp)
}

func (gc *GameController) ListGames(c *gin.Context) {
	list, err := gc.svc.ListGames(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "获取成功", list)
}

func (gc *GameController) GetGame(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	view, err := gc.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "获取成功", view)
}

func (gc *GameController) DeleteGame(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	if err := gc.svc.DeleteGame(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	gc.hub.CloseGame(id)
	ok(c, "游戏删除成功", nil)
}

func (gc *GameController) FinishGame(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	view, err := gc.svc.FinishGame(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "游戏已结束", view)
}

func (gc *GameController) ResetGame(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	view, err := gc.svc.ResetGame(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "游戏已重置", view)
}

// Signal POST /api/games/:id/phase/:signal
func (gc *GameController) Signal(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	resp, err := gc.svc.Signal(c.Request.Context(), id, service.Signal(c.Param("signal")))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "操作成功", resp)
}

func (gc *GameController) AddEvent(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	var req dto.AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "缺少必要字段")
		return
	}
	resp, err := gc.svc.AddEvent(c.Request.Context(), id, req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "事件已加入队列", resp)
}

func (gc *GameController) RemoveEvent(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	player, valid := intParam(c, "player")
	if !valid {
		return
	}
	eventID, valid := intParam(c, "eventID")
	if !valid {
		return
	}
	event, err := gc.svc.RemoveEvent(c.Request.Context(), id, player, eventID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "事件已移除", event)
}

func (gc *GameController) ResetQueue(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	player, valid := intParam(c, "player")
	if !valid {
		return
	}
	if err := gc.svc.ResetQueue(c.Request.Context(), id, player); err != nil {
		failErr(c, err)
		return
	}
	ok(c, "事件队列已清空", nil)
}

// AdjustWater POST /api/games/:id/water/:player/:op
func (gc *GameController) AdjustWater(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	player, valid := intParam(c, "player")
	if !valid {
		return
	}
	resp, err := gc.svc.AdjustWater(c.Request.Context(), id, player, engine.WaterOp(c.Param("op")))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "操作成功", resp)
}

// ApplyBoard POST /api/games/:id/board/:player/:column/:slot/:op，place 需要 body {"card_id": n}
func (gc *GameController) ApplyBoard(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	player, valid := intParam(c, "player")
	if !valid {
		return
	}
	column, valid := intParam(c, "column")
	if !valid {
		return
	}
	slot, err := engine.ParseSlotType(c.Param("slot"))
	if err != nil {
		failErr(c, err)
		return
	}
	var req dto.BoardRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "请求体格式错误")
			return
		}
	}
	snap, err := gc.svc.ApplyBoard(c.Request.Context(), id, player, column, slot, engine.BoardOp(c.Param("op")), req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "操作成功", snap)
}
