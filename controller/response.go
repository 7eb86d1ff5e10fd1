package controller

import (
	"errors"
	"net/http"

	"radlands/engine"
	"radlands/service"

	"github.com/gin-gonic/gin"
)

func ok(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         msg,
		"data":        data,
	})
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"status_code": code,
		"msg":         msg,
		"data":        nil,
	})
}

// statusOf 把错误映射为 HTTP 状态码：不存在 404，规则冲突 409，参数错误 400，其余 500
func statusOf(err error) int {
	switch {
	case service.IsNotFound(err), errors.Is(err, engine.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidTransition),
		errors.Is(err, engine.ErrSlotUnavailable),
		errors.Is(err, engine.ErrSlotOccupied),
		errors.Is(err, engine.ErrEmptySlot),
		errors.Is(err, engine.ErrCampDestroyed),
		errors.Is(err, engine.ErrCampNotRemovable),
		errors.Is(err, service.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidSlot),
		errors.Is(err, engine.ErrInvalidColumn),
		errors.Is(err, engine.ErrInvalidSlotType),
		errors.Is(err, engine.ErrInvalidPlayer),
		errors.Is(err, engine.ErrUnknownOp),
		errors.Is(err, service.ErrInvalidSignal),
		errors.Is(err, service.ErrInvalidCamp),
		errors.Is(err, service.ErrTooManyCamps),
		errors.Is(err, service.ErrNotEventCard),
		errors.Is(err, service.ErrMissingEvent),
		errors.Is(err, service.ErrMissingCard),
		errors.Is(err, service.ErrWrongCardType),
		errors.Is(err, service.ErrInvalidStarter):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func failErr(c *gin.Context, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		c.Error(err)
	}
	fail(c, code, err.Error())
}
