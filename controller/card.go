package controller

import (
	"strconv"

	"radlands/service"

	"github.com/gin-gonic/gin"
)

const defaultCardLimit = 100

type CardController struct {
	svc *service.GameService
}

func NewCardController(svc *service.GameService) *CardController {
	return &CardController{svc: svc}
}

// SearchCards GET /api/cards?search=&type=&limit=
func (cc *CardController) SearchCards(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultCardLimit)))
	if err != nil || limit <= 0 {
		limit = defaultCardLimit
	}
	cards, err := cc.svc.SearchCards(c.Request.Context(), c.Query("search"), c.Query("type"), limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, "获取成功", gin.H{"cards": cards})
}

func Health(c *gin.Context) {
	ok(c, "ok", gin.H{"status": "healthy"})
}
