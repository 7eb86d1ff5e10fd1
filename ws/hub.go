package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"radlands/dto"
	"radlands/engine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GameViewer 订阅时用来发送当前状态
type GameViewer interface {
	GetGame(ctx context.Context, id int) (dto.GameView, error)
}

// Hub 按游戏 id 分组的订阅连接。只向客户端推送，不接收操作。
type Hub struct {
	mu    sync.Mutex
	games map[int]map[string]*client
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{games: make(map[int]map[string]*client), log: log}
}

// 统一格式的消息（type + 数据）
type message struct {
	Type   string        `json:"type"`
	GameID int           `json:"gameId"`
	Client string        `json:"clientId,omitempty"`
	Step   *engine.Step  `json:"step,omitempty"`
	State  *dto.GameView `json:"state,omitempty"`
}

func buildMessage(m message) []byte {
	data, _ := json.Marshal(m)
	return data
}

// Publish 推送一个步骤给该游戏的所有订阅者，不阻塞调用方
func (h *Hub) Publish(gameID int, step engine.Step) {
	msg := buildMessage(message{Type: "step", GameID: gameID, Step: &step})

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.games[gameID] {
		if !c.enqueue(msg) {
			h.log.Warn("📭 发送缓冲已满，丢弃消息", zap.Int("gameID", gameID), zap.String("clientID", id))
		}
	}
}

// Subscribers 当前订阅该游戏的连接数
func (h *Hub) Subscribers(gameID int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games[gameID])
}

// CloseGame 断开该游戏的所有订阅（游戏被删除时）
func (h *Hub) CloseGame(gameID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.games[gameID] {
		close(c.send)
	}
	delete(h.games, gameID)
}

func (h *Hub) subscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.games[c.gameID] == nil {
		h.games[c.gameID] = make(map[string]*client)
	}
	h.games[c.gameID][c.id] = c
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.games[c.gameID]
	if !ok {
		return
	}
	if _, ok := subs[c.id]; !ok {
		return
	}
	delete(subs, c.id)
	close(c.send)
	if len(subs) == 0 {
		delete(h.games, c.gameID)
	}
	c.log.Info("👋 订阅者离开")
}

// Handler WebSocket 入口：/ws?gameId=1
func (h *Hub) Handler(games GameViewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, err := strconv.Atoi(c.Query("gameId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status_code": 400, "msg": "缺少或无效的 gameId", "data": nil})
			return
		}
		view, err := games.GetGame(c.Request.Context(), gameID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status_code": 404, "msg": err.Error(), "data": nil})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn("WebSocket 升级失败", zap.Error(err))
			return
		}

		id := uuid.New().String()
		cl := &client{
			id:     id,
			gameID: gameID,
			conn:   conn,
			send:   make(chan []byte, sendBuffer),
			log:    h.log.With(zap.Int("gameID", gameID), zap.String("clientID", id)),
		}
		// 先放初始化消息再订阅，保证它排在所有步骤之前
		cl.enqueue(buildMessage(message{Type: "init", GameID: gameID, Client: id, State: &view}))
		h.subscribe(cl)
		cl.log.Info("🔌 订阅者加入", zap.Int("subscribers", h.Subscribers(gameID)))

		go cl.writePump()
		cl.readPump(h)
	}
}
