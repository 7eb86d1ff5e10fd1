package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"radlands/dto"
	"radlands/engine"
	"radlands/entities"
	"radlands/repository"
	"radlands/utils"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// GameRepository 游戏记录的持久化
type GameRepository interface {
	Create(ctx context.Context, rec entities.GameRecord) (entities.GameRecord, error)
	Get(ctx context.Context, id int) (entities.GameRecord, error)
	List(ctx context.Context) ([]entities.GameRecord, error)
	SetStatus(ctx context.Context, id int, status entities.GameStatus) error
	Delete(ctx context.Context, id int) error
}

// CardCatalog 卡牌目录
type CardCatalog interface {
	Search(ctx context.Context, search, cardType string) ([]entities.Card, error)
	Get(ctx context.Context, id int) (entities.Card, error)
}

// Publisher 把步骤推送给订阅了该游戏的客户端
type Publisher interface {
	Publish(gameID int, step engine.Step)
}

type nopPublisher struct{}

func (nopPublisher) Publish(int, engine.Step) {}

// GameService 管理所有进行中的对局
type GameService struct {
	games   GameRepository
	catalog CardCatalog
	pub     Publisher
	log     *zap.Logger
	opts    engine.Options

	mu       sync.Mutex
	sessions map[int]*Session

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGameService opts 中的 StartPlayer、Hand、Notifier 会被每局游戏覆盖
func NewGameService(games GameRepository, catalog CardCatalog, pub Publisher, log *zap.Logger, opts engine.Options) *GameService {
	if pub == nil {
		pub = nopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GameService{
		games:    games,
		catalog:  catalog,
		pub:      pub,
		log:      log,
		opts:     opts,
		sessions: make(map[int]*Session),
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (s *GameService) randomPlayer() engine.Player {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return engine.Player(s.rng.Intn(2) + 1)
}

// CreateGame 保存游戏记录并开始一局新的对局
func (s *GameService) CreateGame(ctx context.Context, req dto.CreateGameRequest) (dto.CreateGameResponse, error) {
	start := engine.Player(req.StartPlayer)
	switch {
	case req.StartPlayer == 0:
		start = s.randomPlayer()
	case !start.Valid():
		return dto.CreateGameResponse{}, ErrInvalidStarter
	}
	if len(req.Player1Camps) > engine.ColumnCount || len(req.Player2Camps) > engine.ColumnCount {
		return dto.CreateGameResponse{}, ErrTooManyCamps
	}

	camps := [2][]entities.Card{}
	for i, ids := range [][]int{req.Player1Camps, req.Player2Camps} {
		for _, id := range ids {
			card, err := s.catalog.Get(ctx, id)
			if err != nil {
				return dto.CreateGameResponse{}, fmt.Errorf("查询营地[%d]失败: %w", id, err)
			}
			if card.Type != entities.CardTypeCamp {
				return dto.CreateGameResponse{}, fmt.Errorf("卡牌[%d] %s: %w", id, card.Name, ErrInvalidCamp)
			}
			camps[i] = append(camps[i], card)
		}
	}

	rec := entities.GameRecord{
		Player1Name:  defaultName(req.Player1Name, engine.Player1),
		Player2Name:  defaultName(req.Player2Name, engine.Player2),
		Player1Camps: nonNilInts(req.Player1Camps),
		Player2Camps: nonNilInts(req.Player2Camps),
		StartPlayer:  int(start),
		Status:       entities.GameStatusActive,
		CreatedAt:    time.Now().Unix(),
	}
	rec, err := s.games.Create(ctx, rec)
	if err != nil {
		return dto.CreateGameResponse{}, fmt.Errorf("保存游戏失败: %w", err)
	}

	sess, err := s.newSession(rec, camps)
	if err != nil {
		return dto.CreateGameResponse{}, err
	}
	s.mu.Lock()
	s.sessions[rec.ID] = sess
	s.mu.Unlock()

	s.log.Info("🎮 创建游戏",
		zap.Int("gameID", rec.ID),
		zap.String("player1", rec.Player1Name),
		zap.String("player2", rec.Player2Name),
		zap.Int("startPlayer", rec.StartPlayer),
	)
	return dto.CreateGameResponse{ID: rec.ID, StartPlayer: rec.StartPlayer}, nil
}

func defaultName(name string, p engine.Player) string {
	if name == "" {
		return p.String()
	}
	return name
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}

// newSession 按记录建一局新的对局，营地依次放入第 1~3 列
func (s *GameService) newSession(rec entities.GameRecord, camps [2][]entities.Card) (*Session, error) {
	hand := newHandTracker()
	opts := s.opts
	opts.StartPlayer = engine.Player(rec.StartPlayer)
	opts.Hand = hand
	opts.Notifier = nil
	game := engine.New(opts)

	for i, cards := range camps {
		p := engine.Player(i + 1)
		for col, card := range cards {
			ref := engine.CardRef{ID: card.ID, Name: card.Name}
			if err := game.ApplyBoard(p, col, engine.SlotCamp, engine.BoardPlace, ref); err != nil {
				return nil, fmt.Errorf("放置营地失败: %w", err)
			}
		}
	}

	gameID := rec.ID
	log := s.log.With(zap.Int("gameID", gameID))
	game.SetNotifier(engine.NotifierFunc(func(step engine.Step) {
		log.Debug("📣 步骤",
			zap.String("kind", string(step.Kind)),
			zap.Int("player", int(step.Player)),
			zap.String("phase", string(step.Phase)),
			zap.String("message", step.Notice.Message),
		)
		s.pub.Publish(gameID, step)
	}))

	return &Session{record: rec, game: game, hand: hand}, nil
}

// session 取内存中的对局。服务重启后对局状态丢失，按记录重新开一局。
func (s *GameService) session(ctx context.Context, id int) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	rec, err := s.games.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	camps := [2][]entities.Card{}
	for i, ids := range [][]int{rec.Player1Camps, rec.Player2Camps} {
		for _, cid := range ids {
			card, err := s.catalog.Get(ctx, cid)
			if err != nil {
				return nil, fmt.Errorf("查询营地[%d]失败: %w", cid, err)
			}
			camps[i] = append(camps[i], card)
		}
	}
	sess, err = s.newSession(rec, camps)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// 并发恢复时以先放入的为准
	if existing, ok := s.sessions[id]; ok {
		return existing, nil
	}
	s.sessions[id] = sess
	s.log.Info("♻️ 恢复游戏", zap.Int("gameID", id))
	return sess, nil
}

func (s *GameService) GetGame(ctx context.Context, id int) (dto.GameView, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return dto.GameView{}, err
	}
	return sess.View(), nil
}

// ListGames 按 id 排序；内存中有对局的带上当前回合信息
func (s *GameService) ListGames(ctx context.Context) (dto.GetGameList, error) {
	records, err := s.games.List(ctx)
	if err != nil {
		return dto.GetGameList{}, fmt.Errorf("获取游戏列表失败: %w", err)
	}
	list := dto.GetGameList{Games: make([]dto.GameSummary, 0, len(records))}
	for _, rec := range records {
		s.mu.Lock()
		sess, ok := s.sessions[rec.ID]
		s.mu.Unlock()
		if ok {
			list.Games = append(list.Games, sess.summary())
			continue
		}
		list.Games = append(list.Games, dto.GameSummary{
			ID:          rec.ID,
			Player1Name: rec.Player1Name,
			Player2Name: rec.Player2Name,
			Status:      rec.Status,
		})
	}
	sort.Slice(list.Games, func(i, j int) bool { return list.Games[i].ID < list.Games[j].ID })
	return list, nil
}

func (s *GameService) DeleteGame(ctx context.Context, id int) error {
	if err := s.games.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.log.Info("🗑️ 删除游戏", zap.Int("gameID", id))
	return nil
}

// FinishGame 标记游戏结束，之后不再接受阶段信号
func (s *GameService) FinishGame(ctx context.Context, id int) (dto.GameView, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return dto.GameView{}, err
	}
	if err := s.games.SetStatus(ctx, id, entities.GameStatusFinished); err != nil {
		return dto.GameView{}, fmt.Errorf("更新游戏状态失败: %w", err)
	}
	sess.setStatus(entities.GameStatusFinished)
	s.log.Info("🏁 游戏结束", zap.Int("gameID", id))
	return sess.View(), nil
}

func (s *GameService) ResetGame(ctx context.Context, id int) (dto.GameView, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return dto.GameView{}, err
	}
	return sess.reset(), nil
}

// Signal 驱动阶段状态机
func (s *GameService) Signal(ctx context.Context, id int, sig Signal) (dto.TransitionResponse, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return dto.TransitionResponse{}, err
	}
	resp, err := sess.signal(sig)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidTransition) {
			s.log.Warn("⚠️ 无效的阶段切换", zap.Int("gameID", id), zap.String("signal", string(sig)), zap.Error(err))
		}
		return dto.TransitionResponse{}, err
	}
	return resp, nil
}

// AddEvent 名字+槽位，或事件牌 id（槽位取 bomb_position）
func (s *GameService) AddEvent(ctx context.Context, id int, req dto.AddEventRequest) (dto.AddEventResponse, error) {
	p, err := engine.ParsePlayer(req.Player)
	if err != nil {
		return dto.AddEventResponse{}, err
	}
	name, slot := req.Name, req.Slot
	if req.CardID != 0 {
		card, err := s.catalog.Get(ctx, req.CardID)
		if err != nil {
			return dto.AddEventResponse{}, err
		}
		if card.Type != entities.CardTypeEvent || card.BombPosition == nil {
			return dto.AddEventResponse{}, fmt.Errorf("卡牌[%d] %s: %w", card.ID, card.Name, ErrNotEventCard)
		}
		name, slot = card.Name, *card.BombPosition
	}
	if name == "" {
		return dto.AddEventResponse{}, ErrMissingEvent
	}

	sess, err := s.session(ctx, id)
	if err != nil {
		return dto.AddEventResponse{}, err
	}
	return sess.addEvent(p, name, slot)
}

func (s *GameService) RemoveEvent(ctx context.Context, id, player, eventID int) (engine.Event, error) {
	p, err := engine.ParsePlayer(player)
	if err != nil {
		return engine.Event{}, err
	}
	sess, err := s.session(ctx, id)
	if err != nil {
		return engine.Event{}, err
	}
	return sess.removeEvent(p, eventID)
}

func (s *GameService) ResetQueue(ctx context.Context, id, player int) error {
	p, err := engine.ParsePlayer(player)
	if err != nil {
		return err
	}
	sess, err := s.session(ctx, id)
	if err != nil {
		return err
	}
	return sess.resetQueue(p)
}

func (s *GameService) AdjustWater(ctx context.Context, id, player int, op engine.WaterOp) (dto.WaterResponse, error) {
	p, err := engine.ParsePlayer(player)
	if err != nil {
		return dto.WaterResponse{}, err
	}
	sess, err := s.session(ctx, id)
	if err != nil {
		return dto.WaterResponse{}, err
	}
	v, err := sess.adjustWater(p, op)
	if err != nil {
		return dto.WaterResponse{}, err
	}
	return dto.WaterResponse{Player: player, Water: v}, nil
}

// ApplyBoard place 时按卡牌 id 查目录，营地槽只能放营地牌，人物槽只能放人物牌
func (s *GameService) ApplyBoard(ctx context.Context, id, player, column int, slot engine.SlotType, op engine.BoardOp, req dto.BoardRequest) (engine.Snapshot, error) {
	p, err := engine.ParsePlayer(player)
	if err != nil {
		return engine.Snapshot{}, err
	}
	var ref engine.CardRef
	if op == engine.BoardPlace {
		if req.CardID == 0 {
			return engine.Snapshot{}, ErrMissingCard
		}
		card, err := s.catalog.Get(ctx, req.CardID)
		if err != nil {
			return engine.Snapshot{}, err
		}
		want := entities.CardTypePerson
		if slot == engine.SlotCamp {
			want = entities.CardTypeCamp
		}
		if card.Type != want {
			return engine.Snapshot{}, fmt.Errorf("卡牌[%d] %s 是 %s: %w", card.ID, card.Name, card.Type, ErrWrongCardType)
		}
		ref = engine.CardRef{ID: card.ID, Name: card.Name}
	}
	sess, err := s.session(ctx, id)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return sess.applyBoard(p, column, slot, op, ref)
}

// SearchCards 卡牌目录搜索，最多返回 limit 张（limit <= 0 不限制）
func (s *GameService) SearchCards(ctx context.Context, search, cardType string, limit int) ([]entities.Card, error) {
	cards, err := s.catalog.Search(ctx, search, cardType)
	if err != nil {
		return nil, fmt.Errorf("搜索卡牌失败: %w", err)
	}
	if limit > 0 {
		cards = utils.SafeSlice(cards, limit)
	}
	return cards, nil
}

// IsNotFound 游戏或卡牌不存在
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrGameNotFound) || errors.Is(err, repository.ErrCardNotFound)
}
