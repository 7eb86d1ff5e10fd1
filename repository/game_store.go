package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"radlands/entities"

	"github.com/go-redis/redis/v8"
	"github.com/mitchellh/mapstructure"
)

var ErrGameNotFound = errors.New("游戏不存在")

const (
	gameIDKey  = "game:next_id"
	gameSetKey = "games"
)

func gameInfoKey(id int) string {
	return fmt.Sprintf("game:%d:info", id)
}

// GameStore 游戏记录的创建与查询，以游戏 id 为键
type GameStore struct {
	rdb *redis.Client
}

func NewGameStore(rdb *redis.Client) *GameStore {
	return &GameStore{rdb: rdb}
}

// Create 分配自增 id 并写入游戏信息
func (s *GameStore) Create(ctx context.Context, rec entities.GameRecord) (entities.GameRecord, error) {
	id, err := s.rdb.Incr(ctx, gameIDKey).Result()
	if err != nil {
		return entities.GameRecord{}, fmt.Errorf("分配游戏 id 失败: %w", err)
	}
	rec.ID = int(id)
	if rec.Status == "" {
		rec.Status = entities.GameStatusActive
	}

	p1Camps, err := json.Marshal(rec.Player1Camps)
	if err != nil {
		return entities.GameRecord{}, fmt.Errorf("序列化玩家1营地失败: %w", err)
	}
	p2Camps, err := json.Marshal(rec.Player2Camps)
	if err != nil {
		return entities.GameRecord{}, fmt.Errorf("序列化玩家2营地失败: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, gameInfoKey(rec.ID), map[string]interface{}{
		"id":           rec.ID,
		"player1Name":  rec.Player1Name,
		"player2Name":  rec.Player2Name,
		"player1Camps": string(p1Camps),
		"player2Camps": string(p2Camps),
		"startPlayer":  rec.StartPlayer,
		"status":       string(rec.Status),
		"createdAt":    rec.CreatedAt,
	})
	pipe.SAdd(ctx, gameSetKey, rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return entities.GameRecord{}, fmt.Errorf("写入游戏信息失败: %w", err)
	}
	return rec, nil
}

// Get 读取游戏信息
func (s *GameStore) Get(ctx context.Context, id int) (entities.GameRecord, error) {
	data, err := s.rdb.HGetAll(ctx, gameInfoKey(id)).Result()
	if err != nil {
		return entities.GameRecord{}, fmt.Errorf("获取游戏信息失败: %w", err)
	}
	if len(data) == 0 {
		return entities.GameRecord{}, ErrGameNotFound
	}
	return decodeGameRecord(data)
}

// List 按 id 升序返回所有游戏
func (s *GameStore) List(ctx context.Context) ([]entities.GameRecord, error) {
	members, err := s.rdb.SMembers(ctx, gameSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("获取游戏列表失败: %w", err)
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		cmds = append(cmds, pipe.HGetAll(ctx, gameInfoKey(id)))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("批量读取游戏信息失败: %w", err)
	}

	games := make([]entities.GameRecord, 0, len(cmds))
	for _, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			continue
		}
		rec, err := decodeGameRecord(data)
		if err != nil {
			return nil, err
		}
		games = append(games, rec)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

// SetStatus 更新游戏状态
func (s *GameStore) SetStatus(ctx context.Context, id int, status entities.GameStatus) error {
	exists, err := s.rdb.Exists(ctx, gameInfoKey(id)).Result()
	if err != nil {
		return fmt.Errorf("检查游戏失败: %w", err)
	}
	if exists == 0 {
		return ErrGameNotFound
	}
	if err := s.rdb.HSet(ctx, gameInfoKey(id), "status", string(status)).Err(); err != nil {
		return fmt.Errorf("更新游戏状态失败: %w", err)
	}
	return nil
}

// Delete 删除所有 game:{id}: 开头的 key
func (s *GameStore) Delete(ctx context.Context, id int) error {
	prefix := fmt.Sprintf("game:%d:", id)
	var cursor uint64
	var keysToDelete []string

	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描游戏相关 key 失败: %w", err)
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return ErrGameNotFound
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, keysToDelete...)
	pipe.SRem(ctx, gameSetKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("删除游戏相关 key 失败: %w", err)
	}
	return nil
}

func decodeGameRecord(data map[string]string) (entities.GameRecord, error) {
	var rec entities.GameRecord
	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(stringToIntHookFunc(), jsonStringToSliceHookFunc()),
		Result:     &rec,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return entities.GameRecord{}, fmt.Errorf("创建解码器失败: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return entities.GameRecord{}, fmt.Errorf("游戏信息解析失败: %w", err)
	}
	return rec, nil
}

// Redis hash 里的数字都是字符串
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.String {
			return data, nil
		}
		switch to {
		case reflect.Int:
			return strconv.Atoi(data.(string))
		case reflect.Int64:
			return strconv.ParseInt(data.(string), 10, 64)
		}
		return data, nil
	}
}

// 营地列表以 JSON 字符串保存
func jsonStringToSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
			return data, nil
		}
		raw := data.(string)
		if raw == "" || raw == "null" {
			return []interface{}{}, nil
		}
		var out []interface{}
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, fmt.Errorf("解析 JSON 列表失败: %w", err)
		}
		return out, nil
	}
}
