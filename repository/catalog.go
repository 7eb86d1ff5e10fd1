package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"radlands/entities"
	"radlands/repository/migrations"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

var ErrCardNotFound = errors.New("卡牌不存在")

//go:embed seed/cards.json
var seedCards []byte

const migrationTable = "schema_migrations"

// CatalogStore 只读卡牌目录，支持 sqlite（modernc）和 mysql
type CatalogStore struct {
	db     *sql.DB
	driver string
}

// OpenCatalog 打开数据库并执行内嵌的建表脚本
func OpenCatalog(driver, dsn string) (*CatalogStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("卡牌目录 DSN 不能为空")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("打开卡牌目录失败: %w", err)
	}
	if driver == "sqlite" {
		// 内存库只存在于单个连接里
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("连接卡牌目录失败: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("执行建表脚本失败: %w", err)
	}
	return &CatalogStore{db: db, driver: driver}, nil
}

func (s *CatalogStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyMigrations 每个 .sql 文件最多执行一次
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name VARCHAR(255) NOT NULL PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`, migrationTable)
	if _, err := db.Exec(createSQL); err != nil {
		return fmt.Errorf("创建迁移记录表失败: %w", err)
	}

	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("读取迁移目录失败: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM "+migrationTable+" WHERE name = ?", file).Scan(&n); err != nil {
			return fmt.Errorf("检查迁移 %s 失败: %w", file, err)
		}
		if n > 0 {
			continue
		}
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("读取迁移 %s 失败: %w", file, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("开启事务失败: %w", err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("执行迁移 %s 失败: %w", file, err)
		}
		if _, err := tx.Exec("INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)", file, time.Now().Unix()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("记录迁移 %s 失败: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("提交迁移 %s 失败: %w", file, err)
		}
	}
	return nil
}

type seedCard struct {
	Name         string             `json:"name"`
	CardType     string             `json:"card_type"`
	WaterCost    int                `json:"water_cost"`
	Abilities    []entities.Ability `json:"abilities"`
	Traits       []string           `json:"traits"`
	JunkEffect   *string            `json:"junk_effect"`
	EventEffect  *string            `json:"event_effect"`
	BombPosition *int               `json:"bomb_position"`
	InitialDraw  *int               `json:"initial_draw"`
	Expansion    string             `json:"expansion"`
}

// Seed 表为空时写入内置卡牌，返回写入数量
func (s *CatalogStore) Seed(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards").Scan(&count); err != nil {
		return 0, fmt.Errorf("统计卡牌失败: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	var cards []seedCard
	if err := json.Unmarshal(seedCards, &cards); err != nil {
		return 0, fmt.Errorf("解析内置卡牌失败: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("开启事务失败: %w", err)
	}
	const insertSQL = `INSERT INTO cards
(id, name, card_type, water_cost, abilities, traits, junk_effect, event_effect, bomb_position, initial_draw, expansion)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, c := range cards {
		abilities, err := json.Marshal(nonNilAbilities(c.Abilities))
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("序列化卡牌 %s 能力失败: %w", c.Name, err)
		}
		traits, err := json.Marshal(nonNilStrings(c.Traits))
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("序列化卡牌 %s 特性失败: %w", c.Name, err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL,
			i+1, c.Name, c.CardType, c.WaterCost, string(abilities), string(traits),
			c.JunkEffect, c.EventEffect, c.BombPosition, c.InitialDraw, c.Expansion,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("写入卡牌 %s 失败: %w", c.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("提交卡牌失败: %w", err)
	}
	return len(cards), nil
}

const selectCards = `SELECT id, name, card_type, water_cost, abilities, traits, junk_effect, event_effect, bomb_position, initial_draw, expansion FROM cards`

// Search 按名称或能力描述模糊匹配（不区分大小写），可按类型过滤
func (s *CatalogStore) Search(ctx context.Context, search, cardType string) ([]entities.Card, error) {
	query := selectCards + " WHERE 1 = 1"
	var args []interface{}
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query += " AND (LOWER(name) LIKE ? OR LOWER(abilities) LIKE ?)"
		args = append(args, pattern, pattern)
	}
	if cardType = strings.TrimSpace(cardType); cardType != "" {
		query += " AND card_type = ?"
		args = append(args, cardType)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询卡牌失败: %w", err)
	}
	defer rows.Close()

	cards := []entities.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历卡牌失败: %w", err)
	}
	return cards, nil
}

// ByType 取某一类型的全部卡牌
func (s *CatalogStore) ByType(ctx context.Context, cardType string) ([]entities.Card, error) {
	return s.Search(ctx, "", cardType)
}

func (s *CatalogStore) Get(ctx context.Context, id int) (entities.Card, error) {
	row := s.db.QueryRowContext(ctx, selectCards+" WHERE id = ?", id)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Card{}, ErrCardNotFound
	}
	return card, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(row rowScanner) (entities.Card, error) {
	var (
		card                      entities.Card
		abilities, traits         string
		junkEffect, eventEffect   sql.NullString
		bombPosition, initialDraw sql.NullInt64
	)
	if err := row.Scan(&card.ID, &card.Name, &card.Type, &card.WaterCost, &abilities, &traits,
		&junkEffect, &eventEffect, &bombPosition, &initialDraw, &card.Expansion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Card{}, err
		}
		return entities.Card{}, fmt.Errorf("读取卡牌失败: %w", err)
	}
	if err := json.Unmarshal([]byte(abilities), &card.Abilities); err != nil {
		return entities.Card{}, fmt.Errorf("解析卡牌 %s 能力失败: %w", card.Name, err)
	}
	if err := json.Unmarshal([]byte(traits), &card.Traits); err != nil {
		return entities.Card{}, fmt.Errorf("解析卡牌 %s 特性失败: %w", card.Name, err)
	}
	card.JunkEffect = junkEffect.String
	card.EventEffect = eventEffect.String
	if bombPosition.Valid {
		v := int(bombPosition.Int64)
		card.BombPosition = &v
	}
	if initialDraw.Valid {
		v := int(initialDraw.Int64)
		card.InitialDraw = &v
	}
	return card, nil
}

func nonNilAbilities(a []entities.Ability) []entities.Ability {
	if a == nil {
		return []entities.Ability{}
	}
	return a
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
