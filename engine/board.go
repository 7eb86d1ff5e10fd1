package engine

// ColumnCount 每位玩家 3 列
const ColumnCount = 3

// SlotType 列内槽位
type SlotType string

const (
	SlotCamp   SlotType = "camp"
	SlotFront  SlotType = "front"
	SlotBehind SlotType = "behind"
)

func ParseSlotType(s string) (SlotType, error) {
	switch st := SlotType(s); st {
	case SlotCamp, SlotFront, SlotBehind:
		return st, nil
	}
	return "", ErrInvalidSlotType
}

// CardRef 卡牌目录中的引用
type CardRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CardState 卡牌进入槽位时创建，槽位清空时消失。摧毁的营地保留但带标记。
type CardState struct {
	Card        CardRef `json:"card"`
	IsReady     bool    `json:"isReady"`
	IsDamaged   bool    `json:"isDamaged"`
	WaterOnCard int     `json:"waterOnCard"`
	IsDestroyed bool    `json:"isDestroyed,omitempty"`
}

// Column 一列：营地 + 前后两个人物位。People[0] 永远是前排，People[1] 永远是后排，
// 只按固定下标区分，不做排序。
type Column struct {
	Index  int
	Camp   *CardState
	People [2]*CardState
}

func NewColumn(index int) *Column {
	return &Column{Index: index}
}

// IsCampProtected 前排有人即受保护，与前排人物的状态无关
func IsCampProtected(c *Column) bool {
	return c.People[0] != nil
}

// IsBehindProtected 前排是营地和后排唯一的保护者
func IsBehindProtected(c *Column) bool {
	return IsCampProtected(c)
}

// IsFrontExposed 前排没有保护者
func IsFrontExposed(*Column) bool {
	return true
}

// Protection 渲染用的保护状态，每次按占用情况重新计算，不缓存
type Protection struct {
	CampProtected   bool `json:"campProtected"`
	FrontExposed    bool `json:"frontExposed"`
	BehindProtected bool `json:"behindProtected"`
}

func ProtectionOf(c *Column) Protection {
	return Protection{
		CampProtected:   IsCampProtected(c),
		FrontExposed:    IsFrontExposed(c),
		BehindProtected: IsBehindProtected(c),
	}
}

func (c *Column) slot(st SlotType) (**CardState, error) {
	switch st {
	case SlotCamp:
		return &c.Camp, nil
	case SlotFront:
		return &c.People[0], nil
	case SlotBehind:
		return &c.People[1], nil
	}
	return nil, ErrInvalidSlotType
}

func (c *Column) occupied(st SlotType) (*CardState, error) {
	p, err := c.slot(st)
	if err != nil {
		return nil, err
	}
	if *p == nil {
		return nil, ErrEmptySlot
	}
	return *p, nil
}

// Place 放入卡牌。人物进场为就绪、未受伤；营地进场未受伤、未摧毁。
func (c *Column) Place(st SlotType, card CardRef) error {
	p, err := c.slot(st)
	if err != nil {
		return err
	}
	if *p != nil {
		return ErrSlotOccupied
	}
	*p = &CardState{Card: card, IsReady: true}
	return nil
}

// Clear 移走人物。营地只能摧毁，不能移走。
func (c *Column) Clear(st SlotType) (CardState, error) {
	if st == SlotCamp {
		return CardState{}, ErrCampNotRemovable
	}
	p, err := c.slot(st)
	if err != nil {
		return CardState{}, err
	}
	if *p == nil {
		return CardState{}, ErrEmptySlot
	}
	removed := **p
	*p = nil
	return removed, nil
}

func (c *Column) mutable(st SlotType) (*CardState, error) {
	cs, err := c.occupied(st)
	if err != nil {
		return nil, err
	}
	if st == SlotCamp && cs.IsDestroyed {
		return nil, ErrCampDestroyed
	}
	return cs, nil
}

func (c *Column) ToggleReady(st SlotType) error {
	cs, err := c.mutable(st)
	if err != nil {
		return err
	}
	cs.IsReady = !cs.IsReady
	return nil
}

func (c *Column) ToggleDamage(st SlotType) error {
	cs, err := c.mutable(st)
	if err != nil {
		return err
	}
	cs.IsDamaged = !cs.IsDamaged
	return nil
}

// DestroyCamp 重复调用不报错，返回值表示这次调用是否真的改变了状态
func (c *Column) DestroyCamp() (bool, error) {
	cs, err := c.occupied(SlotCamp)
	if err != nil {
		return false, err
	}
	if cs.IsDestroyed {
		return false, nil
	}
	cs.IsDestroyed = true
	return true, nil
}

func (c *Column) AddWater(st SlotType) error {
	cs, err := c.occupied(st)
	if err != nil {
		return err
	}
	cs.WaterOnCard++
	return nil
}

// RemoveWater 卡上没水时不做任何事
func (c *Column) RemoveWater(st SlotType) error {
	cs, err := c.occupied(st)
	if err != nil {
		return err
	}
	if cs.WaterOnCard > 0 {
		cs.WaterOnCard--
	}
	return nil
}

// Card 返回槽位上卡牌的副本
func (c *Column) Card(st SlotType) (CardState, bool) {
	cs, err := c.occupied(st)
	if err != nil {
		return CardState{}, false
	}
	return *cs, true
}

// Board 一位玩家的 3 列
type Board struct {
	columns [ColumnCount]*Column
}

func NewBoard() *Board {
	b := &Board{}
	for i := range b.columns {
		b.columns[i] = NewColumn(i)
	}
	return b
}

func (b *Board) Column(index int) (*Column, error) {
	if index < 0 || index >= ColumnCount {
		return nil, ErrInvalidColumn
	}
	return b.columns[index], nil
}

// Columns 按列号顺序返回
func (b *Board) Columns() []*Column {
	return b.columns[:]
}

// reset 清走所有人物，营地恢复为未受伤、未摧毁、就绪
func (b *Board) reset() {
	for _, c := range b.columns {
		c.People = [2]*CardState{}
		if c.Camp != nil {
			c.Camp = &CardState{Card: c.Camp.Card, IsReady: true}
		}
	}
}
