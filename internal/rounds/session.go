package rounds

import (
	"sort"

	"AllWell/pkg/errors"
)

// Mode 巡查会话的读写模式
type Mode string

const (
	ModeEditable Mode = "editable"
	ModeReadOnly Mode = "read_only" // 该 scope 已有签字记录，只读回看
)

// IssueKind 问题类型
type IssueKind string

const (
	IssueHealth   IssueKind = "health"
	IssueSecurity IssueKind = "security"
)

// IssuePrompt 待确认的降级请求，同一会话同时只能有一个
type IssuePrompt struct {
	AnimalID string    `json:"animal_id"`
	Kind     IssueKind `json:"kind"`
}

// Animal 巡查名单里的一只动物
type Animal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session 单个 (date, shift, section) scope 的巡查会话
//
// 所有状态变更都走 Toggle / ConfirmIssue 方法，降级必须先经过
// IssuePrompt 确认，确认前 CheckState 不会被修改。
type Session struct {
	Date         string  `json:"date"` // ISO 格式 2006-01-02
	Shift        Shift   `json:"shift"`
	Section      Section `json:"section"`
	Mode         Mode    `json:"mode"`
	Initials     string  `json:"initials"`
	SignedBy     string  `json:"signed_by,omitempty"`
	GeneralNotes string  `json:"general_notes"`

	Animals []Animal              `json:"animals"`
	Checks  map[string]CheckState `json:"checks"`
	Pending *IssuePrompt          `json:"pending,omitempty"`
}

// NewSession 为一个尚无签字记录的 scope 开启可编辑会话，
// 名单内每只动物初始化为空白 CheckState
func NewSession(date string, shift Shift, section Section, roster []Animal, initials string) *Session {
	checks := make(map[string]CheckState, len(roster))
	for _, a := range roster {
		checks[a.ID] = CheckState{}
	}

	return &Session{
		Date:     date,
		Shift:    shift,
		Section:  section,
		Mode:     ModeEditable,
		Initials: initials,
		Animals:  roster,
		Checks:   checks,
	}
}

// RehydrateSession 从已签字记录的快照恢复只读会话
//
// 回放以快照为准：签字后归档或移出名单的动物照样保留（名单里
// 查不到名字时用 ID 顶替），签字后才入册的动物不算进这一轮。
func RehydrateSession(date string, shift Shift, section Section, roster []Animal,
	checks map[string]CheckState, generalNotes, signedBy string,
) *Session {
	restored := make(map[string]CheckState, len(checks))
	animals := make([]Animal, 0, len(checks))
	for _, a := range roster {
		cs, ok := checks[a.ID]
		if !ok {
			continue
		}
		restored[a.ID] = cs
		animals = append(animals, a)
	}

	var missing []string
	for id := range checks {
		if _, ok := restored[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	for _, id := range missing {
		restored[id] = checks[id]
		animals = append(animals, Animal{ID: id, Name: id})
	}

	return &Session{
		Date:         date,
		Shift:        shift,
		Section:      section,
		Mode:         ModeReadOnly,
		SignedBy:     signedBy,
		GeneralNotes: generalNotes,
		Animals:      animals,
		Checks:       restored,
	}
}

func (s *Session) ReadOnly() bool {
	return s.Mode == ModeReadOnly
}

func (s *Session) check(animalID string) (CheckState, error) {
	if s.ReadOnly() {
		return CheckState{}, errors.RoundReadOnly
	}
	if s.Pending != nil {
		return CheckState{}, errors.IssueFlowActive
	}

	cs, ok := s.Checks[animalID]
	if !ok {
		return CheckState{}, errors.AnimalNotInRound
	}
	return cs, nil
}

// ToggleHealth 健康开关
//
// 当前 alive 时请求降级，返回待确认的 IssuePrompt；
// alive 为 false 或未评估时直接置为 alive 并清除健康问题。
func (s *Session) ToggleHealth(animalID string) (*IssuePrompt, error) {
	cs, err := s.check(animalID)
	if err != nil {
		return nil, err
	}

	if cs.Alive != nil && *cs.Alive {
		s.Pending = &IssuePrompt{AnimalID: animalID, Kind: IssueHealth}
		return s.Pending, nil
	}

	alive := true
	cs.Alive = &alive
	cs.HealthIssue = ""
	s.Checks[animalID] = cs
	return nil, nil
}

// ToggleWater 饮水开关，普通布尔翻转，不需要问题报告。
// 已降级健康的动物本轮不再处理，开关禁用。
func (s *Session) ToggleWater(animalID string) error {
	cs, err := s.check(animalID)
	if err != nil {
		return err
	}

	if cs.FlaggedDead() {
		return errors.ToggleDisabled
	}

	cs.Watered = !cs.Watered
	s.Checks[animalID] = cs
	return nil
}

// ToggleSecure 围栏开关
//
// 当前 secure 时请求降级（保留 watered 值）；否则置为 secure
// 并清除围栏问题。
func (s *Session) ToggleSecure(animalID string) (*IssuePrompt, error) {
	cs, err := s.check(animalID)
	if err != nil {
		return nil, err
	}

	if cs.FlaggedDead() {
		return nil, errors.ToggleDisabled
	}

	if cs.Secure {
		s.Pending = &IssuePrompt{AnimalID: animalID, Kind: IssueSecurity}
		return s.Pending, nil
	}

	cs.Secure = true
	cs.SecurityIssue = ""
	s.Checks[animalID] = cs
	return nil, nil
}

// ConfirmIssue 确认降级，note 不能为空，应用后清除 Pending
func (s *Session) ConfirmIssue(note string) error {
	if s.ReadOnly() {
		return errors.RoundReadOnly
	}
	if s.Pending == nil {
		return errors.IssueFlowNotActive
	}
	if note == "" {
		return errors.IssueNoteRequired
	}

	cs, ok := s.Checks[s.Pending.AnimalID]
	if !ok {
		s.Pending = nil
		return errors.AnimalNotInRound
	}

	switch s.Pending.Kind {
	case IssueHealth:
		alive := false
		cs.Alive = &alive
		cs.HealthIssue = note
	case IssueSecurity:
		cs.Secure = false
		cs.SecurityIssue = note
	}

	s.Checks[s.Pending.AnimalID] = cs
	s.Pending = nil
	return nil
}

// ConfirmIssueFor 带目标校验的确认：animalID / kind 非空时必须和
// 待确认的提示一致，防止确认到已经过期的提示
func (s *Session) ConfirmIssueFor(animalID string, kind IssueKind, note string) error {
	if s.ReadOnly() {
		return errors.RoundReadOnly
	}
	if s.Pending == nil {
		return errors.IssueFlowNotActive
	}
	if animalID != "" && s.Pending.AnimalID != animalID {
		return errors.IssueFlowMismatch
	}
	if kind != "" && s.Pending.Kind != kind {
		return errors.IssueFlowMismatch
	}
	return s.ConfirmIssue(note)
}

// CancelIssue 取消降级，CheckState 保持原样
func (s *Session) CancelIssue() error {
	if s.Pending == nil {
		return errors.IssueFlowNotActive
	}
	s.Pending = nil
	return nil
}

// SetGeneralNotes 更新分区级备注
func (s *Session) SetGeneralNotes(notes string) error {
	if s.ReadOnly() {
		return errors.RoundReadOnly
	}
	s.GeneralNotes = notes
	return nil
}

// SetInitials 更新签字缩写
func (s *Session) SetInitials(initials string) error {
	if s.ReadOnly() {
		return errors.RoundReadOnly
	}
	s.Initials = initials
	return nil
}
