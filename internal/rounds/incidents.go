package rounds

import "fmt"

// IncidentType 事件类型
type IncidentType string

const (
	IncidentTypeInjury   IncidentType = "injury"
	IncidentTypeSecurity IncidentType = "security"
)

// IncidentDraft 签字时从 CheckState 派生出的事件草稿，
// 由持久层补齐 ID / 日期后落库
type IncidentDraft struct {
	AnimalID    string       `json:"animal_id"`
	AnimalName  string       `json:"animal_name"`
	Type        IncidentType `json:"type"`
	Description string       `json:"description"`
	ReportedBy  string       `json:"reported_by"`
}

// BuildIncidents 为每只有健康或围栏问题的动物派生一条事件，
// 健康降级优先算 injury。只在签字路径调用，绝不提前生成。
func (s *Session) BuildIncidents() []IncidentDraft {
	var drafts []IncidentDraft

	for _, a := range s.Animals {
		cs := s.Checks[a.ID]
		if !cs.Flagged() {
			continue
		}

		kind := IncidentTypeSecurity
		text := cs.SecurityIssue
		if cs.FlaggedDead() {
			kind = IncidentTypeInjury
			text = cs.HealthIssue
		}

		drafts = append(drafts, IncidentDraft{
			AnimalID:    a.ID,
			AnimalName:  a.Name,
			Type:        kind,
			Description: fmt.Sprintf("%s round, %s: %s", s.Shift, s.Section, text),
			ReportedBy:  s.Initials,
		})
	}

	return drafts
}
