package rounds

import "AllWell/pkg/errors"

// NoteRequired 鸟类分区的补充说明规则
//
// 存在至少一只活着、已检查（secure 或已记录围栏故障）但未确认
// 饮水的动物，且分区备注为空时，必须先填写备注才能签字。
func (s *Session) NoteRequired() bool {
	if !s.Section.IsAvian() {
		return false
	}
	if s.GeneralNotes != "" {
		return false
	}

	for _, a := range s.Animals {
		cs := s.Checks[a.ID]
		if cs.FlaggedDead() {
			continue
		}
		checked := cs.Secure || cs.HasSecurityIssue()
		if checked && !cs.Watered {
			return true
		}
	}
	return false
}

// CanSignOff 签字 gate：所有动物检查完成、有签字缩写、
// 备注规则满足、且会话仍可编辑
func (s *Session) CanSignOff() bool {
	return s.ValidateSignOff() == nil
}

// ValidateSignOff 返回阻止签字的具体原因，可签字时返回 nil
func (s *Session) ValidateSignOff() error {
	if s.ReadOnly() {
		return errors.RoundAlreadySigned
	}
	if !s.Progress().IsComplete {
		return errors.RoundIncomplete
	}
	if s.Initials == "" {
		return errors.SignatureRequired
	}
	if s.NoteRequired() {
		return errors.NoteRequired
	}
	return nil
}
