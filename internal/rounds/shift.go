package rounds

import (
	"strings"
	"time"

	"AllWell/pkg/errors"
)

// Shift 班次，每天固定早晚两轮巡查
type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
)

// Section 动物分区，同时决定该区适用的完成规则
type Section string

const (
	SectionOwls     Section = "Owls"
	SectionRaptors  Section = "Raptors"
	SectionMammals  Section = "Mammals"
	SectionReptiles Section = "Reptiles"
	SectionExotics  Section = "Exotics"
)

// AllSections 按巡查顺序排列
var AllSections = []Section{
	SectionOwls,
	SectionRaptors,
	SectionMammals,
	SectionReptiles,
	SectionExotics,
}

// avianSections 鸟类分区只看围栏安全，饮水不阻塞完成
var avianSections = map[Section]bool{
	SectionOwls:    true,
	SectionRaptors: true,
}

func (s Section) IsAvian() bool {
	return avianSections[s]
}

func ParseShift(raw string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "morning":
		return ShiftMorning, nil
	case "evening":
		return ShiftEvening, nil
	default:
		return "", errors.InvalidShift
	}
}

func ParseSection(raw string) (Section, error) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range AllSections {
		if strings.EqualFold(string(s), trimmed) {
			return s, nil
		}
	}
	return "", errors.InvalidSection
}

// DefaultShiftFor 根据本地时间推断默认班次，正午之前算早班
func DefaultShiftFor(now time.Time) Shift {
	if now.Hour() < 12 {
		return ShiftMorning
	}
	return ShiftEvening
}
