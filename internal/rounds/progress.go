package rounds

import "math"

// Progress 分区巡查进度
type Progress struct {
	Total      int  `json:"total"`
	Completed  int  `json:"completed"`
	Percent    int  `json:"percent"`
	IsComplete bool `json:"is_complete"`
}

// Progress 对当前名单计算完成度，纯函数，不缓存任何派生值
func (s *Session) Progress() Progress {
	total := len(s.Animals)
	completed := 0
	for _, a := range s.Animals {
		if s.Checks[a.ID].Complete(s.Section) {
			completed++
		}
	}

	divisor := total
	if divisor < 1 {
		divisor = 1
	}
	percent := int(math.Round(float64(completed) / float64(divisor) * 100))

	return Progress{
		Total:      total,
		Completed:  completed,
		Percent:    percent,
		IsComplete: total > 0 && completed == total,
	}
}

// IssuesFound 会在签字时产生事件记录的动物数量
func (s *Session) IssuesFound() int {
	count := 0
	for _, a := range s.Animals {
		if s.Checks[a.ID].Flagged() {
			count++
		}
	}
	return count
}
