package rounds

import (
	"encoding/json"
	"fmt"
)

// DetailsVersion 快照 schema 版本，升级格式时递增
const DetailsVersion = 1

// detailsDoc 落库的 CheckState 快照，带显式版本号
type detailsDoc struct {
	Version int                   `json:"version"`
	Checks  map[string]CheckState `json:"checks"`
}

// BuildDetails 序列化完整 CheckState 快照
func BuildDetails(checks map[string]CheckState) ([]byte, error) {
	doc := detailsDoc{
		Version: DetailsVersion,
		Checks:  checks,
	}
	return json.Marshal(doc)
}

// ParseDetails 解析已落库的快照
//
// 格式损坏或版本不认识时返回错误，调用方按 "没有已存在的
// 记录" 处理（可编辑而非只读），保可用性。
func ParseDetails(raw []byte) (map[string]CheckState, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty round details")
	}

	var doc detailsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round details: %w", err)
	}

	if doc.Version != DetailsVersion {
		return nil, fmt.Errorf("unsupported round details version: %d", doc.Version)
	}
	if doc.Checks == nil {
		doc.Checks = map[string]CheckState{}
	}

	return doc.Checks, nil
}
