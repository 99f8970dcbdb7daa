package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// DebugNode 是单个节点在调试 JSON 中的快照，Index 与渲染时的编号一致。
type DebugNode struct {
	Index     int      `json:"index"`
	Depth     int      `json:"depth"`
	Tag       string   `json:"tag"`
	ID        string   `json:"id,omitempty"`
	Label     string   `json:"label,omitempty"`
	Direction string   `json:"direction"`
	Width     string   `json:"width"`
	Height    string   `json:"height"`
	Measured  Measured `json:"measured"`
	Rect      Rect     `json:"rect"`
}

// DebugDump 汇总一次布局的全部节点与告警。
type DebugDump struct {
	Nodes    []DebugNode `json:"nodes"`
	Warnings []Warning   `json:"warnings"`
}

// Snapshot 按先序遍历收集布局结果。
func Snapshot(rep *Report) *DebugDump {
	dump := &DebugDump{Nodes: []DebugNode{}, Warnings: []Warning{}}
	if rep == nil {
		return dump
	}
	dump.Warnings = append(dump.Warnings, rep.Warnings...)
	Walk(rep.Root, func(b *Box, depth int) bool {
		dump.Nodes = append(dump.Nodes, DebugNode{
			Index:     len(dump.Nodes),
			Depth:     depth,
			Tag:       b.Tag,
			ID:        b.ID,
			Label:     b.Label,
			Direction: b.Direction.String(),
			Width:     b.Width.String(),
			Height:    b.Height.String(),
			Measured:  b.Measured,
			Rect:      b.Resolved,
		})
		return true
	})
	return dump
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(rep *Report, path string) error {
	if rep == nil {
		return nil
	}
	data, err := json.MarshalIndent(Snapshot(rep), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (k MeasureKind) MarshalText() ([]byte, error) {
	switch k {
	case MeasureStar:
		return []byte("star"), nil
	case MeasureFill:
		return []byte("fill"), nil
	default:
		return []byte("definite"), nil
	}
}

func (k *MeasureKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "definite":
		*k = MeasureDefinite
	case "star":
		*k = MeasureStar
	case "fill":
		*k = MeasureFill
	default:
		return fmt.Errorf("未知的测量类型 %q", text)
	}
	return nil
}

func (k WarningKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *WarningKind) UnmarshalText(text []byte) error {
	for _, c := range []WarningKind{EmptyContentWarning, DegenerateStarWarning} {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("未知的告警类型 %q", text)
}
