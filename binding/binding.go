package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Scope 汇总插值时可见的值：Vars 中的局部变量优先于 Data 中的 JSON 数据。
type Scope struct {
	Data any
	Vars map[string]any
}

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值，找不到时保留原占位符。
func Interpolate(text string, data any) string {
	return Scope{Data: data}.Interpolate(text)
}

// Interpolate 替换 text 中的全部占位符。
func (s Scope) Interpolate(text string) string {
	if s.Data == nil && len(s.Vars) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := s.Lookup(path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Lookup 解析形如 a.b[0].c 的路径。首段命中 Vars 时从局部变量开始解析。
func (s Scope) Lookup(path string) (any, bool) {
	segments := strings.Split(path, ".")
	head, _ := parseSegment(segments[0])
	if v, ok := s.Vars[head]; ok {
		return descend(map[string]any{head: v}, segments)
	}
	if s.Data == nil {
		return nil, false
	}
	return descend(s.Data, segments)
}

func descend(current any, segments []string) (any, bool) {
	for _, segment := range segments {
		name, indexes := parseSegment(segment)
		if name != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// parseSegment 拆分 name[1][2]；无法解析的下标记为 -1，使查找失败。
func parseSegment(segment string) (string, []int) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil
	}
	name, rest := segment[:i], segment[i:]
	var indexes []int
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			break
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			idx = -1
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes
}
