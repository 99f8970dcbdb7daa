package layout

import "fmt"

// OverflowError 表示固定的主轴尺寸小于其子元素确定尺寸之和。
type OverflowError struct {
	Path    string
	Axis    string
	Size    float64 // 声明的 dp 尺寸
	Content float64 // 子元素确定尺寸之和
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: %s 溢出，声明 %gdp 小于内容 %gdp", e.Path, e.Axis, e.Size, e.Content)
}

// IllegalUnitError 表示单位出现在不允许的轴上。
type IllegalUnitError struct {
	Path   string
	Axis   string
	Unit   Constraint
	Reason string
}

func (e *IllegalUnitError) Error() string {
	return fmt.Sprintf("%s: %s 不能使用 %s（%s）", e.Path, e.Axis, e.Unit, e.Reason)
}

// WarningKind 区分非致命问题。
type WarningKind int

const (
	EmptyContentWarning   WarningKind = iota // content 用在没有子元素的节点上，按 0 处理
	DegenerateStarWarning                    // 排布阶段在副轴遇到权重 > 1 的 *
)

func (k WarningKind) String() string {
	switch k {
	case EmptyContentWarning:
		return "empty-content"
	case DegenerateStarWarning:
		return "degenerate-star"
	default:
		return "unknown"
	}
}

// Warning 记录一次非致命问题，布局会继续进行。
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Path    string      `json:"path"`
	Axis    string      `json:"axis"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", w.Path, w.Axis, w.Message, w.Kind)
}
