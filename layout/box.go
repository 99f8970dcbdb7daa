package layout

// 该文件定义布局树的节点模型：方向、尺寸约束、测量结果与最终矩形。

// Direction 决定子元素沿哪条轴依次排布。
type Direction int

const (
	Row    Direction = iota // 子元素沿水平方向排布，width 为主轴
	Column                  // 子元素沿竖直方向排布，height 为主轴
)

func (d Direction) String() string {
	if d == Column {
		return "column"
	}
	return "row"
}

// ConstraintKind 区分四种尺寸单位。
type ConstraintKind int

const (
	KindFixed   ConstraintKind = iota // <n>dp
	KindContent                       // content
	KindStar                          // <n>*
	KindFill                          // fill
)

// Constraint 是声明在某条轴上的尺寸约束。
// Value 对 KindFixed 表示 dp 数值，对 KindStar 表示权重，其余种类忽略。
type Constraint struct {
	Kind  ConstraintKind
	Value int
}

// Dp 返回固定尺寸约束。
func Dp(n int) Constraint { return Constraint{Kind: KindFixed, Value: n} }

// Wrap 返回按内容定尺寸的约束。
func Wrap() Constraint { return Constraint{Kind: KindContent} }

// Weight 返回按权重分配剩余空间的约束。
func Weight(w int) Constraint { return Constraint{Kind: KindStar, Value: w} }

// Stretch 返回沿副轴撑满父元素的约束。
func Stretch() Constraint { return Constraint{Kind: KindFill} }

// MeasureKind 区分测量阶段的三种结果。
type MeasureKind int

const (
	MeasureDefinite MeasureKind = iota
	MeasureStar
	MeasureFill
)

// Measure 是测量阶段在某条轴上得到的固有尺寸。
// Definite 时 Value 为尺寸，Star 时 Value 为权重，Fill 时忽略 Value。
type Measure struct {
	Kind  MeasureKind `json:"kind"`
	Value float64     `json:"value"`
}

// Definite 返回确定尺寸的测量结果。
func Definite(v float64) Measure { return Measure{Kind: MeasureDefinite, Value: v} }

// Starred 返回延迟到排布阶段的权重测量结果。
func Starred(w float64) Measure { return Measure{Kind: MeasureStar, Value: w} }

// Filled 返回延迟到排布阶段的撑满测量结果。
func Filled() Measure { return Measure{Kind: MeasureFill} }

// IsDefinite 表示测量结果是否已是确定尺寸。
func (m Measure) IsDefinite() bool { return m.Kind == MeasureDefinite }

// Measured 保存两条轴上的测量结果。
type Measured struct {
	Width  Measure `json:"width"`
	Height Measure `json:"height"`
}

// Rect 为根坐标系下的矩形。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Box 是布局树中的一个节点，独占其子节点。
type Box struct {
	Tag       string
	ID        string
	Label     string
	Direction Direction
	Width     Constraint
	Height    Constraint
	Children  []*Box

	// 以下字段由 Layout 每次调用时重新计算。
	Measured Measured
	Resolved Rect
	Arranged bool
}

// NewBox 构造节点，不做任何合法性校验；校验在测量阶段进行。
func NewBox(dir Direction, width, height Constraint, children ...*Box) *Box {
	return &Box{
		Tag:       "box",
		Direction: dir,
		Width:     width,
		Height:    height,
		Children:  children,
	}
}

// Append 追加子节点并返回 b 本身，方便链式构造。
func (b *Box) Append(children ...*Box) *Box {
	b.Children = append(b.Children, children...)
	return b
}

// reset 清除上一次布局留下的标注。
func (b *Box) reset() {
	b.Measured = Measured{}
	b.Resolved = Rect{}
	b.Arranged = false
}
