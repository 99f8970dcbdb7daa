package layout

// axis 用一组访问器描述一条物理轴，主副轴的差异只在这里按 Direction 选择一次。
type axis struct {
	name       string
	constraint func(*Box) Constraint
	measure    func(*Measured) *Measure
	offset     func(*Rect) *float64
	extent     func(*Rect) *float64
}

var (
	widthAxis = axis{
		name:       "width",
		constraint: func(b *Box) Constraint { return b.Width },
		measure:    func(m *Measured) *Measure { return &m.Width },
		offset:     func(r *Rect) *float64 { return &r.X },
		extent:     func(r *Rect) *float64 { return &r.Width },
	}
	heightAxis = axis{
		name:       "height",
		constraint: func(b *Box) Constraint { return b.Height },
		measure:    func(m *Measured) *Measure { return &m.Height },
		offset:     func(r *Rect) *float64 { return &r.Y },
		extent:     func(r *Rect) *float64 { return &r.Height },
	}
)

// axes 返回方向 d 下的主轴与副轴。
func axes(d Direction) (primary, secondary axis) {
	if d == Column {
		return heightAxis, widthAxis
	}
	return widthAxis, heightAxis
}
