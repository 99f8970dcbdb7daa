package layout

// measure 自底向上解析 b 的固有尺寸。parent 是父节点的方向，
// 用于校验 * 与 fill 是否出现在父节点允许的轴上。
func (e *engine) measure(b *Box, parent Direction, path string) error {
	if err := checkUnits(b, parent, path); err != nil {
		return err
	}
	for i, child := range b.Children {
		if err := e.measure(child, b.Direction, childPath(path, child, i)); err != nil {
			return err
		}
	}

	primary, secondary := axes(b.Direction)
	pm, err := e.measureAxis(b, primary, true, path)
	if err != nil {
		return err
	}
	sm, err := e.measureAxis(b, secondary, false, path)
	if err != nil {
		return err
	}
	*primary.measure(&b.Measured) = pm
	*secondary.measure(&b.Measured) = sm
	return nil
}

// checkUnits: * 只能出现在父节点的主轴上，fill 只能出现在父节点的副轴上。
func checkUnits(b *Box, parent Direction, path string) error {
	pp, ps := axes(parent)
	if c := ps.constraint(b); c.Kind == KindStar {
		return &IllegalUnitError{Path: path, Axis: ps.name, Unit: c, Reason: "* 只能用于父元素的主轴"}
	}
	if c := pp.constraint(b); c.Kind == KindFill {
		return &IllegalUnitError{Path: path, Axis: pp.name, Unit: c, Reason: "fill 只能用于父元素的副轴"}
	}
	return nil
}

// measureAxis 解析 b 在 ax 上的约束。isPrimary 表示 ax 是否为 b 自身的主轴：
// 主轴上 content 取子元素之和，副轴上取最大值。
func (e *engine) measureAxis(b *Box, ax axis, isPrimary bool, path string) (Measure, error) {
	c := ax.constraint(b)
	switch c.Kind {
	case KindFixed:
		size := float64(c.Value)
		if isPrimary {
			if content := definiteSum(b.Children, ax); size < content {
				return Measure{}, &OverflowError{Path: path, Axis: ax.name, Size: size, Content: content}
			}
		}
		return Definite(size), nil
	case KindContent:
		if len(b.Children) == 0 {
			e.warn(EmptyContentWarning, path, ax.name, "content 用于没有子元素的节点，按 0 处理")
			return Definite(0), nil
		}
		if isPrimary {
			return Definite(definiteSum(b.Children, ax)), nil
		}
		return Definite(definiteMax(b.Children, ax)), nil
	case KindStar:
		return Starred(float64(c.Value)), nil
	case KindFill:
		return Filled(), nil
	default:
		return Measure{}, &IllegalUnitError{Path: path, Axis: ax.name, Unit: c, Reason: "未知单位"}
	}
}

// definiteSum 累加子元素在 ax 上的确定尺寸，* 子元素不计入。
func definiteSum(children []*Box, ax axis) float64 {
	sum := 0.0
	for _, child := range children {
		if m := *ax.measure(&child.Measured); m.IsDefinite() {
			sum += m.Value
		}
	}
	return sum
}

// definiteMax 取子元素在 ax 上确定尺寸的最大值，fill 子元素不计入。
func definiteMax(children []*Box, ax axis) float64 {
	widest := 0.0
	for _, child := range children {
		if m := *ax.measure(&child.Measured); m.IsDefinite() && m.Value > widest {
			widest = m.Value
		}
	}
	return widest
}
