package layout

import "fmt"

// arrange 自顶向下为 parent 的子节点分配矩形，parent.Resolved 必须已确定。
func (e *engine) arrange(parent *Box, path string) {
	primary, secondary := axes(parent.Direction)
	parentRect := &parent.Resolved

	var sumDp, sumStar float64
	for _, child := range parent.Children {
		switch m := *primary.measure(&child.Measured); m.Kind {
		case MeasureDefinite:
			sumDp += m.Value
		case MeasureStar:
			sumStar += m.Value
		}
	}
	// unit 允许为负或小数：父元素放不下确定尺寸时 * 子元素得到负尺寸。
	var unit float64
	if sumStar > 0 {
		unit = (*primary.extent(parentRect) - sumDp) / sumStar
	}

	offset := 0.0
	for i, child := range parent.Children {
		cpath := childPath(path, child, i)

		var size float64
		switch m := *primary.measure(&child.Measured); m.Kind {
		case MeasureDefinite:
			size = m.Value
		case MeasureStar:
			size = m.Value * unit
		case MeasureFill:
			// 主轴上的 fill 已在测量阶段被拒绝。
		}

		var cross float64
		switch m := *secondary.measure(&child.Measured); m.Kind {
		case MeasureDefinite:
			cross = m.Value
		case MeasureFill:
			cross = *secondary.extent(parentRect)
		case MeasureStar:
			if m.Value > 1 {
				e.warn(DegenerateStarWarning, cpath, secondary.name,
					fmt.Sprintf("副轴上的 %g* 被忽略，按 fill 处理", m.Value))
			}
			cross = *secondary.extent(parentRect)
		}

		var rect Rect
		*primary.offset(&rect) = *primary.offset(parentRect) + offset
		*secondary.offset(&rect) = *secondary.offset(parentRect)
		*primary.extent(&rect) = size
		*secondary.extent(&rect) = cross
		child.Resolved = rect
		child.Arranged = true
		offset += size

		e.arrange(child, cpath)
	}
}
