package layout

import (
	"fmt"

	"github.com/ByLCY/imu/binding"
	"github.com/ByLCY/imu/dsl"
)

// RootTag 是布局文档唯一允许的根元素。
const RootTag = "imuroot"

const (
	attrWidth     = "width"
	attrHeight    = "height"
	attrDirection = "layout-direction"
	attrID        = "id"
	attrLabel     = "label"
)

var knownAttrs = map[string]bool{
	attrWidth:     true,
	attrHeight:    true,
	attrDirection: true,
	attrID:        true,
	attrLabel:     true,
}

type builder struct {
	data any
	opts BuildOptions
}

// Build 将解析后的文档转换为布局树。
// 未声明的 width/height 按父元素方向取默认值：主轴为 1*，副轴为 fill；根元素为 fill×fill。
// label 中的 ${...} 占位符以 data 及局部变量 tag/id/depth/index 插值。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Box, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if doc.Root.Name != RootTag {
		return nil, fmt.Errorf("%s: 根元素必须是 <%s>，实际为 <%s>", doc.Root.Pos, RootTag, doc.Root.Name)
	}
	b := &builder{data: data, opts: opts}
	return b.build(doc.Root, nil, 0, 0)
}

func (b *builder) build(el *dsl.Element, parent *Box, depth, index int) (*Box, error) {
	if b.opts.Strict {
		for _, a := range el.Attributes {
			if !knownAttrs[a.Key] {
				return nil, fmt.Errorf("%s: <%s> 未知属性 %s", a.Pos, el.Name, a.Key)
			}
		}
	}

	dirAttr, _ := el.Attr(attrDirection)
	dir, err := ParseDirection(dirAttr)
	if err != nil {
		return nil, fmt.Errorf("%s: <%s>: %w", el.Pos, el.Name, err)
	}
	box := &Box{Tag: el.Name, Direction: dir}
	box.ID, _ = el.Attr(attrID)

	for _, dim := range []struct {
		name string
		dst  *Constraint
	}{{attrWidth, &box.Width}, {attrHeight, &box.Height}} {
		raw, ok := el.Attr(dim.name)
		if !ok {
			*dim.dst = defaultConstraint(parent, dim.name)
			continue
		}
		c, err := ParseConstraint(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: <%s> %s: %w", el.Pos, el.Name, dim.name, err)
		}
		*dim.dst = c
	}

	if label, ok := el.Attr(attrLabel); ok {
		scope := binding.Scope{
			Data: b.data,
			Vars: map[string]any{"tag": el.Name, "id": box.ID, "depth": depth, "index": index},
		}
		box.Label = scope.Interpolate(label)
	}

	box.Children = make([]*Box, 0, len(el.Children))
	for i, child := range el.Children {
		cb, err := b.build(child, box, depth+1, i)
		if err != nil {
			return nil, err
		}
		box.Children = append(box.Children, cb)
	}
	return box, nil
}

func defaultConstraint(parent *Box, name string) Constraint {
	if parent == nil {
		return Stretch()
	}
	if primary, _ := axes(parent.Direction); primary.name == name {
		return Weight(1)
	}
	return Stretch()
}
