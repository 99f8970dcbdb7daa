package layout

import (
	"fmt"
	"strconv"
)

// Report 保存一次布局的根节点与非致命告警。
type Report struct {
	Root     *Box
	Warnings []Warning
}

// engine 只在一次 Layout 调用内存活，不在调用之间保留任何状态。
type engine struct {
	warnings []Warning
}

func (e *engine) warn(kind WarningKind, path, axis, msg string) {
	e.warnings = append(e.warnings, Warning{Kind: kind, Path: path, Axis: axis, Message: msg})
}

// Layout 对以 root 为根的树执行测量与排布，root 占满 width×height 的视口。
// root 自身的 width/height 约束被忽略。致命错误在排布开始前返回，
// 此时没有任何节点被标记为 Arranged。
//
// 同一棵树不能被并发调用 Layout。
func Layout(root *Box, width, height float64) (*Report, error) {
	if root == nil {
		return nil, fmt.Errorf("layout: 根节点为空")
	}
	Walk(root, func(b *Box, _ int) bool {
		b.reset()
		return true
	})

	e := &engine{}
	rootPath := pathSegment(root, -1)
	for i, child := range root.Children {
		if err := e.measure(child, root.Direction, childPath(rootPath, child, i)); err != nil {
			return nil, err
		}
	}

	root.Measured = Measured{Width: Definite(width), Height: Definite(height)}
	root.Resolved = Rect{X: 0, Y: 0, Width: width, Height: height}
	root.Arranged = true
	e.arrange(root, rootPath)

	return &Report{Root: root, Warnings: e.warnings}, nil
}

// Walk 以先序遍历访问每个节点；fn 返回 false 时跳过该节点的子树。
func Walk(root *Box, fn func(b *Box, depth int) bool) {
	walk(root, 0, fn)
}

func walk(b *Box, depth int, fn func(*Box, int) bool) {
	if b == nil || !fn(b, depth) {
		return
	}
	for _, child := range b.Children {
		walk(child, depth+1, fn)
	}
}

// Flatten 返回先序遍历得到的全部节点，父节点总在其后代之前。
func Flatten(root *Box) []*Box {
	var out []*Box
	Walk(root, func(b *Box, _ int) bool {
		out = append(out, b)
		return true
	})
	return out
}

func pathSegment(b *Box, index int) string {
	seg := b.Tag
	if seg == "" {
		seg = "box"
	}
	if index >= 0 {
		seg += "[" + strconv.Itoa(index) + "]"
	}
	if b.ID != "" {
		seg += "#" + b.ID
	}
	return seg
}

func childPath(parent string, child *Box, index int) string {
	return parent + "/" + pathSegment(child, index)
}
