package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/imu/dsl"
)

// buildFromMarkup 是测试辅助：用给定标记文本构建布局树。
func buildFromMarkup(t *testing.T, markup string, data any, opts BuildOptions) *Box {
	t.Helper()
	doc, err := dsl.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("解析标记失败: %v", err)
	}
	root, err := Build(doc, data, opts)
	if err != nil {
		t.Fatalf("构建布局树失败: %v", err)
	}
	return root
}

func TestBuildAndLayout(t *testing.T) {
	markup := `<imuroot layout-direction="column">
  <box id="toolbar" height="40dp"/>
  <box layout-direction="row">
    <box id="side" width="120dp"/>
    <box id="main" width="2*"/>
    <box id="aside" width="*"/>
  </box>
</imuroot>`
	root := buildFromMarkup(t, markup, nil, BuildOptions{})
	if _, err := Layout(root, 420, 340); err != nil {
		t.Fatalf("布局失败: %v", err)
	}

	boxes := Flatten(root)
	if len(boxes) != 6 {
		t.Fatalf("期望 6 个节点，实际 %d", len(boxes))
	}
	byID := map[string]*Box{}
	for _, b := range boxes {
		if b.ID != "" {
			byID[b.ID] = b
		}
	}
	assertRect(t, "toolbar", byID["toolbar"].Resolved, Rect{X: 0, Y: 0, Width: 420, Height: 40})
	assertRect(t, "body", root.Children[1].Resolved, Rect{X: 0, Y: 40, Width: 420, Height: 300})
	assertRect(t, "side", byID["side"].Resolved, Rect{X: 0, Y: 40, Width: 120, Height: 300})
	assertRect(t, "main", byID["main"].Resolved, Rect{X: 120, Y: 40, Width: 200, Height: 300})
	assertRect(t, "aside", byID["aside"].Resolved, Rect{X: 320, Y: 40, Width: 100, Height: 300})
}

// TestBuildDefaults 未声明的尺寸按父元素方向取默认值。
func TestBuildDefaults(t *testing.T) {
	root := buildFromMarkup(t, `<imuroot layout-direction="column"><box/></imuroot>`, nil, BuildOptions{})
	if root.Width != Stretch() || root.Height != Stretch() {
		t.Fatalf("根元素默认应为 fill×fill: %v×%v", root.Width, root.Height)
	}
	if root.Direction != Column {
		t.Fatalf("layout-direction 未生效")
	}
	child := root.Children[0]
	if child.Direction != Row {
		t.Fatalf("缺省方向应为 row")
	}
	if child.Height != Weight(1) || child.Width != Stretch() {
		t.Fatalf("列容器子元素默认应为 fill×1*，实际 %v×%v", child.Width, child.Height)
	}
}

func TestBuildLabelInterpolation(t *testing.T) {
	data := map[string]any{"user": map[string]any{"name": "Ada"}}
	root := buildFromMarkup(t,
		`<imuroot><box label="${user.name} ${tag}#${id} d${depth} i${index}" id="x" width="10dp"/></imuroot>`,
		data, BuildOptions{})
	if got := root.Children[0].Label; got != "Ada box#x d1 i0" {
		t.Fatalf("label 插值错误: %q", got)
	}
}

func TestBuildRejectsWrongRoot(t *testing.T) {
	doc, err := dsl.ParseString(`<layout/>`)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if _, err := Build(doc, nil, BuildOptions{}); err == nil || !strings.Contains(err.Error(), RootTag) {
		t.Fatalf("期望根元素错误，实际 %v", err)
	}
}

func TestBuildRejectsBadUnit(t *testing.T) {
	doc, err := dsl.ParseString(`<imuroot><box width="12px"/></imuroot>`)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if _, err := Build(doc, nil, BuildOptions{}); err == nil || !strings.Contains(err.Error(), "12px") {
		t.Fatalf("期望单位错误，实际 %v", err)
	}
}

func TestBuildStrictAttributes(t *testing.T) {
	doc, err := dsl.ParseString(`<imuroot><box colour="red"/></imuroot>`)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if _, err := Build(doc, nil, BuildOptions{}); err != nil {
		t.Fatalf("非严格模式应忽略未知属性: %v", err)
	}
	if _, err := Build(doc, nil, BuildOptions{Strict: true}); err == nil {
		t.Fatalf("严格模式应拒绝未知属性")
	}
}

// TestBuildIllegalStarFromMarkup 标记中行容器子元素高度为 * 时布局报 IllegalUnitError。
func TestBuildIllegalStarFromMarkup(t *testing.T) {
	root := buildFromMarkup(t, `<imuroot><box width="10dp" height="2*"/></imuroot>`, nil, BuildOptions{})
	_, err := Layout(root, 100, 100)
	var illegal *IllegalUnitError
	if !errors.As(err, &illegal) {
		t.Fatalf("期望 IllegalUnitError，实际 %v", err)
	}
}
