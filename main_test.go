package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/imu/layout"
	canvasrenderer "github.com/ByLCY/imu/renderer/canvas"
)

const demoLayout = `<imuroot layout-direction="column">
  <box height="40dp" label="${title}"/>
  <box layout-direction="row">
    <box width="120dp"/>
    <box width="*"/>
  </box>
</imuroot>`

func writeLayout(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "demo.imu")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入布局文件失败: %v", err)
	}
	return path
}

func TestRunWritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		input:     writeLayout(t, dir, demoLayout),
		outputs:   []string{filepath.Join(dir, "out", "a.svg"), filepath.Join(dir, "out", "a.png")},
		width:     320,
		height:    240,
		debugPath: filepath.Join(dir, "debug", "layout.json"),
		data:      map[string]any{"title": "Demo"},
	}
	if err := run(cfg, canvasrenderer.NewRenderer(dir)); err != nil {
		t.Fatalf("运行失败: %v", err)
	}
	for _, out := range cfg.outputs {
		if info, err := os.Stat(out); err != nil || info.Size() == 0 {
			t.Fatalf("输出 %s 缺失: %v", out, err)
		}
	}

	raw, err := os.ReadFile(cfg.debugPath)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	var dump layout.DebugDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		t.Fatalf("解析调试 JSON 失败: %v", err)
	}
	if len(dump.Nodes) != 5 {
		t.Fatalf("期望 5 个节点，实际 %d", len(dump.Nodes))
	}
	if dump.Nodes[1].Label != "Demo" {
		t.Fatalf("label 未插值: %q", dump.Nodes[1].Label)
	}
	if r := dump.Nodes[4].Rect; r.X != 120 || r.Y != 40 || r.Width != 200 || r.Height != 200 {
		t.Fatalf("节点 4 矩形错误: %+v", r)
	}
}

func TestRunReportsLayoutErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		input:   writeLayout(t, dir, `<imuroot><box width="10dp" height="*"/></imuroot>`),
		outputs: []string{filepath.Join(dir, "a.svg")},
		width:   100,
		height:  100,
	}
	err := run(cfg, canvasrenderer.NewRenderer(dir))
	var illegal *layout.IllegalUnitError
	if !errors.As(err, &illegal) {
		t.Fatalf("期望 IllegalUnitError，实际 %v", err)
	}
	if _, statErr := os.Stat(cfg.outputs[0]); !os.IsNotExist(statErr) {
		t.Fatalf("布局失败时不应生成输出")
	}
}

func TestSplitOutputs(t *testing.T) {
	got := splitOutputs(" a.pdf, ,b.png ")
	if len(got) != 2 || got[0] != "a.pdf" || got[1] != "b.png" {
		t.Fatalf("拆分输出错误: %q", got)
	}
}

// TestBundledLayout 随仓库提供的示例布局可以完整生成。
func TestBundledLayout(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		input:   filepath.Join("layouts", "complex-layout.imu"),
		outputs: []string{filepath.Join(dir, "complex.pdf")},
		width:   1280,
		height:  720,
		strict:  true,
	}
	if err := run(cfg, canvasrenderer.NewRenderer("layouts")); err != nil {
		t.Fatalf("示例布局生成失败: %v", err)
	}
}
