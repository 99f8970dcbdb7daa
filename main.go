package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/imu/dsl"
	"github.com/ByLCY/imu/layout"
	"github.com/ByLCY/imu/logger"
	"github.com/ByLCY/imu/renderer"
	canvasrenderer "github.com/ByLCY/imu/renderer/canvas"
	"github.com/ByLCY/imu/watch"
)

// config 汇总一次运行所需的参数。
type config struct {
	input     string
	outputs   []string
	width     float64
	height    float64
	debugPath string
	dump      bool
	strict    bool
	data      any
}

func main() {
	input := flag.String("in", "layouts/complex-layout.imu", "布局文件路径")
	output := flag.String("out", "output/layout.pdf", "输出路径，多个以逗号分隔，格式由扩展名决定（pdf/svg/png）")
	width := flag.Float64("width", 1280, "视口宽度（dp）")
	height := flag.Float64("height", 720, "视口高度（dp）")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dump := flag.Bool("dump", false, "将布局树输出到标准错误")
	strict := flag.Bool("strict", false, "拒绝未知属性")
	dataJSON := flag.String("data", "", "绑定到 label 的 JSON 数据")
	font := flag.String("font", "", "标签字体：builtin:<name> 或字体文件路径")
	resolution := flag.Float64("resolution", 1, "PNG 输出时每 dp 的像素数")
	watchFlag := flag.Bool("watch", false, "布局文件变化时重新布局并输出")
	flag.Parse()

	cfg := config{
		input:     *input,
		outputs:   splitOutputs(*output),
		width:     *width,
		height:    *height,
		debugPath: *debug,
		dump:      *dump,
		strict:    *strict,
	}
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &cfg.data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir:    filepath.Dir(*input),
		Font:       *font,
		Resolution: *resolution,
	})

	if !*watchFlag {
		if err := run(cfg, r); err != nil {
			log.Fatalf("生成失败: %v", err)
		}
		fmt.Printf("已生成：%s\n", strings.Join(cfg.outputs, ", "))
		return
	}

	if err := watchAndRun(cfg, r); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("监视失败: %v", err)
	}
}

// watchAndRun 先执行一次，之后每次布局文件变化都重新执行，直到收到中断信号。
func watchAndRun(cfg config, r renderer.Renderer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, err := watch.New(cfg.input, watch.DefaultDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	rerun := func() {
		if err := run(cfg, r); err != nil {
			logger.WarningLogger.Printf("生成失败: %v", err)
			return
		}
		logger.ProgressLogger.Printf("已生成：%s", strings.Join(cfg.outputs, ", "))
	}
	rerun()
	logger.ProgressLogger.Printf("正在监视 %s", cfg.input)
	return w.Run(ctx, rerun)
}

// run 串联解析、布局与渲染。
func run(cfg config, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	file, err := os.Open(cfg.input)
	if err != nil {
		return fmt.Errorf("无法打开布局文件 %s: %w", cfg.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析布局文件失败: %w", err)
	}

	root, err := layout.Build(doc, cfg.data, layout.BuildOptions{Strict: cfg.strict})
	if err != nil {
		return fmt.Errorf("构建布局树失败: %w", err)
	}

	rep, err := layout.Layout(root, cfg.width, cfg.height)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	for _, w := range rep.Warnings {
		logger.WarningLogger.Println(w)
	}

	if cfg.debugPath != "" {
		if err := writeDebug(rep, cfg.debugPath); err != nil {
			return err
		}
	}
	if cfg.dump {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		dumper.Fdump(os.Stderr, root)
	}

	var g errgroup.Group
	for _, out := range cfg.outputs {
		g.Go(func() error { return writeOutput(r, root, out) })
	}
	return g.Wait()
}

func writeOutput(r renderer.Renderer, root *layout.Box, outputPath string) error {
	format, err := renderer.FormatFromPath(outputPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	data, err := r.Render(root, format)
	if err != nil {
		return fmt.Errorf("渲染 %s 失败: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", outputPath, err)
	}
	return nil
}

func writeDebug(rep *layout.Report, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(rep, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func splitOutputs(s string) []string {
	var outs []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			outs = append(outs, p)
		}
	}
	return outs
}
