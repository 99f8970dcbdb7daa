package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/imu/fonts"
	"github.com/ByLCY/imu/layout"
	"github.com/ByLCY/imu/renderer"
)

const (
	mmToPt         = 72.0 / 25.4
	labelScale     = 0.8
	defaultDash    = 5.0
	defaultStroke  = 1.0
	defaultDPMM    = 1.0
	fallbackFamily = "imu-label"
)

// DefaultPalette 是按节点编号循环使用的填充色。
var DefaultPalette = []string{
	"#F2DC5D",
	"#F2A359",
	"#DB9065",
	"#A4031F",
	"#240B36",
	"#71A2B6",
	"#C4F1BE",
}

// Renderer draws laid-out boxes via github.com/tdewolff/canvas.
// 画布单位与布局单位一一对应：1dp 对应 1 个画布单位，PNG 输出时为 Resolution 个像素。
type Renderer struct {
	opts    Options
	palette []color.RGBA

	fontMu   sync.Mutex
	fontData []byte
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	BaseDir     string
	Font        string   // builtin:<name> 或字体文件路径，空值使用内置字体
	Palette     []string // 十六进制颜色，空值使用 DefaultPalette
	StrokeWidth float64
	Dash        float64
	Resolution  float64 // PNG 每 dp 像素数
}

// NewRenderer creates a renderer with default options rooted at baseDir.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with the given options.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = defaultStroke
	}
	if opts.Dash <= 0 {
		opts.Dash = defaultDash
	}
	if opts.Resolution <= 0 {
		opts.Resolution = defaultDPMM
	}
	hexes := opts.Palette
	if len(hexes) == 0 {
		hexes = DefaultPalette
	}
	palette := make([]color.RGBA, 0, len(hexes))
	for _, h := range hexes {
		palette = append(palette, canvas.Hex(h))
	}
	return &Renderer{opts: opts, palette: palette}
}

// Render 渲染 root 及其全部后代；root 必须已经完成布局。
func (r *Renderer) Render(root *layout.Box, format renderer.Format) (out []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("渲染 %s 失败: %v", format, p)
		}
	}()
	if root == nil {
		return nil, fmt.Errorf("渲染的根节点为空")
	}
	if !root.Arranged {
		return nil, fmt.Errorf("根节点尚未完成布局")
	}
	width, height := root.Resolved.Width, root.Resolved.Height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("视口尺寸无效: %gx%g", width, height)
	}

	// 每次渲染使用独立的字体族，避免并发渲染共享字体状态。
	family, err := r.fontFamily()
	if err != nil {
		return nil, err
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	for i, b := range layout.Flatten(root) {
		r.drawBox(ctx, family, i, b)
	}

	var buf bytes.Buffer
	switch format {
	case renderer.PDF:
		// Latin Modern 为 CFF 字体，canvas 对其子集化时遇到 '$' 等字形会 panic。
		opts := pdf.DefaultOptions
		opts.SubsetFonts = false
		writer := pdf.New(&buf, width, height, &opts)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.SVG:
		writer := svg.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case renderer.PNG:
		img := rasterizer.Draw(c, canvas.DPMM(r.opts.Resolution), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", format)
	}
	return buf.Bytes(), nil
}

// drawBox 填充矩形、以反色虚线描边，并在中心标注 label 或编号。
func (r *Renderer) drawBox(ctx *canvas.Context, family *canvas.FontFamily, index int, b *layout.Box) {
	rect := b.Resolved
	if !b.Arranged || rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	fill := r.colour(index)
	stroke := invert(fill)

	ctx.Push()
	ctx.SetFillColor(fill)
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(r.opts.StrokeWidth)
	ctx.SetDashes(0, r.opts.Dash)
	ctx.DrawPath(rect.X, rect.Y, canvas.Rectangle(rect.Width, rect.Height))
	ctx.Pop()

	label := b.Label
	if label == "" {
		label = strconv.Itoa(index)
	}
	face := labelFace(family, label, rect, stroke)
	metrics := face.Metrics()
	line := canvas.NewTextLine(face, label, canvas.Center)
	ctx.DrawText(rect.X+rect.Width/2, rect.Y+rect.Height/2+metrics.CapHeight/2, line)
}

// labelFace 以矩形高度的 80% 作为字号，超出矩形宽度时等比缩小。
func labelFace(family *canvas.FontFamily, label string, rect layout.Rect, col color.Color) *canvas.FontFace {
	sizePt := rect.Height * labelScale * mmToPt
	face := family.Face(sizePt, col, canvas.FontRegular, canvas.FontNormal)
	if w := face.TextWidth(label); w > rect.Width {
		face = family.Face(sizePt*rect.Width/w, col, canvas.FontRegular, canvas.FontNormal)
	}
	return face
}

func (r *Renderer) colour(index int) color.RGBA {
	return r.palette[index%len(r.palette)]
}

// invert 与 hex ^ 0xFFFFFF 等价，保留透明度。
func invert(c color.RGBA) color.RGBA {
	return color.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
}

func (r *Renderer) fontFamily() (*canvas.FontFamily, error) {
	data, err := r.loadFontBytes()
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(fallbackFamily)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载标签字体失败: %w", err)
	}
	return family, nil
}

func (r *Renderer) loadFontBytes() ([]byte, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.fontData != nil {
		return r.fontData, nil
	}

	src := r.opts.Font
	var (
		data []byte
		err  error
	)
	if src == "" || strings.HasPrefix(src, "builtin:") || strings.HasPrefix(src, "built-in:") {
		data, err = fonts.Load(src)
	} else {
		path := src
		if !filepath.IsAbs(path) {
			if r.opts.BaseDir == "" {
				return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 builtin:）", src)
			}
			path = filepath.Join(r.opts.BaseDir, path)
		}
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	r.fontData = data
	return data, nil
}
