package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/imu/layout"
)

// Format 是渲染输出的文件格式。
type Format string

const (
	PDF Format = "pdf"
	SVG Format = "svg"
	PNG Format = "png"
)

// FormatFromPath 根据文件扩展名推断输出格式。
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case PDF, SVG, PNG:
		return Format(ext), nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %q（可选 pdf/svg/png）", path)
	}
}

// Renderer 将已完成布局的树输出为最终文件，例如 PDF 或图像。
// Render 不修改树，可以对同一棵树并发调用。
type Renderer interface {
	Render(root *layout.Box, format Format) ([]byte, error)
}
