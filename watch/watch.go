package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 合并编辑器保存时产生的连续事件。
const DefaultDebounce = 100 * time.Millisecond

// Watcher 监视单个布局文件。监视的是文件所在目录，
// 以便在编辑器通过重命名替换文件后仍能收到事件。
type Watcher struct {
	w        *fsnotify.Watcher
	target   string
	debounce time.Duration
}

// New 开始监视 path。
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w0, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监视器失败: %w", err)
	}
	if err := w0.Add(filepath.Dir(abs)); err != nil {
		w0.Close()
		return nil, fmt.Errorf("监视 %s 失败: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{w: w0, target: filepath.Clean(abs), debounce: debounce}, nil
}

// Close 停止监视。
func (w *Watcher) Close() error {
	return w.w.Close()
}

// Run 阻塞直到 ctx 取消或监视器关闭；目标文件被写入、创建或重命名后调用 onChange。
// onChange 在 Run 所在的 goroutine 中串行执行。
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var (
		timer <-chan time.Time
		t     *time.Timer
	)
	for {
		select {
		case <-ctx.Done():
			if t != nil {
				t.Stop()
			}
			return ctx.Err()

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("文件监视出错: %w", err)

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if t == nil {
				t = time.NewTimer(w.debounce)
			} else {
				t.Reset(w.debounce)
			}
			timer = t.C

		case <-timer:
			timer = nil
			onChange()
		}
	}
}
