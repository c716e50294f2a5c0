package game

import (
	"errors"
	"fmt"
	"sync"
)

// LoadStatus 加载进度状态
type LoadStatus int

const (
	LoadInProgress LoadStatus = iota
	LoadComplete
	LoadFailed
)

// Progress 异步加载任务的完成计数
//
// 加载任务在后台 goroutine 中运行；Loading 状态每帧轮询一次 Status，不阻塞。
type Progress struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	total    int
	finished int
	failed   []string
	errs     []error
}

// NewProgress 创建空的进度计数器
func NewProgress() *Progress {
	return &Progress{}
}

// Go 在后台运行一个加载任务
func (p *Progress) Go(name string, fn func() error) {
	p.mu.Lock()
	p.total++
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		err := fn()

		p.mu.Lock()
		defer p.mu.Unlock()
		p.finished++
		if err != nil {
			p.failed = append(p.failed, name)
			p.errs = append(p.errs, fmt.Errorf("%s: %w", name, err))
		}
	}()
}

// Wait 阻塞直到所有任务结束（命令行工具和测试使用）
func (p *Progress) Wait() {
	p.wg.Wait()
}

// Status 返回当前状态；任一任务失败即为 LoadFailed
func (p *Progress) Status() LoadStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case len(p.errs) > 0:
		return LoadFailed
	case p.finished == p.total:
		return LoadComplete
	default:
		return LoadInProgress
	}
}

// Counts 返回已完成和总任务数
func (p *Progress) Counts() (finished, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished, p.total
}

// Err 返回汇总的加载错误，没有失败时返回 nil
func (p *Progress) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.errs) == 0 {
		return nil
	}
	failed := make([]string, len(p.failed))
	copy(failed, p.failed)
	return &LoadError{Failed: failed, Err: errors.Join(p.errs...)}
}
