package systems

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gonewx/pong/pkg/game"
)

type entry struct {
	sys    System
	name   string
	deps   []string
	access Access
	// ancestors 传递依赖集合
	ancestors map[string]bool
}

// Dispatcher 按依赖 DAG 调度系统
//
// 系统按注册顺序分批：一个系统进入当前批次的条件是
// 所有依赖都已在更早的批次完成，且与本批次成员、以及排在它前面尚未执行的系统都没有读写冲突。
// 同一批次内的系统互不冲突，parallel 为 true 时并发执行。
//
// 整个管线受暂停门控：World.State 不是 Playing 时 Run 什么都不做。
type Dispatcher struct {
	entries  []*entry
	byName   map[string]*entry
	batches  [][]*entry
	built    bool
	parallel bool

	session *game.Session
	logger  *zap.Logger
}

// NewDispatcher 创建调度器
func NewDispatcher(parallel bool, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		byName:   make(map[string]*entry),
		parallel: parallel,
		logger:   logger.Named("Dispatcher"),
	}
}

// Add 注册系统及其依赖（依赖用系统名称表示）
func (d *Dispatcher) Add(sys System, deps ...string) error {
	name := sys.Name()
	if _, exists := d.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSystem, name)
	}
	e := &entry{sys: sys, name: name, deps: deps, access: sys.Access()}
	d.entries = append(d.entries, e)
	d.byName[name] = e
	d.built = false
	return nil
}

// Build 校验依赖并计算执行批次
func (d *Dispatcher) Build() error {
	for _, e := range d.entries {
		for _, dep := range e.deps {
			if _, ok := d.byName[dep]; !ok {
				return fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, e.name, dep)
			}
		}
	}

	for _, e := range d.entries {
		e.ancestors = make(map[string]bool)
		if err := d.collectAncestors(e, e, map[string]bool{}); err != nil {
			return err
		}
	}

	done := make(map[string]bool)
	remaining := d.entries
	var batches [][]*entry

	for len(remaining) > 0 {
		var batch, pending []*entry
		for _, e := range remaining {
			if d.ready(e, done) && !conflictsWithAny(e, batch) && !blockedByPending(e, pending) {
				batch = append(batch, e)
			} else {
				pending = append(pending, e)
			}
		}
		if len(batch) == 0 {
			return fmt.Errorf("%w: cannot schedule %s", ErrCycle, pending[0].name)
		}
		for _, e := range batch {
			done[e.name] = true
		}
		batches = append(batches, batch)
		remaining = pending
	}

	d.batches = batches
	d.built = true
	d.logger.Debug("built", zap.Strings("batches", d.describe()))
	return nil
}

func (d *Dispatcher) collectAncestors(root, e *entry, visiting map[string]bool) error {
	if visiting[e.name] {
		return fmt.Errorf("%w: %s", ErrCycle, e.name)
	}
	visiting[e.name] = true
	defer delete(visiting, e.name)

	for _, dep := range e.deps {
		if dep == root.name {
			return fmt.Errorf("%w: %s", ErrCycle, root.name)
		}
		if root.ancestors[dep] {
			continue
		}
		root.ancestors[dep] = true
		if err := d.collectAncestors(root, d.byName[dep], visiting); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) ready(e *entry, done map[string]bool) bool {
	for _, dep := range e.deps {
		if !done[dep] {
			return false
		}
	}
	return true
}

func conflictsWithAny(e *entry, others []*entry) bool {
	for _, o := range others {
		if e.access.conflicts(o.access) {
			return true
		}
	}
	return false
}

// blockedByPending 与排在前面、尚未执行的系统冲突时必须等待（保持注册顺序），
// 除非对方本身依赖 e
func blockedByPending(e *entry, pending []*entry) bool {
	for _, p := range pending {
		if p.ancestors[e.name] {
			continue
		}
		if e.access.conflicts(p.access) {
			return true
		}
	}
	return false
}

// Batches 返回各批次中的系统名称（调试、测试用）
func (d *Dispatcher) Batches() ([][]string, error) {
	if !d.built {
		if err := d.Build(); err != nil {
			return nil, err
		}
	}
	out := make([][]string, len(d.batches))
	for i, batch := range d.batches {
		for _, e := range batch {
			out[i] = append(out[i], e.name)
		}
	}
	return out, nil
}

func (d *Dispatcher) describe() []string {
	out := make([]string, len(d.batches))
	for i, batch := range d.batches {
		s := ""
		for j, e := range batch {
			if j > 0 {
				s += ","
			}
			s += e.name
		}
		out[i] = s
	}
	return out
}

// Run 执行一帧
//
// 非 Playing 状态或没有会话时直接返回（暂停门控）。
// 任一系统出错立即中止本帧，返回包装了系统名称的错误。
// 帧末压缩命令通道和事件通道，并清理标记删除的实体。
func (d *Dispatcher) Run(w *game.World, deltaTime float64) error {
	if w.State != game.StatePlaying || w.Session == nil {
		return nil
	}
	if !d.built {
		if err := d.Build(); err != nil {
			return err
		}
	}

	s := w.Session
	if s != d.session {
		d.setup(s)
	}

	for _, batch := range d.batches {
		if err := d.runBatch(batch, s, deltaTime); err != nil {
			return err
		}
	}

	s.Commands.Maintain()
	s.Events.Maintain()
	s.Entities.RemoveMarkedEntities()
	return nil
}

func (d *Dispatcher) setup(s *game.Session) {
	for _, e := range d.entries {
		if setup, ok := e.sys.(SessionSetup); ok {
			setup.Setup(s)
		}
	}
	d.session = s
	d.logger.Debug("session attached", zap.String("session", s.ID))
}

func (d *Dispatcher) runBatch(batch []*entry, s *game.Session, deltaTime float64) error {
	if !d.parallel || len(batch) == 1 {
		for _, e := range batch {
			if err := e.sys.Run(s, deltaTime); err != nil {
				return fmt.Errorf("system %s: %w", e.name, err)
			}
		}
		return nil
	}

	var g errgroup.Group
	for _, e := range batch {
		e := e
		g.Go(func() error {
			if err := e.sys.Run(s, deltaTime); err != nil {
				return fmt.Errorf("system %s: %w", e.name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
