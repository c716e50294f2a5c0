package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// MaxStackDepth 状态栈最大深度：一个活动状态加至多一个覆盖状态（Paused）
const MaxStackDepth = 2

var (
	// ErrStackFull 在已有覆盖状态时再次 Push
	ErrStackFull = errors.New("state stack full")
	// ErrNotRunning 状态机未启动或已退出
	ErrNotRunning = errors.New("state machine not running")
)

// LoadError 资源加载失败
type LoadError struct {
	Failed []string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load failed (%v): %v", e.Failed, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StateMachine manages the game's high-level state by controlling which state is active.
// It keeps a small stack (active state plus at most one overlay) and applies the
// transitions returned by the top state.
type StateMachine struct {
	world   *World
	stack   []State
	running bool
	err     error
	logger  *zap.Logger
}

// NewStateMachine creates a state machine bound to the given world.
// The machine starts with no active state; use Start to set the initial state.
func NewStateMachine(w *World) *StateMachine {
	if w.Logger == nil {
		w.Logger = zap.NewNop()
	}
	return &StateMachine{
		world:  w,
		stack:  make([]State, 0, MaxStackDepth),
		logger: w.Logger.Named("StateMachine"),
	}
}

// Start 以 initial 为初始状态启动
func (sm *StateMachine) Start(initial State) {
	sm.stack = append(sm.stack[:0], initial)
	sm.running = true
	sm.err = nil
	sm.logger.Debug("start", zap.String("state", initial.Name()))
	initial.OnStart(sm.world)
}

// Running 返回状态机是否仍在运行
func (sm *StateMachine) Running() bool {
	return sm.running
}

// Err 返回导致退出的错误（正常退出为 nil）
func (sm *StateMachine) Err() error {
	return sm.err
}

// Current 返回栈顶状态，没有时返回 nil
func (sm *StateMachine) Current() State {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// Depth 返回当前栈深度
func (sm *StateMachine) Depth() int {
	return len(sm.stack)
}

// HandleEvent 将事件交给栈顶状态并应用其切换请求
func (sm *StateMachine) HandleEvent(ev StateEvent) error {
	top := sm.Current()
	if !sm.running || top == nil {
		return ErrNotRunning
	}
	return sm.apply(top.HandleEvent(sm.world, ev))
}

// Update 更新栈顶状态并应用其切换请求
// deltaTime is the time elapsed since the last update in seconds.
func (sm *StateMachine) Update(deltaTime float64) error {
	top := sm.Current()
	if !sm.running || top == nil {
		return ErrNotRunning
	}
	return sm.apply(top.Update(sm.world, deltaTime))
}

// Abort 因致命错误结束状态机（如模拟管线的结构性错误）
func (sm *StateMachine) Abort(err error) {
	if sm.running {
		sm.quit(err)
	}
}

func (sm *StateMachine) apply(t Trans) error {
	switch t.Kind {
	case TransNone:
		return nil

	case TransSwitch:
		old := sm.Current()
		old.OnStop(sm.world)
		sm.stack[len(sm.stack)-1] = t.Next
		sm.logger.Debug("switch", zap.String("from", old.Name()), zap.String("to", t.Next.Name()))
		t.Next.OnStart(sm.world)

	case TransPush:
		if len(sm.stack) >= MaxStackDepth {
			return fmt.Errorf("push %s: %w", t.Next.Name(), ErrStackFull)
		}
		sm.Current().OnPause(sm.world)
		sm.stack = append(sm.stack, t.Next)
		sm.logger.Debug("push", zap.String("state", t.Next.Name()))
		t.Next.OnStart(sm.world)

	case TransPop:
		old := sm.Current()
		old.OnStop(sm.world)
		sm.stack = sm.stack[:len(sm.stack)-1]
		sm.logger.Debug("pop", zap.String("state", old.Name()))
		if top := sm.Current(); top != nil {
			top.OnResume(sm.world)
		} else {
			sm.quit(nil)
		}

	case TransQuit:
		sm.quit(t.Err)
	}
	return nil
}

// quit 自顶向下停止所有状态
func (sm *StateMachine) quit(err error) {
	for len(sm.stack) > 0 {
		top := sm.stack[len(sm.stack)-1]
		top.OnStop(sm.world)
		sm.stack = sm.stack[:len(sm.stack)-1]
	}
	sm.running = false
	sm.err = err
	sm.world.State = StateQuit
	if err != nil {
		sm.logger.Error("quit", zap.Error(err))
	} else {
		sm.logger.Info("quit")
	}
}
