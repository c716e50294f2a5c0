package game

// StateEvent 前端根据按键产生的状态机事件
type StateEvent int

const (
	// EventClose 关闭窗口或退出键
	EventClose StateEvent = iota
	// EventPause 暂停键（Escape），在 Loading/Menu 中等同于退出
	EventPause
	EventConfirm
	EventMenuUp
	EventMenuDown
)

// String 返回事件名称
func (e StateEvent) String() string {
	switch e {
	case EventClose:
		return "Close"
	case EventPause:
		return "Pause"
	case EventConfirm:
		return "Confirm"
	case EventMenuUp:
		return "MenuUp"
	case EventMenuDown:
		return "MenuDown"
	default:
		return "Unknown"
	}
}

// TransKind 状态切换类型
type TransKind int

const (
	TransNone TransKind = iota
	TransSwitch
	TransPush
	TransPop
	TransQuit
)

// Trans 状态处理函数返回的切换请求
type Trans struct {
	Kind TransKind
	Next State
	// Err 随 TransQuit 一起上报的错误（如加载失败）
	Err error
}

// None 保持当前状态
func None() Trans { return Trans{Kind: TransNone} }

// Switch 用 next 替换栈顶状态
func Switch(next State) Trans { return Trans{Kind: TransSwitch, Next: next} }

// Push 在栈顶压入覆盖状态
func Push(next State) Trans { return Trans{Kind: TransPush, Next: next} }

// Pop 弹出栈顶状态
func Pop() Trans { return Trans{Kind: TransPop} }

// Quit 结束状态机
func Quit() Trans { return Trans{Kind: TransQuit} }

// QuitWithError 结束状态机并记录错误
func QuitWithError(err error) Trans { return Trans{Kind: TransQuit, Err: err} }

// State represents one phase of the game (loading, menu, playing, paused).
// Only the top state of the stack receives events and updates.
type State interface {
	// Name 状态名称（日志用）
	Name() string

	// OnStart 状态入栈时调用
	OnStart(w *World)
	// OnStop 状态出栈或被替换时调用
	OnStop(w *World)
	// OnPause 有新状态压在其上时调用
	OnPause(w *World)
	// OnResume 上方状态弹出、重新成为栈顶时调用
	OnResume(w *World)

	// HandleEvent 处理一个输入事件
	HandleEvent(w *World, ev StateEvent) Trans
	// Update 每帧调用一次，deltaTime 单位为秒
	Update(w *World, deltaTime float64) Trans
}

// BaseState 提供空的生命周期回调，具体状态可嵌入后只覆盖需要的方法
type BaseState struct{}

func (BaseState) OnStart(*World)                       {}
func (BaseState) OnStop(*World)                        {}
func (BaseState) OnPause(*World)                       {}
func (BaseState) OnResume(*World)                      {}
func (BaseState) HandleEvent(*World, StateEvent) Trans { return None() }
func (BaseState) Update(*World, float64) Trans         { return None() }
