package systems

import (
	"errors"

	"github.com/gonewx/pong/pkg/game"
)

// 系统读写的会话资源名称，调度器据此判断两个系统能否并发
const (
	ResCommands = "commands"
	ResPaddles  = "paddles"
	ResBalls    = "balls"
	ResScore    = "score"
	ResEvents   = "events"
)

var (
	// ErrMissingPaddle 玩家对应的球拍实体或组件缺失（结构性错误，会话无法继续）
	ErrMissingPaddle = errors.New("paddle entity missing")
	// ErrCycle 系统依赖存在环，无法排出执行顺序
	ErrCycle = errors.New("system dependency cycle")
	// ErrUnknownDependency 依赖了未注册的系统
	ErrUnknownDependency = errors.New("unknown system dependency")
	// ErrDuplicateSystem 同名系统重复注册
	ErrDuplicateSystem = errors.New("duplicate system")
)

// Access 系统对会话资源的读写声明
type Access struct {
	Reads  []string
	Writes []string
}

// conflicts 两个系统是否不能放在同一批次：一方写另一方读或写的资源
func (a Access) conflicts(b Access) bool {
	return overlaps(a.Writes, b.Writes) || overlaps(a.Writes, b.Reads) || overlaps(a.Reads, b.Writes)
}

func overlaps(x, y []string) bool {
	for _, a := range x {
		for _, b := range y {
			if a == b {
				return true
			}
		}
	}
	return false
}

// System 模拟管线中的一个更新过程
// Run 每帧最多调用一次，期间独占其 Access 中声明的写资源
type System interface {
	Name() string
	Access() Access
	Run(s *game.Session, deltaTime float64) error
}

// SessionSetup 需要在新会话开始时初始化的系统（如注册命令通道读者）
type SessionSetup interface {
	Setup(s *game.Session)
}
