package terminal

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/pong/pkg/input"
)

// DefaultHold 终端没有按键释放事件，一个键在最后一次按下后保持“按住”的时长
const DefaultHold = 150 * time.Millisecond

var specialKeys = map[tcell.Key]string{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyEscape: "escape",
	tcell.KeyEnter:  "enter",
	tcell.KeyTab:    "tab",
}

// KeyName 把 tcell 按键事件转成绑定配置使用的键名
func KeyName(ev *tcell.EventKey) (string, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space", true
		}
		return string(unicode.ToLower(r)), true
	}
	name, ok := specialKeys[ev.Key()]
	return name, ok
}

// heldKeys 按最后按下时间模拟按住状态
type heldKeys struct {
	hold time.Duration
	last map[string]time.Time
}

func newHeldKeys(hold time.Duration) *heldKeys {
	return &heldKeys{hold: hold, last: make(map[string]time.Time)}
}

func (h *heldKeys) press(name string, now time.Time) {
	h.last[input.Normalize(name)] = now
}

// snapshot 返回 now 时刻仍视为按住的键，并清理过期记录
func (h *heldKeys) snapshot(now time.Time) input.KeySet {
	held := input.KeySet{}
	for name, at := range h.last {
		if now.Sub(at) <= h.hold {
			held.Press(name)
		} else {
			delete(h.last, name)
		}
	}
	return held
}
