package systems

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/game"
)

// fakeAxes 测试用输入轴，未设置的轴视为不存在
type fakeAxes map[string]float64

func (f fakeAxes) AxisValue(name string) (float64, bool) {
	v, ok := f[name]
	return v, ok
}

func newTestSession(t *testing.T, active game.PlayersActive) *game.Session {
	t.Helper()
	return game.NewSession(config.DefaultGameConfig(), active, nil)
}

// ballOf 返回会话中唯一的球
func ballOf(t *testing.T, s *game.Session) (*components.TransformComponent, *components.BallComponent) {
	t.Helper()
	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.BallComponent](s.Entities)
	require.Len(t, ids, 1)
	pos, _ := ecs.GetComponent[*components.TransformComponent](s.Entities, ids[0])
	ball, _ := ecs.GetComponent[*components.BallComponent](s.Entities, ids[0])
	return pos, ball
}

func paddleTransform(t *testing.T, s *game.Session, p game.Player) *components.TransformComponent {
	t.Helper()
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.Entities, s.Players.Paddle(p))
	require.True(t, ok)
	return tr
}

func textOf(s *game.Session, id ecs.EntityID) string {
	t, _ := ecs.GetComponent[*components.UITextComponent](s.Entities, id)
	return t.Text
}

var bothActive = game.PlayersActive{P1: true, P2: true}
