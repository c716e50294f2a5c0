package systems

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/game"
)

// stubSystem 记录调用次数的测试系统
type stubSystem struct {
	name   string
	access Access
	err    error
	calls  atomic.Int32
	setups int
}

func (s *stubSystem) Name() string   { return s.name }
func (s *stubSystem) Access() Access { return s.access }
func (s *stubSystem) Setup(*game.Session) {
	s.setups++
}
func (s *stubSystem) Run(*game.Session, float64) error {
	s.calls.Add(1)
	return s.err
}

func newPlayingWorld(t *testing.T, cfg *config.GameConfig) *game.World {
	t.Helper()
	w := game.NewWorld(cfg, nil, nil, nil)
	w.StartSession(game.ModeMultiPlayer)
	w.State = game.StatePlaying
	return w
}

func TestGamePipelineBatches(t *testing.T) {
	d, err := NewGamePipeline(fakeAxes{}, config.DefaultGameConfig(), config.DefaultInputConfig(), nil)
	require.NoError(t, err)

	batches, err := d.Batches()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"player_input", "move_balls"},
		{"paddle_ai"},
		{"move_paddles"},
		{"bounce"},
		{"winner"},
	}, batches)
}

func TestDispatcherIndependentSystemsShareBatch(t *testing.T) {
	d := NewDispatcher(false, nil)
	a := &stubSystem{name: "a", access: Access{Writes: []string{"x"}}}
	b := &stubSystem{name: "b", access: Access{Writes: []string{"y"}}}
	c := &stubSystem{name: "c", access: Access{Reads: []string{"x"}}}
	require.NoError(t, d.Add(a))
	require.NoError(t, d.Add(b))
	require.NoError(t, d.Add(c))

	batches, err := d.Batches()
	require.NoError(t, err)
	// c 读 a 写的资源，不能与 a 同批
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, batches)
}

func TestDispatcherConflictKeepsRegistrationOrder(t *testing.T) {
	d := NewDispatcher(false, nil)
	first := &stubSystem{name: "first", access: Access{Writes: []string{"x"}}}
	blocker := &stubSystem{name: "blocker"}
	second := &stubSystem{name: "second", access: Access{Writes: []string{"x"}}}
	// first 要等 blocker；second 与 first 冲突，即使自身已就绪也必须排在 first 之后
	require.NoError(t, d.Add(blocker))
	require.NoError(t, d.Add(first, "blocker"))
	require.NoError(t, d.Add(second))

	batches, err := d.Batches()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"blocker"}, {"first"}, {"second"}}, batches)
}

func TestDispatcherDependentAfterConflict(t *testing.T) {
	d := NewDispatcher(false, nil)
	// a 先注册但依赖 b，且与 b 冲突：b 不能因为 a 尚未执行而被阻塞
	require.NoError(t, d.Add(&stubSystem{name: "a", access: Access{Writes: []string{"x"}}}, "b"))
	require.NoError(t, d.Add(&stubSystem{name: "b", access: Access{Writes: []string{"x"}}}))

	batches, err := d.Batches()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"b"}, {"a"}}, batches)
}

func TestDispatcherBuildErrors(t *testing.T) {
	t.Run("unknown dependency", func(t *testing.T) {
		d := NewDispatcher(false, nil)
		require.NoError(t, d.Add(&stubSystem{name: "a"}, "missing"))
		assert.ErrorIs(t, d.Build(), ErrUnknownDependency)
	})

	t.Run("cycle", func(t *testing.T) {
		d := NewDispatcher(false, nil)
		require.NoError(t, d.Add(&stubSystem{name: "a"}, "b"))
		require.NoError(t, d.Add(&stubSystem{name: "b"}, "c"))
		require.NoError(t, d.Add(&stubSystem{name: "c"}, "a"))
		assert.ErrorIs(t, d.Build(), ErrCycle)
	})

	t.Run("duplicate", func(t *testing.T) {
		d := NewDispatcher(false, nil)
		require.NoError(t, d.Add(&stubSystem{name: "a"}))
		assert.ErrorIs(t, d.Add(&stubSystem{name: "a"}), ErrDuplicateSystem)
	})
}

func TestDispatcherGatesOnState(t *testing.T) {
	w := newPlayingWorld(t, nil)
	d := NewDispatcher(false, nil)
	sys := &stubSystem{name: "a"}
	require.NoError(t, d.Add(sys))

	for _, state := range []game.GameState{game.StateLoading, game.StateMenu, game.StatePaused, game.StateQuit} {
		w.State = state
		require.NoError(t, d.Run(w, 1.0/60))
	}
	assert.Equal(t, int32(0), sys.calls.Load())

	w.State = game.StatePlaying
	require.NoError(t, d.Run(w, 1.0/60))
	require.NoError(t, d.Run(w, 1.0/60))
	assert.Equal(t, int32(2), sys.calls.Load())
	assert.Equal(t, 1, sys.setups, "setup once per session")

	w.StartSession(game.ModeSinglePlayer)
	require.NoError(t, d.Run(w, 1.0/60))
	assert.Equal(t, 2, sys.setups)
}

func TestDispatcherStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	for _, parallel := range []bool{false, true} {
		w := newPlayingWorld(t, nil)
		d := NewDispatcher(parallel, nil)
		failing := &stubSystem{name: "failing", access: Access{Writes: []string{"x"}}, err: boom}
		sibling := &stubSystem{name: "sibling", access: Access{Writes: []string{"y"}}}
		after := &stubSystem{name: "after"}
		require.NoError(t, d.Add(failing))
		require.NoError(t, d.Add(sibling))
		require.NoError(t, d.Add(after, "failing"))

		err := d.Run(w, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "system failing")
		assert.Equal(t, int32(0), after.calls.Load())
	}
}

// TestPauseGating 暂停期间多次 tick 不改变球、球拍和比分
func TestPauseGating(t *testing.T) {
	w := newPlayingWorld(t, nil)
	d, err := NewGamePipeline(fakeAxes{config.AxisLeftPaddle: 1, config.AxisRightPaddle: -1}, w.Config, w.Input, nil)
	require.NoError(t, err)

	// 先运行一帧以注册读者
	require.NoError(t, d.Run(w, 1.0/60))

	s := w.Session
	ballPos, ball := ballOf(t, s)
	ballPos.X = 2 // 若未暂停，本帧会计分
	before := *ballPos
	beforeBall := *ball
	left := *paddleTransform(t, s, game.P1)
	right := *paddleTransform(t, s, game.P2)
	score := s.ScoreBoard

	w.State = game.StatePaused
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Run(w, 1.0/60))
	}

	assert.Equal(t, before, *ballPos)
	assert.Equal(t, beforeBall, *ball)
	assert.Equal(t, left, *paddleTransform(t, s, game.P1))
	assert.Equal(t, right, *paddleTransform(t, s, game.P2))
	assert.Equal(t, score, s.ScoreBoard)
}

// TestPipelineFrame 完整一帧：输入移动球拍、球前进、管线结束后通道被压缩
func TestPipelineFrame(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		cfg := config.DefaultGameConfig()
		cfg.Scheduler.Parallel = parallel
		cfg.AI.Enabled = false
		w := newPlayingWorld(t, cfg)

		d, err := NewGamePipeline(fakeAxes{config.AxisLeftPaddle: 1, config.AxisRightPaddle: -0.5}, cfg, nil, nil)
		require.NoError(t, err)
		require.NoError(t, d.Run(w, 0.1))

		s := w.Session
		assert.InDelta(t, 51.2, paddleTransform(t, s, game.P1).Y, 1e-9)
		assert.InDelta(t, 49.4, paddleTransform(t, s, game.P2).Y, 1e-9)

		pos, _ := ballOf(t, s)
		assert.InDelta(t, 57.5, pos.X, 1e-9)
		assert.InDelta(t, 55.0, pos.Y, 1e-9)

		assert.Equal(t, 0, s.Commands.Len())
		assert.Equal(t, 0, s.Events.Len())
	}
}

// TestPipelineLongRun 长时间运行：球拍始终在限位内，比分不超过上限
func TestPipelineLongRun(t *testing.T) {
	cfg := config.DefaultGameConfig()
	w := game.NewWorld(cfg, nil, nil, nil)
	w.StartSession(game.ModeSinglePlayer)
	w.State = game.StatePlaying

	d, err := NewGamePipeline(fakeAxes{config.AxisLeftPaddle: 1}, cfg, nil, nil)
	require.NoError(t, err)

	s := w.Session
	for i := 0; i < 5000; i++ {
		require.NoError(t, d.Run(w, 1.0/60))
		for _, p := range []game.Player{game.P1, game.P2} {
			y := paddleTransform(t, s, p).Y
			require.GreaterOrEqual(t, y, cfg.Paddle.Height/2)
			require.LessOrEqual(t, y, cfg.Arena.Height-cfg.Paddle.Height/2)
		}
	}
	assert.LessOrEqual(t, s.ScoreBoard.Left, config.MaxScore)
	assert.LessOrEqual(t, s.ScoreBoard.Right, config.MaxScore)
	assert.Greater(t, s.ScoreBoard.Left+s.ScoreBoard.Right, 0)
}
