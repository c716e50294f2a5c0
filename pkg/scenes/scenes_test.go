package scenes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/game"
)

func newTestWorld(cfg *config.GameConfig) *game.World {
	return game.NewWorld(cfg, nil, nil, nil)
}

func completedProgress() *game.Progress {
	p := game.NewProgress()
	p.Go("config", func() error { return nil })
	p.Wait()
	return p
}

func TestLoadingWaitsForProgress(t *testing.T) {
	w := newTestWorld(nil)
	sm := game.NewStateMachine(w)

	p := game.NewProgress()
	release := make(chan struct{})
	p.Go("font", func() error {
		<-release
		return nil
	})

	sm.Start(NewLoadingScene(p))
	require.NoError(t, sm.Update(0))
	assert.Equal(t, game.StateLoading, w.State)
	assert.Equal(t, "Loading", sm.Current().Name())

	close(release)
	p.Wait()
	require.NoError(t, sm.Update(0))
	assert.Equal(t, game.StateMenu, w.State)
	assert.IsType(t, &MainMenuScene{}, sm.Current())
}

func TestLoadingLogsProgress(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	w := game.NewWorld(nil, nil, nil, zap.New(core))
	sm := game.NewStateMachine(w)

	sm.Start(NewLoadingScene(completedProgress()))
	require.NoError(t, sm.Update(0))

	assert.Equal(t, 1, logs.FilterMessage("[1/1] Loading Assets...").Len())
}

func TestLoadingSkipMenu(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.SkipMenu = true
	w := newTestWorld(cfg)
	sm := game.NewStateMachine(w)

	sm.Start(NewLoadingScene(completedProgress()))
	require.NoError(t, sm.Update(0))

	assert.Equal(t, game.StatePlaying, w.State)
	require.NotNil(t, w.Session)
}

func TestLoadingFailureQuits(t *testing.T) {
	w := newTestWorld(nil)
	sm := game.NewStateMachine(w)

	p := game.NewProgress()
	p.Go("font", func() error { return errors.New("missing face") })
	p.Wait()

	sm.Start(NewLoadingScene(p))
	require.NoError(t, sm.Update(0))

	assert.False(t, sm.Running())
	assert.Equal(t, game.StateQuit, w.State)

	var le *game.LoadError
	require.ErrorAs(t, sm.Err(), &le)
	assert.Equal(t, []string{"font"}, le.Failed)
}

func TestLoadingEscapeQuits(t *testing.T) {
	for _, ev := range []game.StateEvent{game.EventClose, game.EventPause} {
		w := newTestWorld(nil)
		sm := game.NewStateMachine(w)
		sm.Start(NewLoadingScene(game.NewProgress()))

		require.NoError(t, sm.HandleEvent(ev))
		assert.False(t, sm.Running(), ev.String())
		assert.NoError(t, sm.Err())
	}
}

func TestMenuNavigationWraps(t *testing.T) {
	w := newTestWorld(nil)
	sm := game.NewStateMachine(w)
	menu := NewMenuScene()
	sm.Start(menu)

	assert.Equal(t, MenuSinglePlayer, menu.Selected())
	require.NoError(t, sm.HandleEvent(game.EventMenuUp))
	assert.Equal(t, MenuQuit, menu.Selected())
	require.NoError(t, sm.HandleEvent(game.EventMenuDown))
	assert.Equal(t, MenuSinglePlayer, menu.Selected())
	require.NoError(t, sm.HandleEvent(game.EventMenuDown))
	assert.Equal(t, MenuMultiPlayer, menu.Selected())

	assert.Equal(t, []string{"1 Player", "2 Players", "Quit"}, menu.Items())
}

func TestMenuConfirmStartsSession(t *testing.T) {
	tests := []struct {
		name   string
		downs  int
		active game.PlayersActive
		mode   string
	}{
		{"single player", 0, game.PlayersActive{P1: true, P2: false}, "single"},
		{"two players", 1, game.PlayersActive{P1: true, P2: true}, "multi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(nil)
			sm := game.NewStateMachine(w)
			sm.Start(NewMenuScene())

			for i := 0; i < tt.downs; i++ {
				require.NoError(t, sm.HandleEvent(game.EventMenuDown))
			}
			require.NoError(t, sm.HandleEvent(game.EventConfirm))

			assert.Equal(t, game.StatePlaying, w.State)
			require.NotNil(t, w.Session)
			assert.Equal(t, tt.active, w.Session.PlayersActive())
			assert.Equal(t, tt.mode, w.Settings.GetSettings().LastMode)
		})
	}
}

func TestMenuRemembersMode(t *testing.T) {
	w := newTestWorld(nil)
	w.Mode = game.ModeMultiPlayer
	sm := game.NewStateMachine(w)
	menu := NewMenuScene()
	sm.Start(menu)

	assert.Equal(t, MenuMultiPlayer, menu.Selected())
}

func TestMenuQuitItem(t *testing.T) {
	w := newTestWorld(nil)
	sm := game.NewStateMachine(w)
	sm.Start(NewMenuScene())

	require.NoError(t, sm.HandleEvent(game.EventMenuUp))
	require.NoError(t, sm.HandleEvent(game.EventConfirm))
	assert.False(t, sm.Running())
	assert.Equal(t, game.StateQuit, w.State)
}

// TestPauseToggle 暂停键压入暂停层，再按一次恢复；会话在暂停期间保留
func TestPauseToggle(t *testing.T) {
	w := newTestWorld(nil)
	sm := game.NewStateMachine(w)
	sm.Start(NewPlayingScene(game.ModeSinglePlayer))
	session := w.Session
	require.NotNil(t, session)

	require.NoError(t, sm.HandleEvent(game.EventPause))
	assert.Equal(t, game.StatePaused, w.State)
	assert.Equal(t, 2, sm.Depth())
	assert.Same(t, session, w.Session)

	// 暂停层上的其他输入被忽略
	require.NoError(t, sm.HandleEvent(game.EventConfirm))
	assert.Equal(t, game.StatePaused, w.State)

	require.NoError(t, sm.HandleEvent(game.EventPause))
	assert.Equal(t, game.StatePlaying, w.State)
	assert.Equal(t, 1, sm.Depth())
	assert.Same(t, session, w.Session)
}

func TestCloseFromPausedQuits(t *testing.T) {
	w := newTestWorld(nil)
	sm := game.NewStateMachine(w)
	sm.Start(NewPlayingScene(game.ModeMultiPlayer))
	require.NoError(t, sm.HandleEvent(game.EventPause))

	require.NoError(t, sm.HandleEvent(game.EventClose))
	assert.False(t, sm.Running())
	assert.Equal(t, game.StateQuit, w.State)
	assert.Nil(t, w.Session)
}

func TestCloseFromPlayingQuits(t *testing.T) {
	w := newTestWorld(nil)
	sm := game.NewStateMachine(w)
	sm.Start(NewPlayingScene(game.ModeMultiPlayer))

	require.NoError(t, sm.HandleEvent(game.EventClose))
	assert.False(t, sm.Running())
	assert.Nil(t, w.Session)
}
