// Package audio 把模拟产生的游戏事件转成简短的提示音
//
// 音频是可选的：扬声器初始化失败时 CuePlayer 仍然消费事件，只是不发声。
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue 一个提示音：正弦波频率和时长
type Cue struct {
	Freq     float64
	Duration time.Duration
}

var cues = map[game.GameEventKind]Cue{
	game.EventWallBounce:   {Freq: 440, Duration: 40 * time.Millisecond},
	game.EventPaddleBounce: {Freq: 660, Duration: 60 * time.Millisecond},
	game.EventScored:       {Freq: 220, Duration: 250 * time.Millisecond},
}

// CueFor 返回事件对应的提示音
func CueFor(kind game.GameEventKind) (Cue, bool) {
	c, ok := cues[kind]
	return c, ok
}

// Output 接收要播放的音频流
type Output interface {
	Play(s beep.Streamer)
}

// speakerOutput 把所有提示音混入同一个 Mixer，Mixer 常驻扬声器
type speakerOutput struct {
	mixer *beep.Mixer
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

var (
	speakerOnce sync.Once
	speakerOut  *speakerOutput
	speakerErr  error
)

// openSpeaker 初始化扬声器（进程内只做一次）
func openSpeaker() (Output, error) {
	speakerOnce.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			speakerErr = err
			return
		}
		speakerOut = &speakerOutput{mixer: &beep.Mixer{}}
		speaker.Play(speakerOut.mixer)
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return speakerOut, nil
}

// CuePlayer 读取会话事件通道并播放提示音
type CuePlayer struct {
	out     Output
	enabled bool
	volume  float64

	session *game.Session
	reader  *game.ReaderID
	logger  *zap.Logger
}

// NewCuePlayer 创建使用系统扬声器的播放器
// 扬声器不可用时记录警告并静音运行
func NewCuePlayer(enabled bool, logger *zap.Logger) *CuePlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("Audio")

	var out Output
	if enabled {
		o, err := openSpeaker()
		if err != nil {
			logger.Warn("speaker unavailable, sound disabled", zap.Error(err))
			enabled = false
		} else {
			out = o
		}
	}
	return &CuePlayer{out: out, enabled: enabled, volume: 0.25, logger: logger}
}

// NewCuePlayerWithOutput 创建写入指定输出的播放器
func NewCuePlayerWithOutput(out Output, logger *zap.Logger) *CuePlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CuePlayer{out: out, enabled: out != nil, volume: 0.25, logger: logger.Named("Audio")}
}

// Enabled 返回是否发声
func (p *CuePlayer) Enabled() bool {
	return p.enabled && p.out != nil
}

// SetEnabled 开关声音；没有可用输出时保持静音
func (p *CuePlayer) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// Consume 读取会话自上次调用以来的事件并播放，返回播放的提示音数量
//
// 会话变化时重新注册读者；session 为 nil 时释放读者。
// 静音时也照常读取，避免事件通道因读者滞后而无法压缩。
func (p *CuePlayer) Consume(session *game.Session) int {
	if session != p.session {
		p.attach(session)
	}
	if session == nil {
		return 0
	}

	played := 0
	for _, ev := range session.Events.Read(p.reader) {
		cue, ok := CueFor(ev.Kind)
		if !ok || !p.Enabled() {
			continue
		}
		p.out.Play(p.stream(cue))
		played++
	}
	return played
}

// Close 释放事件读者
func (p *CuePlayer) Close() {
	p.attach(nil)
}

func (p *CuePlayer) attach(session *game.Session) {
	if p.session != nil && p.reader != nil {
		p.session.Events.UnregisterReader(p.reader)
	}
	p.session = session
	p.reader = nil
	if session != nil {
		p.reader = session.Events.RegisterReader()
		p.logger.Debug("attached to session", zap.String("session", session.ID))
	}
}

func (p *CuePlayer) stream(cue Cue) beep.Streamer {
	tone, err := generators.SineTone(sampleRate, cue.Freq)
	if err != nil {
		p.logger.Warn("invalid cue frequency", zap.Float64("freq", cue.Freq), zap.Error(err))
		return beep.Silence(0)
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(cue.Duration), tone),
		Base:     2,
		Volume:   math.Log2(p.volume),
	}
}
