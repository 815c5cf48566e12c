package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	hclog "github.com/hashicorp/go-hclog"

	timerout "tasktimer/internal/modules/timer/port/out"
	apperrors "tasktimer/internal/platform/errors"
)

const (
	cueSampleRate = beep.SampleRate(44100)
	cueFrequency  = 800.0
	cueLength     = time.Second
	cueStartGain  = 0.3
	cueEndGain    = 0.01
	// cueTimeout bounds one playback when the device stops draining.
	cueTimeout = cueLength + time.Second
)

// Tone is a sine wave whose gain falls exponentially from 0.3 to 0.01 over
// length, then ends.
func Tone(sr beep.SampleRate, freq float64, length time.Duration) beep.Streamer {
	total := sr.N(length)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			progress := float64(pos) / float64(total)
			gain := cueStartGain * math.Pow(cueEndGain/cueStartGain, progress)
			v := gain * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(cueSampleRate, cueSampleRate.N(time.Second/10))
	})
	return speakerErr
}

// BeepCuePlayer plays a short tone on the default audio device.
type BeepCuePlayer struct {
	volume  float64
	timeout time.Duration
	init    func() error
	play    func(beep.Streamer)
	clear   func()
}

// NewBeepCuePlayer takes a volume on the effects.Volume base-2 scale; 0 plays
// the tone unchanged.
func NewBeepCuePlayer(volume float64) timerout.CuePlayer {
	return &BeepCuePlayer{
		volume:  volume,
		timeout: cueTimeout,
		init:    initSpeaker,
		play:    func(s beep.Streamer) { speaker.Play(s) },
		clear:   speaker.Clear,
	}
}

func (p *BeepCuePlayer) Play(ctx context.Context) error {
	if err := p.init(); err != nil {
		return fmt.Errorf("audio device: %v: %w", err, apperrors.ErrUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan struct{})
	tone := &effects.Volume{
		Streamer: Tone(cueSampleRate, cueFrequency, cueLength),
		Base:     2,
		Volume:   p.volume,
	}
	p.play(beep.Seq(tone, beep.Callback(func() { close(done) })))
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.clear()
		return fmt.Errorf("play cue: %w", ctx.Err())
	}
}

// TerminalBell rings the terminal bell.
type TerminalBell struct {
	w io.Writer
}

func NewTerminalBell(w io.Writer) timerout.CuePlayer {
	return &TerminalBell{w: w}
}

func (b *TerminalBell) Play(context.Context) error {
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// FallbackCuePlayer tries primary and plays secondary when primary fails.
type FallbackCuePlayer struct {
	primary   timerout.CuePlayer
	secondary timerout.CuePlayer
	logger    hclog.Logger
}

func NewFallbackCuePlayer(primary, secondary timerout.CuePlayer, logger hclog.Logger) timerout.CuePlayer {
	return &FallbackCuePlayer{primary: primary, secondary: secondary, logger: logger}
}

func (p *FallbackCuePlayer) Play(ctx context.Context) error {
	err := p.primary.Play(ctx)
	if err == nil || p.secondary == nil || errors.Is(err, context.Canceled) {
		return err
	}
	p.logger.Debug("primary cue failed, using fallback", "error", err)
	return p.secondary.Play(ctx)
}
