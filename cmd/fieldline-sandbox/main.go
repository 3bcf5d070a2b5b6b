// fieldline-sandbox is an interactive terminal playground for the field and
// trace packages: drop point charges on a plane, move a probe cursor, and
// trace equipotential curves through it. It is the rendering collaborator the
// core packages are written against, kept deliberately thin.
//
// Keys: hjkl / arrows move the probe, p / n drop a +/- charge under it,
// u removes the last charge, t traces the equipotential through the probe,
// c clears traced curves, q or Escape quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/zijianstudio/fieldline/charge"
	"github.com/zijianstudio/fieldline/field"
	"github.com/zijianstudio/fieldline/geom"
	"github.com/zijianstudio/fieldline/parameter"
	"github.com/zijianstudio/fieldline/trace"
)

var (
	configPath = flag.String("config", "", "optional YAML tuning overrides file")
	logPath    = flag.String("log", "fieldline-sandbox.log", "structured log destination")
	sound      = flag.Bool("sound", false, "blip when a traced curve closes")
)

type renderedCurve struct {
	points []geom.Vector2
	closed bool
}

type sandbox struct {
	screen tcell.Screen
	log    *zap.Logger
	tuning parameter.Tuning

	charges *charge.Set
	curves  []renderedCurve

	cursor    geom.Vector2
	audioInit bool
}

func main() {
	flag.Parse()

	tuning, err := parameter.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newFileLogger(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	s := &sandbox{
		screen:  screen,
		log:     logger,
		tuning:  tuning,
		charges: charge.NewSet(),
	}
	if *sound {
		s.initAudio()
	}
	s.run()
}

// newFileLogger routes structured logs to a file so the TUI stays clean.
func newFileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.DisableCaller = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func (s *sandbox) initAudio() {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		s.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	s.audioInit = true
}

// blip plays a short sine tone, the closure cue.
func (s *sandbox) blip() {
	if !s.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(100*time.Millisecond), sine))
}

func (s *sandbox) run() {
	cursorStep := s.playArea().Width() / 80

	for {
		s.draw()

		ev := s.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		switch {
		case key.Key() == tcell.KeyEscape || key.Rune() == 'q':
			return
		case key.Key() == tcell.KeyLeft || key.Rune() == 'h':
			s.moveCursor(-cursorStep, 0)
		case key.Key() == tcell.KeyRight || key.Rune() == 'l':
			s.moveCursor(cursorStep, 0)
		case key.Key() == tcell.KeyUp || key.Rune() == 'k':
			s.moveCursor(0, cursorStep)
		case key.Key() == tcell.KeyDown || key.Rune() == 'j':
			s.moveCursor(0, -cursorStep)
		case key.Rune() == 'p' || key.Rune() == '+':
			s.dropCharge(charge.Positive)
		case key.Rune() == 'n' || key.Rune() == '-':
			s.dropCharge(charge.Negative)
		case key.Rune() == 'u':
			s.charges.RemoveLast()
		case key.Rune() == 't':
			s.traceAtCursor()
		case key.Rune() == 'c':
			s.curves = nil
		}
	}
}

func (s *sandbox) playArea() geom.Bounds {
	return parameter.PlayAreaBounds
}

func (s *sandbox) moveCursor(dx, dy float64) {
	next := s.cursor.Add(geom.Vector2{X: dx, Y: dy})
	if s.playArea().Contains(next) {
		s.cursor = next
	}
}

func (s *sandbox) dropCharge(sign charge.Sign) {
	s.charges.Add(charge.PointCharge{Position: s.cursor, Sign: sign})
	s.log.Info("charge dropped",
		zap.Int8("sign", int8(sign)),
		zap.Float64("x", s.cursor.X), zap.Float64("y", s.cursor.Y),
		zap.Int("count", s.charges.Count()))
}

func (s *sandbox) traceAtCursor() {
	ev := field.NewEvaluator(s.tuning.Field, s.charges.Snapshot())
	tracer := trace.New(ev, s.tuning.Trace, s.log)

	curve := tracer.Trace(s.cursor)
	if curve.Empty() {
		return
	}

	s.curves = append(s.curves, renderedCurve{
		points: curve.Simplified(s.tuning.SimplifyOffset),
		closed: curve.IsClosed,
	})
	if curve.IsClosed {
		s.blip()
	}
}

func (s *sandbox) draw() {
	s.screen.Clear()

	curveStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	openStyle := tcell.StyleDefault.Foreground(tcell.ColorOlive)
	for _, c := range s.curves {
		style := curveStyle
		if !c.closed {
			style = openStyle
		}
		for _, p := range c.points {
			if x, y, ok := s.toScreen(p); ok {
				s.screen.SetContent(x, y, '·', nil, style)
			}
		}
	}

	posStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	negStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	for _, c := range s.charges.All() {
		glyph, style := '+', posStyle
		if c.Sign == charge.Negative {
			glyph, style = '-', negStyle
		}
		if x, y, ok := s.toScreen(c.Position); ok {
			s.screen.SetContent(x, y, glyph, nil, style)
		}
	}

	if x, y, ok := s.toScreen(s.cursor); ok {
		s.screen.SetContent(x, y, '┼', nil, tcell.StyleDefault.Bold(true))
	}

	s.drawStatus()
	s.screen.Show()
}

func (s *sandbox) drawStatus() {
	status := fmt.Sprintf(" charges:%d net:%+d curves:%d probe:(%.2f, %.2f) ",
		s.charges.Count(), s.charges.NetCharge(), len(s.curves),
		s.cursor.X, s.cursor.Y)
	style := tcell.StyleDefault.Reverse(true)
	_, h := s.screen.Size()
	for i, r := range status {
		s.screen.SetContent(i, h-1, r, nil, style)
	}
}

// toScreen maps a model point into screen cells, y flipped for terminal
// coordinates. Reports false for points outside the visible play area.
func (s *sandbox) toScreen(p geom.Vector2) (int, int, bool) {
	area := s.playArea()
	if !area.Contains(p) {
		return 0, 0, false
	}
	w, h := s.screen.Size()
	h-- // bottom row is the status line
	x := int((p.X - area.MinX) / area.Width() * float64(w-1))
	y := int((area.MaxY - p.Y) / area.Height() * float64(h-1))
	return x, y, true
}
