// Command tremor-term runs an earthquake in the terminal: the engine
// shakes a small house drawn with box characters, plays the rumble
// through the speaker and prints its snapshot as a debug overlay.
//
// Keys: s starts right away, x stops early, r re-arms a fresh engine,
// q or Esc quits. Logs go to a file so they don't fight the screen.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/edwinsyarief/tremor"
	"github.com/edwinsyarief/tremor/audio"
	"github.com/edwinsyarief/tremor/clock"
	"github.com/edwinsyarief/tremor/scene"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// terminal cells per world unit, horizontally
const cellsPerUnit = 150

type app struct {
	screen  tcell.Screen
	logger  *zap.Logger
	cfg     tremor.Config
	watcher *tremor.ConfigWatcher
	sink    *audio.BeepSink

	clock    *clock.Manual
	engine   *tremor.Engine
	registry *scene.Registry
}

func (self *app) arm() {
	if self.engine != nil {
		self.engine.Detach()
	}
	self.clock = clock.NewManual()
	self.engine = tremor.New(self.cfg)
	self.engine.SetLogger(self.logger)
	if self.sink != nil {
		self.engine.SetAudio(self.sink)
	}
	if err := self.engine.ArmByName(self.clock, self.registry); err != nil {
		self.logger.Warn("engine not armed", zap.Error(err))
	}
}

// Returns false when the user asked to quit.
func (self *app) handle(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 's':
			_ = self.engine.Start()
		case 'x':
			self.engine.Stop()
		case 'r':
			self.arm()
		}
	case *tcell.EventResize:
		self.screen.Sync()
	}
	return true
}

func (self *app) draw() {
	self.screen.Clear()
	width, height := self.screen.Size()
	snapshot := self.engine.Snapshot()
	offset := snapshot.Current.Position.Sub(snapshot.Baseline.Position)

	style := tcell.StyleDefault.Foreground(tcell.ColorWheat)
	if snapshot.Phase == tremor.Active {
		style = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	}

	// cells are about twice as tall as wide
	dx := int(math.Round(offset[0] * cellsPerUnit))
	dy := -int(math.Round(offset[1] * cellsPerUnit / 2))
	left, top := width/2-10+dx, height/2-3+dy
	house := []string{
		"         /\\         ",
		"       /    \\       ",
		"     /        \\     ",
		"   +------------+   ",
		"   |  []    []  |   ",
		"   |     __     |   ",
		"   +----|  |----+   ",
	}
	for row, line := range house {
		for col, r := range line {
			if r != ' ' {
				self.screen.SetContent(left+col, top+row, r, nil, style)
			}
		}
	}
	ground := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := 0; x < width; x++ {
		self.screen.SetContent(x, height/2+4, '─', nil, ground)
	}

	lines := append(snapshot.Lines(), "", "[s] start  [x] stop  [r] re-arm  [q] quit")
	for row, line := range lines {
		self.print(1, row, line, tcell.StyleDefault)
	}
	self.screen.Show()
}

func (self *app) print(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		self.screen.SetContent(x, y, r, nil, style)
		x += 1
	}
}

func (self *app) run() {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			event := self.screen.PollEvent()
			if event == nil {
				return // screen finalized
			}
			events <- event
		}
	}()

	var configs <-chan tremor.Config
	var errs <-chan error
	if self.watcher != nil {
		configs, errs = self.watcher.Configs, self.watcher.Errors
	}

	last := time.Now()
	for {
		select {
		case event := <-events:
			if !self.handle(event) {
				return
			}
		case cfg, ok := <-configs:
			if !ok {
				configs = nil
				continue
			}
			self.logger.Info("config reloaded, re-arming")
			self.cfg = cfg
			self.arm()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			self.logger.Warn("config reload failed", zap.Error(err))
		case now := <-ticker.C:
			self.clock.Advance(now.Sub(last).Seconds())
			last = now
			self.draw()
		}
	}
}

func newFileLogger(path string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	return config.Build()
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file (watched for changes)")
	logPath := flag.String("log", "tremor.log", "log file")
	seed := flag.Uint64("seed", 1, "seed for the rumble sound")
	mute := flag.Bool("mute", false, "disable audio")
	flag.Parse()

	logger, err := newFileLogger(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tremor-term: logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := tremor.DefaultConfig()
	var watcher *tremor.ConfigWatcher
	if *configPath != "" {
		cfg, err = tremor.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "tremor-term:", err)
			os.Exit(1)
		}
		watcher, err = tremor.WatchConfig(*configPath)
		if err != nil {
			logger.Warn("config hot reload unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	var sink *audio.BeepSink
	if !*mute {
		sampleRate := beep.SampleRate(audio.DefaultSampleRate)
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// non-fatal, the quake still shakes without sound
			logger.Warn("audio unavailable", zap.Error(err))
		} else {
			defer speaker.Close()
			sink = audio.NewBeepSink(audio.NewRumbleAt(*seed, audio.DefaultSampleRate))
			speaker.Play(sink)
		}
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "tremor-term: screen:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	term := &app{
		screen:   screen,
		logger:   logger,
		cfg:      cfg,
		watcher:  watcher,
		sink:     sink,
		registry: scene.NewRegistry(scene.NewNode("House", scene.Identity())),
	}
	term.arm()
	term.run()
	term.engine.Detach()
}
