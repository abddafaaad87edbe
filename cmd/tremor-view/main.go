// Command tremor-view previews an earthquake in a window: a house
// outline shaken by the engine, the rumble played through ebiten's
// audio player and the engine snapshot printed on top.
//
// Keys: S starts right away, X stops early, R re-arms a fresh
// engine, Q quits. Edits to the -config file re-arm automatically.
package main

import (
	"errors"
	"flag"
	"image/color"
	"math"
	"os"
	"strings"

	ebimath "github.com/edwinsyarief/ebi-math"
	"github.com/edwinsyarief/tremor"
	"github.com/edwinsyarief/tremor/audio"
	"github.com/edwinsyarief/tremor/clock"
	"github.com/edwinsyarief/tremor/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"go.uber.org/zap"
)

const (
	screenWidth  = 640
	screenHeight = 480

	// screen pixels per world unit
	pixelsPerUnit = 1200
)

var errQuit = errors.New("quit")

type Game struct {
	logger  *zap.Logger
	cfg     tremor.Config
	watcher *tremor.ConfigWatcher
	player  *ebaudio.Player

	clock    *clock.Manual
	engine   *tremor.Engine
	registry *scene.Registry
	house    *scene.Node
}

func (self *Game) arm() {
	if self.engine != nil {
		self.engine.Detach()
	}
	self.clock = clock.NewManual()
	self.engine = tremor.New(self.cfg)
	self.engine.SetLogger(self.logger)
	if self.player != nil {
		self.engine.SetAudio(self.player)
	}
	if err := self.engine.ArmByName(self.clock, self.registry); err != nil {
		self.logger.Warn("engine not armed", zap.Error(err))
	}
}

func (self *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		_ = self.engine.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		self.engine.Stop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		self.arm()
	}

	if self.watcher != nil {
		select {
		case cfg, ok := <-self.watcher.Configs:
			if ok {
				self.logger.Info("config reloaded, re-arming")
				self.cfg = cfg
				self.arm()
			}
		case err, ok := <-self.watcher.Errors:
			if ok {
				self.logger.Warn("config reload failed", zap.Error(err))
			}
		default:
		}
	}

	self.clock.Advance(1.0 / float64(ebiten.TPS()))
	return nil
}

func (self *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1c, 0x1b, 0x22, 0xff})

	snapshot := self.engine.Snapshot()
	offset := snapshot.Current.Position.Sub(snapshot.Baseline.Position)
	relative := snapshot.Baseline.Orientation.Inverse().Mul(snapshot.Current.Orientation)
	roll := tiltAngle(relative)

	center := ebimath.V(
		screenWidth/2+offset[0]*pixelsPerUnit,
		screenHeight/2+60-offset[1]*pixelsPerUnit,
	)
	outline := []ebimath.Vector{
		ebimath.V(center.X-90, center.Y+70),
		ebimath.V(center.X+90, center.Y+70),
		ebimath.V(center.X+90, center.Y-40),
		ebimath.V(center.X, center.Y-110),
		ebimath.V(center.X-90, center.Y-40),
	}
	for i := range outline {
		outline[i] = outline[i].RotateAround(center, roll)
	}

	lineColor := color.RGBA{0xe8, 0xd8, 0xb0, 0xff}
	if snapshot.Phase == tremor.Active {
		lineColor = color.RGBA{0xf0, 0x70, 0x50, 0xff}
	}
	for i := range outline {
		a, b := outline[i], outline[(i+1)%len(outline)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, lineColor, true)
	}
	vector.StrokeLine(screen, 0, screenHeight/2+131, screenWidth, screenHeight/2+131, 1, color.RGBA{0x60, 0x60, 0x60, 0xff}, false)

	// intensity bar
	peak := self.cfg.PeakIntensity * (1 + self.cfg.JitterBand)
	fill := float32(0)
	if peak > 0 {
		fill = float32(math.Min(snapshot.Intensity/peak, 1))
	}
	vector.DrawFilledRect(screen, 10, screenHeight-20, 200*fill, 10, lineColor, false)

	lines := snapshot.Lines()
	lines = append(lines, "", "[S] start  [X] stop  [R] re-arm  [Q] quit")
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
}

func (self *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// Returns the on-screen tilt (roll around the view axis) of the
// given rotation, in radians.
func tiltAngle(rotation mgl64.Quat) float64 {
	right := rotation.Rotate(mgl64.Vec3{1, 0, 0})
	return -math.Atan2(right[1], right[0])
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file (watched for changes)")
	seed := flag.Uint64("seed", 1, "seed for the rumble sound")
	mute := flag.Bool("mute", false, "disable audio")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	game := &Game{
		logger:   logger,
		cfg:      tremor.DefaultConfig(),
		house:    scene.NewNode("House", scene.Identity()),
		registry: scene.NewRegistry(),
	}
	game.registry.Add(game.house)

	if *configPath != "" {
		cfg, err := tremor.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
		game.cfg = cfg
		game.watcher, err = tremor.WatchConfig(*configPath)
		if err != nil {
			logger.Warn("config hot reload unavailable", zap.Error(err))
		} else {
			defer game.watcher.Close()
		}
	}

	if !*mute {
		context := ebaudio.NewContext(audio.DefaultSampleRate)
		game.player, err = context.NewPlayer(audio.NewRumble(*seed))
		if err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
			game.player = nil
		}
	}

	game.arm()

	ebiten.SetWindowTitle("tremor")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	err = ebiten.RunGame(game)
	if err != nil && !errors.Is(err, errQuit) {
		logger.Error("run", zap.Error(err))
		os.Exit(1)
	}
}
