package render

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

var (
	backgroundColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	boidColor       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	radiusColor     = color.RGBA{R: 0, G: 80, B: 0, A: 120}
)

// Game is the ebiten host of the simulation: Update ticks the world actor,
// Draw paints the last snapshot the world published.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *simulation.WorldSnapshot
	lastState  *simulation.WorldSnapshot
	cfg        *simulation.Config

	// UI Controls
	panel            *ui.UIPanel
	widgetPaused     *ui.Checkbox
	widgetShowRadius *ui.Checkbox
	pendingSteps     int // requested with the "Step once" button

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame spawns the world actor in system and builds the overlay.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem) (*Game, error) {
	// Buffer to avoid blocking the world
	snapshotCh := make(chan *simulation.WorldSnapshot, 10)

	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  &simulation.WorldSnapshot{}, // Avoid nil pointer
		cfg:        cfg,
		panel:      ui.NewUIPanel(10, 10, 230, "Controls (space, s, esc)"),
	}
	g.widgetPaused = g.panel.AddCheckbox("Pause", false)
	g.widgetShowRadius = g.panel.AddCheckbox("Show perception radius", false)
	g.panel.AddButton("Step once", func() { g.pendingSteps++ })

	g.widgetPaused.OnToggle = func(paused bool) {
		system.Logger().Debugf("simulation paused: %t", paused)
	}
	return g, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	// 1. Keyboard and UI Panel
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPaused.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.pendingSteps++
	}
	g.panel.Update()

	// 2. Keep only the most recent finished step
Drain:
	for {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			break Drain
		}
	}

	// 3. Trigger Simulation Step
	steps := g.pendingSteps
	g.pendingSteps = 0
	if !g.widgetPaused.Value {
		steps += g.cfg.TicksPerFrame
	}
	if steps > 0 {
		if err := actor.Tell(g.ctx, g.worldPID, simulation.NewTick(steps)); err != nil {
			g.System.Logger().Errorf("failed to tick the world: %v", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	// 1. Each boid is a square anchored by its top-left corner
	for _, item := range g.lastState.Items {
		x, y := float32(item.Position.X), float32(item.Position.Y)
		if g.widgetShowRadius.Value {
			vector.StrokeCircle(screen, x, y, float32(g.cfg.PerceptionRadius), 1, radiusColor, true)
		}
		side := float32(item.Shape.Side)
		vector.FillRect(screen, x, y, side, side, boidColor, false)
	}

	// 2. Draw UI Panel
	g.panel.Draw(screen)

	// 3. Stats on the right side to avoid overlap with the panel
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nStep: %d\nBoids: %d\nMean speed: %.3f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Step,
		len(g.lastState.Items),
		g.lastState.MeanSpeed,
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-160, 10)
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
