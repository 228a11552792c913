package simulation

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/behavior"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WorldSnapshot is an immutable picture of the flock after a completed step.
type WorldSnapshot struct {
	Step      uint64
	Items     []behavior.RenderItem
	MeanSpeed float64
}

// NewTick builds the message asking the world to advance by steps.
func NewTick(steps int) *wrapperspb.UInt32Value {
	return wrapperspb.UInt32(uint32(steps))
}

// WorldActor owns the flock. Its mailbox serializes ticks, so a step always
// completes before the next one starts and the UI only sees finished steps.
type WorldActor struct {
	flock *behavior.Flock
	cfg   *Config
	// Communication with UI
	snapshotCh chan<- *WorldSnapshot
	// --- Benchmark Stats ---
	stepCount     int
	droppedFrames int
	lastLogTime   time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world and places its boids.
func NewWorldActor(snapshotCh chan<- *WorldSnapshot, cfg *Config) *WorldActor {
	return &WorldActor{
		flock:       behavior.NewFlock(cfg.Settings(), cfg.Rand()),
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is spawning a flock of %d boids in %vx%v",
		w.flock.Len(), w.cfg.WorldWidth, w.cfg.WorldHeight)
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Info("World Started. Publishing the initial flock...")
		w.pushSnapshot()

	// The Main Simulation Step (Driven by Game Loop)
	case *wrapperspb.UInt32Value:
		w.advance(int(msg.GetValue()))
		w.logBenchmarks(ctx.Logger())

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is shutdown after %s steps",
		humanize.Comma(int64(w.flock.Steps())))
	return nil
}

// advance runs the given number of steps then publishes the result.
func (w *WorldActor) advance(steps int) {
	for range steps {
		w.flock.Step()
	}
	w.stepCount += steps
	w.pushSnapshot()
}

func (w *WorldActor) pushSnapshot() {
	select {
	case w.snapshotCh <- w.buildSnapshot():
	default:
		// UI busy, skip frame
		w.droppedFrames++
	}
}

func (w *WorldActor) buildSnapshot() *WorldSnapshot {
	return &WorldSnapshot{
		Step:      w.flock.Steps(),
		Items:     w.flock.SnapshotForRender(),
		MeanSpeed: w.flock.MeanSpeed(),
	}
}

func (w *WorldActor) logBenchmarks(logger log.Logger) {
	if time.Since(w.lastLogTime) < time.Second {
		return
	}
	logger.Infof("📊 STEP RATE: %s/sec (dropped frames: %d) | Boids: %d | Step: %s | Mean speed: %.3f",
		humanize.Comma(int64(w.stepCount)), w.droppedFrames, w.flock.Len(),
		humanize.Comma(int64(w.flock.Steps())), w.flock.MeanSpeed())
	w.stepCount = 0
	w.droppedFrames = 0
	w.lastLogTime = time.Now()
}
