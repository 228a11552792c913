package simulation

import (
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/behavior"
	"github.com/tochemey/goakt/v3/log"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.WorldWidth = 400
	cfg.WorldHeight = 300
	cfg.Population = 25
	cfg.Seed = 7
	return cfg
}

func TestNewWorldActor_PlacesTheFlock(t *testing.T) {
	cfg := testConfig()
	w := NewWorldActor(nil, cfg)

	if got := w.flock.Len(); got != cfg.Population {
		t.Fatalf("flock has %d boids; want %d", got, cfg.Population)
	}
	for _, b := range w.flock.Boids() {
		if b.Position.X < 0 || b.Position.X >= cfg.WorldWidth || b.Position.Y < 0 || b.Position.Y >= cfg.WorldHeight {
			t.Errorf("boid %d spawned outside the world at %v", b.ID, b.Position)
		}
	}
}

func TestNewWorldActor_SeedIsReproducible(t *testing.T) {
	a := NewWorldActor(nil, testConfig()).flock.Boids()
	b := NewWorldActor(nil, testConfig()).flock.Boids()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("boid %d differs between runs with the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestWorldActor_advancePublishesSnapshot(t *testing.T) {
	ch := make(chan *WorldSnapshot, 1)
	cfg := testConfig()
	w := NewWorldActor(ch, cfg)

	w.advance(3)

	select {
	case snap := <-ch:
		if snap.Step != 3 {
			t.Errorf("snapshot step = %d; want 3", snap.Step)
		}
		if len(snap.Items) != cfg.Population {
			t.Errorf("snapshot has %d items; want %d", len(snap.Items), cfg.Population)
		}
		for i, it := range snap.Items {
			if it.Shape.Side != behavior.BoidSide {
				t.Errorf("item %d side = %v; want %v", i, it.Shape.Side, behavior.BoidSide)
			}
		}
		if snap.MeanSpeed <= 0 || snap.MeanSpeed > cfg.MaxSpeed+1e-9 {
			t.Errorf("mean speed = %v; want in (0, %v]", snap.MeanSpeed, cfg.MaxSpeed)
		}
	default:
		t.Fatal("no snapshot published")
	}
}

func TestWorldActor_pushSnapshotNeverBlocks(t *testing.T) {
	ch := make(chan *WorldSnapshot, 1)
	w := NewWorldActor(ch, testConfig())

	done := make(chan struct{})
	go func() {
		w.advance(1)
		w.advance(1) // channel full, frame dropped
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("advance blocked on a full snapshot channel")
	}

	if w.droppedFrames != 1 {
		t.Errorf("droppedFrames = %d; want 1", w.droppedFrames)
	}
	if snap := <-ch; snap.Step != 1 {
		t.Errorf("kept snapshot step = %d; want 1", snap.Step)
	}
}

func TestWorldActor_logBenchmarksResetsCounters(t *testing.T) {
	w := NewWorldActor(make(chan *WorldSnapshot, 1), testConfig())
	w.advance(2)

	w.logBenchmarks(log.DiscardLogger)
	if w.stepCount != 2 {
		t.Errorf("counters reset before a second elapsed: stepCount = %d", w.stepCount)
	}

	w.lastLogTime = time.Now().Add(-2 * time.Second)
	w.logBenchmarks(log.DiscardLogger)
	if w.stepCount != 0 || w.droppedFrames != 0 {
		t.Errorf("counters not reset: stepCount = %d, droppedFrames = %d", w.stepCount, w.droppedFrames)
	}
}

func TestNewTick(t *testing.T) {
	if got := NewTick(4).GetValue(); got != 4 {
		t.Errorf("NewTick(4) carries %d", got)
	}
}
