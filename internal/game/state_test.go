package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/roadrush/internal/config"
)

func newGameWith(t *testing.T, mutate func(*config.RoadConfig)) *Game {
	t.Helper()
	cfg := config.DefaultRoadConfig()
	mutate(&cfg)
	g, err := New(cfg, 1)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func noRamp(c *config.RoadConfig) {
	c.Speed.AutoRamp = false
}

func TestNewRejectsDegenerateRoad(t *testing.T) {
	cfg := config.DefaultRoadConfig()
	cfg.World.Width = 120 // Road 40 wide, obstacles 50

	_, err := New(cfg, 1)
	if !errors.Is(err, ErrDegenerateRoad) {
		t.Errorf("New() error = %v, expected ErrDegenerateRoad", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRoadConfig()
	cfg.Speed.Min = 0

	_, err := New(cfg, 1)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New() error = %v, expected config.ErrInvalid", err)
	}
}

func TestNewInitialState(t *testing.T) {
	g := newTestGame(t, 7)

	s := g.State()
	if s.Score != 0 || s.Speed != 15 || s.ScrollOffset != 0 || s.LastSpeedUpScore != 0 {
		t.Errorf("unexpected initial state %+v", s)
	}
	if g.Outcome() != Running {
		t.Errorf("Outcome() = %v, expected running", g.Outcome())
	}

	car := g.Car()
	if car.X != 320 || car.Y != 390 {
		t.Errorf("car at (%d, %d), expected (320, 390)", car.X, car.Y)
	}
	if left, right := g.RoadBounds(); left != 213 || right != 426 {
		t.Errorf("RoadBounds() = (%d, %d), expected (213, 426)", left, right)
	}
	if g.Round() != 1 {
		t.Errorf("Round() = %d, expected 1", g.Round())
	}
	if g.HitSlot() != -1 {
		t.Errorf("HitSlot() = %d, expected -1", g.HitSlot())
	}
	for i, o := range g.Obstacles() {
		if o.Active {
			t.Errorf("slot %d active at start", i)
		}
	}
}

func TestUpdateScrollOffset(t *testing.T) {
	for speed := 5; speed <= 35; speed += 5 {
		g := newGameWith(t, noRamp)
		g.state.Speed = speed

		for frame := 0; frame < 100; frame++ {
			clearObstacles(g)
			prev := g.state.ScrollOffset
			g.Update()

			got := g.state.ScrollOffset
			if want := (prev + speed) % 40; got != want {
				t.Fatalf("speed %d frame %d: offset = %d, expected %d", speed, frame, got, want)
			}
			if got < 0 || got >= 40 {
				t.Fatalf("speed %d: offset %d out of [0, 40)", speed, got)
			}
		}
	}
}

func TestUpdateScore(t *testing.T) {
	tests := []struct {
		speed int
		gain  int64
	}{
		{5, 0},
		{9, 0},
		{10, 1},
		{15, 1},
		{20, 2},
		{35, 3},
	}

	for _, tc := range tests {
		g := newGameWith(t, noRamp)
		g.state.Speed = tc.speed

		var last int64
		for frame := 1; frame <= 50; frame++ {
			clearObstacles(g)
			g.Update()
			if g.state.Score < last {
				t.Fatalf("speed %d: score decreased from %d to %d", tc.speed, last, g.state.Score)
			}
			last = g.state.Score
		}
		if want := 50 * tc.gain; last != want {
			t.Errorf("speed %d: score after 50 frames = %d, expected %d", tc.speed, last, want)
		}
	}
}

func TestUpdateAutoRamp(t *testing.T) {
	tests := []struct {
		name      string
		score     int64
		last      int64
		speed     int
		wantSpeed int
		wantLast  int64
	}{
		{"below threshold", 1997, 0, 15, 15, 0},
		{"reaches threshold", 1999, 0, 15, 16, 2000},
		{"overshoot steps once", 10000, 0, 15, 16, 10001},
		{"capped at max", 5000, 0, 35, 35, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			g.state.Score = tc.score
			g.state.LastSpeedUpScore = tc.last
			g.state.Speed = tc.speed
			clearObstacles(g)

			g.Update()

			if g.state.Speed != tc.wantSpeed {
				t.Errorf("speed = %d, expected %d", g.state.Speed, tc.wantSpeed)
			}
			if g.state.LastSpeedUpScore != tc.wantLast {
				t.Errorf("lastSpeedUpScore = %d, expected %d", g.state.LastSpeedUpScore, tc.wantLast)
			}
		})
	}
}

func TestUpdateAutoRampOncePerInterval(t *testing.T) {
	g := newTestGame(t, 1)
	g.state.Score = 10000
	clearObstacles(g)
	g.Update()
	clearObstacles(g)
	g.Update()

	if g.state.Speed != 16 {
		t.Errorf("speed = %d after two frames, expected 16", g.state.Speed)
	}
}

func TestFixedPresetDisablesRamp(t *testing.T) {
	g := newGameWith(t, func(c *config.RoadConfig) {
		config.ApplyPreset(c, config.DifficultyFixed)
	})
	g.state.Score = 5000
	clearObstacles(g)
	g.Update()

	if g.state.Speed != 15 {
		t.Errorf("speed = %d, fixed preset should not ramp", g.state.Speed)
	}
}

func TestSteerClamp(t *testing.T) {
	g := newTestGame(t, 1)

	for i := 0; i < 10; i++ {
		g.Apply(CommandSteerLeft)
	}
	if g.car.X != 233 {
		t.Errorf("car X = %d after steering left, expected 233", g.car.X)
	}
	if g.car.Left() < 213 {
		t.Errorf("car left edge %d leaves the road", g.car.Left())
	}

	for i := 0; i < 20; i++ {
		g.Apply(CommandSteerRight)
	}
	if g.car.X != 406 {
		t.Errorf("car X = %d after steering right, expected 406", g.car.X)
	}
	if g.car.Right() > 426 {
		t.Errorf("car right edge %d leaves the road", g.car.Right())
	}
}

func TestSpeedCommandsClamp(t *testing.T) {
	g := newTestGame(t, 1)

	g.Apply(CommandSpeedDown)
	g.Apply(CommandSpeedDown)
	if g.state.Speed != 5 {
		t.Errorf("speed = %d, expected 5", g.state.Speed)
	}
	g.Apply(CommandSpeedDown)
	if g.state.Speed != 5 {
		t.Errorf("speed below minimum: %d", g.state.Speed)
	}

	for i := 0; i < 10; i++ {
		g.Apply(CommandSpeedUp)
	}
	if g.state.Speed != 35 {
		t.Errorf("speed = %d, expected 35", g.state.Speed)
	}
}

func TestStepCollisionEndsRound(t *testing.T) {
	g := newTestGame(t, 1)
	car := g.Car()
	g.pool.slots[2] = Obstacle{X: car.X, Y: 310, Active: true}

	g.Step(CommandSteerLeft)

	if g.Outcome() != Over {
		t.Fatalf("Outcome() = %v, expected over", g.Outcome())
	}
	if g.HitSlot() != 2 {
		t.Errorf("HitSlot() = %d, expected 2", g.HitSlot())
	}
	if g.Car().X != car.X {
		t.Error("steering must not apply once the round is over")
	}
}

func TestOverIgnoresCommands(t *testing.T) {
	g := newTestGame(t, 1)
	g.state.Outcome = Over
	g.state.Score = 42
	car := g.Car()

	for _, cmd := range []Command{CommandSteerLeft, CommandSteerRight, CommandSpeedUp, CommandSpeedDown, CommandNone} {
		g.Step(cmd)
	}

	if g.state.Score != 42 || g.state.Speed != 15 || g.Car() != car {
		t.Errorf("state changed while over: %+v car %+v", g.state, g.Car())
	}
	if g.Outcome() != Over {
		t.Errorf("Outcome() = %v, expected over", g.Outcome())
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(t, 1)
	g.state = RoundState{Score: 12345, Speed: 30, ScrollOffset: 17, LastSpeedUpScore: 10000, Outcome: Over}
	g.car.X = 250
	g.pool.slots[0] = Obstacle{X: 300, Y: 200, Active: true}
	g.pool.slots[4] = Obstacle{X: 300, Y: 100, Active: true}
	g.hitSlot = 0

	if !g.Restart() {
		t.Fatal("Restart() should succeed when over")
	}

	want := RoundState{Speed: 15, Outcome: Running}
	if g.State() != want {
		t.Errorf("State() = %+v, expected %+v", g.State(), want)
	}
	if g.Car() != g.InitialCar() {
		t.Errorf("car = %+v, expected initial %+v", g.Car(), g.InitialCar())
	}
	for i, o := range g.Obstacles() {
		if o.Active {
			t.Errorf("slot %d still active after restart", i)
		}
	}
	if g.Round() != 2 {
		t.Errorf("Round() = %d, expected 2", g.Round())
	}
	if g.HitSlot() != -1 {
		t.Errorf("HitSlot() = %d, expected -1", g.HitSlot())
	}
}

func TestRestartOnlyWhenOver(t *testing.T) {
	g := newTestGame(t, 1)
	g.state.Score = 100

	if g.Restart() {
		t.Error("Restart() should fail while running")
	}
	if g.state.Score != 100 {
		t.Error("failed restart must not reset the round")
	}

	g.state.Outcome = Terminal
	if g.Restart() {
		t.Error("Restart() should fail after quit")
	}
}

func TestQuit(t *testing.T) {
	for _, from := range []Outcome{Running, Over} {
		t.Run(from.String(), func(t *testing.T) {
			g := newTestGame(t, 1)
			g.state.Outcome = from
			g.state.Score = 7

			g.Step(CommandQuit)

			if g.Outcome() != Terminal {
				t.Fatalf("Outcome() = %v, expected terminal", g.Outcome())
			}
			if g.state.Score != 7 {
				t.Error("quit frame must not update")
			}

			g.Step(CommandRestart)
			if g.Outcome() != Terminal {
				t.Error("terminal must be final")
			}
		})
	}
}

// play runs frames with a repeating command pattern, restarting after each crash.
func play(g *Game, frames int, visit func()) {
	pattern := []Command{CommandNone, CommandSteerLeft, CommandNone, CommandSpeedUp, CommandSteerRight, CommandNone, CommandSpeedDown}
	for i := 0; i < frames; i++ {
		cmd := pattern[i%len(pattern)]
		if g.Outcome() == Over {
			cmd = CommandRestart
		}
		g.Step(cmd)
		visit()
	}
}

func TestSpawnGuardHolds(t *testing.T) {
	g := newTestGame(t, 99)
	left, right := g.RoadBounds()
	spawned := 0

	play(g, 5000, func() {
		near := 0
		for _, o := range g.Obstacles() {
			if !o.Active {
				continue
			}
			if o.Y < 90 {
				near++
			}
			if o.Y == -50 {
				spawned++
			}
			if o.X-25 < left || o.X+25 > right {
				t.Fatalf("obstacle x %d leaves road [%d, %d]", o.X, left, right)
			}
		}
		if near > 1 {
			t.Fatalf("%d obstacles inside the spawn guard zone", near)
		}
	})

	if spawned == 0 {
		t.Error("expected at least one spawn in 5000 frames")
	}
}

func TestDeterministic(t *testing.T) {
	a := newTestGame(t, 2024)
	b := newTestGame(t, 2024)

	frame := 0
	play(a, 3000, func() {
		frame++
	})
	play(b, 3000, func() {})

	if a.State() != b.State() {
		t.Errorf("states diverged: %+v vs %+v", a.State(), b.State())
	}
	if a.Obstacles() != b.Obstacles() {
		t.Error("obstacles diverged")
	}
	if a.Round() != b.Round() {
		t.Errorf("rounds diverged: %d vs %d", a.Round(), b.Round())
	}
	if frame != 3000 {
		t.Errorf("visited %d frames", frame)
	}
}
