package game

import (
	"fmt"

	"github.com/vovakirdan/roadrush/internal/core"
)

// Draw emits one frame of draw calls for the game's current state.
// Order: clear, road, lane dashes, obstacles, car, score, speed and, once the
// round is over, the game-over overlay. It never mutates the game.
func Draw(g *Game, r Renderer) {
	cfg := g.cfg
	w, h := cfg.World.Width, cfg.World.Height
	s := g.state

	r.Clear()

	// Road
	r.FillRect(core.ColorDarkGray, core.Pt(g.roadLeft, 0), core.Pt(g.roadRight, h))

	// Lane divider, shifted down by the scroll offset
	period := cfg.Lanes.Period()
	for y := -period + s.ScrollOffset; y < h; y += period {
		r.Line(core.ColorWhite, core.Pt(w/2, y), core.Pt(w/2, y+cfg.Lanes.DashHeight))
	}

	ow, oh := cfg.Obstacles.Width, cfg.Obstacles.Height
	for _, o := range g.pool.slots {
		if !o.Active {
			continue
		}
		r.FillRect(core.ColorBlack, core.Pt(o.X-ow/2, o.Y), core.Pt(o.X+ow/2, o.Y+oh))
	}

	car := g.car
	r.FillRect(core.ColorRed, core.Pt(car.Left(), car.Y-car.Height), core.Pt(car.Right(), car.Y))

	r.Text(core.ColorYellow, core.Pt(w-150, 10), fmt.Sprintf("SCORE: %d", s.Score))
	r.Text(core.ColorYellow, core.Pt(w-150, 30), fmt.Sprintf("SPEED: %d", s.Speed))

	if s.Outcome == Over {
		r.Text(core.ColorRed, core.Pt(w/2-120, h/2-50), "GAME OVER")
		r.Text(core.ColorYellow, core.Pt(w/2-100, h/2+20), fmt.Sprintf("FINAL SCORE: %d", s.Score))
		r.Text(core.ColorWhite, core.Pt(w/2-170, h/2+70), "Press R to Restart or ESC to Quit")
	}
}
