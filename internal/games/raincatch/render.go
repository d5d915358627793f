package raincatch

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/sim/entity"
)

// Visual characters for rendering
const (
	BucketWall   = '█'
	BucketBottom = '▀'
	DropletChar  = '●'
	TriangleChar = '▲'
	CircleChar   = 'o'
	SquareChar   = '■'
	BoltChar     = 'ϟ'
	GroundChar   = '▔'
)

// hudRows is the number of screen rows reserved above the field.
const hudRows = 1

// viewport maps y-up world coordinates onto screen cells. Row 0 of the
// field is the bottom screen row.
type viewport struct {
	cols, rows int
	top        int
	sx, sy     float64
}

func newViewport(dst *core.Screen, field fieldSize) viewport {
	rows := max(dst.Height()-hudRows, 1)
	return viewport{
		cols: dst.Width(),
		rows: rows,
		top:  hudRows,
		sx:   float64(dst.Width()) / field.w,
		sy:   float64(rows) / field.h,
	}
}

type fieldSize struct{ w, h float64 }

// cell returns the screen cell containing a world point.
func (v viewport) cell(x, y float64) (int, int) {
	col := int(math.Floor(x * v.sx))
	row := v.top + v.rows - 1 - int(math.Floor(y*v.sy))
	return col, row
}

// rect maps a world rectangle to the cells it covers, at least one cell.
func (v viewport) rect(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.X * v.sx))
	x1 := int(math.Ceil(r.Right() * v.sx))
	y0 := int(math.Floor(r.Y * v.sy))
	y1 := int(math.Ceil(r.Top() * v.sy))
	w := max(x1-x0, 1)
	h := max(y1-y0, 1)
	return core.NewRect(x0, v.top+v.rows-y0-h, w, h)
}

// Render draws the scene: the obstacles in the shape pass, the bucket and
// droplets in the texture pass on top, then the HUD and any overlay box.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	g.view = newViewport(dst, fieldSize{g.cfg.Field.Width, g.cfg.Field.Height})

	dst.SetPen(core.ColorGray)
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar)
	dst.SetPen(core.ColorDefault)

	g.world.Draw(core.ShapePass, dst)
	g.world.Draw(core.TexturePass, dst)

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Caught: %d  |  Press R to restart", g.score))
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.SetPen(core.ColorWhite)
	hud := fmt.Sprintf(" Caught: %d ", g.score)
	if limit := g.cfg.Gameplay.MissLimit; limit > 0 {
		hud += fmt.Sprintf(" Missed: %d/%d ", g.missed, limit)
	} else {
		hud += fmt.Sprintf(" Missed: %d ", g.missed)
	}
	dst.DrawText(1, 0, hud)

	var flags string
	if g.mouseMode {
		flags += " [MOUSE]"
	}
	if g.sound.Muted() {
		flags += " [MUTED]"
	}
	if g.difficulty.IsEnabled() {
		flags += fmt.Sprintf(" Lvl: %.1f ", g.difficulty.Level(g.score, g.tickCount))
	}
	dst.DrawText(dst.Width()-utf8.RuneCountInString(flags)-1, 0, flags)
	dst.SetPen(core.ColorDefault)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.SetPen(core.ColorWhite)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-utf8.RuneCountInString(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-utf8.RuneCountInString(subtitle))/2, box.Y+3, subtitle)
	dst.SetPen(core.ColorDefault)
}

func (b *bucket) draw(e *entity.Entity, dst *core.Screen) {
	r := b.g.view.rect(b.box.Bounds())
	dst.SetPen(core.ColorOrange)
	for y := r.Y; y < r.Bottom(); y++ {
		dst.Set(r.X, y, BucketWall)
		dst.Set(r.Right()-1, y, BucketWall)
	}
	dst.DrawHLine(r.X, r.Bottom()-1, r.W, BucketBottom)
	dst.SetPen(core.ColorDefault)
}

func (d *droplet) draw(e *entity.Entity, dst *core.Screen) {
	r := d.g.view.rect(d.box.Bounds())
	dst.SetPen(core.ColorBrightCyan)
	dst.DrawRect(r, DropletChar)
	dst.SetPen(core.ColorDefault)
}

func (s *shape) draw(e *entity.Entity, dst *core.Screen) {
	v := s.g.view
	cx, cy := e.Position()

	switch s.kind {
	case kindTriangle:
		angle := 0.0
		if rot := e.Rotation(); rot != nil {
			angle = rot.Angle()
		}
		dst.SetPen(core.ColorCyan)
		s.outline(dst, polygon(cx, cy, s.radius, angle+90, 3), TriangleChar)
	case kindCircle:
		dst.SetPen(core.ColorYellow)
		s.outline(dst, polygon(cx, cy, s.radius, 0, 16), CircleChar)
	case kindSquare:
		dst.SetPen(core.ColorRed)
		dst.DrawRect(v.rect(s.box.Bounds()), SquareChar)
	case kindLightning:
		dst.SetPen(core.ColorMagenta)
		r := v.rect(s.box.Bounds())
		for y := r.Y; y < r.Bottom(); y++ {
			dst.Set(r.X+(y-r.Y)%max(r.W, 1), y, BoltChar)
		}
	}
	dst.SetPen(core.ColorDefault)
}

// outline plots the closed polyline through pts.
func (s *shape) outline(dst *core.Screen, pts [][2]float64, ch rune) {
	v := s.g.view
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		ac, ar := v.cell(a[0], a[1])
		bc, br := v.cell(b[0], b[1])
		steps := max(abs(bc-ac), abs(br-ar), 1)
		for k := 0; k <= steps; k++ {
			t := float64(k) / float64(steps)
			col, row := v.cell(a[0]+(b[0]-a[0])*t, a[1]+(b[1]-a[1])*t)
			dst.Set(col, row, ch)
		}
	}
}

// polygon returns n vertices of a regular polygon of radius r centred on
// (cx, cy), the first at angle deg.
func polygon(cx, cy, r, deg float64, n int) [][2]float64 {
	pts := make([][2]float64, n)
	for i := range pts {
		a := (deg + float64(i)*360/float64(n)) * math.Pi / 180
		pts[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
