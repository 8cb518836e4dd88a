package pinball

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

// Glyphs
const (
	WallChar       = '│'
	LoseChar       = '~'
	ObstacleChar   = '='
	BumperChar     = 'O'
	FlipperChar    = '#'
	PistonChar     = '▀'
	CheckChar      = '+'
	ProjectileChar = '*'
	PushChar       = '»'
	LaserChar      = '!'
	MeteorChar     = '@'
	BossChar       = '▓'
)

const hudRows = 2

var itemGlyphs = map[BodyKind]struct {
	r rune
	c core.Color
}{
	KindItemDuplicate: {'D', core.ColorBrightCyan},
	KindItemFist:      {'F', core.ColorOrange},
	KindItemGravity:   {'G', core.ColorBrightBlue},
	KindItemRota:      {'R', core.ColorBrightYellow},
	KindItemBoss:      {'B', core.ColorBrightRed},
}

var bumperColors = map[BodyKind]core.Color{
	KindBumperLeft:   core.ColorBrightMagenta,
	KindBumperRight:  core.ColorBrightMagenta,
	KindBumperCenter: core.ColorBrightYellow,
	KindBumper:       core.ColorMagenta,
}

// FormatTimer renders seconds as minutes and seconds, rounding up so the
// display only reads 0:00 once time has run out.
func FormatTimer(t float64, divisor int) string {
	if divisor <= 0 {
		divisor = 60
	}
	total := int(math.Ceil(math.Max(t, 0)))
	return fmt.Sprintf("%d:%02d", total/divisor, total%divisor)
}

// view projects board points onto the terminal grid.
type view struct {
	cfg     config.PinballConfig
	x0, y0  int
	cols    int
	rows    int
	flipped bool
}

func newView(cfg config.PinballConfig, w, h int, flipped bool) view {
	rows := h - hudRows
	// cells are about twice as tall as they are wide
	cols := int(float64(rows) * cfg.Board.Width / cfg.Board.Height * 2)
	if cols > w {
		cols = w
		rows = int(float64(cols) * cfg.Board.Height / cfg.Board.Width / 2)
	}
	return view{
		cfg:     cfg,
		x0:      (w - cols) / 2,
		y0:      hudRows,
		cols:    max(cols, 2),
		rows:    max(rows, 2),
		flipped: flipped,
	}
}

func (v view) project(p physics.Vec) (int, int) {
	fx := p.X / v.cfg.Board.Width
	fy := (v.cfg.Board.Height - p.Y) / v.cfg.Board.Height
	if v.flipped {
		fy = p.Y / v.cfg.Board.Height
	}
	x := v.x0 + int(math.Round(fx*float64(v.cols-1)))
	y := v.y0 + int(math.Round(fy*float64(v.rows-1)))
	return x, y
}

func (v view) plot(dst *core.Screen, p physics.Vec, r rune, c core.Color) {
	x, y := v.project(p)
	if x < v.x0 || x >= v.x0+v.cols || y < v.y0 || y >= v.y0+v.rows {
		return
	}
	dst.SetColored(x, y, r, c)
}

// line samples a segment densely enough to leave no gaps.
func (v view) line(dst *core.Screen, a, b physics.Vec, r rune, c core.Color) {
	cell := v.cfg.Board.Height / float64(v.rows)
	n := int(a.Distance(b)/cell*2) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		v.plot(dst, a.Lerp(b, t), r, c)
	}
}

// disc fills a circle of board radius r.
func (v view) disc(dst *core.Screen, center physics.Vec, radius float64, r rune, c core.Color) {
	step := v.cfg.Board.Height / float64(v.rows) / 2
	for y := -radius; y <= radius; y += step {
		for x := -radius; x <= radius; x += step {
			if x*x+y*y <= radius*radius {
				v.plot(dst, center.Add(physics.V(x, y)), r, c)
			}
		}
	}
}

// Render draws the active playfield and the HUD.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	skin := SkinByID(s.skin)
	st := s.board.state

	if s.boss != nil {
		v := newView(s.cfg, dst.Width(), dst.Height(), false)
		drawArena(dst, v, s.boss.arena, skin)
		s.drawBossHUD(dst)
	} else {
		v := newView(s.cfg, dst.Width(), dst.Height(), st.GravityFlipped)
		drawArena(dst, v, s.board.arena, skin)
		s.drawHUD(dst)
	}

	switch {
	case st.RoundOver:
		title := "BALL LOST"
		if st.Timer <= 0 {
			title = "TIME UP"
		}
		drawMessage(dst, title, fmt.Sprintf("Survived %ds  |  Press R to restart", int(st.TimeSurvived)))
	case s.paused:
		drawMessage(dst, "PAUSED", "Press P to resume")
	case st.Mode == ModeCountdown && st.Countdown > 0:
		drawMessage(dst, fmt.Sprintf("%d", st.Countdown), "Get ready")
	}
}

func drawArena(dst *core.Screen, v view, a *arena, skin Skin) {
	for _, seg := range wallSegments(a.cfg) {
		v.line(dst, seg[0], seg[1], WallChar, core.ColorGray)
	}
	if lose := a.ents.first(KindLoseBox); lose != nil {
		y := lose.Position().Y
		v.line(dst, physics.V(0, y), physics.V(a.cfg.Board.Width, y), LoseChar, core.ColorRed)
	}
	for _, o := range a.ents.all(KindObstacle) {
		p := o.Position()
		half := a.cfg.Board.ObstacleWidth / 2
		v.line(dst, p.Sub(physics.V(half, 0)), p.Add(physics.V(half, 0)), ObstacleChar, core.ColorCyan)
	}
	for _, bp := range a.ents.all(bumperKinds...) {
		v.disc(dst, bp.Position(), a.cfg.Bumpers.Radius, BumperChar, bumperColors[KindOf(bp)])
	}
	if boss := a.ents.first(KindBoss); boss != nil {
		v.disc(dst, boss.Position(), a.cfg.Boss.BossRadius, BossChar, core.ColorRed)
	}
	for _, f := range a.flippers {
		if f == nil {
			continue
		}
		p := f.body.Position()
		angle := f.body.Angle()
		d := f.side.dir() * a.cfg.Flipper.Length
		tip := p.Add(physics.V(d*math.Cos(angle), d*math.Sin(angle)))
		v.line(dst, p, tip, FlipperChar, core.ColorBrightYellow)
	}
	for _, pk := range pistonKinds {
		if pb := a.ents.first(pk); pb != nil {
			half := a.cfg.Flipper.Length * 0.4
			p := pb.Position()
			v.line(dst, p.Sub(physics.V(half, 0)), p.Add(physics.V(half, 0)), PistonChar, core.ColorOrange)
		}
	}
	for _, it := range a.ents.all(itemKinds...) {
		g := itemGlyphs[KindOf(it)]
		v.plot(dst, it.Position(), g.r, g.c)
	}
	for _, ch := range a.ents.all(KindRotaCheck) {
		v.plot(dst, ch.Position(), CheckChar, core.ColorBrightYellow)
	}
	for _, pr := range a.ents.all(projectileKinds[0], projectileKinds[1]) {
		v.plot(dst, pr.Position(), ProjectileChar, core.ColorOrange)
	}
	for _, at := range a.ents.all(KindAttackPush) {
		v.plot(dst, at.Position(), PushChar, core.ColorBrightBlue)
	}
	for _, at := range a.ents.all(KindAttackLaser) {
		v.plot(dst, at.Position(), LaserChar, core.ColorBrightRed)
	}
	for _, m := range a.ents.all(KindMeteor) {
		v.plot(dst, m.Position(), MeteorChar, core.ColorOrange)
	}
	for _, ball := range a.ents.all(KindBall, KindDuplicateBall) {
		c := skin.Color
		if KindOf(ball) == KindDuplicateBall {
			c = core.ColorBrightCyan
		}
		v.plot(dst, ball.Position(), skin.Glyph, c)
	}
}

func (s *Session) drawHUD(dst *core.Screen) {
	b := s.board
	st := b.state

	timerColor := core.ColorBrightWhite
	switch b.Band() {
	case BandWarning:
		timerColor = core.ColorBrightYellow
	case BandCritical:
		timerColor = core.ColorBrightRed
	}
	timer := "TIME " + FormatTimer(st.Timer, s.cfg.Round.DisplayDivisor)
	dst.DrawTextColored(1, 0, timer, timerColor)
	dst.DrawText(len(timer)+3, 0, fmt.Sprintf("SURVIVED %ds", int(st.TimeSurvived)))
	mode := strings.ToUpper(st.Mode.String())
	dst.DrawTextColored(dst.Width()-len(mode)-1, 0, mode, core.ColorCyan)

	x := 1
	for _, p := range []struct {
		label string
		on    bool
	}{
		{"D", st.Powers.Duplicate},
		{"F", st.Powers.Fist},
		{"R", st.Powers.Rota},
		{"B", st.Powers.Boss},
	} {
		c := core.ColorGray
		if p.on {
			c = core.ColorBrightGreen
		}
		dst.DrawTextColored(x, 1, "["+p.label+"]", c)
		x += 3
	}
	x++

	var parts []string
	if st.UndoAvailable {
		parts = append(parts, "UNDO(u)")
	}
	if st.BoostArmed && st.Mode != ModeCountdown {
		parts = append(parts, "BOOST(space)")
	}
	switch st.Mode {
	case ModeRotaChallenge:
		parts = append(parts, fmt.Sprintf("ROTA %d/%d %ds", st.Rota.Collected, st.Rota.Target, int(math.Ceil(b.RotaRemaining()))))
	case ModeFistCombat:
		parts = append(parts, fmt.Sprintf("FIST %ds L:%s R:%s", int(math.Ceil(b.FistRemaining())),
			pistonLabel(st.Pistons[SideLeft]), pistonLabel(st.Pistons[SideRight])))
	}
	if st.GravityFlipped {
		parts = append(parts, "FLIPPED")
	}
	dst.DrawText(x, 1, strings.Join(parts, "  "))
}

func pistonLabel(p PistonState) string {
	if p.Busy {
		return "busy"
	}
	return "ready"
}

func (s *Session) drawBossHUD(dst *core.Screen) {
	st := s.boss.state
	c := s.cfg.Boss
	dst.DrawTextColored(1, 0, fmt.Sprintf("BOSS %d/%d", st.BossHealth, c.BossHealth), core.ColorBrightRed)
	you := fmt.Sprintf("YOU %d/%d", st.PlayerHealth, c.PlayerHealth)
	dst.DrawTextColored(dst.Width()-len(you)-1, 0, you, core.ColorBrightGreen)
	dst.DrawText(1, 1, fmt.Sprintf("FIGHT %ds", int(st.TimeSurvived)))
}

// drawMessage draws a message box in the center of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawPanel(boxX, boxY, boxW, boxH, core.ColorBrightCyan)
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
