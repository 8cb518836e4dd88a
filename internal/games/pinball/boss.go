package pinball

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
	"github.com/vovakirdan/pinball-madness/internal/schedule"
)

// Outcome is the result of a boss fight.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "pending"
	}
}

// BossState is the mutable state of one boss fight.
type BossState struct {
	Tick         uint64
	PlayerHealth int
	BossHealth   int
	Damaged      bool // The player lost health at least once
	TimeSurvived float64
	Outcome      Outcome
	Events       []core.Event
}

// BossResult is handed back to the board when the fight ends.
type BossResult struct {
	Outcome           Outcome
	TimeSurvived      float64
	DuplicateSurvived bool
}

type bossActionKind int

const (
	bossAttack bossActionKind = iota
	bossMeteor
	bossExpire
)

type bossAction struct {
	kind bossActionKind
	body *physics.Body
}

const (
	groupAttack schedule.Group = "attack"
	groupMeteor schedule.Group = "meteor"
)

// BossFight is a separate playfield where the ball damages a static boss
// while dodging its projectiles.
type BossFight struct {
	*arena

	state BossState
	queue schedule.Queue[bossAction]
	boss  *physics.Body
}

// NewBossFight builds the arena. withDuplicate carries the board's
// duplicate ball into the fight.
func NewBossFight(cfg config.PinballConfig, seed int64, withDuplicate bool, logger *log.Logger) *BossFight {
	if logger == nil {
		logger = discardLogger()
	}
	f := &BossFight{arena: newArena(cfg, cfg.Boss.Gravity, seed, logger)}
	c := cfg.Boss

	f.addWalls()
	f.addBumper(KindBumperLeft, cfg.Board.Width*0.12, c.BumperY)
	f.addBumper(KindBumperRight, cfg.Board.Width*0.88, c.BumperY)
	f.addFlippers()
	f.addLoseBox()
	f.boss = f.addStatic(KindBoss, physics.V(c.BossX, c.BossY), false, 0.2,
		physics.Circle(c.BossRadius, physics.V(0, 0)))
	f.addBall(KindBall, f.startPosition(), physics.Vec{})
	if withDuplicate {
		f.addBall(KindDuplicateBall, f.duplicateStart(), physics.Vec{})
	}

	f.state = BossState{PlayerHealth: c.PlayerHealth, BossHealth: c.BossHealth}
	f.queue.After(f.ticks(c.AttackPeriod), groupAttack, bossAction{kind: bossAttack})
	f.queue.After(f.ticks(c.MeteorPeriod), groupMeteor, bossAction{kind: bossMeteor})
	return f
}

// Step advances the fight by one tick. Nothing happens once it is decided.
func (f *BossFight) Step() []core.Event {
	st := &f.state
	if st.Outcome != OutcomePending {
		return f.drain()
	}
	st.Tick++

	for _, a := range f.queue.Advance() {
		f.run(a)
	}
	for _, c := range f.world.Step(f.dt) {
		f.dispatch(c)
	}

	f.controlFlippers()
	f.govern(f.cfg.Boss.MaxSpeed, f.cfg.Boss.MaxSpeed)
	if ball := f.ball(); ball != nil && f.outOfBounds(ball) {
		f.world.Remove(ball)
		f.addBall(KindBall, f.startPosition(), physics.Vec{})
	}
	if dup := f.duplicate(); dup != nil && f.outOfBounds(dup) {
		f.world.Remove(dup)
	}
	st.TimeSurvived += f.dt
	return f.drain()
}

func (f *BossFight) drain() []core.Event {
	ev := f.state.Events
	f.state.Events = nil
	return ev
}

func (f *BossFight) run(a bossAction) {
	c := f.cfg.Boss
	switch a.kind {
	case bossAttack:
		f.fireAttack()
		f.queue.After(f.ticks(c.AttackPeriod), groupAttack, bossAction{kind: bossAttack})
	case bossMeteor:
		if f.ents.count(KindMeteor) == 0 {
			f.dropMeteor()
		}
		f.queue.After(f.ticks(c.MeteorPeriod), groupMeteor, bossAction{kind: bossMeteor})
	case bossExpire:
		f.world.Remove(a.body)
	}
}

// fireAttack launches a push or laser shot from the boss toward the ball.
func (f *BossFight) fireAttack() {
	ball := f.ball()
	if ball == nil {
		return
	}
	c := f.cfg.Boss
	from := f.boss.Position()
	dir := ball.Position().Sub(from)
	if dir.LengthSq() == 0 {
		return
	}
	dir = dir.Normalize()
	kind := KindAttackPush
	if f.rng.intn(2) == 1 {
		kind = KindAttackLaser
	}
	shot := f.ents.add(kind, f.world.Add(physics.BodyDef{
		Type:      physics.Dynamic,
		Position:  from.Add(dir.Mult(c.BossRadius + c.AttackRadius + 1)),
		Velocity:  dir.Mult(c.AttackSpeed),
		Mass:      0.1,
		Shapes:    []physics.Shape{physics.Circle(c.AttackRadius, physics.V(0, 0))},
		Filter:    filterFor(kind),
		NoGravity: true,
		Tag:       kind,
	}))
	f.queue.After(f.ticks(c.AttackLife), groupAttack, bossAction{kind: bossExpire, body: shot})
}

// dropMeteor places a floating meteor below the boss. Knocking it into the
// boss deals damage.
func (f *BossFight) dropMeteor() {
	c := f.cfg.Boss
	w := f.cfg.Board.Width
	pos := physics.V(f.rng.between(w*0.2, w*0.8), f.rng.between(c.BossY-c.BossRadius-260, c.BossY-c.BossRadius-120))
	kind := KindMeteor
	f.ents.forget(kind)
	f.ents.add(kind, f.world.Add(physics.BodyDef{
		Type:          physics.Dynamic,
		Position:      pos,
		Mass:          2,
		Shapes:        []physics.Shape{physics.Circle(c.MeteorRadius, physics.V(0, 0))},
		Filter:        filterFor(kind),
		Elasticity:    0.5,
		NoGravity:     true,
		LinearDamping: 0.5,
		Tag:           kind,
	}))
}

type bossHandler func(f *BossFight, c physics.Contact)

var bossHandlers = []bossHandler{
	(*BossFight).onBumper,
	(*BossFight).onBossHit,
	(*BossFight).onAttackHit,
	(*BossFight).onAttackBlocked,
	(*BossFight).onMeteorHit,
	(*BossFight).onMeteorStrike,
	(*BossFight).onLoseBox,
}

func (f *BossFight) dispatch(c physics.Contact) {
	for _, h := range bossHandlers {
		if f.state.Outcome != OutcomePending || !c.Live() {
			return
		}
		h(f, c)
	}
}

func (f *BossFight) onBumper(c physics.Contact) {
	if ball, bumper, ok := ballContact(c, bumperKinds...); ok {
		f.bump(ball, KindOf(bumper), c.VelocityOf(ball))
	}
}

// onBossHit damages the boss and sends the ball back the way it came.
// Fast balls deal charged damage.
func (f *BossFight) onBossHit(c physics.Contact) {
	ball, _, ok := ballContact(c, KindBoss)
	if !ok {
		return
	}
	cfg := f.cfg.Boss
	incoming := c.VelocityOf(ball)
	damage := cfg.HitDamage
	if incoming.Length() >= cfg.ChargedSpeed {
		damage = cfg.ChargedDamage
	}
	ball.SetVelocity(incoming.Mult(-cfg.Reflect))
	f.damageBoss(damage)
}

func (f *BossFight) onAttackHit(c physics.Contact) {
	ball, shot, ok := ballContact(c, KindAttackPush, KindAttackLaser)
	if !ok {
		return
	}
	cfg := f.cfg.Boss
	if KindOf(shot) == KindAttackPush {
		dir := shot.Velocity()
		if dir.LengthSq() > 0 {
			ball.ApplyImpulse(dir.Normalize().Mult(cfg.PushKnockback * ball.Mass()))
		}
	} else {
		f.damagePlayer(cfg.LaserDamage)
	}
	f.world.Remove(shot)
}

// onAttackBlocked removes shots that hit scenery.
func (f *BossFight) onAttackBlocked(c physics.Contact) {
	shot, other, ok := c.Match(catAttack)
	if ok && other.Category()&catAnyBall == 0 {
		f.world.Remove(shot)
	}
}

// onMeteorHit nudges a meteor the ball touched toward the boss.
func (f *BossFight) onMeteorHit(c physics.Contact) {
	_, meteor, ok := ballContact(c, KindMeteor)
	if !ok {
		return
	}
	dir := f.boss.Position().Sub(meteor.Position())
	if dir.LengthSq() > 0 {
		meteor.ApplyImpulse(dir.Normalize().Mult(f.cfg.Boss.MeteorNudge * meteor.Mass()))
	}
}

func (f *BossFight) onMeteorStrike(c physics.Contact) {
	meteor, other, ok := c.Match(catMeteor)
	if !ok || KindOf(other) != KindBoss {
		return
	}
	f.world.Remove(meteor)
	f.damageBoss(f.cfg.Boss.MeteorDamage)
}

func (f *BossFight) onLoseBox(c physics.Contact) {
	ball, _, ok := ballContact(c, KindLoseBox)
	if !ok {
		return
	}
	if KindOf(ball) == KindDuplicateBall {
		f.world.Remove(ball)
		return
	}
	if !f.promoteDuplicate() {
		f.finish(OutcomeDefeat)
	}
}

func (f *BossFight) damageBoss(n int) {
	f.state.BossHealth -= n
	if f.state.BossHealth <= 0 {
		f.state.BossHealth = 0
		f.finish(OutcomeVictory)
	}
}

func (f *BossFight) damagePlayer(n int) {
	f.state.PlayerHealth -= n
	f.state.Damaged = true
	if f.state.PlayerHealth <= 0 {
		f.state.PlayerHealth = 0
		f.finish(OutcomeDefeat)
	}
}

func (f *BossFight) finish(o Outcome) {
	st := &f.state
	if st.Outcome != OutcomePending {
		return
	}
	st.Outcome = o
	f.queue.Reset()
	f.log.Info("boss fight over", "outcome", o, "boss_health", st.BossHealth, "player_health", st.PlayerHealth)
	if o == OutcomeDefeat {
		st.Events = append(st.Events, core.On(core.EventBossFightLost))
		return
	}
	st.Events = append(st.Events, core.On(core.EventRoundWon))
	if !st.Damaged {
		st.Events = append(st.Events, core.On(core.EventBossVictoryNoDamageTaken))
	}
}

// PressFlipper raises a flipper in the arena.
func (f *BossFight) PressFlipper(s Side) {
	if f.state.Outcome == OutcomePending {
		f.pressFlipper(s)
	}
}

// ReleaseFlipper drops a flipper in the arena.
func (f *BossFight) ReleaseFlipper(s Side) {
	f.releaseFlipper(s)
}

// State returns a copy of the fight state without pending events.
func (f *BossFight) State() BossState {
	s := f.state
	s.Events = nil
	return s
}

// Result summarizes the fight for the board. A fight abandoned before it is
// decided counts as a defeat.
func (f *BossFight) Result() BossResult {
	o := f.state.Outcome
	if o == OutcomePending {
		o = OutcomeDefeat
	}
	return BossResult{
		Outcome:           o,
		TimeSurvived:      f.state.TimeSurvived,
		DuplicateSurvived: f.duplicate() != nil,
	}
}
