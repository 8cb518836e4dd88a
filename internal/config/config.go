// Package config provides YAML-based game configuration loading and
// difficulty presets for the pinball board and boss fight.
package config

// PinballConfig contains all configuration for the pinball board and the boss fight.
// Distances are board points (the board is 390x844, origin bottom-left),
// durations are seconds, and impulses assume the configured ball mass.
type PinballConfig struct {
	BallSkin string        `yaml:"ball_skin"`
	Round    RoundConfig   `yaml:"round"`
	Board    BoardConfig   `yaml:"board"`
	Ball     BallConfig    `yaml:"ball"`
	Flipper  FlipperConfig `yaml:"flipper"`
	Bumpers  BumperConfig  `yaml:"bumpers"`
	Items    ItemsConfig   `yaml:"items"`
	Rota     RotaConfig    `yaml:"rota"`
	Boss     BossConfig    `yaml:"boss"`
}

// RoundConfig defines the survival timer and countdown.
type RoundConfig struct {
	InitialTimer    float64 `yaml:"initial_timer"`    // Survival timer at round start
	TickRate        int     `yaml:"tick_rate"`        // Simulation ticks per second
	CountdownSteps  int     `yaml:"countdown_steps"`  // Number of countdown steps
	CountdownStep   float64 `yaml:"countdown_step"`   // Seconds per countdown step
	WarningBelow    float64 `yaml:"warning_below"`    // Timer band: warning at or below
	CriticalBelow   float64 `yaml:"critical_below"`   // Timer band: critical at or below
	DisplayDivisor  int     `yaml:"display_divisor"`  // Seconds per displayed minute
	StartPositionX  float64 `yaml:"start_position_x"` // Ball spawn
	StartPositionY  float64 `yaml:"start_position_y"`
	DuplicateStartX float64 `yaml:"duplicate_start_x"` // Duplicate ball spawn
	DuplicateStartY float64 `yaml:"duplicate_start_y"`
}

// BoardConfig defines playfield geometry and world parameters.
type BoardConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Gravity        float64 `yaml:"gravity"`          // Vertical gravity (negative is down)
	Iterations     int     `yaml:"iterations"`       // Solver iterations
	WallThickness  float64 `yaml:"wall_thickness"`   // Radius of boundary segments
	OutOfBoundsMin float64 `yaml:"out_of_bounds_min"` // Ball x below this is respawned
	OutOfBoundsMax float64 `yaml:"out_of_bounds_max"` // Ball x above this is respawned
	LoseBoxHeight  float64 `yaml:"lose_box_height"`
	ObstacleWidth  float64 `yaml:"obstacle_width"`
	ObstacleSweep  float64 `yaml:"obstacle_sweep"` // Seconds to cross the board
	ObstaclePause  float64 `yaml:"obstacle_pause"` // Seconds to wait at each edge

	// Heights of the moving bars
	ObstacleRows []float64 `yaml:"obstacle_rows"`
}

// BallConfig defines ball physics and abilities.
type BallConfig struct {
	Radius           float64 `yaml:"radius"`
	Mass             float64 `yaml:"mass"`
	Elasticity       float64 `yaml:"elasticity"`
	Friction         float64 `yaml:"friction"`
	LinearDamping    float64 `yaml:"linear_damping"`     // Fraction of velocity lost per second
	DuplicateDamping float64 `yaml:"duplicate_damping"`  // Duplicate ball damping
	MaxSpeed         float64 `yaml:"max_speed"`          // Primary ball speed cap
	DuplicateMax     float64 `yaml:"duplicate_max_speed"` // Duplicate ball speed cap
	BoostX           float64 `yaml:"boost_x"`            // Jump boost impulse (toward center)
	BoostY           float64 `yaml:"boost_y"`
	HistoryWindow    float64 `yaml:"history_window"` // Seconds of position history kept for undo
}

// FlipperConfig defines flipper geometry and the PD control law.
type FlipperConfig struct {
	LeftPivotX     float64 `yaml:"left_pivot_x"`
	RightPivotX    float64 `yaml:"right_pivot_x"`
	PivotY         float64 `yaml:"pivot_y"`
	Length         float64 `yaml:"length"`
	Radius         float64 `yaml:"radius"`
	Mass           float64 `yaml:"mass"`
	Moment         float64 `yaml:"moment"`
	RestAngle      float64 `yaml:"rest_angle"`    // Left flipper; right is mirrored
	PressedAngle   float64 `yaml:"pressed_angle"` // Left flipper; right is mirrored
	AngularDamping float64 `yaml:"angular_damping"`
	Elasticity     float64 `yaml:"elasticity"`
	Press          PDGains `yaml:"press"`
	Rest           PDGains `yaml:"rest"`
	PressImpulse   float64 `yaml:"press_impulse"`
	ReleaseImpulse float64 `yaml:"release_impulse"`
	LaunchImpulse  float64 `yaml:"launch_impulse"`  // Kick when flippers are reinstalled
	LaunchSettle   float64 `yaml:"launch_settle"`   // Seconds before the counter-kick
	SettleImpulse  float64 `yaml:"settle_impulse"`  // Counter-kick after a launch
}

// PDGains are the gains of one flipper control phase.
type PDGains struct {
	Kp        float64 `yaml:"kp"`
	Kd        float64 `yaml:"kd"`
	MaxTorque float64 `yaml:"max_torque"`
}

// BumperConfig defines bumper impulses.
type BumperConfig struct {
	Radius     float64 `yaml:"radius"`
	SidePush   float64 `yaml:"side_push"` // Left/right bumper horizontal impulse
	UpPush     float64 `yaml:"up_push"`   // Plain bumper vertical impulse
	Reflect    float64 `yaml:"reflect"`   // Center bumper restitution of the reflected velocity
	Elasticity float64 `yaml:"elasticity"`
}

// ItemsConfig defines the item lifecycle and item effects.
type ItemsConfig struct {
	Radius            float64 `yaml:"radius"`
	Timeout           float64 `yaml:"timeout"`         // Uncollected item despawns after this
	SpawnDelayUnit    float64 `yaml:"spawn_delay_unit"` // Delay is unit * rand[min, max]
	SpawnDelayMin     int     `yaml:"spawn_delay_min"`
	SpawnDelayMax     int     `yaml:"spawn_delay_max"`
	SpawnMinX         float64 `yaml:"spawn_min_x"`
	SpawnMaxX         float64 `yaml:"spawn_max_x"`
	SpawnMinY         float64 `yaml:"spawn_min_y"`
	SpawnMaxY         float64 `yaml:"spawn_max_y"`
	SpawnMinDistance  float64 `yaml:"spawn_min_distance"` // From the ball
	SpawnAttempts     int     `yaml:"spawn_attempts"`
	DuplicateDuration float64 `yaml:"duplicate_duration"`
	DuplicateBonus    float64 `yaml:"duplicate_bonus"`
	FistDuration      float64 `yaml:"fist_duration"`
	PistonBusy        float64 `yaml:"piston_busy"`     // Cooldown after firing
	PistonRestore     float64 `yaml:"piston_restore"`  // Compression time before the piston resets
	ProjectileSpeed   float64 `yaml:"projectile_speed"` // Per axis, launched diagonally
	ProjectileRadius  float64 `yaml:"projectile_radius"`
	ProjectileLife    float64 `yaml:"projectile_life"`
	FistKnockX        float64 `yaml:"fist_knock_x"` // Impulse on the ball when hit by a projectile
	FistKnockY        float64 `yaml:"fist_knock_y"`
	GravityFlipWindow float64 `yaml:"gravity_flip_window"` // Total seconds of inverted gravity
	GravityFlipWeaken float64 `yaml:"gravity_flip_weaken"` // Factor applied halfway through
	GravityFlipEnable bool    `yaml:"gravity_flip_enabled"`
}

// RotaConfig defines the rota challenge.
type RotaConfig struct {
	Targets        int     `yaml:"targets"`
	TimeLimit      float64 `yaml:"time_limit"`
	CheckRadius    float64 `yaml:"check_radius"`
	MinFromBall    float64 `yaml:"min_from_ball"`
	MinSeparation  float64 `yaml:"min_separation"`
	Attempts       int     `yaml:"attempts"`
	AreaMinX       float64 `yaml:"area_min_x"`
	AreaMaxX       float64 `yaml:"area_max_x"`
	AreaMinY       float64 `yaml:"area_min_y"`
	AreaMaxY       float64 `yaml:"area_max_y"`
}

// BossConfig defines the boss fight session.
type BossConfig struct {
	PlayerHealth     int     `yaml:"player_health"`
	BossHealth       int     `yaml:"boss_health"`
	HitDamage        int     `yaml:"hit_damage"`
	ChargedDamage    int     `yaml:"charged_damage"`
	ChargedSpeed     float64 `yaml:"charged_speed"` // Ball speed at or above this is a charged hit
	Reflect          float64 `yaml:"reflect"`       // Fraction of incoming velocity sent back
	Gravity          float64 `yaml:"gravity"`
	MaxSpeed         float64 `yaml:"max_speed"`
	BossX            float64 `yaml:"boss_x"`
	BossY            float64 `yaml:"boss_y"`
	BossRadius       float64 `yaml:"boss_radius"`
	AttackPeriod     float64 `yaml:"attack_period"`
	AttackSpeed      float64 `yaml:"attack_speed"`
	AttackLife       float64 `yaml:"attack_life"`
	AttackRadius     float64 `yaml:"attack_radius"`
	PushKnockback    float64 `yaml:"push_knockback"`
	LaserDamage      int     `yaml:"laser_damage"`
	MeteorPeriod     float64 `yaml:"meteor_period"`
	MeteorRadius     float64 `yaml:"meteor_radius"`
	MeteorDamage     int     `yaml:"meteor_damage"`
	MeteorNudge      float64 `yaml:"meteor_nudge"` // Impulse toward the boss when the ball hits a meteor
	BumperY          float64 `yaml:"bumper_y"`
	ResumeGravity    float64 `yaml:"resume_gravity"` // Board gravity right after the fight
	ResumeWindow     float64 `yaml:"resume_window"`  // Seconds of resume gravity
	ResumeTimerDelta float64 `yaml:"resume_timer_delta"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
