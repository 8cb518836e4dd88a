package config

import (
	_ "embed"
)

//go:embed defaults/pinball.yaml
var defaultPinballYAML []byte

// DefaultPinballConfig returns the default pinball configuration.
// It mirrors defaults/pinball.yaml and is used when the embedded file cannot be parsed.
func DefaultPinballConfig() PinballConfig {
	return PinballConfig{
		BallSkin: "classic",
		Round: RoundConfig{
			InitialTimer:    300,
			TickRate:        60,
			CountdownSteps:  3,
			CountdownStep:   1.0,
			WarningBelow:    120,
			CriticalBelow:   60,
			DisplayDivisor:  60,
			StartPositionX:  50,
			StartPositionY:  500,
			DuplicateStartX: 340,
			DuplicateStartY: 500,
		},
		Board: BoardConfig{
			Width:          390,
			Height:         844,
			Gravity:        -600,
			Iterations:     10,
			WallThickness:  4,
			OutOfBoundsMin: 0,
			OutOfBoundsMax: 390,
			LoseBoxHeight:  30,
			ObstacleWidth:  90,
			ObstacleSweep:  2.0,
			ObstaclePause:  0.3,
			ObstacleRows:   []float64{410, 610},
		},
		Ball: BallConfig{
			Radius:           12,
			Mass:             1,
			Elasticity:       0.2,
			Friction:         0.5,
			LinearDamping:    0.2,
			DuplicateDamping: 0.5,
			MaxSpeed:         1000,
			DuplicateMax:     800,
			BoostX:           250,
			BoostY:           250,
			HistoryWindow:    5.0,
		},
		Flipper: FlipperConfig{
			LeftPivotX:     66,
			RightPivotX:    324,
			PivotY:         110,
			Length:         90,
			Radius:         8,
			Mass:           5,
			Moment:         20,
			RestAngle:      -0.5236,
			PressedAngle:   0.5236,
			AngularDamping: 0.05,
			Elasticity:     0.1,
			Press:          PDGains{Kp: 180, Kd: 20, MaxTorque: 900},
			Rest:           PDGains{Kp: 280, Kd: 35, MaxTorque: 1600},
			PressImpulse:   420,
			ReleaseImpulse: 220,
			LaunchImpulse:  100,
			LaunchSettle:   0.1,
			SettleImpulse:  60,
		},
		Bumpers: BumperConfig{
			Radius:     22,
			SidePush:   350,
			UpPush:     300,
			Reflect:    1.0,
			Elasticity: 0.5,
		},
		Items: ItemsConfig{
			Radius:            16,
			Timeout:           5.0,
			SpawnDelayUnit:    10.0,
			SpawnDelayMin:     1,
			SpawnDelayMax:     3,
			SpawnMinX:         40,
			SpawnMaxX:         350,
			SpawnMinY:         220,
			SpawnMaxY:         700,
			SpawnMinDistance:  100,
			SpawnAttempts:     40,
			DuplicateDuration: 40,
			DuplicateBonus:    60,
			FistDuration:      20,
			PistonBusy:        0.15,
			PistonRestore:     0.1,
			ProjectileSpeed:   450,
			ProjectileRadius:  8,
			ProjectileLife:    3.0,
			FistKnockX:        150,
			FistKnockY:        300,
			GravityFlipWindow: 15,
			GravityFlipWeaken: 0.3,
			GravityFlipEnable: true,
		},
		Rota: RotaConfig{
			Targets:       10,
			TimeLimit:     35,
			CheckRadius:   18,
			MinFromBall:   200,
			MinSeparation: 150,
			Attempts:      40,
			AreaMinX:      20,
			AreaMaxX:      370,
			AreaMinY:      220,
			AreaMaxY:      780,
		},
		Boss: BossConfig{
			PlayerHealth:     1000,
			BossHealth:       500,
			HitDamage:        25,
			ChargedDamage:    50,
			ChargedSpeed:     700,
			Reflect:          0.75,
			Gravity:          -360,
			MaxSpeed:         800,
			BossX:            195,
			BossY:            625,
			BossRadius:       90,
			AttackPeriod:     5.0,
			AttackSpeed:      500,
			AttackLife:       2.5,
			AttackRadius:     10,
			PushKnockback:    400,
			LaserDamage:      100,
			MeteorPeriod:     2.0,
			MeteorRadius:     20,
			MeteorDamage:     100,
			MeteorNudge:      300,
			BumperY:          680,
			ResumeGravity:    -180,
			ResumeWindow:     2.0,
			ResumeTimerDelta: 75,
		},
	}
}
