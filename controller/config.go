package controller

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/strafekit/strafekit/game"
)

// Config is the immutable, author-time tuning record for a controller. It is
// validated once when a Simulator is built, never per tick, and is safe to
// share between entities and goroutines.
type Config struct {
	Gravity float32 `yaml:"gravity"`

	WalkSpeed    float32 `yaml:"walk_speed"`
	RunSpeed     float32 `yaml:"run_speed"`
	ForwardSpeed float32 `yaml:"forward_speed"`
	SideSpeed    float32 `yaml:"side_speed"`

	Accel          float32 `yaml:"accel"`
	Friction       float32 `yaml:"friction"`
	FrictionCutoff float32 `yaml:"friction_cutoff"`
	StopSpeed      float32 `yaml:"stop_speed"`
	JumpSpeed      float32 `yaml:"jump_speed"`

	AirAccel    float32 `yaml:"air_accel"`
	AirSpeedCap float32 `yaml:"air_speed_cap"`
	MaxAirSpeed float32 `yaml:"max_air_speed"`

	NoclipSpeed     float32 `yaml:"noclip_speed"`
	NoclipFastSpeed float32 `yaml:"noclip_fast_speed"`
	NoclipFriction  float32 `yaml:"noclip_friction"`

	StandHeight     float32 `yaml:"stand_height"`
	CrouchHeight    float32 `yaml:"crouch_height"`
	CrouchSpeedMul  float32 `yaml:"crouch_speed_mul"`
	CrouchRate      float32 `yaml:"crouch_rate"`
	Radius          float32 `yaml:"radius"`
	EyeOffsetStand  float32 `yaml:"eye_offset_stand"`
	EyeOffsetCrouch float32 `yaml:"eye_offset_crouch"`

	StepHeight   float32 `yaml:"step_height"`
	SnapDistance float32 `yaml:"snap_distance"`
	MaxSlopeDeg  float32 `yaml:"max_slope_deg"`
}

// DefaultConfig returns the default Source-style tuning.
func DefaultConfig() Config {
	return Config{
		Gravity: game.DefaultGravity,

		WalkSpeed:    game.DefaultWalkSpeed,
		RunSpeed:     game.DefaultRunSpeed,
		ForwardSpeed: game.DefaultForwardSpeed,
		SideSpeed:    game.DefaultSideSpeed,

		Accel:          game.DefaultAccel,
		Friction:       game.DefaultFriction,
		FrictionCutoff: game.DefaultFrictionCutoff,
		StopSpeed:      game.DefaultStopSpeed,
		JumpSpeed:      game.DefaultJumpSpeed,

		AirAccel:    game.DefaultAirAccel,
		AirSpeedCap: game.DefaultAirSpeedCap,
		MaxAirSpeed: game.DefaultMaxAirSpeed,

		NoclipSpeed:     game.DefaultNoclipSpeed,
		NoclipFastSpeed: game.DefaultNoclipFastSpeed,
		NoclipFriction:  game.DefaultNoclipFriction,

		StandHeight:     game.DefaultStandHeight,
		CrouchHeight:    game.DefaultCrouchHeight,
		CrouchSpeedMul:  game.DefaultCrouchSpeedMul,
		CrouchRate:      game.DefaultCrouchRate,
		Radius:          game.DefaultRadius,
		EyeOffsetStand:  game.DefaultStandHeight * 0.9,
		EyeOffsetCrouch: game.DefaultCrouchHeight * 0.9,

		StepHeight:   game.DefaultStepHeight,
		SnapDistance: game.DefaultSnapDistance,
		MaxSlopeDeg:  game.DefaultMaxSlopeDeg,
	}
}

// Validate checks the record once at construction time.
func (c Config) Validate() error {
	switch {
	case c.Gravity < 0:
		return fmt.Errorf("gravity must be >= 0, got %v", c.Gravity)
	case c.WalkSpeed <= 0 || c.RunSpeed <= 0:
		return fmt.Errorf("walk/run speed must be > 0, got %v/%v", c.WalkSpeed, c.RunSpeed)
	case c.Friction < 0 || c.Accel < 0 || c.AirAccel < 0:
		return fmt.Errorf("friction and acceleration must be >= 0")
	case c.StopSpeed <= 0:
		return fmt.Errorf("stop_speed must be > 0, got %v", c.StopSpeed)
	case c.FrictionCutoff < 0:
		return fmt.Errorf("friction_cutoff must be >= 0, got %v", c.FrictionCutoff)
	case c.JumpSpeed < 0:
		return fmt.Errorf("jump_speed must be >= 0, got %v", c.JumpSpeed)
	case c.NoclipSpeed <= 0 || c.NoclipFastSpeed <= 0:
		return fmt.Errorf("noclip speeds must be > 0, got %v/%v", c.NoclipSpeed, c.NoclipFastSpeed)
	case c.NoclipFriction < 0 || c.NoclipFriction > 1:
		return fmt.Errorf("noclip_friction must be in [0, 1], got %v", c.NoclipFriction)
	case c.StandHeight <= 0 || c.CrouchHeight <= 0 || c.CrouchHeight >= c.StandHeight:
		return fmt.Errorf("need 0 < crouch_height < stand_height, got %v/%v", c.CrouchHeight, c.StandHeight)
	case c.CrouchSpeedMul <= 0 || c.CrouchSpeedMul > 1:
		return fmt.Errorf("crouch_speed_mul must be in (0, 1], got %v", c.CrouchSpeedMul)
	case c.CrouchRate <= 0:
		return fmt.Errorf("crouch_rate must be > 0, got %v", c.CrouchRate)
	case c.Radius <= 0:
		return fmt.Errorf("radius must be > 0, got %v", c.Radius)
	case c.MaxSlopeDeg <= 0 || c.MaxSlopeDeg >= 90:
		return fmt.Errorf("max_slope_deg must be in (0, 90), got %v", c.MaxSlopeDeg)
	case c.SnapDistance < 0 || c.StepHeight < 0:
		return fmt.Errorf("snap_distance and step_height must be >= 0")
	}
	return nil
}

// LoadConfig reads a yaml tuning file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Walkable reports whether a unit surface normal is within the configured max
// slope angle of straight up. The bound is inclusive.
func (c Config) Walkable(normal mgl32.Vec3) bool {
	minUp := math32.Cos(c.MaxSlopeDeg * math32.Pi / 180)
	return normal.Y() >= minUp-1e-6
}

// maxGroundSpeed returns the horizontal speed cap for the current ground
// sub-mode. Sprint never applies while crouching.
func (c Config) maxGroundSpeed(crouched, sprint bool) float32 {
	if crouched {
		return c.WalkSpeed * c.CrouchSpeedMul
	}
	if sprint {
		return c.RunSpeed
	}
	return c.WalkSpeed
}
