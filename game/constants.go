package game

const (
	// Default tuning for a Source-style controller. Units are meters and
	// meters per second with a feet-origin collider.
	DefaultGravity        = float32(23.0)
	DefaultWalkSpeed      = float32(10.0)
	DefaultRunSpeed       = float32(30.0)
	DefaultForwardSpeed   = float32(30.0)
	DefaultSideSpeed      = float32(30.0)
	DefaultAccel          = float32(10.0)
	DefaultFriction       = float32(10.0)
	DefaultFrictionCutoff = float32(0.1)
	DefaultStopSpeed      = float32(1.0)
	DefaultJumpSpeed      = float32(8.5)

	DefaultAirAccel    = float32(20.0)
	DefaultAirSpeedCap = float32(2.0)
	DefaultMaxAirSpeed = float32(8.0)

	DefaultNoclipSpeed     = float32(10.0)
	DefaultNoclipFastSpeed = float32(30.0)
	DefaultNoclipFriction  = float32(0.5)

	DefaultStandHeight    = float32(3.0)
	DefaultCrouchHeight   = float32(1.5)
	DefaultCrouchSpeedMul = float32(0.5)
	DefaultCrouchRate     = float32(8.0)
	DefaultRadius         = float32(0.5)

	DefaultStepHeight   = float32(0.5)
	DefaultSnapDistance = float32(0.125)
	DefaultMaxSlopeDeg  = float32(45.0)
)
