package camera

import "github.com/go-gl/mathgl/mgl32"

// Settings holds every tunable knob of the controller. The struct is copied
// on SetSettings, so a caller can keep and mutate its own instance freely.
type Settings struct {
	// Movement
	MovementSpeed    float32 `yaml:"movementSpeed"`
	SprintMultiplier float32 `yaml:"sprintMultiplier"`
	CrouchMultiplier float32 `yaml:"crouchMultiplier"`

	// Mouse look
	MouseSensitivity float32 `yaml:"mouseSensitivity"`
	InvertY          bool    `yaml:"invertY"`

	// Smoothing factors in (0, 1]: 1 snaps instantly, lower is floatier
	MovementSmoothing float32 `yaml:"movementSmoothing"`
	RotationSmoothing float32 `yaml:"rotationSmoothing"`

	// Third person rig
	ThirdPersonDistance float32    `yaml:"thirdPersonDistance"`
	ThirdPersonHeight   float32    `yaml:"thirdPersonHeight"`
	ThirdPersonOffset   mgl32.Vec3 `yaml:"thirdPersonOffset"`

	// Pitch limits applied on top of the camera's hard constraint
	ConstrainPitch bool    `yaml:"constrainPitch"`
	MinPitch       float32 `yaml:"minPitch"`
	MaxPitch       float32 `yaml:"maxPitch"`

	// Field of view (degrees)
	DefaultFOV         float32 `yaml:"defaultFOV"`
	SprintFOV          float32 `yaml:"sprintFOV"`
	AimFOV             float32 `yaml:"aimFOV"`
	FOVTransitionSpeed float32 `yaml:"fovTransitionSpeed"`

	// Shake
	ShakeIntensity float32 `yaml:"shakeIntensity"`
	ShakeDamping   float32 `yaml:"shakeDamping"`
}

// DefaultSettings returns the standard first-person tuning.
func DefaultSettings() Settings {
	return Settings{
		MovementSpeed:       5.0,
		SprintMultiplier:    2.0,
		CrouchMultiplier:    0.5,
		MouseSensitivity:    0.1,
		InvertY:             false,
		MovementSmoothing:   0.1,
		RotationSmoothing:   0.1,
		ThirdPersonDistance: 5.0,
		ThirdPersonHeight:   2.0,
		ThirdPersonOffset:   mgl32.Vec3{0, 0, 0},
		ConstrainPitch:      true,
		MinPitch:            MinPitch,
		MaxPitch:            MaxPitch,
		DefaultFOV:          75.0,
		SprintFOV:           85.0,
		AimFOV:              50.0,
		FOVTransitionSpeed:  5.0,
		ShakeIntensity:      1.0,
		ShakeDamping:        5.0,
	}
}
