package camera

// Default orientation and motion parameters
const (
	DefaultYaw   = -90.0 // Facing -Z direction
	DefaultPitch = 0.0
	DefaultRoll  = 0.0

	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
)

// Projection parameters
const (
	DefaultZoom   = 45.0
	DefaultNear   = 0.1
	DefaultFar    = 1000.0
	DefaultAspect = 16.0 / 9.0

	// Default orthographic volume
	DefaultOrthoLeft   = -10.0
	DefaultOrthoRight  = 10.0
	DefaultOrthoBottom = -10.0
	DefaultOrthoTop    = 10.0
	DefaultOrthoNear   = -1.0
	DefaultOrthoFar    = 1.0
)

// Constraints
const (
	MinZoom  = 1.0
	MaxZoom  = 120.0
	MaxPitch = 89.0
	MinPitch = -89.0

	// Roll below this magnitude (degrees) is treated as zero
	rollEpsilon = 0.001
)
