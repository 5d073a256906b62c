package camera

// Mode selects how the controller drives its camera each frame. The set of
// modes is closed: every variant lives in this package and carries its own
// per-frame step, so there is no switch that a new mode could fall through.
type Mode interface {
	// step runs the mode-specific stage of Controller.Update.
	step(c *Controller, deltaTime float32)
	String() string
}

var (
	// FirstPerson couples the camera directly to keyboard and mouse input.
	FirstPerson Mode = firstPersonMode{}
	// ThirdPerson follows a target from a configured distance and height.
	ThirdPerson Mode = thirdPersonMode{}
	// Spectator is free flight, like FirstPerson without host-side collision.
	Spectator Mode = spectatorMode{}
	// Fixed keeps re-aiming at the target; the position is left to the host.
	Fixed Mode = fixedMode{}
)

type firstPersonMode struct{}

func (firstPersonMode) step(c *Controller, deltaTime float32) {
	// Keyboard and mouse passes have already moved the camera
}

func (firstPersonMode) String() string { return "FirstPerson" }

type thirdPersonMode struct{}

func (thirdPersonMode) step(c *Controller, deltaTime float32) {
	c.updateThirdPerson(deltaTime)
}

func (thirdPersonMode) String() string { return "ThirdPerson" }

type spectatorMode struct{}

func (spectatorMode) step(c *Controller, deltaTime float32) {
	// Same free movement as first person
}

func (spectatorMode) String() string { return "Spectator" }

type fixedMode struct{}

func (fixedMode) step(c *Controller, deltaTime float32) {
	if c.target.Len() > 0 {
		c.camera.LookAt(c.target)
	}
}

func (fixedMode) String() string { return "Fixed" }
