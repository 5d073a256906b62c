package camera

import (
	"log"
	"math/rand"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Input supplies the controller with key, button and cursor state each frame.
type Input interface {
	IsKeyHeld(key glfw.Key) bool
	IsKeyPressed(key glfw.Key) bool
	IsMouseButtonHeld(button glfw.MouseButton) bool
	IsMouseButtonPressed(button glfw.MouseButton) bool
	MousePosition() (x, y float64)
}

// Bindings maps controller actions to GLFW input codes.
type Bindings struct {
	Forward  glfw.Key
	Backward glfw.Key
	Left     glfw.Key
	Right    glfw.Key
	Up       glfw.Key
	Sprint   glfw.Key
	Crouch   glfw.Key
	Aim      glfw.MouseButton
}

// DefaultBindings returns the classic WASD layout with right-mouse aim.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  glfw.KeyW,
		Backward: glfw.KeyS,
		Left:     glfw.KeyA,
		Right:    glfw.KeyD,
		Up:       glfw.KeySpace,
		Sprint:   glfw.KeyLeftShift,
		Crouch:   glfw.KeyLeftControl,
		Aim:      glfw.MouseButtonRight,
	}
}

// Controller drives a Camera from player input. It owns the control mode,
// movement and rotation smoothing, FOV transitions and procedural shake.
// Like the camera it is single threaded: one Update per frame from the host.
type Controller struct {
	camera *Camera
	input  Input

	mode     Mode
	settings Settings
	bindings Bindings
	target   mgl32.Vec3

	// State flags
	aiming    bool
	sprinting bool
	crouching bool

	inputEnabled     bool
	smoothingEnabled bool

	// Smoothing accumulators
	velocitySmooth mgl32.Vec3
	rotationSmooth mgl32.Vec2

	// FOV transition (degrees)
	currentFOV float32
	targetFOV  float32

	// Shake state
	shakeIntensity float32
	shakeDuration  float32
	shakeTimer     float32
	shakeOffset    mgl32.Vec3
	rng            *rand.Rand

	// Mouse look state
	firstMouse bool
	lastMouseX float32
	lastMouseY float32
}

// NewController creates a controller for the given camera. The camera may be
// nil and attached later with SetCamera; Update does nothing until both a
// camera and an input source are present.
func NewController(cam *Camera) *Controller {
	settings := DefaultSettings()
	return &Controller{
		camera:           cam,
		mode:             FirstPerson,
		settings:         settings,
		bindings:         DefaultBindings(),
		inputEnabled:     true,
		smoothingEnabled: true,
		currentFOV:       settings.DefaultFOV,
		targetFOV:        settings.DefaultFOV,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
		firstMouse:       true,
	}
}

// Initialize binds the input source and pushes the default FOV into the camera.
func (c *Controller) Initialize(in Input) {
	c.input = in
	if c.camera != nil {
		c.currentFOV = c.settings.DefaultFOV
		c.targetFOV = c.settings.DefaultFOV
		c.camera.SetPerspective(c.currentFOV, c.camera.AspectRatio())
	}
	log.Printf("[CameraController] Initialized in %s mode", c.mode)
}

// Update advances the controller by one frame. It does nothing without a
// camera and input source, or while input is disabled.
func (c *Controller) Update(deltaTime float32) {
	if c.camera == nil || c.input == nil || !c.inputEnabled {
		return
	}

	c.processKeyboard(deltaTime)
	c.processMouse()
	c.mode.step(c, deltaTime)
	c.updateFOV(deltaTime)
	c.updateShake(deltaTime)
}

// processKeyboard handles sprint/crouch state and movement
func (c *Controller) processKeyboard(deltaTime float32) {
	if c.input.IsKeyHeld(c.bindings.Sprint) {
		c.StartSprinting()
	} else {
		c.StopSprinting()
	}
	if c.input.IsKeyHeld(c.bindings.Crouch) {
		c.StartCrouching()
	} else {
		c.StopCrouching()
	}

	var movement mgl32.Vec3
	if c.input.IsKeyHeld(c.bindings.Forward) {
		movement = movement.Add(c.camera.Front())
	}
	if c.input.IsKeyHeld(c.bindings.Backward) {
		movement = movement.Sub(c.camera.Front())
	}
	if c.input.IsKeyHeld(c.bindings.Left) {
		movement = movement.Sub(c.camera.Right())
	}
	if c.input.IsKeyHeld(c.bindings.Right) {
		movement = movement.Add(c.camera.Right())
	}
	if c.input.IsKeyHeld(c.bindings.Up) {
		movement = movement.Add(c.camera.Up())
	}

	if movement.Len() > 0 {
		movement = movement.Normalize()

		speed := c.settings.MovementSpeed
		if c.sprinting {
			speed *= c.settings.SprintMultiplier
		}
		if c.crouching {
			speed *= c.settings.CrouchMultiplier
		}
		movement = movement.Mul(speed * deltaTime)

		if c.smoothingEnabled {
			c.velocitySmooth = lerpVec3(c.velocitySmooth, movement, c.settings.MovementSmoothing)
			c.camera.SetPosition(c.camera.Position().Add(c.velocitySmooth))
		} else {
			c.camera.SetPosition(c.camera.Position().Add(movement))
		}
	} else if c.smoothingEnabled {
		// Ease the residual velocity out instead of stopping dead
		c.velocitySmooth = lerpVec3(c.velocitySmooth, mgl32.Vec3{}, c.settings.MovementSmoothing*2)
		c.camera.SetPosition(c.camera.Position().Add(c.velocitySmooth))
	}
}

// processMouse handles the aim toggle and mouse look
func (c *Controller) processMouse() {
	if c.input.IsMouseButtonHeld(c.bindings.Aim) {
		c.StartAiming()
	} else {
		c.StopAiming()
	}

	c.handleMouseLook()
}

func (c *Controller) handleMouseLook() {
	mouseX, mouseY := c.input.MousePosition()

	// First sample establishes the reference without producing a delta
	if c.firstMouse {
		c.lastMouseX = float32(mouseX)
		c.lastMouseY = float32(mouseY)
		c.firstMouse = false
		return
	}

	xoffset := float32(mouseX) - c.lastMouseX
	yoffset := c.lastMouseY - float32(mouseY) // Reversed: y ranges bottom to top
	c.lastMouseX = float32(mouseX)
	c.lastMouseY = float32(mouseY)

	xoffset *= c.settings.MouseSensitivity
	yoffset *= c.settings.MouseSensitivity
	if c.settings.InvertY {
		yoffset = -yoffset
	}

	if c.smoothingEnabled {
		c.rotationSmooth = lerpVec2(c.rotationSmooth, mgl32.Vec2{xoffset, yoffset}, c.settings.RotationSmoothing)
		c.camera.ProcessMouseMovement(c.rotationSmooth.X(), c.rotationSmooth.Y(), c.settings.ConstrainPitch)
	} else {
		c.camera.ProcessMouseMovement(xoffset, yoffset, c.settings.ConstrainPitch)
	}

	c.constrainPitchBounds()
}

// constrainPitchBounds applies the settings pitch limits when they are
// tighter than the camera's hard constraint.
func (c *Controller) constrainPitchBounds() {
	if !c.settings.ConstrainPitch {
		return
	}
	pitch := c.camera.Pitch()
	clamped := pitch
	if clamped < c.settings.MinPitch {
		clamped = c.settings.MinPitch
	}
	if clamped > c.settings.MaxPitch {
		clamped = c.settings.MaxPitch
	}
	if clamped != pitch {
		c.camera.SetRotation(c.camera.Yaw(), clamped, c.camera.Roll())
	}
}

// updateThirdPerson blends the camera toward the ideal rig position and aims
// it at the target.
func (c *Controller) updateThirdPerson(deltaTime float32) {
	ideal := c.thirdPersonPosition()

	if c.smoothingEnabled {
		c.camera.SetPosition(lerpVec3(c.camera.Position(), ideal, c.settings.MovementSmoothing*2))
	} else {
		c.camera.SetPosition(ideal)
	}

	c.camera.LookAt(c.target)
}

// thirdPersonPosition returns the ideal position behind the target
func (c *Controller) thirdPersonPosition() mgl32.Vec3 {
	direction := c.camera.Front().Normalize()
	position := c.target.Sub(direction.Mul(c.settings.ThirdPersonDistance))
	position = position.Add(mgl32.Vec3{0, c.settings.ThirdPersonHeight, 0})
	return position.Add(c.settings.ThirdPersonOffset)
}

// updateFOV eases the camera FOV toward the target value
func (c *Controller) updateFOV(deltaTime float32) {
	if mgl32.Abs(c.currentFOV-c.targetFOV) > 0.1 {
		c.currentFOV = lerp(c.currentFOV, c.targetFOV, c.settings.FOVTransitionSpeed*deltaTime)
		c.camera.SetPerspective(c.currentFOV, c.camera.AspectRatio())
	}
}

// updateShake applies the current shake offset and decays the intensity
func (c *Controller) updateShake(deltaTime float32) {
	if c.shakeTimer > 0 {
		c.shakeTimer -= deltaTime

		// Linear falloff over the remaining time
		amplitude := c.shakeIntensity * (c.shakeTimer / c.shakeDuration)

		c.shakeOffset = mgl32.Vec3{
			c.randomOffset() * amplitude,
			c.randomOffset() * amplitude,
			c.randomOffset() * amplitude * 0.5, // Depth shake is half strength
		}
		c.camera.SetPosition(c.camera.Position().Add(c.shakeOffset))

		c.shakeIntensity -= c.settings.ShakeDamping * deltaTime
		if c.shakeIntensity < 0 {
			c.shakeIntensity = 0
		}
	} else if c.shakeIntensity > 0 {
		c.ClearShake()
	}
}

// randomOffset samples uniformly from [-1, 1)
func (c *Controller) randomOffset() float32 {
	return c.rng.Float32()*2 - 1
}

// SetMode switches the control mode, clearing the smoothing accumulators so
// the new mode starts from rest. A nil mode is ignored.
func (c *Controller) SetMode(mode Mode) {
	if mode == nil || mode == c.mode {
		return
	}
	c.mode = mode
	c.velocitySmooth = mgl32.Vec3{}
	c.rotationSmooth = mgl32.Vec2{}
	log.Printf("[CameraController] Mode changed to %s", mode)
}

// Mode returns the active control mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetCamera attaches a camera and resets the FOV transition to the default.
func (c *Controller) SetCamera(cam *Camera) {
	c.camera = cam
	if c.camera != nil {
		c.currentFOV = c.settings.DefaultFOV
		c.targetFOV = c.settings.DefaultFOV
	}
}

// Camera returns the driven camera, which may be nil.
func (c *Controller) Camera() *Camera {
	return c.camera
}

// SetSettings copies the tuning record and pushes the movement speed and
// mouse sensitivity into the camera.
func (c *Controller) SetSettings(settings Settings) {
	c.settings = settings
	if c.camera != nil {
		c.camera.SetMovementSpeed(settings.MovementSpeed)
		c.camera.SetMouseSensitivity(settings.MouseSensitivity)
	}
}

// Settings returns the current tuning.
func (c *Controller) Settings() Settings {
	return c.settings
}

// SetBindings replaces the action-to-key mapping.
func (c *Controller) SetBindings(bindings Bindings) {
	c.bindings = bindings
}

// Bindings returns the action-to-key mapping.
func (c *Controller) Bindings() Bindings {
	return c.bindings
}

// SetTarget sets the point tracked by the ThirdPerson and Fixed modes.
func (c *Controller) SetTarget(target mgl32.Vec3) {
	c.target = target
}

// Target returns the tracked point.
func (c *Controller) Target() mgl32.Vec3 {
	return c.target
}

// StartAiming narrows the FOV toward the aim setting. Aiming wins over sprint.
func (c *Controller) StartAiming() {
	if !c.aiming {
		c.aiming = true
		c.targetFOV = c.settings.AimFOV
	}
}

// StopAiming returns the FOV to the sprint or default value.
func (c *Controller) StopAiming() {
	if c.aiming {
		c.aiming = false
		if c.sprinting {
			c.targetFOV = c.settings.SprintFOV
		} else {
			c.targetFOV = c.settings.DefaultFOV
		}
	}
}

// StartSprinting widens the FOV unless an aim is in progress.
func (c *Controller) StartSprinting() {
	if !c.sprinting {
		c.sprinting = true
		if !c.aiming {
			c.targetFOV = c.settings.SprintFOV
		}
	}
}

// StopSprinting returns the FOV to the default unless an aim is in progress.
func (c *Controller) StopSprinting() {
	if c.sprinting {
		c.sprinting = false
		if !c.aiming {
			c.targetFOV = c.settings.DefaultFOV
		}
	}
}

// StartCrouching slows movement by the crouch multiplier.
func (c *Controller) StartCrouching() {
	c.crouching = true
}

// StopCrouching restores normal movement speed.
func (c *Controller) StopCrouching() {
	c.crouching = false
}

// IsAiming reports whether the aim button is engaged.
func (c *Controller) IsAiming() bool {
	return c.aiming
}

// IsSprinting reports whether the sprint key is engaged.
func (c *Controller) IsSprinting() bool {
	return c.sprinting
}

// IsCrouching reports whether the crouch key is engaged.
func (c *Controller) IsCrouching() bool {
	return c.crouching
}

// AddShake kicks the camera with a procedural shake. Overlapping shakes
// extend rather than stack: intensity and duration both take the maximum.
func (c *Controller) AddShake(intensity, duration float32) {
	scaled := intensity * c.settings.ShakeIntensity
	if scaled > c.shakeIntensity {
		c.shakeIntensity = scaled
	}
	if duration > c.shakeDuration {
		c.shakeDuration = duration
	}
	c.shakeTimer = c.shakeDuration
}

// ClearShake stops any active shake immediately.
func (c *Controller) ClearShake() {
	c.shakeIntensity = 0
	c.shakeDuration = 0
	c.shakeTimer = 0
	c.shakeOffset = mgl32.Vec3{}
}

// ShakeOffset returns the offset applied by the most recent shake frame.
func (c *Controller) ShakeOffset() mgl32.Vec3 {
	return c.shakeOffset
}

// SetRand replaces the random source used for shake offsets.
func (c *Controller) SetRand(rng *rand.Rand) {
	if rng != nil {
		c.rng = rng
	}
}

// SetFOV sets the FOV transition target without changing aim or sprint state.
func (c *Controller) SetFOV(fov float32) {
	c.targetFOV = fov
}

// CurrentFOV returns the FOV the controller last pushed into the camera.
func (c *Controller) CurrentFOV() float32 {
	return c.currentFOV
}

// ProcessMouseScroll forwards a scroll delta to the camera zoom.
func (c *Controller) ProcessMouseScroll(yoffset float32) {
	if c.camera != nil && c.inputEnabled {
		c.camera.ProcessMouseScroll(yoffset)
	}
}

// SetInputEnabled toggles input processing. While disabled, Update is a no-op.
func (c *Controller) SetInputEnabled(enabled bool) {
	c.inputEnabled = enabled
}

// IsInputEnabled reports whether input processing is active.
func (c *Controller) IsInputEnabled() bool {
	return c.inputEnabled
}

// SetSmoothingEnabled toggles movement and rotation smoothing.
func (c *Controller) SetSmoothingEnabled(enabled bool) {
	c.smoothingEnabled = enabled
}

// IsSmoothingEnabled reports whether smoothing is active.
func (c *Controller) IsSmoothingEnabled() bool {
	return c.smoothingEnabled
}

// SetPosition moves the camera directly when one is attached.
func (c *Controller) SetPosition(position mgl32.Vec3) {
	if c.camera != nil {
		c.camera.SetPosition(position)
	}
}

// ResetMouseState re-arms the first-mouse guard. Hosts call this after
// toggling cursor capture so the cursor jump is not read as a look delta.
func (c *Controller) ResetMouseState() {
	c.firstMouse = true
}

// Reset restores the camera defaults and clears every piece of controller
// state except the mode and bindings.
func (c *Controller) Reset() {
	if c.camera != nil {
		c.camera.Reset()
	}

	c.aiming = false
	c.sprinting = false
	c.crouching = false
	c.velocitySmooth = mgl32.Vec3{}
	c.rotationSmooth = mgl32.Vec2{}
	c.currentFOV = c.settings.DefaultFOV
	c.targetFOV = c.settings.DefaultFOV
	c.ClearShake()
	c.firstMouse = true
	log.Printf("[CameraController] Reset")
}

// lerp blends a toward b by t
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerpVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
