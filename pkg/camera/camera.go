// Package camera provides a learnopengl-style Euler angle camera and a
// mode-based controller for driving it from player input.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement identifies a camera-relative movement direction.
type Movement int

const (
	MoveForward Movement = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
)

// Projection selects how the camera projects the scene.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera implements a 3D camera driven by Euler angles
type Camera struct {
	// Position and orientation
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	// Euler angles (degrees)
	yaw   float32
	pitch float32
	roll  float32

	// Motion options
	movementSpeed    float32
	mouseSensitivity float32

	// Projection parameters
	zoom           float32
	projectionType Projection
	aspectRatio    float32
	nearPlane      float32
	farPlane       float32
	orthoLeft      float32
	orthoRight     float32
	orthoBottom    float32
	orthoTop       float32
}

// NewCamera creates a camera at the given position and orientation.
func NewCamera(position, up mgl32.Vec3, yaw, pitch, roll float32) *Camera {
	c := &Camera{
		position:         position,
		worldUp:          up,
		front:            mgl32.Vec3{0, 0, -1}, // Looking along negative Z
		yaw:              yaw,
		pitch:            pitch,
		roll:             roll,
		movementSpeed:    DefaultSpeed,
		mouseSensitivity: DefaultSensitivity,
		zoom:             DefaultZoom,
		projectionType:   Perspective,
		aspectRatio:      DefaultAspect,
		nearPlane:        DefaultNear,
		farPlane:         DefaultFar,
		orthoLeft:        DefaultOrthoLeft,
		orthoRight:       DefaultOrthoRight,
		orthoBottom:      DefaultOrthoBottom,
		orthoTop:         DefaultOrthoTop,
	}
	c.updateCameraVectors()
	return c
}

// NewCameraWithScalars creates a camera from individual position and up components.
func NewCameraWithScalars(posX, posY, posZ, upX, upY, upZ, yaw, pitch, roll float32) *Camera {
	return NewCamera(mgl32.Vec3{posX, posY, posZ}, mgl32.Vec3{upX, upY, upZ}, yaw, pitch, roll)
}

// NewCameraWithDefaults creates a camera at the origin looking along negative Z.
func NewCameraWithDefaults() *Camera {
	return NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch, DefaultRoll)
}

// updateCameraVectors recalculates the basis vectors from the Euler angles
func (c *Camera) updateCameraVectors() {
	front := mgl32.Vec3{
		float32(math.Cos(float64(mgl32.DegToRad(c.yaw))) * math.Cos(float64(mgl32.DegToRad(c.pitch)))),
		float32(math.Sin(float64(mgl32.DegToRad(c.pitch)))),
		float32(math.Sin(float64(mgl32.DegToRad(c.yaw))) * math.Cos(float64(mgl32.DegToRad(c.pitch)))),
	}
	c.front = front.Normalize()

	// Re-derive right and up from scratch so drift never accumulates
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()

	if mgl32.Abs(c.roll) > rollEpsilon {
		rollRot := mgl32.QuatRotate(mgl32.DegToRad(c.roll), c.front)
		c.right = rollRot.Rotate(c.right)
		c.up = rollRot.Rotate(c.up)
	}
}

// ViewMatrix returns the current view matrix
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns the projection matrix for the active projection type
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.projectionType == Orthographic {
		return mgl32.Ortho(c.orthoLeft, c.orthoRight, c.orthoBottom, c.orthoTop, c.nearPlane, c.farPlane)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), c.aspectRatio, c.nearPlane, c.farPlane)
}

// ViewProjectionMatrix returns projection * view
func (c *Camera) ViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// SetPerspective switches to a perspective projection with the default clip planes.
func (c *Camera) SetPerspective(fov, aspectRatio float32) {
	c.SetPerspectiveWithPlanes(fov, aspectRatio, DefaultNear, DefaultFar)
}

// SetPerspectiveWithPlanes switches to a perspective projection with explicit clip planes.
func (c *Camera) SetPerspectiveWithPlanes(fov, aspectRatio, near, far float32) {
	c.projectionType = Perspective
	c.zoom = fov
	c.aspectRatio = aspectRatio
	c.nearPlane = near
	c.farPlane = far
}

// SetOrthographic switches to an orthographic projection. The conventional
// volume is DefaultOrtho* with near -1 and far 1.
func (c *Camera) SetOrthographic(left, right, bottom, top, near, far float32) {
	c.projectionType = Orthographic
	c.orthoLeft = left
	c.orthoRight = right
	c.orthoBottom = bottom
	c.orthoTop = top
	c.nearPlane = near
	c.farPlane = far
}

// ProcessKeyboard moves the camera in a single direction for one frame
func (c *Camera) ProcessKeyboard(direction Movement, deltaTime float32) {
	velocity := c.movementSpeed * deltaTime
	switch direction {
	case MoveForward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case MoveBackward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case MoveLeft:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case MoveRight:
		c.position = c.position.Add(c.right.Mul(velocity))
	case MoveUp:
		c.position = c.position.Add(c.worldUp.Mul(velocity))
	case MoveDown:
		c.position = c.position.Sub(c.worldUp.Mul(velocity))
	}
}

// ProcessMouseMovement applies a mouse delta to yaw and pitch
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.mouseSensitivity
	yoffset *= c.mouseSensitivity

	c.yaw += xoffset
	c.pitch += yoffset

	// Constrain pitch to avoid flipping past the poles
	if constrainPitch {
		if c.pitch > MaxPitch {
			c.pitch = MaxPitch
		}
		if c.pitch < MinPitch {
			c.pitch = MinPitch
		}
	}

	c.updateCameraVectors()
}

// ProcessMouseScroll zooms the camera in response to the scroll wheel
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.zoom -= yoffset
	if c.zoom < MinZoom {
		c.zoom = MinZoom
	}
	if c.zoom > MaxZoom {
		c.zoom = MaxZoom
	}
}

// SetPosition sets the camera position
func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.position = position
}

// SetRotation sets the camera rotation angles, clamping pitch
func (c *Camera) SetRotation(yaw, pitch, roll float32) {
	c.yaw = yaw
	if pitch > MaxPitch {
		pitch = MaxPitch
	}
	if pitch < MinPitch {
		pitch = MinPitch
	}
	c.pitch = pitch
	c.roll = roll
	c.updateCameraVectors()
}

// LookAt orients the camera toward a world-space target, discarding any
// roll. A target at the camera position leaves the orientation unchanged.
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.position)
	if direction.Len() < 1e-6 {
		return
	}
	direction = direction.Normalize()

	c.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(direction.Z()), float64(direction.X()))))
	pitch := mgl32.RadToDeg(float32(math.Asin(float64(direction.Y()))))
	if pitch > MaxPitch {
		pitch = MaxPitch
	}
	if pitch < MinPitch {
		pitch = MinPitch
	}
	c.pitch = pitch
	c.roll = 0

	c.updateCameraVectors()
}

// Reset restores position, orientation, motion options and zoom to their
// defaults. The projection type and clip planes are left untouched.
func (c *Camera) Reset() {
	c.position = mgl32.Vec3{0, 0, 0}
	c.worldUp = mgl32.Vec3{0, 1, 0}
	c.yaw = DefaultYaw
	c.pitch = DefaultPitch
	c.roll = DefaultRoll
	c.movementSpeed = DefaultSpeed
	c.mouseSensitivity = DefaultSensitivity
	c.zoom = DefaultZoom
	c.updateCameraVectors()
}

// UpdateAspectRatio updates the projection aspect ratio, typically on resize
func (c *Camera) UpdateAspectRatio(aspectRatio float32) {
	c.aspectRatio = aspectRatio
}

// ScreenToWorldRay converts a screen coordinate into a normalized world-space
// ray direction originating at the camera position.
func (c *Camera) ScreenToWorldRay(screenX, screenY float32, screenWidth, screenHeight int) mgl32.Vec3 {
	// Screen to NDC, flipping Y
	x := 2*screenX/float32(screenWidth) - 1
	y := 1 - 2*screenY/float32(screenHeight)

	rayClip := mgl32.Vec4{x, y, -1, 1}

	rayEye := c.ProjectionMatrix().Inv().Mul4x1(rayClip)
	rayEye = mgl32.Vec4{rayEye.X(), rayEye.Y(), -1, 0} // Forward direction, not a point

	rayWorld := c.ViewMatrix().Inv().Mul4x1(rayEye)
	return rayWorld.Vec3().Normalize()
}

// IsInView reports whether a sphere is at least partially inside the view
// frustum. The test runs in NDC space with a w-scaled tolerance, so it is
// approximate: points behind the camera near the projection plane can pass.
func (c *Camera) IsInView(point mgl32.Vec3, radius float32) bool {
	clip := c.ViewProjectionMatrix().Mul4x1(point.Vec4(1))

	w := mgl32.Abs(clip.W())
	if w < 1 {
		w = 1
	}
	tolerance := radius / w

	ndc := clip.Vec3().Mul(1 / clip.W())
	return ndc.X() >= -1-tolerance && ndc.X() <= 1+tolerance &&
		ndc.Y() >= -1-tolerance && ndc.Y() <= 1+tolerance &&
		ndc.Z() >= -1-tolerance && ndc.Z() <= 1+tolerance
}

// Position returns the camera position
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// Front returns the camera's forward direction
func (c *Camera) Front() mgl32.Vec3 {
	return c.front
}

// Right returns the camera's right direction
func (c *Camera) Right() mgl32.Vec3 {
	return c.right
}

// Up returns the camera's up direction
func (c *Camera) Up() mgl32.Vec3 {
	return c.up
}

// Yaw returns the yaw angle in degrees
func (c *Camera) Yaw() float32 {
	return c.yaw
}

// Pitch returns the pitch angle in degrees
func (c *Camera) Pitch() float32 {
	return c.pitch
}

// Roll returns the roll angle in degrees
func (c *Camera) Roll() float32 {
	return c.roll
}

// Zoom returns the field of view in degrees
func (c *Camera) Zoom() float32 {
	return c.zoom
}

// ProjectionType returns the active projection type
func (c *Camera) ProjectionType() Projection {
	return c.projectionType
}

// AspectRatio returns the projection aspect ratio
func (c *Camera) AspectRatio() float32 {
	return c.aspectRatio
}

// NearPlane returns the near clip distance
func (c *Camera) NearPlane() float32 {
	return c.nearPlane
}

// FarPlane returns the far clip distance
func (c *Camera) FarPlane() float32 {
	return c.farPlane
}

// MovementSpeed returns the keyboard movement speed
func (c *Camera) MovementSpeed() float32 {
	return c.movementSpeed
}

// SetMovementSpeed sets the keyboard movement speed
func (c *Camera) SetMovementSpeed(speed float32) {
	c.movementSpeed = speed
}

// MouseSensitivity returns the mouse look sensitivity
func (c *Camera) MouseSensitivity() float32 {
	return c.mouseSensitivity
}

// SetMouseSensitivity sets the mouse look sensitivity
func (c *Camera) SetMouseSensitivity(sensitivity float32) {
	c.mouseSensitivity = sensitivity
}
