// Package input tracks keyboard, mouse button, cursor and scroll state over a
// GLFW window and answers held/pressed/released queries each frame.
package input

import (
	"maps"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input collects GLFW events and exposes per-frame state queries. It is
// single threaded: the host calls Update once per frame, before polling
// events, so edge queries compare the new events against the previous frame.
type Input struct {
	keyStates         map[glfw.Key]glfw.Action
	previousKeyStates map[glfw.Key]glfw.Action

	buttonStates         map[glfw.MouseButton]glfw.Action
	previousButtonStates map[glfw.MouseButton]glfw.Action

	mouseX, mouseY                 float64
	previousMouseX, previousMouseY float64
	mouseDeltaX, mouseDeltaY       float64

	scrollX, scrollY float64
}

func newInput() *Input {
	return &Input{
		keyStates:            make(map[glfw.Key]glfw.Action),
		previousKeyStates:    make(map[glfw.Key]glfw.Action),
		buttonStates:         make(map[glfw.MouseButton]glfw.Action),
		previousButtonStates: make(map[glfw.MouseButton]glfw.Action),
	}
}

// New wires an input tracker into the window's key, mouse button, cursor and
// scroll callbacks.
func New(window *glfw.Window) *Input {
	in := newInput()

	// Seed the cursor so the first delta is not a jump from (0,0)
	in.mouseX, in.mouseY = window.GetCursorPos()
	in.previousMouseX, in.previousMouseY = in.mouseX, in.mouseY

	window.SetKeyCallback(in.keyCallback)
	window.SetMouseButtonCallback(in.mouseButtonCallback)
	window.SetCursorPosCallback(in.cursorPosCallback)
	window.SetScrollCallback(in.scrollCallback)

	return in
}

// Update snapshots the current state as the previous frame, computes the
// mouse delta and resets the one-frame scroll offset. Call once per frame
// before glfw.PollEvents.
func (in *Input) Update() {
	clear(in.previousKeyStates)
	maps.Copy(in.previousKeyStates, in.keyStates)
	clear(in.previousButtonStates)
	maps.Copy(in.previousButtonStates, in.buttonStates)

	in.mouseDeltaX = in.mouseX - in.previousMouseX
	in.mouseDeltaY = in.mouseY - in.previousMouseY
	in.previousMouseX = in.mouseX
	in.previousMouseY = in.mouseY

	in.scrollX = 0
	in.scrollY = 0
}

func (in *Input) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	in.keyStates[key] = action
}

func (in *Input) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	in.buttonStates[button] = action
}

func (in *Input) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	in.mouseX = xpos
	in.mouseY = ypos
}

func (in *Input) scrollCallback(_ *glfw.Window, xoffset, yoffset float64) {
	in.scrollX = xoffset
	in.scrollY = yoffset
}

// IsKeyHeld reports whether the key is currently down, including key repeat.
func (in *Input) IsKeyHeld(key glfw.Key) bool {
	state := in.keyStates[key]
	return state == glfw.Press || state == glfw.Repeat
}

// IsKeyPressed reports whether the key went down this frame.
func (in *Input) IsKeyPressed(key glfw.Key) bool {
	return in.keyStates[key] == glfw.Press && in.previousKeyStates[key] != glfw.Press
}

// IsKeyReleased reports whether the key came up this frame.
func (in *Input) IsKeyReleased(key glfw.Key) bool {
	return in.keyStates[key] == glfw.Release && in.previousKeyStates[key] != glfw.Release
}

// IsMouseButtonHeld reports whether the button is currently down.
func (in *Input) IsMouseButtonHeld(button glfw.MouseButton) bool {
	return in.buttonStates[button] == glfw.Press
}

// IsMouseButtonPressed reports whether the button went down this frame.
func (in *Input) IsMouseButtonPressed(button glfw.MouseButton) bool {
	return in.buttonStates[button] == glfw.Press && in.previousButtonStates[button] != glfw.Press
}

// IsMouseButtonReleased reports whether the button came up this frame.
func (in *Input) IsMouseButtonReleased(button glfw.MouseButton) bool {
	return in.buttonStates[button] == glfw.Release && in.previousButtonStates[button] != glfw.Release
}

// MousePosition returns the cursor position in screen coordinates.
func (in *Input) MousePosition() (x, y float64) {
	return in.mouseX, in.mouseY
}

// MouseDelta returns the cursor movement between the last two frames.
func (in *Input) MouseDelta() (dx, dy float64) {
	return in.mouseDeltaX, in.mouseDeltaY
}

// ScrollOffset returns the scroll wheel movement for the current frame.
func (in *Input) ScrollOffset() (x, y float64) {
	return in.scrollX, in.scrollY
}
