// Package game provides the main loop, frame timing and the projectile
// helpers used by the demos.
package game

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/heinsteinh/agl-game-engine/internal/openglhelper"
	"github.com/heinsteinh/agl-game-engine/pkg/input"
)

// MaxDeltaTime caps the time step handed to update callbacks so a stall
// (window drag, breakpoint) does not produce one giant simulation step.
const MaxDeltaTime float32 = 1.0 / 20.0

// length of the rolling window used for the FPS and frame time averages
const fpsWindow = 1.0

// UpdateFunc runs game logic once per frame with the clamped delta time.
type UpdateFunc func(deltaTime float32)

// RenderFunc draws one frame.
type RenderFunc func()

// Game owns the window, the input snapshot and the frame timing, and drives
// the per-frame update/render callbacks.
type Game struct {
	window *openglhelper.Window
	input  *input.Input

	// Timing
	lastFrameTime float64
	deltaTime     float32
	totalTime     float32

	// Rolling FPS accounting
	frameCount   int
	windowTime   float32
	fps          float64
	averageDelta float32
}

// New creates the window and input system. The caller must have locked the
// OS thread before calling.
func New(width, height int, title string, vsync bool) (*Game, error) {
	window, err := openglhelper.NewWindow(width, height, title, vsync)
	if err != nil {
		return nil, err
	}

	g := &Game{
		window: window,
		input:  input.New(window.GLFWWindow()),
	}
	window.GLFWWindow().SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		window.OnResize(w, h)
	})
	return g, nil
}

// Run drives the main loop until the window closes or Stop is called.
// Escape closes the window. Either callback may be nil.
func (g *Game) Run(update UpdateFunc, render RenderFunc) {
	log.Printf("[Game] Starting main loop")
	g.lastFrameTime = glfw.GetTime()

	for !g.window.ShouldClose() {
		currentTime := glfw.GetTime()
		g.advanceTime(float32(currentTime - g.lastFrameTime))
		g.lastFrameTime = currentTime

		// Snapshot the previous frame's state before new events arrive so
		// the pressed/released edge queries stay meaningful.
		g.input.Update()
		g.window.PollEvents()

		if g.window.GetKeyState(glfw.KeyEscape) == glfw.Press {
			g.Stop()
		}

		if update != nil {
			update(g.deltaTime)
		}
		if render != nil {
			render()
		}

		g.window.SwapBuffers()
	}
	log.Printf("[Game] Main loop finished")
}

// Stop requests the main loop to exit after the current frame.
func (g *Game) Stop() {
	g.window.GLFWWindow().SetShouldClose(true)
}

// Close releases the window and terminates GLFW. Call after Run returns and
// after any GPU resources have been deleted.
func (g *Game) Close() {
	g.window.Close()
}

// advanceTime folds one raw frame delta into the timing state: update
// callbacks see the clamped step, the frame rate accounting the real one.
func (g *Game) advanceTime(rawDelta float32) {
	g.deltaTime = rawDelta
	if g.deltaTime > MaxDeltaTime {
		g.deltaTime = MaxDeltaTime
	}
	g.totalTime += g.deltaTime
	g.trackFrameRate(rawDelta)
}

// trackFrameRate folds the unclamped frame time into the rolling averages.
func (g *Game) trackFrameRate(rawDelta float32) {
	g.frameCount++
	g.windowTime += rawDelta
	if g.windowTime < fpsWindow {
		return
	}
	g.fps = float64(g.frameCount) / float64(g.windowTime)
	g.averageDelta = g.windowTime / float32(g.frameCount)
	g.frameCount = 0
	g.windowTime = 0
}

// Window returns the game window.
func (g *Game) Window() *openglhelper.Window {
	return g.window
}

// Input returns the input system.
func (g *Game) Input() *input.Input {
	return g.input
}

// DeltaTime returns the clamped delta of the current frame.
func (g *Game) DeltaTime() float32 {
	return g.deltaTime
}

// TotalTime returns the accumulated simulated time.
func (g *Game) TotalTime() float32 {
	return g.totalTime
}

// FPS returns the frame rate averaged over the last completed window.
func (g *Game) FPS() float64 {
	return g.fps
}

// AverageDelta returns the mean unclamped frame time over the last
// completed window.
func (g *Game) AverageDelta() float32 {
	return g.averageDelta
}
