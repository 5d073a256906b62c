// Command camerademo is an interactive shooter-style demo of the camera
// system: free movement with sprint/crouch/aim, four camera modes, FOV
// transitions, camera shake and projectile fire through the crosshair.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/heinsteinh/agl-game-engine/internal/openglhelper"
	"github.com/heinsteinh/agl-game-engine/pkg/camera"
	"github.com/heinsteinh/agl-game-engine/pkg/config"
	"github.com/heinsteinh/agl-game-engine/pkg/game"
)

const (
	windowTitle = "AGL Shooter Camera Demo"
	appName     = "agl-camerademo"
)

// sceneCenter is the point the third-person and fixed modes track.
var sceneCenter = mgl32.Vec3{0, 1, 0}

const vertexShaderSource = `#version 460 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 model;
uniform mat4 viewProjection;

out vec3 vNormal;

void main() {
	gl_Position = viewProjection * model * vec4(aPos, 1.0);
	vNormal = mat3(model) * aNormal;
}
`

const fragmentShaderSource = `#version 460 core
in vec3 vNormal;

uniform vec3 objectColor;
uniform float ambientStrength;

out vec4 fragColor;

void main() {
	vec3 lightDir = normalize(vec3(0.4, 1.0, 0.6));
	float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
	fragColor = vec4(objectColor * (ambientStrength + (1.0 - ambientStrength) * diffuse), 1.0);
}
`

func init() {
	// OpenGL functions must be called from the thread that owns the context
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	vsync := flag.Bool("vsync", true, "Enable vsync")
	configPath := flag.String("config", "", "YAML settings file, watched for live reload")
	flag.Parse()

	g, err := game.New(*width, *height, windowTitle, *vsync)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	defer g.Close()

	d, err := newDemo(g, *configPath)
	if err != nil {
		log.Fatalf("Failed to initialize demo: %v", err)
	}
	defer d.close()

	logControls()
	g.Run(d.update, d.render)
}

// demo wires the camera controller, the projectile system and a small cube
// scene into the game loop.
type demo struct {
	game       *game.Game
	camera     *camera.Camera
	controller *camera.Controller

	projectiles *game.ProjectileSystem
	shooter     *game.Shooter

	shader *openglhelper.Shader
	cube   *openglhelper.Mesh

	watcher *config.Watcher

	rotation   float32
	titleTimer float32
}

func newDemo(g *game.Game, configPath string) (*demo, error) {
	shader, err := openglhelper.NewShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	shader.Use()
	shader.SetFloat("ambientStrength", 0.35)

	cam := camera.NewCamera(mgl32.Vec3{0, 2, 5}, mgl32.Vec3{0, 1, 0}, -90, 0, 0)
	cam.SetPerspective(75, g.Window().AspectRatio())

	ctl := camera.NewController(cam)
	ctl.Initialize(g.Input())

	d := &demo{
		game:        g,
		camera:      cam,
		controller:  ctl,
		projectiles: game.NewProjectileSystem(),
		shader:      shader,
		cube:        openglhelper.NewCube(shader),
	}
	d.shooter = game.NewShooter(d.projectiles)

	ctl.SetSettings(d.loadSettings(configPath))

	g.Window().SetMouseCaptured(true)
	return d, nil
}

// demoSettings returns the shooter tuning: fast movement, snappy FOV
// transitions and a little smoothing for fluid motion.
func demoSettings() camera.Settings {
	s := camera.DefaultSettings()
	s.MovementSpeed = 8
	s.CrouchMultiplier = 0.4
	s.MouseSensitivity = 0.15
	s.MovementSmoothing = 0.2
	s.FOVTransitionSpeed = 8
	return s
}

// loadSettings resolves the controller tuning. An explicit settings file wins
// and is watched for live reload; otherwise the per-user store carries the
// tuning across runs, seeded with the demo defaults on first start.
func (d *demo) loadSettings(configPath string) camera.Settings {
	if configPath != "" {
		settings, err := config.LoadFile(configPath)
		if err != nil {
			log.Printf("[Demo] %v, using built-in tuning", err)
			settings = demoSettings()
		}
		watcher, err := config.NewWatcher(configPath)
		if err != nil {
			log.Printf("[Demo] Live reload unavailable: %v", err)
		} else {
			d.watcher = watcher
		}
		return settings
	}

	store := config.NewManager(appName)
	if store.HasStored() {
		return store.Settings()
	}
	settings := demoSettings()
	if err := store.Save(settings); err != nil {
		log.Printf("[Demo] Failed to store settings: %v", err)
	}
	return settings
}

func (d *demo) update(deltaTime float32) {
	d.applySettingsReload()

	d.rotation += deltaTime * 30 // Scene props spin at 30 degrees per second

	d.controller.Update(deltaTime)
	d.handleInput()

	d.shooter.Update(deltaTime)
	d.projectiles.Update(deltaTime)

	// Track window resizes and surface the frame rate once a second
	d.camera.UpdateAspectRatio(d.game.Window().AspectRatio())
	d.titleTimer += deltaTime
	if d.titleTimer >= 1 {
		d.titleTimer = 0
		d.game.Window().SetTitle(fmt.Sprintf("%s - %.0f FPS", windowTitle, d.game.FPS()))
	}
}

// applySettingsReload drains the settings watcher without blocking the frame.
func (d *demo) applySettingsReload() {
	if d.watcher == nil {
		return
	}
	select {
	case path := <-d.watcher.Events:
		settings, err := config.LoadFile(path)
		if err != nil {
			log.Printf("[Demo] Settings reload failed: %v", err)
			return
		}
		d.controller.SetSettings(settings)
		log.Printf("[Demo] Settings reloaded from %s", path)
	case err := <-d.watcher.Errors:
		log.Printf("[Demo] Settings watcher: %v", err)
	default:
	}
}

func (d *demo) handleInput() {
	in := d.game.Input()

	if in.IsKeyPressed(glfw.Key1) {
		d.controller.SetMode(camera.FirstPerson)
	}
	if in.IsKeyPressed(glfw.Key2) {
		d.controller.SetMode(camera.ThirdPerson)
		d.controller.SetTarget(sceneCenter)
	}
	if in.IsKeyPressed(glfw.Key3) {
		d.controller.SetMode(camera.Spectator)
	}
	if in.IsKeyPressed(glfw.Key4) {
		d.controller.SetMode(camera.Fixed)
		d.controller.SetTarget(sceneCenter)
	}

	if in.IsKeyPressed(glfw.KeyX) {
		d.controller.AddShake(0.5, 1.0)
	}

	if in.IsKeyPressed(glfw.KeyC) {
		win := d.game.Window()
		win.ToggleMouseCaptured()
		// Camera control only while the cursor is captured
		d.controller.SetInputEnabled(win.IsMouseCaptured())
		// Swallow the cursor jump the capture change produces
		d.controller.ResetMouseState()
	}

	if _, scrollY := in.ScrollOffset(); scrollY != 0 {
		d.controller.ProcessMouseScroll(float32(scrollY))
	}

	if in.IsMouseButtonHeld(glfw.MouseButtonLeft) {
		d.fire()
	}
}

// fire shoots through the crosshair at the centre of the screen.
func (d *demo) fire() {
	width, height := d.game.Window().Size()
	ray := d.camera.ScreenToWorldRay(float32(width)/2, float32(height)/2, width, height)
	// Spawn slightly ahead of the eye so the shot does not clip the near plane
	d.shooter.Fire(d.camera.Position().Add(ray.Mul(0.5)), ray)
}

func (d *demo) render() {
	d.game.Window().Clear(mgl32.Vec4{0.5, 0.7, 1.0, 1.0})

	d.shader.Use()
	d.shader.SetMat4("viewProjection", d.camera.ViewProjectionMatrix())

	// Ground slab
	ground := mgl32.Translate3D(0, -0.05, 0).Mul4(mgl32.Scale3D(40, 0.1, 40))
	d.drawCube(ground, mgl32.Vec3{0.3, 0.6, 0.3})

	// Rotating reference grid, culled against the view frustum
	for x := -10; x <= 10; x += 5 {
		for z := -10; z <= 10; z += 5 {
			if x == 0 && z == 0 {
				continue
			}
			center := mgl32.Vec3{float32(x), 1, float32(z)}
			if !d.camera.IsInView(center, 1) {
				continue
			}
			model := mgl32.Translate3D(center.X(), center.Y(), center.Z()).
				Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(d.rotation)))
			distance := mgl32.Vec2{center.X(), center.Z()}.Len()
			d.drawCube(model, mgl32.Vec3{1 - distance/15, 0.5, distance / 15})
		}
	}

	// Golden tower marking the scene centre
	tower := mgl32.Translate3D(0, 2, 0).
		Mul4(mgl32.Scale3D(0.5, 4, 0.5)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(d.rotation * 2)))
	d.drawCube(tower, mgl32.Vec3{1, 0.8, 0.2})

	// Projectiles in flight
	for _, p := range d.projectiles.Active() {
		if !d.camera.IsInView(p.Position, 0.5) {
			continue
		}
		model := mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).
			Mul4(mgl32.HomogRotate3DY(p.Rotation)).
			Mul4(mgl32.Scale3D(0.2, 0.2, 0.2))
		d.drawCube(model, mgl32.Vec3{1, 0.3, 0.1})
	}
}

func (d *demo) drawCube(model mgl32.Mat4, color mgl32.Vec3) {
	d.shader.SetMat4("model", model)
	d.shader.SetVec3("objectColor", color)
	d.cube.Draw()
}

func (d *demo) close() {
	if d.watcher != nil {
		d.watcher.Close()
	}
	d.cube.Delete()
	d.shader.Delete()
}

func logControls() {
	log.Println("==== SHOOTER CAMERA CONTROLS ====")
	log.Println("Move: WASD | Up: Space | Crouch: Left Ctrl | Sprint: Left Shift")
	log.Println("Look: mouse | Aim: right button | Fire: left button | Zoom: wheel")
	log.Println("Modes: 1 first person, 2 third person, 3 spectator, 4 fixed")
	log.Println("X camera shake | C toggle cursor capture | Esc quit")
	log.Println("=================================")
}
