package camera

import (
	"math/rand"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeInput scripts key, button and cursor state for controller tests.
type fakeInput struct {
	held    map[glfw.Key]bool
	buttons map[glfw.MouseButton]bool
	mouseX  float64
	mouseY  float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		held:    make(map[glfw.Key]bool),
		buttons: make(map[glfw.MouseButton]bool),
	}
}

func (f *fakeInput) IsKeyHeld(key glfw.Key) bool                  { return f.held[key] }
func (f *fakeInput) IsKeyPressed(key glfw.Key) bool               { return false }
func (f *fakeInput) IsMouseButtonHeld(b glfw.MouseButton) bool    { return f.buttons[b] }
func (f *fakeInput) IsMouseButtonPressed(b glfw.MouseButton) bool { return false }
func (f *fakeInput) MousePosition() (x, y float64)                { return f.mouseX, f.mouseY }

func newTestController() (*Controller, *fakeInput) {
	cam := NewCameraWithDefaults()
	ctl := NewController(cam)
	in := newFakeInput()
	ctl.Initialize(in)
	return ctl, in
}

// TestInitializePushesDefaultFOV verifies Initialize applies the default FOV
func TestInitializePushesDefaultFOV(t *testing.T) {
	cam := NewCameraWithDefaults()
	if cam.Zoom() != DefaultZoom {
		t.Fatalf("Expected initial zoom %v, got %v", float32(DefaultZoom), cam.Zoom())
	}

	ctl := NewController(cam)
	ctl.Initialize(newFakeInput())

	if cam.Zoom() != ctl.Settings().DefaultFOV {
		t.Errorf("Expected zoom %v after Initialize, got %v", ctl.Settings().DefaultFOV, cam.Zoom())
	}
	if ctl.CurrentFOV() != ctl.Settings().DefaultFOV {
		t.Errorf("Expected current FOV %v, got %v", ctl.Settings().DefaultFOV, ctl.CurrentFOV())
	}
}

// TestUpdateRequiresCameraAndInput verifies Update is a no-op when detached
func TestUpdateRequiresCameraAndInput(t *testing.T) {
	ctl := NewController(nil)
	ctl.Update(0.016) // No camera and no input: must not panic

	cam := NewCameraWithDefaults()
	ctl.SetCamera(cam)
	ctl.Update(0.016) // Still no input

	if !vecAlmostEqual(cam.Position(), mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Errorf("Expected camera untouched, got %v", cam.Position())
	}
}

// TestInputDisabledFreezesController verifies nothing moves while disabled
func TestInputDisabledFreezesController(t *testing.T) {
	ctl, in := newTestController()
	in.held[glfw.KeyW] = true

	ctl.SetInputEnabled(false)
	ctl.Update(1.0)

	if !vecAlmostEqual(ctl.Camera().Position(), mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Errorf("Expected no movement while input disabled, got %v", ctl.Camera().Position())
	}

	ctl.SetInputEnabled(true)
	ctl.Update(1.0)

	if vecAlmostEqual(ctl.Camera().Position(), mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Error("Expected movement after re-enabling input")
	}
}

// TestMovementSpeed verifies one second of forward movement at settings speed
func TestMovementSpeed(t *testing.T) {
	ctl, in := newTestController()
	ctl.SetSmoothingEnabled(false)
	in.held[glfw.KeyW] = true

	ctl.Update(1.0)

	want := mgl32.Vec3{0, 0, -ctl.Settings().MovementSpeed}
	if !vecAlmostEqual(ctl.Camera().Position(), want, 1e-4) {
		t.Errorf("Expected position %v, got %v", want, ctl.Camera().Position())
	}
}

// TestDiagonalMovementNormalized verifies diagonals are not faster
func TestDiagonalMovementNormalized(t *testing.T) {
	ctl, in := newTestController()
	ctl.SetSmoothingEnabled(false)
	in.held[glfw.KeyW] = true
	in.held[glfw.KeyD] = true

	ctl.Update(1.0)

	speed := ctl.Settings().MovementSpeed
	if !almostEqual(ctl.Camera().Position().Len(), speed, 1e-3) {
		t.Errorf("Expected diagonal distance %v, got %v", speed, ctl.Camera().Position().Len())
	}
}

// TestSpeedMultipliers verifies sprint and crouch scale the movement speed
func TestSpeedMultipliers(t *testing.T) {
	cases := []struct {
		name   string
		sprint bool
		crouch bool
		factor float32
	}{
		{"normal", false, false, 1},
		{"sprint", true, false, 2},
		{"crouch", false, true, 0.5},
		{"sprint_and_crouch", true, true, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctl, in := newTestController()
			ctl.SetSmoothingEnabled(false)
			in.held[glfw.KeyW] = true
			in.held[glfw.KeyLeftShift] = tc.sprint
			in.held[glfw.KeyLeftControl] = tc.crouch

			ctl.Update(1.0)

			want := ctl.Settings().MovementSpeed * tc.factor
			if !almostEqual(ctl.Camera().Position().Len(), want, 1e-3) {
				t.Errorf("Expected distance %v, got %v", want, ctl.Camera().Position().Len())
			}
			if ctl.IsSprinting() != tc.sprint || ctl.IsCrouching() != tc.crouch {
				t.Errorf("Flag mismatch: sprinting=%v crouching=%v", ctl.IsSprinting(), ctl.IsCrouching())
			}
		})
	}
}

// TestMovementSmoothing verifies the EMA ramps velocity in instead of snapping
func TestMovementSmoothing(t *testing.T) {
	ctl, in := newTestController()
	in.held[glfw.KeyW] = true

	ctl.Update(1.0)

	full := ctl.Settings().MovementSpeed
	smoothed := ctl.Camera().Position().Len()
	if smoothed >= full {
		t.Errorf("Smoothed first frame should lag the raw speed: %v >= %v", smoothed, full)
	}
	want := full * ctl.Settings().MovementSmoothing
	if !almostEqual(smoothed, want, 1e-3) {
		t.Errorf("Expected first smoothed step %v, got %v", want, smoothed)
	}
}

// TestFirstMouseGuard verifies the first cursor sample produces no rotation
func TestFirstMouseGuard(t *testing.T) {
	ctl, in := newTestController()
	ctl.SetSmoothingEnabled(false)
	in.mouseX, in.mouseY = 100, 100

	ctl.Update(0.016)
	if ctl.Camera().Yaw() != DefaultYaw {
		t.Errorf("First sample must not rotate, yaw=%v", ctl.Camera().Yaw())
	}

	in.mouseX = 110
	ctl.Update(0.016)

	// 10px, controller sensitivity 0.1, camera sensitivity 0.1
	if !almostEqual(ctl.Camera().Yaw(), DefaultYaw+0.1, 1e-4) {
		t.Errorf("Expected yaw %v, got %v", DefaultYaw+0.1, ctl.Camera().Yaw())
	}
}

// TestResetMouseState verifies a cursor jump after re-arming is swallowed
func TestResetMouseState(t *testing.T) {
	ctl, in := newTestController()
	ctl.SetSmoothingEnabled(false)
	in.mouseX, in.mouseY = 100, 100
	ctl.Update(0.016)

	ctl.ResetMouseState()
	in.mouseX, in.mouseY = 900, 700
	ctl.Update(0.016)

	if ctl.Camera().Yaw() != DefaultYaw || ctl.Camera().Pitch() != DefaultPitch {
		t.Errorf("Cursor jump leaked into rotation: yaw=%v pitch=%v", ctl.Camera().Yaw(), ctl.Camera().Pitch())
	}
}

// TestInvertY verifies the vertical axis flips when requested
func TestInvertY(t *testing.T) {
	ctl, in := newTestController()
	ctl.SetSmoothingEnabled(false)
	settings := ctl.Settings()
	settings.InvertY = true
	ctl.SetSettings(settings)

	in.mouseX, in.mouseY = 100, 100
	ctl.Update(0.016)

	in.mouseY = 90 // Mouse up
	ctl.Update(0.016)

	if !almostEqual(ctl.Camera().Pitch(), -0.1, 1e-4) {
		t.Errorf("Expected inverted pitch -0.1, got %v", ctl.Camera().Pitch())
	}
}

// TestSettingsPitchBounds verifies tighter settings limits are enforced
func TestSettingsPitchBounds(t *testing.T) {
	ctl, in := newTestController()
	ctl.SetSmoothingEnabled(false)
	settings := ctl.Settings()
	settings.MinPitch = -30
	settings.MaxPitch = 30
	ctl.SetSettings(settings)

	in.mouseX, in.mouseY = 0, 0
	ctl.Update(0.016)

	in.mouseY = -100000 // Far up
	ctl.Update(0.016)
	if ctl.Camera().Pitch() != 30 {
		t.Errorf("Expected pitch capped at 30, got %v", ctl.Camera().Pitch())
	}

	in.mouseY = 100000 // Far down
	ctl.Update(0.016)
	if ctl.Camera().Pitch() != -30 {
		t.Errorf("Expected pitch capped at -30, got %v", ctl.Camera().Pitch())
	}
}

// TestFOVTransitionAim verifies monotonic convergence toward the aim FOV
func TestFOVTransitionAim(t *testing.T) {
	ctl, in := newTestController()
	in.buttons[glfw.MouseButtonRight] = true

	aimFOV := ctl.Settings().AimFOV
	prev := ctl.CurrentFOV()
	for i := 0; i < 300; i++ {
		ctl.Update(1.0 / 60.0)

		current := ctl.CurrentFOV()
		if current > prev+1e-4 {
			t.Fatalf("FOV rose during aim-in: %v -> %v", prev, current)
		}
		if current < aimFOV-1e-3 {
			t.Fatalf("FOV overshot below target: %v < %v", current, aimFOV)
		}
		prev = current
	}

	if !almostEqual(ctl.CurrentFOV(), aimFOV, 0.2) {
		t.Errorf("Expected FOV near %v, got %v", aimFOV, ctl.CurrentFOV())
	}
	if !ctl.IsAiming() {
		t.Error("Expected aiming state while button held")
	}
	if ctl.Camera().Zoom() != ctl.CurrentFOV() {
		t.Errorf("Camera zoom %v out of sync with controller FOV %v", ctl.Camera().Zoom(), ctl.CurrentFOV())
	}
}

// TestFOVAimBeatsSprint verifies the aim FOV wins while both are engaged
func TestFOVAimBeatsSprint(t *testing.T) {
	ctl, in := newTestController()
	in.held[glfw.KeyLeftShift] = true
	in.buttons[glfw.MouseButtonRight] = true

	for i := 0; i < 300; i++ {
		ctl.Update(1.0 / 60.0)
	}
	if !almostEqual(ctl.CurrentFOV(), ctl.Settings().AimFOV, 0.2) {
		t.Errorf("Expected aim FOV %v while sprinting, got %v", ctl.Settings().AimFOV, ctl.CurrentFOV())
	}

	// Releasing aim while still sprinting moves toward the sprint FOV
	in.buttons[glfw.MouseButtonRight] = false
	for i := 0; i < 300; i++ {
		ctl.Update(1.0 / 60.0)
	}
	if !almostEqual(ctl.CurrentFOV(), ctl.Settings().SprintFOV, 0.2) {
		t.Errorf("Expected sprint FOV %v after aim release, got %v", ctl.Settings().SprintFOV, ctl.CurrentFOV())
	}
}

// TestShakeDecaysToZero verifies shake state is fully cleared after expiry
func TestShakeDecaysToZero(t *testing.T) {
	ctl, _ := newTestController()
	settings := ctl.Settings()
	settings.ShakeDamping = 0 // Expiry driven purely by the timer
	ctl.SetSettings(settings)
	ctl.SetRand(rand.New(rand.NewSource(42)))

	ctl.AddShake(0.5, 1.0)
	ctl.Update(0.1)

	if ctl.ShakeOffset().Len() == 0 {
		t.Error("Expected a non-zero offset while the shake is active")
	}

	for i := 0; i < 15; i++ {
		ctl.Update(0.1)
	}

	if ctl.ShakeOffset() != (mgl32.Vec3{}) {
		t.Errorf("Expected zero offset after expiry, got %v", ctl.ShakeOffset())
	}

	// A settled controller leaves the camera alone
	pos := ctl.Camera().Position()
	ctl.Update(0.1)
	if !vecAlmostEqual(ctl.Camera().Position(), pos, 1e-6) {
		t.Errorf("Expected stable position after shake expiry, got %v", ctl.Camera().Position())
	}
}

// TestShakeDeterministicWithSeed verifies an injected source reproduces shakes
func TestShakeDeterministicWithSeed(t *testing.T) {
	run := func() []mgl32.Vec3 {
		ctl, _ := newTestController()
		ctl.SetRand(rand.New(rand.NewSource(7)))
		ctl.AddShake(1.0, 1.0)

		offsets := make([]mgl32.Vec3, 0, 8)
		for i := 0; i < 8; i++ {
			ctl.Update(0.05)
			offsets = append(offsets, ctl.ShakeOffset())
		}
		return offsets
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Offset %d differs between identical seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

// TestShakeExtendsNotStacks verifies overlapping shakes take the maximum
func TestShakeExtendsNotStacks(t *testing.T) {
	ctl, _ := newTestController()

	ctl.AddShake(0.5, 1.0)
	ctl.AddShake(0.2, 2.0) // Weaker but longer

	if ctl.shakeIntensity != 0.5 {
		t.Errorf("Expected intensity 0.5, got %v", ctl.shakeIntensity)
	}
	if ctl.shakeDuration != 2.0 || ctl.shakeTimer != 2.0 {
		t.Errorf("Expected duration and timer 2.0, got %v and %v", ctl.shakeDuration, ctl.shakeTimer)
	}
}

// TestClearShake verifies an active shake can be cancelled immediately
func TestClearShake(t *testing.T) {
	ctl, _ := newTestController()
	ctl.AddShake(1.0, 5.0)
	ctl.Update(0.016)

	ctl.ClearShake()

	if ctl.ShakeOffset() != (mgl32.Vec3{}) {
		t.Errorf("Expected zero offset after ClearShake, got %v", ctl.ShakeOffset())
	}
	pos := ctl.Camera().Position()
	ctl.Update(0.016)
	if !vecAlmostEqual(ctl.Camera().Position(), pos, 1e-6) {
		t.Error("Expected no further shake movement after ClearShake")
	}
}

// TestSetModeResetsSmoothing verifies accumulators clear on a mode change
func TestSetModeResetsSmoothing(t *testing.T) {
	ctl, in := newTestController()
	in.held[glfw.KeyW] = true
	for i := 0; i < 10; i++ {
		ctl.Update(0.1)
	}

	in.held[glfw.KeyW] = false
	ctl.SetMode(Spectator)

	pos := ctl.Camera().Position()
	ctl.Update(0.1)

	if ctl.Camera().Position() != pos {
		t.Errorf("Residual velocity survived the mode switch: %v -> %v", pos, ctl.Camera().Position())
	}
	if ctl.Mode() != Spectator {
		t.Errorf("Expected Spectator mode, got %v", ctl.Mode())
	}
}

// TestSetModeIgnoresNilAndSame verifies the guard conditions
func TestSetModeIgnoresNilAndSame(t *testing.T) {
	ctl, _ := newTestController()

	ctl.SetMode(nil)
	if ctl.Mode() != FirstPerson {
		t.Errorf("Expected FirstPerson after nil SetMode, got %v", ctl.Mode())
	}

	ctl.SetMode(FirstPerson)
	if ctl.Mode() != FirstPerson {
		t.Errorf("Expected FirstPerson, got %v", ctl.Mode())
	}
}

func TestModeStrings(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{FirstPerson, "FirstPerson"},
		{ThirdPerson, "ThirdPerson"},
		{Spectator, "Spectator"},
		{Fixed, "Fixed"},
	}
	for _, tc := range cases {
		if tc.mode.String() != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, tc.mode.String())
		}
	}
}

// TestThirdPersonSnapsToIdeal verifies the rig position formula with smoothing off
func TestThirdPersonSnapsToIdeal(t *testing.T) {
	ctl, _ := newTestController()
	ctl.SetSmoothingEnabled(false)
	ctl.Camera().SetPosition(mgl32.Vec3{0, 2, 5})
	target := mgl32.Vec3{0, 1, 0}
	ctl.SetTarget(target)
	ctl.SetMode(ThirdPerson)

	s := ctl.Settings()
	for i := 0; i < 5; i++ {
		frontBefore := ctl.Camera().Front().Normalize()
		ctl.Update(1.0 / 60.0)

		want := target.Sub(frontBefore.Mul(s.ThirdPersonDistance)).
			Add(mgl32.Vec3{0, s.ThirdPersonHeight, 0}).
			Add(s.ThirdPersonOffset)
		if !vecAlmostEqual(ctl.Camera().Position(), want, 1e-4) {
			t.Fatalf("Frame %d: expected rig position %v, got %v", i, want, ctl.Camera().Position())
		}

		toTarget := target.Sub(ctl.Camera().Position()).Normalize()
		if !almostEqual(ctl.Camera().Front().Dot(toTarget), 1, 1e-3) {
			t.Fatalf("Frame %d: camera not facing target, dot=%v", i, ctl.Camera().Front().Dot(toTarget))
		}
	}
}

// TestThirdPersonSmoothingContracts verifies the blend closes 20%% of the gap
func TestThirdPersonSmoothingContracts(t *testing.T) {
	ctl, _ := newTestController()
	ctl.Camera().SetPosition(mgl32.Vec3{3, 2, 8})
	target := mgl32.Vec3{0, 1, 0}
	ctl.SetTarget(target)
	ctl.SetMode(ThirdPerson)

	s := ctl.Settings()
	blend := s.MovementSmoothing * 2
	for i := 0; i < 10; i++ {
		before := ctl.Camera().Position()
		ideal := target.Sub(ctl.Camera().Front().Normalize().Mul(s.ThirdPersonDistance)).
			Add(mgl32.Vec3{0, s.ThirdPersonHeight, 0}).
			Add(s.ThirdPersonOffset)

		ctl.Update(1.0 / 60.0)

		gapBefore := before.Sub(ideal).Len()
		gapAfter := ctl.Camera().Position().Sub(ideal).Len()
		wantGap := gapBefore * (1 - blend)
		if !almostEqual(gapAfter, wantGap, gapBefore*0.01+1e-4) {
			t.Fatalf("Frame %d: expected gap %v, got %v", i, wantGap, gapAfter)
		}
	}
}

// TestFixedModeTracksTarget verifies aiming only happens with a target set
func TestFixedModeTracksTarget(t *testing.T) {
	ctl, _ := newTestController()
	ctl.SetSmoothingEnabled(false)
	ctl.Camera().SetPosition(mgl32.Vec3{5, 5, 5})
	ctl.SetMode(Fixed)

	// Zero target: orientation stays put
	ctl.Update(0.016)
	if ctl.Camera().Yaw() != DefaultYaw {
		t.Errorf("Expected unchanged yaw with zero target, got %v", ctl.Camera().Yaw())
	}

	ctl.SetTarget(mgl32.Vec3{0, 1, 0})
	ctl.Update(0.016)

	toTarget := ctl.Target().Sub(ctl.Camera().Position()).Normalize()
	if !almostEqual(ctl.Camera().Front().Dot(toTarget), 1, 1e-4) {
		t.Errorf("Expected camera facing target, dot=%v", ctl.Camera().Front().Dot(toTarget))
	}
}

// TestFixedModeStillMoves verifies movement keys work in Fixed mode
func TestFixedModeStillMoves(t *testing.T) {
	ctl, in := newTestController()
	ctl.SetSmoothingEnabled(false)
	ctl.SetMode(Fixed)
	in.held[glfw.KeyW] = true

	ctl.Update(1.0)

	if vecAlmostEqual(ctl.Camera().Position(), mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Error("Expected movement keys to apply in Fixed mode")
	}
}

// TestScrollForwarding verifies the gate on camera presence and input enable
func TestScrollForwarding(t *testing.T) {
	ctl, _ := newTestController()
	start := ctl.Camera().Zoom()

	ctl.ProcessMouseScroll(5)
	if ctl.Camera().Zoom() != start-5 {
		t.Errorf("Expected zoom %v, got %v", start-5, ctl.Camera().Zoom())
	}

	ctl.SetInputEnabled(false)
	ctl.ProcessMouseScroll(5)
	if ctl.Camera().Zoom() != start-5 {
		t.Errorf("Expected zoom unchanged while disabled, got %v", ctl.Camera().Zoom())
	}
}

// TestSetSettingsPushesCameraOptions verifies speed and sensitivity propagate
func TestSetSettingsPushesCameraOptions(t *testing.T) {
	ctl, _ := newTestController()

	settings := ctl.Settings()
	settings.MovementSpeed = 12
	settings.MouseSensitivity = 0.25
	ctl.SetSettings(settings)

	if ctl.Camera().MovementSpeed() != 12 {
		t.Errorf("Expected camera speed 12, got %v", ctl.Camera().MovementSpeed())
	}
	if ctl.Camera().MouseSensitivity() != 0.25 {
		t.Errorf("Expected camera sensitivity 0.25, got %v", ctl.Camera().MouseSensitivity())
	}
}

// TestCustomBindings verifies remapped keys drive movement
func TestCustomBindings(t *testing.T) {
	ctl, in := newTestController()
	ctl.SetSmoothingEnabled(false)

	bindings := ctl.Bindings()
	bindings.Forward = glfw.KeyUp
	ctl.SetBindings(bindings)

	in.held[glfw.KeyW] = true // Old binding: ignored
	ctl.Update(1.0)
	if !vecAlmostEqual(ctl.Camera().Position(), mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Errorf("Unbound key moved the camera: %v", ctl.Camera().Position())
	}

	in.held[glfw.KeyUp] = true
	ctl.Update(1.0)
	if vecAlmostEqual(ctl.Camera().Position(), mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Error("Remapped forward key did not move the camera")
	}
}

// TestControllerReset verifies state restoration without a mode change
func TestControllerReset(t *testing.T) {
	ctl, in := newTestController()
	in.held[glfw.KeyW] = true
	in.held[glfw.KeyLeftShift] = true
	in.buttons[glfw.MouseButtonRight] = true
	ctl.SetMode(ThirdPerson)
	ctl.SetTarget(mgl32.Vec3{0, 1, 0})
	ctl.AddShake(1, 5)
	for i := 0; i < 20; i++ {
		ctl.Update(0.05)
	}

	ctl.Reset()

	if !vecAlmostEqual(ctl.Camera().Position(), mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Errorf("Expected camera at origin, got %v", ctl.Camera().Position())
	}
	if ctl.IsAiming() || ctl.IsSprinting() || ctl.IsCrouching() {
		t.Error("Expected all state flags cleared")
	}
	if ctl.ShakeOffset() != (mgl32.Vec3{}) {
		t.Errorf("Expected shake cleared, got %v", ctl.ShakeOffset())
	}
	if ctl.CurrentFOV() != ctl.Settings().DefaultFOV {
		t.Errorf("Expected FOV back at default, got %v", ctl.CurrentFOV())
	}
	if ctl.Mode() != ThirdPerson {
		t.Error("Reset must not change the mode")
	}
}
