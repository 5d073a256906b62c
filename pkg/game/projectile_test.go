package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// TestFireRejectsZeroDirection verifies a degenerate direction spawns
// nothing.
func TestFireRejectsZeroDirection(t *testing.T) {
	ps := NewProjectileSystem()
	if ps.Fire(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 0}) {
		t.Error("Fire accepted a zero direction")
	}
	if ps.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", ps.ActiveCount())
	}
}

// TestFireCapacity verifies spawns past the capacity limit are rejected.
func TestFireCapacity(t *testing.T) {
	ps := NewProjectileSystem()
	ps.SetMaxProjectiles(3)

	origin := mgl32.Vec3{0, 0, 0}
	dir := mgl32.Vec3{0, 0, -1}
	for i := 0; i < 3; i++ {
		if !ps.Fire(origin, dir) {
			t.Fatalf("Fire %d rejected below capacity", i)
		}
	}
	if ps.Fire(origin, dir) {
		t.Error("Fire accepted past capacity")
	}
	if ps.ActiveCount() != 3 {
		t.Errorf("ActiveCount = %d, want 3", ps.ActiveCount())
	}
}

// TestProjectileFliesStraight verifies integration along the fire direction.
func TestProjectileFliesStraight(t *testing.T) {
	ps := NewProjectileSystem()
	ps.Fire(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})

	ps.Update(0.5)

	p := ps.Active()[0]
	want := mgl32.Vec3{0, 0, -5}
	if p.Position != want {
		t.Errorf("Position = %v, want %v", p.Position, want)
	}
	if p.Rotation != projectileSpin*0.5 {
		t.Errorf("Rotation = %v, want %v", p.Rotation, projectileSpin*0.5)
	}
}

// TestProjectileExpires verifies a projectile is dropped once its age
// reaches its lifetime.
func TestProjectileExpires(t *testing.T) {
	ps := NewProjectileSystem()
	ps.FireWith(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 10, 3)

	ps.Update(1)
	ps.Update(1)
	if ps.ActiveCount() != 1 {
		t.Fatalf("ActiveCount = %d before lifetime, want 1", ps.ActiveCount())
	}
	ps.Update(1)
	if ps.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d after lifetime, want 0", ps.ActiveCount())
	}
}

// TestUpdateCompactsExpired verifies only expired projectiles are removed.
func TestUpdateCompactsExpired(t *testing.T) {
	ps := NewProjectileSystem()
	ps.FireWith(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 10, 1)
	ps.FireWith(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 10, 5)

	ps.Update(2)

	if ps.ActiveCount() != 1 {
		t.Fatalf("ActiveCount = %d, want 1", ps.ActiveCount())
	}
	want := mgl32.Vec3{20, 0, 0}
	if got := ps.Active()[0].Position; got != want {
		t.Errorf("survivor position = %v, want %v", got, want)
	}
}

// TestClear verifies Clear drops every projectile.
func TestClear(t *testing.T) {
	ps := NewProjectileSystem()
	ps.Fire(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	ps.Fire(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})

	ps.Clear()
	if ps.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d after Clear, want 0", ps.ActiveCount())
	}
}

// TestShooterCooldown verifies the rate limit between shots.
func TestShooterCooldown(t *testing.T) {
	ps := NewProjectileSystem()
	s := NewShooter(ps)

	origin := mgl32.Vec3{0, 0, 0}
	dir := mgl32.Vec3{0, 0, -1}
	if !s.Fire(origin, dir) {
		t.Fatal("first shot rejected")
	}
	if s.Fire(origin, dir) {
		t.Error("second shot fired inside cooldown")
	}

	s.Update(0.25)
	if !s.CanFire() {
		t.Error("CanFire = false after cooldown elapsed")
	}
	if !s.Fire(origin, dir) {
		t.Error("shot rejected after cooldown elapsed")
	}
	if ps.ActiveCount() != 2 {
		t.Errorf("ActiveCount = %d, want 2", ps.ActiveCount())
	}
}

// TestShooterKeepsCooldownWhenSystemFull verifies a rejected spawn does not
// consume the cooldown.
func TestShooterKeepsCooldownWhenSystemFull(t *testing.T) {
	ps := NewProjectileSystem()
	ps.SetMaxProjectiles(1)
	s := NewShooter(ps)

	origin := mgl32.Vec3{0, 0, 0}
	dir := mgl32.Vec3{0, 0, -1}
	if !s.Fire(origin, dir) {
		t.Fatal("first shot rejected")
	}
	s.Update(1)

	if s.Fire(origin, dir) {
		t.Error("shot accepted with the system full")
	}
	if !s.CanFire() {
		t.Error("rejected spawn consumed the cooldown")
	}
}
