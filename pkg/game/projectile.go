package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projectile system defaults
const (
	DefaultMaxProjectiles             = 1000
	DefaultProjectileSpeed    float32 = 10.0
	DefaultProjectileLifetime float32 = 5.0
)

// Shooter defaults
const (
	DefaultFireRate     float32 = 5.0
	DefaultShotSpeed    float32 = 15.0
	DefaultShotLifetime float32 = 3.0
)

// visual spin rate in radians per second
const projectileSpin float32 = 4.0

// Projectile is a single shot in flight.
type Projectile struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Rotation float32
	Age      float32
	Lifetime float32
}

// ProjectileSystem stores and advances projectiles in flight. Expired
// projectiles are compacted away on Update.
type ProjectileSystem struct {
	projectiles []Projectile
	maxActive   int
	speed       float32
	lifetime    float32
}

// NewProjectileSystem creates a system with the default capacity, speed and
// lifetime.
func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{
		projectiles: make([]Projectile, 0, DefaultMaxProjectiles),
		maxActive:   DefaultMaxProjectiles,
		speed:       DefaultProjectileSpeed,
		lifetime:    DefaultProjectileLifetime,
	}
}

// SetMaxProjectiles changes the capacity limit. Values below one are ignored.
func (ps *ProjectileSystem) SetMaxProjectiles(maxActive int) {
	if maxActive > 0 {
		ps.maxActive = maxActive
	}
}

// Fire spawns a projectile with the system's default speed and lifetime.
func (ps *ProjectileSystem) Fire(origin, direction mgl32.Vec3) bool {
	return ps.FireWith(origin, direction, ps.speed, ps.lifetime)
}

// FireWith spawns a projectile flying from origin along direction. The spawn
// is rejected when the system is full or the direction is degenerate.
func (ps *ProjectileSystem) FireWith(origin, direction mgl32.Vec3, speed, lifetime float32) bool {
	if len(ps.projectiles) >= ps.maxActive {
		return false
	}
	if direction.Len() < 1e-6 {
		return false
	}

	ps.projectiles = append(ps.projectiles, Projectile{
		Position: origin,
		Velocity: direction.Normalize().Mul(speed),
		Lifetime: lifetime,
	})
	return true
}

// Update advances every projectile and drops the ones past their lifetime.
func (ps *ProjectileSystem) Update(deltaTime float32) {
	alive := ps.projectiles[:0]
	for i := range ps.projectiles {
		p := ps.projectiles[i]
		p.Position = p.Position.Add(p.Velocity.Mul(deltaTime))
		p.Rotation += projectileSpin * deltaTime
		p.Age += deltaTime
		if p.Age < p.Lifetime {
			alive = append(alive, p)
		}
	}
	ps.projectiles = alive
}

// Active returns the live projectiles. The slice is only valid until the
// next Update.
func (ps *ProjectileSystem) Active() []Projectile {
	return ps.projectiles
}

// ActiveCount returns the number of live projectiles.
func (ps *ProjectileSystem) ActiveCount() int {
	return len(ps.projectiles)
}

// Clear removes all projectiles.
func (ps *ProjectileSystem) Clear() {
	ps.projectiles = ps.projectiles[:0]
}

// Shooter rate-limits firing into a projectile system.
type Shooter struct {
	system   *ProjectileSystem
	fireRate float32
	speed    float32
	lifetime float32
	cooldown float32
}

// NewShooter creates a shooter with the default rate and shot tuning.
func NewShooter(system *ProjectileSystem) *Shooter {
	return &Shooter{
		system:   system,
		fireRate: DefaultFireRate,
		speed:    DefaultShotSpeed,
		lifetime: DefaultShotLifetime,
	}
}

// Update ticks the cooldown.
func (s *Shooter) Update(deltaTime float32) {
	if s.cooldown > 0 {
		s.cooldown -= deltaTime
	}
}

// CanFire reports whether the cooldown has elapsed.
func (s *Shooter) CanFire() bool {
	return s.cooldown <= 0
}

// Fire spawns a shot and starts the cooldown. The cooldown is only consumed
// when the underlying system accepts the spawn.
func (s *Shooter) Fire(origin, direction mgl32.Vec3) bool {
	if !s.CanFire() {
		return false
	}
	if !s.system.FireWith(origin, direction, s.speed, s.lifetime) {
		return false
	}
	s.cooldown = 1.0 / s.fireRate
	return true
}

// SetFireRate changes the shots per second. Values at or below zero are
// ignored.
func (s *Shooter) SetFireRate(rate float32) {
	if rate > 0 {
		s.fireRate = rate
	}
}
