package combat

import (
	"fmt"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/yohamta/donburi"
)

// LightSource is a dynamic light carried by a projectile.
type LightSource struct {
	Pos    gamemath.Vec3
	Radius float64
	Color  gamemath.Vec3
}

type glow struct {
	radius float64
	color  gamemath.Vec3
}

var glows = map[catalog.Kind]glow{
	catalog.KindPulse:    {25, gamemath.Vec3{2, 1.5, 2}},
	catalog.KindRocket:   {50, gamemath.Vec3{2, 1.5, 1}},
	catalog.KindPlasma:   {20, gamemath.Vec3{0, 1.5, 1.5}},
	catalog.KindGrenade:  {8, gamemath.Vec3{0.25, 0.25, 1}},
	catalog.KindGrenade2: {8, gamemath.Vec3{0.25, 0.25, 1}},
}

// CollectDynamicLightSources lists the lights of every glowing projectile
// at its drawn position.
func (s *Simulation) CollectDynamicLightSources() []LightSource {
	var out []LightSource
	s.eachProjectile(func(_ donburi.Entity, p *components.ProjectileData) {
		if p.Has(catalog.FlagJunk) {
			return
		}
		g, ok := glows[p.Kind]
		if !ok {
			return
		}
		out = append(out, LightSource{Pos: p.Pos.Add(p.Offset), Radius: g.radius, Color: g.color})
	})
	return out
}

// Obstacle is a danger zone AI should steer around.
type Obstacle struct {
	Pos    gamemath.Vec3
	Radius float64
	Top    float64
}

// CollectAvoidanceObstacles lists live weapon projectiles as blast zones
// for a mover of the given radius.
func (s *Simulation) CollectAvoidanceObstacles(radius float64) []Obstacle {
	var out []Obstacle
	s.eachProjectile(func(_ donburi.Entity, p *components.ProjectileData) {
		if !p.Has(catalog.FlagWeapon) {
			return
		}
		exprad := p.Attack.Info().ExpRadius
		out = append(out, Obstacle{
			Pos:    p.Pos,
			Radius: radius + exprad,
			Top:    p.Pos.Z() + exprad + 1,
		})
	})
	return out
}

// PreloadAssetReferences names every model the simulation may ask the
// renderer to draw.
func PreloadAssetReferences() []string {
	var out []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for k := catalog.Kind(0); k < catalog.NumKinds; k++ {
		switch k {
		case catalog.KindEject:
			for i := 1; i <= 3; i++ {
				add(fmt.Sprintf("projectile/eject/%02d", i))
			}
		case catalog.KindGib:
			for i := 1; i <= 5; i++ {
				add(fmt.Sprintf("projectile/gib/gib%02d", i))
			}
		default:
			add(k.Info().Model)
		}
	}
	for g := catalog.Gun(0); g < catalog.NumGuns; g++ {
		add(g.Info().WorldModel)
	}
	return out
}

// ProjectileView is a read-only snapshot of a projectile.
type ProjectileView struct {
	Entity   donburi.Entity
	Kind     catalog.Kind
	Attack   catalog.Attack
	Owner    donburi.Entity
	ID       int64
	Local    bool
	Pos      gamemath.Vec3
	Drawn    gamemath.Vec3
	Vel      gamemath.Vec3
	Yaw      float64
	Pitch    float64
	Roll     float64
	Bounces  int
	Lifetime int64
	Variant  int
}

// Projectiles snapshots every live projectile in store order.
func (s *Simulation) Projectiles() []ProjectileView {
	var out []ProjectileView
	s.eachProjectile(func(e donburi.Entity, p *components.ProjectileData) {
		out = append(out, ProjectileView{
			Entity:   e,
			Kind:     p.Kind,
			Attack:   p.Attack,
			Owner:    p.Owner,
			ID:       p.ID,
			Local:    p.Local,
			Pos:      p.Pos,
			Drawn:    p.OffsetPos(),
			Vel:      p.Vel,
			Yaw:      p.Yaw,
			Pitch:    p.Pitch,
			Roll:     p.Roll,
			Bounces:  p.Bounces,
			Lifetime: p.Lifetime,
			Variant:  p.Variant,
		})
	})
	return out
}

// ModelInstance is one model to draw this frame.
type ModelInstance struct {
	Name             string
	Pos              gamemath.Vec3
	Yaw, Pitch, Roll float64
	Variant          int
}

// Models lists the projectiles that have a model.
func (s *Simulation) Models() []ModelInstance {
	var out []ModelInstance
	s.eachProjectile(func(_ donburi.Entity, p *components.ProjectileData) {
		name := p.Kind.Info().Model
		switch p.Kind {
		case catalog.KindGib:
			name = fmt.Sprintf("projectile/gib/gib%02d", p.Variant+1)
		case catalog.KindEject:
			name = fmt.Sprintf("projectile/eject/%02d", p.Variant+1)
		}
		if name == "" {
			return
		}
		yaw, pitch := p.Yaw, p.Pitch
		if p.Has(catalog.FlagBounce) {
			yaw, pitch = gamemath.YawPitch(p.Vel)
		}
		out = append(out, ModelInstance{
			Name:    name,
			Pos:     p.OffsetPos(),
			Yaw:     yaw,
			Pitch:   pitch,
			Roll:    p.Roll,
			Variant: p.Variant,
		})
	})
	return out
}

// ejectVariant picks the casing model for the gun that fired.
func ejectVariant(gun catalog.Gun) int {
	switch gun {
	case catalog.GunSMG:
		return 1
	case catalog.GunRail:
		return 2
	}
	return 0
}

func (s *Simulation) eachProjectile(fn func(e donburi.Entity, p *components.ProjectileData)) {
	for _, e := range s.store.order {
		if entry := s.entry(e); entry != nil {
			fn(e, components.Projectile.Get(entry))
		}
	}
}
