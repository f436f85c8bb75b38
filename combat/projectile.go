package combat

import (
	"math"

	"github.com/automoto/ordnance/archetypes"
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// SpawnProjectile launches a projectile of kind from from toward to. Local
// projectiles take the current time as their id; remote ones keep id.
// An invalid kind or owner yields donburi.Null.
func (s *Simulation) SpawnProjectile(owner donburi.Entity, from, to gamemath.Vec3, local bool, id int64,
	atk catalog.Attack, kind catalog.Kind, lifetime int64, speed, gravity, elasticity float64) donburi.Entity {
	info, ok := catalog.LookupKind(kind)
	if !ok {
		return donburi.Null
	}
	ownerEntry := s.entry(owner)
	if ownerEntry == nil || !ownerEntry.HasComponent(components.Body) {
		return donburi.Null
	}
	ownerBody := components.Body.Get(ownerEntry)

	arch := archetypes.Projectile
	if info.Flags&catalog.FlagJunk != 0 {
		arch = archetypes.Junk
	}
	entry := arch.Spawn(s.world)
	p := components.Projectile.Get(entry)
	*p = components.ProjectileData{
		BodyData: components.BodyData{
			Pos:       from,
			Radius:    info.Radius,
			EyeHeight: info.Radius,
			AboveEye:  info.Radius,
			Weight:    config.Actor.Weight,
		},
		From:         from,
		To:           to,
		Owner:        owner,
		Attack:       atk,
		Kind:         kind,
		Flags:        info.Flags,
		Local:        local,
		ID:           id,
		Lifetime:     lifetime,
		LastBounce:   s.now - config.Projectile.BounceEffectInterval,
		DirectTarget: donburi.Null,
		OffsetHeight: -1,
		Speed:        speed,
		Gravity:      gravity,
		Elasticity:   elasticity,
		LoopSound:    info.LoopSound,
		LoopChan:     -1,
	}
	if local {
		p.ID = s.now
	}
	if info.Variants > 0 {
		p.Variant = s.rng.IntN(info.Variants)
	}

	dir := gamemath.Normalize(to.Sub(from))
	p.Vel = dir
	if p.Has(catalog.FlagBounce) {
		p.Vel = dir.Mul(speed)
	}
	s.physics.AvoidCollision(&p.BodyData, dir, ownerBody, config.Projectile.AvoidGuard)

	var offset gamemath.Vec3
	if p.Has(catalog.FlagWeapon) || p.Has(catalog.FlagLinear) {
		offset = s.gunOrigin(ownerEntry, from, to)
	}
	base := from
	if p.Has(catalog.FlagBounce) {
		base = p.Pos
		switch {
		case !p.Has(catalog.FlagWeapon):
			offset = from
		case owner == s.observed && !s.rules.ThirdPerson:
			offset = rescale(offset.Sub(ownerBody.Pos), 16).Add(ownerBody.Pos)
		}
	}
	p.OffsetStart = offset.Sub(base)
	p.Offset = p.OffsetStart
	p.OffsetFade = gween.New(1, 0, float32(config.Projectile.OffsetMillis), ease.Linear)
	p.LastPos = ownerBody.Pos
	p.Yaw, p.Pitch = gamemath.YawPitch(dir)

	if mat := s.physics.Material(p.Pos); mat.IsLiquid() {
		p.InLiquid = mat.Volume()
	}
	if p.LoopSound.Valid() {
		pos := p.Pos
		p.LoopChan = s.fx.PlaySound(p.LoopSound, &pos, -1, true)
	}

	e := entry.Entity()
	s.store.Add(e)
	if s.onSpawn != nil {
		s.onSpawn(e)
	}
	return e
}

func rescale(v gamemath.Vec3, length float64) gamemath.Vec3 {
	return gamemath.Normalize(v).Mul(length)
}

// TickProjectiles advances the clock by dt milliseconds and steps every
// projectile.
func (s *Simulation) TickProjectiles(dt int64) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.broad.Sync(s.world)
	s.store.Each(func(e donburi.Entity) bool {
		return s.stepProjectile(e, dt)
	})
	s.updateAttackSounds()
}

// stepProjectile advances one projectile and reports whether it survives.
func (s *Simulation) stepProjectile(e donburi.Entity, dt int64) bool {
	entry := s.entry(e)
	if entry == nil {
		return false
	}
	p := components.Projectile.Get(entry)
	ownerEntry := s.entry(p.Owner)
	if ownerEntry == nil {
		s.release(entry, p)
		return false
	}

	old := p.Pos
	var pos, dv gamemath.Vec3
	var dist float64
	if p.Has(catalog.FlagLinear) {
		s.fadeOffset(p, dt)
		delta := p.To.Sub(p.Pos)
		dist = delta.Len()
		travel := float64(dt)
		if p.Speed > 0 {
			travel = math.Max(dist*1000/p.Speed, float64(dt))
		}
		if travel > 0 {
			dv = delta.Mul(float64(dt) / travel)
		}
		pos = p.Pos.Add(dv)

		s.hits = s.hits[:0]
		if p.Local && !s.rules.BetweenRounds {
			s.scanDirect(ownerEntry, p, pos, dv)
		}
	} else {
		pos = p.OffsetPos()
	}

	if !p.Destroyed {
		s.checkLifetime(p, dt)
		if s.physics.Material(p.Pos).Volume() == leveldata.MatLava {
			p.Destroyed = true
		}
		if p.Has(catalog.FlagLinear) && p.Has(catalog.FlagImpact) && dist < config.Projectile.ImpactDistance {
			p.Destroyed = true
			if !gamemath.Equal(p.Pos, p.To) {
				dir := gamemath.Normalize(p.Vel)
				if hit := s.physics.RayCube(p.Pos, dir, p.Attack.Info().Range); hit >= config.Projectile.ImpactDistance {
					// The target point moved away; fly on to the new surface.
					p.To = p.Pos.Add(dir.Mul(hit))
					p.Destroyed = false
				}
			}
		}
		if p.Has(catalog.FlagWeapon) && p.Has(catalog.FlagBounce) {
			secs := float64(dt) / 1000
			bouncing := s.physics.IsBouncing(bouncer{s, p}, secs, p.Elasticity, config.Projectile.WaterFriction, p.Gravity)
			limit := p.Kind.Info().MaxBounces
			if !bouncing || limit > 0 && p.Bounces >= limit {
				p.Destroyed = true
			}
		}
		s.liquidTransitions(p)
		drawn := pos.Add(p.Offset)
		if p.Has(catalog.FlagBounce) {
			drawn = p.OffsetPos()
		}
		s.trailEffects(p, drawn, dv)
	}
	s.checkLoopSound(p)

	if p.Destroyed {
		if p.Has(catalog.FlagWeapon) {
			if !p.Has(catalog.FlagLinear) {
				// Linear shots keep the direct hit scanned this tick.
				s.hits = s.hits[:0]
			}
			s.ExplodeProjectile(entry, pos, p.DirectTarget, p.Attack.Info().Damage, p.Local)
			if p.Local {
				s.net.SendExplode(messages.ExplodeEvent{
					Shooter:      components.Combatant.Get(ownerEntry).ClientNum,
					Time:         s.now,
					Attack:       p.Attack,
					ProjectileID: p.ID,
					Hits:         s.Hits(),
				})
			}
		}
		s.release(entry, p)
		return false
	}

	if p.Has(catalog.FlagBounce) {
		p.Roll += gamemath.Dist(old, p.Pos) / (4 * gamemath.RAD)
		s.fadeOffset(p, dt)
		s.limitOffset(p)
	} else {
		p.Pos = pos
		if dv != (gamemath.Vec3{}) {
			p.Yaw, p.Pitch = gamemath.YawPitch(dv)
		}
	}
	return true
}

// scanDirect looks for the first actor the projectile passes through this
// tick.
func (s *Simulation) scanDirect(owner *donburi.Entry, p *components.ProjectileData, pos, dv gamemath.Vec3) {
	half := dv.Mul(0.5)
	center := p.Pos.Add(half)
	reach := math.Max(math.Abs(half.X()), math.Abs(half.Y())) + 1 + p.Attack.Info().Margin
	near := s.broad.Near(center, reach)

	for _, target := range s.actorSnapshot() {
		te := target.Entity()
		if _, ok := near[te]; !ok || te == p.Owner {
			continue
		}
		body := components.Body.Get(target)
		if gamemath.Reject(body.Pos, center, body.Radius+reach) {
			continue
		}
		if !components.Combatant.Get(target).Alive() {
			continue
		}
		if _, ok := intersecting(body, p.Pos, pos, p.Attack.Info().Margin); !ok {
			continue
		}
		if p.Has(catalog.FlagWeapon) {
			_, dir := projectileDistance(body, pos, p.Vel)
			flags := catalog.HitTorso | catalog.HitDirect
			damage := s.CalcDamage(p.Attack.Info().Damage, target, owner, p.Attack, flags)
			s.ResolveHit(damage, target, owner, body.Pos, dir, p.Attack, gamemath.Dist(p.From, body.Pos), 1, flags)
		}
		p.Destroyed = true
		p.Direct = true
		p.DirectTarget = te
		return
	}
}

func (s *Simulation) checkLifetime(p *components.ProjectileData, dt int64) {
	switch {
	case p.Has(catalog.FlagWeapon):
		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			p.Destroyed = true
		}
	case p.Has(catalog.FlagJunk):
		cfg := config.Projectile
		for rest := dt; rest > 0; {
			q := min(cfg.JunkStepMillis, rest)
			rest -= q
			p.Lifetime -= q
			if p.Lifetime < 0 {
				p.Destroyed = true
			}
			if p.Has(catalog.FlagBounce) && s.physics.HasBounced(bouncer{s, p}, float64(q)/1000,
				cfg.JunkRestElasticity, cfg.JunkRestWaterFric, cfg.JunkRestGravity) {
				p.Destroyed = true
			}
			if p.Destroyed {
				return
			}
		}
	}
}

func (s *Simulation) liquidTransitions(p *components.ProjectileData) {
	mat := s.physics.Material(p.Pos)
	inWater := mat.Volume() == leveldata.MatWater
	if inWater && p.Has(catalog.FlagQuench) {
		p.Destroyed = true
	}
	tr := s.physics.LiquidTransition(&p.BodyData, mat, inWater)
	if tr != TransitionNone {
		s.liquidEffects(&p.BodyData, mat, tr)
		p.LastPos = p.Pos
	}
}

func (s *Simulation) checkLoopSound(p *components.ProjectileData) {
	if !p.LoopSound.Valid() {
		return
	}
	if p.Destroyed {
		s.fx.StopSound(p.LoopSound, p.LoopChan)
		p.LoopChan = -1
		return
	}
	pos := p.Pos
	p.LoopChan = s.fx.PlaySound(p.LoopSound, &pos, p.LoopChan, true)
}

func (s *Simulation) fadeOffset(p *components.ProjectileData, dt int64) {
	if p.OffsetFade == nil {
		return
	}
	frac, _ := p.OffsetFade.Update(float32(dt))
	p.Offset = p.OffsetStart.Mul(float64(frac))
}

// limitOffset measures the clearance under the drawn position so the
// offset never sinks the model into the floor.
func (s *Simulation) limitOffset(p *components.ProjectileData) {
	if p.Offset.Z() >= 0 || p.Offset == (gamemath.Vec3{}) {
		p.OffsetHeight = -1
		return
	}
	pos := p.Pos.Add(p.Offset)
	p.OffsetHeight = s.physics.RayCube(pos, gamemath.Vec3{0, 0, -1}, -p.Offset.Z()+p.EyeHeight)
}

// release stops a projectile's sounds and deletes its entity. The caller
// removes it from the store.
func (s *Simulation) release(entry *donburi.Entry, p *components.ProjectileData) {
	if p.LoopSound.Valid() && p.LoopChan >= 0 {
		s.fx.StopSound(p.LoopSound, p.LoopChan)
	}
	e := entry.Entity()
	if s.onRemove != nil {
		s.onRemove(e)
	}
	if s.world.Valid(e) {
		s.world.Remove(e)
	}
}

// removeProjectile releases e and drops it from the store.
func (s *Simulation) removeProjectile(e donburi.Entity) {
	if entry := s.entry(e); entry != nil {
		s.release(entry, components.Projectile.Get(entry))
	}
	s.store.Remove(e)
}

// RemoveProjectilesForOwner deletes every projectile owner launched
// without detonating them.
func (s *Simulation) RemoveProjectilesForOwner(owner donburi.Entity) {
	for _, e := range s.store.Entities() {
		entry := s.entry(e)
		if entry == nil {
			s.store.Remove(e)
			continue
		}
		if components.Projectile.Get(entry).Owner == owner {
			s.removeProjectile(e)
		}
	}
}

// RemoveAllProjectiles empties the store.
func (s *Simulation) RemoveAllProjectiles() {
	for _, e := range s.store.Entities() {
		if entry := s.entry(e); entry != nil {
			s.release(entry, components.Projectile.Get(entry))
		}
	}
	s.store.Clear()
}

// bouncer hands a projectile body to physics.
type bouncer struct {
	s *Simulation
	p *components.ProjectileData
}

func (b bouncer) Body() *components.BodyData { return &b.p.BodyData }

func (b bouncer) Bounced(surface gamemath.Vec3) { b.s.bounced(b.p, surface) }

func (s *Simulation) bounced(p *components.ProjectileData, surface gamemath.Vec3) {
	limit := p.Kind.Info().MaxBounces
	if limit > 0 && p.Bounces >= limit {
		return
	}
	p.Bounces++
	if s.now-p.LastBounce < config.Projectile.BounceEffectInterval {
		return
	}
	s.bounceEffects(p, surface)
	p.LastBounce = s.now
}

// ResolvePlasmaCombo marches the shot from->to looking for a plasma bolt
// owned by the shooter or an AI. A bolt within its margin of the ray is
// detonated as a combo and the shot is consumed.
func (s *Simulation) ResolvePlasmaCombo(from, to gamemath.Vec3, shooter *donburi.Entry, atk catalog.Attack) bool {
	if s.rules.BetweenRounds || shooter == nil || atk.Info().Gun != catalog.GunPistol {
		return false
	}
	cfg := config.Projectile
	dist := gamemath.Dist(from, to)
	steps := gamemath.ClampInt(int(dist*cfg.ComboStepsPerUnit), 1, cfg.ComboMaxSteps)
	step := to.Sub(from).Mul(1 / float64(steps))

	point := from
	for range steps {
		point = point.Add(step)
		for _, e := range s.store.Entities() {
			entry := s.entry(e)
			if entry == nil {
				continue
			}
			p := components.Projectile.Get(entry)
			if p.Kind != catalog.KindPlasma {
				continue
			}
			if p.Owner != shooter.Entity() && !s.isAI(p.Owner) {
				continue
			}
			if gamemath.Dist(p.Pos, point) > p.Attack.Info().Margin {
				continue
			}
			s.detonateCombo(entry, p, shooter)
			return true
		}
	}
	return false
}

func (s *Simulation) detonateCombo(entry *donburi.Entry, p *components.ProjectileData, shooter *donburi.Entry) {
	p.Attack = catalog.AttackPistolCombo
	s.hits = s.hits[:0]
	s.ExplodeProjectile(entry, p.Pos, donburi.Null, catalog.AttackPistolCombo.Info().Damage, p.Local)
	if s.authored(shooter) {
		cn := -1
		if owner := s.entry(p.Owner); owner != nil {
			cn = components.Combatant.Get(owner).ClientNum
		}
		s.net.SendExplode(messages.ExplodeEvent{
			Shooter:      cn,
			Time:         s.now,
			Attack:       catalog.AttackPistolCombo,
			ProjectileID: p.ID,
			Hits:         s.Hits(),
		})
	}
	s.hits = s.hits[:0]
	s.removeProjectile(entry.Entity())
}
