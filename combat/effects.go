package combat

import (
	"math"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/yohamta/donburi"
)

type splash struct {
	part  Particle
	count int
	color uint32
	size  float64
	fade  int
}

type explosionStyle struct {
	color      uint32
	light      gamemath.Vec3
	splashes   []splash // skipped in water
	waterFlare bool     // in water only an electric flare is drawn
	flare      bool     // electric flare outside water
	fireball   bool     // extra inner fireball at exprad
	fade       int
}

var defaultExplosion = explosionStyle{color: 0x50CFE5, light: gamemath.Vec3{1, 3, 4}, fade: 400}

var explosionStyles = map[catalog.Attack]explosionStyle{
	catalog.AttackRocket1: rocketExplosion,
	catalog.AttackRocket2: rocketExplosion,
	catalog.AttackPulse1: {
		color: 0xEE88EE, light: gamemath.Vec3{1, 0.5, 1}, waterFlare: true, fade: 400,
		splashes: []splash{
			{PartSpark, 15, 0xEE88EE, 0.25, 400},
			{PartExplosion, 30, 0xEE88EE, 2.9, 120},
			{PartSmoke, 60, 0x222222, 4.4, 120},
		},
	},
	catalog.AttackGrenade1: grenadeExplosion,
	catalog.AttackGrenade2: grenadeExplosion,
	catalog.AttackPistol2: {
		color: 0x00FFFF, light: gamemath.Vec3{0.25, 1, 1}, waterFlare: true, fireball: true, fade: 400,
		splashes: []splash{{PartSpark, 50, 0x00FFFF, 0.18, 380}},
	},
	catalog.AttackPistolCombo: {
		color: 0x00FFFF, light: gamemath.Vec3{0.25, 1, 1}, fireball: true, fade: 400,
		splashes: []splash{{PartSpark, 50, 0x00FFFF, 0.18, 380}},
	},
}

var rocketExplosion = explosionStyle{
	color: 0xC8E66B, light: gamemath.Vec3{0.5, 0.375, 0.25}, fade: 400,
	splashes: []splash{
		{PartFlame, 30, 0xF3A612, 10.5, 180},
		{PartSpark, 100, 0xFFC864, 0.35, 600},
		{PartSmoke, 50, 0x444444, 10, 250},
	},
}

var grenadeExplosion = explosionStyle{
	color: 0x74BCF9, light: gamemath.Vec3{0, 0.25, 1}, flare: true, fade: 200,
}

// explosionEffects draws the blast of atk at pos and throws debris away
// from the owner.
func (s *Simulation) explosionEffects(owner *donburi.Entry, atk catalog.Attack, pos gamemath.Vec3) {
	info, ok := catalog.LookupAttack(atk)
	if !ok {
		return
	}
	s.fx.PlaySound(info.ImpactSound, &pos, -1, false)

	style, ok := explosionStyles[atk]
	if !ok {
		style = defaultExplosion
	}
	inWater := s.physics.Material(pos).Volume() == leveldata.MatWater
	if inWater && style.waterFlare {
		s.fx.Flare(PartElectricity, pos, pos, style.color, 12, 280)
		return
	}
	if !inWater {
		for _, sp := range style.splashes {
			s.fx.Splash(sp.part, pos, sp.count, sp.color, sp.size, sp.fade)
		}
		if style.flare {
			s.fx.Flare(PartElectricity, pos, pos, style.color, 30, 280)
		}
	}
	if style.fireball {
		s.fx.Fireball(PartExplosion, pos, style.color, info.ExpRadius, 200)
	}
	s.fx.Fireball(PartExplosion, pos, style.color, 1.15*info.ExpRadius, style.fade)
	s.fx.Light(pos, 2*info.ExpRadius, style.light, 350)

	if inWater || owner == nil || info.Gun != catalog.GunRocket && info.Gun != catalog.GunScatter {
		return
	}
	cfg := config.Projectile
	n := s.rng.IntN(cfg.MaxDebris-cfg.MinDebris) + cfg.MinDebris
	origin := pos
	if atk == catalog.AttackRocket1 {
		away := gamemath.Normalize(components.Body.Get(owner).Pos.Sub(pos))
		origin = origin.Add(away.Mul(8))
	}
	for range n {
		s.SpawnBouncer(origin, owner.Entity(), catalog.KindDebris)
	}
}

// scorch leaves the blast mark of atk on the surface the projectile hit.
func (s *Simulation) scorch(dir, pos gamemath.Vec3, atk catalog.Attack) {
	info := atk.Info()
	neg := dir.Mul(-1)
	radius := info.ExpRadius * 0.75
	s.fx.Stain(StainScorch, pos, neg, radius, 0)
	if s.physics.Material(pos).Volume() == leveldata.MatWater || info.Gun == catalog.GunRocket {
		return
	}
	color := uint32(0x00FFFF)
	switch info.Gun {
	case catalog.GunPulse:
		color = 0xEE88EE
	case catalog.GunGrenade:
		color = 0x74BCF9
		radius /= 2
	}
	s.fx.Stain(StainGlow, pos, neg, radius, color)
}

type impactStyle struct {
	lightRadius float64
	light       gamemath.Vec3
	color       uint32
	splashes    []splash
	stains      []Stain
	hitFlare    bool // electric flare on a body hit
	keepInWater bool // splashes still drawn in water
}

var impactStyles = map[catalog.Attack]impactStyle{
	catalog.AttackScatter1: scatterImpact,
	catalog.AttackScatter2: scatterImpact,
	catalog.AttackSMG1:     smgImpact,
	catalog.AttackSMG2:     smgImpact,
	catalog.AttackPulse2: {
		lightRadius: 80, light: gamemath.Vec3{1, 0.5, 1}, color: 0xEE88EE, hitFlare: true,
		splashes: []splash{{PartSpark, 10, 0xEE88EE, 0.06, 350}, {PartSmoke, 20, 0x777777, 2, 100}},
		stains:   []Stain{StainScorch},
	},
	catalog.AttackRail1: railImpact,
	catalog.AttackRail2: railImpact,
	catalog.AttackInsta: {
		lightRadius: 60, light: gamemath.Vec3{0.25, 0.75, 1}, color: 0x50CFE5, hitFlare: true,
		splashes: []splash{{PartFlame, 80, 0x50CFE5, 1.25, 100}, {PartSpark, 15, 0x50CFE5, 0.25, 200}, {PartSmoke, 20, 0x808080, 2, 60}},
		stains:   []Stain{StainHole, StainGlow},
	},
	catalog.AttackPistol1: {
		lightRadius: 30, light: gamemath.Vec3{0.25, 1, 1}, color: 0x00FFFF,
		splashes: []splash{{PartSpark, 50, 0x00FFFF, 0.17, 180}},
		stains:   []Stain{StainScorch, StainGlow},
	},
}

var scatterImpact = impactStyle{
	lightRadius: 6, light: gamemath.Vec3{0.5, 0.375, 0.25}, color: 0xFFC864,
	splashes: []splash{{PartSpark, 10, 0xFFC864, 0.1, 250}, {PartSmoke, 10, 0x606060, 2.9, 100}},
	stains:   []Stain{StainHole},
}

var smgImpact = impactStyle{
	lightRadius: 15, light: gamemath.Vec3{0.5, 0.375, 0.25}, color: 0xFFC864,
	splashes: []splash{{PartFlame, 50, 0xFFC864, 1, 40}, {PartSpark, 30, 0xFFC864, 0.1, 250}, {PartSmoke, 30, 0x444444, 2.2, 80}},
	stains:   []Stain{StainHole},
}

var railImpact = impactStyle{
	lightRadius: 60, light: gamemath.Vec3{0.25, 1, 0.75}, color: 0x77DD77,
	splashes: []splash{{PartFlame, 80, 0x77DD77, 1.25, 100}, {PartSpark, 15, 0x77DD77, 0.25, 200}, {PartSmoke, 20, 0x808080, 2, 60}},
	stains:   []Stain{StainHole, StainGlow},
}

// impactEffects marks where a hitscan ray ended.
func (s *Simulation) impactEffects(atk catalog.Attack, actor *donburi.Entry, from, to gamemath.Vec3, hit bool) {
	info, ok := catalog.LookupAttack(atk)
	if !ok || gamemath.Dist(from, to) > info.Range {
		return
	}
	dir := gamemath.Normalize(from.Sub(to))
	vol := s.physics.Material(to).Volume()
	inWater, glass := vol == leveldata.MatWater, vol == leveldata.MatGlass

	if style, ok := impactStyles[atk]; ok {
		s.fx.Light(to.Add(dir.Mul(4)), style.lightRadius, style.light, 140)
		switch {
		case hit:
			if style.hitFlare {
				s.fx.Flare(PartElectricity, to, to, style.color, 5, 120)
			}
		case inWater || glass:
		default:
			for _, sp := range style.splashes {
				s.fx.Splash(sp.part, to, sp.count, sp.color, sp.size, sp.fade)
			}
			for _, st := range style.stains {
				s.fx.Stain(st, to, dir, 1, style.color)
			}
			if atk == catalog.AttackPulse2 {
				s.fx.PlaySound(info.ImpactSound, &to, -1, false)
			}
		}
	}
	if hit || atk == catalog.AttackPulse2 {
		return
	}

	sound := info.ImpactSound
	switch {
	case inWater:
		s.fx.Stain(StainHole, to, dir, 0.7, 0)
		sound = catalog.SoundSplashIn
	case glass:
		s.fx.Splash(PartGlass, to, 20, 0xFFFFFF, 0.2, 200)
		s.fx.Stain(StainGlass, to, dir, 0.8, 0)
	}
	if info.Rays > 1 && actor != nil && actor.Entity() == s.observed {
		return
	}
	s.fx.PlaySound(sound, &to, -1, false)
}

type muzzleStyle struct {
	flash      uint32
	flashSize  float64
	light      float64
	lightColor gamemath.Vec3
	eject      bool
	tracer     uint32 // 0 when the shot leaves no trail
	tracerSize float64
	lightning  bool
	remote     bool // remote shots draw impacts locally
}

var muzzleStyles = map[catalog.Attack]muzzleStyle{
	catalog.AttackScatter1: scatterMuzzle,
	catalog.AttackScatter2: scatterMuzzle,
	catalog.AttackSMG1:     {flash: 0xEFE898, flashSize: 1.5, light: 60, lightColor: gamemath.Vec3{0.5, 0.375, 0.25}, eject: true, remote: true},
	catalog.AttackSMG2:     {flash: 0xEFE898, flashSize: 1.5, light: 60, lightColor: gamemath.Vec3{0.5, 0.375, 0.25}, eject: true, tracer: 0xFFC864, tracerSize: 1.2, remote: true},
	catalog.AttackPulse1:   {flash: 0xDD88DD, flashSize: 1.8},
	catalog.AttackPulse2:   {flash: 0xDD88DD, flashSize: 1.6, light: 30, lightColor: gamemath.Vec3{1, 0.5, 1}, lightning: true, remote: true},
	catalog.AttackRocket1:  {flash: 0xEFE898, flashSize: 3},
	catalog.AttackRail1:    railMuzzle,
	catalog.AttackRail2:    railMuzzle,
	catalog.AttackGrenade1: {flash: 0x74BCF9, flashSize: 2.8},
	catalog.AttackGrenade2: {flash: 0x74BCF9, flashSize: 2.8},
	catalog.AttackPistol1:  pistolMuzzle,
	catalog.AttackPistol2:  pistolMuzzle,
	catalog.AttackInsta:    {flash: 0x50CFE5, flashSize: 2.75, light: 60, lightColor: gamemath.Vec3{0.25, 0.75, 1}, tracer: 0x50CFE5, tracerSize: 1, lightning: true},
}

var scatterMuzzle = muzzleStyle{
	flash: 0xEFE598, flashSize: 2.4, light: 60, lightColor: gamemath.Vec3{0.5, 0.375, 0.25},
	eject: true, tracer: 0xFFC864, tracerSize: 1.2, remote: true,
}

var railMuzzle = muzzleStyle{
	flash: 0x77DD77, flashSize: 2.75, light: 60, lightColor: gamemath.Vec3{0.25, 1, 0.75},
	eject: true, tracer: 0x55DD55, tracerSize: 0.5, remote: true,
}

var pistolMuzzle = muzzleStyle{
	flash: 0x00FFFF, flashSize: 2.5, light: 30, lightColor: gamemath.Vec3{0.25, 1, 1},
	tracer: 0x00FFFF, tracerSize: 2, remote: true,
}

type trailStyle struct {
	color    uint32
	size     float64
	part     Particle
	smoke    bool // smoke puffs while moving fast
	streak   uint32
	moving   bool // only drawn above trailSpeed
	ownColor bool // bolts owned by self or AI draw larger
}

var trailStyles = map[catalog.Kind]trailStyle{
	catalog.KindGrenade:  {color: 0x74BCF9, size: 1, part: PartRing, moving: true},
	catalog.KindGrenade2: {color: 0x74BCF9, size: 1, part: PartRing, moving: true, streak: 0x74BCF9},
	catalog.KindRocket:   {color: 0xFFC864, size: 1.5, part: PartMuzzleFlash, smoke: true},
	catalog.KindRocket2:  {color: 0x555555, size: 1.6, part: PartSmoke, moving: true, streak: 0xFFC864},
	catalog.KindPulse:    {color: 0xDD88DD, size: 2, part: PartOrb},
	catalog.KindPlasma:   {color: 0x00FFFF, size: 6, part: PartOrb, ownColor: true},
	catalog.KindGib:      {color: 0x60FFFF, size: 0.8, part: PartBlood, moving: true},
	catalog.KindDebris:   {color: 0x555555, size: 1.8, part: PartSmoke, moving: true},
	catalog.KindBullet:   {color: 0xFFC864, size: 1},
}

const trailSpeed = 50

// trailEffects draws the per-tick trail of p at its drawn position.
func (s *Simulation) trailEffects(p *components.ProjectileData, pos, dv gamemath.Vec3) {
	moving := p.Vel.Len() > trailSpeed
	if p.InLiquid.Volume() == leveldata.MatWater {
		if moving || p.Has(catalog.FlagLinear) {
			s.fx.Splash(PartBubble, pos, 1, 0xFFFFFF, 1, 200)
		}
		return
	}
	style, ok := trailStyles[p.Kind]
	if !ok {
		return
	}
	color, size := style.color, style.size
	if p.Kind == catalog.KindBullet {
		switch p.Attack.Info().Gun {
		case catalog.GunPistol:
			color = 0x00FFFF
		case catalog.GunRail:
			color = 0x77DD77
		}
	}
	if style.ownColor && !(p.Owner == s.self || s.isAI(p.Owner)) {
		size -= 2
	}
	if !style.moving || moving {
		switch style.part {
		case PartOrb, PartMuzzleFlash:
			if p.Kind == catalog.KindRocket && p.Lifetime <= p.Attack.Info().Lifetime/2 {
				size *= 4
			}
			s.fx.Flare(style.part, pos, pos, color, size, 1)
		default:
			s.fx.Splash(style.part, pos, 1, color, size, 200)
		}
	}
	if style.smoke && p.Lifetime > p.Attack.Info().Lifetime/2 {
		s.fx.Splash(PartSmoke, pos, 3, 0x303030, 2.4, 300)
	}
	if style.streak != 0 {
		if p.Lifetime < p.Attack.Info().Lifetime-100 {
			s.fx.Flare(PartTrail, p.LastPos, pos, style.streak, 0.4, 500)
		}
		p.LastPos = pos
	}
	if p.Has(catalog.FlagLinear) {
		length := math.Min(80, gamemath.Dist(p.From, pos))
		dir := gamemath.Normalize(dv)
		if dir == (gamemath.Vec3{}) {
			dir = gamemath.Normalize(p.Vel)
		}
		s.fx.Flare(PartTrail, pos.Sub(dir.Mul(length)), pos.Add(dir.Mul(2.4)), color, size, 1)
	}
}

// bounceEffects plays the cues of p hitting surface.
func (s *Simulation) bounceEffects(p *components.ProjectileData, surface gamemath.Vec3) {
	if p.InLiquid.Volume() == leveldata.MatWater {
		return
	}
	if p.Vel.Len() > 5 {
		if snd := p.Kind.Info().BounceSound; snd.Valid() {
			pos := p.Pos
			s.fx.PlaySound(snd, &pos, -1, false)
		}
	}
	switch p.Kind {
	case catalog.KindRocket2:
		s.fx.Splash(PartSpark, p.Pos, 20, 0xFFC864, 0.3, 250)
	case catalog.KindGib:
		at := p.Pos.Sub(surface.Mul(p.Radius))
		s.fx.Stain(StainBlood, at, surface, 2.96/float64(max(p.Bounces, 1)), 0x60FFFF)
	}
}

// liquidEffects splashes a body crossing a liquid surface.
func (s *Simulation) liquidEffects(body *components.BodyData, mat leveldata.Material, tr Transition) {
	if tr == TransitionNone {
		return
	}
	part, color := PartWater, uint32(0x87CEEB)
	if mat.Volume() == leveldata.MatLava {
		part, color = PartSmoke, 0xFF4500
	}
	s.fx.Splash(part, body.Pos, 40, color, 1.5, 300)
	pos := body.Pos
	if tr == TransitionIn {
		s.fx.PlaySound(catalog.SoundSplashIn, &pos, -1, false)
	} else {
		s.fx.PlaySound(catalog.SoundSplashOut, &pos, -1, false)
	}
}
