// Package combat is the weapon core: shooting, hit resolution, projectile
// lifecycles and explosions. A Simulation is owned by one goroutine.
package combat

import (
	"log"
	"math/rand/v2"

	"github.com/automoto/ordnance/archetypes"
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

// Options configures a Simulation. Nil services are replaced by no-ops.
type Options struct {
	Physics      Physics
	Presentation Presentation
	Network      Network
	Rules        MatchRules
	Seed         uint64
	// Authoritative makes every actor's shots and detonations count as
	// authored here, as on a host.
	Authoritative bool
}

// Simulation runs the weapon rules over a donburi world. Actors are
// entities with Body and Combatant; projectiles live in the Store.
type Simulation struct {
	world   donburi.World
	physics Physics
	fx      Presentation
	net     Network
	rules   MatchRules
	rng     *rand.Rand
	host    bool

	now   int64
	store *Store
	broad *broadphase

	self     donburi.Entity
	observed donburi.Entity

	hits []messages.HitRecord

	onSpawn  func(donburi.Entity)
	onRemove func(donburi.Entity)
	onDeath  func(victim, killer donburi.Entity, gibbed bool)
}

// NewSimulation binds a simulation to w.
func NewSimulation(w donburi.World, opts Options) *Simulation {
	s := &Simulation{
		world:    w,
		physics:  opts.Physics,
		fx:       opts.Presentation,
		net:      opts.Network,
		rules:    opts.Rules,
		rng:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		host:     opts.Authoritative,
		store:    NewStore(),
		broad:    newBroadphase(),
		self:     donburi.Null,
		observed: donburi.Null,
	}
	if s.physics == nil {
		s.physics = openSpace{}
	}
	if s.fx == nil {
		s.fx = nopPresentation{}
	}
	if s.net == nil {
		s.net = nopNetwork{}
	}
	return s
}

// Now is the simulation clock in milliseconds.
func (s *Simulation) Now() int64 { return s.now }

func (s *Simulation) World() donburi.World { return s.world }

func (s *Simulation) Store() *Store { return s.store }

func (s *Simulation) Rules() MatchRules { return s.rules }

func (s *Simulation) SetRules(r MatchRules) { s.rules = r }

// SetSelf marks the locally controlled actor. Its shots are announced to
// the network and it receives HUD sounds.
func (s *Simulation) SetSelf(e donburi.Entity) {
	s.self = e
	if s.observed == donburi.Null {
		s.observed = e
	}
}

// SetObserved marks the actor the camera follows.
func (s *Simulation) SetObserved(e donburi.Entity) { s.observed = e }

func (s *Simulation) SetSpawnHook(fn func(donburi.Entity)) { s.onSpawn = fn }

func (s *Simulation) SetRemoveHook(fn func(donburi.Entity)) { s.onRemove = fn }

// SetDeathHook is called whenever an actor is killed by immediate damage.
func (s *Simulation) SetDeathHook(fn func(victim, killer donburi.Entity, gibbed bool)) {
	s.onDeath = fn
}

// Hits returns a copy of the hit records gathered by the last shot or
// explosion.
func (s *Simulation) Hits() []messages.HitRecord {
	out := make([]messages.HitRecord, len(s.hits))
	copy(out, s.hits)
	return out
}

// ActorOptions describes a new actor.
type ActorOptions struct {
	Name      string
	ClientNum int
	Pos       gamemath.Vec3
	Yaw       float64
	Team      int
	AI        bool
	Skill     int
	Gun       catalog.Gun
}

// SpawnActor creates a live player or monster with the default body.
func (s *Simulation) SpawnActor(opts ActorOptions) *donburi.Entry {
	arch := archetypes.Player
	if opts.AI {
		arch = archetypes.Monster
	}
	entry := arch.Spawn(s.world)
	a := config.Actor
	components.Body.SetValue(entry, components.BodyData{
		Pos:        opts.Pos,
		Radius:     a.Radius,
		EyeHeight:  a.EyeHeight,
		AboveEye:   a.AboveEye,
		HeadRadius: a.HeadRadius,
		LegsRadius: a.LegsRadius,
		Weight:     a.Weight,
		Yaw:        opts.Yaw,
	})
	c := components.CombatantData{
		Name:        opts.Name,
		ClientNum:   opts.ClientNum,
		State:       netconfig.StateAlive,
		AI:          opts.AI,
		Team:        opts.Team,
		Skill:       opts.Skill,
		Health:      a.MaxHealth,
		MaxHealth:   a.MaxHealth,
		Gun:         opts.Gun,
		LastAttack:  catalog.AttackInvalid,
		AttackSound: catalog.SoundNone,
		AttackChan:  -1,
		IdleSound:   catalog.SoundNone,
		IdleChan:    -1,
		Enemy:       donburi.Null,
	}
	for g := range c.Ammo {
		c.Ammo[g] = a.StartAmmo
	}
	components.Combatant.SetValue(entry, c)
	return entry
}

// RemoveActor purges the actor's projectiles and deletes it.
func (s *Simulation) RemoveActor(e donburi.Entity) {
	s.RemoveProjectilesForOwner(e)
	s.broad.Forget(e)
	if s.world.Valid(e) {
		entry := s.world.Entry(e)
		c := components.Combatant.Get(entry)
		s.stopAttackSounds(c)
		s.world.Remove(e)
	}
	if s.self == e {
		s.self = donburi.Null
	}
	if s.observed == e {
		s.observed = s.self
	}
}

// ActorByClient finds the actor with the given client number.
func (s *Simulation) ActorByClient(cn int) *donburi.Entry {
	var found *donburi.Entry
	components.Combatant.Each(s.world, func(e *donburi.Entry) {
		if found == nil && components.Combatant.Get(e).ClientNum == cn {
			found = e
		}
	})
	return found
}

// actorSnapshot returns the current actors in world iteration order, so
// callers can spawn or kill while walking it.
func (s *Simulation) actorSnapshot() []*donburi.Entry {
	var out []*donburi.Entry
	components.Combatant.Each(s.world, func(e *donburi.Entry) {
		if e.HasComponent(components.Body) {
			out = append(out, e)
		}
	})
	return out
}

func (s *Simulation) entry(e donburi.Entity) *donburi.Entry {
	if e == donburi.Null || !s.world.Valid(e) {
		return nil
	}
	return s.world.Entry(e)
}

func (s *Simulation) isAI(e donburi.Entity) bool {
	entry := s.entry(e)
	if entry == nil || !entry.HasComponent(components.Combatant) {
		return false
	}
	return components.Combatant.Get(entry).AI
}

func (s *Simulation) isAlly(a, b *components.CombatantData) bool {
	return s.rules.Teams && a.Team > 0 && a.Team == b.Team
}

// authored reports whether events from e originate in this simulation.
func (s *Simulation) authored(e *donburi.Entry) bool {
	return s.host || e.Entity() == s.self || components.Combatant.Get(e).AI
}

func (s *Simulation) verbosef(format string, args ...any) {
	if config.Combat.Verbose {
		log.Printf("[combat] "+format, args...)
	}
}
