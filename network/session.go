package network

import (
	"log"

	"github.com/automoto/ordnance/combat"
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/physics"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/automoto/ordnance/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// Session is a joined peer's view of the match: a local simulation whose
// actors follow the host's snapshots and whose effects follow remote events.
type Session struct {
	client *Client
	world  donburi.World
	sim    *combat.Simulation

	actors  map[int]donburi.Entity // client number -> local actor
	present map[int]bool

	seq    uint32
	target gamemath.Vec3
}

// NewSession builds the local simulation for a client that has joined.
func NewSession(client *Client, arena *leveldata.Arena, seed uint64) *Session {
	world := donburi.NewWorld()
	return &Session{
		client: client,
		world:  world,
		sim: combat.NewSimulation(world, combat.Options{
			Physics: physics.New(arena),
			Network: client,
			Rules:   client.Rules(),
			Seed:    seed,
		}),
		actors:  make(map[int]donburi.Entity),
		present: make(map[int]bool),
	}
}

func (s *Session) Simulation() *combat.Simulation { return s.sim }

// Self is the local player's actor, or nil before the first snapshot.
func (s *Session) Self() *donburi.Entry {
	e, ok := s.actors[s.client.ClientNum()]
	if !ok || !s.world.Valid(e) {
		return nil
	}
	return s.world.Entry(e)
}

// Step applies the newest snapshot and queued remote events, then advances
// the local projectiles by dt milliseconds.
func (s *Session) Step(dt int64) {
	if snap := s.client.LatestSnapshot(); snap != nil {
		s.applySnapshot(*snap)
	}
	s.client.Mirror(s.sim)
	for _, d := range s.client.DrainDeathEvents() {
		log.Printf("[client] client %d killed by %d", d.Victim, d.Killer)
	}
	for _, m := range s.client.DrainMatchStateEvents() {
		log.Printf("[client] match state is now %d", m.NewState)
	}

	if self := s.Self(); self != nil {
		s.sim.FireShot(self.Entity(), s.target)
	}
	s.sim.TickProjectiles(dt)
	s.sim.UpdateRecoil(dt)
}

// Fire sets the local trigger and tells the host. The local shot only draws;
// the host settles the damage.
func (s *Session) Fire(action catalog.Action, target gamemath.Vec3) error {
	self := s.Self()
	if self == nil {
		return nil
	}
	b := components.Body.Get(self)
	c := components.Combatant.Get(self)
	if c.Alive() {
		c.Attacking = action
	}
	s.target = target

	s.seq++
	return s.client.SendFireInput(messages.FireInput{
		Sequence:  s.seq,
		Eye:       messages.EncodeVec(b.Pos),
		Target:    messages.EncodeVec(target),
		Yaw:       b.Yaw,
		Pitch:     b.Pitch,
		Crouching: c.Crouching,
		Action:    action,
	})
}

func (s *Session) applySnapshot(snapshot esync.WorldSnapshot) {
	clear(s.present)
	for _, ent := range snapshot {
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			if a, ok := instance.(netcomponents.NetActorData); ok {
				s.applyActor(a)
			}
		}
	}
	for cn, e := range s.actors {
		if !s.present[cn] {
			s.sim.RemoveActor(e)
			delete(s.actors, cn)
		}
	}
}

// applyActor creates or updates the local copy of a replicated actor.
func (s *Session) applyActor(a netcomponents.NetActorData) {
	s.present[a.ClientNum] = true
	pos := gamemath.Vec3{a.X, a.Y, a.Z}

	e, ok := s.actors[a.ClientNum]
	if !ok || !s.world.Valid(e) {
		entry := s.sim.SpawnActor(combat.ActorOptions{
			ClientNum: a.ClientNum,
			Pos:       pos,
			Yaw:       a.Yaw,
			Team:      a.Team,
			AI:        a.AI,
			Gun:       catalog.Gun(a.Gun),
		})
		e = entry.Entity()
		s.actors[a.ClientNum] = e
		if a.ClientNum == s.client.ClientNum() {
			s.sim.SetSelf(e)
		}
	}

	entry := s.world.Entry(e)
	b := components.Body.Get(entry)
	c := components.Combatant.Get(entry)
	b.Pos, b.Yaw, b.Pitch = pos, a.Yaw, a.Pitch
	c.State = a.State
	c.Health = a.Health
	c.Shield = a.Shield
	c.Team = a.Team
	c.LifeSequence = a.LifeSequence
	if g := catalog.Gun(a.Gun); g.Valid() && g != c.Gun {
		s.sim.HandleGunSelect(messages.GunSelectEvent{Actor: a.ClientNum, Gun: g})
	}
}
