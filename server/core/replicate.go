package core

import (
	"fmt"
	"log"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/replay"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/netcomponents"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
)

// replicate creates a network-synced entity carrying comp, interpolated on
// peers.
func (s *Server) replicate(comp donburi.IComponentType) (donburi.Entity, error) {
	e := s.world.Create(comp)
	if err := srvsync.NetworkSync(s.world, &e, srvsync.WithInterp(comp)); err != nil {
		s.world.Remove(e)
		return donburi.Null, fmt.Errorf("network sync: %w", err)
	}
	return e, nil
}

// onProjectileSpawn gives every weapon projectile a replica. Junk is
// cosmetic and stays local to each peer.
func (s *Server) onProjectileSpawn(e donburi.Entity) {
	entry := s.entry(e)
	if entry == nil || components.Projectile.Get(entry).Has(catalog.FlagJunk) {
		return
	}
	r, err := s.replicate(netcomponents.NetProjectile)
	if err != nil {
		log.Printf("[host] failed to replicate projectile: %v", err)
		return
	}
	s.projectiles[e] = r
}

func (s *Server) onProjectileRemove(e donburi.Entity) {
	r, ok := s.projectiles[e]
	if !ok {
		return
	}
	delete(s.projectiles, e)
	if s.world.Valid(r) {
		s.world.Remove(r)
	}
}

// clientNum returns the client number of actor e, or -1.
func (s *Server) clientNum(e donburi.Entity) int {
	entry := s.entry(e)
	if entry == nil || !entry.HasComponent(components.Combatant) {
		return -1
	}
	return components.Combatant.Get(entry).ClientNum
}

func (s *Server) syncActors() {
	for _, p := range s.playerList() {
		actor, replica := s.entry(p.actor), s.entry(p.replica)
		if actor == nil || replica == nil {
			continue
		}
		b := components.Body.Get(actor)
		c := components.Combatant.Get(actor)
		netcomponents.NetActor.SetValue(replica, netcomponents.NetActorData{
			X:            b.Pos.X(),
			Y:            b.Pos.Y(),
			Z:            b.Pos.Z(),
			Yaw:          b.Yaw,
			Pitch:        b.Pitch,
			ClientNum:    c.ClientNum,
			LifeSequence: c.LifeSequence,
			State:        c.State,
			Health:       c.Health,
			Shield:       c.Shield,
			Gun:          int(c.Gun),
			Team:         c.Team,
			AI:           c.AI,
		})
	}

	m := s.matchData()
	netcomponents.NetMatch.SetValue(s.world.Entry(s.match), netcomponents.NetMatchData{
		Frags:       m.FragTable(),
		MatchState:  m.State,
		Multiplayer: true,
		Mayhem:      s.rules.Mayhem,
		Teams:       s.rules.Teams,
	})
}

func (s *Server) syncProjectiles() {
	for e, r := range s.projectiles {
		entry, replica := s.entry(e), s.entry(r)
		if entry == nil || replica == nil {
			continue
		}
		p := components.Projectile.Get(entry)
		netcomponents.NetProjectile.SetValue(replica, netcomponents.NetProjectileData{
			X:       p.Pos.X(),
			Y:       p.Pos.Y(),
			Z:       p.Pos.Z(),
			VelX:    p.Vel.X(),
			VelY:    p.Vel.Y(),
			VelZ:    p.Vel.Z(),
			Yaw:     p.Yaw,
			Pitch:   p.Pitch,
			Roll:    p.Roll,
			Owner:   s.clientNum(p.Owner),
			Attack:  int(p.Attack),
			Kind:    int(p.Kind),
			Variant: p.Variant,
			ID:      p.ID,
		})
	}
}

// recordFrame writes the weapon projectiles in flight to the replay.
func (s *Server) recordFrame() {
	if s.replay == nil {
		return
	}
	var frame []replay.Projectile
	for _, v := range s.sim.Projectiles() {
		if !v.Attack.Valid() {
			continue
		}
		frame = append(frame, replay.Projectile{
			ID:      v.ID,
			Kind:    int(v.Kind),
			Attack:  int(v.Attack),
			Owner:   s.clientNum(v.Owner),
			Pos:     [3]float64{v.Pos.X(), v.Pos.Y(), v.Pos.Z()},
			Bounces: v.Bounces,
		})
	}
	if err := s.replay.AppendFrame(s.tick, s.sim.Now(), frame); err != nil {
		log.Printf("[host] replay frame: %v", err)
	}
}
