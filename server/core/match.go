package core

import (
	"log"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

func (s *Server) matchData() *components.MatchData {
	return components.Match.Get(s.world.Entry(s.match))
}

// MatchState is the current round state.
func (s *Server) MatchState() netconfig.MatchStateID {
	return s.matchData().State
}

// updateMatch moves between rounds. A round ends when someone reaches the
// frag limit; the intermission that follows deals no damage.
func (s *Server) updateMatch(dt int64) {
	m := s.matchData()
	switch m.State {
	case netconfig.MatchStateWaiting:
		if s.PlayerCount() > 0 {
			s.setMatchState(m, netconfig.MatchStatePlaying)
		}

	case netconfig.MatchStatePlaying:
		limit := config.Server.FragLimit
		leader := m.GetLeader()
		if limit <= 0 || leader < 0 || m.GetPlayerScore(leader).Frags < limit {
			return
		}
		log.Printf("[host] client %d wins the round", leader)
		m.Timer = config.Server.IntermissionTime
		s.setBetweenRounds(true)
		s.endRound()
		s.setMatchState(m, netconfig.MatchStateIntermission)

	case netconfig.MatchStateIntermission:
		m.Timer -= dt
		if m.Timer > 0 {
			return
		}
		m.Timer = 0
		for i := range m.Scores {
			m.Scores[i].Frags, m.Scores[i].Deaths = 0, 0
		}
		s.sim.RemoveAllProjectiles()
		s.setBetweenRounds(false)
		s.setMatchState(m, netconfig.MatchStatePlaying)
	}
}

func (s *Server) setMatchState(m *components.MatchData, state netconfig.MatchStateID) {
	if m.State == state {
		return
	}
	m.State = state
	s.publish("matchstate", messages.MatchStateChangeEvent{NewState: int(state)})
}

func (s *Server) setBetweenRounds(on bool) {
	s.rules.BetweenRounds = on
	s.sim.SetRules(s.rules)
}

// endRound books every player's totals and counts the round in the ledger.
func (s *Server) endRound() {
	if s.ledger == nil {
		return
	}
	var names []string
	for _, p := range s.playerList() {
		s.bookStats(p)
		names = append(names, p.name)
	}
	s.ledger.EndMatch(names...)
}

// settleDeaths scores the kills the simulation reported this tick and
// starts the victims' respawn timers.
func (s *Server) settleDeaths() {
	if len(s.deaths) == 0 {
		return
	}
	m := s.matchData()
	for _, d := range s.deaths {
		victim := s.entry(d.victim)
		if victim == nil {
			continue
		}
		vc := components.Combatant.Get(victim)

		evt := messages.DeathEvent{Victim: vc.ClientNum, Killer: -1, Gibbed: d.gibbed}
		killerName := ""
		if killer := s.entry(d.killer); killer != nil {
			kc := components.Combatant.Get(killer)
			evt.Killer = kc.ClientNum
			killerName = kc.Name
			if !kc.AI && (d.killer == d.victim || !s.sim.Rules().Teams || kc.Team != vc.Team || kc.Team == 0) {
				m.AddFrag(kc.ClientNum, d.killer == d.victim)
			}
		}
		if !vc.AI {
			m.AddDeath(vc.ClientNum)
		}
		for _, cn := range []int{vc.ClientNum, evt.Killer} {
			if p := s.playerByNum(cn); p != nil {
				s.bookStats(p)
			}
		}
		if s.ledger != nil {
			s.ledger.AddKill(killerName, vc.Name)
		}

		if !victim.HasComponent(components.Death) {
			victim.AddComponent(components.Death)
		}
		components.Death.SetValue(victim, components.DeathData{
			Timer:  config.Server.RespawnDelay,
			Killer: d.killer,
			Gibbed: d.gibbed,
		})
		s.publish("death", evt)
	}
	s.deaths = s.deaths[:0]
}

// updateRespawns counts down dead actors and respawns the ones that are due.
func (s *Server) updateRespawns(dt int64) {
	var due []donburi.Entity
	components.Death.Each(s.world, func(e *donburi.Entry) {
		d := components.Death.Get(e)
		d.Timer -= dt
		if d.Timer <= 0 {
			due = append(due, e.Entity())
		}
	})
	for _, e := range due {
		s.respawn(e)
	}
}

func (s *Server) respawn(e donburi.Entity) {
	entry := s.entry(e)
	if entry == nil {
		return
	}
	entry.RemoveComponent(components.Death)

	c := components.Combatant.Get(entry)
	b := components.Body.Get(entry)
	c.LifeSequence++
	pos, yaw := s.level.Spawn(c.ClientNum+c.LifeSequence, b.EyeHeight)
	b.Pos, b.Yaw, b.Pitch = pos, yaw, 0
	b.Vel = gamemath.Vec3{}

	c.State = netconfig.StateAlive
	c.Health = config.Server.SpawnHealth
	c.Shield = 0
	c.Powerup = netconfig.PowerupNone
	c.Attacking = catalog.ActIdle
	c.GunWait = 0
	c.PitchRecoil = 0
	for g := range c.Ammo {
		c.Ammo[g] = config.Actor.StartAmmo
	}

	if p := s.playerByNum(c.ClientNum); p != nil && p.actor == e {
		p.target = pos
		p.held = catalog.ActIdle
	}
	log.Printf("[host] client %d respawned (life %d)", c.ClientNum, c.LifeSequence)
}
