package combat

import (
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/messages"
)

// HandleRemoteShoot replays another simulation's shot cosmetically. Its
// projectiles are created non-local so they never deal damage here.
func (s *Simulation) HandleRemoteShoot(evt messages.ShootEvent) {
	shooter := s.ActorByClient(evt.Shooter)
	if shooter == nil {
		s.verbosef("shot from unknown client %d", evt.Shooter)
		return
	}
	if _, ok := catalog.LookupAttack(evt.Attack); !ok {
		s.verbosef("shot with unknown attack %d", evt.Attack)
		return
	}
	c := components.Combatant.Get(shooter)
	prevAction := c.LastAction
	c.GunWait = 0
	c.LastAction = s.now
	c.LastAttack = evt.Attack
	s.shotEffects(evt.Attack, messages.DecodeVec(evt.From), messages.DecodeVec(evt.To), shooter, false, evt.ID, prevAction, nil)
}

// HandleRemoteExplode detonates the mirrored projectile named by evt.
func (s *Simulation) HandleRemoteExplode(evt messages.ExplodeEvent) {
	owner := s.ActorByClient(evt.Shooter)
	if owner == nil {
		s.verbosef("explode from unknown client %d", evt.Shooter)
		return
	}
	s.ExplodeEffects(owner, evt.Attack, evt.ProjectileID)
}

// HandleGunSelect applies a remote weapon switch.
func (s *Simulation) HandleGunSelect(evt messages.GunSelectEvent) {
	actor := s.ActorByClient(evt.Actor)
	if actor == nil || !evt.Gun.Valid() {
		return
	}
	s.setGun(actor, evt.Gun)
}
