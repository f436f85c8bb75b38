package archetypes

import (
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Body,
		components.Combatant,
		components.Object,
	)
	Monster = newArchetype(
		tags.Monster,
		components.Body,
		components.Combatant,
		components.Object,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
	)
	Junk = newArchetype(
		tags.Junk,
		components.Projectile,
	)
	Match = newArchetype(
		tags.Match,
		components.Match,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
