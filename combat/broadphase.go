package combat

import (
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// broadphase is an XY spatial hash of actor footprints. It only culls;
// callers still run the exact tests on whatever it returns.
type broadphase struct {
	space   *resolv.Space
	probe   *resolv.Object
	tracked map[donburi.Entity]*resolv.Object
	// outside holds actors whose footprint leaves the grid. They are
	// always returned as candidates.
	outside map[donburi.Entity]struct{}
	seen    map[donburi.Entity]struct{}
	ox, oy  float64
	w, h    float64
}

func newBroadphase() *broadphase {
	cfg := config.Broadphase
	bp := &broadphase{
		space:   resolv.NewSpace(cfg.Width, cfg.Height, cfg.CellSize, cfg.CellSize),
		tracked: map[donburi.Entity]*resolv.Object{},
		outside: map[donburi.Entity]struct{}{},
		seen:    map[donburi.Entity]struct{}{},
		ox:      cfg.OriginX,
		oy:      cfg.OriginY,
		w:       float64(cfg.Width),
		h:       float64(cfg.Height),
	}
	bp.probe = resolv.NewObject(0, 0, 1, 1)
	bp.probe.SetShape(resolv.NewRectangle(0, 0, 1, 1))
	bp.space.Add(bp.probe)
	return bp
}

// Sync moves every actor footprint to its body and forgets removed actors.
func (bp *broadphase) Sync(w donburi.World) {
	clear(bp.seen)
	components.Combatant.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Body) {
			return
		}
		body := components.Body.Get(e)
		ent := e.Entity()
		bp.seen[ent] = struct{}{}

		obj, ok := bp.tracked[ent]
		if !ok {
			obj = bp.footprint(e, body)
			bp.tracked[ent] = obj
		}
		size := body.Radius * 2
		obj.X = body.Pos.X() - body.Radius - bp.ox
		obj.Y = body.Pos.Y() - body.Radius - bp.oy
		obj.W, obj.H = size, size
		obj.Update()

		if obj.X < 0 || obj.Y < 0 || obj.X+size > bp.w || obj.Y+size > bp.h {
			bp.outside[ent] = struct{}{}
		} else {
			delete(bp.outside, ent)
		}
	})

	for ent, obj := range bp.tracked {
		if _, ok := bp.seen[ent]; ok {
			continue
		}
		bp.space.Remove(obj)
		delete(bp.tracked, ent)
		delete(bp.outside, ent)
	}
}

func (bp *broadphase) footprint(e *donburi.Entry, body *components.BodyData) *resolv.Object {
	size := body.Radius * 2
	kind := tags.ResolvPlayer
	if e.HasComponent(tags.Monster) {
		kind = tags.ResolvMonster
	}
	obj := resolv.NewObject(0, 0, size, size, tags.ResolvActor, kind)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = e.Entity()
	bp.space.Add(obj)
	if e.HasComponent(components.Object) {
		components.Object.SetValue(e, components.ObjectData{Object: obj})
	}
	return obj
}

// Forget drops an actor immediately instead of waiting for the next Sync.
func (bp *broadphase) Forget(ent donburi.Entity) {
	if obj, ok := bp.tracked[ent]; ok {
		bp.space.Remove(obj)
		delete(bp.tracked, ent)
	}
	delete(bp.outside, ent)
}

// Near returns the actors whose footprint may overlap the XY square of
// half-size half around center.
func (bp *broadphase) Near(center gamemath.Vec3, half float64) map[donburi.Entity]struct{} {
	out := make(map[donburi.Entity]struct{}, len(bp.outside)+4)
	for ent := range bp.outside {
		out[ent] = struct{}{}
	}

	half++
	bp.probe.X = center.X() - half - bp.ox
	bp.probe.Y = center.Y() - half - bp.oy
	bp.probe.W, bp.probe.H = half*2, half*2
	bp.probe.Update()

	if check := bp.probe.Check(0, 0, tags.ResolvActor); check != nil {
		for _, obj := range check.ObjectsByTags(tags.ResolvActor) {
			if ent, ok := obj.Data.(donburi.Entity); ok {
				out[ent] = struct{}{}
			}
		}
	}
	return out
}
