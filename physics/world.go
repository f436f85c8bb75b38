// Package physics is the arena world the combat simulation runs against: a
// ground plane and solid blocks loaded from a level, with liquid zones.
// Bodies are treated as spheres of their radius when bouncing.
package physics

import (
	"math"

	"github.com/automoto/ordnance/combat"
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/solarlune/resolv"
)

const tagSolid = "solid"

// World implements combat.Physics over a leveldata.Arena. Block footprints
// live in a resolv space so ray and sweep tests only visit nearby blocks.
type World struct {
	arena  *leveldata.Arena
	space  *resolv.Space
	probe  *resolv.Object
	blocks []leveldata.Block
	w, h   float64
}

var _ combat.Physics = (*World)(nil)

// New builds the collision world for arena.
func New(arena *leveldata.Arena) *World {
	cell := max(int(arena.CellSize), 1)
	w := max(int(math.Ceil(arena.WorldWidth())), cell)
	h := max(int(math.Ceil(arena.WorldHeight())), cell)
	space := resolv.NewSpace(w, h, cell, cell)

	for i, b := range arena.Blocks {
		obj := resolv.NewObject(b.X, b.Y, b.W, b.H, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, b.W, b.H))
		obj.Data = i
		space.Add(obj)
	}

	probe := resolv.NewObject(0, 0, 1, 1)
	probe.SetShape(resolv.NewRectangle(0, 0, 1, 1))
	space.Add(probe)

	return &World{
		arena:  arena,
		space:  space,
		probe:  probe,
		blocks: arena.Blocks,
		w:      float64(w),
		h:      float64(h),
	}
}

// Arena returns the level the world was built from.
func (w *World) Arena() *leveldata.Arena { return w.arena }

// RayCube returns the distance along dir to the floor or the nearest
// block, capped at maxDist.
func (w *World) RayCube(from, dir gamemath.Vec3, maxDist float64) float64 {
	if t, _, ok := w.cast(from, dir, maxDist, 0); ok {
		return t
	}
	return maxDist
}

// cast sweeps a sphere of radius grow from from along the unit vector dir.
// It returns the travel distance and surface normal of the first contact.
func (w *World) cast(from, dir gamemath.Vec3, maxDist, grow float64) (float64, gamemath.Vec3, bool) {
	best := maxDist
	var normal gamemath.Vec3
	hit := false

	floor := w.arena.Floor + grow
	if dir.Z() < 0 {
		if t := math.Max((floor-from.Z())/dir.Z(), 0); t <= best {
			best, normal, hit = t, gamemath.Vec3{0, 0, 1}, true
		}
	}

	to := from.Add(dir.Mul(maxDist))
	for _, i := range w.nearBlocks(from, to, grow) {
		b := w.blocks[i]
		lo := gamemath.Vec3{b.X - grow, b.Y - grow, w.arena.Floor - grow}
		hi := gamemath.Vec3{b.X + b.W + grow, b.Y + b.H + grow, w.arena.Floor + b.Top + grow}
		if t, n, ok := rayBox(from, dir, lo, hi); ok && t <= best {
			best, normal, hit = t, n, true
		}
	}
	return best, normal, hit
}

// nearBlocks returns the indices of blocks whose footprint may touch the
// XY bounds of the segment grown by pad.
func (w *World) nearBlocks(from, to gamemath.Vec3, pad float64) []int {
	if len(w.blocks) == 0 {
		return nil
	}
	x0 := math.Max(math.Min(from.X(), to.X())-pad-1, 0)
	y0 := math.Max(math.Min(from.Y(), to.Y())-pad-1, 0)
	x1 := math.Min(math.Max(from.X(), to.X())+pad+1, w.w)
	y1 := math.Min(math.Max(from.Y(), to.Y())+pad+1, w.h)
	if x1 <= x0 || y1 <= y0 {
		return nil
	}

	w.probe.X, w.probe.Y = x0, y0
	w.probe.W, w.probe.H = x1-x0, y1-y0
	w.probe.Update()

	check := w.probe.Check(0, 0, tagSolid)
	if check == nil {
		return nil
	}
	var out []int
	for _, obj := range check.ObjectsByTags(tagSolid) {
		if i, ok := obj.Data.(int); ok {
			out = append(out, i)
		}
	}
	return out
}

// rayBox is the slab test. A ray starting inside the box hits at 0 with a
// zero normal.
func rayBox(from, dir, lo, hi gamemath.Vec3) (float64, gamemath.Vec3, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	var normal gamemath.Vec3
	for a := 0; a < 3; a++ {
		if math.Abs(dir[a]) < 1e-12 {
			if from[a] < lo[a] || from[a] > hi[a] {
				return 0, gamemath.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[a]
		t1, t2 := (lo[a]-from[a])*inv, (hi[a]-from[a])*inv
		side := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			side = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = gamemath.Vec3{}
			normal[a] = side
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, gamemath.Vec3{}, false
		}
	}
	return tmin, normal, true
}

// IsBouncing integrates b for secs and reports whether it is still moving.
func (w *World) IsBouncing(b combat.Bouncer, secs, elasticity, waterFric, gravity float64) bool {
	body := b.Body()
	w.integrate(b, body, secs, elasticity, waterFric, gravity)
	return !w.resting(body)
}

// HasBounced integrates b for secs and reports whether it came to rest.
func (w *World) HasBounced(b combat.Bouncer, secs, elasticity, waterFric, gravity float64) bool {
	body := b.Body()
	w.integrate(b, body, secs, elasticity, waterFric, gravity)
	return w.resting(body)
}

func (w *World) resting(body *components.BodyData) bool {
	return body.OnFloor && body.Vel.Len() < config.Physics.RestSpeed
}

// integrate moves body in sub-steps, reflecting it off every surface it
// meets and reporting each contact to b.
func (w *World) integrate(b combat.Bouncer, body *components.BodyData, secs, elasticity, waterFric, gravity float64) {
	if secs <= 0 {
		return
	}
	cfg := config.Physics
	steps := max(cfg.SubSteps, 1)
	dt := secs / float64(steps)

	for range steps {
		if w.Material(body.Pos).Volume() == leveldata.MatWater {
			body.Vel = gamemath.Damp(body.Vel, waterFric*dt)
		}
		body.Vel[2] -= gravity * cfg.Gravity * dt
		if body.OnFloor {
			horiz := gamemath.Damp(gamemath.Vec3{body.Vel.X(), body.Vel.Y(), 0}, cfg.FloorFriction*dt)
			body.Vel[0], body.Vel[1] = horiz.X(), horiz.Y()
		}

		move := body.Vel.Mul(dt)
		for range 3 {
			dist := move.Len()
			if dist <= cfg.Skin {
				break
			}
			dir := move.Mul(1 / dist)
			t, normal, hit := w.cast(body.Pos, dir, dist, body.Radius)
			if !hit {
				body.Pos = body.Pos.Add(move)
				break
			}
			advance := math.Max(t-cfg.Skin, 0)
			body.Pos = body.Pos.Add(dir.Mul(advance))
			if normal == (gamemath.Vec3{}) {
				// Embedded; leave upward.
				normal = gamemath.Vec3{0, 0, 1}
			}
			impact := -body.Vel.Dot(normal)
			body.Vel = gamemath.Reflect(body.Vel, normal, elasticity)
			if impact > cfg.RestSpeed {
				b.Bounced(normal)
			}
			move = gamemath.Reflect(dir.Mul(dist-advance), normal, elasticity)
		}
		body.OnFloor = w.grounded(body)
	}
}

func (w *World) grounded(body *components.BodyData) bool {
	_, normal, hit := w.cast(body.Pos, gamemath.Vec3{0, 0, -1}, 2*config.Physics.Skin+0.05, body.Radius)
	return hit && normal.Z() > 0.5
}

// LiquidTransition records the liquid body is now in and reports whether it
// just entered or left one.
func (w *World) LiquidTransition(body *components.BodyData, mat leveldata.Material, inWater bool) combat.Transition {
	now := leveldata.MatAir
	switch {
	case inWater:
		now = leveldata.MatWater
	case mat.IsLiquid():
		now = mat.Volume()
	}
	prev := body.InLiquid
	body.InLiquid = now
	switch {
	case prev == now:
		return combat.TransitionNone
	case now == leveldata.MatAir:
		return combat.TransitionOut
	default:
		return combat.TransitionIn
	}
}

// Material returns the level material at at.
func (w *World) Material(at gamemath.Vec3) leveldata.Material {
	return w.arena.MaterialAt(at)
}

// AvoidCollision walks body along dir until it no longer overlaps
// obstacle, giving up after MaxAvoidSteps.
func (w *World) AvoidCollision(body *components.BodyData, dir gamemath.Vec3, obstacle *components.BodyData, guard float64) {
	if obstacle == nil || dir == (gamemath.Vec3{}) {
		return
	}
	step := body.Radius + guard
	if step <= 0 {
		return
	}
	for range config.Physics.MaxAvoidSteps {
		if !overlapping(body, obstacle, guard) {
			return
		}
		body.Pos = body.Pos.Add(dir.Mul(step))
	}
}

func overlapping(a, b *components.BodyData, guard float64) bool {
	dx, dy := a.Pos.X()-b.Pos.X(), a.Pos.Y()-b.Pos.Y()
	r := a.Radius + b.Radius + guard
	if dx*dx+dy*dy >= r*r {
		return false
	}
	return a.Pos.Z()-a.EyeHeight < b.Top()+guard && a.Top() > b.Pos.Z()-b.EyeHeight-guard
}
