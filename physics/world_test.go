package physics

import (
	"math"
	"os"
	"testing"

	"github.com/automoto/ordnance/combat"
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
)

func loadWorld(t *testing.T) *World {
	t.Helper()
	arena, err := leveldata.LoadArena(os.DirFS("../shared/leveldata/testdata"), "arena.tmx")
	if err != nil {
		t.Fatalf("load arena: %v", err)
	}
	return New(arena)
}

type ball struct {
	body    components.BodyData
	bounces int
}

func (b *ball) Body() *components.BodyData { return &b.body }

func (b *ball) Bounced(gamemath.Vec3) { b.bounces++ }

func TestRayCube(t *testing.T) {
	w := loadWorld(t)

	tests := []struct {
		name     string
		from     gamemath.Vec3
		dir      gamemath.Vec3
		maxDist  float64
		expected float64
	}{
		{"floor", gamemath.Vec3{24, 24, 20}, gamemath.Vec3{0, 0, -1}, 100, 20},
		{"block side", gamemath.Vec3{24, 8, 10}, gamemath.Vec3{-1, 0, 0}, 100, 8},
		{"block top", gamemath.Vec3{8, 8, 50}, gamemath.Vec3{0, 0, -1}, 100, 18},
		{"open sky", gamemath.Vec3{24, 24, 20}, gamemath.Vec3{0, 0, 1}, 100, 100},
		{"short of the floor", gamemath.Vec3{24, 24, 20}, gamemath.Vec3{0, 0, -1}, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.RayCube(tt.from, tt.dir, tt.maxDist)
			if got < tt.expected-1e-9 || got > tt.expected+1e-9 {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDroppedBallComesToRest(t *testing.T) {
	w := loadWorld(t)
	b := &ball{body: components.BodyData{Pos: gamemath.Vec3{40, 8, 30}, Radius: 1}}

	rested := false
	for range 200 {
		if w.HasBounced(b, 0.05, 0.5, 0.5, 1) {
			rested = true
			break
		}
		if b.body.Pos.Z() < b.body.Radius-0.001 {
			t.Fatalf("ball sank into the floor at %v", b.body.Pos)
		}
	}
	if !rested {
		t.Fatalf("ball never came to rest, at %v moving %v", b.body.Pos, b.body.Vel)
	}
	if b.bounces == 0 {
		t.Fatalf("expected at least one reported bounce")
	}
}

func TestBallReflectsOffBlock(t *testing.T) {
	w := loadWorld(t)
	b := &ball{body: components.BodyData{
		Pos:    gamemath.Vec3{30, 8, 10},
		Vel:    gamemath.Vec3{-100, 0, 0},
		Radius: 1,
	}}

	if !w.IsBouncing(b, 0.2, 0.5, 0, 0) {
		t.Fatalf("a ball in mid air is still bouncing")
	}
	if b.bounces != 1 {
		t.Fatalf("expected one bounce, got %d", b.bounces)
	}
	if b.body.Vel.X() <= 0 || b.body.Pos.X() <= 17 {
		t.Fatalf("expected the ball to come back off the wall, pos %v vel %v", b.body.Pos, b.body.Vel)
	}
}

func TestBounceKeepsFullTravel(t *testing.T) {
	w := loadWorld(t)
	b := &ball{body: components.BodyData{
		Pos:    gamemath.Vec3{30, 8, 10},
		Vel:    gamemath.Vec3{-100, 0, 0},
		Radius: 1,
	}}

	w.IsBouncing(b, 0.2, 1, 0, 0)
	if b.bounces != 1 {
		t.Fatalf("expected one bounce, got %d", b.bounces)
	}
	// The block face grown by the radius sits at x=17; the ball turns a skin
	// short of it and must cover the whole 20 units.
	turn := 17 + config.Physics.Skin
	travelled := (30 - turn) + (b.body.Pos.X() - turn)
	if math.Abs(travelled-20) > 1e-9 {
		t.Fatalf("expected 20 units of travel, got %v ending at %v", travelled, b.body.Pos)
	}
}

func TestLiquidTransition(t *testing.T) {
	w := loadWorld(t)
	var body components.BodyData

	steps := []struct {
		mat  leveldata.Material
		want combat.Transition
	}{
		{leveldata.MatWater, combat.TransitionIn},
		{leveldata.MatWater, combat.TransitionNone},
		{leveldata.MatAir, combat.TransitionOut},
		{leveldata.MatLava, combat.TransitionIn},
	}
	for i, s := range steps {
		got := w.LiquidTransition(&body, s.mat, s.mat.Volume() == leveldata.MatWater)
		if got != s.want {
			t.Fatalf("step %d: expected %v, got %v", i, s.want, got)
		}
	}
	if body.InLiquid != leveldata.MatLava {
		t.Fatalf("expected body to be in lava")
	}
}

func TestMaterialFromLevel(t *testing.T) {
	w := loadWorld(t)
	if got := w.Material(gamemath.Vec3{24, 24, 4}); got != leveldata.MatWater {
		t.Fatalf("expected water, got %v", got)
	}
}

func TestAvoidCollisionClearsObstacle(t *testing.T) {
	w := loadWorld(t)
	owner := components.BodyData{Pos: gamemath.Vec3{32, 32, 14}, Radius: 4.1, EyeHeight: 14, AboveEye: 1}
	proj := components.BodyData{Pos: owner.Pos, Radius: 1.4, EyeHeight: 1.4, AboveEye: 1.4}

	w.AvoidCollision(&proj, gamemath.Vec3{1, 0, 0}, &owner, 0.1)
	if d := proj.Pos.X() - owner.Pos.X(); d < owner.Radius+proj.Radius+0.1 {
		t.Fatalf("projectile still inside its owner, gap %v", d)
	}
}
