package catalog

import "testing"

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("catalog should validate, got %v", err)
	}
}

func TestGunAttacksBelongToGun(t *testing.T) {
	for g := Gun(0); g < NumGuns; g++ {
		for _, act := range []Action{ActPrimary, ActSecondary} {
			atk := g.Attack(act)
			if atk.Info().Gun != g {
				t.Fatalf("gun %s %d fires %s owned by gun %d", g, act, atk, atk.Info().Gun)
			}
		}
	}
}

func TestInvalidLookupsReturnSentinels(t *testing.T) {
	if _, ok := LookupAttack(NumAttacks); ok {
		t.Fatalf("expected out of range attack to be invalid")
	}
	if def := AttackInvalid.Info(); def.Projectile != NoProjectile || def.Gun != GunNone {
		t.Fatalf("expected sentinel attack definition, got %+v", def)
	}
	if _, ok := LookupKind(Kind(-3)); ok {
		t.Fatalf("expected negative kind to be invalid")
	}
	if NoProjectile.Has(FlagWeapon) {
		t.Fatalf("hitscan marker must not carry flags")
	}
	if GunNone.Attack(ActPrimary) != AttackInvalid {
		t.Fatalf("expected invalid gun to have no attacks")
	}
	if Gun(2).Attack(Action(9)) != AttackInvalid {
		t.Fatalf("expected invalid action to have no attack")
	}
}

func TestKindFlags(t *testing.T) {
	tests := []struct {
		kind   Kind
		flags  KindFlag
		absent KindFlag
	}{
		{KindRocket, FlagWeapon | FlagLinear | FlagImpact, FlagBounce},
		{KindRocket2, FlagWeapon | FlagBounce, FlagImpact},
		{KindPlasma, FlagWeapon | FlagQuench | FlagImmortal, FlagJunk},
		{KindBullet, FlagJunk | FlagLinear, FlagWeapon},
		{KindGib, FlagJunk | FlagBounce, FlagLinear},
	}
	for _, tt := range tests {
		if !tt.kind.Has(tt.flags) {
			t.Fatalf("%s: expected flags %b", tt.kind, tt.flags)
		}
		if tt.kind.Info().Flags&tt.absent != 0 {
			t.Fatalf("%s: unexpected flags %b", tt.kind, tt.absent)
		}
	}
}

func TestAttackTableMatchesTuning(t *testing.T) {
	rocket := AttackRocket1.Info()
	if rocket.Damage != 110 || rocket.ExpRadius != 33 || rocket.ProjSpeed != 300 || rocket.Projectile != KindRocket {
		t.Fatalf("unexpected rocket tuning: %+v", rocket)
	}
	scatter := AttackScatter1.Info()
	if scatter.Rays != 20 || scatter.Damage != 5 {
		t.Fatalf("unexpected scatter tuning: %+v", scatter)
	}
	if !AttackPistolCombo.IsExplosive() || AttackPistol1.IsExplosive() {
		t.Fatalf("explosive classification is wrong")
	}
	if !AttackMelee2.IsMelee() || AttackZombie.IsMelee() {
		t.Fatalf("melee classification is wrong")
	}
}

func TestExportCopiesTables(t *testing.T) {
	c := Export()
	if len(c.Attacks) != int(NumAttacks) || len(c.Guns) != int(NumGuns) || len(c.Kinds) != int(NumKinds) {
		t.Fatalf("unexpected export sizes: %d %d %d", len(c.Attacks), len(c.Guns), len(c.Kinds))
	}
	c.Attacks[AttackRocket1].Damage = 1
	if AttackRocket1.Info().Damage != 110 {
		t.Fatalf("export must not alias the attack table")
	}
}

func TestGunByName(t *testing.T) {
	g, ok := GunByName("railgun")
	if !ok || g != GunRail {
		t.Fatalf("expected railgun, got %v %v", g, ok)
	}
	if _, ok := GunByName("bfg"); ok {
		t.Fatalf("expected unknown gun name to fail")
	}
}
