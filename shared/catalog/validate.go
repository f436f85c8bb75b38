package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAttack = errors.New("unknown attack")
	ErrUnknownGun    = errors.New("unknown gun")
	ErrUnknownKind   = errors.New("unknown projectile kind")
	ErrBadAttack     = errors.New("malformed attack")
)

// MaxRays bounds the ray count of any attack.
const MaxRays = 20

// Validate checks the cross references between guns, attacks and projectile
// kinds. It is run once at startup.
func Validate() error {
	var problems []error

	for g := Gun(0); g < NumGuns; g++ {
		def := guns[g]
		for act := ActMelee; act < NumActions; act++ {
			atk := def.Attacks[act]
			if !atk.Valid() {
				problems = append(problems, fmt.Errorf("gun %s action %d: %w %d", def.Name, act, ErrUnknownAttack, atk))
			}
		}
		if def.Attacks[ActIdle] != AttackInvalid {
			problems = append(problems, fmt.Errorf("gun %s: idle slot must be empty: %w", def.Name, ErrBadAttack))
		}
	}

	for a := Attack(0); a < NumAttacks; a++ {
		def := attacks[a]
		switch {
		case def.Gun == GunNone && def.Action != ActMelee:
			problems = append(problems, fmt.Errorf("attack %s: only melee may omit its gun: %w", def.Name, ErrUnknownGun))
		case def.Gun != GunNone && !def.Gun.Valid():
			problems = append(problems, fmt.Errorf("attack %s: %w %d", def.Name, ErrUnknownGun, def.Gun))
		}
		if def.Projectile != NoProjectile && !def.Projectile.Valid() {
			problems = append(problems, fmt.Errorf("attack %s: %w %d", def.Name, ErrUnknownKind, def.Projectile))
		}
		if def.Rays < 1 || def.Rays > MaxRays {
			problems = append(problems, fmt.Errorf("attack %s: rays %d out of range: %w", def.Name, def.Rays, ErrBadAttack))
		}
		if def.Range <= 0 {
			problems = append(problems, fmt.Errorf("attack %s: range must be positive: %w", def.Name, ErrBadAttack))
		}
		if IsWeaponKind(def.Projectile) && def.ProjSpeed <= 0 {
			problems = append(problems, fmt.Errorf("attack %s: projectile attack without speed: %w", def.Name, ErrBadAttack))
		}
	}

	for k := Kind(0); k < NumKinds; k++ {
		def := kinds[k]
		weapon, junk := def.Flags&FlagWeapon != 0, def.Flags&FlagJunk != 0
		if weapon == junk {
			problems = append(problems, fmt.Errorf("kind %s: must be exactly one of weapon or junk: %w", def.Name, ErrUnknownKind))
		}
		if def.Flags&(FlagBounce|FlagLinear) == 0 {
			problems = append(problems, fmt.Errorf("kind %s: no motion model: %w", def.Name, ErrUnknownKind))
		}
	}

	return errors.Join(problems...)
}

// Catalog is the exported form of every table, used for schema generation
// and tooling dumps.
type Catalog struct {
	Attacks []AttackDefinition `json:"attacks" jsonschema:"title=Attacks,description=Indexed by attack id"`
	Guns    []GunDefinition    `json:"guns" jsonschema:"title=Guns,description=Indexed by gun id"`
	Kinds   []KindDefinition   `json:"kinds" jsonschema:"title=Projectile kinds,description=Indexed by kind id"`
}

// Export copies the tables into a Catalog.
func Export() Catalog {
	return Catalog{
		Attacks: append([]AttackDefinition(nil), attacks[:]...),
		Guns:    append([]GunDefinition(nil), guns[:]...),
		Kinds:   append([]KindDefinition(nil), kinds[:]...),
	}
}
