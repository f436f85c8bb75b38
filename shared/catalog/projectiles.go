package catalog

// Kind is a projectile category with shared motion and collision rules.
type Kind int

// NoProjectile marks a hitscan attack.
const NoProjectile Kind = -1

const (
	KindGrenade Kind = iota
	KindGrenade2
	KindRocket
	KindRocket2
	KindPulse
	KindPlasma
	KindGib
	KindDebris
	KindEject
	KindBullet

	NumKinds
)

// KindFlag describes how a projectile kind moves and dies.
type KindFlag uint16

const (
	FlagWeapon   KindFlag = 1 << iota // detonates and deals damage
	FlagJunk                          // cosmetic physics object
	FlagBounce                        // integrated by the physics service
	FlagLinear                        // flies straight toward its target point
	FlagImpact                        // detonates on contact
	FlagQuench                        // destroyed by entering water
	FlagImmortal                      // cannot be shot down by players
)

// KindDefinition is the immutable description of a projectile kind.
type KindDefinition struct {
	Name        string   `json:"name" jsonschema:"title=Kind name,pattern=^[a-z0-9]+$"`
	Flags       KindFlag `json:"flags" jsonschema:"description=Bitset of weapon/junk/bounce/linear/impact/quench/immortal"`
	Model       string   `json:"model,omitempty" jsonschema:"description=Model directory; empty for particle-only kinds"`
	BounceSound Sound    `json:"bounceSound"`
	LoopSound   Sound    `json:"loopSound"`
	MaxBounces  int      `json:"maxBounces" jsonschema:"minimum=0,description=Zero means unlimited"`
	Variants    int      `json:"variants" jsonschema:"minimum=0"`
	Radius      float64  `json:"radius" jsonschema:"exclusiveMinimum=0"`
}

var kinds = [NumKinds]KindDefinition{
	KindGrenade:  {"grenade", FlagWeapon | FlagBounce, "projectile/grenade", SoundBounceGrenade, SoundNone, 0, 0, 1.4},
	KindGrenade2: {"grenade2", FlagWeapon | FlagBounce | FlagImpact, "projectile/grenade", SoundBounceGrenade, SoundNone, 0, 0, 1.4},
	KindRocket:   {"rocket", FlagWeapon | FlagLinear | FlagImpact, "projectile/rocket", SoundNone, SoundRocketLoop, 0, 0, 1.4},
	KindRocket2:  {"rocket2", FlagWeapon | FlagBounce, "projectile/rocket", SoundBounceRocket, SoundNone, 2, 0, 2.0},
	KindPulse:    {"pulse", FlagWeapon | FlagLinear | FlagQuench | FlagImpact | FlagImmortal, "", SoundBounceRocket, SoundPulseLoop, 0, 0, 1.0},
	KindPlasma:   {"plasma", FlagWeapon | FlagLinear | FlagQuench | FlagImpact | FlagImmortal, "", SoundBounceRocket, SoundPistolLoop, 0, 0, 1.0},
	KindGib:      {"gib", FlagJunk | FlagBounce, "projectile/gib", SoundNone, SoundNone, 2, 5, 1.5},
	KindDebris:   {"debris", FlagJunk | FlagBounce, "", SoundNone, SoundNone, 0, 0, 1.8},
	KindEject:    {"eject", FlagJunk | FlagBounce, "projectile/eject/01", SoundBounceEject, SoundNone, 2, 0, 0.4},
	KindBullet:   {"bullet", FlagJunk | FlagLinear, "", SoundNone, SoundNone, 0, 0, 0.4},
}

func (k Kind) Valid() bool {
	return k >= 0 && k < NumKinds
}

// Info returns the kind's definition, or the zero definition for invalid kinds.
func (k Kind) Info() KindDefinition {
	if !k.Valid() {
		return KindDefinition{}
	}
	return kinds[k]
}

// Has reports whether the kind carries every flag in f. Invalid kinds carry none.
func (k Kind) Has(f KindFlag) bool {
	return k.Valid() && kinds[k].Flags&f == f
}

func (k Kind) String() string {
	if !k.Valid() {
		return "none"
	}
	return kinds[k].Name
}

// LookupKind returns the definition of k and whether k is valid.
func LookupKind(k Kind) (KindDefinition, bool) {
	if !k.Valid() {
		return KindDefinition{}, false
	}
	return kinds[k], true
}

// IsWeaponKind reports whether k is a damage-dealing projectile.
func IsWeaponKind(k Kind) bool {
	return k.Has(FlagWeapon)
}
