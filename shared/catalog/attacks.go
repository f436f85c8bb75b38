package catalog

// Action is the trigger an actor holds: melee, primary or secondary fire.
type Action int

const (
	ActIdle Action = iota
	ActMelee
	ActPrimary
	ActSecondary

	NumActions
)

func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

// Attack is one fireable mode of a weapon.
type Attack int

const AttackInvalid Attack = -1

const (
	AttackMelee Attack = iota
	AttackMelee2
	AttackScatter1
	AttackScatter2
	AttackSMG1
	AttackSMG2
	AttackPulse1
	AttackPulse2
	AttackRocket1
	AttackRocket2
	AttackRail1
	AttackRail2
	AttackGrenade1
	AttackGrenade2
	AttackPistol1
	AttackPistol2
	AttackPistolCombo
	AttackInsta
	AttackZombie

	NumAttacks
)

// Hit flags describe where and how a target was struck.
const (
	HitTorso    = 1 << 0
	HitLegs     = 1 << 1
	HitHead     = 1 << 2
	HitMaterial = 1 << 3
	HitDirect   = 1 << 4
)

// AttackDefinition holds every tunable of an attack. Times are milliseconds,
// distances world units.
type AttackDefinition struct {
	Name           string  `json:"name" jsonschema:"title=Attack name,pattern=^[a-z0-9_]+$"`
	Gun            Gun     `json:"gun" jsonschema:"description=Owning gun; -1 for the shared melee attacks"`
	Action         Action  `json:"action" jsonschema:"enum=1,enum=2,enum=3"`
	Projectile     Kind    `json:"projectile" jsonschema:"description=Projectile kind; -1 resolves as hitscan"`
	AttackDelay    int64   `json:"attackDelay" jsonschema:"minimum=0"`
	Damage         int     `json:"damage" jsonschema:"minimum=0"`
	HeadshotDamage int     `json:"headshotDamage" jsonschema:"minimum=0"`
	Spread         float64 `json:"spread" jsonschema:"minimum=0"`
	Margin         float64 `json:"margin" jsonschema:"minimum=0"`
	ProjSpeed      float64 `json:"projSpeed" jsonschema:"minimum=0"`
	Kick           float64 `json:"kick" jsonschema:"minimum=0"`
	Range          float64 `json:"range" jsonschema:"exclusiveMinimum=0"`
	Rays           int     `json:"rays" jsonschema:"minimum=1,maximum=20"`
	HitPush        float64 `json:"hitPush"`
	ExpRadius      float64 `json:"expRadius" jsonschema:"minimum=0"`
	Lifetime       int64   `json:"lifetime" jsonschema:"minimum=0"`
	Use            int     `json:"use" jsonschema:"minimum=0,description=Ammo consumed per shot"`
	Gravity        float64 `json:"gravity"`
	Elasticity     float64 `json:"elasticity"`
	Loop           bool    `json:"loop"`
	FullAuto       bool    `json:"fullAuto"`
	Sound          Sound   `json:"sound"`
	LoopSound      Sound   `json:"loopSound"`
	ImpactSound    Sound   `json:"impactSound"`
	HitSound       Sound   `json:"hitSound"`
}

var attacks = [NumAttacks]AttackDefinition{
	AttackMelee: {
		Name: "melee", Gun: GunNone, Action: ActMelee, Projectile: NoProjectile,
		AttackDelay: 650, Damage: 60, Margin: 2, Range: 14, Rays: 1, HitPush: 50,
		Sound: SoundMelee, LoopSound: SoundNone, ImpactSound: SoundImpactMelee, HitSound: SoundHitMelee,
	},
	AttackMelee2: {
		Name: "melee2", Gun: GunNone, Action: ActMelee, Projectile: NoProjectile,
		AttackDelay: 420, Damage: 25, Margin: 1, Range: 16, Rays: 1, HitPush: 50,
		Sound: SoundMelee, LoopSound: SoundNone, ImpactSound: SoundImpactMelee, HitSound: SoundHitMelee,
	},
	AttackScatter1: {
		Name: "scatter1", Gun: GunScatter, Action: ActPrimary, Projectile: KindBullet,
		AttackDelay: 880, Damage: 5, HeadshotDamage: 5, Spread: 260, ProjSpeed: 1200, Kick: 20,
		Range: 1000, Rays: 20, HitPush: 60, Use: 1, FullAuto: true,
		Sound: SoundScatter1, LoopSound: SoundScatterPump, ImpactSound: SoundImpactScatter, HitSound: SoundHitWeapon,
	},
	AttackScatter2: {
		Name: "scatter2", Gun: GunScatter, Action: ActSecondary, Projectile: KindBullet,
		AttackDelay: 980, Damage: 6, HeadshotDamage: 5, Spread: 120, ProjSpeed: 1200, Kick: 25,
		Range: 1000, Rays: 10, HitPush: 60, Use: 1, FullAuto: true,
		Sound: SoundScatter2, LoopSound: SoundScatterPump, ImpactSound: SoundImpactScatter, HitSound: SoundHitWeapon,
	},
	AttackSMG1: {
		Name: "smg1", Gun: GunSMG, Action: ActPrimary, Projectile: KindBullet,
		AttackDelay: 110, Damage: 16, HeadshotDamage: 14, Spread: 84, ProjSpeed: 1500, Kick: 7,
		Range: 1000, Rays: 1, HitPush: 60, Use: 1, FullAuto: true,
		Sound: SoundSMG, LoopSound: SoundNone, ImpactSound: SoundImpactSMG, HitSound: SoundHitWeapon,
	},
	AttackSMG2: {
		Name: "smg2", Gun: GunSMG, Action: ActSecondary, Projectile: KindBullet,
		AttackDelay: 160, Damage: 17, HeadshotDamage: 15, Spread: 30, ProjSpeed: 1500, Kick: 10,
		Range: 1000, Rays: 1, HitPush: 80, Use: 1, FullAuto: true,
		Sound: SoundSMG, LoopSound: SoundNone, ImpactSound: SoundImpactSMG, HitSound: SoundHitWeapon,
	},
	AttackPulse1: {
		Name: "pulse1", Gun: GunPulse, Action: ActPrimary, Projectile: KindPulse,
		AttackDelay: 180, Damage: 22, Margin: 1, ProjSpeed: 1000, Kick: 8,
		Range: 2048, Rays: 1, HitPush: 80, ExpRadius: 18, Lifetime: 3000, Use: 2, FullAuto: true,
		Sound: SoundPulse1, LoopSound: SoundNone, ImpactSound: SoundPulseExplode, HitSound: SoundHitWeapon,
	},
	AttackPulse2: {
		Name: "pulse2", Gun: GunPulse, Action: ActSecondary, Projectile: NoProjectile,
		AttackDelay: 80, Damage: 14, Kick: 2, Range: 200, Rays: 1, HitPush: 150, Use: 1,
		Loop: true, FullAuto: true,
		Sound: SoundPulse2Beam, LoopSound: SoundPulse2End, ImpactSound: SoundImpactPulse, HitSound: SoundHitWeapon,
	},
	AttackRocket1: {
		Name: "rocket1", Gun: GunRocket, Action: ActPrimary, Projectile: KindRocket,
		AttackDelay: 920, Damage: 110, ProjSpeed: 300, Range: 2048, Rays: 1, HitPush: 110,
		ExpRadius: 33, Lifetime: 5000, Use: 1,
		Sound: SoundRocket1, LoopSound: SoundNone, ImpactSound: SoundRocketExplode, HitSound: SoundHitWeapon,
	},
	AttackRocket2: {
		Name: "rocket2", Gun: GunRocket, Action: ActSecondary, Projectile: KindRocket2,
		AttackDelay: 920, Damage: 110, ProjSpeed: 300, Range: 2048, Rays: 1, HitPush: 110,
		ExpRadius: 33, Lifetime: 2000, Use: 1, Gravity: 0.6, Elasticity: 0.7,
		Sound: SoundRocket2, LoopSound: SoundNone, ImpactSound: SoundRocketExplode, HitSound: SoundHitWeapon,
	},
	AttackRail1: {
		Name: "rail1", Gun: GunRail, Action: ActPrimary, Projectile: KindBullet,
		AttackDelay: 1200, Damage: 70, HeadshotDamage: 30, ProjSpeed: 2000, Kick: 30,
		Range: 5000, Rays: 1, HitPush: 100, Use: 1,
		Sound: SoundRailFire, LoopSound: SoundRailCharge, ImpactSound: SoundImpactRail, HitSound: SoundHitRailgun,
	},
	AttackRail2: {
		Name: "rail2", Gun: GunRail, Action: ActSecondary, Projectile: KindBullet,
		AttackDelay: 1400, Damage: 100, HeadshotDamage: 10, ProjSpeed: 2000, Kick: 30,
		Range: 5000, Rays: 1, HitPush: 100, Use: 1,
		Sound: SoundRailFire, LoopSound: SoundRailCharge, ImpactSound: SoundImpactRail, HitSound: SoundHitRailgun,
	},
	AttackGrenade1: {
		Name: "grenade1", Gun: GunGrenade, Action: ActPrimary, Projectile: KindGrenade,
		AttackDelay: 650, Damage: 90, ProjSpeed: 200, Kick: 10, Range: 2024, Rays: 1, HitPush: 250,
		ExpRadius: 45, Lifetime: 1500, Use: 1, Gravity: 0.7, Elasticity: 0.8, FullAuto: true,
		Sound: SoundGrenade, LoopSound: SoundNone, ImpactSound: SoundGrenadeExplode, HitSound: SoundHitWeapon,
	},
	AttackGrenade2: {
		Name: "grenade2", Gun: GunGrenade, Action: ActSecondary, Projectile: KindGrenade2,
		AttackDelay: 750, Damage: 90, ProjSpeed: 190, Kick: 10, Range: 2024, Rays: 1, HitPush: 200,
		ExpRadius: 35, Lifetime: 2000, Use: 1, Gravity: 1.0, FullAuto: true,
		Sound: SoundGrenade, LoopSound: SoundNone, ImpactSound: SoundGrenadeExplode, HitSound: SoundHitWeapon,
	},
	AttackPistol1: {
		Name: "pistol1", Gun: GunPistol, Action: ActPrimary, Projectile: KindBullet,
		AttackDelay: 300, Damage: 18, HeadshotDamage: 17, Spread: 60, ProjSpeed: 1500, Kick: 12,
		Range: 1000, Rays: 1, HitPush: 180, Use: 1,
		Sound: SoundPistol1, LoopSound: SoundNone, ImpactSound: SoundImpactPulse, HitSound: SoundHitWeapon,
	},
	AttackPistol2: {
		Name: "pistol2", Gun: GunPistol, Action: ActSecondary, Projectile: KindPlasma,
		AttackDelay: 600, Damage: 15, Margin: 5, ProjSpeed: 400, Kick: 15, Range: 2048, Rays: 1,
		HitPush: 500, ExpRadius: 8, Lifetime: 2000, Use: 2,
		Sound: SoundPistol2, LoopSound: SoundNone, ImpactSound: SoundImpactPulse, HitSound: SoundHitWeapon,
	},
	AttackPistolCombo: {
		Name: "pistol_combo", Gun: GunPistol, Action: ActSecondary, Projectile: NoProjectile,
		AttackDelay: 1000, Damage: 80, ProjSpeed: 400, Range: 2048, Rays: 1, HitPush: 350, ExpRadius: 50,
		Sound: SoundNone, LoopSound: SoundNone, ImpactSound: SoundImpactPistol, HitSound: SoundHitRailgun,
	},
	AttackInsta: {
		Name: "insta", Gun: GunInsta, Action: ActPrimary, Projectile: NoProjectile,
		AttackDelay: 1200, Damage: 1, Kick: 36, Range: 4000, Rays: 1, HitPush: 1, FullAuto: true,
		Sound: SoundRailInstagib, LoopSound: SoundRailCharge, ImpactSound: SoundImpactRail, HitSound: SoundHitWeapon,
	},
	AttackZombie: {
		Name: "zombie", Gun: GunZombie, Action: ActPrimary, Projectile: NoProjectile,
		AttackDelay: 600, Damage: 100, Margin: 4, Range: 15, Rays: 1, HitPush: 20,
		Sound: SoundZombie, LoopSound: SoundNone, ImpactSound: SoundImpactMelee, HitSound: SoundHitMelee,
	},
}

func (a Attack) Valid() bool {
	return a >= 0 && a < NumAttacks
}

// Info returns the attack's definition, or the zero definition for invalid attacks.
func (a Attack) Info() AttackDefinition {
	if !a.Valid() {
		return AttackDefinition{Gun: GunNone, Projectile: NoProjectile, Sound: SoundNone,
			LoopSound: SoundNone, ImpactSound: SoundNone, HitSound: SoundNone}
	}
	return attacks[a]
}

func (a Attack) String() string {
	if !a.Valid() {
		return "invalid"
	}
	return attacks[a].Name
}

// LookupAttack returns the definition of a and whether a is valid.
func LookupAttack(a Attack) (AttackDefinition, bool) {
	if !a.Valid() {
		return a.Info(), false
	}
	return attacks[a], true
}

// IsExplosive reports whether the attack deals radial damage.
func (a Attack) IsExplosive() bool {
	return a.Valid() && attacks[a].ExpRadius > 0
}

// IsMelee reports whether the attack is a melee swing.
func (a Attack) IsMelee() bool {
	return a.Valid() && attacks[a].Action == ActMelee
}
