package config

// CombatConfig holds damage and hit tuning shared by every attack.
type CombatConfig struct {
	// Damage scaling
	AllyDamageDivisor int     // self and team hits are divided by this
	SelfPushScale     float64 // push multiplier when an explosion hits its owner
	DistanceScale     float64 // radial falloff: 1 - dist/(DistanceScale*exprad)
	MonsterDeadPush   float64 // push multiplier for killing blows on AI
	HealthGib         int     // health at or below this gibs the body

	// Timing (ms)
	YelpInterval       int64
	NoAmmoWait         int64
	SwitchDelay        int64
	AttackSoundTimeout int64 // loop sounds stop once the gun has been idle this long

	// Hitscan
	MaxRays int

	// Recoil
	RecoilDecay float64 // pitch units per second
	MaxPitch    float64

	// Kick
	KickScale  float64 // velocity += dir * kick * KickScale
	RecoilKick float64 // pitch recoil = kick * RecoilKick

	// Verbose enables [combat] logging of dropped events.
	Verbose bool
}

// ProjectileConfig holds lifecycle constants for in-flight projectiles and junk.
type ProjectileConfig struct {
	OffsetMillis         int64   // cosmetic muzzle offset fades over this window
	JunkStepMillis       int64   // junk lifetime/physics quantum
	ImpactDistance       float64 // linear impact projectiles detonate inside this distance
	BounceEffectInterval int64   // minimum ms between bounce effects
	ComboMaxSteps        int     // plasma combo ray march cap
	ComboStepsPerUnit    float64
	MaxDebris            int
	MinDebris            int
	AvoidGuard           float64 // spawn nudge distance away from the owner

	// Junk spawn ranges
	JunkSpeedMin      float64
	JunkSpeedRange    float64
	JunkGravityMin    float64
	JunkGravityRange  float64
	JunkElasticity    float64
	EjectElasticity   float64
	DebrisLifetime    int64
	JunkLifetimeMin   int64
	JunkLifetimeRange int64

	// Junk rest detection passed to HasBounced
	JunkRestElasticity float64
	JunkRestWaterFric  float64
	JunkRestGravity    float64
	WaterFriction      float64
}

// NetConfig holds fixed-point scales for the wire format.
type NetConfig struct {
	PositionScale  float64 // DMF
	DirectionScale float64 // DNF
}

// BroadphaseConfig sizes the resolv grid used to cull hit candidates.
type BroadphaseConfig struct {
	OriginX, OriginY float64 // world coordinate mapped to the grid's top-left corner
	Width, Height    int
	CellSize         int
}

// ActorConfig is the default body and loadout of a spawned actor.
type ActorConfig struct {
	Radius     float64
	EyeHeight  float64
	AboveEye   float64
	HeadRadius float64
	LegsRadius float64
	Weight     float64
	MaxHealth  int
	StartAmmo  int
	MaxRoll    float64 // camera roll cap for melee kicks
}

// PhysicsConfig tunes the reference arena physics.
type PhysicsConfig struct {
	Gravity       float64 // units/s^2 at gravity scale 1
	RestSpeed     float64 // a bouncer slower than this on the floor is at rest
	Skin          float64 // gap kept between a bouncer and the surface it hit
	FloorFriction float64 // share of horizontal speed lost per second on the floor
	MaxAvoidSteps int
	SubSteps      int // integration steps per call
}

// ServerConfig holds host defaults that flags can override.
type ServerConfig struct {
	Port         uint
	TickRate     int
	Name         string
	LevelsDir    string
	Level        string
	ReplayDir    string
	StatsAppName string
	SpawnHealth  int
	MaxPlayers   int

	RespawnDelay     int64 // ms a dead actor waits before respawning
	FragLimit        int   // frags that end a round, 0 for none
	IntermissionTime int64 // ms between rounds
	StatsFlushTicks  int   // ticks between stats ledger saves
}

var Combat CombatConfig
var Projectile ProjectileConfig
var Net NetConfig
var Broadphase BroadphaseConfig
var Server ServerConfig
var Actor ActorConfig
var Physics PhysicsConfig

func init() {
	Combat = CombatConfig{
		AllyDamageDivisor: 2,
		SelfPushScale:     2.5,
		DistanceScale:     1.5,
		MonsterDeadPush:   5,
		HealthGib:         -50,

		YelpInterval:       600,
		NoAmmoWait:         600,
		SwitchDelay:        100,
		AttackSoundTimeout: 200,

		MaxRays: 20,

		RecoilDecay: 10,
		MaxPitch:    90,

		KickScale:  -2.5,
		RecoilKick: 0.1,
	}

	Projectile = ProjectileConfig{
		OffsetMillis:         500,
		JunkStepMillis:       80,
		ImpactDistance:       4,
		BounceEffectInterval: 100,
		ComboMaxSteps:        200,
		ComboStepsPerUnit:    2,
		MaxDebris:            60,
		MinDebris:            5,
		AvoidGuard:           0.1,

		JunkSpeedMin:      20,
		JunkSpeedRange:    100,
		JunkGravityMin:    0.3,
		JunkGravityRange:  0.8,
		JunkElasticity:    0.6,
		EjectElasticity:   0.4,
		DebrisLifetime:    400,
		JunkLifetimeMin:   1000,
		JunkLifetimeRange: 1000,

		JunkRestElasticity: 0.5,
		JunkRestWaterFric:  0.4,
		JunkRestGravity:    0.7,
		WaterFriction:      0.5,
	}

	Net = NetConfig{
		PositionScale:  16,
		DirectionScale: 100,
	}

	Broadphase = BroadphaseConfig{
		OriginX:  -4096,
		OriginY:  -4096,
		Width:    8192,
		Height:   8192,
		CellSize: 64,
	}

	Actor = ActorConfig{
		Radius:     4.1,
		EyeHeight:  14,
		AboveEye:   1,
		HeadRadius: 1.5,
		LegsRadius: 3,
		Weight:     100,
		MaxHealth:  100,
		StartAmmo:  50,
		MaxRoll:    20,
	}

	Physics = PhysicsConfig{
		Gravity:       200,
		RestSpeed:     5,
		Skin:          0.01,
		FloorFriction: 0.6,
		MaxAvoidSteps: 64,
		SubSteps:      4,
	}

	Server = ServerConfig{
		Port:         7373,
		TickRate:     30,
		Name:         "Ordnance Server",
		LevelsDir:    "assets",
		Level:        "",
		ReplayDir:    "",
		StatsAppName: "ordnance",
		SpawnHealth:  100,
		MaxPlayers:   16,

		RespawnDelay:     3000,
		FragLimit:        20,
		IntermissionTime: 5000,
		StatsFlushTicks:  900,
	}
}
