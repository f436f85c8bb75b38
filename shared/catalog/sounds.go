package catalog

// Sound identifies a cue the presentation layer knows how to play.
type Sound int

const SoundNone Sound = -1

const (
	SoundMelee Sound = iota
	SoundScatter1
	SoundScatter2
	SoundScatterPump
	SoundSMG
	SoundPulse1
	SoundPulse2Beam
	SoundPulse2End
	SoundRocket1
	SoundRocket2
	SoundRailFire
	SoundRailCharge
	SoundRailInstagib
	SoundGrenade
	SoundPistol1
	SoundPistol2
	SoundZombie

	SoundImpactMelee
	SoundImpactScatter
	SoundImpactSMG
	SoundImpactPulse
	SoundImpactRail
	SoundImpactPistol
	SoundPulseExplode
	SoundRocketExplode
	SoundGrenadeExplode

	SoundHitMelee
	SoundHitWeapon
	SoundHitRailgun
	SoundHitAlly

	SoundBounceGrenade
	SoundBounceRocket
	SoundBounceEject
	SoundRocketLoop
	SoundPulseLoop
	SoundPistolLoop

	SoundScatterSwitch
	SoundPulseSwitch
	SoundRocketSwitch
	SoundRailSwitch
	SoundGrenadeSwitch
	SoundPistolSwitch

	SoundNoAmmo
	SoundWeaponLoad
	SoundPain
	SoundPainAI
	SoundDie
	SoundHeadshot
	SoundArmourHit
	SoundInvulnerable
	SoundShieldHit
	SoundGib
	SoundSplashIn
	SoundSplashOut

	NumSounds
)

var soundNames = [...]string{
	SoundMelee:         "melee",
	SoundScatter1:      "scatter1",
	SoundScatter2:      "scatter2",
	SoundScatterPump:   "scatter-pump",
	SoundSMG:           "smg",
	SoundPulse1:        "pulse1",
	SoundPulse2Beam:    "pulse2-beam",
	SoundPulse2End:     "pulse2-end",
	SoundRocket1:       "rocket1",
	SoundRocket2:       "rocket2",
	SoundRailFire:      "rail-fire",
	SoundRailCharge:    "rail-charge",
	SoundRailInstagib:  "rail-instagib",
	SoundGrenade:       "grenade",
	SoundPistol1:       "pistol1",
	SoundPistol2:       "pistol2",
	SoundZombie:        "zombie",
	SoundImpactMelee:   "impact-melee",
	SoundImpactScatter: "impact-scatter",
	SoundImpactSMG:     "impact-smg",
	SoundImpactPulse:   "impact-pulse",
	SoundImpactRail:    "impact-rail",
	SoundImpactPistol:  "impact-pistol",
	SoundPulseExplode:  "pulse-explode",
	SoundRocketExplode: "rocket-explode",
	SoundGrenadeExplode: "grenade-explode",
	SoundHitMelee:      "hit-melee",
	SoundHitWeapon:     "hit-weapon",
	SoundHitRailgun:    "hit-railgun",
	SoundHitAlly:       "hit-ally",
	SoundBounceGrenade: "bounce-grenade",
	SoundBounceRocket:  "bounce-rocket",
	SoundBounceEject:   "bounce-eject",
	SoundRocketLoop:    "rocket-loop",
	SoundPulseLoop:     "pulse-loop",
	SoundPistolLoop:    "pistol-loop",
	SoundScatterSwitch: "scatter-switch",
	SoundPulseSwitch:   "pulse-switch",
	SoundRocketSwitch:  "rocket-switch",
	SoundRailSwitch:    "rail-switch",
	SoundGrenadeSwitch: "grenade-switch",
	SoundPistolSwitch:  "pistol-switch",
	SoundNoAmmo:        "no-ammo",
	SoundWeaponLoad:    "weapon-load",
	SoundPain:          "pain",
	SoundPainAI:        "pain-ai",
	SoundDie:           "die",
	SoundHeadshot:      "headshot",
	SoundArmourHit:     "armour-hit",
	SoundInvulnerable:  "invulnerable",
	SoundShieldHit:     "shield-hit",
	SoundGib:           "gib",
	SoundSplashIn:      "splash-in",
	SoundSplashOut:     "splash-out",
}

func (s Sound) Valid() bool {
	return s >= 0 && s < NumSounds
}

func (s Sound) String() string {
	if !s.Valid() {
		return "none"
	}
	return soundNames[s]
}
