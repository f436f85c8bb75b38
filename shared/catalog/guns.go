package catalog

// Gun is a weapon an actor can select.
type Gun int

const GunNone Gun = -1

const (
	GunScatter Gun = iota
	GunSMG
	GunPulse
	GunRocket
	GunRail
	GunGrenade
	GunPistol
	GunInsta
	GunZombie

	NumGuns
)

// GunDefinition maps a gun to its attacks per action slot.
type GunDefinition struct {
	Name        string             `json:"name"`
	Model       string             `json:"model"`
	WorldModel  string             `json:"worldModel,omitempty"`
	Attacks     [NumActions]Attack `json:"attacks" jsonschema:"description=Attack per action: idle/melee/primary/secondary"`
	SwitchSound Sound              `json:"switchSound"`
}

var guns = [NumGuns]GunDefinition{
	GunScatter: {"scattergun", "scattergun", "weapon/scattergun/world", [NumActions]Attack{AttackInvalid, AttackMelee, AttackScatter1, AttackScatter2}, SoundScatterSwitch},
	GunSMG:     {"smg", "smg", "weapon/smg/world", [NumActions]Attack{AttackInvalid, AttackMelee, AttackSMG1, AttackSMG2}, SoundScatterSwitch},
	GunPulse:   {"pulse", "pulserifle", "weapon/pulserifle/world", [NumActions]Attack{AttackInvalid, AttackMelee, AttackPulse1, AttackPulse2}, SoundPulseSwitch},
	GunRocket:  {"rocket", "rocket", "weapon/rocket/world", [NumActions]Attack{AttackInvalid, AttackMelee, AttackRocket1, AttackRocket2}, SoundRocketSwitch},
	GunRail:    {"railgun", "railgun", "weapon/railgun/world", [NumActions]Attack{AttackInvalid, AttackMelee, AttackRail1, AttackRail2}, SoundRailSwitch},
	GunGrenade: {"grenade", "grenade", "weapon/grenade/world", [NumActions]Attack{AttackInvalid, AttackMelee, AttackGrenade1, AttackGrenade2}, SoundGrenadeSwitch},
	GunPistol:  {"pistol", "pistol", "weapon/pistol/world", [NumActions]Attack{AttackInvalid, AttackMelee, AttackPistol1, AttackPistol2}, SoundPistolSwitch},
	GunInsta:   {"instagun", "instagun", "weapon/railgun/world", [NumActions]Attack{AttackInvalid, AttackMelee, AttackInsta, AttackInsta}, SoundRailSwitch},
	GunZombie:  {"zombie", "zombie", "", [NumActions]Attack{AttackInvalid, AttackZombie, AttackZombie, AttackZombie}, SoundNone},
}

func (g Gun) Valid() bool {
	return g >= 0 && g < NumGuns
}

// Info returns the gun's definition, or the zero definition for invalid guns.
func (g Gun) Info() GunDefinition {
	if !g.Valid() {
		return GunDefinition{SwitchSound: SoundNone}
	}
	return guns[g]
}

// Attack returns the attack the gun fires for act, or AttackInvalid.
func (g Gun) Attack(act Action) Attack {
	if !g.Valid() || !act.Valid() {
		return AttackInvalid
	}
	return guns[g].Attacks[act]
}

func (g Gun) String() string {
	if !g.Valid() {
		return "none"
	}
	return guns[g].Name
}

// LookupGun returns the definition of g and whether g is valid.
func LookupGun(g Gun) (GunDefinition, bool) {
	if !g.Valid() {
		return g.Info(), false
	}
	return guns[g], true
}

// GunByName resolves a gun from its display name.
func GunByName(name string) (Gun, bool) {
	for i := range guns {
		if guns[i].Name == name {
			return Gun(i), true
		}
	}
	return GunNone, false
}
