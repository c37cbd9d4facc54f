package game

// UnitClass identifies an agent's combat role. Ranged subtypes (Archer,
// Siege, Scorpion, Longbowman) share the Ranged attack profile but keep
// distinct classes so BonusDamageByClass can counter them individually.
type UnitClass uint8

const (
	UnitVillager UnitClass = iota
	UnitMonk
	UnitInfantry
	UnitManAtArms
	UnitKnight
	UnitArcher
	UnitLongbowman
	UnitScorpion
	UnitCavalry
	UnitSiege
)

// UnitCategory groups unit classes for blacksmith tier bonuses, matching the
// "per unit category" language in spec.md §4.6.
type UnitCategory uint8

const (
	CategoryCivilian UnitCategory = iota
	CategoryInfantry
	CategoryArchery
	CategoryCavalry
	CategorySiege
)

// Category returns the blacksmith bonus category for a unit class.
func (u UnitClass) Category() UnitCategory {
	switch u {
	case UnitInfantry, UnitManAtArms, UnitKnight:
		return CategoryInfantry
	case UnitArcher, UnitLongbowman, UnitScorpion:
		return CategoryArchery
	case UnitCavalry:
		return CategoryCavalry
	case UnitSiege:
		return CategorySiege
	default:
		return CategoryCivilian
	}
}

// AttackProfile is the dispatch the combat resolver uses for Attack(dir),
// derived from UnitClass (and, for melee units, whether a Spear is carried).
type AttackProfile uint8

const (
	ProfileMelee AttackProfile = iota
	ProfileRanged
	ProfileSpear
	ProfileMonk
)

// IsRangedClass reports whether a unit class uses the ranged scan-to-range
// attack dispatch.
func (u UnitClass) IsRangedClass() bool {
	switch u {
	case UnitArcher, UnitLongbowman, UnitScorpion, UnitSiege:
		return true
	default:
		return false
	}
}

// BaseRange is the ranged scan distance for ranged unit classes.
func (u UnitClass) BaseRange() int {
	switch u {
	case UnitArcher:
		return 4
	case UnitLongbowman:
		return 6
	case UnitScorpion:
		return 7
	case UnitSiege:
		return 5
	default:
		return 1
	}
}

// TankAuraRadius returns the Chebyshev radius within which this unit class
// halves incoming damage to friendly targets, or 0 if it has no aura.
func (u UnitClass) TankAuraRadius() int {
	switch u {
	case UnitManAtArms:
		return 1
	case UnitKnight:
		return 2
	default:
		return 0
	}
}

// BonusDamageByClass is the unit counter matrix from spec.md §4.6: e.g.
// archer > infantry, cavalry > archer, infantry > cavalry, siege > siege.
var BonusDamageByClass = map[UnitClass]map[UnitClass]int{
	UnitArcher: {
		UnitInfantry: 2, UnitManAtArms: 2, UnitKnight: 1,
	},
	UnitLongbowman: {
		UnitInfantry: 3, UnitManAtArms: 3, UnitKnight: 2,
	},
	UnitCavalry: {
		UnitArcher: 3, UnitLongbowman: 3, UnitScorpion: 2,
	},
	UnitInfantry: {
		UnitCavalry: 2,
	},
	UnitManAtArms: {
		UnitCavalry: 2,
	},
	UnitSiege: {
		UnitSiege: 4,
	},
	UnitScorpion: {
		UnitCavalry: 2,
	},
}

// BonusAgainst looks up the counter bonus an attacker class has against a
// target class, defaulting to zero.
func BonusAgainst(attacker, target UnitClass) int {
	if m, ok := BonusDamageByClass[attacker]; ok {
		return m[target]
	}
	return 0
}

// Stance is an agent's combat posture, influencing whether the scripted
// controller chases, returns, or refuses to attack (spec.md glossary).
type Stance uint8

const (
	StanceAggressive Stance = iota
	StanceDefensive
	StanceHoldGround
	StanceNoAttack
)

// Role is the scripted controller's per-agent role assignment (spec.md §4.8).
type Role uint8

const (
	RoleGatherer Role = iota
	RoleBuilder
	RoleFighter
)
