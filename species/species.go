// Package species defines the closed catalog of creature species and their
// immutable locomotion, sensing, and animation parameters.
package species

import "math"

// Species identifies one creature kind. The set is closed; every value below
// numSpecies has a catalog entry.
type Species uint8

const (
	Triceratops Species = iota
	Stegosaurus
	Parasaurolophus
	Gallimimus
	TRex
	Velociraptor
	RaptorBlue
	RaptorGreen
	RaptorRed
	numSpecies
)

// Role determines which state machine drives an agent.
type Role uint8

const (
	RoleHerbivore Role = iota
	RolePredator
)

// Action selects an animation sprite sheet.
type Action uint8

const (
	ActionIdle Action = iota
	ActionWalk
	ActionRun
	ActionAttack
	ActionDie
	ActionTakeDamage
	NumActions
)

// Direction is one of 8 compass facing sectors, matching sprite sheet rows.
type Direction uint8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
	NumDirections
)

// Info holds the per-species parameter record. Speeds are in world units per
// second before the global speed scale is applied; ranges are world units.
type Info struct {
	Name        string
	SpriteKey   string // sprite sheet folder name
	Role        Role
	WalkSpeed   float32
	RunSpeed    float32
	SightRange  float32
	AttackRange float32 // 0 for herbivores
	Frames      [NumActions]int
}

// allFrames15 is the common frame layout: 15 frames for every action.
var allFrames15 = [NumActions]int{15, 15, 15, 15, 15, 15}

// catalog is the immutable species parameter table, indexed by Species.
var catalog = [numSpecies]Info{
	Triceratops: {
		Name: "Triceratops", SpriteKey: "triceratops", Role: RoleHerbivore,
		WalkSpeed: 0.015, RunSpeed: 0.035, SightRange: 0.15,
		Frames: allFrames15,
	},
	Stegosaurus: {
		Name: "Stegosaurus", SpriteKey: "stegosaurus", Role: RoleHerbivore,
		WalkSpeed: 0.010, RunSpeed: 0.025, SightRange: 0.12,
		Frames: allFrames15,
	},
	Parasaurolophus: {
		Name: "Parasaurolophus", SpriteKey: "parasaurolophus", Role: RoleHerbivore,
		WalkSpeed: 0.018, RunSpeed: 0.045, SightRange: 0.18,
		Frames: allFrames15,
	},
	Gallimimus: {
		Name: "Gallimimus", SpriteKey: "gallimimus", Role: RoleHerbivore,
		WalkSpeed: 0.022, RunSpeed: 0.055, SightRange: 0.20,
		Frames: allFrames15,
	},
	TRex: {
		Name: "T-Rex", SpriteKey: "t_rex", Role: RolePredator,
		WalkSpeed: 0.012, RunSpeed: 0.030, SightRange: 0.25, AttackRange: 0.025,
		Frames: allFrames15,
	},
	Velociraptor: {
		Name: "Velociraptor", SpriteKey: "velociraptor", Role: RolePredator,
		WalkSpeed: 0.020, RunSpeed: 0.050, SightRange: 0.18, AttackRange: 0.015,
		Frames: allFrames15,
	},
	RaptorBlue: {
		Name: "Blue Raptor", SpriteKey: "blue_raptor", Role: RolePredator,
		WalkSpeed: 0.020, RunSpeed: 0.050, SightRange: 0.18, AttackRange: 0.015,
		Frames: allFrames15,
	},
	RaptorGreen: {
		Name: "Green Raptor", SpriteKey: "green_raptor", Role: RolePredator,
		WalkSpeed: 0.020, RunSpeed: 0.050, SightRange: 0.18, AttackRange: 0.015,
		Frames: allFrames15,
	},
	RaptorRed: {
		Name: "Red Raptor", SpriteKey: "red_raptor", Role: RolePredator,
		WalkSpeed: 0.020, RunSpeed: 0.050, SightRange: 0.18, AttackRange: 0.015,
		Frames: allFrames15,
	},
}

// keyIndex maps sprite keys back to species, for config lookups.
var keyIndex = func() map[string]Species {
	m := make(map[string]Species, numSpecies)
	for s := Species(0); s < numSpecies; s++ {
		m[catalog[s].SpriteKey] = s
	}
	return m
}()

func init() {
	// The catalog is constructed as a dense array literal; verify every
	// enumeration value actually carries an entry.
	for s := Species(0); s < numSpecies; s++ {
		info := catalog[s]
		if info.Name == "" || info.SpriteKey == "" {
			panic("species: catalog entry missing for species " + info.Name)
		}
		for a := Action(0); a < NumActions; a++ {
			if info.Frames[a] <= 0 {
				panic("species: zero frame count for " + info.Name)
			}
		}
	}
}

// Lookup returns the parameter record for a species.
func Lookup(s Species) Info {
	return catalog[s]
}

// FromKey resolves a sprite key (as used in config files) to a species.
func FromKey(key string) (Species, bool) {
	s, ok := keyIndex[key]
	return s, ok
}

// All returns every species in catalog order.
func All() []Species {
	out := make([]Species, numSpecies)
	for s := Species(0); s < numSpecies; s++ {
		out[s] = s
	}
	return out
}

// Count returns the number of species in the catalog.
func Count() int { return int(numSpecies) }

// IsPredator reports whether a species hunts.
func IsPredator(s Species) bool { return catalog[s].Role == RolePredator }

// IsHerbivore reports whether a species grazes.
func IsHerbivore(s Species) bool { return catalog[s].Role == RoleHerbivore }

// actionNames maps actions to sprite sheet file stems.
var actionNames = [NumActions]string{"idle", "walk", "run", "attack", "die", "takedamage"}

// SheetPath returns the sprite sheet path for a species/action pair,
// relative to the sprite directory.
func SheetPath(s Species, a Action) string {
	return catalog[s].SpriteKey + "/" + actionNames[a] + ".png"
}

// angleOrder maps 45-degree buckets starting at east, counter-clockwise,
// onto the sprite sheet direction rows.
var angleOrder = [8]Direction{DirE, DirNE, DirN, DirNW, DirW, DirSW, DirS, DirSE}

// DirectionFromVelocity classifies a planar velocity into one of 8 compass
// sectors. Axis convention: +X east, +Y north, angle 0 at east growing
// counter-clockwise. Each sector is the half-open 45-degree wedge centered
// on its compass angle, resolved by the (angle+22.5)/45 bucketing rule.
// Returns ok=false for negligible speed; the caller keeps its prior facing.
func DirectionFromVelocity(vx, vy float32) (Direction, bool) {
	if vx*vx+vy*vy < 1e-12 {
		return DirS, false
	}
	deg := math.Atan2(float64(vy), float64(vx)) * 180.0 / math.Pi
	if deg < 0 {
		deg += 360.0
	}
	idx := int((deg+22.5)/45.0) % 8
	return angleOrder[idx], true
}
