package species

import "testing"

func TestCatalogComplete(t *testing.T) {
	for _, s := range All() {
		info := Lookup(s)
		if info.Name == "" {
			t.Errorf("species %d has no name", s)
		}
		if info.WalkSpeed <= 0 || info.RunSpeed <= info.WalkSpeed {
			t.Errorf("%s: bad speeds walk=%f run=%f", info.Name, info.WalkSpeed, info.RunSpeed)
		}
		if info.SightRange <= 0 {
			t.Errorf("%s: bad sight range %f", info.Name, info.SightRange)
		}
		for a := Action(0); a < NumActions; a++ {
			if info.Frames[a] <= 0 {
				t.Errorf("%s: zero frames for action %d", info.Name, a)
			}
		}
	}
}

func TestRolesAndAttackRange(t *testing.T) {
	for _, s := range All() {
		info := Lookup(s)
		if info.Role == RoleHerbivore && info.AttackRange != 0 {
			t.Errorf("%s: herbivore with attack range %f", info.Name, info.AttackRange)
		}
		if info.Role == RolePredator && info.AttackRange <= 0 {
			t.Errorf("%s: predator without attack range", info.Name)
		}
		if IsPredator(s) == IsHerbivore(s) {
			t.Errorf("%s: inconsistent role helpers", info.Name)
		}
	}
}

func TestFromKeyRoundtrip(t *testing.T) {
	for _, s := range All() {
		got, ok := FromKey(Lookup(s).SpriteKey)
		if !ok || got != s {
			t.Errorf("FromKey(%q) = %v, %v; want %v", Lookup(s).SpriteKey, got, ok, s)
		}
	}
	if _, ok := FromKey("no_such_creature"); ok {
		t.Error("FromKey accepted unknown key")
	}
}

func TestDirectionFromVelocity(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy float32
		want   Direction
	}{
		{"east 10deg", 0.985, 0.174, DirE},
		{"west 190deg", -0.985, -0.174, DirW},
		{"north", 0, 1, DirN},
		{"south", 0, -1, DirS},
		{"northeast 45deg", 1, 1, DirNE},
		{"southwest", -1, -1, DirSW},
		// Exactly on the 22.5 degree sector boundary the half-open
		// bucket rule rounds up to the next sector center.
		{"boundary 22.5deg", 0.92388, 0.38268, DirNE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DirectionFromVelocity(tt.vx, tt.vy)
			if !ok {
				t.Fatalf("unexpected zero-velocity result")
			}
			if got != tt.want {
				t.Errorf("DirectionFromVelocity(%f, %f) = %v, want %v", tt.vx, tt.vy, got, tt.want)
			}
		})
	}
}

func TestDirectionZeroVelocity(t *testing.T) {
	if _, ok := DirectionFromVelocity(0, 0); ok {
		t.Error("zero velocity should not produce a direction")
	}
	if _, ok := DirectionFromVelocity(1e-8, -1e-8); ok {
		t.Error("negligible velocity should not produce a direction")
	}
}

func TestSheetPath(t *testing.T) {
	if got := SheetPath(TRex, ActionAttack); got != "t_rex/attack.png" {
		t.Errorf("SheetPath = %q", got)
	}
	if got := SheetPath(Triceratops, ActionIdle); got != "triceratops/idle.png" {
		t.Errorf("SheetPath = %q", got)
	}
}
