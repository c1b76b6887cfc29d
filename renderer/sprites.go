package renderer

import (
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/species"
)

// agentDrawSize is the sprite footprint in world units.
const agentDrawSize = 0.05

// SpriteLibrary holds one texture per species/action sheet. Sheets are laid
// out as 8 direction rows by frame-count columns. Missing sheets degrade to
// colored markers so the simulation stays watchable without assets.
type SpriteLibrary struct {
	sheets []rl.Texture2D
	loaded []bool
}

func sheetIndex(s species.Species, a species.Action) int {
	return int(s)*int(species.NumActions) + int(a)
}

// LoadSprites loads every catalog sheet found under dir. Absent files are
// logged once and skipped.
func LoadSprites(dir string) *SpriteLibrary {
	n := species.Count() * int(species.NumActions)
	lib := &SpriteLibrary{
		sheets: make([]rl.Texture2D, n),
		loaded: make([]bool, n),
	}
	for _, s := range species.All() {
		for a := species.Action(0); a < species.NumActions; a++ {
			path := filepath.Join(dir, species.SheetPath(s, a))
			if _, err := os.Stat(path); err != nil {
				slog.Debug("sprite sheet missing", "path", path)
				continue
			}
			tex := rl.LoadTexture(path)
			if tex.ID == 0 {
				slog.Warn("sprite sheet failed to load", "path", path)
				continue
			}
			idx := sheetIndex(s, a)
			lib.sheets[idx] = tex
			lib.loaded[idx] = true
		}
	}
	return lib
}

// Unload releases all loaded textures.
func (l *SpriteLibrary) Unload() {
	for i, ok := range l.loaded {
		if ok {
			rl.UnloadTexture(l.sheets[i])
			l.loaded[i] = false
		}
	}
}

// DrawAgents draws every visible agent in snapshot order, so later spawns
// overdraw earlier ones consistently frame to frame.
func (l *SpriteLibrary) DrawAgents(views []game.AgentView, cam *camera.Camera) {
	for _, v := range views {
		if !v.Visible {
			continue
		}
		if !cam.IsVisible(v.X, v.Y, agentDrawSize) {
			continue
		}
		l.drawAgent(v, cam)
	}
}

func (l *SpriteLibrary) drawAgent(v game.AgentView, cam *camera.Camera) {
	sp, ok := species.FromKey(v.Species)
	if !ok {
		return
	}
	tint := rl.Fade(rl.White, v.Alpha)

	size := agentDrawSize * cam.Zoom
	sx, sy := cam.WorldToScreen(v.X, v.Y)

	idx := sheetIndex(sp, species.Action(v.Action))
	if !l.loaded[idx] {
		l.drawMarker(sp, v, sx, sy, size)
		return
	}

	tex := l.sheets[idx]
	frames := species.Lookup(sp).Frames[species.Action(v.Action)]
	fw := float32(tex.Width) / float32(frames)
	fh := float32(tex.Height) / float32(species.NumDirections)

	src := rl.Rectangle{
		X:      float32(v.Frame) * fw,
		Y:      float32(v.Facing) * fh,
		Width:  fw,
		Height: fh,
	}
	dst := rl.Rectangle{
		X:      sx - size/2,
		Y:      sy - size/2,
		Width:  size,
		Height: size,
	}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, tint)
}

// drawMarker is the no-assets fallback: a role-colored dot with a heading
// notch.
func (l *SpriteLibrary) drawMarker(sp species.Species, v game.AgentView, sx, sy, size float32) {
	c := rl.Color{R: 90, G: 170, B: 90, A: 255}
	if species.IsPredator(sp) {
		c = rl.Color{R: 190, G: 70, B: 60, A: 255}
	}
	c.A = uint8(v.Alpha * 255)

	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size/3, c)

	// Facing notch on the compass edge.
	nx, ny := facingOffset(species.Direction(v.Facing))
	rl.DrawCircleV(rl.Vector2{X: sx + nx*size/3, Y: sy + ny*size/3}, size/10, rl.Fade(rl.Black, v.Alpha))
}

// facingOffset maps a compass direction to a screen-space unit offset, with
// north pointing up.
func facingOffset(d species.Direction) (x, y float32) {
	const diag = 0.7071
	switch d {
	case species.DirN:
		return 0, -1
	case species.DirNE:
		return diag, -diag
	case species.DirE:
		return 1, 0
	case species.DirSE:
		return diag, diag
	case species.DirS:
		return 0, 1
	case species.DirSW:
		return -diag, diag
	case species.DirW:
		return -1, 0
	case species.DirNW:
		return -diag, -diag
	}
	return 0, 0
}
