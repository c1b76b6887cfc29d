package game

import (
	"log/slog"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/species"
)

func (g *Game) logSpawn(id uint32, sp species.Species, pos components.Position) {
	slog.Debug("agent spawned",
		"id", id,
		"species", species.Lookup(sp).SpriteKey,
		"x", pos.X, "y", pos.Y,
	)
}

func (g *Game) logKill(preyID uint32, sp species.Species, attackerID uint32) {
	slog.Info("prey killed",
		"tick", g.tick,
		"prey", preyID,
		"species", species.Lookup(sp).SpriteKey,
		"attacker", attackerID,
	)
}

func (g *Game) logRespawn(id uint32, sp species.Species, pos components.Position) {
	slog.Info("agent respawned",
		"tick", g.tick,
		"id", id,
		"species", species.Lookup(sp).SpriteKey,
		"x", pos.X, "y", pos.Y,
	)
}
