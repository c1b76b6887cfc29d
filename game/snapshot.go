package game

import "github.com/pthm-cable/terrarium/species"

// AgentView is one agent's render- and wire-facing state. Views are listed in
// stable registry order so a consumer can diff successive snapshots by index.
type AgentView struct {
	ID      uint32  `json:"id"`
	Species string  `json:"species"`
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Z       float32 `json:"z"`
	Action  int     `json:"action"`
	Facing  int     `json:"facing"`
	Frame   int     `json:"frame"`
	State   string  `json:"state"`
	Alpha   float32 `json:"alpha"`
	Visible bool    `json:"visible"`
	Alive   bool    `json:"alive"`
}

// Snapshot returns the full agent list in registry order, dead slots
// included.
func (g *Game) Snapshot() []AgentView {
	views := make([]AgentView, 0, len(g.agents))
	for _, e := range g.agents {
		meta := g.metaMap.Get(e)
		pos := g.posMap.Get(e)
		anim := g.animMap.Get(e)
		brain := g.brainMap.Get(e)
		life := g.lifeMap.Get(e)

		views = append(views, AgentView{
			ID:      meta.ID,
			Species: species.Lookup(meta.Species).SpriteKey,
			X:       pos.X,
			Y:       pos.Y,
			Z:       pos.Z,
			Action:  int(anim.Action),
			Facing:  int(anim.Facing),
			Frame:   anim.Frame,
			State:   brain.State.String(),
			Alpha:   life.Alpha,
			Visible: life.Visible,
			Alive:   life.Alive,
		})
	}
	return views
}
