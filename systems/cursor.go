package systems

import (
	"github.com/automoto/oshu/archetypes"
	"github.com/automoto/oshu/beatmap"
	"github.com/automoto/oshu/components"
	cfg "github.com/automoto/oshu/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const cursorRadius = 8

// SpawnCursor creates the cursor widget. Low quality has no trail.
func SpawnCursor(ecs *ecs.ECS) {
	e := archetypes.Cursor.Spawn(ecs)
	n := cfg.UI.CursorTrailLength
	if cfg.Display.LowQuality() {
		n = 0
	}
	components.Cursor.SetValue(e, components.CursorData{
		Trail: make([]beatmap.Point, n),
	})
}

// UpdateCursor records the mouse position in the trail.
func UpdateCursor(ecs *ecs.ECS) {
	s := GetSession(ecs)
	e, ok := components.Cursor.First(ecs.World)
	if s == nil || !ok {
		return
	}
	c := components.Cursor.Get(e)
	if len(c.Trail) == 0 {
		return
	}
	c.Trail[c.Next] = s.Game.Mouse
	c.Next = (c.Next + 1) % len(c.Trail)
	if c.Next == 0 {
		c.Full = true
	}
}

// DrawCursor renders the trail, oldest first, then the cursor.
func DrawCursor(ecs *ecs.ECS, screen *ebiten.Image) {
	s := GetSession(ecs)
	e, ok := components.Cursor.First(ecs.World)
	if s == nil || !ok {
		return
	}
	c := components.Cursor.Get(e)
	v := &s.Game.View
	r := float32(v.Length(cursorRadius))

	n := len(c.Trail)
	count := c.Next
	if c.Full {
		count = n
	}
	for i := 0; i < count; i++ {
		// Walk from the oldest sample to the newest.
		idx := (c.Next - count + i + n) % n
		x, y := v.ToScreen(c.Trail[idx])
		k := float32(i+1) / float32(count+1)
		vector.FillCircle(screen, float32(x), float32(y), r*k, fade(cfg.UI.CursorColor, k*0.5), true)
	}

	x, y := v.ToScreen(s.Game.Mouse)
	vector.FillCircle(screen, float32(x), float32(y), r, cfg.UI.CursorColor, true)
}
