package archetypes

import (
	"github.com/automoto/oshu/components"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Session = newArchetype(
		cfg.LayerBackground,
		tags.Session,
		components.Session,
	)
	Background = newArchetype(
		cfg.LayerBackground,
		tags.Background,
		components.Background,
	)
	Metadata = newArchetype(
		cfg.LayerOverlay,
		tags.Metadata,
		components.Metadata,
	)
	Playfield = newArchetype(
		cfg.LayerPlayfield,
		tags.Playfield,
		components.Playfield,
	)
	Cursor = newArchetype(
		cfg.LayerPlayfield,
		tags.Cursor,
		components.Cursor,
	)
	Overlay = newArchetype(
		cfg.LayerOverlay,
		tags.Overlay,
		components.Pause,
	)
)

type archetype struct {
	layer      ecs.LayerID
	components []donburi.IComponentType
}

func newArchetype(layer ecs.LayerID, cs ...donburi.IComponentType) *archetype {
	return &archetype{
		layer:      layer,
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		a.layer,
		append(a.components, cs...)...,
	))
	return e
}
