package ecs

import (
	"github.com/phanxgames/carousel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for carousel events.
var EventType = events.NewEventType[carousel.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to EventType and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) carousel.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event carousel.Event) {
	EventType.Publish(s.world, event)
}

// ActiveSlide is a component holding the active slide index of an engine,
// kept current by TrackActiveSlide.
var ActiveSlide = donburi.NewComponentType[ActiveSlideData]()

// ActiveSlideData is the value stored by the ActiveSlide component.
type ActiveSlideData struct {
	Index    int
	Previous int
	Changes  int
}

// TrackActiveSlide creates an entity carrying the ActiveSlide component and
// subscribes it to index changes. The entity starts at e's active index.
func TrackActiveSlide(world donburi.World, e *carousel.Engine) donburi.Entity {
	entity := world.Create(ActiveSlide)
	entry := world.Entry(entity)
	start := e.ActiveIndex()
	ActiveSlide.SetValue(entry, ActiveSlideData{Index: start, Previous: start})

	EventType.Subscribe(world, func(w donburi.World, ev carousel.Event) {
		if ev.Type != carousel.EventIndexChanged || !w.Valid(entity) {
			return
		}
		d := ActiveSlide.Get(w.Entry(entity))
		d.Previous = ev.Previous
		d.Index = ev.Index
		d.Changes++
	})
	return entity
}
