// Package ecs forwards carousel events into a [Donburi] world.
//
// [NewDonburiSink] returns a [carousel.EventSink] that publishes every
// engine event (index changes, drag releases and clicks) as a typed Donburi
// event. Subscribe to [EventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//
// Events are queued until the world processes them, usually once per frame
// from a system:
//
//	ecs.EventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
