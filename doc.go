// Package carousel is a gesture-driven slide carousel for [Ebitengine].
//
// The package is split into a pure navigation core and an Ebitengine host.
// The core has no rendering dependencies and can be driven by any input
// source:
//
//   - [GestureController] turns pointer samples into a drag offset and
//     classifies releases as clicks, drags or flicks.
//   - [SnapResolver] decides which slide a released drag settles on.
//   - [PositionMapper] maps a slide's relative position to a [Transform]
//     (translation, rotation, scale, opacity, stacking order).
//   - [Engine] owns the active index and ties the three together.
//   - [TiltAnimator] runs the pointer-follow tilt of the centered slide on
//     a [FrameScheduler].
//
// # Quick start
//
// The simplest way to get a window is [Run]:
//
//	engine, err := carousel.NewEngine(carousel.DefaultSlides(), carousel.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	stage := carousel.NewStage(engine, nil, carousel.StageConfig{ShowCounter: true})
//	if err := carousel.Run(stage, carousel.RunConfig{Title: "Gallery"}); err != nil {
//		log.Fatal(err)
//	}
//
// [Stage] implements [ebiten.Game], so it can also be embedded in an
// existing game loop by calling its Update, Draw and Layout methods.
//
// # Positions
//
// A slide's relative position is index - activeIndex - dragOffset. The
// centered slide sits at 0, its neighbours near ±1. Slides further than
// [Config].CullRadius (1.5 by default) are left out of [Engine.Descriptors].
//
// Two mapper policies are available. [PolicyStepped] buckets positions into
// center, side and far tiers. [PolicyContinuous] interpolates scale and
// rotation and expects positions from a [ScrollOracle], such as a
// scroll-snap carousel; [EngineScroll] adapts an Engine for that role.
//
// # Gestures
//
// A press that moves no more than [Config].DragThreshold pixels is a click.
// Clicks never change slides; observe them with [Engine.OnGesture]. A drag
// changes slides when it is released fast enough to be a flick or after
// covering [Config].SnapDistance of the container width. Dragging past
// either end is damped by [Config].EdgeResistance.
//
// [Ebitengine]: https://ebitengine.org
package carousel
