package carousel

import (
	"errors"
	"image/color"
)

// Slide is one entry of the carousel. Slides are supplied once at
// construction and never mutated; a slide's identity is its index, so
// duplicate titles or sources are allowed.
type Slide struct {
	Title  string `yaml:"title"`
	Source string `yaml:"src"`
}

// Vec2 is a 2D vector used for pointer positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the rectangle's center point. Half extents are floored to
// whole pixels, matching how pointer offsets are measured for tilt.
func (r Rect) Center() (float64, float64) {
	return r.X + floorHalf(r.Width), r.Y + floorHalf(r.Height)
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts to a premultiplied color.RGBA for image fills.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// EventType identifies a kind of carousel event delivered to an EventSink.
type EventType uint8

const (
	EventIndexChanged EventType = iota // the active index was committed to a new value
	EventGestureEnd                    // a drag gesture was released
	EventClick                         // a press/release stayed under the drag threshold
)

// String returns a lowercase name for the event type.
func (t EventType) String() string {
	switch t {
	case EventIndexChanged:
		return "index-changed"
	case EventGestureEnd:
		return "gesture-end"
	case EventClick:
		return "click"
	default:
		return "unknown"
	}
}

var (
	// ErrNoSlides is returned when an engine is constructed without slides.
	ErrNoSlides = errors.New("carousel: no slides")
	// ErrUnknownPolicy is returned when a mapper policy name is not recognized.
	ErrUnknownPolicy = errors.New("carousel: unknown mapper policy")
)

func floorHalf(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return float64(int64(v / 2))
}

func clampIndex(i, length int) int {
	if length <= 0 || i < 0 {
		return 0
	}
	if i > length-1 {
		return length - 1
	}
	return i
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
