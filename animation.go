package carousel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultTransition = 0.3 // seconds
	maxTweenFields    = 4
)

// TweenGroup animates up to four float64 fields simultaneously. Call
// Update(dt) each frame; values are written straight into the fields.
type TweenGroup struct {
	tweens [maxTweenFields]*gween.Tween
	count  int
	fields [maxTweenFields]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to their
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// newTweenGroup tweens each field toward the matching target. A duration
// of zero or less writes the targets immediately and returns a finished
// group.
func newTweenGroup(fields []*float64, targets []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	if duration <= 0 || fn == nil {
		for i, f := range fields {
			*f = targets[i]
		}
		g.Done = true
		return g
	}
	for i, f := range fields {
		if i == maxTweenFields {
			break
		}
		g.tweens[i] = gween.New(float32(*f), float32(targets[i]), duration, fn)
		g.fields[i] = f
		g.count++
	}
	return g
}

// tweenCard eases a card's presented transform toward to. The stacking
// order is not animated; it switches as soon as the target changes.
func tweenCard(c *card, to Transform, duration float32, fn ease.TweenFunc) *TweenGroup {
	c.shown.ZIndex = to.ZIndex
	return newTweenGroup(
		[]*float64{&c.shown.TranslateXPercent, &c.shown.RotationDegrees, &c.shown.Scale, &c.shown.Opacity},
		[]float64{to.TranslateXPercent, to.RotationDegrees, to.Scale, to.Opacity},
		duration, fn,
	)
}

// easeByName maps configuration names to gween easing functions.
var easeByName = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"outQuad":   ease.OutQuad,
	"outCubic":  ease.OutCubic,
	"inOutSine": ease.InOutSine,
	"inOutQuad": ease.InOutQuad,
	"outBack":   ease.OutBack,
	"outExpo":   ease.OutExpo,
}

// EaseFunc returns the easing function with the given name, or
// ease.OutCubic when the name is empty or unknown.
func EaseFunc(name string) ease.TweenFunc {
	if fn, ok := easeByName[name]; ok {
		return fn
	}
	return ease.OutCubic
}
