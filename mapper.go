package carousel

import (
	"fmt"
	"math"
	"strings"
)

// Transform describes how a single slide should be presented. It is derived
// from the slide's relative position and never cached across state changes.
type Transform struct {
	TranslateXPercent float64 // horizontal offset, in percent of the card width
	RotationDegrees   float64 // in-plane rotation
	Scale             float64
	Opacity           float64
	ZIndex            float64 // higher values stack above lower ones
}

// PositionMapper converts a relative position into a Transform. Map must be
// total: every real position yields a finite Transform.
type PositionMapper interface {
	Map(position float64) Transform
}

// MapperPolicy selects a PositionMapper implementation.
type MapperPolicy uint8

const (
	PolicyStepped    MapperPolicy = iota // three-tier step function (gesture engine)
	PolicyContinuous                     // linear interpolation (scroll-snap driven)
)

// String returns the policy name used in configuration files.
func (p MapperPolicy) String() string {
	switch p {
	case PolicyStepped:
		return "stepped"
	case PolicyContinuous:
		return "continuous"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy converts a policy name into a MapperPolicy. The empty string
// selects PolicyStepped.
func ParsePolicy(name string) (MapperPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "stepped":
		return PolicyStepped, nil
	case "continuous":
		return PolicyContinuous, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// UnmarshalText lets policies appear by name in YAML configuration.
func (p *MapperPolicy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (p MapperPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// NewMapper returns the PositionMapper for a policy. Unknown policies fall
// back to the stepped mapper.
func NewMapper(p MapperPolicy) PositionMapper {
	if p == PolicyContinuous {
		return ContinuousMapper{}
	}
	return SteppedMapper{}
}

// zIndexFor stacks the centered slide above its neighbours.
func zIndexFor(position float64) float64 {
	return 10 - math.Abs(position)*5
}

// SteppedMapper buckets positions into center, side, and far tiers.
type SteppedMapper struct{}

// Map implements PositionMapper.
func (SteppedMapper) Map(position float64) Transform {
	abs := math.Abs(position)
	t := Transform{
		TranslateXPercent: position*100 + sign(position)*20,
		ZIndex:            zIndexFor(position),
	}
	switch {
	case abs <= 0.5:
		t.Scale, t.Opacity = 1, 1
	case abs <= 1.5:
		t.Scale, t.Opacity = 0.9, 0.7
		t.RotationDegrees = 2 * sign(position)
	default:
		t.Scale, t.Opacity = 0.8, 0.5
		t.RotationDegrees = 2 * sign(position)
	}
	return t
}

const (
	continuousMinScale    = 0.8
	continuousScaleSpan   = 0.5
	continuousMaxRotation = 2.5
	continuousRotateSpan  = 0.1
)

// ContinuousMapper interpolates scale and rotation linearly near the center.
// Horizontal placement is left to whatever supplies the positions, so
// TranslateXPercent is always zero.
type ContinuousMapper struct{}

// Map implements PositionMapper.
func (ContinuousMapper) Map(position float64) Transform {
	abs := math.Abs(position)

	scale := 1 - math.Min(abs, continuousScaleSpan)/continuousScaleSpan*(1-continuousMinScale)

	// Rotation leans away from the direction of travel.
	ramp := math.Min(abs/continuousRotateSpan, 1)
	rotation := -ramp * continuousMaxRotation * sign(position)

	var opacity float64
	switch {
	case abs <= 0.5:
		opacity = 1
	case abs <= 1.5:
		opacity = 0.9
	default:
		opacity = 0.8
	}

	return Transform{
		RotationDegrees: rotation,
		Scale:           scale,
		Opacity:         opacity,
		ZIndex:          zIndexFor(position),
	}
}
