package lighting

import "math"

// Spacing envelope for grid and perimeter layouts, in feet.
const (
	// MinWallDistance is the clearance kept between a plain ceiling's edge
	// and the outermost fixtures.
	MinWallDistance = 2.0

	// MinLightSpacing bounds how densely fixtures may be packed.
	MinLightSpacing = 3.0

	// MaxLightSpacing bounds how sparsely fixtures may be spread.
	MaxLightSpacing = 4.0
)

// Default-count divisors: square feet of ceiling per fixture.
const (
	AreaPerLight       = 4.5
	CircleAreaPerLight = 5.0
	CutoutAreaPerLight = 5.0
)

// Shape heuristics.
const (
	// SquareTolerance is the relative side difference under which a
	// rectangle is treated as square.
	SquareTolerance = 0.1

	// MaxOvershoot is how far a square grid may exceed an explicit count
	// before one dimension is dropped.
	MaxOvershoot = 1.5

	// RingRadiusFactor places the outer ring of a solid circle or oval.
	RingRadiusFactor = 0.6

	MinRingLights = 4
	MaxRingLights = 8

	// MinCutoutLights is the default-count floor for rectangular and oval cutouts.
	MinCutoutLights = 4

	// MinCircularCutoutLights is the default-count floor for circular cutouts.
	MinCircularCutoutLights = 5

	DefaultCutoutWidth = 0.5
	MinCutoutWidth     = 0.1

	// InnerRingSpacing caps fixtures per side of a rectangular cutout ring.
	InnerRingSpacing = 1.0

	longSideBias  = 1.1
	shortSideBias = 0.9
)

// Fixture radii in feet.
const (
	PlainFixtureRadius      = 0.3
	PeripheralFixtureRadius = 0.25
	IslandFixtureRadius     = 0.3
)

// round rounds half away from zero for the non-negative values used here,
// matching half-up rounding of the design tool.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func isSquare(w, l float64) bool {
	return math.Abs(w-l) < math.Min(w, l)*SquareTolerance
}
