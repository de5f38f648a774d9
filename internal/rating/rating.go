// Package rating holds the fixed material grades, geometric limits and
// safety factors used to certify a home climbing wall panel.
package rating

import "math"

// Geometric limits for an unsupervised home installation.
const (
	MinAngle       = 15.0 // degrees
	MaxAngle       = 70.0 // degrees
	MaxHeight      = 4.0  // m
	MinWidth       = 1.2  // m
	MaxAspectRatio = 2.0  // height / width

	// DepthTolerance absorbs the error introduced by rounding the wall
	// angle to one decimal place.
	DepthTolerance = 0.01 // m
)

// Plywood sheet size (mm), 18mm structural grade.
const (
	SheetLength = 2500.0
	SheetWidth  = 1250.0
)

// MaxSheets bounds the sheet count so it always fits an int on 32-bit
// platforms.
const MaxSheets = math.MaxInt32

// Structural ratings (kg).
const (
	PanelRating    = 200.0  // per m² of 18mm structural plywood
	TimberCapacity = 1200.0 // structural timber frame
	BoltCapacity   = 6400.0 // M10 bolts
)

// Safety factors
const (
	SteepAngle       = 45.0 // degrees, above this shear derating applies
	SteepDerating    = 0.8
	GeneralFactor    = 3.0
	DynamicFactor    = 2.5
	MinClimberWeight = 80.0 // kg
)

// CombinedFactor is the total divisor applied to raw structural capacity.
const CombinedFactor = GeneralFactor * DynamicFactor

// DeratingFactor returns the capacity multiplier for the panel and timber
// at the given wall angle in degrees.
func DeratingFactor(angle float64) float64 {
	if angle > SteepAngle {
		return SteepDerating
	}
	return 1.0
}

// PanelCapacity returns the areal capacity of a width x height panel (m).
func PanelCapacity(width, height float64) float64 {
	return width * height * PanelRating
}

// SafeCapacity applies the general safety factor to a raw capacity.
func SafeCapacity(raw float64) float64 {
	return raw / GeneralFactor
}

// SafeWorkingLoad applies the dynamic load factor to a safe capacity,
// giving the certified climber weight.
func SafeWorkingLoad(safe float64) float64 {
	return safe / DynamicFactor
}

// RoundTo rounds x to the given number of decimal places.
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
