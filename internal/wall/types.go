package wall

import (
	"errors"
	"math"

	"github.com/alexiusacademia/gowall/internal/rating"
)

// Error kinds reported by validation and capacity checks. Match with errors.Is.
var (
	ErrNonPositiveDimension = errors.New("non-positive dimension")
	ErrAngleTooShallow      = errors.New("angle too shallow")
	ErrAngleTooSteep        = errors.New("angle too steep")
	ErrHeightExceedsLimit   = errors.New("height exceeds limit")
	ErrWidthTooNarrow       = errors.New("width too narrow")
	ErrUnstableAspectRatio  = errors.New("unstable aspect ratio")
	ErrInsufficientDepth    = errors.New("insufficient depth")
	ErrMinimumCapacity      = errors.New("minimum capacity violation")
	ErrSheetCountOverflow   = errors.New("sheet count overflow")
)

// Spec is a validated wall specification. Dimensions are in meters.
// The wall angle is always derived from height and depth.
type Spec struct {
	height float64
	width  float64
	depth  float64
}

// Height returns the vertical height of the wall (m).
func (s Spec) Height() float64 { return s.height }

// Width returns the wall width (m).
func (s Spec) Width() float64 { return s.width }

// Depth returns the horizontal depth available for the overhang (m).
func (s Spec) Depth() float64 { return s.depth }

// AngleDegrees returns atan(depth/height) in degrees, rounded to 1 decimal.
func (s Spec) AngleDegrees() float64 {
	return Angle(s.height, s.depth)
}

// PanelHeight returns the sloped length of the climbing surface (m).
func (s Spec) PanelHeight() float64 {
	return s.height / math.Cos(radians(s.AngleDegrees()))
}

// PanelDepth returns the horizontal projection of the panel (m).
func (s Spec) PanelDepth() float64 {
	return s.height * math.Tan(radians(s.AngleDegrees()))
}

// Angle derives the wall angle in degrees from height and depth,
// rounded to one decimal place.
func Angle(height, depth float64) float64 {
	return rating.RoundTo(degrees(math.Atan(depth/height)), 1)
}

// TimberLength is one line of the timber cut list.
type TimberLength struct {
	Label  string  `json:"label" yaml:"label"`
	Length float64 `json:"length_m" yaml:"length_m"` // m
}

// CutAngle is a named joint angle in degrees.
type CutAngle struct {
	Joint   string  `json:"joint" yaml:"joint"`
	Degrees float64 `json:"degrees" yaml:"degrees"`
}

// Timber and joint labels, in cut-list order.
const (
	LabelBaseBeam     = "Base beam"
	LabelUprights     = "Uprights (x2)"
	LabelCrossBraces  = "Cross braces (x2)"
	LabelKicker       = "Kicker/struts"
	JointUprightBase  = "Upright to base"
	JointTopPlateJoin = "Top plate join"
)

// Capacity is the breakdown of the safe working load calculation (kg).
type Capacity struct {
	Panel    float64 `json:"panel_kg" yaml:"panel_kg"`
	Timber   float64 `json:"timber_kg" yaml:"timber_kg"`
	Bolt     float64 `json:"bolt_kg" yaml:"bolt_kg"`
	Derating float64 `json:"derating" yaml:"derating"`
	Raw      float64 `json:"raw_kg" yaml:"raw_kg"`
	Safe     float64 `json:"safe_kg" yaml:"safe_kg"`
	Governs  string  `json:"governs" yaml:"governs"`
}

// MaterialList holds the quantities derived from a Spec.
// It is built once by Calculate and not modified afterwards.
type MaterialList struct {
	PlywoodSheets       int            `json:"plywood_sheets" yaml:"plywood_sheets"`
	TimberLengths       []TimberLength `json:"timber_lengths" yaml:"timber_lengths"`
	CutAngles           []CutAngle     `json:"cut_angles" yaml:"cut_angles"`
	SafeClimberWeightKg float64        `json:"safe_climber_weight_kg" yaml:"safe_climber_weight_kg"`
	Capacity            Capacity       `json:"capacity" yaml:"capacity"`
}

// Timber returns the length of the cut-list entry with the given label.
func (m *MaterialList) Timber(label string) (float64, bool) {
	for _, t := range m.TimberLengths {
		if t.Label == label {
			return t.Length, true
		}
	}
	return 0, false
}

// CutAngle returns the angle of the named joint.
func (m *MaterialList) CutAngle(joint string) (float64, bool) {
	for _, c := range m.CutAngles {
		if c.Joint == joint {
			return c.Degrees, true
		}
	}
	return 0, false
}

// ValidationError reports the first violated dimension or safety constraint.
type ValidationError struct {
	Kind error
	msg  string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// CapacityError reports a design whose safe climber weight is below the
// certified minimum.
type CapacityError struct {
	SafeClimberWeight float64 // kg
	Required          float64 // kg
	msg               string
}

func (e *CapacityError) Error() string {
	return e.msg
}

func (e *CapacityError) Unwrap() error {
	return ErrMinimumCapacity
}

// KindName returns a short machine name for the error kind of err,
// or "" when err is not a wall error.
func KindName(err error) string {
	kinds := []struct {
		kind error
		name string
	}{
		{ErrNonPositiveDimension, "non_positive_dimension"},
		{ErrAngleTooShallow, "angle_too_shallow"},
		{ErrAngleTooSteep, "angle_too_steep"},
		{ErrHeightExceedsLimit, "height_exceeds_limit"},
		{ErrWidthTooNarrow, "width_too_narrow"},
		{ErrUnstableAspectRatio, "unstable_aspect_ratio"},
		{ErrInsufficientDepth, "insufficient_depth"},
		{ErrMinimumCapacity, "minimum_capacity_violation"},
		{ErrSheetCountOverflow, "sheet_count_overflow"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return ""
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
