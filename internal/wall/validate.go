package wall

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gowall/internal/rating"
)

// New validates the dimensions (m) and returns a Spec. Checks run in a
// fixed order and the first violation is returned.
func New(height, width, depth float64) (Spec, error) {
	s := Spec{height: height, width: width, depth: depth}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Validate checks the spec against the dimension and safety limits.
func (s Spec) Validate() error {
	if !positive(s.height) || !positive(s.width) || !positive(s.depth) {
		return invalid(ErrNonPositiveDimension,
			"invalid wall dimensions: height=%.2f, width=%.2f, depth=%.2f (all must be positive and finite)",
			s.height, s.width, s.depth)
	}

	angle := s.AngleDegrees()
	if angle < rating.MinAngle {
		return invalid(ErrAngleTooShallow,
			"wall angle %.1f° is too shallow (minimum %.0f°); increase depth or reduce height",
			angle, rating.MinAngle)
	}
	if angle > rating.MaxAngle {
		return invalid(ErrAngleTooSteep,
			"wall angle %.1f° is too steep (maximum %.0f° for unsupervised home installation)",
			angle, rating.MaxAngle)
	}

	if s.height > rating.MaxHeight {
		return invalid(ErrHeightExceedsLimit,
			"wall height %.2f m exceeds safe limit of %.1f m", s.height, rating.MaxHeight)
	}
	if s.width < rating.MinWidth {
		return invalid(ErrWidthTooNarrow,
			"wall width %.2f m is too small for stability (minimum %.1f m)", s.width, rating.MinWidth)
	}
	if ratio := s.height / s.width; ratio > rating.MaxAspectRatio {
		return invalid(ErrUnstableAspectRatio,
			"Height-to-width ratio %.2f:1 exceeds maximum %.1f:1 for a free-standing frame",
			ratio, rating.MaxAspectRatio)
	}

	if panelDepth := s.PanelDepth(); panelDepth > s.depth+rating.DepthTolerance {
		return invalid(ErrInsufficientDepth,
			"depth %.2f m is too shallow for a %.1f° panel (needs %.2f m); maximum achievable angle is %.1f°",
			s.depth, angle, panelDepth, MaxAchievableAngle(s.height, s.depth))
	}

	return nil
}

// MaxAchievableAngle returns the steepest one-decimal angle whose panel
// fits within depth for a wall of the given height.
func MaxAchievableAngle(height, depth float64) float64 {
	return math.Floor(degrees(math.Atan(depth/height))*10) / 10
}

// positive rejects NaN and infinities along with zero and negatives.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func invalid(kind error, format string, args ...any) error {
	return &ValidationError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}
