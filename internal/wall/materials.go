package wall

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gowall/internal/rating"
)

// Calculate derives the sheet count, timber cut list, cut angles and safe
// climber weight for a validated spec. A spec that fails validation, or
// a design that cannot carry the minimum climber weight, returns an error
// and no material list.
func Calculate(s Spec) (*MaterialList, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	angle := s.AngleDegrees()
	theta := radians(angle)

	// Work in mm
	h := s.height * 1000
	w := s.width * 1000
	panelHeight := h / math.Cos(theta)
	panelDepth := h * math.Tan(theta)

	// Naive rectangular tiling, long edge up the slope
	sheetsPerRow := math.Ceil(w / rating.SheetWidth)
	rows := math.Ceil(panelHeight / rating.SheetLength)

	sheets := sheetsPerRow * rows
	if sheets > rating.MaxSheets {
		return nil, invalid(ErrSheetCountOverflow,
			"wall of %.2f x %.2f m needs %.0f plywood sheets, more than %d can be counted",
			s.width, s.PanelHeight(), sheets, rating.MaxSheets)
	}

	ml := &MaterialList{
		PlywoodSheets: int(sheets),
		TimberLengths: []TimberLength{
			{Label: LabelBaseBeam, Length: w / 1000},
			{Label: LabelUprights, Length: 2 * h / math.Cos(theta) / 1000},
			{Label: LabelCrossBraces, Length: w / 1000},
			{Label: LabelKicker, Length: panelDepth / 1000},
		},
		CutAngles: []CutAngle{
			{Joint: JointUprightBase, Degrees: angle},
			{Joint: JointTopPlateJoin, Degrees: 90 - angle},
		},
	}

	ml.Capacity = capacity(s.width, s.height, angle)
	ml.SafeClimberWeightKg = rating.SafeWorkingLoad(ml.Capacity.Safe)

	if ml.SafeClimberWeightKg < rating.MinClimberWeight {
		return nil, &CapacityError{
			SafeClimberWeight: ml.SafeClimberWeightKg,
			Required:          rating.MinClimberWeight,
			msg: fmt.Sprintf("design cannot support minimum required weight: safe climber weight %.1f kg is below %.0f kg (governed by %s capacity)",
				ml.SafeClimberWeightKg, rating.MinClimberWeight, ml.Capacity.Governs),
		}
	}

	return ml, nil
}

// capacity computes the governing structural capacity for a panel of the
// given width and height (m) at angle degrees.
func capacity(width, height, angle float64) Capacity {
	c := Capacity{
		Panel:    rating.PanelCapacity(width, height),
		Timber:   rating.TimberCapacity,
		Bolt:     rating.BoltCapacity,
		Derating: rating.DeratingFactor(angle),
	}
	c.Panel *= c.Derating
	c.Timber *= c.Derating

	c.Raw, c.Governs = c.Panel, "panel"
	if c.Timber < c.Raw {
		c.Raw, c.Governs = c.Timber, "timber"
	}
	if c.Bolt < c.Raw {
		c.Raw, c.Governs = c.Bolt, "bolt"
	}
	c.Safe = rating.SafeCapacity(c.Raw)

	return c
}
