package wall

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depthFor(height, angle float64) float64 {
	return height * math.Tan(radians(angle))
}

func TestNew_AngleDerivation(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		depth  float64
		want   float64
	}{
		{"beginner", 2.4, depthFor(2.4, 20), 20.0},
		{"training", 2.4, depthFor(2.4, 30), 30.0},
		{"overhang", 2.4, 2.4, 45.0},
		{"default demo", 2.4, 2.0, 39.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.height, 2.4, tt.depth)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, s.AngleDegrees(), 1e-9)
			assert.InDelta(t, math.Round(degrees(math.Atan(tt.depth/tt.height))*10)/10, s.AngleDegrees(), 1e-9)
		})
	}
}

func TestNew_AngleInvariantUnderScaling(t *testing.T) {
	a, err := New(2.4, 2.4, 1.2)
	require.NoError(t, err)
	b, err := New(3.0, 2.4, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, a.AngleDegrees(), b.AngleDegrees(), 0.1)

	for _, k := range []float64{0.5, 0.75, 1.25, 1.5} {
		assert.InDelta(t, Angle(2.4, 1.2), Angle(2.4*k, 1.2*k), 0.1, "k=%v", k)
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name                 string
		height, width, depth float64
		kind                 error
		contains             string
	}{
		{"zero height", 0, 2.4, 1.2, ErrNonPositiveDimension, "positive"},
		{"negative height", -2.4, 2.4, 1.2, ErrNonPositiveDimension, "positive"},
		{"zero width", 2.4, 0, 1.2, ErrNonPositiveDimension, "positive"},
		{"zero depth", 2.4, 2.4, 0, ErrNonPositiveDimension, "positive"},
		{"NaN height", math.NaN(), 2.4, 2.0, ErrNonPositiveDimension, "finite"},
		{"NaN width", 2.4, math.NaN(), 2.0, ErrNonPositiveDimension, "finite"},
		{"NaN depth", 2.4, 2.4, math.NaN(), ErrNonPositiveDimension, "finite"},
		{"infinite width", 2.4, math.Inf(1), 2.0, ErrNonPositiveDimension, "finite"},
		{"infinite depth", 2.4, 2.4, math.Inf(1), ErrNonPositiveDimension, "finite"},
		{"negative infinite height", math.Inf(-1), 2.4, 2.0, ErrNonPositiveDimension, "finite"},
		{"shallow", 2.4, 2.4, 0.1, ErrAngleTooShallow, "too shallow"},
		{"shallow tall", 3.0, 2.4, 0.3, ErrAngleTooShallow, "too shallow"},
		{"small and shallow", 1.0, 1.0, 0.2, ErrAngleTooShallow, "too shallow"},
		{"steep", 2.0, 2.4, depthFor(2.0, 71), ErrAngleTooSteep, "too steep"},
		{"tall", 4.1, 2.4, 2.0, ErrHeightExceedsLimit, "exceeds safe limit"},
		{"narrow", 2.4, 1.1, 2.0, ErrWidthTooNarrow, "too small for stability"},
		{"tall and narrow", 3.0, 1.2, 2.0, ErrUnstableAspectRatio, "Height-to-width ratio"},
		{"rounded past depth", 4.0, 2.4, depthFor(4.0, 69.96), ErrInsufficientDepth, "too shallow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.height, tt.width, tt.depth)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Contains(t, err.Error(), tt.contains)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.kind, verr.Kind)
		})
	}
}

func TestNew_FirstViolationWins(t *testing.T) {
	// Too tall, too narrow and too shallow at once: angle is checked first.
	_, err := New(4.5, 1.0, 0.2)
	assert.ErrorIs(t, err, ErrAngleTooShallow)

	// Valid angle, too tall and too narrow: height is checked before width.
	_, err = New(4.5, 1.0, 3.0)
	assert.ErrorIs(t, err, ErrHeightExceedsLimit)
}

func TestNew_InsufficientDepthReportsMaxAngle(t *testing.T) {
	_, err := New(4.0, 2.4, depthFor(4.0, 69.96))
	require.ErrorIs(t, err, ErrInsufficientDepth)
	assert.Contains(t, err.Error(), "maximum achievable angle is 69.9°")
}

func TestNew_MinimumAngleBoundary(t *testing.T) {
	const height = 2.4
	minDepth := depthFor(height, 15)

	_, err := New(height, 2.4, minDepth-0.01)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too shallow")

	s, err := New(height, 2.4, minDepth+0.01)
	require.NoError(t, err)
	_, err = Calculate(s)
	assert.NoError(t, err)
}

func TestNew_DepthToleranceAtMinimumAngle(t *testing.T) {
	// A depth a hair under h·tan(15°) still rounds to 15.0° and sits inside
	// the 1 cm depth tolerance, so it is accepted. The shortfall has to pull
	// the rounded angle below 15.0° (about 2.2 mm at this height) before the
	// wall is refused.
	const height = 2.4
	minDepth := depthFor(height, 15)

	s, err := New(height, 2.4, minDepth-1e-6)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, s.AngleDegrees(), 1e-9)

	_, err = New(height, 2.4, minDepth-0.005)
	assert.ErrorIs(t, err, ErrAngleTooShallow)
}

func TestNew_ExtremeAngles(t *testing.T) {
	shallow, err := New(2.0, 2.4, depthFor(2.0, 15.1))
	require.NoError(t, err)
	assert.Greater(t, shallow.AngleDegrees(), 15.0)
	assert.Less(t, shallow.AngleDegrees(), 16.0)
	_, err = Calculate(shallow)
	require.NoError(t, err)

	steep, err := New(2.0, 2.4, depthFor(2.0, 69.9))
	require.NoError(t, err)
	assert.Greater(t, steep.AngleDegrees(), 69.0)
	assert.Less(t, steep.AngleDegrees(), 70.0)

	ml, err := Calculate(steep)
	require.NoError(t, err)
	uprights, ok := ml.Timber(LabelUprights)
	require.True(t, ok)
	assert.Greater(t, uprights, 2.0*2.5)
}

func TestSpec_PanelGeometry(t *testing.T) {
	s, err := New(2.4, 2.4, 2.0)
	require.NoError(t, err)

	theta := radians(39.8)
	assert.InDelta(t, 2.4/math.Cos(theta), s.PanelHeight(), 1e-9)
	assert.InDelta(t, 2.4*math.Tan(theta), s.PanelDepth(), 1e-9)
	assert.LessOrEqual(t, s.PanelDepth(), s.Depth())
}

func TestCalculate_DemoWall(t *testing.T) {
	s, err := New(2.4, 2.4, 2.0)
	require.NoError(t, err)

	ml, err := Calculate(s)
	require.NoError(t, err)

	theta := radians(s.AngleDegrees())
	assert.Equal(t, 4, ml.PlywoodSheets)

	var labels []string
	for _, tl := range ml.TimberLengths {
		labels = append(labels, tl.Label)
	}
	want := []string{"Base beam", "Uprights (x2)", "Cross braces (x2)", "Kicker/struts"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("timber labels mismatch (-want +got):\n%s", diff)
	}

	assert.InDelta(t, 2.4, ml.TimberLengths[0].Length, 1e-9)
	assert.InDelta(t, 2*2.4/math.Cos(theta), ml.TimberLengths[1].Length, 1e-9)
	assert.InDelta(t, 2.4, ml.TimberLengths[2].Length, 1e-9)
	assert.InDelta(t, 2.4*math.Tan(theta), ml.TimberLengths[3].Length, 1e-9)

	for _, tl := range ml.TimberLengths {
		assert.Greater(t, tl.Length, 0.0, tl.Label)
	}

	wantAngles := []CutAngle{
		{Joint: "Upright to base", Degrees: 39.8},
		{Joint: "Top plate join", Degrees: 90 - 39.8},
	}
	if diff := cmp.Diff(wantAngles, ml.CutAngles); diff != "" {
		t.Errorf("cut angles mismatch (-want +got):\n%s", diff)
	}

	raw := 2.4 * 2.4 * 200
	assert.InDelta(t, raw/7.5, ml.SafeClimberWeightKg, 1e-9)
	assert.GreaterOrEqual(t, ml.SafeClimberWeightKg, 80.0)
	assert.Less(t, ml.SafeClimberWeightKg, raw/5.0)
	assert.Less(t, ml.SafeClimberWeightKg, 1200/7.5)
	assert.Equal(t, "panel", ml.Capacity.Governs)
	assert.InDelta(t, raw, ml.Capacity.Raw, 1e-9)
}

func TestCalculate_SheetCoverage(t *testing.T) {
	s, err := New(2.4, 2.4, 2.0)
	require.NoError(t, err)
	ml, err := Calculate(s)
	require.NoError(t, err)

	sheetArea := 2.5 * 1.25
	panelArea := s.Width() * s.PanelHeight()
	total := float64(ml.PlywoodSheets) * sheetArea
	assert.Greater(t, total, panelArea)
	assert.Less(t, (total-panelArea)/total, 0.45)
}

func TestCalculate_ExactSheetWidth(t *testing.T) {
	s, err := New(2.5, 1.25, 2.5)
	require.NoError(t, err)
	ml, err := Calculate(s)
	require.NoError(t, err)

	// 45° slope stretches 2.5 m of height past one sheet length.
	assert.Equal(t, 2, ml.PlywoodSheets)
}

func TestCalculate_SheetsMonotonic(t *testing.T) {
	const angle = 35.0

	prev := 0
	for i := 0; i <= 27; i++ {
		w := 1.3 + float64(i)*0.1
		s, err := New(2.5, w, depthFor(2.5, angle))
		require.NoError(t, err)
		ml, err := Calculate(s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ml.PlywoodSheets, prev, "width %.1f", w)
		prev = ml.PlywoodSheets
	}

	prev = 0
	for i := 0; i <= 24; i++ {
		h := 1.5 + float64(i)*0.1
		s, err := New(h, 2.4, depthFor(h, angle))
		require.NoError(t, err)
		ml, err := Calculate(s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ml.PlywoodSheets, prev, "height %.1f", h)
		prev = ml.PlywoodSheets
	}

	small, _ := New(2.4, 2.4, 2.0)
	large, _ := New(3.6, 3.6, 3.0)
	smallML, err := Calculate(small)
	require.NoError(t, err)
	largeML, err := Calculate(large)
	require.NoError(t, err)
	assert.Greater(t, largeML.PlywoodSheets, smallML.PlywoodSheets)
}

func TestCalculate_SteepDerating(t *testing.T) {
	base, err := New(2.4, 2.4, 2.0)
	require.NoError(t, err)
	baseML, err := Calculate(base)
	require.NoError(t, err)

	tests := []struct {
		angle  float64
		factor float64
	}{
		{20, 1.0},
		{45, 1.0},
		{60, 0.8},
	}

	for _, tt := range tests {
		s, err := New(2.4, 2.4, depthFor(2.4, tt.angle))
		require.NoError(t, err)
		ml, err := Calculate(s)
		require.NoError(t, err)
		assert.InDelta(t, tt.factor, ml.SafeClimberWeightKg/baseML.SafeClimberWeightKg, 1e-9, "angle %v", tt.angle)
		assert.InDelta(t, tt.factor, ml.Capacity.Derating, 1e-9)
	}
}

func TestCalculate_WiderWallCarriesMore(t *testing.T) {
	base, _ := New(2.4, 2.4, 2.0)
	wide, err := New(2.4, 4.8, 2.4)
	require.NoError(t, err)

	baseML, err := Calculate(base)
	require.NoError(t, err)
	wideML, err := Calculate(wide)
	require.NoError(t, err)

	ratio := wideML.SafeClimberWeightKg / baseML.SafeClimberWeightKg
	assert.Greater(t, ratio, 1.0)
	assert.Less(t, ratio, 2.0)
	assert.Equal(t, "timber", wideML.Capacity.Governs)
}
func TestCalculate_SheetCountOverflow(t *testing.T) {
	// Wide enough to pass every ratio check yet overflow any sheet count.
	for _, width := range []float64{1e12, 1e20, math.MaxFloat64} {
		s, err := New(2.4, width, 2.0)
		require.NoError(t, err, "width=%g", width)

		ml, err := Calculate(s)
		assert.Nil(t, ml)
		assert.ErrorIs(t, err, ErrSheetCountOverflow, "width=%g", width)
		assert.Equal(t, "sheet_count_overflow", KindName(err))
	}

	s, err := New(2.4, 1000, 2.0)
	require.NoError(t, err)
	ml, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, 800*2, ml.PlywoodSheets)
}

func TestCalculate_MinimumCapacity(t *testing.T) {
	s, err := New(1.0, 1.2, 1.0)
	require.NoError(t, err, "geometry is valid")
	assert.InDelta(t, 45.0, s.AngleDegrees(), 1e-9)

	ml, err := Calculate(s)
	require.Error(t, err)
	assert.Nil(t, ml)
	assert.ErrorIs(t, err, ErrMinimumCapacity)
	assert.Contains(t, err.Error(), "support minimum required weight")

	var cerr *CapacityError
	require.True(t, errors.As(err, &cerr))
	assert.InDelta(t, 32.0, cerr.SafeClimberWeight, 1e-9)
	assert.Equal(t, 80.0, cerr.Required)
}

func TestCalculate_RejectsUnvalidatedSpec(t *testing.T) {
	ml, err := Calculate(Spec{})
	assert.Nil(t, ml)
	assert.ErrorIs(t, err, ErrNonPositiveDimension)
}

func TestCalculate_ConcurrentCallers(t *testing.T) {
	s, err := New(2.4, 2.4, 2.0)
	require.NoError(t, err)
	want, err := Calculate(s)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*MaterialList, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Calculate(s)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("concurrent result differs (-want +got):\n%s", diff)
		}
	}
}

func TestMaterialList_Lookups(t *testing.T) {
	s, _ := New(2.4, 2.4, 2.0)
	ml, err := Calculate(s)
	require.NoError(t, err)

	v, ok := ml.CutAngle(JointTopPlateJoin)
	assert.True(t, ok)
	assert.InDelta(t, 50.2, v, 1e-9)

	_, ok = ml.CutAngle("Ridge")
	assert.False(t, ok)
	_, ok = ml.Timber("Purlin")
	assert.False(t, ok)
}

func TestKindName(t *testing.T) {
	_, err := New(4.1, 2.4, 2.0)
	assert.Equal(t, "height_exceeds_limit", KindName(err))

	s, _ := New(1.0, 1.2, 1.0)
	_, err = Calculate(s)
	assert.Equal(t, "minimum_capacity_violation", KindName(err))

	assert.Equal(t, "", KindName(errors.New("other")))
	assert.Equal(t, "", KindName(nil))
}
