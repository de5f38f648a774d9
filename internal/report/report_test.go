package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gowall/internal/rating"
	"github.com/alexiusacademia/gowall/internal/wall"
)

func demoWall(t *testing.T) (wall.Spec, *wall.MaterialList) {
	t.Helper()
	s, err := wall.New(2.4, 2.4, 2.0)
	require.NoError(t, err)
	ml, err := wall.Calculate(s)
	require.NoError(t, err)
	return s, ml
}

func TestMaterialsList_Sections(t *testing.T) {
	s, ml := demoWall(t)
	content := MaterialsList(s, ml)

	for _, section := range []string{
		"WALL SPECIFICATIONS",
		"PLYWOOD PANELS",
		"TIMBER FRAME",
		"HARDWARE RECOMMENDATIONS",
		"CRITICAL ANGLES",
		"SAFETY INFORMATION",
		"ADDITIONAL MATERIALS",
		"INSTALLATION NOTES",
	} {
		assert.Contains(t, content, section)
	}

	assert.Contains(t, content, "2.40 m")
	assert.Contains(t, content, "2.00 m")
	assert.Contains(t, content, "39.8°")
	assert.Contains(t, content, "4 sheets")
	assert.Contains(t, content, "153.6 kg")

	for _, tl := range ml.TimberLengths {
		assert.Contains(t, content, fmt.Sprintf("%s: %.2f", tl.Label, tl.Length))
	}
	for _, c := range ml.CutAngles {
		assert.Contains(t, content, fmt.Sprintf("%s: %.1f°", c.Joint, c.Degrees))
	}
}

func TestMaterialsList_SteepDerating(t *testing.T) {
	s, err := wall.New(2.4, 2.4, 2.4*1.7320508) // 60°
	require.NoError(t, err)
	ml, err := wall.Calculate(s)
	require.NoError(t, err)

	assert.Regexp(t, `Steep-angle derating:\s+0\.80`, MaterialsList(s, ml))

	flat, flatML := demoWall(t)
	assert.NotContains(t, MaterialsList(flat, flatML), "Steep-angle derating")
}

func TestParseCutList_RoundTrip(t *testing.T) {
	walls := [][3]float64{
		{2.4, 2.4, 2.0},
		{3.0, 1.8, 3.0},
		{2.0, 4.0, 2.0},
		{3.6, 3.6, 3.0},
	}

	for _, dims := range walls {
		t.Run(fmt.Sprintf("%vx%vx%v", dims[0], dims[1], dims[2]), func(t *testing.T) {
			s, err := wall.New(dims[0], dims[1], dims[2])
			require.NoError(t, err)
			ml, err := wall.Calculate(s)
			require.NoError(t, err)

			timber, angles, err := ParseCutList(MaterialsList(s, ml))
			require.NoError(t, err)
			require.Len(t, timber, len(ml.TimberLengths))
			require.Len(t, angles, len(ml.CutAngles))

			for i, tl := range ml.TimberLengths {
				assert.Equal(t, tl.Label, timber[i].Label)
				assert.Equal(t, rating.RoundTo(tl.Length, 2), timber[i].Length)
			}
			for i, c := range ml.CutAngles {
				assert.Equal(t, c.Joint, angles[i].Joint)
				assert.Equal(t, rating.RoundTo(c.Degrees, 1), angles[i].Degrees)
			}
		})
	}
}

func TestParseCutList_Empty(t *testing.T) {
	_, _, err := ParseCutList("nothing here\n")
	assert.Error(t, err)
}

func TestWriteYAML(t *testing.T) {
	s, ml := demoWall(t)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, s, ml))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 39.8, doc.Wall.Angle)
	assert.Equal(t, 4, doc.Materials.PlywoodSheets)
	assert.Equal(t, wall.LabelKicker, doc.Materials.TimberLengths[3].Label)
}

func TestWriteJSON(t *testing.T) {
	s, ml := demoWall(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s, ml))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "wall")
	assert.Contains(t, doc, "materials")
}

func TestWritePDF(t *testing.T) {
	s, ml := demoWall(t)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, s, ml))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteWorkbook(t *testing.T) {
	s, ml := demoWall(t)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, s, ml))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetCutList)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(ml.TimberLengths)+len(ml.CutAngles))
	assert.Equal(t, "Item", rows[0][0])
	assert.Equal(t, wall.LabelBaseBeam, rows[1][0])
	assert.Equal(t, "2.4", rows[1][1])

	v, err := f.GetCellValue(SheetSummary, "B6")
	require.NoError(t, err)
	assert.Equal(t, "4", v)
}

func TestWrite_ByExtension(t *testing.T) {
	s, ml := demoWall(t)
	dir := t.TempDir()

	for _, name := range []string{"plan.txt", "plan.pdf", "plan.xlsx", "plan.yaml", "plan.yml", "nested/plan.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Write(path, s, ml), name)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	err := Write(filepath.Join(dir, "plan.docx"), s, ml)
	assert.ErrorContains(t, err, "unsupported report format")
}
