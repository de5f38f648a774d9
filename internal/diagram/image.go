package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gowall/internal/rating"
)

// HoldSpacing is the grid pitch (m) for hold mounting points drawn on the
// elevation view.
const HoldSpacing = 0.20

var (
	panelColor  = color.RGBA{R: 0, G: 0, B: 200, A: 255}
	panelFill   = color.RGBA{R: 100, G: 149, B: 237, A: 120}
	timberColor = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	holdColor   = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	depthColor  = color.Gray{Y: 128}
)

// ExportWallDiagram writes three aligned views of the wall (isometric
// frame, side profile and front elevation) to filename. The format follows
// the extension: png, svg, pdf, jpg, eps or tif. Anything else gets ".png"
// appended.
func ExportWallDiagram(data WallDiagramData, filename string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch format {
	case "png", "svg", "pdf", "jpg", "jpeg", "eps", "tif", "tiff":
	default:
		format = "png"
		filename += ".png"
	}

	iso, err := isometricPlot(data)
	if err != nil {
		return "", err
	}
	side, err := sidePlot(data)
	if err != nil {
		return "", err
	}
	front, err := frontPlot(data)
	if err != nil {
		return "", err
	}

	width := 15 * vg.Inch
	height := 6 * vg.Inch
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return "", err
	}

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      3,
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{{iso, side, front}}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}

	// Create directory if needed
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, f.Close()
}

func isometricPlot(data WallDiagramData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "3D Frame"
	p.X.Label.Text = "Width (m)"
	p.Y.Label.Text = "Height (m)"

	fr := data.Frame
	panel := projectAll(fr.Panel[:], true)
	poly, err := plotter.NewPolygon(panel)
	if err != nil {
		return nil, err
	}
	poly.Color = panelFill
	poly.LineStyle.Color = panelColor
	poly.LineStyle.Width = vg.Points(2)
	p.Add(poly)
	p.Legend.Add("Climbing panel", poly)

	base, err := plotter.NewLine(projectAll(fr.Base[:], true))
	if err != nil {
		return nil, err
	}
	base.LineStyle.Color = timberColor
	base.LineStyle.Width = vg.Points(1.5)
	p.Add(base)
	p.Legend.Add("Base frame", base)

	for _, support := range [][3]Vec3{fr.LeftSupport, fr.RightSupport} {
		l, err := plotter.NewLine(projectAll(support[:], false))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = timberColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
	}

	return p, nil
}

func projectAll(vs []Vec3, closed bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(vs)+1)
	for _, v := range vs {
		x, y := Project(v)
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	if closed && len(vs) > 0 {
		pts = append(pts, pts[0])
	}
	return pts
}

func sidePlot(data WallDiagramData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Side Profile (%.1f°)", data.Angle)
	p.X.Label.Text = "Depth (m)"
	p.Y.Label.Text = "Height (m)"

	panel, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.PanelDepth, Y: data.Height},
	})
	if err != nil {
		return nil, err
	}
	panel.LineStyle.Color = panelColor
	panel.LineStyle.Width = vg.Points(3)
	p.Add(panel)
	p.Legend.Add("Panel / uprights", panel)

	kicker, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: data.Height},
		{X: data.PanelDepth, Y: data.Height},
	})
	if err != nil {
		return nil, err
	}
	kicker.LineStyle.Color = timberColor
	kicker.LineStyle.Width = vg.Points(2)
	p.Add(kicker)
	p.Legend.Add("Kicker/struts", kicker)

	plumb, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: 0, Y: data.Height},
	})
	if err != nil {
		return nil, err
	}
	plumb.LineStyle.Color = timberColor
	plumb.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(plumb)

	limit, err := plotter.NewLine(plotter.XYs{
		{X: data.Depth, Y: 0},
		{X: data.Depth, Y: data.Height + 0.3},
	})
	if err != nil {
		return nil, err
	}
	limit.LineStyle.Color = depthColor
	limit.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(limit)
	p.Legend.Add("Available depth", limit)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: data.PanelDepth / 2, Y: data.Height / 2}},
		Labels: []string{fmt.Sprintf("%.2f m", data.PanelHeight)},
	})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	p.X.Min = -0.5
	p.X.Max = max(data.Depth, data.PanelDepth) + 0.5
	p.Y.Min = 0
	p.Y.Max = data.Height + 0.5

	return p, nil
}

func frontPlot(data WallDiagramData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Panel Layout"
	p.X.Label.Text = "Width (m)"
	p.Y.Label.Text = "Panel height (m)"

	w, h := data.Width, data.PanelHeight
	outline, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: 0},
	})
	if err != nil {
		return nil, err
	}
	outline.LineStyle.Color = panelColor
	outline.LineStyle.Width = vg.Points(2)
	p.Add(outline)
	p.Legend.Add("Climbing surface", outline)

	// Sheet joints from the rectangular tiling
	var joints []plotter.XYs
	for x := rating.SheetWidth / 1000; x < w; x += rating.SheetWidth / 1000 {
		joints = append(joints, plotter.XYs{{X: x, Y: 0}, {X: x, Y: h}})
	}
	for y := rating.SheetLength / 1000; y < h; y += rating.SheetLength / 1000 {
		joints = append(joints, plotter.XYs{{X: 0, Y: y}, {X: w, Y: y}})
	}
	for _, j := range joints {
		l, err := plotter.NewLine(j)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = depthColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
	}

	holds := HoldGrid(w, h, HoldSpacing)
	if len(holds) > 0 {
		s, err := plotter.NewScatter(holds)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = holdColor
		s.GlyphStyle.Radius = vg.Points(1.5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("Hold mounts", s)
	}

	p.X.Min = -0.25
	p.X.Max = w + 0.25
	p.Y.Min = 0
	p.Y.Max = h + 0.25

	return p, nil
}

// HoldGrid returns mounting points on a width x height panel at the given
// spacing, keeping one spacing clear of every edge.
func HoldGrid(width, height, spacing float64) plotter.XYs {
	var pts plotter.XYs
	for x := range Steps(spacing, width-spacing, spacing) {
		for y := range Steps(spacing, height-spacing, spacing) {
			pts = append(pts, plotter.XY{X: x, Y: y})
		}
	}
	return pts
}
