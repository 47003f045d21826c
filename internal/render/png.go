package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/roach88/crimehours/internal/aggregate"
)

const (
	monthCols         = 3
	sensitivityPerRow = 5
	titleHeight       = vg.Length(36)
)

// PNG renders bar-chart panel grids as PNG images.
type PNG struct {
	OutDir string
}

// Render writes one monthly grid per year and the January sensitivity figure.
func (r PNG) Render(fig Figures) ([]string, error) {
	var paths []string
	for _, g := range fig.Grids {
		path := filepath.Join(r.OutDir, YearFileName(g.Year))
		if err := r.writeYear(path, g); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if len(fig.January) > 0 {
		path := filepath.Join(r.OutDir, JanuaryFileName)
		if err := r.writeJanuary(path, fig.January); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r PNG) writeYear(path string, g YearGrid) error {
	rows := 12 / monthCols
	plots := make([][]*plot.Plot, rows)
	for j := range plots {
		plots[j] = make([]*plot.Plot, monthCols)
		for i := range plots[j] {
			m := j*monthCols + i
			p, err := barPanel(monthName(m+1), g.Months[m])
			if err != nil {
				return err
			}
			plots[j][i] = p
		}
	}
	title := fmt.Sprintf("Total Number of Violent Crimes by Month by Hour of Day, %d", g.Year)
	return saveGrid(path, title, plots, 10*vg.Inch, 14*vg.Inch)
}

// writeJanuary lays years out sensitivityPerRow to a row, each row of
// full-month panels followed by a row without New Year's Day.
func (r PNG) writeJanuary(path string, sens []aggregate.Sensitivity) error {
	bands := (len(sens) + sensitivityPerRow - 1) / sensitivityPerRow
	plots := make([][]*plot.Plot, 2*bands)
	for j := range plots {
		plots[j] = make([]*plot.Plot, sensitivityPerRow)
		for i := range plots[j] {
			plots[j][i] = blankPanel()
		}
	}

	for k, s := range sens {
		band, col := k/sensitivityPerRow, k%sensitivityPerRow

		all, err := barPanel(fmt.Sprintf("January %d", s.Year), s.All)
		if err != nil {
			return err
		}
		without, err := barPanel(fmt.Sprintf("January %d, Without Jan 1", s.Year), s.WithoutFirstDay)
		if err != nil {
			return err
		}
		plots[2*band][col] = all
		plots[2*band+1][col] = without
	}

	title := "Total Number of Violent Crimes in January by Hour of Day, With and Without Jan 1"
	return saveGrid(path, title, plots, 14*vg.Inch, vg.Length(2*bands)*2.5*vg.Inch)
}

func barPanel(title string, h aggregate.Histogram) (*plot.Plot, error) {
	values := make(plotter.Values, len(h))
	for i, c := range h {
		values[i] = float64(c)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(7))
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", title, err)
	}
	bars.Color = color.Black
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = title
	p.Add(bars)
	p.NominalX(tickLabels()...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.Y.Min = 0
	p.Y.Max = math.Max(p.Y.Max, 1)
	return p, nil
}

func blankPanel() *plot.Plot {
	p := plot.New()
	p.HideAxes()
	return p
}

// saveGrid draws a figure title above a grid of plots and writes a PNG.
func saveGrid(path, title string, plots [][]*plot.Plot, width, height vg.Length) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)

	head := plot.New()
	head.Title.Text = title
	head.Title.TextStyle.Font.Size = vg.Points(14)
	head.HideAxes()
	head.Draw(draw.Crop(dc, 0, 0, height-titleHeight, 0))

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	body := draw.Crop(dc, 0, 0, 0, -titleHeight)
	canvases := plot.Align(plots, tiles, body)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
