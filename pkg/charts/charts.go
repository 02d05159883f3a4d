// Package charts renders the dashboard datasets as PNG files.
package charts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/PrettyR/ClientSphere/pkg/analytics"
)

// File names written by Render.
const (
	BalanceFile = "balance_analysis.png"
	SegmentFile = "segment_distribution.png"
	TxFile      = "tx_distribution.png"
	ScatterFile = "cluster_scatter.png"
)

// Renderer writes charts into Dir.
type Renderer struct {
	Dir   string
	Width vg.Length
}

// NewRenderer returns a renderer with square charts of the given width in
// inches; width <= 0 means 8.
func NewRenderer(dir string, widthInches float64) *Renderer {
	if widthInches <= 0 {
		widthInches = 8
	}
	return &Renderer{Dir: dir, Width: vg.Length(widthInches) * vg.Inch}
}

// Render draws every chart that has data and returns the written paths.
func (r *Renderer) Render(p analytics.ChartsPayload) ([]string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return nil, fmt.Errorf("charts: create %s: %w", r.Dir, err)
	}
	var written []string
	save := func(pl *plot.Plot, name string) error {
		path := filepath.Join(r.Dir, name)
		if err := pl.Save(r.Width, r.Width*3/4, path); err != nil {
			return fmt.Errorf("charts: save %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	if len(p.BalanceByCluster) > 0 {
		labels := make([]string, len(p.BalanceByCluster))
		vals := make(plotter.Values, len(p.BalanceByCluster))
		for i, g := range p.BalanceByCluster {
			labels[i], vals[i] = clusterName(g.Cluster), g.Value
		}
		pl, err := bars("Total Balance by Segment", "Segment", "Balance", labels, vals, plotutil.Color(0))
		if err != nil {
			return written, err
		}
		if err := save(pl, BalanceFile); err != nil {
			return written, err
		}
	}

	if len(p.Segments) > 0 {
		labels := make([]string, len(p.Segments))
		vals := make(plotter.Values, len(p.Segments))
		for i, s := range p.Segments {
			labels[i], vals[i] = clusterName(s.Cluster), float64(s.Count)
		}
		pl, err := bars("Clients per Segment", "Segment", "Clients", labels, vals, plotutil.Color(1))
		if err != nil {
			return written, err
		}
		if err := save(pl, SegmentFile); err != nil {
			return written, err
		}
	}

	if len(p.Histogram.Buckets) > 0 {
		labels := make([]string, len(p.Histogram.Buckets))
		vals := make(plotter.Values, len(p.Histogram.Buckets))
		for i, b := range p.Histogram.Buckets {
			labels[i], vals[i] = b.Label, float64(b.Count)
		}
		pl, err := bars("Distribution of "+p.Histogram.Column, p.Histogram.Column, "Clients", labels, vals, plotutil.Color(2))
		if err != nil {
			return written, err
		}
		if err := save(pl, TxFile); err != nil {
			return written, err
		}
	}

	if len(p.Scatter) > 0 {
		pl, err := scatter(p.Scatter)
		if err != nil {
			return written, err
		}
		if err := save(pl, ScatterFile); err != nil {
			return written, err
		}
	}
	return written, nil
}

func bars(title, x, y string, labels []string, vals plotter.Values, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y

	b, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("charts: %s: %w", title, err)
	}
	b.Color = c
	b.LineStyle.Width = vg.Length(0)
	p.Add(b)
	p.NominalX(labels...)
	return p, nil
}

// scatter plots balance against risk score, one colour per cluster.
func scatter(points []analytics.ScatterPoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Segments by Balance and Risk"
	p.X.Label.Text = "Balance"
	p.Y.Label.Text = "Risk score"

	byCluster := map[int]plotter.XYs{}
	for _, pt := range points {
		byCluster[pt.Cluster] = append(byCluster[pt.Cluster], plotter.XY{X: pt.Balance, Y: pt.RiskScore})
	}
	clusters := make([]int, 0, len(byCluster))
	for k := range byCluster {
		clusters = append(clusters, k)
	}
	sort.Ints(clusters)

	for i, k := range clusters {
		s, err := plotter.NewScatter(byCluster[k])
		if err != nil {
			return nil, fmt.Errorf("charts: scatter: %w", err)
		}
		s.Color = plotutil.Color(i)
		s.Shape = draw.CircleGlyph{}
		s.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add("segment "+strconv.Itoa(k), s)
	}
	return p, nil
}

func clusterName(c *int) string {
	if c == nil {
		return "unassigned"
	}
	return strconv.Itoa(*c)
}
