// Package monitor renders debugging visualisations of an analysis run:
// an HTML shot chart and formation timeline via go-echarts, and PNG
// track plots via gonum/plot. These are development aids for tuning the
// heuristics against recorded clips, not a product surface.
package monitor

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/farshadalemi/Basketball-Analytics-Application/internal/scout"
)

// viridis is the colour ramp used for value-mapped scatter series.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// RenderShotChart writes an HTML scatter of shot locations in court
// feet. Makes and misses are separate series so they can be toggled in
// the legend; point colour tracks shot distance.
func RenderShotChart(w io.Writer, runID string, shots []scout.Shot, geom scout.CourtGeometry) error {
	makes := make([]opts.ScatterData, 0, len(shots))
	misses := make([]opts.ScatterData, 0, len(shots))
	maxDist := 1.0
	for _, s := range shots {
		if s.Distance > maxDist {
			maxDist = s.Distance
		}
		pt := opts.ScatterData{Value: []interface{}{s.CourtPosition.X, s.CourtPosition.Y, s.Distance}}
		if s.Made {
			makes = append(makes, pt)
		} else {
			misses = append(misses, pt)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Shot Chart", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Shot Chart", Subtitle: fmt.Sprintf("run=%s shots=%d", runID, len(shots))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: geom.Width, Name: "X (ft)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: geom.Length / 2, Name: "Y (ft)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxDist),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)

	scatter.AddSeries("makes", makes, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}))
	scatter.AddSeries("misses", misses, charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "diamond", SymbolSize: 10}))

	return scatter.Render(w)
}

// RenderFormationTimeline writes an HTML bar chart of formation type
// counts over a run, next to a line of per-frame defender spacing.
func RenderFormationTimeline(w io.Writer, runID string, snapshots []scout.FormationSnapshot) error {
	counts := make(map[scout.FormationType]int)
	frames := make([]string, 0, len(snapshots))
	spacing := make([]opts.LineData, 0, len(snapshots))
	for _, s := range snapshots {
		counts[s.Formation]++
		frames = append(frames, fmt.Sprintf("%d", s.FrameIndex))
		spacing = append(spacing, opts.LineData{Value: s.Spacing})
	}

	var labels []string
	var bars []opts.BarData
	for _, f := range []scout.FormationType{
		scout.FormationManToMan, scout.FormationZone23, scout.FormationZone131,
		scout.FormationZone32, scout.FormationZone122, scout.FormationMixed, scout.FormationUnknown,
	} {
		if n, ok := counts[f]; ok {
			labels = append(labels, string(f))
			bars = append(bars, opts.BarData{Value: n})
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Formation Distribution", Subtitle: fmt.Sprintf("run=%s frames=%d", runID, len(snapshots))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("frames", bars,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Defender Spacing", Subtitle: "mean pairwise distance, px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(frames).AddSeries("spacing", spacing)

	page := components.NewPage()
	page.AddCharts(bar, line)
	return page.Render(w)
}
