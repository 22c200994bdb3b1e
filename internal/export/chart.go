package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/palletpack/internal/model"
)

// UtilizationChart builds a bar chart of per-pallet efficiency.
func UtilizationChart(result model.PackResult) *charts.Bar {
	x := make([]string, 0, len(result.Pallets))
	y := make([]opts.BarData, 0, len(result.Pallets))
	for _, p := range result.Pallets {
		x = append(x, fmt.Sprintf("Pallet %d", p.Index))
		y = append(y, opts.BarData{Value: fmt.Sprintf("%.1f", p.Efficiency())})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Pallet Utilization", Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Pallet Utilization",
			Subtitle: fmt.Sprintf("algorithm=%s pallets=%d overall=%.1f%%", result.Algorithm, len(result.Pallets), result.TotalEfficiency()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Efficiency (%)", Min: 0, Max: 100}),
	)
	bar.SetXAxis(x).
		AddSeries("efficiency", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// FitnessChart builds a line chart of best and mean fitness per generation.
func FitnessChart(history []model.GenerationStats) *charts.Line {
	x := make([]string, 0, len(history))
	best := make([]opts.LineData, 0, len(history))
	mean := make([]opts.LineData, 0, len(history))
	for _, h := range history {
		x = append(x, fmt.Sprintf("%d", h.Generation))
		best = append(best, opts.LineData{Value: h.Best})
		mean = append(mean, opts.LineData{Value: fmt.Sprintf("%.2f", h.Mean)})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Genetic Search", Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Fitness per Generation"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Generation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Fitness"}),
	)
	line.SetXAxis(x).
		AddSeries("best", best).
		AddSeries("mean", mean)
	return line
}

// RenderCharts writes an HTML page with the utilization chart and, when
// history is non-empty, the fitness chart.
func RenderCharts(w io.Writer, result model.PackResult, history []model.GenerationStats) error {
	page := components.NewPage()
	page.PageTitle = "PalletPack Report"
	page.AddCharts(UtilizationChart(result))
	if len(history) > 0 {
		page.AddCharts(FitnessChart(history))
	}
	return page.Render(w)
}

// ExportUtilizationChart writes the chart page to path.
func ExportUtilizationChart(path string, result model.PackResult, history []model.GenerationStats) error {
	if len(result.Pallets) == 0 {
		return fmt.Errorf("no pallets to chart")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := RenderCharts(f, result, history); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
