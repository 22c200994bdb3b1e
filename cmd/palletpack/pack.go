package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/palletpack/internal/engine"
	"github.com/piwi3910/palletpack/internal/export"
	"github.com/piwi3910/palletpack/internal/model"
	"github.com/piwi3910/palletpack/internal/project"
	"github.com/piwi3910/palletpack/internal/ui"
)

// packReport is the document written by --json.
type packReport struct {
	Settings model.PackSettings      `json:"settings"`
	Result   model.PackResult        `json:"result"`
	Fitness  *int                    `json:"fitness,omitempty"`
	History  []model.GenerationStats `json:"history,omitempty"`
}

func newPackCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack shapes and export the layout",
		Example: `  palletpack pack --shapes "10x20, 15x15:3" --pallet-width 50 --pallet-height 40
  palletpack pack --input shapes.xlsx --pallet "EUR 120x80" --pdf report.pdf --png-dir out/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd)
		},
	}
	fs := cmd.Flags()
	addShapeFlags(fs)
	addSettingsFlags(fs)
	fs.String("template", "", "start from a saved template's shapes and settings")
	fs.String("json", "", "write the result as JSON")
	fs.String("pdf", "", "write a PDF layout report")
	fs.String("labels", "", "write QR shape labels as PDF")
	fs.String("png-dir", "", "write one PNG image per pallet into this directory")
	fs.Float64("png-scale", 0, "pixels per cell for PNG output (default fits 800px)")
	fs.String("chart", "", "write an HTML utilization chart")
	fs.String("fitness-plot", "", "write the genetic fitness curve as PNG or SVG")
	fs.String("save-project", "", "save shapes, settings and result as a project file")
	fs.Bool("view", false, "open the interactive pallet viewer")
	return cmd
}

// projectInput resolves shapes and settings, starting from --template when
// given. Settings flags override the template's settings and shapes from
// --shapes or --input are appended to its list.
func (c *cli) projectInput(out io.Writer) (model.Project, error) {
	name := c.v.GetString("template")
	if name == "" {
		p := model.NewProject()
		settings, err := c.settings()
		if err != nil {
			return p, err
		}
		p.Settings = settings
		shapes, err := c.shapes(out)
		if err != nil {
			return p, err
		}
		p.Shapes = shapes
		return p, nil
	}

	store, err := project.LoadTemplates(c.dataPath("templates.json"))
	if err != nil {
		return model.Project{}, err
	}
	tmpl := store.FindByName(name)
	if tmpl == nil {
		return model.Project{}, fmt.Errorf("unknown template %q", name)
	}
	p := tmpl.ToProject(tmpl.Name)
	if p.Settings, err = c.applyOverrides(p.Settings); err != nil {
		return p, err
	}
	if c.v.GetString("shapes") != "" || c.v.GetString("input") != "" {
		shapes, err := c.shapes(out)
		if err != nil {
			return p, err
		}
		p.Shapes = append(p.Shapes, shapes...)
	}
	return p, nil
}

func (c *cli) runPack(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	proj, err := c.projectInput(out)
	if err != nil {
		return err
	}
	settings := proj.Settings
	shapes := model.ExpandRequests(proj.Shapes)
	if err := model.ValidateSettings(settings, shapes); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opt := engine.New(settings, c.logger)
	report := packReport{Settings: settings}
	if settings.Algorithm == model.AlgorithmGenetic {
		gr, err := opt.Evolve(ctx, shapes)
		if err != nil {
			return err
		}
		if gr.Interrupted {
			fmt.Fprintf(out, "interrupted after %d generations, keeping the best layout so far\n", gr.Generations)
		}
		report.Result = gr.AsPackResult()
		report.Fitness = &gr.Fitness
		report.History = gr.History
	} else {
		report.Result = opt.Pack(shapes)
	}

	printSummary(out, report, model.EstimatePallets(shapes, settings.PalletWidth, settings.PalletHeight, settings.Padding))
	if err := c.writeOutputs(out, proj, report); err != nil {
		return err
	}

	if c.v.GetBool("view") {
		if len(report.Result.Pallets) == 0 {
			fmt.Fprintln(out, "nothing to view")
			return nil
		}
		ui.RunViewer(report.Result)
	}
	return nil
}

func printSummary(w io.Writer, report packReport, estimate model.PalletEstimate) {
	res := report.Result
	fmt.Fprintf(w, "Algorithm: %s\n", res.Algorithm)
	fmt.Fprintf(w, "Pallets:   %d (%d x %d), at least %d needed\n",
		len(res.Pallets), report.Settings.PalletWidth, report.Settings.PalletHeight, estimate.PalletsNeededMin)
	fmt.Fprintf(w, "Placed:    %d\n", res.PlacedCount())
	fmt.Fprintf(w, "Unplaced:  %d\n", len(res.Unplaced))
	fmt.Fprintf(w, "Usage:     %.1f%%\n", res.TotalEfficiency())
	if report.Fitness != nil {
		fmt.Fprintf(w, "Fitness:   %d after %d generations\n", *report.Fitness, max(len(report.History)-1, 0))
	}
	for i, p := range res.Pallets {
		fmt.Fprintf(w, "  Pallet %d/%d: %d shapes, %.1f%% used\n", i+1, len(res.Pallets), len(p.Placements), p.Efficiency())
	}
	if len(res.Unplaced) > 0 {
		names := make([]string, len(res.Unplaced))
		for i, s := range res.Unplaced {
			names[i] = fmt.Sprintf("%s (%dx%d)", s.Label, s.Width, s.Height)
		}
		fmt.Fprintf(w, "Not placed: %s\n", strings.Join(names, ", "))
	}
}

func (c *cli) writeOutputs(out io.Writer, proj model.Project, report packReport) error {
	res := report.Result
	written := func(kind, path string) {
		fmt.Fprintf(out, "wrote %s: %s\n", kind, path)
		c.logger.Info("output written", zap.String("kind", kind), zap.String("path", path))
	}

	if path := c.v.GetString("json"); path != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		written("json", path)
	}
	if path := c.v.GetString("pdf"); path != "" {
		if err := export.ExportPDF(path, res, report.Settings); err != nil {
			return err
		}
		written("pdf", path)
	}
	if path := c.v.GetString("labels"); path != "" {
		if err := export.ExportLabels(path, res); err != nil {
			return err
		}
		written("labels", path)
	}
	if dir := c.v.GetString("png-dir"); dir != "" {
		scale := c.v.GetFloat64("png-scale")
		if scale <= 0 {
			scale = export.DefaultScale(report.Settings.PalletWidth, report.Settings.PalletHeight, 800)
		}
		paths, err := export.SavePNGs(dir, "pallet", res, scale)
		if err != nil {
			return err
		}
		written("png", fmt.Sprintf("%d images in %s", len(paths), dir))
	}
	if path := c.v.GetString("chart"); path != "" {
		if err := export.ExportUtilizationChart(path, res, report.History); err != nil {
			return err
		}
		written("chart", path)
	}
	if path := c.v.GetString("fitness-plot"); path != "" {
		if len(report.History) == 0 {
			fmt.Fprintln(out, "warning: --fitness-plot needs --algorithm genetic, skipped")
		} else {
			if err := export.PlotFitnessHistory(path, report.History); err != nil {
				return err
			}
			written("fitness plot", path)
		}
	}
	if path := c.v.GetString("save-project"); path != "" {
		if proj.Name == "Untitled" {
			proj.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		proj.Result = &res
		if err := project.SaveProject(path, proj); err != nil {
			return err
		}
		c.config.AddRecentProject(path, 10)
		if err := project.SaveAppConfig(c.v.GetString("config"), c.config); err != nil {
			c.logger.Warn("failed to record recent project", zap.Error(err))
		}
		written("project", path)
	}
	return nil
}
