package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/piwi3910/palletpack/internal/importer"
	"github.com/piwi3910/palletpack/internal/model"
	"github.com/piwi3910/palletpack/internal/project"
)

// cli carries state shared by all subcommands. Each root command gets its own
// viper instance so tests do not leak configuration into each other.
type cli struct {
	v      *viper.Viper
	logger *zap.Logger
	config model.AppConfig
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zap.NewNop()}
	c.v.SetEnvPrefix("PALLETPACK")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "palletpack",
		Short:         "Pack rectangular shapes onto pallets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().String("config", project.DefaultConfigPath(), "application config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newPackCmd(c),
		newCompareCmd(c),
		newServeCmd(c),
		newTemplateCmd(c),
		newGUICmd(c),
	)
	return root
}

// setup binds the running command's flags into viper, builds the logger and
// loads the application config.
func (c *cli) setup(cmd *cobra.Command) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	logger, err := buildLogger(c.v.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	c.logger = logger

	cfg, err := project.LoadAppConfig(c.v.GetString("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.config = cfg
	return nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// dataPath places auxiliary files next to the config file.
func (c *cli) dataPath(name string) string {
	return filepath.Join(filepath.Dir(c.v.GetString("config")), name)
}

// addSettingsFlags registers the pack settings flags. Defaults come from the
// application config at run time, so flags only override when set.
func addSettingsFlags(fs *pflag.FlagSet) {
	fs.String("pallet", "", "pallet preset name, e.g. \"EUR 120x80\"")
	fs.Int("pallet-width", 0, "pallet width in cells")
	fs.Int("pallet-height", 0, "pallet height in cells")
	fs.Int("padding", 0, "cells reserved right of and below every shape")
	fs.StringP("algorithm", "a", "", "packing algorithm: greedy or genetic")
	fs.String("waste", "", "greedy waste metric: footprint or neighborhood")
	fs.Int64("seed", 0, "random seed for the genetic search")
	fs.Int("population", 0, "genetic population size")
	fs.Int("generations", 0, "genetic generation count")
	fs.Int("tournament", 0, "genetic tournament size")
	fs.Int("elite", 0, "individuals copied unchanged into each generation")
	fs.String("mutation", "", "genetic mutation operator: none or jitter")
}

// settings resolves pack settings: application config, then pallet preset,
// then explicitly set flags or PALLETPACK_* environment variables.
func (c *cli) settings() (model.PackSettings, error) {
	s := model.DefaultSettings()
	c.config.ApplyToSettings(&s)
	return c.applyOverrides(s)
}

// applyOverrides applies --pallet and every explicitly set settings flag to s.
func (c *cli) applyOverrides(s model.PackSettings) (model.PackSettings, error) {
	if name := c.v.GetString("pallet"); name != "" {
		inv, err := project.LoadInventory(c.dataPath("inventory.json"))
		if err != nil {
			return s, fmt.Errorf("failed to load pallet presets: %w", err)
		}
		preset := inv.FindPalletByName(name)
		if preset == nil {
			return s, fmt.Errorf("unknown pallet preset %q (available: %s)", name, strings.Join(inv.PalletNames(), ", "))
		}
		preset.ApplyToSettings(&s)
	}

	c.overrideInt("pallet-width", &s.PalletWidth)
	c.overrideInt("pallet-height", &s.PalletHeight)
	c.overrideInt("padding", &s.Padding)
	c.overrideInt("population", &s.Genetic.PopulationSize)
	c.overrideInt("generations", &s.Genetic.Generations)
	c.overrideInt("tournament", &s.Genetic.TournamentSize)
	c.overrideInt("elite", &s.Genetic.EliteCount)
	if c.v.IsSet("algorithm") {
		s.Algorithm = model.Algorithm(c.v.GetString("algorithm"))
	}
	if c.v.IsSet("waste") {
		s.Waste = model.WasteMetric(c.v.GetString("waste"))
	}
	if c.v.IsSet("seed") {
		s.Seed = c.v.GetInt64("seed")
	}
	if c.v.IsSet("mutation") {
		s.Genetic.Mutation = model.MutationKind(c.v.GetString("mutation"))
	}
	return s, nil
}

func (c *cli) overrideInt(key string, dst *int) {
	if c.v.IsSet(key) {
		*dst = c.v.GetInt(key)
	}
}

// addShapeFlags registers the shape source flags.
func addShapeFlags(fs *pflag.FlagSet) {
	fs.StringP("shapes", "s", "", "shape list, e.g. \"10x20, 15x15:3, crate=5*5\"")
	fs.StringP("input", "i", "", "shape file: .csv, .txt, .xlsx or .dxf")
}

// shapes reads --shapes and --input. Warnings go to w; any parse error fails.
func (c *cli) shapes(w io.Writer) ([]model.ShapeRequest, error) {
	var results []importer.ImportResult
	if text := c.v.GetString("shapes"); text != "" {
		results = append(results, importer.ParseShapeList(text))
	}
	if path := c.v.GetString("input"); path != "" {
		results = append(results, importer.Import(path))
	}
	if len(results) == 0 {
		return nil, errors.New("no shapes given: use --shapes or --input")
	}

	var (
		shapes []model.ShapeRequest
		errs   []error
	)
	for _, r := range results {
		for _, msg := range r.Warnings {
			fmt.Fprintln(w, "warning:", msg)
		}
		for _, msg := range r.Errors {
			errs = append(errs, errors.New(msg))
		}
		shapes = append(shapes, r.Shapes...)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid shapes: %w", errors.Join(errs...))
	}
	if len(shapes) == 0 {
		return nil, errors.New("no shapes found")
	}
	return shapes, nil
}
