package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/business-case/internal/config"
	"github.com/iwvelando/business-case/internal/simulator"
	"github.com/iwvelando/business-case/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "business-case: %v\n", err)
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath string
	logLevel   string
}

type reportOptions struct {
	preset       string
	outputFormat string
	overrides    []string
}

func newRootCmd() *cobra.Command {
	global := &globalOptions{}
	report := &reportOptions{}

	cmd := &cobra.Command{
		Use:           "business-case",
		Short:         "business-case computes the cost model of a community platform rollout",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(global, report)
		},
	}

	cmd.PersistentFlags().StringVar(&global.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	addReportFlags(cmd, report)

	cmd.AddCommand(
		newReportCmd(global),
		newTUICmd(global),
		newServeCmd(global),
		newPresetsCmd(global),
		newSchemaCmd(),
	)
	return cmd
}

func addReportFlags(cmd *cobra.Command, opts *reportOptions) {
	cmd.Flags().StringVar(&opts.preset, "preset", "", "preset to apply before overrides")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv")
	cmd.Flags().StringArrayVar(&opts.overrides, "set", nil, "input override as field=value (repeatable)")
}

// loadConfiguration reads the config file. A missing file at the default
// location falls back to defaults; an explicit path must exist.
func loadConfiguration(path string) (*config.Configuration, error) {
	if strings.TrimSpace(path) == "" {
		return config.LoadDefaults()
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == constants.DefaultConfigFile {
			return config.LoadDefaults()
		}
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

// setup loads the configuration and builds the logger, logging every
// configuration warning.
func setup(global *globalOptions) (*config.Configuration, *zap.Logger, error) {
	conf, err := loadConfiguration(global.configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := initializeLogger(conf.Logging, global.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.setup"),
		)
	}
	return conf, logger, nil
}

// newSimulator builds a simulator from conf, applies presetKey when given and
// then the field overrides in order. Overrides are clamped to slider bounds.
func newSimulator(logger *zap.Logger, conf *config.Configuration, presetKey string, overrides []override) (*simulator.Simulator, error) {
	opts, err := conf.SimulatorOptions()
	if err != nil {
		return nil, err
	}
	sim, err := simulator.New(logger, opts)
	if err != nil {
		return nil, err
	}

	if presetKey = strings.TrimSpace(presetKey); presetKey != "" {
		if err := sim.ApplyPreset(presetKey); err != nil {
			return nil, err
		}
	}
	for _, o := range overrides {
		slider, err := simulator.SliderFor(o.field)
		if err != nil {
			return nil, err
		}
		clamped := slider.Clamp(o.value)
		if clamped != o.value {
			logger.Warn("override clamped to slider bounds",
				zap.String("op", "main.newSimulator"),
				zap.String("field", string(o.field)),
				zap.Float64("requested", o.value),
				zap.Float64("applied", clamped),
			)
		}
		if err := sim.Set(o.field, clamped); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

type override struct {
	field simulator.Field
	value float64
}

// parseOverrides parses field=value pairs, keeping their order. Values must
// be finite.
func parseOverrides(values []string) ([]override, error) {
	overrides := make([]override, 0, len(values))
	for _, raw := range values {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid override %q: expected field=value", raw)
		}
		field := simulator.Field(strings.TrimSpace(name))
		if _, err := simulator.SliderFor(field); err != nil {
			return nil, err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", field, err)
		}
		if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, fmt.Errorf("invalid value for %s: %q is not a finite number", field, value)
		}
		overrides = append(overrides, override{field: field, value: parsed})
	}
	return overrides, nil
}
