package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iwvelando/business-case/internal/config"
	"github.com/iwvelando/business-case/internal/server"
	"github.com/iwvelando/business-case/internal/tui"
	"github.com/iwvelando/business-case/pkg/constants"
	"github.com/iwvelando/business-case/pkg/format"
	"github.com/iwvelando/business-case/pkg/output"
	"github.com/iwvelando/business-case/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func newReportCmd(global *globalOptions) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the cost model as a table or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(global, opts)
		},
	}
	addReportFlags(cmd, opts)
	return cmd
}

func runReport(global *globalOptions, opts *reportOptions) error {
	overrides, err := parseOverrides(opts.overrides)
	if err != nil {
		return err
	}

	conf, logger, err := setup(global)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	sim, err := newSimulator(logger, conf, opts.preset, overrides)
	if err != nil {
		return err
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(sim.State())
	case constants.OutputFormatCSV:
		output.CsvFormat(sim.State())
	}
	return nil
}

func newTUICmd(global *globalOptions) *cobra.Command {
	var (
		theme     string
		presetKey string
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore the cost model interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := setup(global)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()
			// Log lines would corrupt the alternate screen unless written to a file.
			if conf.Logging.OutputFile == "" {
				logger = zap.NewNop()
			}

			sim, err := newSimulator(logger, conf, presetKey, nil)
			if err != nil {
				return err
			}
			app, err := tui.NewApp(tui.AppConfig{
				Version:   version,
				ThemeName: theme,
				Simulator: sim,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			program := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "dark", "color theme: dark, light")
	cmd.Flags().StringVar(&presetKey, "preset", "", "preset to apply on start")
	return cmd
}

func newServeCmd(global *globalOptions) *cobra.Command {
	var (
		serverConfigPath string
		address          string
		maxBodySize      string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cost model as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConf, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				serverConf.Address = address
			}
			if maxBodySize != "" {
				size, err := server.ParseSize(maxBodySize)
				if err != nil {
					return err
				}
				serverConf.SetBodySizeBytes(size)
			}

			modelConfigPath := global.configPath
			if !cmd.Flags().Changed("config") && serverConf.ModelConfig != "" {
				modelConfigPath = serverConf.ModelConfig
			}
			conf, err := loadConfiguration(modelConfigPath)
			if err != nil {
				return err
			}

			logger, err := initializeLogger(serverConf.Logging, global.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()
			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.serve"),
				)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, logger, serverConf, conf)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override (e.g., :8080)")
	cmd.Flags().StringVar(&maxBodySize, "max-body-size", "", "request body limit override (e.g., 64K)")
	return cmd
}

// serve runs the API until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, logger *zap.Logger, serverConf *server.Config, conf *config.Configuration) error {
	srv := &http.Server{
		Addr:              serverConf.Address,
		Handler:           server.NewHandler(logger, conf, serverConf.BodySizeBytes(), version),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main.serve"),
			zap.String("address", serverConf.Address),
			zap.Int64("maxBodySize", serverConf.BodySizeBytes()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down",
		zap.String("op", "main.serve"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newPresetsCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfiguration(global.configPath)
			if err != nil {
				return err
			}
			catalog, err := conf.PresetCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "KEY\tNAME\tRATE\tHOURS\tSUBSCRIPTION\tCONTINGENCY")
			for _, p := range catalog.List() {
				marker := ""
				if p.Key == conf.ActivePreset {
					marker = " *"
				}
				_, _ = fmt.Fprintf(w, "%s%s\t%s\t%s\t%.0f\t%s\t%s\n",
					p.Key, marker,
					p.Name,
					format.Rate(p.HourlyRate),
					p.ImplementationHours,
					format.WholeCurrency(p.SubscriptionFee),
					format.Fraction(p.ContingencyRate),
				)
			}
			return w.Flush()
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(schema)))
			return err
		},
	}
}
