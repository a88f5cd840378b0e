// Command careers serves the careers site and drives applications from the
// terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-careers/internal/config"
	"github.com/goliatone/go-careers/internal/logging"
	"github.com/goliatone/go-careers/pkg/application"
	"github.com/goliatone/go-careers/pkg/catalog"
	"github.com/goliatone/go-careers/pkg/render"
	"github.com/goliatone/go-careers/pkg/renderers/tui"
	"github.com/goliatone/go-careers/pkg/renderers/vanilla"
	"github.com/goliatone/go-careers/pkg/submit"
)

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by every subcommand. Tests replace driver and
// submitter.
type app struct {
	envFiles []string
	logLevel string

	cfg    config.Config
	logger *zap.Logger

	driver    tui.PromptDriver
	submitter application.Submitter
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "careers",
		Short:        "Careers site and application submitter",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.envFiles...)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.LogLevel = a.logLevel
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	flags.StringVar(&a.logLevel, "log-level", "", "override CAREERS_LOG_LEVEL")

	root.AddCommand(
		newServeCmd(a),
		newRolesCmd(a),
		newApplyCmd(a),
		newOpenAPICmd(a),
		newLintCmd(a),
		newRenderersCmd(a),
	)
	return root
}

func (a *app) loader() catalog.LoadFunc {
	if a.cfg.CatalogDir != "" {
		return catalog.DirLoader(a.cfg.CatalogDir, a.cfg.RoleOverlay)
	}
	return catalog.DefaultLoader(a.cfg.RoleOverlay)
}

func (a *app) catalog(ctx context.Context) (*catalog.Live, error) {
	return catalog.NewLive(ctx, a.loader(), catalog.WithLogger(a.logger))
}

// renderers registers every page renderer the binary ships.
func (a *app) renderers(siteName string) (*render.Registry, error) {
	registry, err := render.NewRegistry()
	if err != nil {
		return nil, err
	}
	if err := vanilla.Register(registry, vanilla.WithSiteName(siteName)); err != nil {
		return nil, err
	}
	return registry, nil
}

func (a *app) submitterFor() application.Submitter {
	if a.submitter != nil {
		return a.submitter
	}
	client := http.DefaultClient
	if a.cfg.HTTPTimeout > 0 {
		client = &http.Client{Timeout: a.cfg.HTTPTimeout}
	}
	return submit.New(
		submit.WithEndpoint(a.cfg.ScriptURL),
		submit.WithHTTPClient(client),
		submit.WithLogger(a.logger),
	)
}

func (a *app) promptDriver(out io.Writer) tui.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	return tui.NewSurveyDriver(out)
}
