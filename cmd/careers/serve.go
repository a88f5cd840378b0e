package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-careers/components/applications"
	"github.com/goliatone/go-careers/internal/server"
	"github.com/goliatone/go-careers/pkg/render"
)

func newServeCmd(a *app) *cobra.Command {
	var siteName, rendererName string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the careers site and application API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			live, err := a.catalog(ctx)
			if err != nil {
				return err
			}

			selector, err := render.NewManifestSelector(a.cfg.Theme, a.cfg.ThemeVariant, render.DefaultThemeManifest())
			if err != nil {
				return err
			}
			themeCfg, err := render.ResolveTheme(selector, a.cfg.Theme, a.cfg.ThemeVariant)
			if err != nil {
				return err
			}
			renderers, err := a.renderers(siteName)
			if err != nil {
				return err
			}
			if _, err := renderers.Get(rendererName); err != nil {
				return err
			}

			component := applications.New(
				applications.WithBasePath(a.cfg.BasePath),
				applications.WithCatalog(live),
				applications.WithSubmitter(a.submitterFor()),
				applications.WithRendererRegistry(renderers, rendererName),
				applications.WithTheme(themeCfg),
				applications.WithMaxUploadBytes(a.cfg.MaxUploadBytes),
				applications.WithLogger(a.logger),
			)
			srv, err := server.New(component, server.Options{
				Addr:           a.cfg.Addr,
				AllowedOrigins: a.cfg.AllowedOrigins,
				Logger:         a.logger,
			})
			if err != nil {
				return err
			}

			if a.cfg.WatchCatalog && a.cfg.CatalogDir != "" {
				go func() {
					if err := live.Watch(ctx, a.cfg.CatalogDir); err != nil {
						a.logger.Error("catalog watch stopped", zap.Error(err))
					}
				}()
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&siteName, "site-name", "Careers", "site name shown in page titles")
	cmd.Flags().StringVar(&rendererName, "renderer", "", "page renderer name (default: first registered, see careers renderers)")
	return cmd
}
