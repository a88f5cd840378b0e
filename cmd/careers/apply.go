package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-careers/pkg/application"
	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/renderers/tui"
	"github.com/goliatone/go-careers/pkg/schema"
)

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <roleId>",
		Short: "Fill in and submit an application from the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roleID := args[0]

			live, err := a.catalog(ctx)
			if err != nil {
				return err
			}
			c := live.Current()
			engine := form.NewEngine(c.Registry())
			state, err := engine.Initialize(roleID)
			if errors.Is(err, schema.ErrRoleNotConfigured) {
				if listing, ok := c.Listing(roleID); ok && listing.FormURL != "" {
					return fmt.Errorf("apply: %s has no application form here, apply at %s", roleID, listing.FormURL)
				}
				return fmt.Errorf("apply: %w", err)
			}
			if err != nil {
				return err
			}

			collector := tui.NewCollector(tui.WithPromptDriver(a.promptDriver(cmd.OutOrStdout())))
			state, err = collector.Collect(ctx, state)
			if errors.Is(err, tui.ErrAborted) {
				return collector.Info(ctx, "Application cancelled.")
			}
			if err != nil {
				return err
			}
			if err := collector.Review(ctx, state); err != nil {
				return err
			}
			ok, err := collector.Confirm(ctx, "Submit this application?")
			if errors.Is(err, tui.ErrAborted) || (err == nil && !ok) {
				return collector.Info(ctx, "Application not submitted.")
			}
			if err != nil {
				return err
			}

			session, err := application.NewSession(engine, roleID, a.submitterFor(),
				application.WithState(state),
				application.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			outcome, err := session.Submit(ctx)
			if err != nil {
				return err
			}
			if !outcome.Submitted() {
				return fmt.Errorf("apply: %s", outcome.Status.Message)
			}
			if err := collector.Info(ctx, outcome.Dialog.Title); err != nil {
				return err
			}
			return collector.Info(ctx, outcome.Dialog.Body)
		},
	}
}
