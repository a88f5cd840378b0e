package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

type roleRow struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Form    bool   `json:"formConfigured"`
	FormURL string `json:"formUrl,omitempty"`
}

func newRolesCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List open roles and whether they accept applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			live, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			c := live.Current()

			rows := make([]roleRow, 0, c.Len())
			for _, listing := range c.Listings() {
				_, configured := c.Form(listing.ID)
				rows = append(rows, roleRow{ID: listing.ID, Title: listing.Title, Form: configured, FormURL: listing.FormURL})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				raw, err := sonic.ConfigStd.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("roles: encode: %w", err)
				}
				_, err = fmt.Fprintln(out, string(raw))
				return err
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tFORM")
			for _, row := range rows {
				status := "configured"
				switch {
				case row.Form:
				case row.FormURL != "":
					status = "external"
				default:
					status = "not configured"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", row.ID, row.Title, status)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print roles as JSON")
	return cmd
}
