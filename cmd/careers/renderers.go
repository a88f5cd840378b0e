package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRenderersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List the page renderers serve can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := a.renderers("Careers")
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCONTENT TYPE\tDEFAULT")
			for idx, name := range registry.Names() {
				renderer, err := registry.Get(name)
				if err != nil {
					return err
				}
				def := ""
				if idx == 0 {
					def = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, renderer.ContentType(), def)
			}
			return w.Flush()
		},
	}
}
