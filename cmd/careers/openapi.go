package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-careers/pkg/openapi"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var (
		format    string
		serverURL string
	)
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI description of the application endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			encoding, err := openapi.ParseFormat(format)
			if err != nil {
				return err
			}
			live, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := openapi.Describe(live.Current().Registry(), openapi.Options{
				BasePath:  a.cfg.BasePath,
				ServerURL: serverURL,
			})
			if err != nil {
				return err
			}
			raw, err := openapi.Encode(doc, encoding)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(openapi.FormatJSON), "output format: json or yaml")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "server URL advertised in the document")
	return cmd
}
