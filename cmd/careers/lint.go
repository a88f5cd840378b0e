package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-careers/pkg/catalog"
)

type violation struct {
	file     string
	location string
	message  string
}

func newLintCmd(a *app) *cobra.Command {
	var overlay string
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check catalog files for load errors and unreachable roles",
		Long: `Loads each catalog file or directory, applies the overlay when given, and
reports roles that fail to load or that offer no way to apply. Without
paths the embedded catalog is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if overlay == "" {
				overlay = a.cfg.RoleOverlay
			}
			var violations []violation
			if len(args) == 0 {
				violations = lintCatalog("<embedded>", catalog.DefaultLoader(""), overlay)
			}
			for _, path := range args {
				violations = append(violations, lintPath(path, overlay)...)
			}

			if len(violations) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "catalog ok")
				return err
			}
			sort.Slice(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					if violations[i].location == violations[j].location {
						return violations[i].message < violations[j].message
					}
					return violations[i].location < violations[j].location
				}
				return violations[i].file < violations[j].file
			})
			errOut := cmd.ErrOrStderr()
			for _, v := range violations {
				fmt.Fprintf(errOut, "%s: %s -> %s\n", v.file, v.location, v.message)
			}
			return fmt.Errorf("lint: %d violation(s)", len(violations))
		},
	}
	cmd.Flags().StringVar(&overlay, "overlay", "", "role overlay file applied before checking")
	return cmd
}

func lintPath(path, overlay string) []violation {
	info, err := os.Stat(path)
	if err != nil {
		return []violation{{file: path, location: "file", message: err.Error()}}
	}
	if info.IsDir() {
		return lintCatalog(path, catalog.DirLoader(path, ""), overlay)
	}
	return lintCatalog(path, func(context.Context) (*catalog.Catalog, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return catalog.Parse(raw, path)
	}, overlay)
}

func lintCatalog(file string, load catalog.LoadFunc, overlay string) []violation {
	c, err := load(context.Background())
	if err != nil {
		return []violation{{file: file, location: "catalog", message: err.Error()}}
	}
	if overlay != "" {
		raw, err := os.ReadFile(overlay)
		if err != nil {
			return []violation{{file: overlay, location: "overlay", message: err.Error()}}
		}
		if c, err = catalog.ApplyOverlay(c, raw); err != nil {
			return []violation{{file: overlay, location: "overlay", message: err.Error()}}
		}
	}

	var result []violation
	for _, listing := range c.Listings() {
		location := "roles > " + listing.ID
		if listing.Title == "" {
			result = append(result, violation{file: file, location: location, message: "title is empty"})
		}
		if _, ok := c.Form(listing.ID); !ok && listing.FormURL == "" {
			result = append(result, violation{file: file, location: location, message: "role has neither a form nor a formUrl"})
		}
	}
	return result
}
