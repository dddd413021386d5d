package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amitgilad3/confinode/loaders"
)

func newLoadersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loaders",
		Short: "List the file suffixes confinode can parse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := loaders.New()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SUFFIX\tLOADER\tKIND")
			for _, suffix := range registry.Suffixes() {
				ref, _ := registry.Lookup(suffix)
				kind := "custom"
				if ref.Builtin {
					kind = "builtin"
				}
				fmt.Fprintf(tw, ".%s\t%s\t%s\n", suffix, ref, kind)
			}
			return tw.Flush()
		},
	}
}
