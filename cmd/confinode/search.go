package main

import (
	"github.com/spf13/cobra"

	"github.com/amitgilad3/confinode"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [path]",
		Short: "Search for the configuration from path up to the stop directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			start := ""
			if len(args) == 1 {
				start = args[0]
			}

			ctx := cmd.Context()
			var result *confinode.Result[any]
			if s.async {
				result, err = s.engine.SearchAsync(ctx, start).Await(ctx)
				if err != nil {
					return err
				}
			} else {
				result = s.engine.Search(ctx, start)
			}
			return s.finish(cmd, result)
		},
	}
}
