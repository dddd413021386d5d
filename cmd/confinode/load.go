package main

import (
	"github.com/spf13/cobra"

	"github.com/amitgilad3/confinode"
)

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Load a configuration file by path or module name, without searching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var result *confinode.Result[any]
			if s.async {
				result, err = s.engine.LoadAsync(ctx, args[0]).Await(ctx)
				if err != nil {
					return err
				}
			} else {
				result = s.engine.Load(ctx, args[0])
			}
			return s.finish(cmd, result)
		},
	}
}
