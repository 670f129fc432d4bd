package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vbcore/internal/codepath"
	"vbcore/internal/decl"
)

func newTreeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [flags] <file|dir>...",
		Short: "Print the code path tree of a declaration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("target")
			if path == "" {
				return fmt.Errorf("tree: --target is required")
			}
			ws, err := a.open(cmd, args)
			if err != nil {
				return err
			}
			p, target, err := resolveTarget(ws, path)
			if err != nil {
				return err
			}

			// дерево строится по члену, которому принадлежит цель
			root := p.Tree
			switch {
			case target.Type.Has(decl.Member):
				root = target.Context
			case target.Parent != nil && target.Parent.Type.Has(decl.Member):
				root = target.Parent.Context
			}

			done := a.timer.Track("codepath")
			t, err := codepath.NewBuilder(a.log).Build(root, target)
			if err != nil {
				done("failed")
				return err
			}
			done(fmt.Sprintf("%d nodes", t.Len()))
			_, err = fmt.Fprint(cmd.OutOrStdout(), t.String())
			return err
		},
	}
	cmd.Flags().String("target", "", "declaration as Module[.Member[.Local]]")
	return cmd
}
