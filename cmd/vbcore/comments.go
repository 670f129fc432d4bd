package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"vbcore/internal/comments"
	"vbcore/internal/diagfmt"
)

func newCommentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments [flags] <file|dir>...",
		Short: "List logical comments, continued lines joined",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(cmd, args)
			if err != nil {
				return err
			}
			module, _ := cmd.Flags().GetString("module")
			width, _ := cmd.Flags().GetInt("width")

			table := diagfmt.Table{MaxWidth: width}
			for _, name := range ws.Names() {
				if module != "" && !matchesModule(name, module) {
					continue
				}
				p, _ := ws.Module(name)
				sc := comments.New(name, slices.Values(p.Module.Lines()))
				for c := range sc.All() {
					table.Row(name.Component, c.Selection.Selection.String(), c.Text)
				}
			}
			if table.Len() == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no comments")
				return nil
			}
			return table.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("module", "", "only this module")
	cmd.Flags().Int("width", 0, "truncate comment text to this display width")
	return cmd
}
