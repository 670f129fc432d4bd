package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vbcore/internal/annotation"
	"vbcore/internal/diag"
	"vbcore/internal/diagfmt"
	"vbcore/internal/source"
)

func newAnnotationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotations [flags] <file|dir>...",
		Short: "List '@ annotations; unknown types are reported as warnings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(cmd, args)
			if err != nil {
				return err
			}
			module, _ := cmd.Flags().GetString("module")
			typeName, _ := cmd.Flags().GetString("type")

			var table diagfmt.Table
			var unknown []diag.Diagnostic
			for _, name := range ws.Names() {
				if module != "" && !matchesModule(name, module) {
					continue
				}
				p, _ := ws.Module(name)
				for _, ann := range selectAnnotations(p, typeName, 0) {
					table.Row(name.Component, ann.Selection.String(), ann.Type.String(), strings.Join(ann.Args, ", "))
					if !ann.Type.Known() {
						unknown = append(unknown, diag.New(diag.SevWarning, diag.AnnUnknownType, ann.QualifiedSelection(),
							fmt.Sprintf("unknown annotation %s", annotation.Text(ann.Type))))
					}
				}
			}
			a.printDiagnostics(cmd.ErrOrStderr(), ws, unknown)
			return table.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("module", "", "only this module")
	cmd.Flags().String("type", "", "only annotations of this type")
	return cmd
}

// matchesModule compares against "Project.Component" or a bare component.
func matchesModule(name source.ModuleName, want string) bool {
	if strings.Contains(want, ".") {
		return strings.EqualFold(name.String(), want)
	}
	return strings.EqualFold(name.Component, want)
}
