package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vbcore/internal/annotation"
	"vbcore/internal/diag"
	"vbcore/internal/project"
	"vbcore/internal/rewrite"
)

var errNothingApplied = errors.New("no annotation edit was applied")

var (
	appliedColor = color.New(color.FgGreen)
	skippedColor = color.New(color.FgYellow)
)

// edit is one mutating run: a workspace, its rewrite manager and a single session.
type edit struct {
	a       *app
	cmd     *cobra.Command
	ws      *project.Workspace
	session *rewrite.Session
	updater *annotation.Updater
	dryRun  bool
}

func (a *app) beginEdit(cmd *cobra.Command, paths []string) (*edit, error) {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, err
	}
	ws, err := a.open(cmd, paths)
	if err != nil {
		return nil, err
	}
	mgr, err := a.manager(ws)
	if err != nil {
		return nil, err
	}
	return &edit{
		a:       a,
		cmd:     cmd,
		ws:      ws,
		session: mgr.NewSession(),
		updater: annotation.NewUpdater(a.log),
		dryRun:  dryRun,
	}, nil
}

// finish reports outcomes, then commits the session or prints the pending text.
func (e *edit) finish(outcomes []annotation.Outcome) error {
	out, errOut := e.cmd.OutOrStdout(), e.cmd.ErrOrStderr()

	var skipped []diag.Diagnostic
	applied := 0
	for _, o := range outcomes {
		if o.Applied {
			applied++
			fmt.Fprintf(out, "%s %s\n", appliedColor.Sprint("applied"), o.Target)
			continue
		}
		fmt.Fprintf(out, "%s %s %s\n", skippedColor.Sprint("skipped"), o.Target, o.Code.ID())
		skipped = append(skipped, o.Diagnostic())
	}
	e.a.printDiagnostics(errOut, e.ws, skipped)

	if e.dryRun {
		defer e.session.Discard()
		return e.preview(out)
	}

	done := e.a.timer.Track("commit")
	rec, err := e.session.Commit()
	if err != nil {
		done("failed")
		return err
	}
	done(fmt.Sprintf("%d modules", len(rec.Modules)))
	if len(rec.Modules) == 0 {
		fmt.Fprintln(out, "nothing to commit")
	} else {
		fmt.Fprintf(out, "committed %d module(s), session %s\n", len(rec.Modules), rec.Session)
	}
	if applied == 0 && len(skipped) > 0 {
		return errNothingApplied
	}
	return nil
}

func (e *edit) preview(w io.Writer) error {
	for _, name := range e.session.CheckedOut() {
		rw, err := e.session.CheckOutModuleRewriter(name)
		if err != nil {
			return err
		}
		if !rw.Dirty() {
			continue
		}
		if _, err := fmt.Fprintf(w, "--- %s\n%s", name, rw.Text()); err != nil {
			return err
		}
	}
	return nil
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "print the rewritten modules instead of committing")
}

func newAnnotateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate [flags] <file|dir>...",
		Short: "Add an annotation to a declaration or an identifier reference",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("target")
			at, _ := cmd.Flags().GetString("at")
			typeName, _ := cmd.Flags().GetString("type")
			annArgs, _ := cmd.Flags().GetStringArray("arg")
			if path == "" {
				return fmt.Errorf("annotate: --target is required")
			}
			t, err := annotationType(typeName)
			if err != nil {
				return err
			}

			e, err := a.beginEdit(cmd, args)
			if err != nil {
				return err
			}
			p, target, err := resolveTarget(e.ws, path)
			if err != nil {
				return err
			}

			var out annotation.Outcome
			if at != "" {
				pos, err := parsePosition(at)
				if err != nil {
					return err
				}
				ref, err := referenceAt(e.ws, p, pos)
				if err != nil {
					return err
				}
				out, err = e.updater.AddToReference(e.session, ref, t, annArgs...)
				if err != nil {
					return err
				}
			} else {
				out, err = e.updater.AddToDeclaration(e.session, target, t, annArgs...)
				if err != nil {
					return err
				}
			}
			return e.finish([]annotation.Outcome{out})
		},
	}
	cmd.Flags().String("target", "", "declaration as Module[.Member[.Local]]")
	cmd.Flags().String("at", "", "annotate the identifier reference at L<line>C<col> in the target's module instead")
	cmd.Flags().String("type", "", "annotation type, e.g. TestMethod")
	cmd.Flags().StringArray("arg", nil, "annotation argument, repeatable; quote string literals")
	addEditFlags(cmd)
	return cmd
}

func newUnannotateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unannotate [flags] <file|dir>...",
		Short: "Remove annotations from a module",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, _ := cmd.Flags().GetString("module")
			typeName, _ := cmd.Flags().GetString("type")
			line, _ := cmd.Flags().GetUint32("line")
			if module == "" {
				return fmt.Errorf("unannotate: --module is required")
			}

			e, err := a.beginEdit(cmd, args)
			if err != nil {
				return err
			}
			p, err := e.ws.Lookup(module)
			if err != nil {
				return err
			}
			selected := selectAnnotations(p, typeName, line)
			if len(selected) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no matching annotations")
				return nil
			}
			outcomes, err := e.updater.RemoveAll(e.session, selected)
			if err != nil {
				return err
			}
			return e.finish(outcomes)
		},
	}
	cmd.Flags().String("module", "", "module to edit")
	cmd.Flags().String("type", "", "only annotations of this type")
	cmd.Flags().Uint32("line", 0, "only annotations starting on this line")
	addEditFlags(cmd)
	return cmd
}

func newReannotateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reannotate [flags] <file|dir>...",
		Short: "Replace an annotation with a compatible type and new arguments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, _ := cmd.Flags().GetString("module")
			from, _ := cmd.Flags().GetString("from")
			line, _ := cmd.Flags().GetUint32("line")
			typeName, _ := cmd.Flags().GetString("type")
			annArgs, _ := cmd.Flags().GetStringArray("arg")
			if module == "" || line == 0 {
				return fmt.Errorf("reannotate: --module and --line are required")
			}
			t, err := annotationType(typeName)
			if err != nil {
				return err
			}

			e, err := a.beginEdit(cmd, args)
			if err != nil {
				return err
			}
			p, err := e.ws.Lookup(module)
			if err != nil {
				return err
			}
			selected := selectAnnotations(p, from, line)
			if len(selected) != 1 {
				return fmt.Errorf("reannotate: %d annotations match on line %d, want exactly one (narrow with --from)", len(selected), line)
			}
			out, err := e.updater.Update(e.session, selected[0], t, annArgs...)
			if err != nil {
				return err
			}
			return e.finish([]annotation.Outcome{out})
		},
	}
	cmd.Flags().String("module", "", "module to edit")
	cmd.Flags().Uint32("line", 0, "line of the annotation to replace")
	cmd.Flags().String("from", "", "type of the annotation to replace, when the line has several")
	cmd.Flags().String("type", "", "new annotation type")
	cmd.Flags().StringArray("arg", nil, "new annotation argument, repeatable")
	addEditFlags(cmd)
	return cmd
}

func newIgnoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore [flags] <file|dir>... -- <inspection>...",
		Short: "Add inspections to the module's @IgnoreModule annotation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, _ := cmd.Flags().GetString("module")
			if module == "" {
				return fmt.Errorf("ignore: --module is required")
			}
			paths, inspections := args, []string(nil)
			if at := cmd.ArgsLenAtDash(); at >= 0 {
				paths, inspections = args[:at], args[at:]
			}
			if len(paths) == 0 || len(inspections) == 0 {
				return fmt.Errorf("ignore: want <paths>... -- <inspection>...")
			}

			e, err := a.beginEdit(cmd, paths)
			if err != nil {
				return err
			}
			p, err := e.ws.Lookup(module)
			if err != nil {
				return err
			}
			out, err := e.updater.EnsureModuleArgument(e.session, p.ModuleDeclaration(), p.Annotations, annotation.IgnoreModule, inspections...)
			if err != nil {
				return err
			}
			return e.finish([]annotation.Outcome{out})
		},
	}
	cmd.Flags().String("module", "", "module to edit")
	addEditFlags(cmd)
	return cmd
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <file|dir>...",
		Short: "Revert the latest committed session recorded in the journal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Journal.Enabled {
				return fmt.Errorf("undo: the journal is disabled in %s", valueOrUnknown(a.cfg.Path()))
			}
			ws, err := a.open(cmd, args)
			if err != nil {
				return err
			}
			mgr, err := a.manager(ws)
			if err != nil {
				return err
			}
			rec, err := mgr.Journal().Undo(ws)
			if err != nil {
				return err
			}
			for _, ch := range rec.Modules {
				fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", ch.Module)
			}
			return nil
		},
	}
}
