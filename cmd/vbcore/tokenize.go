package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vbcore/internal/diagfmt"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.bas",
		Short: "Tokenize a VBA module",
		Long:  `Tokenize breaks a module into the tokens annotation and comment handling works on`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(a, cmd, args)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("trivia", false, "include whitespace and line continuations")
	return cmd
}

func runTokenize(a *app, cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return err
	}

	ws, err := a.open(cmd, args)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	names := ws.Names()
	if len(names) != 1 {
		return fmt.Errorf("tokenize: %s is not a module file", args[0])
	}
	p, _ := ws.Module(names[0])

	// диагностику в stderr, токены в stdout
	if p.Bag.Len() > 0 {
		p.Bag.Sort()
		a.printDiagnostics(cmd.ErrOrStderr(), ws, p.Bag.Items())
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), p.Stream, trivia)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), p.Stream, trivia)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
