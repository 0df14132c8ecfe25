package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/opparser/calc"
)

func newGrammarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the statement syntax in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := calc.Grammar(); err != nil {
				return fmt.Errorf("grammar: %w", err)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), calc.GrammarSource())
			return err
		},
	}
}
