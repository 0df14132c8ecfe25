package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/opparser/calc"
	"github.com/zephyrtronium/opparser/internal/config"
)

func newREPLCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate statements interactively",
		Long: `repl reads statements line by line and prints each result. A line that
ends waiting for an operand, like "2 +", continues on the next line.
Semicolons end statements within a line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, s)
		},
	}
}

// lineReader reads lines with a prompt. *liner.State implements it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type repl struct {
	c   *calc.Calculator
	cfg config.Config
	out io.Writer
}

func runREPL(cmd *cobra.Command, s *settings) error {
	r := &repl{out: cmd.OutOrStdout()}
	c, cfg, err := s.calculator(cmd, calc.OnStatement(r.result))
	if err != nil {
		return err
	}
	r.c, r.cfg = c, cfg

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	hist := historyPath(cfg.History)
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(hist); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}
	return r.run(ln)
}

// historyPath resolves the history file relative to the home directory.
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}

// run reads lines until the exit line or end of input.
func (r *repl) run(in lineReader) error {
	for {
		prompt := r.cfg.Prompt
		if r.c.Pending() {
			prompt = r.cfg.Continue
		}
		line, err := in.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			r.c.Reset()
			continue
		case err != nil:
			return fmt.Errorf("read: %w", err)
		}
		if strings.TrimSpace(line) == r.cfg.Exit {
			return nil
		}
		if strings.TrimSpace(line) != "" {
			in.AppendHistory(line)
		}
		r.line(line)
	}
}

// line evaluates one line of input. A statement still waiting for an operand
// at the end of the line is left pending.
func (r *repl) line(src string) {
	if err := r.c.Parse(src); err != nil {
		r.fail(err)
		return
	}
	if !r.c.Pending() || r.c.State() != calc.StateOper {
		return
	}
	v, err := r.c.Finish()
	if err != nil {
		r.fail(err)
		return
	}
	r.result(v)
}

func (r *repl) result(v float64) {
	fmt.Fprintln(r.out, "  = "+formatResult(v))
}

func (r *repl) fail(err error) {
	fmt.Fprintln(r.out, "  # "+err.Error())
}
