// Command opcalc evaluates arithmetic statements.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/opparser/calc"
	"github.com/zephyrtronium/opparser/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// settings are the flags shared by every command.
type settings struct {
	config   string
	logLevel string
	lenient  bool
	noimul   bool
}

func newRootCmd() *cobra.Command {
	var s settings
	cmd := &cobra.Command{
		Use:   "opcalc [statement...]",
		Short: "An operator-precedence calculator",
		Long: `opcalc evaluates each argument as a statement and prints its result.
Statements within an argument may be separated by semicolons. Assignments
made by one statement are visible to the next. With no arguments, opcalc
starts an interactive session.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runREPL(cmd, &s)
			}
			out := cmd.OutOrStdout()
			c, _, err := s.calculator(cmd, calc.OnStatement(func(v float64) {
				fmt.Fprintln(out, formatResult(v))
			}))
			if err != nil {
				return err
			}
			return evalArgs(c, out, args)
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&s.config, "config", "", "configuration file (.toml, .yaml, or .yml)")
	f.StringVar(&s.logLevel, "log-level", "", "log level (default from config, else warn)")
	f.BoolVar(&s.lenient, "lenient-brackets", false, "allow open brackets that are never closed")
	f.BoolVar(&s.noimul, "no-implicit-mul", false, "disable multiplication by juxtaposition")

	cmd.AddCommand(newREPLCmd(&s))
	cmd.AddCommand(newGrammarCmd())
	return cmd
}

// calculator loads the configuration, applies flags over it, and creates a
// calculator with the configured constants defined.
func (s *settings) calculator(cmd *cobra.Command, opts ...calc.Option) (*calc.Calculator, config.Config, error) {
	cfg := config.Default()
	if s.config != "" {
		var err error
		cfg, err = config.Load(s.config)
		if err != nil {
			return nil, cfg, fmt.Errorf("load config: %w", err)
		}
	}
	if s.logLevel != "" {
		cfg.LogLevel = s.logLevel
	}
	cfg.LenientBrackets = cfg.LenientBrackets || s.lenient
	cfg.NoImplicitMul = cfg.NoImplicitMul || s.noimul

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, cfg, fmt.Errorf("log level: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	env := calc.NewEnv()
	for name, v := range cfg.Constants {
		if err := env.SetConst(name, v); err != nil {
			return nil, cfg, fmt.Errorf("define constant: %w", err)
		}
	}
	opts = append(opts, calc.WithEnv(env), calc.WithLogger(logger))
	if cfg.LenientBrackets {
		opts = append(opts, calc.LenientBrackets())
	}
	if cfg.NoImplicitMul {
		opts = append(opts, calc.NoImplicitMul())
	}
	logger.Debug().Str("config", s.config).Int("constants", len(cfg.Constants)).Msg("calculator ready")
	return calc.New(opts...), cfg, nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		With().Timestamp().Str("service", "opcalc").Logger().
		Level(level)
}

// evalArgs evaluates each argument as a statement. Statements ended by
// semicolons are printed by the calculator's statement callback.
func evalArgs(c *calc.Calculator, out io.Writer, args []string) error {
	for _, arg := range args {
		if err := c.Parse(arg); err != nil {
			return fmt.Errorf("evaluate %q: %w", arg, err)
		}
		if !c.Pending() {
			continue
		}
		v, err := c.Finish()
		if err != nil {
			return fmt.Errorf("evaluate %q: %w", arg, err)
		}
		fmt.Fprintln(out, formatResult(v))
	}
	return nil
}

// formatResult formats a value with the shortest exact representation,
// annotated with a known value it is close to.
func formatResult(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if name := nearName(v); name != "" {
		s += " ~ " + name
	}
	return s
}
