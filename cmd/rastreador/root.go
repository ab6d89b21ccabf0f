package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zqzqsb/rastreador/internal/logging"
	"github.com/zqzqsb/rastreador/pkg/catalog"
	"github.com/zqzqsb/rastreador/report"
	"github.com/zqzqsb/rastreador/runner"
	"github.com/zqzqsb/rastreador/runner/ptrace"
)

// execute runs the command line and returns the process exit status
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(viper.New())
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		return 1
	}
	return 0
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rastreador [-v | -V] [flags] [--] prog [args...]",
		Short: "Trace the system calls of a program",
		Long: `rastreador runs a program under ptrace, counts every system call it
makes and prints a frequency table when it terminates.

With -v every syscall entry and exit is printed as it happens; -V also
waits for Enter after each line.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, cfg, args)
		},
	}

	flags := cmd.Flags()
	// everything after the program name belongs to the program
	flags.SetInterspersed(false)
	flags.BoolP(keyVerbose, "v", false, "Print every syscall entry and exit")
	flags.BoolP(keyStep, "V", false, "Like -v, waiting for Enter after every line")
	flags.String(keyNames, string(catalog.ModeCurated), "Syscall name table (curated, full)")
	flags.String(keyFormat, string(report.FormatTable), "Report format (table, json, yaml)")
	flags.StringP(keyOutput, "o", "", "Write the report to this file instead of stdout")
	flags.String(keyLogLevel, logging.DefaultLevel, "Log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "console", "Log format (console, json)")
	flags.StringVar(&configPath, "config", "", "Path to configuration file")
	cmd.MarkFlagsMutuallyExclusive(keyVerbose, keyStep)

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	return cmd
}

func run(cmd *cobra.Command, cfg config, args []string) error {
	logger, err := logging.New(cfg.logging(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := catalog.New(catalog.Mode(cfg.Names))
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if cfg.Step && !isTerminal(os.Stdin) {
		logger.Warnw("step mode with stdin not a terminal, confirmations are read from it")
	}

	prog := resolveProgram(args[0])
	logger.Debugw("starting trace", "program", prog, "args", args[1:], "mode", cfg.verbosity())

	r := &ptrace.Runner{
		Args:      append([]string{prog}, args[1:]...),
		Env:       os.Environ(),
		Files:     []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd()},
		Verbosity: cfg.verbosity(),
		Catalog:   cat,
		Logger:    logger,
		Stdout:    cmd.OutOrStdout(),
		Stdin:     cmd.InOrStdin(),
	}
	result := r.Run()
	if !result.Completed() {
		logger.Errorw("trace failed", "program", prog, "status", result.Status, "err", result.Error)
		return fmt.Errorf("trace %s: %s", prog, result.Error)
	}
	if result.Status == runner.StatusExecFailed {
		logger.Errorw("program could not be executed", "program", prog, "err", result.Error)
	}

	table := report.Summarize(result.Counts, cat)
	if err := report.Write(out, table, format); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logSummary(logger, prog, result, table)
	return nil
}

func logSummary(logger *zap.SugaredLogger, prog string, result runner.Result, table report.FrequencyTable) {
	status := result.Status.String()
	if result.Status == runner.StatusNormal {
		status = "normal"
	}
	logger.Infow("trace finished",
		"program", prog,
		"status", status,
		"exit", result.ExitStatus,
		"time", result.Time,
		"memory", result.Memory.String(),
		"syscalls", table.Total(),
		"distinct", len(table),
	)
}

// resolveProgram looks a bare name up on PATH. A failed lookup keeps the
// name so the child's execve reports the failure.
func resolveProgram(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	return name
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
