package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"bizexpense/internal/cli"
	"bizexpense/internal/config"
	"bizexpense/internal/log"
	"bizexpense/internal/storage"
)

// app carries what every subcommand needs once the root has initialized.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd(out, errOut io.Writer, now func() time.Time) *cobra.Command {
	a := &app{out: out, errOut: errOut, now: now}

	root := &cobra.Command{
		Use:   "bizexpense",
		Short: "Track business expenses against monthly category budgets",
		Long: `bizexpense records business expenses, compares each category's spend
for the current month against its budget, and exports the list as CSV or
an XLSX report. Data is kept in a local SQLite file by default.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./bizexpense.yaml or $HOME/.config/bizexpense/bizexpense.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(a.expenseCmd())
	root.AddCommand(a.budgetCmd())
	root.AddCommand(a.dashboardCmd())
	root.AddCommand(a.exportCmd())

	return root
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(a.cfgFile, a.logLevel, a.logFormat)
	if err != nil {
		return err
	}

	logger, err := cli.SetupLogger(cfg, a.errOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	logger.Debug("configuration loaded", log.FieldOperation, log.OpStartup, log.FieldBackend, cfg.Backend)
	cmd.SetContext(log.WithLogger(cmd.Context(), logger))
	return nil
}

// open loads the store for one command. Callers must Close the session.
func (a *app) open(cmd *cobra.Command) (*cli.Session, error) {
	sess, err := cli.OpenSession(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	if sess.LoadWarning != nil {
		fmt.Fprintln(a.errOut, cli.WarningStyle.Render(fmt.Sprintf(
			"Warning: stored data could not be read and was reset to defaults. The unreadable copy is kept under %q / %q.",
			storage.ExpensesKey+storage.CorruptSuffix, storage.BudgetsKey+storage.CorruptSuffix)))
		fmt.Fprintln(a.errOut, cli.SubtleStyle.Render(sess.LoadWarning.Error()))
	}
	return sess, nil
}
