package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bizexpense/internal/cli"
	"bizexpense/internal/export"
	"bizexpense/internal/log"
	"bizexpense/internal/query"
)

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the displayed expense list",
	}
	cmd.AddCommand(a.exportCSVCmd())
	cmd.AddCommand(a.exportXLSXCmd())
	return cmd
}

func (a *app) exportCSVCmd() *cobra.Command {
	var (
		flags listFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write the filtered, sorted list as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, order, err := flags.parse()
			if err != nil {
				return err
			}
			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			rows := query.Apply(sess.Store.Snapshot().Expenses, filter, order)
			if out == "" {
				out = export.CSVFilename(a.now())
			}
			return a.writeExport(cmd, out, len(rows), func(w io.Writer) error {
				return export.WriteCSV(w, rows)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, - for stdout (default biz_expenses_YYYY-MM-DD.csv)")
	return cmd
}

func (a *app) exportXLSXCmd() *cobra.Command {
	var (
		flags listFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Write an XLSX report: the filtered list plus the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, order, err := flags.parse()
			if err != nil {
				return err
			}
			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			snap := sess.Store.Snapshot()
			rows := query.Apply(snap.Expenses, filter, order)
			summary := sess.Engine.Summarize(snap, a.now())
			if out == "" {
				out = export.XLSXFilename(a.now())
			}
			return a.writeExport(cmd, out, len(rows), func(w io.Writer) error {
				return export.WriteXLSX(w, rows, summary)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, - for stdout (default biz_expenses_YYYY-MM-DD.xlsx)")
	return cmd
}

func (a *app) writeExport(cmd *cobra.Command, path string, count int, write func(io.Writer) error) error {
	logger := log.FromContext(cmd.Context()).WithComponent(log.ComponentExport)
	if path == "-" {
		return write(a.out)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		logger.LogError(cmd.Context(), "export failed", err, log.OpExport, log.LogFields{log.FieldPath: path})
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	logger.InfoContext(cmd.Context(), "export written",
		log.FieldOperation, log.OpExport,
		log.FieldPath, path,
		log.FieldCount, count)
	fmt.Fprintln(a.out, cli.SuccessStyle.Render(fmt.Sprintf("✓ Exported %d expenses to %s", count, path)))
	return nil
}
