package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"bizexpense/internal/cli"
	"bizexpense/internal/core"
)

const barWidth = 30

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Headline figures, spend by category and the monthly trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			summary := sess.Engine.Summarize(sess.Store.Snapshot(), a.now())
			fmt.Fprintln(a.out, renderStats(summary.Stats))
			fmt.Fprintln(a.out)
			if err := a.renderCategories(summary.CategoryTotals); err != nil {
				return err
			}
			fmt.Fprintln(a.out)
			return a.renderMonthly(summary)
		},
	}
}

func renderStats(s core.Stats) string {
	stat := func(label, value string) string {
		return cli.StatStyle.Render(cli.SubtleStyle.Render(label) + "\n" + cli.HeaderStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Monthly Record "+s.Period, cli.FormatINR(s.MonthTotal)),
		stat("Annual Disbursement", cli.FormatINR(s.GrandTotal)),
		stat("Transaction Audit", fmt.Sprintf("%d entries", s.Count)),
		stat("Budget Utilization", cli.FormatPercent(s.Utilization)),
	)
}

func (a *app) renderCategories(totals []core.CategoryAmount) error {
	fmt.Fprintln(a.out, cli.TitleStyle.Render("Spend by category"))
	if len(totals) == 0 {
		fmt.Fprintln(a.out, cli.SubtleStyle.Render("No expenses recorded."))
		return nil
	}
	var peak core.Money
	for _, t := range totals {
		if t.Amount.Cents > peak.Cents {
			peak = t.Amount
		}
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, t := range totals {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Category, cli.FormatINR(t.Amount), bar(t.Amount, peak))
	}
	return w.Flush()
}

func (a *app) renderMonthly(s core.Summary) error {
	fmt.Fprintln(a.out, cli.TitleStyle.Render(fmt.Sprintf("Monthly trend %d", s.Year)))
	var peak core.Money
	for _, m := range s.Monthly {
		if m.Cents > peak.Cents {
			peak = m
		}
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for i, m := range s.Monthly {
		fmt.Fprintf(w, "%s\t%s\t%s\n", time.Month(i+1).String()[:3], cli.FormatINR(m), bar(m, peak))
	}
	return w.Flush()
}

func bar(v, peak core.Money) string {
	if peak.Cents <= 0 || v.Cents <= 0 {
		return ""
	}
	n := int(v.Cents * barWidth / peak.Cents)
	if n == 0 {
		n = 1
	}
	return cli.SuccessStyle.Render(strings.Repeat("█", n))
}
