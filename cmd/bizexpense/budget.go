package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bizexpense/internal/aggregate"
	"bizexpense/internal/cli"
)

func (a *app) budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Show and change monthly category budgets",
	}
	cmd.AddCommand(a.budgetListCmd())
	cmd.AddCommand(a.budgetSetCmd())
	return cmd
}

func (a *app) budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"status"},
		Short:   "Compare this month's spend with each category budget",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			now := a.now()
			snap := sess.Store.Snapshot()
			lines := sess.Engine.BudgetStatus(snap, now)

			fmt.Fprintln(a.out, cli.TitleStyle.Render("Budget status, "+aggregate.PeriodLabel(now)))
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Budget"),
				cli.HeaderStyle.Render("Spent"),
				cli.HeaderStyle.Render("Used"),
				cli.HeaderStyle.Render("Status"))
			for _, l := range lines {
				status := cli.SuccessStyle.Render("within budget")
				if l.Over {
					status = cli.ErrorStyle.Render("over by " + cli.FormatINR(l.Overrun))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					l.Category, cli.FormatINR(l.Ceiling), cli.FormatINR(l.Spent), cli.FormatPercent(l.Percent), status)
			}
			return w.Flush()
		},
	}
}

func (a *app) budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <Category=Amount>...",
		Short: "Change one or more category budgets in a single commit",
		Long: `Change category budgets. All assignments are applied to a working copy
and committed together; if any assignment is malformed nothing is saved.
An amount that is not a positive number sets the budget to 0.

Example:
  bizexpense budget set Travel=5000 "Office Supplies=1200"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			draft := sess.Store.BeginBudgetEdit()
			for _, arg := range args {
				name, value, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected Category=Amount, got %q", arg)
				}
				c, err := lookupCategory(name)
				if err != nil {
					return err
				}
				if err := draft.SetInput(c, value); err != nil {
					return err
				}
			}
			if err := sess.Store.CommitBudgetEdit(cmd.Context(), draft); err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.SuccessStyle.Render(fmt.Sprintf("✓ Budgets updated (%d changed)", len(args))))
			return nil
		},
	}
}
