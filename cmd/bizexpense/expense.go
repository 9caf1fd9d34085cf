package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"bizexpense/internal/cli"
	"bizexpense/internal/core"
	"bizexpense/internal/query"
)

// draftFlags are the form fields shared by add and edit.
type draftFlags struct {
	date          string
	amount        string
	category      string
	description   string
	paymentMethod string
	taxDeductible bool
	receipt       string
	clearReceipt  bool
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "expense date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount in INR, e.g. 1250.50")
	cmd.Flags().StringVar(&f.category, "category", "", fmt.Sprintf("one of %s", joinCategories()))
	cmd.Flags().StringVar(&f.description, "description", "", "what the expense was for")
	cmd.Flags().StringVar(&f.paymentMethod, "payment", "", fmt.Sprintf("one of %s", joinPaymentMethods()))
	cmd.Flags().BoolVar(&f.taxDeductible, "tax-deductible", false, "mark the expense as tax deductible")
	cmd.Flags().StringVar(&f.receipt, "receipt", "", "path to a receipt image (max 2 MiB)")
}

// apply copies every flag the user set onto d.
func (f *draftFlags) apply(cmd *cobra.Command, d *core.ExpenseDraft) error {
	changed := cmd.Flags().Changed
	if changed("date") {
		d.Date = f.date
	}
	if changed("amount") {
		d.Amount = f.amount
	}
	if changed("category") {
		c, err := lookupCategory(f.category)
		if err != nil {
			return err
		}
		d.Category = c
	}
	if changed("description") {
		d.Description = f.description
	}
	if changed("payment") {
		m, err := lookupPaymentMethod(f.paymentMethod)
		if err != nil {
			return err
		}
		d.PaymentMethod = m
	}
	if changed("tax-deductible") {
		d.IsTaxDeductible = f.taxDeductible
	}
	if f.clearReceipt {
		d.ClearReceipt()
	}
	if f.receipt != "" {
		data, err := os.ReadFile(f.receipt)
		if err != nil {
			return fmt.Errorf("read receipt: %w", err)
		}
		if err := d.AttachReceipt(data); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Add, edit, delete and list expenses",
	}
	cmd.AddCommand(a.expenseAddCmd())
	cmd.AddCommand(a.expenseEditCmd())
	cmd.AddCommand(a.expenseDeleteCmd())
	cmd.AddCommand(a.expenseListCmd())
	cmd.AddCommand(a.expenseShowCmd())
	return cmd
}

func (a *app) expenseAddCmd() *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := core.NewExpenseDraft(a.now())
			if err := flags.apply(cmd, &d); err != nil {
				return err
			}

			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			e, err := sess.Store.AddExpense(cmd.Context(), d)
			if err != nil {
				return a.formError(err)
			}
			fmt.Fprintln(a.out, cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %s %s (%s)", cli.FormatINR(e.Amount), e.Description, e.ID)))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) expenseEditCmd() *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			existing, err := sess.Store.Expense(args[0])
			if err != nil {
				return err
			}
			d := core.DraftFromExpense(existing)
			if err := flags.apply(cmd, &d); err != nil {
				return err
			}

			e, err := sess.Store.UpdateExpense(cmd.Context(), existing.ID, d)
			if err != nil {
				return a.formError(err)
			}
			fmt.Fprintln(a.out, cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated %s", e.ID)))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.clearReceipt, "clear-receipt", false, "remove the attached receipt")
	return cmd
}

func (a *app) expenseDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			e, err := sess.Store.Expense(args[0])
			if err != nil {
				return err
			}
			if !yes {
				fmt.Fprintf(a.out, "Delete %s %s on %s? [y/N] ", cli.FormatINR(e.Amount), e.Description, e.Date)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if reply := strings.ToLower(strings.TrimSpace(answer)); reply != "y" && reply != "yes" {
					fmt.Fprintln(a.out, "Cancelled.")
					return nil
				}
			}
			if err := sess.Store.DeleteExpense(cmd.Context(), e.ID); err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted %s", e.ID)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// listFlags select and order the displayed list.
type listFlags struct {
	search        string
	category      string
	paymentMethod string
	sortField     string
	order         string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive description match")
	cmd.Flags().StringVar(&f.category, "category", query.All, "category filter")
	cmd.Flags().StringVar(&f.paymentMethod, "payment", query.All, "payment method filter")
	cmd.Flags().StringVar(&f.sortField, "sort", string(query.DefaultSort.Field), "sort field: date, amount, category, description, paymentMethod")
	cmd.Flags().StringVar(&f.order, "order", string(query.DefaultSort.Order), "sort order: asc or desc")
}

func (f *listFlags) parse() (query.Filter, query.Sort, error) {
	filter := query.Filter{SearchText: f.search, Category: query.All, PaymentMethod: query.All}
	if f.category != "" && !strings.EqualFold(f.category, query.All) {
		c, err := lookupCategory(f.category)
		if err != nil {
			return query.Filter{}, query.Sort{}, err
		}
		filter.Category = string(c)
	}
	if f.paymentMethod != "" && !strings.EqualFold(f.paymentMethod, query.All) {
		m, err := lookupPaymentMethod(f.paymentMethod)
		if err != nil {
			return query.Filter{}, query.Sort{}, err
		}
		filter.PaymentMethod = string(m)
	}
	field, err := query.ParseField(f.sortField)
	if err != nil {
		return query.Filter{}, query.Sort{}, err
	}
	order, err := query.ParseOrder(f.order)
	if err != nil {
		return query.Filter{}, query.Sort{}, err
	}
	return filter, query.Sort{Field: field, Order: order}, nil
}

func (a *app) expenseListCmd() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses, filtered and sorted",
		Args:    cobra.NoArgs,
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
			shown := query.Apply(snap.Expenses, filter, order)
			if len(snap.Expenses) == 0 {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("No expenses yet. Use 'bizexpense expense add' to record one."))
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Payment"),
				cli.HeaderStyle.Render("Tax"))
			var total core.Money
			for _, e := range shown {
				tax := ""
				if e.IsTaxDeductible {
					tax = "✓"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Date, cli.FormatINR(e.Amount), e.Category, e.Description, e.PaymentMethod, tax)
				total = total.Add(e.Amount)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.SubtleStyle.Render(fmt.Sprintf("%d of %d expenses, %s", len(shown), len(snap.Expenses), cli.FormatINR(total))))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) expenseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			e, err := sess.Store.Expense(args[0])
			if err != nil {
				return err
			}
			receipt := "none"
			if e.ReceiptImage != "" {
				receipt = "attached, " + humanize.Bytes(uint64(len(e.ReceiptImage))) + " encoded"
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%s\n", e.ID)
			fmt.Fprintf(w, "Date\t%s\n", e.Date)
			fmt.Fprintf(w, "Amount\t%s\n", cli.FormatINR(e.Amount))
			fmt.Fprintf(w, "Category\t%s\n", e.Category)
			fmt.Fprintf(w, "Description\t%s\n", e.Description)
			fmt.Fprintf(w, "Payment\t%s\n", e.PaymentMethod)
			fmt.Fprintf(w, "Tax deductible\t%s\n", map[bool]string{true: "Yes", false: "No"}[e.IsTaxDeductible])
			fmt.Fprintf(w, "Receipt\t%s\n", receipt)
			return w.Flush()
		},
	}
}

// formError prints one line per invalid form field and returns a short error.
func (a *app) formError(err error) error {
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintln(a.errOut, cli.ErrorStyle.Render(fmt.Sprintf("%s: %s", field, verr.Fields[field])))
	}
	return fmt.Errorf("expense not saved: %d invalid field(s)", len(fields))
}

func joinCategories() string {
	names := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func joinPaymentMethods() string {
	names := make([]string, 0, len(core.PaymentMethods()))
	for _, m := range core.PaymentMethods() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// lookupCategory accepts a category name in any letter case.
func lookupCategory(s string) (core.Category, error) {
	for _, c := range core.Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return core.ParseCategory(s)
}

func lookupPaymentMethod(s string) (core.PaymentMethod, error) {
	for _, m := range core.PaymentMethods() {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return core.ParsePaymentMethod(s)
}
