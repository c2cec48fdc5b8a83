package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/stock-tracker/internal/cli"
	"github.com/donaldgifford/stock-tracker/internal/engine"
	"github.com/donaldgifford/stock-tracker/internal/store"
	"github.com/donaldgifford/stock-tracker/pkg/status"
)

// withApp opens the inventory for the duration of fn.
func withApp(ctx context.Context, opts *rootOptions, fn func(*app) error) error {
	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func listCmd(opts *rootOptions) *cobra.Command {
	var (
		alertsOnly bool
		name       string
		typ        string
		statusText string
		orderBy    string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List equipment",
		Long: "List inventory rows with their alert bucket. With --alerts only rows\n" +
			"that are low on stock or out of service are shown.",
		Example: `  stock-tracker list
  stock-tracker list --type CPE --status "en panne"
  stock-tracker list --alerts --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := &store.ListQuery{Limit: limit, OrderBy: orderBy}
			if name != "" {
				q.Name = &name
			}
			if typ != "" {
				q.Type = &typ
			}
			if statusText != "" {
				s, ok := status.Parse(statusText)
				if !ok {
					return fmt.Errorf("unknown status %q", statusText)
				}
				q.Status = &s
			}

			return withApp(cmd.Context(), opts, func(a *app) error {
				var (
					rows []engine.Listing
					err  error
				)
				if alertsOnly {
					rows, err = a.engine.Alerts(cmd.Context())
				} else {
					rows, err = a.engine.List(cmd.Context(), q)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if opts.jsonOutput() {
					return cli.OutputJSON(out, rows)
				}
				if len(rows) == 0 {
					_, err := fmt.Fprintln(out, "No equipment found.")
					return err
				}
				return cli.PrintEquipmentTable(out, rows)
			})
		},
	}

	cmd.Flags().BoolVar(&alertsOnly, "alerts", false, "only rows that need attention")
	cmd.Flags().StringVar(&name, "name", "", "exact name filter")
	cmd.Flags().StringVar(&typ, "type", "", "exact type filter")
	cmd.Flags().StringVar(&statusText, "status", "", "status filter (normalized, e.g. HS)")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "sort field (id, name, quantity)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 means all)")

	return cmd
}

func summaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the low-stock and broken counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app) error {
				s, err := a.engine.Summary(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOutput() {
					return cli.OutputJSON(cmd.OutOrStdout(), s)
				}
				return cli.PrintSummary(cmd.OutOrStdout(), s, a.engine.Rules().LowStockThreshold)
			})
		},
	}
}

// equipmentFlags binds the record fields shared by add and modify.
type equipmentFlags struct {
	c engine.Candidate
}

func (f *equipmentFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.c.Name, "name", "", "equipment name")
	cmd.Flags().StringVar(&f.c.Type, "type", "", "equipment type")
	cmd.Flags().IntVar(&f.c.Quantity, "quantity", 0, "quantity")
	cmd.Flags().StringVar(&f.c.Supplier, "supplier", "", "supplier")
	cmd.Flags().StringVar(&f.c.Note, "note", "", "remark")
	cmd.Flags().StringVar(&f.c.Status, "status", "", "status text (Fonctionnel, HS, maintenance, ...)")
}

// overlay copies the flags the operator set onto base.
func (f *equipmentFlags) overlay(cmd *cobra.Command, base engine.Candidate) engine.Candidate {
	flags := cmd.Flags()
	if flags.Changed("name") {
		base.Name = f.c.Name
	}
	if flags.Changed("type") {
		base.Type = f.c.Type
	}
	if flags.Changed("quantity") {
		base.Quantity = f.c.Quantity
	}
	if flags.Changed("supplier") {
		base.Supplier = f.c.Supplier
	}
	if flags.Changed("note") {
		base.Note = f.c.Note
	}
	if flags.Changed("status") {
		base.Status = f.c.Status
	}
	return base
}

func addCmd(opts *rootOptions) *cobra.Command {
	var f equipmentFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add equipment, merging into an existing bucket",
		Long: "Add a quantity of equipment. If a row with the same name, type and\n" +
			"status exists the quantity is added to it; otherwise a row is created.",
		Example: `  stock-tracker add --name "Router A" --type CPE --quantity 3
  stock-tracker add --name "Router A" --type CPE --quantity 1 --status HS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app) error {
				out, err := a.engine.Add(cmd.Context(), f.c)
				if err != nil {
					return err
				}
				if opts.jsonOutput() {
					return cli.OutputJSON(cmd.OutOrStdout(), out)
				}
				return cli.PrintOutcome(cmd.OutOrStdout(), out)
			})
		},
	}
	f.bind(cmd)

	return cmd
}

func modifyCmd(opts *rootOptions) *cobra.Command {
	var f equipmentFlags

	cmd := &cobra.Command{
		Use:   "modify <id>",
		Short: "Overwrite one row",
		Long: "Overwrite a row by id. Fields not given keep their current value.\n" +
			"The row is not merged with other rows, even if its new key matches one.",
		Example: `  stock-tracker modify 12 --quantity 0
  stock-tracker modify 12 --status maintenance --note "sent back to vendor"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), opts, func(a *app) error {
				current, err := a.engine.Get(cmd.Context(), id)
				if err != nil {
					return err
				}

				updated, err := a.engine.Modify(cmd.Context(), id, f.overlay(cmd, engine.Candidate{
					Name:     current.Name,
					Type:     current.Type,
					Quantity: current.Quantity,
					Supplier: current.Supplier,
					Note:     current.Note,
					Status:   string(current.Status),
				}))
				if err != nil {
					return err
				}
				if opts.jsonOutput() {
					return cli.OutputJSON(cmd.OutOrStdout(), updated)
				}
				return cli.PrintEquipmentDetail(cmd.OutOrStdout(), updated)
			})
		},
	}
	f.bind(cmd)

	return cmd
}

func deleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one row",
		Long:  "Delete a row by id. Asks for confirmation unless --yes is given.",
		Example: `  stock-tracker delete 12
  stock-tracker delete 12 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), opts, func(a *app) error {
				confirmed := yes
				if !confirmed {
					e, err := a.engine.Get(cmd.Context(), id)
					if err != nil {
						return err
					}
					prompt := fmt.Sprintf("Delete %d x %s (%s, %s)?", e.Quantity, e.Name, e.Type, e.Status)
					confirmed, err = confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
					if err != nil {
						return err
					}
				}

				deleted, err := a.engine.Delete(cmd.Context(), id, confirmed)
				if err != nil {
					return err
				}
				if opts.jsonOutput() {
					return cli.OutputJSON(cmd.OutOrStdout(), map[string]bool{"deleted": deleted})
				}
				msg := "Cancelled."
				if deleted {
					msg = fmt.Sprintf("Row %d deleted.", id)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func digestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Send the stock digest now",
		Long:  "Send the low-stock and broken summary to the configured notifiers. Nothing is sent when the inventory is healthy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app) error {
				return a.engine.SendDigest(cmd.Context())
			})
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// confirm asks a yes/no question. Only y, yes, o or oui count as yes.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", prompt); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true, nil
	default:
		return false, nil
	}
}
