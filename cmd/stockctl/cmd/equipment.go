package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/stock-tracker/internal/api/client"
	"github.com/donaldgifford/stock-tracker/internal/cli"
)

func listCmd() *cobra.Command {
	var (
		alertsOnly bool
		params     apiclient.ListParams
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List equipment",
		Example: `  stockctl list
  stockctl list --type CPE --status HS
  stockctl list --alerts --output json`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			ctx := context.Background()

			if alertsOnly {
				resp, err := c.Alerts(ctx)
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(resp)
				}
				if len(resp.Equipment) == 0 {
					fmt.Println("Nothing needs attention.")
					return nil
				}
				return cli.PrintEquipmentTable(os.Stdout, resp.Equipment)
			}

			page, err := c.ListEquipment(ctx, &params)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(page)
			}
			if len(page.Equipment) == 0 {
				fmt.Println("No equipment found.")
				return nil
			}
			return cli.PrintEquipmentTable(os.Stdout, page.Equipment)
		},
	}

	cmd.Flags().BoolVar(&alertsOnly, "alerts", false, "only rows that need attention")
	cmd.Flags().StringVar(&params.Name, "name", "", "exact name filter")
	cmd.Flags().StringVar(&params.Type, "type", "", "exact type filter")
	cmd.Flags().StringVar(&params.Status, "status", "", "status filter")
	cmd.Flags().StringVar(&params.OrderBy, "order-by", "", "sort field (id, name, quantity)")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum rows")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "pagination offset")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show one row",
		Example: `  stockctl get 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := newClient().GetEquipment(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(e)
			}
			return cli.PrintEquipmentDetail(os.Stdout, e)
		},
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the low-stock and broken counts",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := newClient().Summary(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(s)
			}
			return cli.PrintSummary(os.Stdout, s.StockSummary, s.LowStockThreshold)
		},
	}
}

func bindEquipmentFlags(cmd *cobra.Command, in *apiclient.EquipmentInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "equipment name")
	cmd.Flags().StringVar(&in.Type, "type", "", "equipment type")
	cmd.Flags().IntVar(&in.Quantity, "quantity", 0, "quantity")
	cmd.Flags().StringVar(&in.Supplier, "supplier", "", "supplier")
	cmd.Flags().StringVar(&in.Note, "note", "", "remark")
	cmd.Flags().StringVar(&in.Status, "status", "", "status text (Fonctionnel, HS, maintenance, ...)")
}

func addCmd() *cobra.Command {
	var in apiclient.EquipmentInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add equipment, merging into an existing bucket",
		Example: `  stockctl add --name "Router A" --type CPE --quantity 3
  stockctl add --name "Router A" --type CPE --quantity 1 --status HS`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if in.Name == "" {
				return fmt.Errorf("--name is required")
			}
			out, err := newClient().AddEquipment(context.Background(), &in)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(out)
			}
			return cli.PrintOutcome(os.Stdout, out)
		},
	}
	bindEquipmentFlags(cmd, &in)

	return cmd
}

func modifyCmd() *cobra.Command {
	var in apiclient.EquipmentInput

	cmd := &cobra.Command{
		Use:   "modify <id>",
		Short: "Overwrite one row",
		Long: "Overwrite a row by id. Fields not given keep their current value.\n" +
			"The row is not merged with other rows.",
		Example: `  stockctl modify 12 --quantity 0
  stockctl modify 12 --status maintenance`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := newClient()
			ctx := context.Background()

			current, err := c.GetEquipment(ctx, id)
			if err != nil {
				return err
			}

			merged := overlay(cmd, &in, &apiclient.EquipmentInput{
				Name:     current.Name,
				Type:     current.Type,
				Quantity: current.Quantity,
				Supplier: current.Supplier,
				Note:     current.Note,
				Status:   string(current.Status),
			})

			updated, err := c.ModifyEquipment(ctx, id, merged)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(updated)
			}
			return cli.PrintEquipmentDetail(os.Stdout, updated)
		},
	}
	bindEquipmentFlags(cmd, &in)

	return cmd
}

// overlay copies the flags set on cmd from in onto base.
func overlay(cmd *cobra.Command, in, base *apiclient.EquipmentInput) *apiclient.EquipmentInput {
	out := *base
	flags := cmd.Flags()
	if flags.Changed("name") {
		out.Name = in.Name
	}
	if flags.Changed("type") {
		out.Type = in.Type
	}
	if flags.Changed("quantity") {
		out.Quantity = in.Quantity
	}
	if flags.Changed("supplier") {
		out.Supplier = in.Supplier
	}
	if flags.Changed("note") {
		out.Note = in.Note
	}
	if flags.Changed("status") {
		out.Status = in.Status
	}
	return &out
}

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete one row",
		Example: `  stockctl delete 12 --yes`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(os.Stdin, os.Stderr, fmt.Sprintf("Delete row %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if _, err := newClient().DeleteEquipment(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Row %d deleted.\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func digestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Send the stock digest now",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			status, err := newClient().SendDigest(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(status)
			return nil
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

func outputJSON(v any) error {
	return cli.OutputJSON(os.Stdout, v)
}
