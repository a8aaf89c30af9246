package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/record"
	"github.com/amalmed/opstrack/internal/store"
)

func newPurchaseCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "purchase",
		Aliases: []string{"pr"},
		Short:   "Create and edit purchase requests",
		Long: `Purchase requests are tasks in the purchase category with line items,
terms and a serial number. Line items are addressed by id or 1-based position;
terms by 1-based position.`,
	}
	cmd.AddCommand(newPurchaseNewCmd(a), newPurchaseItemCmd(a), newPurchaseTermCmd(a))
	return cmd
}

func newPurchaseNewCmd(a *App) *cobra.Command {
	var (
		fields    taskFields
		items     []string
		recipient string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a purchase request",
		Example: `  opstrack purchase new -t "Lab gloves" --item "Nitrile gloves|box|20|35|LAB-01"
  opstrack purchase new -t "Printer toner" --item "Toner|piece|2|26"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := record.NewPurchase(a.now())
			if err != nil {
				return err
			}
			if err := fields.apply(cmd.Flags(), &t); err != nil {
				return err
			}
			if cmd.Flags().Changed("recipient") {
				t.PurchaseData.Recipient = recipient
			}
			for i, spec := range items {
				values, err := parseItemSpec(spec)
				if err != nil {
					return err
				}
				itemID := t.PurchaseData.Items[0].ID
				if i > 0 {
					item, err := t.AddPurchaseItem()
					if err != nil {
						return err
					}
					itemID = item.ID
				}
				for _, field := range itemFieldOrder {
					if v, ok := values[field]; ok {
						if err := t.SetPurchaseItemField(itemID, field, v); err != nil {
							return err
						}
					}
				}
			}

			return withStore(cmd, a, true, func(s *store.Store) error {
				created, err := s.AddTask(cmd.Context(), t)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added purchase request %s (%s), total %s\n",
					created.ID, created.SerialNumber(), formatAmount(created.GrandTotal()))
				return nil
			})
		},
	}
	fields.register(cmd.Flags(), false)
	cmd.Flags().StringArrayVar(&items, "item", nil, `Line item as "name|unit|quantity|price|code" (repeatable)`)
	cmd.Flags().StringVar(&recipient, "recipient", "", "Addressee of the request")
	return cmd
}

func newPurchaseItemCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Edit purchase line items",
	}

	var values struct {
		name, unit, code, quantity, price string
	}
	add := &cobra.Command{
		Use:   "add <id>",
		Short: "Append a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, a, true, func(s *store.Store) error {
				t, item, err := s.AddPurchaseItem(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				set := map[record.ItemField]struct {
					flag  string
					value string
				}{
					record.FieldName:     {"name", values.name},
					record.FieldUnit:     {"unit", values.unit},
					record.FieldItemCode: {"code", values.code},
					record.FieldQuantity: {"qty", values.quantity},
					record.FieldPrice:    {"price", values.price},
				}
				for _, field := range itemFieldOrder {
					v := set[field]
					if !cmd.Flags().Changed(v.flag) {
						continue
					}
					if t, err = s.UpdatePurchaseLineItem(cmd.Context(), t.ID, item.ID, field, v.value); err != nil {
						return err
					}
				}
				return printItems(cmd, &t)
			})
		},
	}
	add.Flags().StringVar(&values.name, "name", "", "Item name")
	add.Flags().StringVar(&values.unit, "unit", "", "Unit of measure")
	add.Flags().StringVar(&values.code, "code", "", "Item code")
	add.Flags().StringVar(&values.quantity, "qty", "", "Quantity")
	add.Flags().StringVar(&values.price, "price", "", "Unit price")

	set := &cobra.Command{
		Use:   "set <id> <item> <field> <value>",
		Short: "Set one field of a line item",
		Long:  "Fields: name, unit, itemCode, quantity, price. Quantity and price must be non-negative numbers.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := record.ParseItemField(args[2])
			if err != nil {
				return err
			}
			return withPurchaseItem(cmd, a, args, func(s *store.Store, id, itemID string) (record.Task, error) {
				return s.UpdatePurchaseLineItem(cmd.Context(), id, itemID, field, args[3])
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id> <item>",
		Short: "Remove a line item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPurchaseItem(cmd, a, args, func(s *store.Store, id, itemID string) (record.Task, error) {
				return s.RemovePurchaseItem(cmd.Context(), id, itemID)
			})
		},
	}

	cmd.AddCommand(add, set, rm)
	return cmd
}

func withPurchaseItem(cmd *cobra.Command, a *App, args []string, fn func(s *store.Store, id, itemID string) (record.Task, error)) error {
	return withStore(cmd, a, true, func(s *store.Store) error {
		t, err := s.Get(args[0])
		if err != nil {
			return err
		}
		if t.PurchaseData == nil {
			return fmt.Errorf("task %s is not a purchase request", t.ID)
		}
		itemID, err := resolveRef(args[1], purchaseItemIDs(&t), "line item")
		if err != nil {
			return err
		}
		updated, err := fn(s, t.ID, itemID)
		if err != nil {
			return err
		}
		return printItems(cmd, &updated)
	})
}

func newPurchaseTermCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Edit purchase request terms",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <text>",
			Short: "Append a term",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, a, true, func(s *store.Store) error {
					t, err := s.AddTerm(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					return printTerms(cmd, &t)
				})
			},
		},
		&cobra.Command{
			Use:   "set <id> <n> <text>",
			Short: "Replace the n-th term",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return withStore(cmd, a, true, func(s *store.Store) error {
					t, err := s.SetTerm(cmd.Context(), args[0], idx, args[2])
					if err != nil {
						return err
					}
					return printTerms(cmd, &t)
				})
			},
		},
		&cobra.Command{
			Use:   "rm <id> <n>",
			Short: "Remove the n-th term",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return withStore(cmd, a, true, func(s *store.Store) error {
					t, err := s.RemoveTerm(cmd.Context(), args[0], idx)
					if err != nil {
						return err
					}
					return printTerms(cmd, &t)
				})
			},
		},
	)
	return cmd
}

func printItems(cmd *cobra.Command, t *record.Task) error {
	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "#\tCODE\tNAME\tUNIT\tQTY\tPRICE\tTOTAL")
	for i, it := range t.PurchaseData.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1, dash(it.ItemCode), dash(it.Name), dash(it.Unit),
			formatAmount(it.Quantity), formatAmount(it.Price), formatAmount(it.Total))
	}
	fmt.Fprintf(w, "\t\t\t\t\tGRAND TOTAL\t%s\n", formatAmount(t.PurchaseData.GrandTotal))
	return w.Flush()
}

func printTerms(cmd *cobra.Command, t *record.Task) error {
	out := cmd.OutOrStdout()
	for i, term := range t.PurchaseData.Terms {
		fmt.Fprintf(out, "%d/ %s\n", i+1, term)
	}
	return nil
}
