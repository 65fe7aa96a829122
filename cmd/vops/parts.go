package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/vanops/internal/models"
	"github.com/zulandar/vanops/internal/ops"
	"github.com/zulandar/vanops/internal/views"
)

func newPartsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Parts inventory commands",
	}

	cmd.AddCommand(newPartsListCmd())
	cmd.AddCommand(newPartsAddCmd())
	cmd.AddCommand(newPartsUpdateCmd())
	cmd.AddCommand(newPartsDuplicateCmd())
	cmd.AddCommand(newPartsDeleteCmd())
	return cmd
}

func newPartsListCmd() *cobra.Command {
	var q views.PartQuery
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parts",
		Long:  "Lists the parts inventory. By default missing parts come first, then parts by name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Status = models.PartStatus(status)
			return withApp(cmd, func(a *app) error {
				q.LowStockFeet = a.cfg.Inventory.LowStockFeet
				return runPartsList(cmd, a, q)
			})
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "case-insensitive text search")
	cmd.Flags().StringVar(&q.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&status, "status", "", "filter by status ("+oneOf(models.PartStatuses)+")")
	cmd.Flags().BoolVar(&q.MissingOnly, "missing", false, "only parts still to buy")
	cmd.Flags().BoolVar(&q.LowStockOnly, "low-stock", false, "only wire below the low-stock length")
	cmd.Flags().BoolVar(&q.TerminationReady, "termination-ready", false, "only wire with lugs, heat shrink and connectors on hand")
	cmd.Flags().StringVar(&q.SortKey, "sort", "", "sort column ("+strings.Join(views.PartSortKeys, ", ")+")")
	cmd.Flags().BoolVar(&q.Desc, "desc", false, "sort descending")
	return cmd
}

func runPartsList(cmd *cobra.Command, a *app, q views.PartQuery) error {
	all := a.session.Ops().Parts
	parts := views.FilterParts(all, q)

	out := cmd.OutOrStdout()
	if len(parts) == 0 {
		fmt.Fprintln(out, "No parts found.")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tVENDOR\tOWNED\tNEED\tSTATUS\tWIRE LEFT\tFLAGS")
	for _, p := range parts {
		left := "-"
		var flags []string
		if views.IsWire(p) {
			left = formatQty(views.RemainingFeet(p)) + " ft"
			if views.IsLowStock(p, q.LowStockFeet) {
				flags = append(flags, "low")
			}
			if views.IsTerminationReady(p) {
				flags = append(flags, "term-ready")
			}
		}
		if views.IsMissing(p) {
			flags = append(flags, "missing")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, truncate(dash(p.Name), 36), p.Category, dash(p.Vendor),
			formatQty(p.QtyOwned), formatQty(p.QtyNeed), p.Status, left, formatList(flags))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := views.PartStatsOf(all, q.LowStockFeet)
	fmt.Fprintf(out, "\n%d of %d parts shown. %d missing, %d owned, %d installed, %d low-stock wire.\n",
		len(parts), s.Total, s.Missing, s.Owned, s.Installed, s.LowStock)
	return nil
}

func addPartFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "part name")
	cmd.Flags().String("category", "", "category (e.g. "+strings.Join(models.PartCategories[:4], ", ")+", ...)")
	cmd.Flags().String("vendor", "", "vendor")
	cmd.Flags().Float64("owned", 0, "quantity owned")
	cmd.Flags().Float64("need", 0, "quantity needed")
	cmd.Flags().Float64("installed", 0, "quantity installed")
	cmd.Flags().String("status", "", "status ("+oneOf(models.PartStatuses)+")")
	cmd.Flags().String("notes", "", "notes")
	cmd.Flags().String("used-in", "", "circuits the part serves, e.g. \"HC-001, HC-002\"")
	cmd.Flags().String("source", "", "where the part was bought")
	cmd.Flags().Float64("purchased-feet", 0, "wire purchased, in feet")
	cmd.Flags().Float64("used-feet", 0, "wire used outside the recorded wire uses, in feet")
	cmd.Flags().StringArray("wire-use", nil, "wire cut for a circuit as CIRCUIT:FEET[:NOTE] (repeatable)")
	cmd.Flags().Bool("lugs", false, "lugs on hand")
	cmd.Flags().Bool("heat-shrink", false, "heat shrink on hand")
	cmd.Flags().Bool("connectors", false, "connectors on hand")
}

// parseWireUses reads CIRCUIT:FEET[:NOTE] values.
func parseWireUses(values []string) ([]models.WireUse, error) {
	uses := make([]models.WireUse, 0, len(values))
	for _, v := range values {
		fields := strings.SplitN(v, ":", 3)
		if len(fields) < 2 {
			return nil, fmt.Errorf("wire use %q: want CIRCUIT:FEET[:NOTE]", v)
		}
		feet, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("wire use %q: feet: %w", v, err)
		}
		u := models.WireUse{CircuitID: strings.TrimSpace(fields[0]), Feet: feet}
		if len(fields) == 3 {
			u.Note = fields[2]
		}
		uses = append(uses, u)
	}
	return uses, nil
}

func newPartsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a part",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runPartsAdd(cmd, a)
			})
		},
	}

	cmd.Flags().String("id", "", "part ID (generated when empty)")
	addPartFlags(cmd)
	return cmd
}

func runPartsAdd(cmd *cobra.Command, a *app) error {
	values, _ := cmd.Flags().GetStringArray("wire-use")
	uses, err := parseWireUses(values)
	if err != nil {
		return err
	}
	p, err := a.session.AddPart(models.Part{
		ID:             flagString(cmd, "id"),
		Name:           flagString(cmd, "name"),
		Category:       flagString(cmd, "category"),
		Vendor:         flagString(cmd, "vendor"),
		QtyOwned:       flagFloat(cmd, "owned"),
		QtyNeed:        flagFloat(cmd, "need"),
		QtyInstalled:   flagFloat(cmd, "installed"),
		Status:         models.PartStatus(flagString(cmd, "status")),
		Notes:          flagString(cmd, "notes"),
		UsedInCircuits: flagString(cmd, "used-in"),
		Source:         flagString(cmd, "source"),
		PurchasedFeet:  flagFloat(cmd, "purchased-feet"),
		UsedFeet:       flagFloat(cmd, "used-feet"),
		WireUses:       uses,
		HasLugs:        flagBool(cmd, "lugs"),
		HasHeatShrink:  flagBool(cmd, "heat-shrink"),
		HasConnectors:  flagBool(cmd, "connectors"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added part %s (%s)\n", p.ID, p.Category)
	return nil
}

func newPartsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a part",
		Long:  "Changes only the fields whose flags are given. Any --wire-use replaces the recorded wire uses.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runPartsUpdate(cmd, a, args[0])
			})
		},
	}

	addPartFlags(cmd)
	cmd.Flags().Bool("clear-wire-uses", false, "remove every recorded wire use")
	return cmd
}

func runPartsUpdate(cmd *cobra.Command, a *app, id string) error {
	patch := ops.PartPatch{
		Name:           changedString(cmd, "name"),
		Category:       changedString(cmd, "category"),
		Vendor:         changedString(cmd, "vendor"),
		QtyOwned:       changedFloat(cmd, "owned"),
		QtyNeed:        changedFloat(cmd, "need"),
		QtyInstalled:   changedFloat(cmd, "installed"),
		Status:         changedEnum[models.PartStatus](cmd, "status"),
		Notes:          changedString(cmd, "notes"),
		UsedInCircuits: changedString(cmd, "used-in"),
		Source:         changedString(cmd, "source"),
		PurchasedFeet:  changedFloat(cmd, "purchased-feet"),
		UsedFeet:       changedFloat(cmd, "used-feet"),
		HasLugs:        changedBool(cmd, "lugs"),
		HasHeatShrink:  changedBool(cmd, "heat-shrink"),
		HasConnectors:  changedBool(cmd, "connectors"),
	}
	switch {
	case cmd.Flags().Changed("wire-use"):
		values, _ := cmd.Flags().GetStringArray("wire-use")
		uses, err := parseWireUses(values)
		if err != nil {
			return err
		}
		patch.WireUses = &uses
	case flagBool(cmd, "clear-wire-uses"):
		patch.WireUses = &[]models.WireUse{}
	}

	p, err := a.session.UpdatePart(id, patch)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Updated part %s (%s)\n", p.ID, p.Status)
	if views.IsWire(p) {
		fmt.Fprintf(out, "Wire remaining: %s ft\n", formatQty(views.RemainingFeet(p)))
	}
	return nil
}

func newPartsDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a part under a new ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				p, err := a.session.DuplicatePart(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %s as %s\n", args[0], p.ID)
				return nil
			})
		},
	}
}

func newPartsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				ok, err := confirmOrAbort(cmd, yes, fmt.Sprintf("This will delete part %q.", args[0]))
				if err != nil || !ok {
					return err
				}
				if err := a.session.DeletePart(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted part %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}
