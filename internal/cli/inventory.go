package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/wellhouse/stockroom/internal/calculator"
	"github.com/wellhouse/stockroom/internal/models"
)

// findItem resolves a command-line reference to an item: an exact id first,
// then a case-insensitive name match.
func findItem(items []models.Item, ref string) (models.Item, error) {
	for _, item := range items {
		if item.ID == ref {
			return item, nil
		}
	}
	for _, item := range items {
		if strings.EqualFold(item.Name, ref) {
			return item, nil
		}
	}
	return models.Item{}, fmt.Errorf("no item matches %q", ref)
}

type addCmd struct {
	category     string
	icon         string
	categoryIcon string
	quantity     int
	unit         string
	threshold    int
	purchase     string
	expiry       string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an item to the inventory" }
func (*addCmd) Usage() string {
	return `stockroom add [flags] <name>

  Adds a new item. Omitted fields fall back to the usual defaults
  (category "General", unit "pcs", purchased today).
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "Item category.")
	f.StringVar(&c.icon, "icon", "", "Emoji shown next to the item.")
	f.StringVar(&c.categoryIcon, "category-icon", "", "Emoji for the item's category.")
	f.IntVar(&c.quantity, "quantity", 0, "Stocked quantity.")
	f.StringVar(&c.unit, "unit", "", "Unit of measure.")
	f.IntVar(&c.threshold, "threshold", 0, "Low-stock threshold.")
	f.StringVar(&c.purchase, "purchased", "", "Purchase date (YYYY-MM-DD).")
	f.StringVar(&c.expiry, "expires", "", "Expiry date (YYYY-MM-DD).")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	return withApp(ctx, func(ctx context.Context, app *App) error {
		draft := models.Draft{
			Name:         name,
			Quantity:     c.quantity,
			Threshold:    c.threshold,
			PurchaseDate: c.purchase,
			ExpiryDate:   c.expiry,
		}
		if c.category != "" {
			draft.Category = c.category
		}
		if c.icon != "" {
			draft.Icon = c.icon
		}
		if c.categoryIcon != "" {
			draft.CategoryIcon = c.categoryIcon
		}
		if c.unit != "" {
			draft.Unit = c.unit
		}
		if err := app.Inventory.AddItem(ctx, draft); err != nil {
			return err
		}
		fmt.Printf("added %q\n", name)
		return nil
	})
}

type listCmd struct {
	search string
	status string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list inventory items grouped by category" }
func (*listCmd) Usage() string {
	return `stockroom list [-search <text>] [-status all|low|healthy|expiring]

  Prints the inventory grouped by category, optionally filtered by a
  search string (matched against name and category) and a stock status.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "search", "", "Substring to match against item name or category.")
	f.StringVar(&c.status, "status", "all", "Stock status filter (all, low, healthy, expiring).")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status, err := parseStatus(c.status)
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(ctx context.Context, app *App) error {
		items := calculator.Filter(app.Inventory.Items(), calculator.Query{
			Search: c.search,
			Status: status,
			Today:  nowFunc(),
		})
		if len(items) == 0 {
			fmt.Println("no items")
			return nil
		}

		icons := app.Inventory.CategoryIcons()
		for _, group := range calculator.GroupByCategory(items) {
			glyph := icons[group.Category]
			if glyph == "" {
				glyph = "📦"
			}
			fmt.Printf("%s %s\n", glyph, group.Category)
			for _, item := range group.Items {
				icon := item.Icon
				if icon == "" {
					icon = models.ItemIcon(item.Name)
				}
				marker := ""
				if item.LowStock() {
					marker = "  (low)"
				}
				fmt.Printf("  %s %-20s %d %s%s\n", icon, item.Name, item.Quantity, item.Unit, marker)
			}
		}
		return nil
	})
}

func parseStatus(s string) (calculator.Status, error) {
	switch s {
	case "all":
		return calculator.StatusAll, nil
	case "low":
		return calculator.StatusLow, nil
	case "healthy":
		return calculator.StatusHealthy, nil
	case "expiring":
		return calculator.StatusExpiring, nil
	default:
		return calculator.StatusAll, fmt.Errorf("unknown status %q (want all, low, healthy or expiring)", s)
	}
}

type updateCmd struct {
	name         string
	category     string
	icon         string
	categoryIcon string
	quantity     int
	unit         string
	threshold    int
	purchase     string
	expiry       string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "change fields of an existing item" }
func (*updateCmd) Usage() string {
	return `stockroom update [flags] <id|name>

  Applies only the flags that were set; everything else keeps its value.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New item name.")
	f.StringVar(&c.category, "category", "", "New category.")
	f.StringVar(&c.icon, "icon", "", "New item emoji.")
	f.StringVar(&c.categoryIcon, "category-icon", "", "New category emoji.")
	f.IntVar(&c.quantity, "quantity", 0, "New quantity.")
	f.StringVar(&c.unit, "unit", "", "New unit of measure.")
	f.IntVar(&c.threshold, "threshold", 0, "New low-stock threshold.")
	f.StringVar(&c.purchase, "purchased", "", "New purchase date (YYYY-MM-DD).")
	f.StringVar(&c.expiry, "expires", "", "New expiry date (YYYY-MM-DD).")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	ref := f.Arg(0)

	// Only explicitly set flags make it into the draft, so a zero
	// quantity stays distinguishable from "not changed".
	draft := models.Draft{}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			draft.Name = c.name
		case "category":
			draft.Category = c.category
		case "icon":
			draft.Icon = c.icon
		case "category-icon":
			draft.CategoryIcon = c.categoryIcon
		case "quantity":
			draft.Quantity = c.quantity
		case "unit":
			draft.Unit = c.unit
		case "threshold":
			draft.Threshold = c.threshold
		case "purchased":
			draft.PurchaseDate = c.purchase
		case "expires":
			draft.ExpiryDate = c.expiry
		}
	})

	return withApp(ctx, func(ctx context.Context, app *App) error {
		item, err := findItem(app.Inventory.Items(), ref)
		if err != nil {
			return err
		}
		if err := app.Inventory.UpdateItem(ctx, item.ID, draft); err != nil {
			return err
		}
		fmt.Printf("updated %q\n", item.Name)
		return nil
	})
}

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove an item from the inventory" }
func (*deleteCmd) Usage() string {
	return "stockroom delete <id|name>\n"
}
func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	ref := f.Arg(0)

	return withApp(ctx, func(ctx context.Context, app *App) error {
		item, err := findItem(app.Inventory.Items(), ref)
		if err != nil {
			return err
		}
		if err := app.Inventory.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		fmt.Printf("deleted %q\n", item.Name)
		return nil
	})
}

type incCmd struct{}

func (*incCmd) Name() string     { return "inc" }
func (*incCmd) Synopsis() string { return "raise an item's quantity by one" }
func (*incCmd) Usage() string {
	return "stockroom inc <id|name>\n"
}
func (*incCmd) SetFlags(*flag.FlagSet) {}

func (c *incCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	return adjustQuantity(ctx, f.Arg(0), +1)
}

type decCmd struct{}

func (*decCmd) Name() string     { return "dec" }
func (*decCmd) Synopsis() string { return "lower an item's quantity by one (never below zero)" }
func (*decCmd) Usage() string {
	return "stockroom dec <id|name>\n"
}
func (*decCmd) SetFlags(*flag.FlagSet) {}

func (c *decCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	return adjustQuantity(ctx, f.Arg(0), -1)
}

func adjustQuantity(ctx context.Context, ref string, delta int) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, app *App) error {
		item, err := findItem(app.Inventory.Items(), ref)
		if err != nil {
			return err
		}
		if delta > 0 {
			err = app.Inventory.IncrementItem(ctx, item.ID)
		} else {
			err = app.Inventory.DecrementItem(ctx, item.ID)
		}
		if err != nil {
			return err
		}
		for _, current := range app.Inventory.Items() {
			if current.ID == item.ID {
				fmt.Printf("%s: %d %s\n", current.Name, current.Quantity, current.Unit)
				break
			}
		}
		return nil
	})
}

type iconCmd struct{}

func (*iconCmd) Name() string     { return "icon" }
func (*iconCmd) Synopsis() string { return "set the emoji for a category" }
func (*iconCmd) Usage() string {
	return "stockroom icon <category> <emoji>\n"
}
func (*iconCmd) SetFlags(*flag.FlagSet) {}

func (c *iconCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	category, glyph := f.Arg(0), f.Arg(1)

	return withApp(ctx, func(ctx context.Context, app *App) error {
		if err := app.Inventory.SetCategoryIcon(ctx, category, glyph); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", glyph, category)
		return nil
	})
}
