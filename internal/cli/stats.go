package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show dashboard numbers for the inventory" }
func (*statsCmd) Usage() string {
	return `stockroom stats

  Prints total, low-stock, healthy and expiring counts plus the items
  currently below their threshold.
`
}
func (*statsCmd) SetFlags(*flag.FlagSet) {}

func (c *statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, app *App) error {
		stats := app.Inventory.Stats()
		settings := app.Personalization.Settings()

		fmt.Printf("%s\n", settings.ShopName)
		fmt.Printf("  total items:   %d\n", stats.TotalItems)
		fmt.Printf("  low stock:     %d\n", stats.LowStockCount)
		fmt.Printf("  healthy:       %d\n", stats.HealthyCount)
		fmt.Printf("  expiring soon: %d\n", stats.ExpiringCount)
		for _, item := range stats.LowStockItems {
			fmt.Printf("    ! %s (%d %s)\n", item.Name, item.Quantity, item.Unit)
		}
		return nil
	})
}
