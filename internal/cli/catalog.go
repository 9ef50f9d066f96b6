package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/wellhouse/stockroom/internal/models"
)

type suggestCmd struct{}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "show predefined categories, units and item ideas" }
func (*suggestCmd) Usage() string {
	return `stockroom suggest [category]

  Without arguments, lists the predefined categories and units. With a
  category, lists common items for it, ready to pass to "add".
`
}
func (*suggestCmd) SetFlags(*flag.FlagSet) {}

func (c *suggestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	if f.NArg() == 0 {
		fmt.Println("categories:")
		for _, category := range models.PredefinedCategories {
			fmt.Printf("  %s %s\n", category.Icon, category.Label)
		}
		fmt.Printf("units: %s\n", strings.Join(models.PredefinedUnits, ", "))
		return subcommands.ExitSuccess
	}

	category := f.Arg(0)
	items := models.SuggestedItems(category)
	if len(items) == 0 {
		fmt.Printf("no suggestions for %q\n", category)
		return subcommands.ExitSuccess
	}
	for _, item := range items {
		fmt.Printf("  %s %s\n", item.Icon, item.Label)
	}
	return subcommands.ExitSuccess
}
