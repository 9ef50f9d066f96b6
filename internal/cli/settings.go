package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/wellhouse/stockroom/internal/models"
)

type settingsCmd struct {
	owner string
	shop  string
	color string
	theme string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change personalization settings" }
func (*settingsCmd) Usage() string {
	return `stockroom settings [-owner <name>] [-shop <name>] [-theme <name>] [-color <hex>]

  Without flags, prints the effective settings. With flags, updates just
  the given fields and leaves the rest untouched.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner display name.")
	f.StringVar(&c.shop, "shop", "", "Shop name shown on the dashboard.")
	f.StringVar(&c.theme, "theme", "", "Theme name.")
	f.StringVar(&c.color, "color", "", "Theme accent color (hex).")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	partial := models.Settings{
		OwnerName:  c.owner,
		ShopName:   c.shop,
		ThemeName:  c.theme,
		ThemeColor: c.color,
	}

	return withApp(ctx, func(ctx context.Context, app *App) error {
		if !partial.IsZero() {
			if err := app.Personalization.UpdateSettings(ctx, partial); err != nil {
				return err
			}
		}

		settings := app.Personalization.Settings()
		fmt.Printf("owner:  %s\n", settings.OwnerName)
		fmt.Printf("shop:   %s\n", settings.ShopName)
		fmt.Printf("theme:  %s (%s)\n", settings.ThemeName, settings.ThemeColor)
		return nil
	})
}
