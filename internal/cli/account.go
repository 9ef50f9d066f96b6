package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type signupCmd struct {
	email    string
	name     string
	password string
}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "create an account and sync local data to it" }
func (*signupCmd) Usage() string {
	return `stockroom signup -email <email> -name <name> -password <password>

  Creates an account and signs in. Anything stocked while anonymous is
  moved into the account during sign-in.
`
}

func (c *signupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email address.")
	f.StringVar(&c.name, "name", "", "Display name.")
	f.StringVar(&c.password, "password", "", "Password (8 characters minimum).")
}

func (c *signupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.name == "" || c.password == "" {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(ctx context.Context, app *App) error {
		if err := app.requireRemote(); err != nil {
			return err
		}
		user, token, err := app.Auth.SignUp(ctx, c.email, c.name, c.password)
		if err != nil {
			return err
		}
		if err := app.saveSession(token); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
		fmt.Printf("signed up as %s <%s>\n", user.DisplayName, user.Email)
		return nil
	})
}

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in to an existing account" }
func (*loginCmd) Usage() string {
	return "stockroom login -email <email> -password <password>\n"
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email address.")
	f.StringVar(&c.password, "password", "", "Password.")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.password == "" {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(ctx context.Context, app *App) error {
		if err := app.requireRemote(); err != nil {
			return err
		}
		user, token, err := app.Auth.LogIn(ctx, c.email, c.password)
		if err != nil {
			return err
		}
		if err := app.saveSession(token); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
		fmt.Printf("logged in as %s <%s>\n", user.DisplayName, user.Email)
		return nil
	})
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "end the current session" }
func (*logoutCmd) Usage() string {
	return "stockroom logout\n"
}
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, app *App) error {
		app.Auth.LogOut()
		if err := app.dropSession(); err != nil {
			return fmt.Errorf("failed to drop session: %w", err)
		}
		fmt.Println("logged out")
		return nil
	})
}
