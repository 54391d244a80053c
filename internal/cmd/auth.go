package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"redlytics/internal/session"
)

var usernameFlag = &cli.StringFlag{
	Name:     "username",
	Aliases:  []string{"u"},
	Required: true,
	Sources:  cli.EnvVars("REDLYTICS_USERNAME"),
}

var passwordFlag = &cli.StringFlag{
	Name:     "password",
	Aliases:  []string{"p"},
	Required: true,
	Sources:  cli.EnvVars("REDLYTICS_PASSWORD"),
}

var emailFlag = &cli.StringFlag{
	Name:     "email",
	Required: true,
	Sources:  cli.EnvVars("REDLYTICS_EMAIL"),
}

var loginCmd = &cli.Command{
	Name:  "login",
	Usage: "Log in and store the session token",
	Flags: []cli.Flag{usernameFlag, passwordFlag},
	Action: func(ctx context.Context, c *cli.Command) error {
		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		if err := e.bridge.Login(ctx, c.String("username"), c.String("password")); err != nil {
			return err
		}

		fmt.Printf("logged in as %s\n", e.bridge.User().Username)
		return nil
	},
}

var registerCmd = &cli.Command{
	Name:  "register",
	Usage: "Create an account and store the session token",
	Flags: []cli.Flag{usernameFlag, emailFlag, passwordFlag},
	Action: func(ctx context.Context, c *cli.Command) error {
		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		err = e.bridge.Register(ctx, c.String("username"), c.String("email"), c.String("password"))
		if err != nil {
			return err
		}

		fmt.Printf("registered as %s\n", e.bridge.User().Username)
		return nil
	},
}

var logoutCmd = &cli.Command{
	Name:  "logout",
	Usage: "Drop the stored session token",
	Action: func(ctx context.Context, c *cli.Command) error {
		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		if err := e.bridge.Logout(); err != nil {
			return err
		}

		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cli.Command{
	Name:  "whoami",
	Usage: "Show the current session",
	Action: func(ctx context.Context, c *cli.Command) error {
		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		if e.bridge.Phase() != session.Authenticated {
			fmt.Println("not logged in")
			os.Exit(1)
		}

		user := e.bridge.User()
		fmt.Printf("user: %s\n", user.Username)
		if user.Email != "" {
			fmt.Printf("email: %s\n", user.Email)
		}
		if expiry := e.bridge.TokenExpiry(); !expiry.IsZero() {
			fmt.Printf("token expires: %s\n", expiry.Format("2006-01-02 15:04:05 MST"))
		}
		return nil
	},
}
