package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

func newRegisterCommand(opts *RootOptions) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			if err := app.Actions.Register(cmd.Context(), app.Store, name, email, password); err != nil {
				return err
			}
			return printCurrentUser(app)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (6 or more characters)")
	return cmd
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			if err := app.Actions.Login(cmd.Context(), app.Store, email, password); err != nil {
				return err
			}
			return printCurrentUser(app)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			if err := app.Actions.Logout(app.Store); err != nil {
				return err
			}
			return app.Out.Message("Logged out")
		},
	}
}

func newWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			if err := app.Boot.Run(cmd.Context()); err != nil {
				return err
			}
			return printCurrentUser(app)
		},
	}
}

var errNotLoggedIn = errors.New("not logged in")

func printCurrentUser(app *App) error {
	user := app.Store.State().Auth.User
	if user == nil {
		return errNotLoggedIn
	}
	return app.Out.Print(user, func(w io.Writer) error {
		return writeUser(w, user)
	})
}
