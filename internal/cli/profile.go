package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"devconnect/internal/client/actions"
	"devconnect/internal/client/api"

	"github.com/spf13/cobra"
)

func parseUintArg(arg, what string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return uint(id), nil
}

// printProfile renders the profile slice after a successful action.
func printProfile(app *App) error {
	profile := app.Store.State().Profile.Profile
	if profile == nil {
		return errors.New("no profile loaded")
	}
	return app.Out.Print(profile, func(w io.Writer) error {
		return writeProfile(w, profile)
	})
}

func newProfileCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit developer profiles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "me",
		Short: "Show your own profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			_ = app.Boot.Run(cmd.Context())
			if err := app.Actions.GetCurrentProfile(cmd.Context(), app.Store); err != nil {
				return err
			}
			return printProfile(app)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all developer profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			if err := app.Actions.GetProfiles(cmd.Context(), app.Store); err != nil {
				return err
			}
			profiles := app.Store.State().Profile.Profiles
			return app.Out.Print(profiles, func(w io.Writer) error {
				return writeProfiles(w, profiles)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <user_id>",
		Short: "Show the profile of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUintArg(args[0], "user id")
			if err != nil {
				return err
			}
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			if err := app.Actions.GetProfileByID(cmd.Context(), app.Store, userID); err != nil {
				return err
			}
			return printProfile(app)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "github <username>",
		Short: "List the latest GitHub repositories of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			if err := app.Actions.GetGithubRepos(cmd.Context(), app.Store, args[0]); err != nil {
				return err
			}
			repos := app.Store.State().Profile.Repos
			return app.Out.Print(repos, func(w io.Writer) error {
				return writeRepos(w, repos)
			})
		},
	})

	cmd.AddCommand(newProfileUpsertCommand(opts))
	return cmd
}

func newProfileUpsertCommand(opts *RootOptions) *cobra.Command {
	var form api.ProfileForm
	var edit bool
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			_ = app.Boot.Run(cmd.Context())
			if err := app.Actions.CreateProfile(cmd.Context(), app.Store, form, edit); err != nil {
				return err
			}
			return printProfile(app)
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Status, "status", "", "professional status")
	f.StringVar(&form.Skills, "skills", "", "comma separated skills")
	f.StringVar(&form.Company, "company", "", "company")
	f.StringVar(&form.Website, "website", "", "website")
	f.StringVar(&form.Location, "location", "", "location")
	f.StringVar(&form.Bio, "bio", "", "short bio")
	f.StringVar(&form.GithubUsername, "github", "", "GitHub username")
	f.StringVar(&form.YouTube, "youtube", "", "YouTube URL")
	f.StringVar(&form.Twitter, "twitter", "", "Twitter URL")
	f.StringVar(&form.Facebook, "facebook", "", "Facebook URL")
	f.StringVar(&form.LinkedIn, "linkedin", "", "LinkedIn URL")
	f.StringVar(&form.Instagram, "instagram", "", "Instagram URL")
	f.BoolVar(&edit, "edit", false, "editing an existing profile")
	return cmd
}

func newExperienceCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experience",
		Short: "Manage profile experience",
	}

	var form api.ExperienceForm
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an experience entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			_ = app.Boot.Run(cmd.Context())
			if err := app.Actions.AddExperience(cmd.Context(), app.Store, form); err != nil {
				return err
			}
			return printProfile(app)
		},
	}
	f := add.Flags()
	f.StringVar(&form.Title, "title", "", "job title")
	f.StringVar(&form.Company, "company", "", "company")
	f.StringVar(&form.Location, "location", "", "location")
	f.StringVar(&form.From, "from", "", "start date (YYYY-MM-DD)")
	f.StringVar(&form.To, "to", "", "end date (YYYY-MM-DD)")
	f.BoolVar(&form.Current, "current", false, "current job")
	f.StringVar(&form.Description, "description", "", "description")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an experience entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			_ = app.Boot.Run(cmd.Context())
			if err := app.Actions.DeleteExperience(cmd.Context(), app.Store, args[0]); err != nil {
				return err
			}
			return printProfile(app)
		},
	})
	return cmd
}

func newEducationCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "education",
		Short: "Manage profile education",
	}

	var form api.EducationForm
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an education entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			_ = app.Boot.Run(cmd.Context())
			if err := app.Actions.AddEducation(cmd.Context(), app.Store, form); err != nil {
				return err
			}
			return printProfile(app)
		},
	}
	f := add.Flags()
	f.StringVar(&form.School, "school", "", "school or bootcamp")
	f.StringVar(&form.Degree, "degree", "", "degree or certificate")
	f.StringVar(&form.FieldOfStudy, "field", "", "field of study")
	f.StringVar(&form.From, "from", "", "start date (YYYY-MM-DD)")
	f.StringVar(&form.To, "to", "", "end date (YYYY-MM-DD)")
	f.BoolVar(&form.Current, "current", false, "currently studying")
	f.StringVar(&form.Description, "description", "", "description")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an education entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			_ = app.Boot.Run(cmd.Context())
			if err := app.Actions.DeleteEducation(cmd.Context(), app.Store, args[0]); err != nil {
				return err
			}
			return printProfile(app)
		},
	})
	return cmd
}

func newAccountCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your account",
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Permanently delete your account, profile and posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, opts, appConfig{assumeYes: yes})
			defer app.Close()
			_ = app.Boot.Run(cmd.Context())
			err := app.Actions.DeleteAccount(cmd.Context(), app.Store)
			if errors.Is(err, actions.ErrDeclined) {
				return app.Out.Message("Aborted")
			}
			if err != nil {
				return err
			}
			return app.Out.Message("Account deleted")
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.AddCommand(del)
	return cmd
}
