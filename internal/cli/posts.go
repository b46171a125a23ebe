package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newPostCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Read and write the post feed",
	}

	// run builds the app, bootstraps the session and runs fn.
	run := func(fn func(cmd *cobra.Command, app *App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app := newApp(cmd, opts, appConfig{})
			defer app.Close()
			_ = app.Boot.Run(cmd.Context())
			return fn(cmd, app, args)
		}
	}

	printFeed := func(app *App) error {
		posts := app.Store.State().Post.Posts
		return app.Out.Print(posts, func(w io.Writer) error {
			return writePosts(w, posts)
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the feed, newest first",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, app *App, _ []string) error {
			if err := app.Actions.GetPosts(cmd.Context(), app.Store); err != nil {
				return err
			}
			return printFeed(app)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, app *App, args []string) error {
			id, err := parseUintArg(args[0], "post id")
			if err != nil {
				return err
			}
			if err := app.Actions.GetPost(cmd.Context(), app.Store, id); err != nil {
				return err
			}
			post := app.Store.State().Post.Post
			if post == nil {
				return errors.New("no post loaded")
			}
			return app.Out.Print(post, func(w io.Writer) error {
				return writePost(w, post)
			})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <text>",
		Short: "Publish a post",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(cmd *cobra.Command, app *App, args []string) error {
			if err := app.Actions.AddPost(cmd.Context(), app.Store, strings.Join(args, " ")); err != nil {
				return err
			}
			return printFeed(app)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, app *App, args []string) error {
			id, err := parseUintArg(args[0], "post id")
			if err != nil {
				return err
			}
			if err := app.Actions.DeletePost(cmd.Context(), app.Store, id); err != nil {
				return err
			}
			return app.Out.Message("Post removed")
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "like <id>",
		Short: "Like a post",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, app *App, args []string) error {
			id, err := parseUintArg(args[0], "post id")
			if err != nil {
				return err
			}
			if err := app.Actions.AddLike(cmd.Context(), app.Store, id); err != nil {
				return err
			}
			return app.Out.Message("Post liked")
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unlike <id>",
		Short: "Remove your like from a post",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, app *App, args []string) error {
			id, err := parseUintArg(args[0], "post id")
			if err != nil {
				return err
			}
			if err := app.Actions.RemoveLike(cmd.Context(), app.Store, id); err != nil {
				return err
			}
			return app.Out.Message("Like removed")
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(cmd *cobra.Command, app *App, args []string) error {
			id, err := parseUintArg(args[0], "post id")
			if err != nil {
				return err
			}
			if err := app.Actions.AddComment(cmd.Context(), app.Store, id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			return app.Out.Message("Comment added")
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "uncomment <post_id> <comment_id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, app *App, args []string) error {
			postID, err := parseUintArg(args[0], "post id")
			if err != nil {
				return err
			}
			commentID, err := parseUintArg(args[1], "comment id")
			if err != nil {
				return err
			}
			if err := app.Actions.DeleteComment(cmd.Context(), app.Store, postID, commentID); err != nil {
				return err
			}
			return app.Out.Message("Comment removed")
		}),
	})

	return cmd
}
