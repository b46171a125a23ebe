// Package cli implements the devconnect command line client.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"devconnect/internal/client/actions"
	"devconnect/internal/client/api"
	"devconnect/internal/client/session"
	"devconnect/internal/client/state"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultAPIURL is the API base URL used when none is configured.
const DefaultAPIURL = "http://localhost:5000"

// RootOptions holds the resolved global settings.
type RootOptions struct {
	Format    string
	APIURL    string
	TokenFile string
	Timeout   time.Duration
}

// NewRootCommand creates the devconnect command tree. Settings resolve from
// flags first, then DEVCONNECT_API_URL, DEVCONNECT_TOKEN_FILE and
// DEVCONNECT_TIMEOUT.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()
	v.SetEnvPrefix("DEVCONNECT")
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "devconnect",
		Short:        "DevConnect command line client",
		Long:         "Manage your DevConnect developer profile, browse other developers and join the post feed.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.APIURL = v.GetString("api_url")
			opts.TokenFile = v.GetString("token_file")
			opts.Timeout = v.GetDuration("timeout")
			if opts.TokenFile == "" {
				path, err := session.DefaultTokenPath()
				if err != nil {
					return err
				}
				opts.TokenFile = path
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	flags.String("api", DefaultAPIURL, "API base URL")
	flags.String("token-file", "", "token file (default ~/.devconnect/token)")
	flags.Duration("timeout", api.DefaultTimeout, "request timeout")
	_ = v.BindPFlag("api_url", flags.Lookup("api"))
	_ = v.BindPFlag("token_file", flags.Lookup("token-file"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))

	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newWhoamiCommand(opts))
	cmd.AddCommand(newProfileCommand(opts))
	cmd.AddCommand(newExperienceCommand(opts))
	cmd.AddCommand(newEducationCommand(opts))
	cmd.AddCommand(newAccountCommand(opts))
	cmd.AddCommand(newPostCommand(opts))

	return cmd
}

// App is the client wiring of one command invocation.
type App struct {
	Store   *state.Store
	Client  *api.Client
	Tokens  *session.FileTokenStore
	Actions *actions.Actions
	Boot    *session.Bootstrapper
	Out     *OutputFormatter

	unsubscribe func()
}

// appConfig carries per command collaborators.
type appConfig struct {
	assumeYes bool
}

func newApp(cmd *cobra.Command, opts *RootOptions, cfg appConfig) *App {
	store := state.NewStore()
	client := api.NewClient(opts.APIURL, opts.Timeout)
	tokens := session.NewFileTokenStore(opts.TokenFile)
	errOut := cmd.ErrOrStderr()

	a := actions.New(client,
		actions.WithTokenStore(tokens),
		actions.WithNavigator(terminalNavigator{w: errOut}),
		actions.WithConfirmer(promptConfirmer{in: cmd.InOrStdin(), out: errOut, assumeYes: cfg.assumeYes}),
	)

	app := &App{
		Store:   store,
		Client:  client,
		Tokens:  tokens,
		Actions: a,
		Boot:    session.NewBootstrapper(tokens, client, a, store),
		Out:     &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
	}
	app.unsubscribe = store.Subscribe(newAlertPrinter(errOut).print)
	return app
}

// Close detaches the alert printer.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// alertPrinter writes every new alert once to w.
type alertPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	seen map[string]bool
}

func newAlertPrinter(w io.Writer) *alertPrinter {
	return &alertPrinter{w: w, seen: make(map[string]bool)}
}

func (p *alertPrinter) print(s state.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, alert := range s.Alerts {
		if p.seen[alert.ID] {
			continue
		}
		p.seen[alert.ID] = true
		fmt.Fprintf(p.w, "[%s] %s\n", alert.Type, alert.Msg)
	}
}

var viewHints = map[string]string{
	actions.DashboardPath: "devconnect profile me",
}

// terminalNavigator turns a navigation into a hint for the next command.
type terminalNavigator struct {
	w io.Writer
}

func (n terminalNavigator) Navigate(path string) {
	if hint, ok := viewHints[path]; ok {
		fmt.Fprintf(n.w, "Next: %s\n", hint)
	}
}

// promptConfirmer asks on the terminal unless assumeYes is set.
type promptConfirmer struct {
	in        io.Reader
	out       io.Writer
	assumeYes bool
}

func (c promptConfirmer) Confirm(prompt string) bool {
	if c.assumeYes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(c.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
