package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atinyakov/postboard/internal/binder"
	"github.com/atinyakov/postboard/internal/client"
	"github.com/atinyakov/postboard/internal/logger"
	"github.com/spf13/cobra"
)

// errNotified is returned after the failure text was already printed.
var errNotified = errors.New("request failed")

type app struct {
	out     io.Writer
	prompt  client.Prompter
	cfgPath string
	baseURL string
	verbose bool
}

func newRootCmd(out io.Writer, prompt client.Prompter) *cobra.Command {
	a := &app{out: out, prompt: prompt}

	root := &cobra.Command{
		Use:           "postboard",
		Short:         "Manage users and posts on a postboard server",
		Version:       fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.cfgPath, "config", client.DefaultPath(), "client config file")
	root.PersistentFlags().StringVar(&a.baseURL, "url", "", "server base URL (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(a.loginCmd(), a.logoutCmd(), a.deleteCmd(), a.editCmd())
	return root
}

func (a *app) loadConfig() (*client.Config, error) {
	cfg, err := client.LoadConfig(a.cfgPath)
	if err != nil {
		return nil, err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	return cfg, nil
}

// run performs ev through a binder bound to the saved session. It fails
// whenever the terminal was notified, even with an empty message.
func (a *app) run(ctx context.Context, ev binder.Event) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	httpClient, err := client.NewHTTPClient(cfg.CAFile)
	if err != nil {
		return err
	}

	log := logger.New()
	if a.verbose {
		if err := log.Init("debug"); err != nil {
			return err
		}
		defer func() { _ = log.Log.Sync() }()
	}

	term := client.NewTerminal(a.out)
	opts := []binder.Option{binder.WithHTTPClient(httpClient), binder.WithLogger(log.Log)}
	if cfg.Session != "" {
		opts = append(opts, binder.WithHeader("Cookie", client.CookieHeader(cfg.Session)))
	}
	b := binder.New(cfg.BaseURL, term, term, opts...)

	err = b.Run(ctx, ev)
	var f *binder.Failure
	switch {
	case errors.As(err, &f) && f.Err != nil:
		// No response, so the terminal showed nothing; report the cause.
		return f
	case err != nil && f == nil:
		return err
	case term.Notified():
		return errNotified
	}
	return nil
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var err error
			if email == "" {
				if email, err = a.prompt.Input(ctx, "Email:"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt.Password(ctx, "Password:"); err != nil {
					return err
				}
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			httpClient, err := client.NewHTTPClient(cfg.CAFile)
			if err != nil {
				return err
			}
			sid, err := client.Login(ctx, httpClient, cfg.BaseURL, email, password)
			if err != nil {
				return err
			}
			cfg.Session = sid
			if err := cfg.Save(a.cfgPath); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session on the server and forget it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Session == "" {
				return nil
			}

			var logoutErr error
			httpClient, err := client.NewHTTPClient(cfg.CAFile)
			if err == nil {
				logoutErr = client.Logout(cmd.Context(), httpClient, cfg.BaseURL, cfg.Session)
			} else {
				logoutErr = err
			}

			// The local session is dropped even when the server is unreachable.
			if err := a.forgetSession(); err != nil {
				return err
			}
			return logoutErr
		},
	}
}

// forgetSession clears the saved session, keeping the rest of the config.
func (a *app) forgetSession() error {
	cfg, err := client.LoadConfig(a.cfgPath)
	if err != nil {
		return err
	}
	if cfg.Session == "" {
		return nil
	}
	cfg.Session = ""
	return cfg.Save(a.cfgPath)
}
