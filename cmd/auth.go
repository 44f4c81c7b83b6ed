package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/browser"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/tokenstore"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication with the Taskdeck service",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthStatusCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in via your browser",
		Long: `Open your browser to authorize the CLI with your Taskdeck account.

The CLI listens on a loopback port for the authorization redirect and never
sees your password. The resulting access token is stored locally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := tokenstore.New()
			if err != nil {
				return err
			}

			flow := &auth.LoginFlow{
				OAuth: &oauth2.Config{
					ClientID: config.ClientID,
					Endpoint: oauth2.Endpoint{
						AuthURL:  cfg.AuthURL,
						TokenURL: cfg.TokenURL,
					},
					RedirectURL: cfg.RedirectURI(),
					Scopes:      []string{config.Scope},
				},
				Store:       store,
				OpenBrowser: browser.OpenURL,
				Port:        cfg.CallbackPort,
				Timeout:     timeout,
				Out:         cmd.OutOrStdout(),
			}

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = " Waiting for authorization in your browser..."
			s.Start()
			err = flow.Run(cmd.Context())
			s.Stop()

			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", auth.DefaultCallbackTimeout,
		"How long to wait for the browser authorization")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := tokenstore.New()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the CLI is logged in",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := tokenstore.New()
			if err != nil {
				return err
			}
			token, ok, err := store.Load()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in. Run 'taskdeck auth login'.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in. %s\n", logging.SanitizeToken(token))
			return nil
		},
	}
}
