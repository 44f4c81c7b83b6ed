package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/tokenstore"
)

// rootCmd represents the base command for the taskdeck application
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Command-line client for the Taskdeck task management service",
	Long: `taskdeck manages your Taskdeck tasks, projects, labels, goals and
reminders from the terminal.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants

Run 'taskdeck auth login' first to authorize the CLI with your account.`,
	SilenceUsage: true,
}

var outputFormat string

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "taskdeck version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format: text, json or ndjson")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newTaskCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newLabelCmd())
	rootCmd.AddCommand(newSectionCmd())
	rootCmd.AddCommand(newGoalCmd())
	rootCmd.AddCommand(newReminderCmd())
	rootCmd.AddCommand(newFilterCmd())
	rootCmd.AddCommand(newNotificationCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("taskdeck version %s\n", version)
		},
	}
}

// loadConfig loads the merged configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// apiClient builds an authenticated API client from the saved token.
func apiClient(cfg config.Config) (*api.Client, error) {
	store, err := tokenstore.New()
	if err != nil {
		return nil, err
	}
	token, ok, err := store.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("not logged in, run 'taskdeck auth login' first")
	}
	return api.NewClient(cfg.APIBaseURL, token), nil
}

// clientAndPrinter is the common setup for listing and mutation commands.
func clientAndPrinter(cmd *cobra.Command) (context.Context, *api.Client, *output.Printer, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := apiClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	printer := &output.Printer{Format: format, W: cmd.OutOrStdout()}
	return cmd.Context(), client, printer, nil
}
