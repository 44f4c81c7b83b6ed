package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
)

func newReminderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Manage task reminders",
	}

	cmd.AddCommand(newReminderListCmd())
	cmd.AddCommand(newReminderAddCmd())
	cmd.AddCommand(newReminderDeleteCmd())
	return cmd
}

func newReminderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			resp, err := client.ReadResources(ctx, "", []string{"reminders"})
			if err != nil {
				return err
			}
			return printer.Reminders(resp.Reminders)
		},
	}
}

func newReminderAddCmd() *cobra.Command {
	var due string
	var minuteOffset int

	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Attach a reminder to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if due == "" && !cmd.Flags().Changed("before") {
				return fmt.Errorf("either --at or --before is required")
			}

			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			cmdArgs := map[string]any{"task_id": args[0]}
			if due != "" {
				cmdArgs["due"] = due
			} else {
				cmdArgs["minute_offset"] = minuteOffset
			}

			create := api.NewCreateCommand("reminder_add", cmdArgs)
			resp, err := client.ExecuteCommands(ctx, create)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created reminder %s\n", resp.ResolveID(create.TempID))
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "at", "", "Absolute reminder time, RFC 3339")
	cmd.Flags().IntVar(&minuteOffset, "before", 0, "Minutes before the task's due time")
	return cmd
}

func newReminderDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <reminder-id>...",
		Short: "Delete reminders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			commands := make([]api.Command, 0, len(args))
			for _, id := range args {
				commands = append(commands, api.NewCommand("reminder_delete", map[string]any{"id": id}))
			}
			if _, err := client.ExecuteCommands(ctx, commands...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d reminder(s)\n", len(args))
			return nil
		},
	}
}
