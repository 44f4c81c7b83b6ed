package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
)

func newNotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notification",
		Short: "Manage live notifications",
	}

	cmd.AddCommand(newNotificationListCmd())
	cmd.AddCommand(newNotificationMarkReadCmd())
	return cmd
}

func newNotificationListCmd() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			resp, err := client.ReadResources(ctx, "", []string{"live_notifications"})
			if err != nil {
				return err
			}

			notifications := resp.Notifications
			if unreadOnly {
				unread := notifications[:0]
				for _, n := range notifications {
					if !n.IsRead {
						unread = append(unread, n)
					}
				}
				notifications = unread
			}
			return printer.Notifications(notifications)
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only show unread notifications")
	return cmd
}

func newNotificationMarkReadCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "mark-read [notification-id]...",
		Short: "Mark notifications as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("provide notification ids or --all")
			}

			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			if all {
				if _, err := client.ExecuteCommands(ctx, api.NewCommand("notification_mark_read_all", nil)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Marked all notifications read")
				return nil
			}

			commands := make([]api.Command, 0, len(args))
			for _, id := range args {
				commands = append(commands, api.NewCommand("notification_mark_read", map[string]any{"id": id}))
			}
			if _, err := client.ExecuteCommands(ctx, commands...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d notification(s) read\n", len(args))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Mark every notification read")
	return cmd
}
