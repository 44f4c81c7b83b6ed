package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
		Long: `Manage longer-term goals. Goals are tracked through the batched command
endpoint rather than plain REST calls, so multiple changes submitted together
either all apply or the command reports which one failed.`,
	}

	cmd.AddCommand(newGoalListCmd())
	cmd.AddCommand(newGoalAddCmd())
	cmd.AddCommand(newGoalUpdateCmd())
	cmd.AddCommand(newGoalDeleteCmd())
	return cmd
}

func newGoalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			resp, err := client.ReadResources(ctx, "", []string{"goals"})
			if err != nil {
				return err
			}
			return printer.Goals(resp.Goals)
		},
	}
}

func newGoalAddCmd() *cobra.Command {
	var description, targetDate string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			cmdArgs := map[string]any{"name": args[0]}
			if description != "" {
				cmdArgs["description"] = description
			}
			if targetDate != "" {
				cmdArgs["target_date"] = targetDate
			}

			create := api.NewCreateCommand("goal_add", cmdArgs)
			resp, err := client.ExecuteCommands(ctx, create)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created goal %s (id %s)\n", args[0], resp.ResolveID(create.TempID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Longer free-form description")
	cmd.Flags().StringVar(&targetDate, "target", "", "Target date in YYYY-MM-DD form")
	return cmd
}

func newGoalUpdateCmd() *cobra.Command {
	var name, targetDate string
	var progress int

	cmd := &cobra.Command{
		Use:   "update <goal-id>",
		Short: "Update a goal's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			cmdArgs := map[string]any{"id": args[0]}
			if name != "" {
				cmdArgs["name"] = name
			}
			if targetDate != "" {
				cmdArgs["target_date"] = targetDate
			}
			if cmd.Flags().Changed("progress") {
				cmdArgs["progress"] = progress
			}

			if _, err := client.ExecuteCommands(ctx, api.NewCommand("goal_update", cmdArgs)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated goal %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New goal name")
	cmd.Flags().StringVar(&targetDate, "target", "", "New target date in YYYY-MM-DD form")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage, 0 to 100")
	return cmd
}

func newGoalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>...",
		Short: "Delete goals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			// One batch: either every goal is deleted or the failing
			// command is reported.
			commands := make([]api.Command, 0, len(args))
			for _, id := range args {
				commands = append(commands, api.NewCommand("goal_delete", map[string]any{"id": id}))
			}
			if _, err := client.ExecuteCommands(ctx, commands...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d goal(s)\n", len(args))
			return nil
		},
	}
}
