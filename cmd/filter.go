package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
)

func newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Manage saved filters",
	}

	cmd.AddCommand(newFilterListCmd())
	cmd.AddCommand(newFilterAddCmd())
	cmd.AddCommand(newFilterUpdateCmd())
	cmd.AddCommand(newFilterDeleteCmd())
	return cmd
}

func newFilterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all saved filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			resp, err := client.ReadResources(ctx, "", []string{"filters"})
			if err != nil {
				return err
			}
			return printer.Filters(resp.Filters)
		},
	}
}

func newFilterAddCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a saved filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			create := api.NewCreateCommand("filter_add", map[string]any{
				"name":  args[0],
				"query": query,
			})
			resp, err := client.ExecuteCommands(ctx, create)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created filter %s (id %s)\n", args[0], resp.ResolveID(create.TempID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "The search query, e.g. 'p1 & @work'")
	cmd.MarkFlagRequired("query")
	return cmd
}

func newFilterUpdateCmd() *cobra.Command {
	var name, query string

	cmd := &cobra.Command{
		Use:   "update <filter-id>",
		Short: "Update a saved filter",
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
			if query != "" {
				cmdArgs["query"] = query
			}

			if _, err := client.ExecuteCommands(ctx, api.NewCommand("filter_update", cmdArgs)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated filter %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New filter name")
	cmd.Flags().StringVarP(&query, "query", "q", "", "New search query")
	return cmd
}

func newFilterDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <filter-id>...",
		Short: "Delete saved filters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			commands := make([]api.Command, 0, len(args))
			for _, id := range args {
				commands = append(commands, api.NewCommand("filter_delete", map[string]any{"id": id}))
			}
			if _, err := client.ExecuteCommands(ctx, commands...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d filter(s)\n", len(args))
			return nil
		},
	}
}
