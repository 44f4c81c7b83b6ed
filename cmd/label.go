package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/resolve"
)

func newLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage labels",
	}

	cmd.AddCommand(newLabelListCmd())
	cmd.AddCommand(newLabelAddCmd())
	cmd.AddCommand(newLabelDeleteCmd())
	return cmd
}

func newLabelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			labels, err := client.ListLabels(ctx)
			if err != nil {
				return err
			}
			return printer.Labels(labels)
		},
	}
}

func newLabelAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			label, err := client.CreateLabel(ctx, args[0], color)
			if err != nil {
				return err
			}
			return printer.Value(label)
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color name")
	return cmd
}

func newLabelDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			labels, err := client.ListLabels(ctx)
			if err != nil {
				return err
			}
			label, err := resolve.ByName(labels, args[0],
				func(l api.Label) string { return l.Name })
			if err != nil {
				return err
			}

			if err := client.DeleteLabel(ctx, label.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted label %s\n", label.Name)
			return nil
		},
	}
}
