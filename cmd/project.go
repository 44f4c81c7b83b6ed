package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/resolve"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectShowCmd())
	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectDeleteCmd())
	return cmd
}

func newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			projects, err := client.ListProjects(ctx)
			if err != nil {
				return err
			}
			return printer.Projects(projects)
		},
	}
}

func newProjectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a project by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			projects, err := client.ListProjects(ctx)
			if err != nil {
				return err
			}
			project, err := resolve.ByName(projects, args[0],
				func(p api.Project) string { return p.Name })
			if err != nil {
				return err
			}
			return printer.Value(project)
		},
	}
}

func newProjectAddCmd() *cobra.Command {
	var color, parentName string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			input := api.ProjectInput{Name: args[0], Color: color}
			if parentName != "" {
				projects, err := client.ListProjects(ctx)
				if err != nil {
					return err
				}
				parent, err := resolve.ByName(projects, parentName,
					func(p api.Project) string { return p.Name })
				if err != nil {
					return err
				}
				input.ParentID = parent.ID
			}

			project, err := client.CreateProject(ctx, input)
			if err != nil {
				return err
			}
			return printer.Value(project)
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color name")
	cmd.Flags().StringVar(&parentName, "parent", "", "Parent project for nesting (by name)")
	return cmd
}

func newProjectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Permanently delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			projects, err := client.ListProjects(ctx)
			if err != nil {
				return err
			}
			project, err := resolve.ByName(projects, args[0],
				func(p api.Project) string { return p.Name })
			if err != nil {
				return err
			}

			if err := client.DeleteProject(ctx, project.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", project.Name)
			return nil
		},
	}
}
