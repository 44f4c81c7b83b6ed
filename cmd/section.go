package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/resolve"
)

func newSectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage project sections",
	}

	cmd.AddCommand(newSectionListCmd())
	cmd.AddCommand(newSectionAddCmd())
	cmd.AddCommand(newSectionDeleteCmd())
	return cmd
}

// projectByName resolves a project name to the full project record.
func projectByName(cmd *cobra.Command, name string) (*api.Project, *api.Client, error) {
	ctx, client, _, err := clientAndPrinter(cmd)
	if err != nil {
		return nil, nil, err
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return nil, nil, err
	}
	project, err := resolve.ByName(projects, name,
		func(p api.Project) string { return p.Name })
	if err != nil {
		return nil, nil, err
	}
	return &project, client, nil
}

func newSectionListCmd() *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sections of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			projects, err := client.ListProjects(ctx)
			if err != nil {
				return err
			}
			project, err := resolve.ByName(projects, projectName,
				func(p api.Project) string { return p.Name })
			if err != nil {
				return err
			}

			sections, err := client.ListSections(ctx, project.ID)
			if err != nil {
				return err
			}
			return printer.Sections(sections)
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "The project whose sections to list (by name)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newSectionAddCmd() *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a section within a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, client, err := projectByName(cmd, projectName)
			if err != nil {
				return err
			}

			section, err := client.CreateSection(cmd.Context(), project.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created section %s in %s\n", section.Name, project.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "The project to create the section in (by name)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newSectionDeleteCmd() *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a section; its tasks move to the project root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, client, err := projectByName(cmd, projectName)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			sections, err := client.ListSections(ctx, project.ID)
			if err != nil {
				return err
			}
			section, err := resolve.ByName(sections, args[0],
				func(s api.Section) string { return s.Name })
			if err != nil {
				return err
			}

			if err := client.DeleteSection(ctx, section.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted section %s\n", section.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "The project the section belongs to (by name)")
	cmd.MarkFlagRequired("project")
	return cmd
}
