package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/resolve"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskShowCmd())
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	cmd.AddCommand(newTaskCloseCmd())
	cmd.AddCommand(newTaskReopenCmd())
	cmd.AddCommand(newTaskDeleteCmd())
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var projectName, label string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			filter := api.TaskFilter{Label: label}
			if projectName != "" {
				projects, err := client.ListProjects(ctx)
				if err != nil {
					return err
				}
				project, err := resolve.ByName(projects, projectName,
					func(p api.Project) string { return p.Name })
				if err != nil {
					return err
				}
				filter.ProjectID = project.ID
			}

			tasks, err := client.ListTasks(ctx, filter)
			if err != nil {
				return err
			}
			return printer.Tasks(tasks)
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "Only tasks in this project (by name)")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Only tasks carrying this label")
	return cmd
}

func newTaskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			task, err := client.GetTask(ctx, args[0])
			if err != nil {
				return err
			}
			return printer.Value(task)
		},
	}
}

func newTaskAddCmd() *cobra.Command {
	var (
		description string
		projectName string
		dueDate     string
		priority    int
		labels      []string
	)

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			input := api.TaskInput{
				Content:     strings.Join(args, " "),
				Description: description,
				DueDate:     dueDate,
				Priority:    priority,
				Labels:      labels,
			}
			if projectName != "" {
				projects, err := client.ListProjects(ctx)
				if err != nil {
					return err
				}
				project, err := resolve.ByName(projects, projectName,
					func(p api.Project) string { return p.Name })
				if err != nil {
					return err
				}
				input.ProjectID = project.ID
			}

			task, err := client.CreateTask(ctx, input)
			if err != nil {
				return err
			}
			return printer.Value(task)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Longer free-form description")
	cmd.Flags().StringVarP(&projectName, "project", "p", "", "Project to create the task in (by name)")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date in YYYY-MM-DD form")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority from 1 (normal) to 4 (urgent)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Label names to apply (repeatable)")
	return cmd
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		content     string
		description string
		dueDate     string
		priority    int
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, printer, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			task, err := client.UpdateTask(ctx, args[0], api.TaskInput{
				Content:     content,
				Description: description,
				DueDate:     dueDate,
				Priority:    priority,
			})
			if err != nil {
				return err
			}
			return printer.Value(task)
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "New task content")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&dueDate, "due", "", "New due date in YYYY-MM-DD form")
	cmd.Flags().IntVar(&priority, "priority", 0, "New priority from 1 to 4")
	return cmd
}

func newTaskCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <task-id>...",
		Short: "Mark tasks as completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			for _, id := range args {
				if err := client.CloseTask(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Closed %s\n", id)
			}
			return nil
		},
	}
}

func newTaskReopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <task-id>...",
		Short: "Reopen completed tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			for _, id := range args {
				if err := client.ReopenTask(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s\n", id)
			}
			return nil
		},
	}
}

func newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>...",
		Short: "Permanently delete tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, client, _, err := clientAndPrinter(cmd)
			if err != nil {
				return err
			}

			for _, id := range args {
				if err := client.DeleteTask(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			}
			return nil
		},
	}
}
