package task_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/server"
	"github.com/taskdeck/taskdeck/internal/tools/batch"
)

// RegisterTaskTools registers all task, project, label and section tools.
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerTaskTools(s, sc, readOnly)
	registerProjectTools(s, sc, readOnly)
	registerLabelTools(s, sc, readOnly)
	registerSectionTools(s, sc, readOnly)
	return nil
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func intArg(args map[string]any, key string) int {
	// JSON numbers arrive as float64.
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func registerTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("task_list",
		mcp.WithDescription("List active tasks, optionally filtered by project id or label name"),
		mcp.WithString("projectId",
			mcp.Description("Only return tasks in this project"),
		),
		mcp.WithString("label",
			mcp.Description("Only return tasks carrying this label"),
		),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tasks, err := client.ListTasks(ctx, api.TaskFilter{
			ProjectID: stringArg(args, "projectId"),
			Label:     stringArg(args, "label"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
		}
		return jsonResult(tasks), nil
	})

	getTool := mcp.NewTool("task_get",
		mcp.WithDescription("Get details of a single task"),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to retrieve"),
		),
	)

	s.AddTool(getTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		taskID := stringArg(args, "taskId")
		if taskID == "" {
			return mcp.NewToolResultError("taskId is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := client.GetTask(ctx, taskID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get task: %v", err)), nil
		}
		return jsonResult(task), nil
	})

	if readOnly {
		return
	}

	createTool := mcp.NewTool("task_create",
		mcp.WithDescription("Create a new task"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The task content, e.g. 'Buy milk'"),
		),
		mcp.WithString("description",
			mcp.Description("Longer free-form description"),
		),
		mcp.WithString("projectId",
			mcp.Description("Project to create the task in (default: inbox)"),
		),
		mcp.WithString("dueDate",
			mcp.Description("Due date in YYYY-MM-DD form"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority from 1 (normal) to 4 (urgent)"),
		),
		mcp.WithArray("labels",
			mcp.Description("Label names to apply"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		content := stringArg(args, "content")
		if content == "" {
			return mcp.NewToolResultError("content is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := client.CreateTask(ctx, api.TaskInput{
			Content:     content,
			Description: stringArg(args, "description"),
			ProjectID:   stringArg(args, "projectId"),
			DueDate:     stringArg(args, "dueDate"),
			Priority:    intArg(args, "priority"),
			Labels:      stringSliceArg(args, "labels"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
		}
		return jsonResult(task), nil
	})

	updateTool := mcp.NewTool("task_update",
		mcp.WithDescription("Update fields of an existing task; omitted fields are left unchanged"),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to update"),
		),
		mcp.WithString("content",
			mcp.Description("New task content"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("dueDate",
			mcp.Description("New due date in YYYY-MM-DD form"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority from 1 to 4"),
		),
	)

	s.AddTool(updateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		taskID := stringArg(args, "taskId")
		if taskID == "" {
			return mcp.NewToolResultError("taskId is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := client.UpdateTask(ctx, taskID, api.TaskInput{
			Content:     stringArg(args, "content"),
			Description: stringArg(args, "description"),
			DueDate:     stringArg(args, "dueDate"),
			Priority:    intArg(args, "priority"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
		}
		return jsonResult(task), nil
	})

	closeTool := mcp.NewTool("task_close",
		mcp.WithDescription("Mark one or more tasks as completed"),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("A task ID or array of task IDs to close"),
		),
	)

	s.AddTool(closeTool, batchHandler(sc, "taskIds", func(ctx context.Context, client *api.Client, id string) (string, error) {
		if err := client.CloseTask(ctx, id); err != nil {
			return "", err
		}
		return "closed", nil
	}))

	reopenTool := mcp.NewTool("task_reopen",
		mcp.WithDescription("Reopen one or more completed tasks"),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("A task ID or array of task IDs to reopen"),
		),
	)

	s.AddTool(reopenTool, batchHandler(sc, "taskIds", func(ctx context.Context, client *api.Client, id string) (string, error) {
		if err := client.ReopenTask(ctx, id); err != nil {
			return "", err
		}
		return "reopened", nil
	}))

	deleteTool := mcp.NewTool("task_delete",
		mcp.WithDescription("Permanently delete one or more tasks"),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("A task ID or array of task IDs to delete"),
		),
	)

	s.AddTool(deleteTool, batchHandler(sc, "taskIds", func(ctx context.Context, client *api.Client, id string) (string, error) {
		if err := client.DeleteTask(ctx, id); err != nil {
			return "", err
		}
		return "deleted", nil
	}))
}

// batchHandler wraps a per-id operation into a tool handler accepting a
// string or array id argument.
func batchHandler(sc *server.ServerContext, paramName string, fn func(ctx context.Context, client *api.Client, id string) (string, error)) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		ids, err := batch.ParseIDs(args[paramName], paramName)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := batch.Process(ids, func(id string) (string, error) {
			return fn(ctx, client, id)
		})
		return mcp.NewToolResultText(batch.Format(results)), nil
	}
}

func registerProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("project_list",
		mcp.WithDescription("List all projects"),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		projects, err := client.ListProjects(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
		}
		return jsonResult(projects), nil
	})

	if readOnly {
		return
	}

	createTool := mcp.NewTool("project_create",
		mcp.WithDescription("Create a new project"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The project name"),
		),
		mcp.WithString("color",
			mcp.Description("Display color name"),
		),
		mcp.WithString("parentId",
			mcp.Description("Parent project for nesting"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		name := stringArg(args, "name")
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		project, err := client.CreateProject(ctx, api.ProjectInput{
			Name:     name,
			Color:    stringArg(args, "color"),
			ParentID: stringArg(args, "parentId"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create project: %v", err)), nil
		}
		return jsonResult(project), nil
	})

	deleteTool := mcp.NewTool("project_delete",
		mcp.WithDescription("Permanently delete a project and its tasks"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project to delete"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		projectID := stringArg(args, "projectId")
		if projectID == "" {
			return mcp.NewToolResultError("projectId is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteProject(ctx, projectID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete project: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Project %s deleted", projectID)), nil
	})
}

func registerLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("label_list",
		mcp.WithDescription("List all labels"),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		labels, err := client.ListLabels(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list labels: %v", err)), nil
		}
		return jsonResult(labels), nil
	})

	if readOnly {
		return
	}

	createTool := mcp.NewTool("label_create",
		mcp.WithDescription("Create a new label"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The label name"),
		),
		mcp.WithString("color",
			mcp.Description("Display color name"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		name := stringArg(args, "name")
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		label, err := client.CreateLabel(ctx, name, stringArg(args, "color"))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create label: %v", err)), nil
		}
		return jsonResult(label), nil
	})

	deleteTool := mcp.NewTool("label_delete",
		mcp.WithDescription("Delete a label"),
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label to delete"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		labelID := stringArg(args, "labelId")
		if labelID == "" {
			return mcp.NewToolResultError("labelId is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteLabel(ctx, labelID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete label: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Label %s deleted", labelID)), nil
	})
}

func registerSectionTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("section_list",
		mcp.WithDescription("List the sections of a project"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The project whose sections to list"),
		),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		projectID := stringArg(args, "projectId")
		if projectID == "" {
			return mcp.NewToolResultError("projectId is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sections, err := client.ListSections(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list sections: %v", err)), nil
		}
		return jsonResult(sections), nil
	})

	if readOnly {
		return
	}

	createTool := mcp.NewTool("section_create",
		mcp.WithDescription("Create a section within a project"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The project to create the section in"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The section name"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		projectID := stringArg(args, "projectId")
		name := stringArg(args, "name")
		if projectID == "" || name == "" {
			return mcp.NewToolResultError("projectId and name are required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		section, err := client.CreateSection(ctx, projectID, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create section: %v", err)), nil
		}
		return jsonResult(section), nil
	})

	deleteTool := mcp.NewTool("section_delete",
		mcp.WithDescription("Delete a section; its tasks move to the project root"),
		mcp.WithString("sectionId",
			mcp.Required(),
			mcp.Description("The ID of the section to delete"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		sectionID := stringArg(args, "sectionId")
		if sectionID == "" {
			return mcp.NewToolResultError("sectionId is required"), nil
		}

		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteSection(ctx, sectionID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete section: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Section %s deleted", sectionID)), nil
	})
}
