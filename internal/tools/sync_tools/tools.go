package sync_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/server"
)

// RegisterSyncTools registers the tools backed by the batched command
// endpoint.
func RegisterSyncTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerGoalTools(s, sc, readOnly)
	registerReminderTools(s, sc, readOnly)
	registerFilterTools(s, sc, readOnly)
	registerNotificationTools(s, sc, readOnly)
	return nil
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

// listHandler fetches one resource type and renders the matching slice of
// the response.
func listHandler(sc *server.ServerContext, resourceType string, pick func(*api.SyncResponse) any) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.APIClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resp, err := client.ReadResources(ctx, "", []string{resourceType})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list %s: %v", resourceType, err)), nil
		}
		return jsonResult(pick(resp)), nil
	}
}

// execute runs a single command and reports the created or affected id.
func execute(ctx context.Context, sc *server.ServerContext, cmd api.Command, describe string) (*mcp.CallToolResult, error) {
	client, err := sc.APIClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := client.ExecuteCommands(ctx, cmd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", describe, err)), nil
	}

	if cmd.TempID != "" {
		return mcp.NewToolResultText(fmt.Sprintf("%s: id %s", describe, resp.ResolveID(cmd.TempID))), nil
	}
	return mcp.NewToolResultText(describe + ": ok"), nil
}

func registerGoalTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("goal_list",
		mcp.WithDescription("List all goals"),
	)
	s.AddTool(listTool, listHandler(sc, "goals", func(r *api.SyncResponse) any { return r.Goals }))

	if readOnly {
		return
	}

	addTool := mcp.NewTool("goal_add",
		mcp.WithDescription("Create a new goal"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The goal name"),
		),
		mcp.WithString("description",
			mcp.Description("Longer free-form description"),
		),
		mcp.WithString("targetDate",
			mcp.Description("Target date in YYYY-MM-DD form"),
		),
	)

	s.AddTool(addTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		name := stringArg(args, "name")
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		cmdArgs := map[string]any{"name": name}
		if v := stringArg(args, "description"); v != "" {
			cmdArgs["description"] = v
		}
		if v := stringArg(args, "targetDate"); v != "" {
			cmdArgs["target_date"] = v
		}
		return execute(ctx, sc, api.NewCreateCommand("goal_add", cmdArgs), "Goal created")
	})

	updateTool := mcp.NewTool("goal_update",
		mcp.WithDescription("Update a goal's fields; omitted fields are left unchanged"),
		mcp.WithString("goalId",
			mcp.Required(),
			mcp.Description("The ID of the goal to update"),
		),
		mcp.WithString("name",
			mcp.Description("New goal name"),
		),
		mcp.WithString("targetDate",
			mcp.Description("New target date in YYYY-MM-DD form"),
		),
		mcp.WithNumber("progress",
			mcp.Description("Progress percentage, 0 to 100"),
		),
	)

	s.AddTool(updateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		goalID := stringArg(args, "goalId")
		if goalID == "" {
			return mcp.NewToolResultError("goalId is required"), nil
		}

		cmdArgs := map[string]any{"id": goalID}
		if v := stringArg(args, "name"); v != "" {
			cmdArgs["name"] = v
		}
		if v := stringArg(args, "targetDate"); v != "" {
			cmdArgs["target_date"] = v
		}
		if v, ok := args["progress"].(float64); ok {
			cmdArgs["progress"] = int(v)
		}
		return execute(ctx, sc, api.NewCommand("goal_update", cmdArgs), "Goal updated")
	})

	deleteTool := mcp.NewTool("goal_delete",
		mcp.WithDescription("Delete a goal"),
		mcp.WithString("goalId",
			mcp.Required(),
			mcp.Description("The ID of the goal to delete"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		goalID := stringArg(args, "goalId")
		if goalID == "" {
			return mcp.NewToolResultError("goalId is required"), nil
		}
		return execute(ctx, sc, api.NewCommand("goal_delete", map[string]any{"id": goalID}), "Goal deleted")
	})
}

func registerReminderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("reminder_list",
		mcp.WithDescription("List all reminders"),
	)
	s.AddTool(listTool, listHandler(sc, "reminders", func(r *api.SyncResponse) any { return r.Reminders }))

	if readOnly {
		return
	}

	addTool := mcp.NewTool("reminder_add",
		mcp.WithDescription("Attach a reminder to a task"),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The task to remind about"),
		),
		mcp.WithString("due",
			mcp.Description("Absolute reminder time, RFC 3339"),
		),
		mcp.WithNumber("minuteOffset",
			mcp.Description("Minutes before the task's due time (relative reminder)"),
		),
	)

	s.AddTool(addTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		taskID := stringArg(args, "taskId")
		if taskID == "" {
			return mcp.NewToolResultError("taskId is required"), nil
		}

		due := stringArg(args, "due")
		offset, hasOffset := args["minuteOffset"].(float64)
		if due == "" && !hasOffset {
			return mcp.NewToolResultError("either due or minuteOffset is required"), nil
		}

		cmdArgs := map[string]any{"task_id": taskID}
		if due != "" {
			cmdArgs["due"] = due
		} else {
			cmdArgs["minute_offset"] = int(offset)
		}
		return execute(ctx, sc, api.NewCreateCommand("reminder_add", cmdArgs), "Reminder created")
	})

	deleteTool := mcp.NewTool("reminder_delete",
		mcp.WithDescription("Delete a reminder"),
		mcp.WithString("reminderId",
			mcp.Required(),
			mcp.Description("The ID of the reminder to delete"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		reminderID := stringArg(args, "reminderId")
		if reminderID == "" {
			return mcp.NewToolResultError("reminderId is required"), nil
		}
		return execute(ctx, sc, api.NewCommand("reminder_delete", map[string]any{"id": reminderID}), "Reminder deleted")
	})
}

func registerFilterTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("filter_list",
		mcp.WithDescription("List all saved filters"),
	)
	s.AddTool(listTool, listHandler(sc, "filters", func(r *api.SyncResponse) any { return r.Filters }))

	if readOnly {
		return
	}

	addTool := mcp.NewTool("filter_add",
		mcp.WithDescription("Create a saved filter"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The filter name"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query, e.g. 'p1 & @work'"),
		),
	)

	s.AddTool(addTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		name := stringArg(args, "name")
		query := stringArg(args, "query")
		if name == "" || query == "" {
			return mcp.NewToolResultError("name and query are required"), nil
		}
		return execute(ctx, sc, api.NewCreateCommand("filter_add",
			map[string]any{"name": name, "query": query}), "Filter created")
	})

	updateTool := mcp.NewTool("filter_update",
		mcp.WithDescription("Update a saved filter"),
		mcp.WithString("filterId",
			mcp.Required(),
			mcp.Description("The ID of the filter to update"),
		),
		mcp.WithString("name",
			mcp.Description("New filter name"),
		),
		mcp.WithString("query",
			mcp.Description("New search query"),
		),
	)

	s.AddTool(updateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		filterID := stringArg(args, "filterId")
		if filterID == "" {
			return mcp.NewToolResultError("filterId is required"), nil
		}

		cmdArgs := map[string]any{"id": filterID}
		if v := stringArg(args, "name"); v != "" {
			cmdArgs["name"] = v
		}
		if v := stringArg(args, "query"); v != "" {
			cmdArgs["query"] = v
		}
		return execute(ctx, sc, api.NewCommand("filter_update", cmdArgs), "Filter updated")
	})

	deleteTool := mcp.NewTool("filter_delete",
		mcp.WithDescription("Delete a saved filter"),
		mcp.WithString("filterId",
			mcp.Required(),
			mcp.Description("The ID of the filter to delete"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		filterID := stringArg(args, "filterId")
		if filterID == "" {
			return mcp.NewToolResultError("filterId is required"), nil
		}
		return execute(ctx, sc, api.NewCommand("filter_delete", map[string]any{"id": filterID}), "Filter deleted")
	})
}

func registerNotificationTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("notification_list",
		mcp.WithDescription("List live notifications"),
	)
	s.AddTool(listTool, listHandler(sc, "live_notifications", func(r *api.SyncResponse) any { return r.Notifications }))

	if readOnly {
		return
	}

	markReadTool := mcp.NewTool("notification_mark_read",
		mcp.WithDescription("Mark a notification as read"),
		mcp.WithString("notificationId",
			mcp.Required(),
			mcp.Description("The ID of the notification"),
		),
	)

	s.AddTool(markReadTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		notificationID := stringArg(args, "notificationId")
		if notificationID == "" {
			return mcp.NewToolResultError("notificationId is required"), nil
		}
		return execute(ctx, sc, api.NewCommand("notification_mark_read",
			map[string]any{"id": notificationID}), "Notification marked read")
	})

	markAllTool := mcp.NewTool("notification_mark_read_all",
		mcp.WithDescription("Mark all notifications as read"),
	)

	s.AddTool(markAllTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return execute(ctx, sc, api.NewCommand("notification_mark_read_all", nil), "All notifications marked read")
	})
}
