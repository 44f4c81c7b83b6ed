package cmd

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "task_list", expected: "Task Tools"},
		{name: "task_close", expected: "Task Tools"},
		{name: "project_create", expected: "Project Tools"},
		{name: "label_delete", expected: "Label Tools"},
		{name: "section_list", expected: "Section Tools"},
		{name: "goal_update", expected: "Goal Tools"},
		{name: "reminder_add", expected: "Reminder Tools"},
		{name: "filter_delete", expected: "Filter Tools"},
		{name: "notification_mark_read", expected: "Notification Tools"},
		{name: "something_else", expected: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getCategoryFromToolName(tt.name); got != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.NewTool("task_create",
		mcp.WithDescription("Create a new task"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The task content"),
		),
		mcp.WithString("dueDate",
			mcp.Description("Due date in YYYY-MM-DD form"),
		),
	)

	md := generateToolMarkdown(tool)

	for _, want := range []string{
		"### task_create",
		"Create a new task",
		"`content` (required): The task content",
		"`dueDate` (optional): Due date in YYYY-MM-DD form",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
