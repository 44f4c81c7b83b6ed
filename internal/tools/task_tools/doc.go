// Package task_tools provides MCP tools for Taskdeck tasks, projects,
// labels and sections.
//
// # Available Tools
//
// Tasks:
//   - task_list: List tasks, optionally filtered by project or label
//   - task_get: Get a single task
//   - task_create: Create a task
//   - task_update: Update a task's fields
//   - task_close: Close one or more tasks
//   - task_reopen: Reopen one or more tasks
//   - task_delete: Delete one or more tasks
//
// Projects:
//   - project_list: List projects
//   - project_create: Create a project
//   - project_delete: Delete a project
//
// Labels and sections:
//   - label_list, label_create, label_delete
//   - section_list, section_create, section_delete
//
// Mutating tools are only registered when the server runs with write access.
//
// # Authentication
//
// Tools use the token saved by 'taskdeck auth login'. Without one they return
// an error telling the user to log in first.
package task_tools
