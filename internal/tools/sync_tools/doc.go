// Package sync_tools provides MCP tools for the resources managed through
// the batched command endpoint: goals, reminders, filters and notifications.
//
// # Available Tools
//
//   - goal_list, goal_add, goal_update, goal_delete
//   - reminder_list, reminder_add, reminder_delete
//   - filter_list, filter_add, filter_update, filter_delete
//   - notification_list, notification_mark_read, notification_mark_read_all
//
// Mutating tools are only registered when the server runs with write access.
package sync_tools
