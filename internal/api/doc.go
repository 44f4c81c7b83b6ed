// Package api is the client for the hosted Taskdeck service.
//
// Plain CRUD resources (tasks, projects, labels, sections) go through the
// REST endpoints with cursor pagination. Everything else (goals, reminders,
// filters, notifications) is mutated through the batched Sync command
// endpoint, which reports a per-command outcome and maps client temporary
// ids to server-assigned ids.
package api
