// Package cmd implements the command-line interface for taskdeck.
//
// This package provides the following commands:
//   - auth: Log in to Taskdeck, log out, and show authentication status
//   - task, project, label, section: Manage tasks and their organization
//   - goal, reminder, filter, notification: Manage resources backed by the
//     batched command endpoint
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
package cmd
