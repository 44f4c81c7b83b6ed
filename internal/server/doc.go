// Package server holds the shared context for the MCP server mode: the
// loaded configuration, the persisted token and a lazily-built API client.
package server
