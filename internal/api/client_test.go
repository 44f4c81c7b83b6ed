package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTasksPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/tasks", r.URL.Path)
		require.Equal(t, "Bearer tok_test", r.Header.Get("Authorization"))

		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"results": [{"id": "1", "content": "first"}], "next_cursor": "c2"}`)
		case "c2":
			fmt.Fprint(w, `{"results": [{"id": "2", "content": "second"}], "next_cursor": ""}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "tok_test")
	tasks, err := client.ListTasks(context.Background(), TaskFilter{})
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Content)
	assert.Equal(t, "second", tasks[1].Content)
}

func TestListTasksFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p1", r.URL.Query().Get("project_id"))
		assert.Equal(t, "urgent", r.URL.Query().Get("label"))
		fmt.Fprint(w, `{"results": [], "next_cursor": ""}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "tok_test")
	_, err := client.ListTasks(context.Background(), TaskFilter{ProjectID: "p1", Label: "urgent"})
	require.NoError(t, err)
}

func TestCreateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/tasks", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input TaskInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "buy milk", input.Content)

		fmt.Fprint(w, `{"id": "42", "content": "buy milk"}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "tok_test")
	task, err := client.CreateTask(context.Background(), TaskInput{Content: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "42", task.ID)
}

func TestCloseAndReopenTask(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "tok_test")
	require.NoError(t, client.CloseTask(context.Background(), "42"))
	require.NoError(t, client.ReopenTask(context.Background(), "42"))

	assert.Equal(t, []string{"/api/v1/tasks/42/close", "/api/v1/tasks/42/reopen"}, paths)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "task not found"}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "tok_test")
	_, err := client.GetTask(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "task not found", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "task not found")
}

func TestProjectCRUD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/projects":
			fmt.Fprint(w, `{"id": "p9", "name": "Chores"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/projects/p9":
			fmt.Fprint(w, `{"id": "p9", "name": "Chores"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/projects/p9":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "tok_test")
	ctx := context.Background()

	project, err := client.CreateProject(ctx, ProjectInput{Name: "Chores"})
	require.NoError(t, err)
	assert.Equal(t, "p9", project.ID)

	got, err := client.GetProject(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, "Chores", got.Name)

	require.NoError(t, client.DeleteProject(ctx, "p9"))
}

func TestListSections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p1", r.URL.Query().Get("project_id"))
		fmt.Fprint(w, `{"results": [{"id": "s1", "project_id": "p1", "name": "Backlog"}], "next_cursor": ""}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "tok_test")
	sections, err := client.ListSections(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Backlog", sections[0].Name)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/labels", r.URL.Path)
		fmt.Fprint(w, `{"results": [], "next_cursor": ""}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL+"/", "tok_test")
	_, err := client.ListLabels(context.Background())
	require.NoError(t, err)
}
