package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/api"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"text", "json", "ndjson"} {
		f, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), f)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestTasksText(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Format: FormatText, W: &buf}

	err := p.Tasks([]api.Task{
		{ID: "1", Content: "buy milk", Priority: 4, Labels: []string{"errand", "home"}},
		{ID: "2", Content: "write report", ProjectID: "p1"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "CONTENT")
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "errand,home")
	assert.Contains(t, out, "write report")
}

func TestTasksTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Format: FormatText, W: &buf}

	require.NoError(t, p.Tasks(nil))
	assert.Equal(t, "No results.\n", buf.String())
}

func TestTasksJSON(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Format: FormatJSON, W: &buf}

	require.NoError(t, p.Tasks([]api.Task{{ID: "1", Content: "buy milk"}}))

	var got []api.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Content)
	assert.True(t, strings.Contains(buf.String(), "\n  "), "json output is indented")
}

func TestTasksNDJSON(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Format: FormatNDJSON, W: &buf}

	require.NoError(t, p.Tasks([]api.Task{
		{ID: "1", Content: "one"},
		{ID: "2", Content: "two"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for i, line := range lines {
		var task api.Task
		require.NoError(t, json.Unmarshal([]byte(line), &task), "line %d is standalone json", i)
	}
}

func TestGoalsProgressColumn(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Format: FormatText, W: &buf}

	require.NoError(t, p.Goals([]api.Goal{{ID: "g1", Name: "Ship v2", Progress: 40}}))
	assert.Contains(t, buf.String(), "40%")
}

func TestRemindersRelativeDue(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Format: FormatText, W: &buf}

	require.NoError(t, p.Reminders([]api.Reminder{{ID: "r1", TaskID: "7", MinuteOffset: 30}}))
	assert.Contains(t, buf.String(), "30 min before")
}

func TestValue(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Format: FormatText, W: &buf}

	require.NoError(t, p.Value(api.Task{ID: "1", Content: "buy milk"}))

	var got api.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1", got.ID)
}
