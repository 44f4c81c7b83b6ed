package task_tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringArg(t *testing.T) {
	args := map[string]any{"projectId": "p1", "count": 3}

	assert.Equal(t, "p1", stringArg(args, "projectId"))
	assert.Equal(t, "", stringArg(args, "missing"))
	assert.Equal(t, "", stringArg(args, "count"), "non-string values are ignored")
}

func TestIntArg(t *testing.T) {
	// Numbers decoded from JSON arrive as float64.
	args := map[string]any{"priority": float64(4), "label": "x"}

	assert.Equal(t, 4, intArg(args, "priority"))
	assert.Equal(t, 0, intArg(args, "missing"))
	assert.Equal(t, 0, intArg(args, "label"))
}

func TestStringSliceArg(t *testing.T) {
	args := map[string]any{
		"labels": []any{"home", "errand", 7},
		"name":   "x",
	}

	assert.Equal(t, []string{"home", "errand"}, stringSliceArg(args, "labels"))
	assert.Nil(t, stringSliceArg(args, "missing"))
	assert.Nil(t, stringSliceArg(args, "name"))
}
