package batch

import (
	"encoding/json"
	"fmt"
)

// Result is the outcome of one item in a batch.
type Result struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "success" or "error"
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Summary aggregates the results of a batch operation.
type Summary struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// ParseIDs accepts a tool argument that is either a single id string or an
// array of id strings.
func ParseIDs(param any, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		return []string{v}, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		ids := make([]string, 0, len(v))
		for i, item := range v {
			id, ok := item.(string)
			if !ok || id == "" {
				return nil, fmt.Errorf("%s[%d] must be a non-empty string", paramName, i)
			}
			ids = append(ids, id)
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}
}

// Process runs fn on each id and collects per-id results. fn errors are
// recorded, not propagated.
func Process(ids []string, fn func(id string) (string, error)) []Result {
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		r := Result{ID: id}
		if msg, err := fn(id); err != nil {
			r.Status = "error"
			r.Error = err.Error()
		} else {
			r.Status = "success"
			r.Result = msg
		}
		results = append(results, r)
	}
	return results
}

// Format renders the results as an indented JSON summary.
func Format(results []Result) string {
	s := Summary{Total: len(results), Results: results}
	for _, r := range results {
		if r.Status == "success" {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	out, _ := json.MarshalIndent(s, "", "  ")
	return string(out)
}
