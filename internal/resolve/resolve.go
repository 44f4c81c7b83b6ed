// Package resolve matches user-supplied names against service resources so
// commands can accept a project or label name where the API wants an id.
package resolve

import (
	"fmt"
	"sort"
	"strings"
)

// ByName finds the single candidate whose name (as reported by nameOf)
// matches the query. Matching is tried in order: exact, case-insensitive,
// substring (case-insensitive); the first tier with exactly one hit wins.
// Multiple hits in a tier are ambiguous.
func ByName[T any](candidates []T, name string, nameOf func(T) string) (T, error) {
	var zero T
	if name == "" {
		return zero, fmt.Errorf("name must not be empty")
	}

	tiers := []func(candidate, query string) bool{
		func(c, q string) bool { return c == q },
		strings.EqualFold,
		func(c, q string) bool { return strings.Contains(strings.ToLower(c), strings.ToLower(q)) },
	}

	for _, match := range tiers {
		var hits []T
		for _, c := range candidates {
			if match(nameOf(c), name) {
				hits = append(hits, c)
			}
		}
		switch len(hits) {
		case 0:
			continue
		case 1:
			return hits[0], nil
		default:
			return zero, &AmbiguousError{Name: name, Candidates: names(hits, nameOf)}
		}
	}

	return zero, &NotFoundError{Name: name, Candidates: names(candidates, nameOf)}
}

// AmbiguousError reports more than one candidate matching the query at the
// same tier.
type AmbiguousError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q matches more than one name: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// NotFoundError reports that no candidate matched at any tier.
type NotFoundError struct {
	Name       string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no match for %q", e.Name)
	}
	return fmt.Sprintf("no match for %q, known names: %s", e.Name, strings.Join(e.Candidates, ", "))
}

func names[T any](items []T, nameOf func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, nameOf(item))
	}
	sort.Strings(out)
	return out
}
