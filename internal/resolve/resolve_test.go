package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   string
	name string
}

func itemName(i item) string { return i.name }

func TestByName(t *testing.T) {
	candidates := []item{
		{id: "1", name: "Work"},
		{id: "2", name: "work stuff"},
		{id: "3", name: "Household"},
		{id: "4", name: "house"},
	}

	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr string
	}{
		{
			name:   "exact match wins over substring hits",
			query:  "Work",
			wantID: "1",
		},
		{
			name:   "case-insensitive unique match",
			query:  "household",
			wantID: "3",
		},
		{
			name:   "unique substring match",
			query:  "stuff",
			wantID: "2",
		},
		{
			name:    "ambiguous substring",
			query:   "hous",
			wantErr: "matches more than one name",
		},
		{
			name:    "no match",
			query:   "groceries",
			wantErr: "no match",
		},
		{
			name:    "empty query",
			query:   "",
			wantErr: "must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByName(candidates, tt.query, itemName)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.id)
		})
	}
}

func TestByNameErrorsListCandidates(t *testing.T) {
	candidates := []item{
		{id: "1", name: "beta"},
		{id: "2", name: "alpha"},
	}

	_, err := ByName(candidates, "zzz", itemName)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"alpha", "beta"}, notFound.Candidates)

	_, err = ByName(candidates, "a", itemName)
	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"alpha", "beta"}, ambiguous.Candidates)
}
