package cachetag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gql2sql/cachetag"
)

type fakeStore struct {
	deleted []string
	failOn  string
}

func (s *fakeStore) DeleteTag(_ context.Context, tag string) error {
	if tag == s.failOn {
		return assert.AnError
	}
	s.deleted = append(s.deleted, tag)
	return nil
}

func TestInvalidateJSONDeletesEveryExtractedTag(t *testing.T) {
	store := &fakeStore{}
	inv := cachetag.NewInvalidator(store)

	err := inv.InvalidateJSON(context.Background(), map[string]any{
		"__typename": "Launch",
		"id":         "109",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"type:Launch:id:109"}, store.deleted)
}

func TestInvalidateTagsStopsOnFirstError(t *testing.T) {
	store := &fakeStore{failOn: "type:B"}
	inv := cachetag.NewInvalidator(store)

	err := inv.InvalidateTags(context.Background(), map[string]struct{}{
		"type:A": {},
		"type:B": {},
		"type:C": {},
	})
	require.Error(t, err)
	assert.Equal(t, []string{"type:A"}, store.deleted)
}
