package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptalk-server/models/comment"
)

func commentIDs(items []comment.CommentItem) []string {
	ids := make([]string, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestCommentService_ListByVenue(t *testing.T) {
	store := seededStore(t)
	cs := NewCommentService(store.comments, store.venues)

	tests := []struct {
		name     string
		feedback comment.FeedbackType
		want     []string
	}{
		{"all newest first", 0, []string{"c2", "c3", "c1"}},
		{"paw only", comment.FEEDBACK_PAW, []string{"c3", "c1"}},
		{"poop only", comment.FEEDBACK_POOP, []string{"c2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := cs.ListByVenue("1", tt.feedback)

			require.NoError(t, err)
			assert.Equal(t, tt.want, commentIDs(items))
		})
	}
}

func TestCommentService_ListByVenue_Errors(t *testing.T) {
	store := seededStore(t)
	cs := NewCommentService(store.comments, store.venues)

	items, err := cs.ListByVenue("2", 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = cs.ListByVenue("404", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = cs.ListByVenue("1", 7)
	assert.ErrorIs(t, err, ErrValidation)
}
