package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_ListTags(t *testing.T) {
	store := seededStore(t)
	ts := NewTagService(store.tags)

	tags, err := ts.ListTags()

	require.NoError(t, err)
	ids := make([]string, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "t10"}, ids)
}
