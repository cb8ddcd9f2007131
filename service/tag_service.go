package services

import (
	"sort"

	"github.com/pkg/errors"

	"ptalk-server/models/venue"
)

type TagService struct {
	tags TagRepository
}

func NewTagService(tags TagRepository) *TagService {
	return &TagService{tags: tags}
}

// ListTags returns every tag ordered by id.
func (ts *TagService) ListTags() ([]venue.VenueTag, error) {
	tags, err := ts.tags.ListTags()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return lessVenueID(tags[i].ID, tags[j].ID)
	})
	return tags, nil
}
