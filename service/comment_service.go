package services

import (
	"sort"

	"github.com/pkg/errors"

	"ptalk-server/models/comment"
)

type CommentService struct {
	comments CommentRepository
	venues   VenueRepository
}

func NewCommentService(comments CommentRepository, venues VenueRepository) *CommentService {
	return &CommentService{comments: comments, venues: venues}
}

// ListByVenue returns the venue's comments, newest first. A zero feedbackType
// returns every comment.
func (cs *CommentService) ListByVenue(venueID string, feedbackType comment.FeedbackType) ([]comment.CommentItem, error) {
	if feedbackType != 0 && !feedbackType.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"feedbackType": "unknown feedback type"}}
	}
	if _, err := cs.venues.GetVenue(venueID); err != nil {
		return nil, translateNotFound(err, "venue "+venueID)
	}

	all, err := cs.comments.ListCommentsByVenue(venueID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list comments of venue %s", venueID)
	}
	out := make([]comment.CommentItem, 0, len(all))
	for _, c := range all {
		if feedbackType == 0 || c.Feedback.Type == feedbackType {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdateTime.After(out[j].UpdateTime)
	})
	return out, nil
}
