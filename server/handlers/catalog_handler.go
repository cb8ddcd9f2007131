package handlers

import (
	"net/http"
	"strconv"

	"ptalk-server/models/comment"
	services "ptalk-server/service"
)

const FEEDBACK_TYPE_QUERY_ARG = "feedbackType"

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListComments handles GET /v1/venues/{id}/comments?feedbackType
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	feedback := 0
	if s := r.URL.Query().Get(FEEDBACK_TYPE_QUERY_ARG); s != "" {
		var err error
		if feedback, err = strconv.Atoi(s); err != nil {
			badArgument(w, FEEDBACK_TYPE_QUERY_ARG)
			return
		}
	}
	items, err := h.commentService.ListByVenue(venueID(r), comment.FeedbackType(feedback))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, items)
}

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags handles GET /v1/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListTags()
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, tags)
}
