package comment

import "time"

type PetSpecies int

const (
	PET_SPECIES_DOG   PetSpecies = 1
	PET_SPECIES_CAT   PetSpecies = 2
	PET_SPECIES_OTHER PetSpecies = 3
)

var PetSpeciesLabels = map[PetSpecies]string{
	PET_SPECIES_DOG:   "狗",
	PET_SPECIES_CAT:   "貓",
	PET_SPECIES_OTHER: "其他",
}

// PetFriendlyLevel is 1 (low) to 3 (high).
type PetFriendlyLevel int

var PetFriendlyLevelLabels = map[PetFriendlyLevel]string{
	1: "低",
	2: "中",
	3: "高",
}

// FeedbackType is a paw (positive) or a poop (negative).
type FeedbackType int

const (
	FEEDBACK_PAW  FeedbackType = 1
	FEEDBACK_POOP FeedbackType = 2
)

var FeedbackTypeLabels = map[FeedbackType]string{
	FEEDBACK_PAW:  "腳掌",
	FEEDBACK_POOP: "大便",
}

func (f FeedbackType) Valid() bool {
	_, ok := FeedbackTypeLabels[f]
	return ok
}

type Reviewer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// CommentVenue is the venue reference embedded in a comment.
type CommentVenue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PetInfo struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Species PetSpecies `json:"species"`
	Breed   string     `json:"breed,omitempty"`
}

type Feedback struct {
	Type FeedbackType `json:"type"`
}

type CommentFile struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// CommentItem is a customer review left on a venue.
type CommentItem struct {
	ID               string           `json:"id"`
	Reviewer         Reviewer         `json:"reviewer"`
	Venue            CommentVenue     `json:"venue"`
	PetInfo          *PetInfo         `json:"petInfo"`
	PetFriendlyLevel PetFriendlyLevel `json:"petFriendlyLevel"`
	Feedback         Feedback         `json:"feedback"`
	Content          string           `json:"content"`
	Files            []CommentFile    `json:"files"`
	UpdateTime       time.Time        `json:"updateTime"`
}
