package util

import (
	"encoding/json"
	"fmt"
	"os"

	"ptalk-server/models"
	"ptalk-server/models/comment"
	"ptalk-server/models/venue"
)

func readJSON(filePath string, out interface{}, what string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", what, err)
	}
	return nil
}

// ReadVenuesFromJSON loads a list of venues from JSON on disk.
func ReadVenuesFromJSON(filePath string) ([]venue.Venue, error) {
	var venues []venue.Venue
	if err := readJSON(filePath, &venues, "venues"); err != nil {
		return nil, err
	}
	return venues, nil
}

// ReadVenueFormFromJSON loads a venue edit form from JSON on disk.
func ReadVenueFormFromJSON(filePath string) (*venue.VenueEditFormData, error) {
	var form venue.VenueEditFormData
	if err := readJSON(filePath, &form, "venue form"); err != nil {
		return nil, err
	}
	return &form, nil
}

func ReadTagsFromJSON(filePath string) ([]venue.VenueTag, error) {
	var tags []venue.VenueTag
	if err := readJSON(filePath, &tags, "tags"); err != nil {
		return nil, err
	}
	return tags, nil
}

func ReadCommentsFromJSON(filePath string) ([]comment.CommentItem, error) {
	var comments []comment.CommentItem
	if err := readJSON(filePath, &comments, "comments"); err != nil {
		return nil, err
	}
	return comments, nil
}

// ReadMerchantSeedFromJSON loads the demo merchant account.
func ReadMerchantSeedFromJSON(filePath string) (*models.MerchantSeed, error) {
	var seed models.MerchantSeed
	if err := readJSON(filePath, &seed, "merchant seed"); err != nil {
		return nil, err
	}
	return &seed, nil
}
