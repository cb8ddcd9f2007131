package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptalk-server/models/comment"
	"ptalk-server/models/venue"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	tempFile, err := os.CreateTemp(t.TempDir(), "test*.json")
	require.NoError(t, err)
	_, err = tempFile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tempFile.Close())
	return tempFile.Name()
}

func resourcesDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "resources")
}

func TestReadVenueFormFromJSON(t *testing.T) {
	// Arrange
	content := `{
		"categoryType": 1,
		"location": {"latitude": 25.0339, "longitude": 121.5619},
		"address": "台北市信義區",
		"petGroundingRuleType": 2,
		"openingHours": [{"dayType": 1, "periods": [{"openTime": "09:00", "closeTime": "18:00"}]}],
		"tagIds": ["t1"]
	}`
	tempFile := createTempFile(t, content)

	// Act
	form, err := ReadVenueFormFromJSON(tempFile)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, venue.CATEGORY_RESTAURANT, form.CategoryType)
	assert.Equal(t, 25.0339, form.Location.Latitude)
	require.NotNil(t, form.PetGroundingRuleType)
	assert.Equal(t, venue.GROUNDING_CARRIER_REQUIRED, *form.PetGroundingRuleType)
	assert.Equal(t, "09:00", form.OpeningHours[0].Periods[0].OpenTime)
	assert.Equal(t, []string{"t1"}, form.TagIDs)
}

func TestReadVenueFormFromJSON_Errors(t *testing.T) {
	_, err := ReadVenueFormFromJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ReadVenueFormFromJSON(createTempFile(t, "{not json"))
	assert.ErrorContains(t, err, "failed to unmarshal venue form")
}

func TestReadBundledResources(t *testing.T) {
	dir := resourcesDir(t)

	venues, err := ReadVenuesFromJSON(filepath.Join(dir, "mock_venues.json"))
	require.NoError(t, err)
	assert.Len(t, venues, 5)
	for _, v := range venues {
		assert.NoError(t, v.OpeningHours.Validate(), v.ID)
		assert.True(t, v.Location.Valid(), v.ID)
	}

	tags, err := ReadTagsFromJSON(filepath.Join(dir, "mock_tags.json"))
	require.NoError(t, err)
	assert.Len(t, tags, 15)

	comments, err := ReadCommentsFromJSON(filepath.Join(dir, "mock_comments.json"))
	require.NoError(t, err)
	assert.Len(t, comments, 11)
	assert.Equal(t, comment.FEEDBACK_POOP, comments[2].Feedback.Type)

	seed, err := ReadMerchantSeedFromJSON(filepath.Join(dir, "mock_merchant.json"))
	require.NoError(t, err)
	assert.Equal(t, "demo@ptalk.com", seed.Profile.Email)
	assert.Equal(t, "demo1234", seed.Password)
}
