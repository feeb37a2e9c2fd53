package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueEventSlug(t *testing.T) {
	db := openTestDB(t)

	assert.Equal(t, "summer-jazz-night", GenerateUniqueEventSlug(db, "Summer Jazz Night!"))
}

func TestGenerateUniqueEventSlug_Collision(t *testing.T) {
	db := openTestDB(t)
	event := seedEvent(t, db, 10)
	require.NoError(t, db.Model(&event).Update("slug", "summer-jazz-night").Error)

	assert.Equal(t, "summer-jazz-night-1", GenerateUniqueEventSlug(db, "Summer Jazz Night"))
}

func TestParseEventDate_BareDate(t *testing.T) {
	parsed, err := ParseEventDate("2026-06-15")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseEventDate_RFC3339(t *testing.T) {
	parsed, err := ParseEventDate("2026-06-15T19:00:00Z")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC), parsed)
}

func TestParseEventDate_Invalid(t *testing.T) {
	_, err := ParseEventDate("15/06/2026")

	assert.Error(t, err)
}
