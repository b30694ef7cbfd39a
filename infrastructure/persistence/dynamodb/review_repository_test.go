package dynamodb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tastetrail-backend/domain/model"
)

func TestSortReviewsNewestFirst(t *testing.T) {
	notes := []model.ReviewNote{
		{ReviewID: "mid", CreatedAt: "2026-08-20T09:00:00Z"},
		{ReviewID: "oldest", CreatedAt: "2026-08-01T18:30:00Z"},
		{ReviewID: "newest", CreatedAt: "2026-08-28T07:15:00Z"},
	}

	sortReviewsNewestFirst(notes)

	got := make([]string, len(notes))
	for i, note := range notes {
		got[i] = note.ReviewID
	}
	assert.Equal(t, []string{"newest", "mid", "oldest"}, got)
}

func TestSortReviewsNewestFirst_IgnoresFetchOrder(t *testing.T) {
	// Review ids are random, so the partition's sort-key order carries no
	// time information; already-descending and fully-reversed inputs must
	// both come out the same.
	ascending := []model.ReviewNote{
		{ReviewID: "a", CreatedAt: "2026-08-01T00:00:00Z"},
		{ReviewID: "b", CreatedAt: "2026-08-02T00:00:00Z"},
		{ReviewID: "c", CreatedAt: "2026-08-03T00:00:00Z"},
	}
	descending := []model.ReviewNote{
		{ReviewID: "c", CreatedAt: "2026-08-03T00:00:00Z"},
		{ReviewID: "b", CreatedAt: "2026-08-02T00:00:00Z"},
		{ReviewID: "a", CreatedAt: "2026-08-01T00:00:00Z"},
	}

	sortReviewsNewestFirst(ascending)
	sortReviewsNewestFirst(descending)

	assert.Equal(t, descending, ascending)
}

func TestSortReviewsNewestFirst_StableForEqualTimestamps(t *testing.T) {
	notes := []model.ReviewNote{
		{ReviewID: "first", CreatedAt: "2026-08-10T12:00:00Z"},
		{ReviewID: "second", CreatedAt: "2026-08-10T12:00:00Z"},
	}

	sortReviewsNewestFirst(notes)

	assert.Equal(t, "first", notes[0].ReviewID)
	assert.Equal(t, "second", notes[1].ReviewID)
}
