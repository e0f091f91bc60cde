package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizen-portal-backend/internal/models"
)

func TestBuildHistogram(t *testing.T) {
	domain, err := models.DomainBySlug("consumer-protection")
	require.NoError(t, err)

	subs := []*models.Submission{
		{Status: "Open"},
		{Status: "Open"},
		{Status: "Finalized"},
		{Status: "aberta"}, // legacy value not in the vocabulary
		{Status: ""},
	}

	buckets := BuildHistogram(domain, subs)

	t.Run("renders every category in order plus a trailing unclassified bucket", func(t *testing.T) {
		require.Len(t, buckets, len(domain.Statuses)+1)
		for i, status := range domain.Statuses {
			assert.Equal(t, status, buckets[i].Status)
		}
		assert.Equal(t, models.StatusUnclassified, buckets[len(buckets)-1].Status)
	})

	t.Run("keeps zero-count categories", func(t *testing.T) {
		byStatus := map[string]int{}
		for _, b := range buckets {
			byStatus[b.Status] = b.Count
		}
		assert.Equal(t, 2, byStatus["Open"])
		assert.Equal(t, 0, byStatus["Under Review"])
		assert.Equal(t, 0, byStatus["Pending"])
		assert.Equal(t, 0, byStatus["In Negotiation"])
		assert.Equal(t, 1, byStatus["Finalized"])
	})

	t.Run("folds unrecognized and missing statuses into unclassified", func(t *testing.T) {
		assert.Equal(t, 2, buckets[len(buckets)-1].Count)
	})

	t.Run("counts sum to the list length", func(t *testing.T) {
		total := 0
		for _, b := range buckets {
			total += b.Count
		}
		assert.Equal(t, len(subs), total)
	})
}

func TestBuildHistogramEmptyList(t *testing.T) {
	domain, err := models.DomainBySlug("womens-advocacy")
	require.NoError(t, err)

	buckets := BuildHistogram(domain, nil)
	require.Len(t, buckets, len(domain.Statuses)+1)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}
