package core

import "citizen-portal-backend/internal/models"

// HistogramBucket is one chart category with its count.
type HistogramBucket struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// BuildHistogram folds submissions into counts keyed by status and
// reindexes them over the domain's fixed ordered category list, so
// zero-count categories still render. Missing or unrecognized statuses
// land in the trailing Unclassified bucket; the bucket counts therefore
// always sum to len(subs).
func BuildHistogram(domain *models.Domain, subs []*models.Submission) []HistogramBucket {
	counts := make(map[string]int, len(domain.Statuses)+1)
	for _, sub := range subs {
		status := sub.Status
		if !domain.ValidStatus(status) {
			status = models.StatusUnclassified
		}
		counts[status]++
	}

	buckets := make([]HistogramBucket, 0, len(domain.Statuses)+1)
	for _, status := range domain.Statuses {
		buckets = append(buckets, HistogramBucket{Status: status, Count: counts[status]})
	}
	buckets = append(buckets, HistogramBucket{
		Status: models.StatusUnclassified,
		Count:  counts[models.StatusUnclassified],
	})
	return buckets
}
