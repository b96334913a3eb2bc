package services

import (
	"math"

	"github.com/AnshRaj112/serenify-journal/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit inside an int32 skip.
	MaxPage = math.MaxInt32 / MaxLimit
)

// BuildMoodTrend groups entries by UTC calendar day and averages their mood
// scores. Days appear in the order they are first seen, so input sorted by
// date ascending yields ascending output.
func BuildMoodTrend(entries []models.JournalEntry) []models.MoodPoint {
	type bucket struct {
		sum   int
		count int
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, e := range entries {
		day := e.Date.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
			order = append(order, day)
		}
		b.sum += int(e.MoodScore)
		b.count++
	}

	trend := make([]models.MoodPoint, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		trend = append(trend, models.MoodPoint{
			Date:        day,
			AverageMood: float64(b.sum) / float64(b.count),
		})
	}
	return trend
}

// Paginate computes listing metadata for a page of size limit. hasNext is
// page < totalPages, which equals page*limit < total without the product.
func Paginate(page, limit int, total int64) models.Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return models.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalEntries: total,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}
