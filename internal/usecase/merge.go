package usecase

import "TeleshopNews/internal/domain"

// Merge prepends newItems (listing order preserved) to existing and truncates
// the tail to max. Pure and total; callers guarantee newItems are not already
// present in existing.
func Merge(existing, newItems []domain.NewsItem, max int) []domain.NewsItem {
	merged := make([]domain.NewsItem, 0, len(newItems)+len(existing))
	merged = append(merged, newItems...)
	merged = append(merged, existing...)

	if max > 0 && len(merged) > max {
		merged = merged[:max]
	}

	return merged
}
