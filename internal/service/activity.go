package service

import (
	"context"
	"strings"
	"time"

	"todo_api/internal/models"
	"todo_api/internal/repository"
)

type ActivityService struct {
	activityRepo repository.ActivityRepo
}

func NewActivityService(activityRepo repository.ActivityRepo) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeActivityType trims spaces and uppercases the type filter.
func normalizeActivityType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}
	return from, to, normalizeActivityType(f.Type), nil
}

// List returns the caller's activity. Reads are single statements and run
// outside an explicit transaction.
func (s *ActivityService) List(ctx context.Context, userID int64, f ActivityFilter) ([]models.Activity, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.activityRepo.List(ctx, userID, from, to, typ)
}
