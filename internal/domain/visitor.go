package domain

import (
	"context"
	"time"
)

// Visitor is one recorded page hit, used for the admin traffic dashboard.
type Visitor struct {
	ID              int64
	IP              string
	UserAgent       string
	IsAuthenticated bool
	IsAdmin         bool
	UserID          int64
	CreatedAt       time.Time
}

// VisitorDayStats aggregates one day of traffic.
type VisitorDayStats struct {
	Date                time.Time
	TotalVisits         int64
	AuthenticatedVisits int64
	AdminVisits         int64
	GuestVisits         int64
}

// VisitorStore records page hits and serves daily aggregates.
type VisitorStore interface {
	RecordVisit(ctx context.Context, v Visitor) error
	DailyStats(ctx context.Context, days int) ([]VisitorDayStats, error)
	ListVisits(ctx context.Context, limit int) ([]Visitor, error)
}
