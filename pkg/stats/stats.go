// Package stats computes the aggregates behind the admin dashboards.
package stats

import (
	"context"
	"time"
)

// IndustryCount is one bar of the per-industry breakdown.
type IndustryCount struct {
	Industry string `json:"industry"`
	Count    int64  `json:"count"`
}

// YearCount is one bucket of the registrations-per-year series.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// UserStats summarizes all User accounts.
type UserStats struct {
	Total                int64           `json:"total"`
	IndustriesCovered    int             `json:"industries_covered"`
	MostPopularIndustry  string          `json:"most_popular_industry,omitempty"`
	ByIndustry           []IndustryCount `json:"by_industry"`
	RegistrationsPerYear []YearCount     `json:"registrations_per_year"`
	EarliestRegistration *time.Time      `json:"earliest_registration,omitempty"`
	LatestRegistration   *time.Time      `json:"latest_registration,omitempty"`
}

// HRStats summarizes all HR accounts.
type HRStats struct {
	Total                int64       `json:"total"`
	MostRecentName       string      `json:"most_recent_name,omitempty"`
	EarliestRegistration *time.Time  `json:"earliest_registration,omitempty"`
	RegistrationsPerYear []YearCount `json:"registrations_per_year"`
}

// Repository is the read-side port for dashboard aggregates.
type Repository interface {
	UserStats(ctx context.Context) (UserStats, error)
	HRStats(ctx context.Context) (HRStats, error)
}

// UseCase exposes the dashboard aggregates to the HTTP layer.
type UseCase interface {
	Users(ctx context.Context) (UserStats, error)
	HR(ctx context.Context) (HRStats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Users(ctx context.Context) (UserStats, error) { return s.repo.UserStats(ctx) }

func (s *service) HR(ctx context.Context) (HRStats, error) { return s.repo.HRStats(ctx) }
