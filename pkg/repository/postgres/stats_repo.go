package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirezy/backend/pkg/stats"
)

// StatsRepository serves the dashboard aggregates with read-only queries
// over the same users/roles tables the account repository owns.
type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) UserStats(ctx context.Context) (stats.UserStats, error) {
	var out stats.UserStats

	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(u.industry, ''), COUNT(*)
		FROM users u INNER JOIN roles r ON u.role_id = r.id
		WHERE r.name = 'User'
		GROUP BY u.industry
		ORDER BY COUNT(*) DESC, u.industry
	`)
	if err != nil {
		return stats.UserStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var ic stats.IndustryCount
		if err := rows.Scan(&ic.Industry, &ic.Count); err != nil {
			return stats.UserStats{}, err
		}
		out.ByIndustry = append(out.ByIndustry, ic)
		out.Total += ic.Count
	}
	if err := rows.Err(); err != nil {
		return stats.UserStats{}, err
	}
	out.IndustriesCovered = len(out.ByIndustry)
	if len(out.ByIndustry) > 0 {
		// rows are ordered by count, so the first is the mode
		out.MostPopularIndustry = out.ByIndustry[0].Industry
	}

	perYear, err := r.registrationsPerYear(ctx, "User")
	if err != nil {
		return stats.UserStats{}, err
	}
	out.RegistrationsPerYear = perYear

	earliest, latest, err := r.registrationBounds(ctx, "User")
	if err != nil {
		return stats.UserStats{}, err
	}
	out.EarliestRegistration = earliest
	out.LatestRegistration = latest
	return out, nil
}

func (r *StatsRepository) HRStats(ctx context.Context) (stats.HRStats, error) {
	var out stats.HRStats

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM users u INNER JOIN roles r ON u.role_id = r.id
		WHERE r.name = 'HR'
	`).Scan(&out.Total)
	if err != nil {
		return stats.HRStats{}, err
	}

	if out.Total > 0 {
		err = r.pool.QueryRow(ctx, `
			SELECT u.full_name
			FROM users u INNER JOIN roles r ON u.role_id = r.id
			WHERE r.name = 'HR'
			ORDER BY u.registered_at DESC
			LIMIT 1
		`).Scan(&out.MostRecentName)
		if err != nil {
			return stats.HRStats{}, err
		}
	}

	perYear, err := r.registrationsPerYear(ctx, "HR")
	if err != nil {
		return stats.HRStats{}, err
	}
	out.RegistrationsPerYear = perYear

	earliest, _, err := r.registrationBounds(ctx, "HR")
	if err != nil {
		return stats.HRStats{}, err
	}
	out.EarliestRegistration = earliest
	return out, nil
}

func (r *StatsRepository) registrationsPerYear(ctx context.Context, role string) ([]stats.YearCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(YEAR FROM u.registered_at)::int, COUNT(*)
		FROM users u INNER JOIN roles r ON u.role_id = r.id
		WHERE r.name = $1
		GROUP BY 1
		ORDER BY 1
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []stats.YearCount
	for rows.Next() {
		var yc stats.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		res = append(res, yc)
	}
	return res, rows.Err()
}

func (r *StatsRepository) registrationBounds(ctx context.Context, role string) (earliest, latest *time.Time, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT MIN(u.registered_at), MAX(u.registered_at)
		FROM users u INNER JOIN roles r ON u.role_id = r.id
		WHERE r.name = $1
	`, role).Scan(&earliest, &latest)
	if err != nil {
		return nil, nil, err
	}
	if earliest != nil {
		t := earliest.UTC()
		earliest = &t
	}
	if latest != nil {
		t := latest.UTC()
		latest = &t
	}
	return earliest, latest, nil
}
