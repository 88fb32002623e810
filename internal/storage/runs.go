package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one finished Level 3 simulation.
type Run struct {
	ID              int64
	RunID           string // UUID, generated by RecordRun when empty
	Profile         string
	Wellbeing       int
	Dopamine        int
	Crashes         int
	ScreenUses      int
	RealUses        int
	PeakDopamine    float64
	LowestWellbeing float64
	Tier            string
	Volatility      float64 // Standard deviation of the dopamine samples
	CreatedAt       time.Time
}

// RunStats contains aggregated statistics of a profile's runs.
type RunStats struct {
	Profile       string
	Runs          int
	BestWellbeing int
	AvgWellbeing  float64
	TotalCrashes  int
	LastPlayed    time.Time
}

const runColumns = `id, run_id, profile, wellbeing, dopamine, crashes, screen_uses, real_uses,
		 peak_dopamine, lowest_wellbeing, tier, volatility, created_at`

// RecordRun stores a finished run and returns its row ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	res, err := s.db.Exec(
		`INSERT INTO level3_runs
		 (run_id, profile, wellbeing, dopamine, crashes, screen_uses, real_uses,
		  peak_dopamine, lowest_wellbeing, tier, volatility)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.Profile,
		r.Wellbeing,
		r.Dopamine,
		r.Crashes,
		r.ScreenUses,
		r.RealUses,
		r.PeakDopamine,
		r.LowestWellbeing,
		r.Tier,
		r.Volatility,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest runs of profile, newest first.
// An empty profile selects every profile.
func (s *Store) RecentRuns(profile string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM level3_runs
		 WHERE ? = '' OR profile = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		profile, profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the run of profile that ended with the highest
// wellbeing, fewer crashes breaking ties. Returns nil if there is none.
func (s *Store) BestRun(profile string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM level3_runs
		 WHERE profile = ?
		 ORDER BY wellbeing DESC, crashes ASC, id ASC
		 LIMIT 1`,
		profile,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Stats retrieves aggregated statistics for profile.
func (s *Store) Stats(profile string) (*RunStats, error) {
	stats := &RunStats{Profile: profile}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(wellbeing), 0), COALESCE(AVG(wellbeing), 0),
		        COALESCE(SUM(crashes), 0), MAX(created_at)
		 FROM level3_runs WHERE profile = ?`,
		profile,
	).Scan(&stats.Runs, &stats.BestWellbeing, &stats.AvgWellbeing, &stats.TotalCrashes, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = scanTime(lastPlayed)

	return stats, nil
}

// ClearRuns deletes every run of profile.
func (s *Store) ClearRuns(profile string) error {
	_, err := s.db.Exec("DELETE FROM level3_runs WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.RunID,
		&r.Profile,
		&r.Wellbeing,
		&r.Dopamine,
		&r.Crashes,
		&r.ScreenUses,
		&r.RealUses,
		&r.PeakDopamine,
		&r.LowestWellbeing,
		&r.Tier,
		&r.Volatility,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = scanTime(createdAt)
	return r, nil
}
