package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// RunCSV is the flat CSV form of a Run.
type RunCSV struct {
	RunID           string  `csv:"run_id"`
	Profile         string  `csv:"profile"`
	Wellbeing       int     `csv:"wellbeing"`
	Dopamine        int     `csv:"dopamine"`
	Tier            string  `csv:"tier"`
	Crashes         int     `csv:"crashes"`
	ScreenUses      int     `csv:"screen_uses"`
	RealUses        int     `csv:"real_uses"`
	PeakDopamine    float64 `csv:"peak_dopamine"`
	LowestWellbeing float64 `csv:"lowest_wellbeing"`
	Volatility      float64 `csv:"volatility"`
	PlayedAt        string  `csv:"played_at"`
}

// ToCSV converts a run for export.
func (r Run) ToCSV() RunCSV {
	played := ""
	if !r.CreatedAt.IsZero() {
		played = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return RunCSV{
		RunID:           r.RunID,
		Profile:         r.Profile,
		Wellbeing:       r.Wellbeing,
		Dopamine:        r.Dopamine,
		Tier:            r.Tier,
		Crashes:         r.Crashes,
		ScreenUses:      r.ScreenUses,
		RealUses:        r.RealUses,
		PeakDopamine:    r.PeakDopamine,
		LowestWellbeing: r.LowestWellbeing,
		Volatility:      r.Volatility,
		PlayedAt:        played,
	}
}

// WriteRunsCSV writes runs with a header line.
func WriteRunsCSV(w io.Writer, runs []Run) error {
	records := make([]RunCSV, len(runs))
	for i, r := range runs {
		records[i] = r.ToCSV()
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("storage: writing runs: %w", err)
	}
	return nil
}
