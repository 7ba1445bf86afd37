package domain

import (
	"time"
)

func NewProfile() *CalculationProfile {
	return &CalculationProfile{
		StartTime: time.Now(),
	}
}

type CalculationProfileStage struct {
	Name      string    `json:"name"`
	ElapsedMs int64     `json:"elapsedMs"`
	Time      time.Time `json:"time"`
}

// CalculationProfile tracks wall time of the stages of one calculation
// run. Total elapsed time is what lands in CALC_COMPLETED.
type CalculationProfile struct {
	StartTime time.Time                 `json:"-"`
	Stages    []CalculationProfileStage `json:"stages"`
	TotalMs   int64                     `json:"totalMs"`
}

func (p *CalculationProfile) Add(name string) {
	last := p.StartTime
	if len(p.Stages) > 0 {
		last = p.Stages[len(p.Stages)-1].Time
	}
	now := time.Now()
	p.Stages = append(p.Stages, CalculationProfileStage{
		Name:      name,
		ElapsedMs: now.Sub(last).Milliseconds(),
		Time:      now,
	})
}

func (p *CalculationProfile) End() time.Duration {
	elapsed := time.Since(p.StartTime)
	p.TotalMs = elapsed.Milliseconds()
	return elapsed
}
