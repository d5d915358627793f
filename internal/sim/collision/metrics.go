package collision

import "time"

// Metrics aggregates collision pass statistics.
type Metrics struct {
	Frames       uint64
	Collisions   uint64
	Errors       uint64
	SkippedPairs uint64 // pairs skipped because a breaker was open
	BudgetAborts uint64 // passes cut short by the frame error budget
	Evicted      uint64 // collidables removed for bad geometry or exhausted budget
	OpenBreakers int

	LastFrameCollisions int
	LastFrameErrors     int

	LastFrame  time.Duration
	WorstFrame time.Duration
	TotalFrame time.Duration
}

// AverageFrame returns the mean pass duration.
func (m Metrics) AverageFrame() time.Duration {
	if m.Frames == 0 {
		return 0
	}
	return m.TotalFrame / time.Duration(m.Frames)
}

func (m *Metrics) recordFrame(d time.Duration, collisions, errs int) {
	m.Frames++
	m.LastFrame = d
	m.TotalFrame += d
	if d > m.WorstFrame {
		m.WorstFrame = d
	}
	m.LastFrameCollisions = collisions
	m.LastFrameErrors = errs
}
