package entity

import "time"

// Delivery is the outcome of one send attempt.
type Delivery struct {
	StaffID int64
	Name    string
	Email   string
	Err     error
}

// RunReport summarises one execution of a scheduled job.
type RunReport struct {
	RunID      string
	JobID      string
	Instant    time.Time
	StartedAt  time.Time
	FinishedAt time.Time
	Deliveries []Delivery
	Skipped    int
	Err        error
}

func (r *RunReport) Attempted() int {
	return len(r.Deliveries)
}

func (r *RunReport) Succeeded() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Err == nil {
			n++
		}
	}
	return n
}

func (r *RunReport) Failed() []Delivery {
	var failed []Delivery
	for _, d := range r.Deliveries {
		if d.Err != nil {
			failed = append(failed, d)
		}
	}
	return failed
}

// JobInfo describes a declared scheduled job.
type JobInfo struct {
	ID      string
	Name    string
	Spec    string
	NextRun time.Time
}
