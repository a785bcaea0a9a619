package main

import "time"

type BenchResult struct {
	Model    string
	Duration time.Duration
	Chars    int
	Err      error
}

type Agg struct {
	Count      int
	Errors     int
	Total      time.Duration
	TotalChars int
}

func (a Agg) succeeded() int {
	return a.Count - a.Errors
}

// Avg covers successful calls only.
func (a Agg) Avg() time.Duration {
	if a.succeeded() == 0 {
		return 0
	}
	return a.Total / time.Duration(a.succeeded())
}

func (a Agg) AvgChars() int {
	if a.succeeded() == 0 {
		return 0
	}
	return a.TotalChars / a.succeeded()
}
