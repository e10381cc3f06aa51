package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total   int
	Current int
	Renamed int
	Skipped int
	Failed  int
	Bytes   int64 // size of the files actually moved
}

// OK reports whether every processed file either renamed or skipped.
func (s *RunStats) OK() bool {
	return s.Failed == 0
}
