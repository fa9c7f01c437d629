package report

// Stats summarizes the lines of a finished report.
type Stats struct {
	Warnings  int `json:"warnings"`
	Errors    int `json:"errors"`
	Items     int `json:"items"`
	Locations int `json:"locations"`
	Lines     int `json:"lines"`
}

// StatsFunc aggregates a report's lines. It must not modify them.
type StatsFunc func(lines []Line) Stats

// ComputeStats counts titles by kind, location lines and distinct items.
func ComputeStats(lines []Line) Stats {
	var s Stats
	seen := make(map[int]struct{})
	for _, l := range lines {
		s.Lines++
		if l.ItemIdx > 0 {
			seen[l.ItemIdx] = struct{}{}
		}
		if l.Type.Title {
			switch l.Type.Kind {
			case KindWarning:
				s.Warnings++
			case KindError:
				s.Errors++
			}
		} else if isLocation(l.Content) {
			s.Locations++
		}
	}
	s.Items = len(seen)
	return s
}
