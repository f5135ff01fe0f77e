package prepnode

// SelectEvent picks the earliest qualifying event deterministically: lowest
// start time, ties broken by event id so retries select the same meeting.
func SelectEvent(in *GraphState) (*GraphState, error) {
	if in == nil || len(in.Events) == 0 {
		return nil, errNilGraphState
	}

	best := 0
	for i := 1; i < len(in.Events); i++ {
		candidate, current := in.Events[i], in.Events[best]
		switch {
		case candidate.Start.Before(current.Start):
			best = i
		case candidate.Start.Equal(current.Start) && candidate.ID < current.ID:
			best = i
		}
	}

	in.Selected = &in.Events[best]
	return in, nil
}
