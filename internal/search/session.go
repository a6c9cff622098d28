package search

// Session is the per-surface search state: the palette and the dashboard
// search box each own one. Selected is -1 when nothing is selected and is
// otherwise always a valid index into Results.
type Session struct {
	Query    string
	Results  []Result
	Selected int
	Open     bool
}

// NewSession returns a closed session with no selection.
func NewSession() *Session {
	return &Session{Selected: -1}
}

// SetResults replaces the result list. Selection is intentionally not
// preserved across recomputation; it always resets to none.
func (s *Session) SetResults(results []Result) {
	s.Results = results
	s.Selected = -1
}

// Move shifts the selection by delta with wraparound at both ends. With no
// results it is a no-op. From the unselected state, moving down selects the
// first result and moving up selects the last.
func (s *Session) Move(delta int) {
	n := len(s.Results)
	if n == 0 {
		return
	}
	if s.Selected < 0 {
		if delta >= 0 {
			s.Selected = 0
		} else {
			s.Selected = n - 1
		}
		return
	}
	s.Selected = ((s.Selected+delta)%n + n) % n
}

// Accept resolves the current selection, falling back to the first result
// when nothing is selected. The second return is false when there is nothing
// to resolve. Closing the surface afterwards is the caller's job.
func (s *Session) Accept() (Result, bool) {
	if s.Selected >= 0 && s.Selected < len(s.Results) {
		return s.Results[s.Selected], true
	}
	if len(s.Results) > 0 {
		return s.Results[0], true
	}
	return Result{}, false
}

// Close resets the session to its initial state.
func (s *Session) Close() {
	s.Query = ""
	s.Results = nil
	s.Selected = -1
	s.Open = false
}
