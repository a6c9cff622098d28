package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWith(n int) *Session {
	s := NewSession()
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, Result{SourceID: string(rune('a' + i))})
	}
	s.SetResults(results)
	return s
}

func TestSession_MoveFromUnselected(t *testing.T) {
	s := sessionWith(3)
	require.Equal(t, -1, s.Selected)

	s.Move(1)
	assert.Equal(t, 0, s.Selected)

	s.SetResults(s.Results) // reset selection
	s.Move(-1)
	assert.Equal(t, 2, s.Selected)
}

func TestSession_MoveWrapsBothEnds(t *testing.T) {
	s := sessionWith(3)

	s.Move(1)
	s.Move(1)
	s.Move(1)
	assert.Equal(t, 2, s.Selected)

	s.Move(1)
	assert.Equal(t, 0, s.Selected, "down past the end wraps to the first")

	s.Move(-1)
	assert.Equal(t, 2, s.Selected, "up past the start wraps to the last")
}

func TestSession_MoveStaysInRange(t *testing.T) {
	s := sessionWith(4)

	// Any number of consecutive moves must land on a valid index.
	deltas := []int{1, 1, -1, 1, 1, 1, -1, -1, -1, -1, 1}
	for _, d := range deltas {
		s.Move(d)
		require.GreaterOrEqual(t, s.Selected, 0)
		require.Less(t, s.Selected, 4)
	}
}

func TestSession_MoveNoResults(t *testing.T) {
	s := NewSession()
	s.Move(1)
	assert.Equal(t, -1, s.Selected)
	s.Move(-1)
	assert.Equal(t, -1, s.Selected)
}

func TestSession_SetResultsResetsSelection(t *testing.T) {
	s := sessionWith(3)
	s.Move(1)
	s.Move(1)
	require.Equal(t, 1, s.Selected)

	s.SetResults([]Result{{SourceID: "x"}})
	assert.Equal(t, -1, s.Selected)
}

func TestSession_Accept(t *testing.T) {
	s := sessionWith(3)

	// No selection falls back to the first result.
	r, ok := s.Accept()
	require.True(t, ok)
	assert.Equal(t, "a", r.SourceID)

	s.Move(1)
	s.Move(1)
	r, ok = s.Accept()
	require.True(t, ok)
	assert.Equal(t, "b", r.SourceID)

	s.SetResults(nil)
	_, ok = s.Accept()
	assert.False(t, ok)
}

func TestSession_CloseResets(t *testing.T) {
	s := sessionWith(2)
	s.Query = "ver"
	s.Open = true
	s.Move(1)

	s.Close()
	assert.Equal(t, "", s.Query)
	assert.Nil(t, s.Results)
	assert.Equal(t, -1, s.Selected)
	assert.False(t, s.Open)
}
