package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/brigade/core/factory"
)

type recordSink struct {
	days []DayRecord
	runs []RunRecord
	err  error
}

func (s *recordSink) RecordDay(r DayRecord) error { s.days = append(s.days, r); return s.err }
func (s *recordSink) RecordRun(r RunRecord) error { s.runs = append(s.runs, r); return s.err }

type dayOnlySink struct{ n int }

func (s *dayOnlySink) RecordDay(DayRecord) error { s.n++; return nil }

func TestMultiSinkForwards(t *testing.T) {
	a := &recordSink{}
	b := &dayOnlySink{}
	m := NewMultiSink(a, b)
	require.NoError(t, m.RecordDay(DayRecord{Day: 1}))
	require.NoError(t, m.RecordRun(RunRecord{Days: 1, Completed: true}))
	assert.Len(t, a.days, 1)
	assert.Len(t, a.runs, 1)
	assert.Equal(t, 1, b.n)
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	other := &dayOnlySink{}
	m := NewMultiSink(&recordSink{err: boom}, other)
	err := m.RecordDay(DayRecord{Day: 2})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, other.n, "later sinks still receive the record")
}

func TestNewSinkFromConfig(t *testing.T) {
	s, err := NewSink(nil)
	require.NoError(t, err)
	assert.IsType(t, NopSink{}, s)

	s, err = NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
	require.NoError(t, err)
	assert.IsType(t, &MultiSink{}, s)

	_, err = NewSink([]factory.ModuleConfig{{Type: "bogus"}})
	assert.Error(t, err)
}

type closingSink struct {
	dayOnlySink
	closed int
}

func (s *closingSink) Close() { s.closed++ }

func TestMultiSinkClose(t *testing.T) {
	a, b := &closingSink{}, &closingSink{}
	m := NewMultiSink(a, &recordSink{}, b)
	m.Close()
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
}
