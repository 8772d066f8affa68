package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-gateway/internal/weather"
)

type recordingRefresher struct {
	mu      sync.Mutex
	queries []string
	fail    string
}

func (r *recordingRefresher) Refresh(_ context.Context, q weather.Query) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q.Location())
	if q.Location() == r.fail {
		return errors.New("refresh failed")
	}
	return nil
}

type countingPurger struct{ calls int }

func (p *countingPurger) Purge() int {
	p.calls++
	return 0
}

func TestRunOnceRefreshesEveryLocation(t *testing.T) {
	ref := &recordingRefresher{fail: "Atlantis"}
	purger := &countingPurger{}
	s := New([]string{"London", "Atlantis", "560001"}, time.Minute, ref, purger, nil)

	s.RunOnce()

	sort.Strings(ref.queries)
	assert.Equal(t, []string{"560001", "Atlantis", "London"}, ref.queries)
	assert.Equal(t, 1, purger.calls)
}

func TestStartWithoutLocations(t *testing.T) {
	s := New(nil, time.Minute, &recordingRefresher{}, nil, nil)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStartSchedulesJob(t *testing.T) {
	s := New([]string{"London"}, time.Minute, &recordingRefresher{}, nil, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.scheduler.Jobs(), 1)
}
