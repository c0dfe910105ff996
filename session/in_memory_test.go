package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eoss-th/linebrain/core"
)

type stubSession struct{ id int }

func (stubSession) Wake(context.Context) error { return nil }

func (stubSession) Parse(context.Context, core.MessageObject) (string, error) { return "", nil }

func TestGetOrCreate_CachesPerSender(t *testing.T) {
	s := NewStore()

	var calls int
	factory := func() (core.ReasoningSession, error) {
		calls++
		return stubSession{id: calls}, nil
	}

	first, err := s.GetOrCreate("S1", factory)
	require.NoError(t, err)
	second, err := s.GetOrCreate("S1", factory)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Len())
}

func TestGetOrCreate_FactoryErrorCachesNothing(t *testing.T) {
	s := NewStore()

	_, err := s.GetOrCreate("S1", func() (core.ReasoningSession, error) {
		return nil, errors.New("wake failed")
	})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())

	sess, err := s.GetOrCreate("S1", func() (core.ReasoningSession, error) {
		return stubSession{id: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, stubSession{id: 7}, sess)
}

func TestGetOrCreate_ConcurrentCallersShareOneFactoryRun(t *testing.T) {
	s := NewStore()

	var calls atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetOrCreate("S1", func() (core.ReasoningSession, error) {
				calls.Add(1)
				return stubSession{}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, 1, s.Len())
}
