package authstate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	release chan struct{}
	err     error
	calls   atomic.Int32
}

func (f *fakeChecker) Check(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return "u-1", nil
}

func waitDone(t *testing.T, s *Store) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("check did not finish")
	}
}

func TestNew_StartsLoading(t *testing.T) {
	fc := &fakeChecker{release: make(chan struct{})}
	s := New(context.Background(), fc)
	defer s.Close()

	assert.Equal(t, State{IsAuthenticated: false, IsLoading: true}, s.Snapshot())

	close(fc.release)
	waitDone(t, s)
	assert.Equal(t, State{IsAuthenticated: true, IsLoading: false}, s.Snapshot())
	assert.EqualValues(t, 1, fc.calls.Load())
}

func TestNew_CheckFailure(t *testing.T) {
	s := New(context.Background(), &fakeChecker{err: errors.New("401")})
	defer s.Close()

	waitDone(t, s)
	assert.Equal(t, State{IsAuthenticated: false, IsLoading: false}, s.Snapshot())
}

func TestLogin_SetsAuthenticated(t *testing.T) {
	s := New(context.Background(), &fakeChecker{err: errors.New("401")})
	defer s.Close()
	waitDone(t, s)

	s.Login()
	assert.Equal(t, State{IsAuthenticated: true, IsLoading: false}, s.Snapshot())
}

func TestClose_DiscardsLateResult(t *testing.T) {
	fc := &fakeChecker{release: make(chan struct{})}
	s := New(context.Background(), fc)

	s.Close()
	waitDone(t, s)

	assert.Equal(t, State{IsAuthenticated: false, IsLoading: true}, s.Snapshot())
}

func TestHungCheck_StaysLoading(t *testing.T) {
	fc := &fakeChecker{release: make(chan struct{})}
	s := New(context.Background(), fc)
	defer s.Close()

	select {
	case <-s.Done():
		t.Fatal("store finished without an answer")
	case <-time.After(50 * time.Millisecond):
	}
	assert.True(t, s.Snapshot().IsLoading)
}

func TestSubscribe_ReceivesChanges(t *testing.T) {
	fc := &fakeChecker{release: make(chan struct{})}
	s := New(context.Background(), fc)
	defer s.Close()

	ch, stop := s.Subscribe()
	close(fc.release)

	select {
	case st := <-ch:
		assert.Equal(t, State{IsAuthenticated: true, IsLoading: false}, st)
	case <-time.After(2 * time.Second):
		t.Fatal("no state published")
	}

	stop()
	_, ok := <-ch
	require.False(t, ok, "channel closed after unsubscribe")
	stop()
}
