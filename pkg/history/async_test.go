package history

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type memoryRecorder struct {
	lock        sync.Mutex
	hands       []*Hand
	settlements []*Settlement
	err         error
}

func (m *memoryRecorder) RecordHand(_ context.Context, hand *Hand) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.hands = append(m.hands, hand)
	return m.err
}

func (m *memoryRecorder) RecordSettlement(_ context.Context, s *Settlement) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.settlements = append(m.settlements, s)
	return m.err
}

func TestAsync(t *testing.T) {
	a := assert.New(t)

	logger, _ := test.NewNullLogger()
	m := &memoryRecorder{}
	r := NewAsync(m, logger)

	hand := &Hand{ID: uuid.New(), RoomID: "ABC123", Number: 1}
	a.NoError(r.RecordHand(context.Background(), hand))
	a.NoError(r.RecordSettlement(context.Background(), &Settlement{ID: uuid.New(), RoomID: "ABC123"}))
	r.Close()

	a.Equal([]*Hand{hand}, m.hands)
	a.Len(m.settlements, 1)

	// closing twice is safe
	r.Close()

	err := r.RecordHand(context.Background(), &Hand{})
	a.True(errors.Is(err, ErrClosed))
	a.Len(m.hands, 1)
}

func TestAsync_logsErrors(t *testing.T) {
	a := assert.New(t)

	logger, hook := test.NewNullLogger()
	r := NewAsync(&memoryRecorder{err: errors.New("connection refused")}, logger)
	a.NoError(r.RecordHand(context.Background(), &Hand{}))
	r.Close()

	if a.Len(hook.Entries, 1) {
		a.Equal(logrus.ErrorLevel, hook.LastEntry().Level)
		a.Equal("could not record history", hook.LastEntry().Message)
	}
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	assert.NoError(t, r.RecordHand(context.Background(), &Hand{}))
	assert.NoError(t, r.RecordSettlement(context.Background(), &Settlement{}))
}
