// internal/conversation/dispatcher_test.go
package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherKeepsPerUserOrder(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int64][]string)
	active := make(map[int64]int)
	overlap := false

	d := NewDispatcher(func(ctx context.Context, msg Message) {
		mu.Lock()
		active[msg.UserID]++
		if active[msg.UserID] > 1 {
			overlap = true
		}
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		active[msg.UserID]--
		seen[msg.UserID] = append(seen[msg.UserID], msg.Text)
		mu.Unlock()
	})

	const perUser = 20
	for i := 0; i < perUser; i++ {
		for _, user := range []int64{1, 2, 3} {
			require.True(t, d.Dispatch(context.Background(), Message{UserID: user, Text: fmt.Sprint(i)}))
		}
	}
	d.Close()

	assert.False(t, overlap, "messages of one user ran concurrently")
	for _, user := range []int64{1, 2, 3} {
		require.Len(t, seen[user], perUser)
		for i, text := range seen[user] {
			assert.Equal(t, fmt.Sprint(i), text)
		}
	}
}

func TestDispatcherRunsUsersConcurrently(t *testing.T) {
	release := make(chan struct{})
	started := make(chan int64, 2)

	d := NewDispatcher(func(ctx context.Context, msg Message) {
		started <- msg.UserID
		<-release
	})

	d.Dispatch(context.Background(), Message{UserID: 1})
	d.Dispatch(context.Background(), Message{UserID: 2})

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("second user was blocked by the first")
		}
	}
	close(release)
	d.Close()
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(func(ctx context.Context, msg Message) {})
	d.Close()
	assert.False(t, d.Dispatch(context.Background(), Message{UserID: 1}))
}

func TestStateTable(t *testing.T) {
	table := NewStateTable()
	assert.Equal(t, StateIdle, table.Get(7))

	table.Set(7, StateAwaitingCity)
	assert.Equal(t, StateAwaitingCity, table.Get(7))
	assert.Equal(t, 1, table.Len())

	table.Set(7, StateIdle)
	assert.Equal(t, StateIdle, table.Get(7))
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, "awaiting_city", StateAwaitingCity.String())
}
