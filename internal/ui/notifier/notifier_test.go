package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeUnsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)

	n.mu.RLock()
	assert.Len(t, n.listeners, 1)
	n.mu.RUnlock()

	n.Unsubscribe(ch)

	n.mu.RLock()
	assert.Len(t, n.listeners, 0)
	n.mu.RUnlock()

	// Unsubscribe closes the channel.
	_, open := <-ch
	assert.False(t, open)
}

func TestNotifier_BroadcastReachesAllListeners(t *testing.T) {
	n := New()

	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	n.Broadcast()

	for i, ch := range []chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(100 * time.Millisecond):
			t.Errorf("listener %d did not receive the ping", i+1)
		}
	}
}

func TestNotifier_BroadcastNeverBlocks(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// A full buffer means a ping is already pending; further broadcasts
	// must return immediately instead of queueing.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			n.Broadcast()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on an unread listener")
	}

	<-ch
	select {
	case <-ch:
		t.Error("coalesced broadcasts should leave at most one pending ping")
	default:
	}
}

func TestNotifier_ConcurrentUse(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast()
			n.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	n.mu.RLock()
	assert.Len(t, n.listeners, 0)
	n.mu.RUnlock()
}
