package state

import (
	"strconv"
	"sync"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DispatchNotifiesAfterApply(t *testing.T) {
	t.Parallel()
	store := NewStore()

	var seen []State
	unsubscribe := store.Subscribe(func(s State) {
		seen = append(seen, s)
		assert.Equal(t, s, store.State())
	})

	store.Dispatch(Event{Type: GetProfile, Payload: &models.Profile{ID: 1}})
	require.Len(t, seen, 1)
	assert.False(t, seen[0].Profile.Loading)

	unsubscribe()
	store.Dispatch(Event{Type: ClearProfile})
	assert.Len(t, seen, 1)
}

func TestStore_SubscriberMayDispatch(t *testing.T) {
	t.Parallel()
	store := NewStore()
	store.Subscribe(func(s State) {
		for _, a := range s.Alerts {
			if a.ID == "once" {
				store.Dispatch(Event{Type: RemoveAlert, Payload: "once"})
			}
		}
	})

	store.Dispatch(Event{Type: SetAlert, Payload: Alert{ID: "once"}})
	assert.Empty(t, store.State().Alerts)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	t.Parallel()
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Dispatch(Event{Type: SetAlert, Payload: Alert{ID: strconv.Itoa(i)}})
		}(i)
	}
	wg.Wait()
	assert.Len(t, store.State().Alerts, 50)
}
