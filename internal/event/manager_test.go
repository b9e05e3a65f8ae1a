package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitEventReachesListener(t *testing.T) {
	t.Cleanup(Reset)

	received := make(chan interface{}, 1)

	AddEventListener(ItemListedEvent, func(msg interface{}) {
		received <- msg
	})

	EmitEvent(ItemListedEvent, "payload")

	select {
	case msg := <-received:
		assert.Equal(t, "payload", msg)
	case <-time.After(time.Second):
		t.Fatal("listener never received the event")
	}
}

func TestEmitEventFiltersByType(t *testing.T) {
	t.Cleanup(Reset)

	received := make(chan interface{}, 1)

	AddEventListener(ItemSoldEvent, func(msg interface{}) {
		received <- msg
	})

	EmitEvent(ItemRelistedEvent, "payload")

	select {
	case <-received:
		t.Fatal("listener received an event of a different type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEmitEventPreservesOrder(t *testing.T) {
	t.Cleanup(Reset)

	const emitted = 200

	received := make(chan interface{}, emitted)

	AddEventListener(TokenMintedEvent, func(msg interface{}) {
		received <- msg
	})

	for i := 0; i < emitted; i++ {
		EmitEvent(TokenMintedEvent, i)
	}

	for want := 0; want < emitted; want++ {
		select {
		case got := <-received:
			require.Equal(t, want, got, "delivery %d arrived out of order", want)
		case <-time.After(time.Second):
			t.Fatalf("delivery %d never arrived", want)
		}
	}
}

func TestResetRemovesListeners(t *testing.T) {
	received := make(chan interface{}, 1)

	AddEventListener(ItemListedEvent, func(msg interface{}) {
		received <- msg
	})

	Reset()

	EmitEvent(ItemListedEvent, "payload")

	select {
	case <-received:
		t.Fatal("listener survived the reset")
	case <-time.After(50 * time.Millisecond):
	}
}
