package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversToCollectionSubscribers(t *testing.T) {
	broker := NewBroker()
	ch, cancel := broker.Subscribe("applications")
	defer cancel()

	other, cancelOther := broker.Subscribe("postings")
	defer cancelOther()

	broker.Publish(context.Background(), Change{
		Collection: "applications",
		Op:         OpCreated,
		DocumentID: "app-1",
	})

	select {
	case change := <-ch:
		assert.Equal(t, "app-1", change.DocumentID)
		assert.Equal(t, OpCreated, change.Op)
		assert.False(t, change.Timestamp.IsZero(), "publish stamps missing timestamps")
	case <-time.After(time.Second):
		t.Fatal("expected a change delivery")
	}

	select {
	case <-other:
		t.Fatal("postings subscriber must not see application changes")
	default:
	}
}

func TestBrokerCancelClosesChannel(t *testing.T) {
	broker := NewBroker()
	ch, cancel := broker.Subscribe("reviews")

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// A second cancel is a no-op.
	cancel()

	broker.Publish(context.Background(), Change{Collection: "reviews", Op: OpCreated, DocumentID: "r1"})
}

func TestBrokerDropsWhenSubscriberFull(t *testing.T) {
	broker := NewBroker()
	ch, cancel := broker.Subscribe("postings")
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		broker.Publish(context.Background(), Change{Collection: "postings", Op: OpUpdated, DocumentID: "p1"})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	require.Equal(t, subscriberBuffer, received, "overflow past the buffer is dropped, not queued")
}

func TestBrokerFansOutToMultipleSubscribers(t *testing.T) {
	broker := NewBroker()
	first, cancelFirst := broker.Subscribe("applications")
	defer cancelFirst()
	second, cancelSecond := broker.Subscribe("applications")
	defer cancelSecond()

	broker.Publish(context.Background(), Change{Collection: "applications", Op: OpUpdated, DocumentID: "app-9"})

	for _, ch := range []<-chan Change{first, second} {
		select {
		case change := <-ch:
			assert.Equal(t, "app-9", change.DocumentID)
		case <-time.After(time.Second):
			t.Fatal("expected delivery on every subscriber")
		}
	}
}
