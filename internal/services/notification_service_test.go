package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilicar_backend/internal/models"
)

func TestHubDeliversToOwnTenantOnly(t *testing.T) {
	hub := NewNotificationHub()

	one, unsubOne := hub.Subscribe(1)
	defer unsubOne()
	two, unsubTwo := hub.Subscribe(2)
	defer unsubTwo()

	hub.Publish(models.AppointmentNotification{AppointmentID: 7, EstablishmentID: 1})

	select {
	case event := <-one:
		assert.Equal(t, int64(7), event.AppointmentID)
	default:
		t.Fatal("tenant 1 subscriber should have received the event")
	}

	select {
	case <-two:
		t.Fatal("tenant 2 subscriber must not see tenant 1 events")
	default:
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewNotificationHub()

	events, unsubscribe := hub.Subscribe(1)
	require.Equal(t, 1, hub.SubscriberCount(1))

	unsubscribe()
	assert.Equal(t, 0, hub.SubscriberCount(1))

	_, open := <-events
	assert.False(t, open, "channel must be closed after unsubscribe")

	// A second call must be a no-op, not a double close.
	unsubscribe()

	// Publishing after unsubscribe must not panic.
	hub.Publish(models.AppointmentNotification{AppointmentID: 1, EstablishmentID: 1})
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewNotificationHub()

	events, unsubscribe := hub.Subscribe(1)
	defer unsubscribe()

	// The subscriber buffer holds 16 events; beyond that the publisher
	// drops instead of blocking.
	for i := 0; i < 50; i++ {
		hub.Publish(models.AppointmentNotification{AppointmentID: int64(i), EstablishmentID: 1})
	}

	received := 0
	for {
		select {
		case <-events:
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 16, received)
}

func TestHubMultipleSubscribersSameTenant(t *testing.T) {
	hub := NewNotificationHub()

	first, unsubFirst := hub.Subscribe(1)
	defer unsubFirst()
	second, unsubSecond := hub.Subscribe(1)
	defer unsubSecond()
	require.Equal(t, 2, hub.SubscriberCount(1))

	hub.Publish(models.AppointmentNotification{AppointmentID: 3, EstablishmentID: 1})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}
