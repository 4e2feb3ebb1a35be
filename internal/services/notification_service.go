package services

import (
	"sync"

	"facilicar_backend/internal/models"
)

// NotificationHub is an in-process fan-out of appointment events to
// connected stream subscribers. There is no replay: a subscriber only sees
// events published while its channel is registered. Slow subscribers are
// skipped instead of blocking publishers.
type NotificationHub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[chan models.AppointmentNotification]struct{}
}

// NewNotificationHub creates an empty hub.
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		subscribers: make(map[int64]map[chan models.AppointmentNotification]struct{}),
	}
}

// Subscribe registers a buffered channel for one establishment's events and
// returns it with an unsubscribe func. The caller must call unsubscribe when
// the stream closes.
func (h *NotificationHub) Subscribe(establishmentID int64) (<-chan models.AppointmentNotification, func()) {
	ch := make(chan models.AppointmentNotification, 16)

	h.mu.Lock()
	if h.subscribers[establishmentID] == nil {
		h.subscribers[establishmentID] = make(map[chan models.AppointmentNotification]struct{})
	}
	h.subscribers[establishmentID][ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[establishmentID]; ok {
			if _, present := subs[ch]; present {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.subscribers, establishmentID)
			}
		}
		h.mu.Unlock()
	}
	return ch, unsubscribe
}

// Publish delivers the event to every live subscriber of its establishment.
// Full buffers drop the event for that subscriber.
func (h *NotificationHub) Publish(event models.AppointmentNotification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[event.EstablishmentID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports live subscribers for an establishment.
func (h *NotificationHub) SubscriberCount(establishmentID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[establishmentID])
}
