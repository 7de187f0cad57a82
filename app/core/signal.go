package core

import "slices"

// Signal is a node's "moved" notification channel. A node owns one and
// emits it whenever its port anchors may have changed. Subscribers are plain
// callbacks, so the node never holds references to connections.
type Signal struct {
	handlers []signalHandler
	nextID   uint32
}

type signalHandler struct {
	id uint32
	fn func()
}

// Subscription is the token returned by Subscribe.
type Subscription struct {
	id  uint32
	sig *Signal
}

func (s *Signal) Subscribe(fn func()) Subscription {
	s.nextID++
	s.handlers = append(s.handlers, signalHandler{id: s.nextID, fn: fn})
	return Subscription{id: s.nextID, sig: s}
}

// Cancel unregisters the callback. Cancelling twice, or cancelling the zero
// Subscription, does nothing.
func (h Subscription) Cancel() {
	if h.sig == nil {
		return
	}
	h.sig.handlers = slices.DeleteFunc(h.sig.handlers, func(sh signalHandler) bool {
		return sh.id == h.id
	})
}

func (h Subscription) Active() bool {
	return h.sig != nil && h.sig.has(h.id)
}

// Emit calls every subscriber in subscription order. Handlers may subscribe
// or cancel while the signal is emitting; a handler cancelled mid-emit is
// not called.
func (s *Signal) Emit() {
	for _, h := range slices.Clone(s.handlers) {
		if s.has(h.id) {
			h.fn()
		}
	}
}

func (s *Signal) Len() int {
	return len(s.handlers)
}

func (s *Signal) has(id uint32) bool {
	return slices.ContainsFunc(s.handlers, func(sh signalHandler) bool { return sh.id == id })
}
