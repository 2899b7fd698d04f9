package engine

// EventWithArg fans one value out to every listener, in the order they
// were added. The Manipulator raises OnPickUp and OnDrop through it.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener registers callback; nil callbacks are ignored.
func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback != nil {
		e.listeners = append(e.listeners, callback)
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}
