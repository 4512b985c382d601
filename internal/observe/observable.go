package observe

import "reflect"

// Observer receives notifications from an Observable.
type Observer interface {
	// Update is called synchronously for each notification.
	// The context value is defined by the notifying Observable.
	Update(context any)
}

// ObserverFunc adapts a plain function to an Observer. Each call
// returns a distinct, comparable observer value, so the result can be
// subscribed idempotently and unsubscribed later; hold on to it for
// both.
func ObserverFunc(fn func(context any)) Observer {
	return &funcObserver{fn: fn}
}

type funcObserver struct {
	fn func(context any)
}

func (f *funcObserver) Update(context any) {
	f.fn(context)
}

// sameObserver reports whether two observers are the same
// registration. Comparing uncomparable dynamic types with == would
// panic, so such observers never match and cannot be deduplicated or
// unsubscribed; ObserverFunc exists to avoid that.
func sameObserver(a, b Observer) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) {
		return false
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}

// Observable maintains an ordered set of observers and notifies them
// synchronously. The zero value is ready to use.
//
// Observable is not safe for concurrent use; the engine is
// single-threaded and host-driven.
type Observable struct {
	observers []Observer
}

// Subscribe adds an observer. Subscribing an observer that is already
// present is a no-op, so double-subscription cannot cause double
// notification.
func (o *Observable) Subscribe(obs Observer) {
	if obs == nil {
		return
	}
	for _, existing := range o.observers {
		if sameObserver(existing, obs) {
			return
		}
	}
	o.observers = append(o.observers, obs)
}

// Unsubscribe removes an observer. Removing an observer that is not
// subscribed is a no-op.
func (o *Observable) Unsubscribe(obs Observer) {
	for i, existing := range o.observers {
		if sameObserver(existing, obs) {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// Notify calls Update(context) on every currently subscribed observer
// in subscription order. Iteration uses a snapshot taken before the
// first callback, so mutation during a notify pass affects only later
// passes.
func (o *Observable) Notify(context any) {
	if len(o.observers) == 0 {
		return
	}
	snapshot := make([]Observer, len(o.observers))
	copy(snapshot, o.observers)
	for _, obs := range snapshot {
		obs.Update(context)
	}
}

// Count returns the number of subscribed observers.
func (o *Observable) Count() int {
	return len(o.observers)
}

// Clear removes all observers.
func (o *Observable) Clear() {
	o.observers = nil
}
