// Package observe provides a minimal synchronous publish/subscribe
// primitive. An Observable holds an ordered set of Observers and
// notifies them with an arbitrary context value.
//
// Subscription order is preserved: observers are notified in the order
// they subscribed. Notification iterates over a snapshot of the
// subscriber set, so subscribing or unsubscribing from inside an
// Update callback affects only subsequent notify passes, never the one
// in progress.
//
// Observable is the foundation for the update cascades in the timeline
// package; it carries no event typing. For named, typed events see the
// event package.
package observe
