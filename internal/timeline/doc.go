// Package timeline implements nested, independently scaled time
// contexts and the deterministic update cascade between them.
//
// A Timeline is a tree node: it exclusively owns its child timelines
// and references (never owns) the objects attached to it. The host
// drives the root with Update(deltaSeconds) once per frame; each node
// converts its parent's current time into its own local time, applies
// loop/clamp normalization, and cascades.
//
// The per-node update order is part of the contract: own-time
// derivation, time-update event, children (pre-order, insertion
// order), locally attached objects, then generic observers. Child and
// object lists are snapshotted before iteration, so mutating the tree
// from inside a callback affects only subsequent updates.
//
// All operations on a disposed timeline are safe no-ops, which keeps
// racy teardown orders harmless.
package timeline
