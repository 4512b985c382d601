package timeline

import (
	"math"

	"github.com/dshills/cadence/internal/event"
	"github.com/dshills/cadence/internal/observe"
)

// Completion is the payload of a complete event.
type Completion struct {
	// TotalLoops is the number of passes played: 1 for a non-looping
	// timeline, the repeat count for a finite loop.
	TotalLoops int
}

// Timeline is a self-nesting time container. See the package
// documentation for the cascade contract.
type Timeline struct {
	name        string
	startTime   float64
	duration    *float64
	framerate   float64
	timeScale   float64
	loop        bool
	repeatCount int

	parent   *Timeline // non-owning back-reference
	children []*Timeline
	objects  []Object

	rawTime     float64
	currentTime float64
	currentLoop int

	playing   bool
	completed bool
	disposed  bool

	emitter   *event.Emitter
	observers observe.Observable
}

// Option configures construction extras beyond the Config surface.
type Option func(*Timeline)

// WithEmitterOptions forwards options to the timeline's event emitter
// (fault handler, history).
func WithEmitterOptions(opts ...event.Option) Option {
	return func(t *Timeline) {
		t.emitter = event.NewEmitter(opts...)
	}
}

// New creates a stopped timeline from cfg, applying defaults
// field-by-field.
func New(cfg Config, opts ...Option) *Timeline {
	cfg = cfg.withDefaults()
	t := &Timeline{
		name:        cfg.Name,
		startTime:   cfg.StartTime,
		duration:    cfg.Duration,
		framerate:   cfg.Framerate,
		timeScale:   cfg.TimeScale,
		loop:        cfg.Loop,
		repeatCount: cfg.RepeatCount,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.emitter == nil {
		t.emitter = event.NewEmitter()
	}
	return t
}

// Accessors.

// Name returns the timeline's label.
func (t *Timeline) Name() string { return t.name }

// StartTime returns the offset in parent-local seconds.
func (t *Timeline) StartTime() float64 { return t.startTime }

// Duration returns the local duration and whether one is set.
func (t *Timeline) Duration() (float64, bool) {
	if t.duration == nil {
		return 0, false
	}
	return *t.duration, true
}

// Framerate returns the nominal frames-per-second hint.
func (t *Timeline) Framerate() float64 { return t.framerate }

// TimeScale returns the time multiplier.
func (t *Timeline) TimeScale() float64 { return t.timeScale }

// CurrentTime returns the loop/clamp-normalized local time.
func (t *Timeline) CurrentTime() float64 { return t.currentTime }

// RawTime returns the unbounded time accumulator.
func (t *Timeline) RawTime() float64 { return t.rawTime }

// CurrentLoop returns the zero-based loop iteration.
func (t *Timeline) CurrentLoop() int { return t.currentLoop }

// IsPlaying reports whether the timeline is advancing.
func (t *Timeline) IsPlaying() bool { return t.playing }

// Parent returns the owning timeline, or nil at the root.
func (t *Timeline) Parent() *Timeline { return t.parent }

// Children returns a copy of the owned child list in insertion order.
func (t *Timeline) Children() []*Timeline {
	if len(t.children) == 0 {
		return nil
	}
	out := make([]*Timeline, len(t.children))
	copy(out, t.children)
	return out
}

// Objects returns a copy of the attached object list.
func (t *Timeline) Objects() []Object {
	if len(t.objects) == 0 {
		return nil
	}
	out := make([]Object, len(t.objects))
	copy(out, t.objects)
	return out
}

// On registers a listener for a timeline event type.
func (t *Timeline) On(typ event.Type, fn event.Listener) (func() bool, error) {
	return t.emitter.On(typ, fn)
}

// Once registers a one-shot listener for a timeline event type.
func (t *Timeline) Once(typ event.Type, fn event.Listener) (func() bool, error) {
	return t.emitter.Once(typ, fn)
}

// Emitter exposes the timeline's event emitter.
func (t *Timeline) Emitter() *event.Emitter { return t.emitter }

// Observe subscribes a generic observer notified at the end of each
// update cascade with the timeline's current time.
func (t *Timeline) Observe(obs observe.Observer) {
	if t.disposed {
		return
	}
	t.observers.Subscribe(obs)
}

// Unobserve removes a generic observer.
func (t *Timeline) Unobserve(obs observe.Observer) {
	t.observers.Unsubscribe(obs)
}

// Playback control.

// Play starts the timeline advancing and, when cascade is true,
// recursively starts all descendants.
func (t *Timeline) Play(cascade bool) {
	if t.disposed {
		return
	}
	t.playing = true
	t.emitter.Emit(event.TypePlay, t.currentTime)
	if cascade {
		for _, child := range t.snapshotChildren() {
			child.Play(cascade)
		}
	}
}

// Pause stops the timeline advancing and, when cascade is true,
// recursively pauses all descendants.
func (t *Timeline) Pause(cascade bool) {
	if t.disposed {
		return
	}
	t.playing = false
	t.emitter.Emit(event.TypePause, t.currentTime)
	if cascade {
		for _, child := range t.snapshotChildren() {
			child.Pause(cascade)
		}
	}
}

// Seek sets the raw time directly (clamped to zero), re-derives the
// normalized time, applies it to attached objects, and — when cascade
// is true — reprojects every descendant's local time from the new
// parent time rather than replaying deltas.
func (t *Timeline) Seek(time float64, cascade bool) {
	if t.disposed {
		return
	}
	t.rawTime = math.Max(0, time)
	t.derive()
	t.emitter.Emit(event.TypeSeek, t.currentTime)

	t.applyObjects()
	if cascade {
		for _, child := range t.snapshotChildren() {
			child.reproject(t.currentTime, cascade)
		}
	}
}

// reproject recomputes local time from a parent time during a seek
// cascade.
func (t *Timeline) reproject(parentTime float64, cascade bool) {
	if t.disposed {
		return
	}
	t.rawTime = math.Max(0, (parentTime-t.startTime)*t.timeScale)
	t.derive()
	t.applyObjects()
	if cascade {
		for _, child := range t.snapshotChildren() {
			child.reproject(t.currentTime, cascade)
		}
	}
}

// Update advances the timeline and cascades. On a root timeline,
// context is a delta time in seconds; on a child it is the parent's
// current time. The per-node order is: derive own time, emit
// timeUpdate if it changed, update children in insertion order, update
// attached objects, notify generic observers.
func (t *Timeline) Update(context float64) {
	if t.disposed {
		return
	}

	if t.playing {
		if t.parent == nil {
			t.rawTime += context * t.timeScale
		} else {
			t.rawTime = math.Max(0, (context-t.startTime)*t.timeScale)
		}
		prev := t.currentTime
		t.derive()
		if t.currentTime != prev {
			t.emitter.Emit(event.TypeTimeUpdate, t.currentTime)
		}
	}

	for _, child := range t.snapshotChildren() {
		child.Update(t.currentTime)
	}
	t.applyObjects()
	t.observers.Notify(t.currentTime)
}

// derive normalizes rawTime into currentTime and currentLoop per the
// loop/clamp policy, emitting complete and loopComplete transitions.
func (t *Timeline) derive() {
	if t.duration == nil {
		t.currentTime = math.Max(0, t.rawTime)
		t.currentLoop = 0
		t.completed = false
		return
	}
	d := *t.duration

	if !t.loop {
		t.currentTime = math.Min(math.Max(0, t.rawTime), d)
		t.currentLoop = 0
		if t.rawTime >= d {
			if t.playing {
				t.playing = false
			}
			if !t.completed {
				t.completed = true
				t.emitter.Emit(event.TypeComplete, Completion{TotalLoops: 1})
			}
		} else {
			t.completed = false
		}
		return
	}

	if t.rawTime < d {
		t.currentTime = math.Max(0, t.rawTime)
		t.currentLoop = 0
		t.completed = false
		return
	}

	totalLoops := int(t.rawTime / d)
	local := math.Mod(t.rawTime, d)

	if t.repeatCount > 0 && totalLoops >= t.repeatCount {
		// Finite loop exhausted: clamp to the final frame.
		t.currentTime = d
		t.currentLoop = t.repeatCount - 1
		if t.playing {
			t.playing = false
		}
		if !t.completed {
			t.completed = true
			t.emitter.Emit(event.TypeComplete, Completion{TotalLoops: t.repeatCount})
		}
		return
	}

	prevLoop := t.currentLoop
	t.currentTime = local
	t.currentLoop = totalLoops
	t.completed = false
	if totalLoops > prevLoop {
		t.emitter.Emit(event.TypeLoopComplete, totalLoops)
	}
}

// applyObjects pushes the current time to attached objects over a
// snapshot of the object list.
func (t *Timeline) applyObjects() {
	if len(t.objects) == 0 {
		return
	}
	snapshot := make([]Object, len(t.objects))
	copy(snapshot, t.objects)
	for _, obj := range snapshot {
		obj.Update(t.currentTime)
	}
}

func (t *Timeline) snapshotChildren() []*Timeline {
	if len(t.children) == 0 {
		return nil
	}
	snapshot := make([]*Timeline, len(t.children))
	copy(snapshot, t.children)
	return snapshot
}

// Hierarchy mutation.

// AddChild appends child to the owned list and sets its back-
// reference, detaching it from any prior parent first. Adding nil,
// itself, or an ancestor fails with ErrInvalidChild.
//
// The child is not subscribed to the parent's generic observers: the
// update cascade already visits every child explicitly, and a
// subscription on top of that would deliver each pass twice.
func (t *Timeline) AddChild(child *Timeline) error {
	if t.disposed {
		return ErrDisposed
	}
	if child == nil || child == t || t.isDescendantOf(child) {
		return ErrInvalidChild
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = t
	t.children = append(t.children, child)
	return nil
}

// isDescendantOf reports whether t sits below other in the tree.
func (t *Timeline) isDescendantOf(other *Timeline) bool {
	for p := t.parent; p != nil; p = p.parent {
		if p == other {
			return true
		}
	}
	return false
}

// RemoveChild detaches child, clearing its back-reference. Removing a
// timeline that is not a child is a no-op returning false.
func (t *Timeline) RemoveChild(child *Timeline) bool {
	for i, c := range t.children {
		if c == child {
			t.children = append(t.children[:i], t.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// AddObject attaches an object. Objects are referenced, never owned;
// no back-reference is set. Attaching the same object twice is a
// no-op.
func (t *Timeline) AddObject(obj Object) {
	if t.disposed || obj == nil {
		return
	}
	for _, existing := range t.objects {
		if sameObject(existing, obj) {
			return
		}
	}
	t.objects = append(t.objects, obj)
}

// RemoveObject detaches an object. Removing an absent object is a
// no-op returning false.
func (t *Timeline) RemoveObject(obj Object) bool {
	for i, existing := range t.objects {
		if sameObject(existing, obj) {
			t.objects = append(t.objects[:i], t.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Loop configuration.

// SetInfiniteLoop enables unbounded looping. The timeline must have a
// finite duration.
func (t *Timeline) SetInfiniteLoop() error {
	if t.duration == nil {
		return ErrNoDuration
	}
	t.loop = true
	t.repeatCount = 0
	return nil
}

// SetFiniteLoop enables looping bounded to repeatCount passes.
// The timeline must have a finite duration and repeatCount must be at
// least one.
func (t *Timeline) SetFiniteLoop(repeatCount int) error {
	if t.duration == nil {
		return ErrNoDuration
	}
	if repeatCount < 1 {
		return ErrInvalidRepeatCount
	}
	t.loop = true
	t.repeatCount = repeatCount
	return nil
}

// Derived queries.

// TotalDuration returns the full play length across repeats. The
// second return is false for infinite timelines: no duration, or
// looping with an unbounded repeat count.
func (t *Timeline) TotalDuration() (float64, bool) {
	if t.duration == nil {
		return 0, false
	}
	if t.loop {
		if t.repeatCount == 0 {
			return 0, false
		}
		return *t.duration * float64(t.repeatCount), true
	}
	return *t.duration, true
}

// TotalProgress returns raw progress through the total duration in
// [0, 1]. The second return is false for infinite timelines.
func (t *Timeline) TotalProgress() (float64, bool) {
	total, ok := t.TotalDuration()
	if !ok || total <= 0 {
		return 0, false
	}
	return math.Min(1, t.rawTime/total), true
}

// IsComplete reports whether the timeline has reached its terminal
// state: a non-looping timeline at its duration, or a finite loop out
// of repeats.
func (t *Timeline) IsComplete() bool {
	return t.completed
}

// Tree queries.

// Depth returns the number of ancestors above this timeline.
func (t *Timeline) Depth() int {
	depth := 0
	for p := t.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Root returns the top of the tree (itself when unparented).
func (t *Timeline) Root() *Timeline {
	node := t
	for node.parent != nil {
		node = node.parent
	}
	return node
}

// Find returns the first timeline named name in this subtree,
// pre-order, or nil.
func (t *Timeline) Find(name string) *Timeline {
	if t.name == name {
		return t
	}
	for _, child := range t.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Dispose tears the timeline down: it recursively disposes owned
// children, clears the object and child lists, detaches from its
// parent, and removes all listeners and observers. Dispose is
// idempotent, and every operation on a disposed timeline is a safe
// no-op.
func (t *Timeline) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.playing = false

	for _, child := range t.snapshotChildren() {
		child.Dispose()
	}
	t.children = nil
	t.objects = nil

	if t.parent != nil {
		t.parent.RemoveChild(t)
	}

	t.emitter.RemoveAllListeners()
	t.observers.Clear()
}
