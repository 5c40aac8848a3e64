package tubefall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type TaskStatus int

const (
	TaskRunning TaskStatus = iota
	TaskComplete
)

func (s TaskStatus) String() string {
	switch s {
	case TaskRunning:
		return "Running"
	case TaskComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Task is a unit of time-based work driven by the Scheduler.
type Task interface {
	Advance(dt float64) TaskStatus
}

// Keyed tasks replace any running task with the same key when added.
type Keyed interface {
	Key() string
}

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 {
	return t
}

func Power1Out(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

func Power2Out(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

func Power2InOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Vec3Tween animates a vector property from its value at the first
// Advance towards To.
type Vec3Tween struct {
	To       mgl64.Vec3
	Duration float64
	Ease     Easing

	OnStart    func()
	OnUpdate   func()
	OnComplete func()

	key     string
	get     func() mgl64.Vec3
	set     func(mgl64.Vec3)
	from    mgl64.Vec3
	elapsed float64
	started bool
}

func NewVec3Tween(get func() mgl64.Vec3, set func(mgl64.Vec3), to mgl64.Vec3, duration float64, ease Easing) *Vec3Tween {
	if ease == nil {
		ease = Linear
	}
	return &Vec3Tween{
		To:       to,
		Duration: duration,
		Ease:     ease,
		get:      get,
		set:      set,
	}
}

// WithKey sets the overwrite key and returns the tween for chaining.
func (t *Vec3Tween) WithKey(key string) *Vec3Tween {
	t.key = key
	return t
}

func (t *Vec3Tween) Key() string {
	return t.key
}

func (t *Vec3Tween) Advance(dt float64) TaskStatus {
	if !t.started {
		t.started = true
		t.from = t.get()
		if t.OnStart != nil {
			t.OnStart()
		}
	}

	t.elapsed += dt
	k := 1.0
	if t.Duration > 0 {
		k = clampFloat(t.elapsed/t.Duration, 0, 1)
	}

	e := t.Ease(k)
	t.set(t.from.Add(t.To.Sub(t.from).Mul(e)))
	if t.OnUpdate != nil {
		t.OnUpdate()
	}

	if k < 1 {
		return TaskRunning
	}
	if t.OnComplete != nil {
		t.OnComplete()
	}
	return TaskComplete
}

// Scheduler runs tasks in insertion order. Tasks added from a callback
// during Step first advance on the next Step.
type Scheduler struct {
	tasks []Task
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(task Task) {
	if k, ok := task.(Keyed); ok && k.Key() != "" {
		s.kill(k.Key())
	}
	s.tasks = append(s.tasks, task)
}

func (s *Scheduler) kill(key string) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if k, ok := t.(Keyed); ok && k.Key() == key {
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

func (s *Scheduler) Step(dt float64) {
	current := s.tasks
	s.tasks = nil
	var running []Task
	for _, t := range current {
		if t.Advance(dt) == TaskRunning {
			running = append(running, t)
		}
	}
	// tasks added while stepping are in s.tasks and may have killed
	// some of the ones that just ran
	s.tasks = append(s.filterKilled(running), s.tasks...)
}

// filterKilled drops running tasks whose key was taken over by a task
// added during the same Step.
func (s *Scheduler) filterKilled(running []Task) []Task {
	if len(s.tasks) == 0 {
		return running
	}
	added := map[string]bool{}
	for _, t := range s.tasks {
		if k, ok := t.(Keyed); ok && k.Key() != "" {
			added[k.Key()] = true
		}
	}
	kept := running[:0]
	for _, t := range running {
		if k, ok := t.(Keyed); ok && added[k.Key()] {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

func (s *Scheduler) Len() int {
	return len(s.tasks)
}
