package page

import (
	"math"
	"strconv"
	"sync"
	"time"
)

const (
	DefaultAnimationDuration = time.Second
	DefaultAnimationFrame    = 16 * time.Millisecond
)

// Animator counts numeric fields up or down to a target. Each field has at most one running
// animation; starting another one cancels it first.
type Animator struct {
	view     View
	duration time.Duration
	frame    time.Duration

	mu     sync.Mutex
	owners map[string]*animation
}

type animation struct {
	stop chan struct{}
}

func NewAnimator(view View, duration, frame time.Duration) *Animator {
	if duration <= 0 {
		duration = DefaultAnimationDuration
	}
	if frame <= 0 {
		frame = DefaultAnimationFrame
	}

	return &Animator{
		view:     view,
		duration: duration,
		frame:    frame,
		owners:   make(map[string]*animation),
	}
}

// Animate moves field from from to to. Every frame adds (to-from)/(duration/frame) and shows
// the floor of the running value; the first frame that reaches or passes to shows to exactly.
func (a *Animator) Animate(field string, from, to int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked(field)

	if from == to {
		a.view.SetText(field, strconv.FormatInt(to, 10))
		return
	}

	anim := &animation{stop: make(chan struct{})}
	a.owners[field] = anim

	step := float64(to-from) / (float64(a.duration) / float64(a.frame))
	go a.run(field, anim, float64(from), float64(to), step)
}

func (a *Animator) run(field string, anim *animation, current, target, step float64) {
	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	for {
		select {
		case <-anim.stop:
			return
		case <-ticker.C:
		}

		current += step
		done := (step > 0 && current >= target) || (step < 0 && current <= target)

		text := strconv.FormatInt(int64(math.Floor(current)), 10)
		if done {
			text = strconv.FormatInt(int64(target), 10)
		}

		a.mu.Lock()
		if a.owners[field] != anim {
			a.mu.Unlock()
			return
		}
		a.view.SetText(field, text)
		if done {
			delete(a.owners, field)
		}
		a.mu.Unlock()

		if done {
			return
		}
	}
}

// Running reports whether field has an animation in flight.
func (a *Animator) Running(field string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, ok := a.owners[field]
	return ok
}

// Stop cancels every animation in flight. Fields keep whatever they last showed.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for field := range a.owners {
		a.cancelLocked(field)
	}
}

func (a *Animator) cancelLocked(field string) {
	if anim, ok := a.owners[field]; ok {
		close(anim.stop)
		delete(a.owners, field)
	}
}
