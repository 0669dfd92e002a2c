package page

import (
	"sync"
	"time"
)

// DefaultFlashDuration is how long a confirmation label stays on a button.
const DefaultFlashDuration = 2 * time.Second

// flasher temporarily replaces button labels. A button flashed again before it reverted keeps
// its first original label and a single revert timer.
type flasher struct {
	view View
	hold time.Duration

	mu      sync.Mutex
	flashes map[string]*flash
}

type flash struct {
	original string
	timer    *time.Timer
}

func newFlasher(view View, hold time.Duration) *flasher {
	if hold <= 0 {
		hold = DefaultFlashDuration
	}

	return &flasher{
		view:    view,
		hold:    hold,
		flashes: make(map[string]*flash),
	}
}

func (f *flasher) Flash(id, label string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	original := f.view.Text(id)
	if prev, ok := f.flashes[id]; ok {
		prev.timer.Stop()
		original = prev.original
	}

	fl := &flash{original: original}
	fl.timer = time.AfterFunc(f.hold, func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.flashes[id] != fl {
			return
		}
		f.view.SetText(id, fl.original)
		delete(f.flashes, id)
	})
	f.flashes[id] = fl

	f.view.SetText(id, label)
}

// Stop reverts every flashed label at once.
func (f *flasher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, fl := range f.flashes {
		fl.timer.Stop()
		f.view.SetText(id, fl.original)
		delete(f.flashes, id)
	}
}
