// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard is not supported on this system")

type System struct {
	unsupported bool
}

func New() *System {
	return &System{unsupported: clipboard.Unsupported}
}

func (s *System) WriteAll(text string) error {
	if s.unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
