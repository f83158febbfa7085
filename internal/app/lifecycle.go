package app

import (
	"errors"
	"fmt"
)

type release struct {
	name string
	fn   func() error
}

// lifecycle records how to release each acquired resource and releases them
// in reverse acquisition order.
type lifecycle struct {
	stack []release
}

func (l *lifecycle) push(name string, fn func() error) {
	l.stack = append(l.stack, release{name: name, fn: fn})
}

// releaseAll pops and runs every release. Each release runs at most once, so
// a second call does nothing. Failures are collected; later releases still run.
func (l *lifecycle) releaseAll(onRelease func(name string, err error)) error {
	var errs []error
	for len(l.stack) > 0 {
		r := l.stack[len(l.stack)-1]
		l.stack = l.stack[:len(l.stack)-1]

		err := r.fn()
		if onRelease != nil {
			onRelease(r.name, err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
		}
	}
	return errors.Join(errs...)
}

// pending returns the names of unreleased resources in acquisition order.
func (l *lifecycle) pending() []string {
	names := make([]string, len(l.stack))
	for i, r := range l.stack {
		names[i] = r.name
	}
	return names
}
