// Package prompt asks whether a file may be deleted.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrAborted is returned when the user interrupts a confirmation or the
// answers run out. The whole sweep stops.
var ErrAborted = errors.New("aborted")

// Confirmer decides whether a deletion goes ahead
type Confirmer interface {
	// Confirm asks question and reports the answer
	Confirm(ctx context.Context, question string) (bool, error)
}

// Always accepts every question after echoing it. Used with --force.
type Always struct {
	out io.Writer
}

// NewAlways creates a confirmer that never asks
func NewAlways(out io.Writer) *Always {
	if out == nil {
		out = io.Discard
	}
	return &Always{out: out}
}

// Confirm writes the question and accepts it
func (a *Always) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ErrAborted
	}
	fmt.Fprint(a.out, question+" ")
	return true, nil
}

type answer struct {
	text string
	err  error
}

// Terminal asks on out and reads one line per question from in. Only "y"
// and "yes" (any case) accept. Close releases the reader goroutine.
type Terminal struct {
	in      io.Reader
	out     io.Writer
	answers chan answer
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	closing sync.Once
}

// NewTerminal creates an interactive confirmer
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	if out == nil {
		out = io.Discard
	}
	return &Terminal{
		in:      in,
		out:     out,
		answers: make(chan answer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Confirm blocks until a line is read or ctx is cancelled. Cancellation and
// end of input both return ErrAborted.
func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ErrAborted
	}
	t.once.Do(t.read)

	fmt.Fprint(t.out, question+"? ")

	select {
	case <-t.done:
		return false, ErrAborted
	case <-ctx.Done():
		return false, ErrAborted
	case a, ok := <-t.answers:
		if !ok || a.err != nil {
			return false, ErrAborted
		}
		switch strings.ToLower(strings.TrimSpace(a.text)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// Close stops the reader. A read already blocked on in finishes when in
// delivers its next line or is closed; the answer is then dropped.
func (t *Terminal) Close() error {
	t.closing.Do(func() {
		close(t.done)
		t.once.Do(func() { close(t.stopped) })
	})
	return nil
}

// read feeds answers from a single goroutine so a pending read survives
// across questions
func (t *Terminal) read() {
	go func() {
		defer close(t.stopped)
		defer close(t.answers)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			if !t.send(answer{text: scanner.Text()}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			t.send(answer{err: err})
		}
	}()
}

func (t *Terminal) send(a answer) bool {
	select {
	case t.answers <- a:
		return true
	case <-t.done:
		return false
	}
}
