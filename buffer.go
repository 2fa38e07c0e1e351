package jsonfuzz

import (
	"errors"
	"io"
)

// InitialCapacity is the size of the accumulation buffer before any growth.
const InitialCapacity = 1 << 20 // 1 MiB

const maxInt = int(^uint(0) >> 1)

// ErrTooLarge is returned when growing the buffer would overflow its capacity.
var ErrTooLarge = errors.New("jsonfuzz: buffer cannot grow any further")

// allocFunc allocates a zeroed byte region of the given size.
// Tests substitute one that fails on demand.
type allocFunc func(size int) ([]byte, error)

func defaultAlloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Buffer is a single contiguous byte region that accumulates input of unknown
// total length. It starts at InitialCapacity and doubles whenever more room
// is needed; capacity never shrinks. Whenever growing fails, the buffer
// releases the region it already holds before reporting the error, so a
// failed Buffer never owns memory.
//
// A Buffer must not be used again after Release.
type Buffer struct {
	buf []byte // len(buf) is the current capacity
	n   int    // count of valid bytes, always <= len(buf)

	alloc allocFunc
}

// NewBuffer allocates a buffer of InitialCapacity.
func NewBuffer() (*Buffer, error) {
	return newBuffer(defaultAlloc)
}

func newBuffer(alloc allocFunc) (*Buffer, error) {
	buf, err := alloc(InitialCapacity)
	if err != nil {
		return nil, err
	}

	return &Buffer{buf: buf, alloc: alloc}, nil
}

// Len returns the number of bytes accumulated so far.
func (b *Buffer) Len() int { return b.n }

// Cap returns the currently allocated capacity.
func (b *Buffer) Cap() int { return len(b.buf) }

// Bytes returns the accumulated bytes. The slice shares the buffer's memory
// and is only valid until Release is called.
func (b *Buffer) Bytes() []byte { return b.buf[:b.n] }

// grownCapacity returns the smallest power-of-two multiple of cur that fits
// want bytes, or 0 if doubling that far would overflow.
func grownCapacity(cur, want int) int {
	if cur <= 0 {
		return 0
	}

	for cur < want {
		if cur > maxInt/2 {
			return 0
		}
		cur <<= 1
	}

	return cur
}

// EnsureSpace grows the buffer until at least n unused bytes remain,
// preserving the accumulated bytes across the resize. If the buffer cannot
// grow, it is released and the allocation error is returned.
func (b *Buffer) EnsureSpace(n int) error {
	if n <= 0 || len(b.buf)-b.n >= n {
		return nil
	}

	if n > maxInt-b.n {
		b.Release()
		return ErrTooLarge
	}

	grown := grownCapacity(len(b.buf), b.n+n)
	if grown == 0 {
		b.Release()
		return ErrTooLarge
	}

	region, err := b.alloc(grown)
	if err != nil {
		b.Release()
		return err
	}

	copy(region, b.buf[:b.n])
	b.buf = region

	return nil
}

// Append copies p onto the end of the buffer, growing it as needed.
func (b *Buffer) Append(p []byte) error {
	if err := b.EnsureSpace(len(p)); err != nil {
		return err
	}

	b.n += copy(b.buf[b.n:], p)

	return nil
}

// Drain reads r to completion, accumulating everything it returns. Reads go
// directly into the unfilled tail of the buffer; when the buffer is exactly
// full it doubles first. End of stream completes accumulation successfully,
// even after zero bytes. Any other read error aborts: the buffer is released
// and the error returned. Errors are not retried.
func (b *Buffer) Drain(r io.Reader) error {
	for {
		if err := b.EnsureSpace(1); err != nil {
			return err
		}

		n, err := r.Read(b.buf[b.n:])
		b.n += n

		if err == io.EOF {
			return nil
		}
		if err != nil {
			b.Release()
			return err
		}
	}
}

// Release returns the buffer's memory. Calling it more than once is fine;
// any other use of a released buffer is not.
func (b *Buffer) Release() {
	b.buf = nil
	b.n = 0
}
