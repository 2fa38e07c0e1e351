package jsonfuzz

import "io"

// FallbackLiteral is the input fed to the engine when the stream yielded no
// bytes at all, so the engine always sees a nonzero length. It is read-only
// and takes no part in the accumulation buffer's ownership handoff.
var FallbackLiteral = []byte("{}")

// Feed hands data to the engine exactly once and releases everything the
// attempt produced, no matter how it went. Empty data is substituted by
// FallbackLiteral. An engine that cannot create a handle is tolerated: the
// parse is skipped and nothing else happens, since a harness that cannot
// acquire its own resources must not look like a finding in the engine.
func Feed(e Engine, data []byte) {
	if len(data) == 0 {
		data = FallbackLiteral
	}

	h, err := e.NewHandle()
	if err != nil {
		return
	}
	defer h.Close()

	v, _ := h.Parse(data)

	// Touch the post-parse error state so that path is exercised; the
	// outcome does not matter to the harness
	_ = h.Err()

	if v != nil {
		v.Release()
	}
}

// Run drains r into memory and feeds the accumulated bytes to e. It returns
// the process exit status: 1 if the buffer could not be allocated or grown
// or if reading failed (no parse is attempted then), 0 on every other path.
// All resources are released before Run returns.
func Run(r io.Reader, e Engine) int {
	return run(r, e, defaultAlloc)
}

func run(r io.Reader, e Engine, alloc allocFunc) int {
	buf, err := newBuffer(alloc)
	if err != nil {
		return 1
	}
	defer buf.Release()

	if err := buf.Drain(r); err != nil {
		return 1
	}

	Feed(e, buf.Bytes())

	return 0
}
