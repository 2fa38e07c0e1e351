package jsonfuzz

import (
	"bytes"
	"testing"
)

func TestTokenerParse(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{`{}`, false},
		{`{"a":1}`, false},
		{`[1, 2, 3]`, false},
		{`"text"`, false},
		{`42`, false},
		{`true`, false},
		// Only the first complete value counts, trailing bytes are ignored
		{`{"a":1} trailing garbage`, false},
		{`{`, true},
		{`{"a":}`, true},
		{`nonsense`, true},
		{``, true},
		{"\xff\xfe", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, err := Tokener{}.NewHandle()
			if err != nil {
				t.Fatalf("NewHandle() error = %v", err)
			}
			defer h.Close()

			v, err := h.Parse([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if h.Err() != err {
				t.Errorf("Err() = %v, want the Parse error %v", h.Err(), err)
			}

			if tt.wantErr {
				if v != nil {
					t.Errorf("Parse(%q) returned a value alongside an error", tt.input)
				}
				return
			}

			if v == nil {
				t.Fatalf("Parse(%q) returned no value and no error", tt.input)
			}
			v.Release()
		})
	}
}

func TestRunRegressions(t *testing.T) {
	// Inputs in the shape of past parser crashers; the harness must come
	// through all of them with status 0
	crashers := []string{
		"00\"0000\"0{",
		"0000\"\"{",
		"\"0\"{",
		"{\"\":",
		"[[[[[[[[",
		"{'",
		"\x00{}",
		"{}\x00",
	}

	for _, c := range crashers {
		for _, e := range []Engine{Tokener{}, JSTokener{}} {
			if got := Run(bytes.NewReader([]byte(c)), e); got != 0 {
				t.Errorf("Run(%q) = %d, want 0", c, got)
			}
		}
	}
}

func FuzzTokenerParse(f *testing.F) {
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"a": [1, 2.5, -3e10, "x", null]}`))
	f.Add([]byte(`{`))
	f.Add([]byte(""))
	f.Add([]byte{0xff, 0xfe})

	f.Fuzz(func(t *testing.T, data []byte) {
		h, err := Tokener{}.NewHandle()
		if err != nil {
			t.Fatalf("NewHandle() error = %v", err)
		}
		defer h.Close()

		v, err := h.Parse(data)
		if (v == nil) == (err == nil) {
			t.Errorf("Parse produced value %v and error %v, want exactly one", v, err)
		}
		if v != nil {
			v.Release()
		}
	})
}
