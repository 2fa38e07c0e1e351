package jsonfuzz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/js"
)

// JSTokener is an Engine that, in addition to plain JSON, accepts JavaScript
// object notation: unquoted keys, single-quoted and template strings,
// comments and trailing commas. The input is normalized to JSON first and
// then decoded, so this engine exercises both the lexer and the decoder.
type JSTokener struct{}

// NewHandle implements Engine. It cannot fail.
func (JSTokener) NewHandle() (Handle, error) {
	return &jsHandle{}, nil
}

type jsHandle struct {
	err error
}

func (h *jsHandle) Parse(data []byte) (Value, error) {
	msg, err := normalizeJS(data)
	if err != nil {
		h.err = err
		return nil, err
	}

	var v Value
	v, h.err = decodeValue(msg)

	return v, h.err
}

func (h *jsHandle) Err() error { return h.err }

func (h *jsHandle) Close() {}

var errNoValue = errors.New("jsonfuzz: no object or array in input")

// jsonString encodes s as a JSON string literal.
func jsonString(s string) ([]byte, error) {
	return json.Marshal(s)
}

var closingBracket = map[byte]byte{
	'{': '}',
	'[': ']',
}

// Identifiers that are already valid JSON
var jsonLiterals = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}

// singleQuoteReplacer rewrites a single-quoted string to be double-quoted
var singleQuoteReplacer = strings.NewReplacer(
	// Replace single quotes with double, ' => "
	"'", "\"",
	// Escape quotes from before, " => \"
	"\"", "\\\"",
	// Unescape single quotes from before, \' => '
	"\\'", "'",
)

// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Template_literals
var templateQuoteReplacer = strings.NewReplacer(
	// Escaped quotes become normal characters
	"\\`", "`",
)

// normalizeJS converts the first JavaScript object or array in data to JSON.
// The output is not guaranteed to be valid JSON (e.g. JS number formats pass
// through verbatim); callers must still decode or validate it.
func normalizeJS(data []byte) (output []byte, err error) {
	// JS values of interest always start with a brace or bracket
	start := bytes.IndexAny(data, "{[")
	if start < 0 {
		return nil, errNoValue
	}

	lex := js.NewLexer(bytes.NewReader(data[start:]))

	var buf = new(bytes.Buffer)

	var (
		// The opening bracket of the outermost value; counting its nesting
		// level tells us where the value ends
		first = data[start]
		level int

		// lastByte is the last byte written to buf, used for detecting and
		// correcting trailing commas
		lastByte byte
	)

loop:
	for {
		tt, text := lex.Next()
		if tt == js.ErrorToken {
			err = lex.Err()
			break loop
		}

		switch tt {
		case js.SingleLineCommentToken, js.MultiLineCommentToken, js.WhitespaceToken, js.LineTerminatorToken:
			// Not part of JSON. Continue so they are not seen as the last
			// written byte
			continue
		case js.IdentifierToken:
			if jsonLiterals[string(text)] {
				buf.Write(text)
			} else {
				// Quote the identifier, interpreting it as a string
				quoted, merr := jsonString(string(text))
				if merr != nil {
					err = merr
					break loop
				}
				buf.Write(quoted)
			}
		case js.PunctuatorToken:
			if len(text) > 1 {
				err = fmt.Errorf("unexpected token %q in JS value", string(text))
				break loop
			}

			switch text[0] {
			case '{', '[':
				if text[0] == first {
					level++
				}

				if lastByte == '{' && text[0] == '{' {
					err = errors.New("opening brace cannot follow another opening brace")
					break loop
				}

				buf.Write(text)
			case '}', ']':
				if text[0] == closingBracket[first] {
					level--
				}

				// A trailing comma as in [1, 2, 3, ] is removed so the
				// value decodes
				if lastByte == ',' {
					buf.Truncate(buf.Len() - 1)
				}

				buf.Write(text)

				// The value opened by `first` is complete
				if level == 0 {
					break loop
				}
			case ':', ',':
				buf.Write(text)
			default:
				err = fmt.Errorf("unexpected token %q in JS value", string(text))
				break loop
			}
		case js.StringToken:
			switch text[0] {
			case '\'':
				buf.WriteString(singleQuoteReplacer.Replace(string(text)))
			case '"':
				buf.Write(text)
			default:
				err = fmt.Errorf("unsupported string type (text: %s)", string(text))
				break loop
			}
		case js.TemplateToken:
			quoted, merr := jsonString(templateQuoteReplacer.Replace(string(text[1 : len(text)-1])))
			if merr != nil {
				err = merr
				break loop
			}
			buf.Write(quoted)
		case js.RegexpToken:
			// Regex patterns are escaped and treated as strings
			quoted, merr := jsonString(string(text))
			if merr != nil {
				err = merr
				break loop
			}
			buf.Write(quoted)
		default:
			// Numbers and anything else pass through verbatim
			buf.Write(text)
		}

		lastByte = text[len(text)-1]
	}

	if err == nil {
		return buf.Bytes(), nil
	}
	if err == io.EOF {
		// The stream ended before the outermost value was closed
		return nil, io.ErrUnexpectedEOF
	}

	return nil, err
}
