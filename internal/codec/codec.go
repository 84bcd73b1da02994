// Package codec implements the log record format of spec.md §4.2 and §6: a
// Set(key, value) / Remove(key) sum type, serialized as one self-delimiting
// JSON value per record, concatenated with no required separator.
//
// Encoding uses github.com/goccy/go-json rather than encoding/json so that
// ferrule shares its JSON library with the rest of the retrieved corpus
// (jpl-au-folio). go-json's Decoder exposes the same streaming
// Decode/InputOffset surface as the standard library's, which is exactly the
// "decode one value, then report the byte offset immediately past it"
// capability the reference implementation gets from
// serde_json::Deserializer::into_iter().byte_offset().
package codec

import (
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// ErrMalformedCommand is returned when a decoded JSON value is neither a Set
// nor a Remove command, or claims to be both. It is a decode error in the
// sense of spec.md §7: fatal to whatever caller triggered the decode.
var ErrMalformedCommand = errors.New("command decoded to neither Set nor Remove")

// setPayload and removePayload give the two command shapes spec.md §6
// requires:
//
//	Set:    {"Set":{"key":"<key>","value":"<value>"}}
//	Remove: {"Remove":{"key":"<key>"}}
type setPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type removePayload struct {
	Key string `json:"key"`
}

// Command is the tagged union of the two persisted mutation records: Set and
// Remove. Exactly one of Set or Remove is non-nil on a well-formed Command.
type Command struct {
	Set    *setPayload    `json:"Set,omitempty"`
	Remove *removePayload `json:"Remove,omitempty"`
}

// NewSet builds a Set(key, value) command.
func NewSet(key, value string) Command {
	return Command{Set: &setPayload{Key: key, Value: value}}
}

// NewRemove builds a Remove(key) command.
func NewRemove(key string) Command {
	return Command{Remove: &removePayload{Key: key}}
}

// IsSet reports whether this command is a Set.
func (c Command) IsSet() bool { return c.Set != nil }

// IsRemove reports whether this command is a Remove.
func (c Command) IsRemove() bool { return c.Remove != nil }

// Key returns the key named by this command.
func (c Command) Key() string {
	switch {
	case c.Set != nil:
		return c.Set.Key
	case c.Remove != nil:
		return c.Remove.Key
	default:
		return ""
	}
}

// Value returns the value carried by a Set command. ok is false for a
// Remove command or a zero Command.
func (c Command) Value() (value string, ok bool) {
	if c.Set == nil {
		return "", false
	}
	return c.Set.Value, true
}

// Validate reports ErrMalformedCommand if c is not exactly one of Set or
// Remove.
func (c Command) Validate() error {
	if (c.Set == nil) == (c.Remove == nil) {
		return ErrMalformedCommand
	}
	return nil
}

// Encode writes cmd as one self-delimiting JSON value to w. No trailing
// separator is required; the decoder tolerates (but does not require)
// whitespace between records.
func Encode(w io.Writer, cmd Command) error {
	return json.NewEncoder(w).Encode(cmd)
}

// DecodeOne decodes exactly one Command from a byte range already known to
// hold a single record — the shape internal/engine.Get uses once it has
// seeked to an index-pinned (generation, start, length) triple.
func DecodeOne(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, err
	}
	if err := cmd.Validate(); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// Decoder streams Commands out of an io.Reader, reporting the absolute byte
// offset immediately past the last byte consumed after each one. Recovery
// (internal/engine/recovery.go) uses that offset as a record's end, exactly
// as spec.md §4.5 describes.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder wraps r in a streaming Command decoder, starting from whatever
// position r is currently at.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Next decodes one Command and returns it along with the decoder's absolute
// byte offset immediately after it (just past its closing brace; whitespace
// that follows is consumed with the next record). It returns io.EOF (with a
// zero Command) once the stream ends at a record boundary. Any other decode
// failure, including a truncated tail record left by a crash mid-write, is
// returned as-is; internal/engine/recovery.go decides which to tolerate.
func (d *Decoder) Next() (Command, int64, error) {
	var cmd Command
	if err := d.dec.Decode(&cmd); err != nil {
		if err == io.EOF {
			return Command{}, d.dec.InputOffset(), io.EOF
		}
		return Command{}, d.dec.InputOffset(), err
	}
	if err := cmd.Validate(); err != nil {
		return Command{}, d.dec.InputOffset(), err
	}
	return cmd, d.dec.InputOffset(), nil
}
