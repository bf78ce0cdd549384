// Package responseformat encodes tool output as JSON or
// MessagePack documents
package responseformat

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format names an output encoding
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMsgPack Format = "msgpack"
)

// ParseFormat accepts text, json or msgpack in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatMsgPack:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Formatter writes documents in JSON or MessagePack
type Formatter struct {
	Indent bool
}

// NewFormatter creates a formatter with indented JSON
func NewFormatter() *Formatter {
	return &Formatter{Indent: true}
}

// Write encodes data onto w. FormatText is not an encoding and is rejected.
func (f *Formatter) Write(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		return f.writeJSON(w, data)
	case FormatMsgPack:
		return f.writeMsgPack(w, data)
	default:
		return fmt.Errorf("format %q has no encoder", format)
	}
}

func (f *Formatter) writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(data)
}

func (f *Formatter) writeMsgPack(w io.Writer, data any) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}
