// Package json wraps jsoniter with defaults-aware marshaling, used for
// serializing resolution reports and composition plans.
package json

import (
	"io"

	"github.com/creasty/defaults"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal applies struct defaults and marshals v.
func Marshal(v any) ([]byte, error) {
	if err := defaults.Set(v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// MarshalIndent applies struct defaults and marshals v with indentation.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	if err := defaults.Set(v); err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, prefix, indent)
}

// MarshalToString applies struct defaults and marshals v to a string.
func MarshalToString(v any) (string, error) {
	if err := defaults.Set(v); err != nil {
		return "", err
	}
	return json.MarshalToString(v)
}

// Unmarshal applies struct defaults and unmarshals data into v.
func Unmarshal(data []byte, v any) error {
	if err := defaults.Set(v); err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Encoder writes defaults-applied JSON values to a stream.
type Encoder struct {
	*jsoniter.Encoder
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{Encoder: json.NewEncoder(w)}
}

// Encode applies struct defaults before encoding.
func (e *Encoder) Encode(v any) error {
	if err := defaults.Set(v); err != nil {
		return err
	}
	return e.Encoder.Encode(v)
}

// Decoder reads JSON values, applying struct defaults first.
type Decoder struct {
	*jsoniter.Decoder
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{Decoder: json.NewDecoder(r)}
}

// Decode applies struct defaults before decoding.
func (d *Decoder) Decode(v any) error {
	if err := defaults.Set(v); err != nil {
		return err
	}
	return d.Decoder.Decode(v)
}
