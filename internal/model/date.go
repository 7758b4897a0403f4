package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Date is a calendar timestamp that accepts both "2006-01-02" and RFC 3339
// input. It is stored as a BSON datetime and rendered as RFC 3339 in UTC.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// NewDate truncates t to UTC.
func NewDate(t time.Time) Date { return Date{Time: t.UTC()} }

// MustDate parses s with the accepted layouts and panics on failure. Used for fixtures.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateError reports a value no accepted layout could parse.
type DateError struct {
	Value string
}

func (e *DateError) Error() string { return fmt.Sprintf("invalid date %q", e.Value) }

// ParseDate parses s with the accepted layouts.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, &DateError{Value: s}
}

// DatePtr is a helper for optional fields.
func DatePtr(s string) *Date {
	d := MustDate(s)
	return &d
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339Nano))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalBSONValue() (byte, []byte, error) {
	t, data, err := bson.MarshalValue(d.UTC())
	return byte(t), data, err
}

func (d *Date) UnmarshalBSONValue(t byte, data []byte) error {
	rv := bson.RawValue{Type: bson.Type(t), Value: data}
	if rv.Type == bson.TypeNull {
		*d = Date{}
		return nil
	}
	tm, ok := rv.TimeOK()
	if !ok {
		return fmt.Errorf("cannot decode BSON type %v into Date", rv.Type)
	}
	*d = NewDate(tm)
	return nil
}
