// Package timex adds JSON support for time.Duration so config files can say
// "24h" instead of a nanosecond count.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration that decodes from either a Go duration string
// ("15s", "24h") or an integer number of nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// Decode implements envdecode.Decoder so the same string format works in
// environment variables.
func (d *Duration) Decode(repl string) error {
	parsed, err := time.ParseDuration(repl)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", repl, err)
	}
	d.Duration = parsed
	return nil
}
