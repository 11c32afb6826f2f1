package frequency

import "github.com/spf13/pflag"

var _ pflag.Value = (*Frequency)(nil)

// Set implements pflag.Value.
func (f *Frequency) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Frequency) Type() string {
	return "frequency"
}

// MarshalText implements encoding.TextMarshaler.
func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Frequency) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}
