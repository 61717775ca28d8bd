package directive

import (
	"errors"
	"slices"
)

// Options maps option names of a single directive occurrence to their values.
type Options map[string]string

// Get returns the option value and whether it was supplied.
func (o Options) Get(name string) (string, bool) {
	v, ok := o[name]
	return v, ok
}

// Converter coerces a raw option value before the handler sees it.
type Converter func(value string) (string, error)

// OptionSpec lists the options a directive recognises.
type OptionSpec map[string]Converter

// Unchanged accepts any value verbatim.
func Unchanged(value string) (string, error) {
	return value, nil
}

// Choice accepts exactly one of values (case-sensitive).
func Choice(values ...string) Converter {
	accepted := slices.Clone(values)
	return func(value string) (string, error) {
		if slices.Contains(accepted, value) {
			return value, nil
		}
		return "", &InvalidChoiceOptionError{Value: value, Accepted: slices.Clone(accepted)}
	}
}

// Coerce rejects options missing from the spec and runs each converter.
func (s OptionSpec) Coerce(raw Options) (Options, error) {
	out := make(Options, len(raw))
	for name, value := range raw {
		conv, ok := s[name]
		if !ok {
			return nil, &UnknownOptionError{Option: name}
		}
		if conv == nil {
			conv = Unchanged
		}

		coerced, err := conv(value)
		if err != nil {
			var choiceErr *InvalidChoiceOptionError
			if errors.As(err, &choiceErr) && choiceErr.Option == "" {
				choiceErr.Option = name
			}
			return nil, err
		}
		out[name] = coerced
	}
	return out, nil
}
