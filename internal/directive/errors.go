package directive

import (
	"fmt"
	"strings"
)

// MissingRequiredOptionError is returned when a directive is invoked without one of its required options.
type MissingRequiredOptionError struct {
	Option string
}

func (e *MissingRequiredOptionError) Error() string {
	if e.Option == "" {
		return "required argument is missing."
	}
	return fmt.Sprintf("%s%s argument is required.", strings.ToUpper(e.Option[:1]), e.Option[1:])
}

// InvalidChoiceOptionError is returned by a Choice converter when the value is outside the accepted set.
type InvalidChoiceOptionError struct {
	Option   string
	Value    string
	Accepted []string
}

func (e *InvalidChoiceOptionError) Error() string {
	quoted := make([]string, len(e.Accepted))
	for i, v := range e.Accepted {
		quoted[i] = `"` + v + `"`
	}

	var choices string
	switch len(quoted) {
	case 0:
	case 1:
		choices = quoted[0]
	default:
		choices = strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}

	msg := fmt.Sprintf("%q unknown; choose from %s", e.Value, choices)
	if e.Option != "" {
		msg = fmt.Sprintf("invalid option value: (option: %q; value: %q) %s", e.Option, e.Value, msg)
	}
	return msg
}

type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option: %q", e.Option)
}

type DuplicateOptionError struct {
	Option string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("duplicate option: %q", e.Option)
}

type MalformedOptionError struct {
	Text string
}

func (e *MalformedOptionError) Error() string {
	return fmt.Sprintf("invalid option block: %q", e.Text)
}

// ContentNotAllowedError is returned when an option-only directive is followed by an indented content block.
type ContentNotAllowedError struct{}

func (e *ContentNotAllowedError) Error() string {
	return "no content permitted"
}

type UnknownDirectiveError struct {
	Name string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown directive type %q", e.Name)
}

// DirectiveError locates a failure at the directive occurrence that produced it.
type DirectiveError struct {
	Directive string
	Line      int
	Err       error
}

func (e *DirectiveError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("error in %q directive (line %d): %v", e.Directive, e.Line, e.Err)
	}
	return fmt.Sprintf("error in %q directive: %v", e.Directive, e.Err)
}

// Unwrap exposes the underlying error.
func (e *DirectiveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
