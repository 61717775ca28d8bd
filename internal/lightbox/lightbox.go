// Package lightbox implements the "lightbox" directive: a CSS-only image
// lightbox made of a thumbnail link, a full-size overlay anchor and a caption.
//
// Usage:
//
//	.. lightbox::
//	   :thumb: /images/test-thumb.png
//	   :large: /images/test.png
//	   :alt: This is a test image
//	   :caption: A test caption
//	   :align: center
//
// The markup relies on an existing stylesheet for the lightbox behaviour.
package lightbox

import (
	"github.com/SayaAndy/lightbox-docs/internal/directive"
	"github.com/google/uuid"
)

const Name = "lightbox"

type Directive struct {
	newID func() string
}

type Option func(*Directive)

// WithIDGenerator replaces the random UUID source that pairs the thumbnail link with the overlay anchor.
func WithIDGenerator(gen func() string) Option {
	return func(d *Directive) {
		d.newID = gen
	}
}

func New(opts ...Option) *Directive {
	d := &Directive{newID: uuid.NewString}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Directive) OptionSpec() directive.OptionSpec {
	return directive.OptionSpec{
		"thumb":         directive.Unchanged,
		"large":         directive.Unchanged,
		"alt":           directive.Unchanged,
		"caption":       directive.Unchanged,
		"align":         alignOption,
		"div_class":     directive.Unchanged,
		"image_class":   directive.Unchanged,
		"a_class":       directive.Unchanged,
		"caption_class": directive.Unchanged,
	}
}

// Run validates opts and renders the lightbox with a fresh identifier.
func (d *Directive) Run(opts directive.Options) (string, error) {
	cfg, err := Validate(opts)
	if err != nil {
		return "", err
	}
	return Render(cfg, d.newID()), nil
}

// Register installs d under Name. Registering again overwrites the same entry.
func (d *Directive) Register(r directive.Registrar) {
	r.Register(Name, d)
}

// Register installs a lightbox directive with default settings.
func Register(r directive.Registrar) {
	New().Register(r)
}
