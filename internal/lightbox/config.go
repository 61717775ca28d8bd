package lightbox

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/SayaAndy/lightbox-docs/internal/directive"
	"github.com/go-playground/validator/v10"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Alignments lists the accepted values of the align option in diagnostic order.
var Alignments = []string{string(AlignLeft), string(AlignCenter), string(AlignRight)}

const (
	DefaultAlt     = "Click to view large image"
	DefaultCaption = "Click to view large image"
	DefaultAlign   = AlignLeft
)

// Config is a validated lightbox invocation with every default applied.
type Config struct {
	Thumb        string `option:"thumb" validate:"required"`
	Large        string `option:"large" validate:"required"`
	Alt          string `option:"alt"`
	Caption      string `option:"caption"`
	Align        Align  `option:"align" validate:"oneof=left center right"`
	DivClass     string `option:"div_class"`
	ImageClass   string `option:"image_class"`
	AClass       string `option:"a_class"`
	CaptionClass string `option:"caption_class"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("option")
	})
	return v
}

// Validate turns coerced directive options into a Config.
// thumb is checked before large, and align must be one of Alignments.
func Validate(opts directive.Options) (Config, error) {
	cfg := Config{
		Thumb:        opts["thumb"],
		Large:        opts["large"],
		Alt:          withDefault(opts["alt"], DefaultAlt),
		Caption:      withDefault(opts["caption"], DefaultCaption),
		Align:        Align(withDefault(opts["align"], string(DefaultAlign))),
		DivClass:     opts["div_class"],
		ImageClass:   opts["image_class"],
		AClass:       opts["a_class"],
		CaptionClass: opts["caption_class"],
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return Config{}, fmt.Errorf("validate lightbox options: %w", err)
		}
		return Config{}, optionError(verrs[0])
	}

	return cfg, nil
}

func optionError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return &directive.MissingRequiredOptionError{Option: fe.Field()}
	case "oneof":
		return &directive.InvalidChoiceOptionError{
			Option:   fe.Field(),
			Value:    fmt.Sprint(fe.Value()),
			Accepted: Alignments,
		}
	}
	return fmt.Errorf("option %q failed %q check", fe.Field(), fe.Tag())
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// alignOption lets an empty align through so Validate can default it.
func alignOption(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	return directive.Choice(Alignments...)(value)
}
