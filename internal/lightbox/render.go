package lightbox

import "fmt"

const blockTemplate = `<div class="lightbox-block %s">` +
	`  <a href="#%s" title="%s">` +
	`    <img src="%s" alt="%s" class="%s"/>` +
	`  </a>` +
	`  <a href="#_" class="lightbox" id="%s" ` +
	`     title="Click to close">` +
	`    <img alt="Click to close" src="%s"/>` +
	`  </a>` +
	`  <p class="lightbox-caption %s">%s</p>` +
	`  <div class="lightbox-divider"></div>` +
	`</div>`

// ContainerClass returns the class list of the outer div without the leading "lightbox-block".
func (c Config) ContainerClass() string {
	align := c.Align
	if align == "" {
		align = DefaultAlign
	}
	if c.DivClass != "" {
		return c.DivClass + " align-" + string(align)
	}
	return "align-" + string(align)
}

// Render fills the lightbox template. Values are interpolated verbatim, without escaping.
func Render(cfg Config, id string) string {
	return fmt.Sprintf(blockTemplate,
		cfg.ContainerClass(),
		id, cfg.Alt,
		cfg.Thumb, cfg.Alt, cfg.ImageClass,
		id,
		cfg.Large,
		cfg.CaptionClass, cfg.Caption,
	)
}
