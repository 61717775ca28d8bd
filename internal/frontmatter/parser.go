package frontmatter

import (
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

type Metadata struct {
	Title         string    `yaml:"title"`
	Description   string    `yaml:"description"`
	PublishedTime time.Time `yaml:"publishedTime"`
	Draft         bool      `yaml:"draft"`
}

var frontmatterRegex = regexp.MustCompile(`^---\s*\r?\n([\s\S]*?)\r?\n---\s*(?:\r?\n([\s\S]*))?$`)

// ParseFrontmatter splits a YAML frontmatter block from the markdown that follows it.
// Content without frontmatter is returned unchanged with nil metadata.
func ParseFrontmatter(content []byte) (metadata *Metadata, markdown []byte, err error) {
	matches := frontmatterRegex.FindSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	metadata = &Metadata{}
	if err := yaml.Unmarshal(matches[1], metadata); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	return metadata, matches[2], nil
}
