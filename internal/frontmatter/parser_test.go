package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter(t *testing.T) {
	content := []byte("---\ntitle: Trip\ndescription: Photos\npublishedTime: 2025-06-01T10:00:00Z\n---\n# Body\n")

	meta, md, err := ParseFrontmatter(content)
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, "Trip", meta.Title)
	assert.Equal(t, "Photos", meta.Description)
	assert.False(t, meta.Draft)
	assert.True(t, meta.PublishedTime.Equal(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "# Body\n", string(md))
}

func TestParseFrontmatterCRLF(t *testing.T) {
	meta, md, err := ParseFrontmatter([]byte("---\r\ntitle: Win\r\ndraft: true\r\n---\r\nbody"))
	require.NoError(t, err)

	assert.Equal(t, "Win", meta.Title)
	assert.True(t, meta.Draft)
	assert.Equal(t, "body", string(md))
}

func TestParseFrontmatterAbsent(t *testing.T) {
	content := []byte("# Just markdown\n")

	meta, md, err := ParseFrontmatter(content)
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, content, md)
}

func TestParseFrontmatterInvalidYAML(t *testing.T) {
	_, _, err := ParseFrontmatter([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	assert.ErrorContains(t, err, "failed to parse YAML frontmatter")
}
