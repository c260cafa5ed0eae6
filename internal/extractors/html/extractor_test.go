package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

func extract(t *testing.T, content string) string {
	t.Helper()
	got, err := New().Extract(context.Background(), &domain.RawDocument{Name: "page.html", Content: []byte(content)})
	require.NoError(t, err)
	return got
}

func TestExtract_BodyText(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head><title>Lecture 3</title><style>p { color: red; }</style></head>
<body>
  <h1>The Krebs Cycle</h1>
  <p>It happens in the   <b>mitochondria</b>.</p>
  <script>alert("x")</script>
  <ul><li>Acetyl-CoA</li><li>Citrate</li></ul>
</body>
</html>`

	got := extract(t, page)

	assert.Contains(t, got, "The Krebs Cycle")
	assert.Contains(t, got, "It happens in the mitochondria.")
	assert.Contains(t, got, "Acetyl-CoA\nCitrate")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color: red")
	assert.NotContains(t, got, "Lecture 3")
}

func TestExtract_Fragment(t *testing.T) {
	assert.Equal(t, "Just a paragraph.", extract(t, "<p>Just a paragraph.</p>"))
}

func TestExtract_Entities(t *testing.T) {
	assert.Equal(t, "Fish & chips < 5", extract(t, "<p>Fish &amp; chips &lt; 5</p>"))
}

func TestExtract_EmptyBody(t *testing.T) {
	assert.Empty(t, extract(t, "<html><body><script>x()</script></body></html>"))
}

func TestExtract_Nil(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
