package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, page := range []string{"index.html", "create.html", "delete.html", "about.html",
		"profile.html", "login.html", "signup.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(page), page)
	}
}

func TestFlashesAreEscaped(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "about.html", map[string]any{
		"flashes": []string{"<b>hi</b>"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;b&gt;hi&lt;/b&gt;")
}
