package email

import (
	"bytes"
	"html/template"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests run from the package directory, so templates are resolved
// relative to the repository root.
const templateDir = "../../../templates/emails"

func TestTemplatesRenderWithPreviewData(t *testing.T) {
	templates := []Template{TemplateWelcome, TemplateOrderConfirmation}

	for _, name := range templates {
		t.Run(string(name), func(t *testing.T) {
			data, ok := PreviewData[string(name)]
			require.True(t, ok, "missing preview data for template %s", name)

			tmpl, err := template.ParseFiles(filepath.Join(templateDir, string(name)+".html"))
			require.NoError(t, err)

			var body bytes.Buffer
			require.NoError(t, tmpl.Execute(&body, data))

			rendered := body.String()
			for _, value := range data {
				assert.Contains(t, rendered, value)
			}
			assert.NotContains(t, rendered, "<no value>")
		})
	}
}

func TestOrderConfirmationIncludesOrderDetails(t *testing.T) {
	data := PreviewData[string(TemplateOrderConfirmation)]

	tmpl, err := template.ParseFiles(filepath.Join(templateDir, "order_confirmation.html"))
	require.NoError(t, err)

	var body bytes.Buffer
	require.NoError(t, tmpl.Execute(&body, data))

	rendered := body.String()
	assert.True(t, strings.Contains(rendered, data["OrderNumber"]))
	assert.True(t, strings.Contains(rendered, data["InvoiceNumber"]))
}
