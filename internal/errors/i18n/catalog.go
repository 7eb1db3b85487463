// Package i18n holds the user-facing message catalogs for domain errors.
package i18n

import (
	"strings"
	"text/template"
)

// Code mirrors the error code string used as a catalog key.
type Code = string

// Catalog maps error codes to user-facing message templates for one locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog locale identifier.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code, substituting metadata into the
// template. Unknown codes fall back to a generic message.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return "An unexpected error occurred"
	}
	if len(metadata) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := template.New(code).Parse(msg)
	if err != nil {
		return msg
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, metadata); err != nil {
		return msg
	}
	return out.String()
}

// GetCatalog returns the catalog for a locale, defaulting to en-US.
func GetCatalog(locale string) *Catalog {
	switch locale {
	case "en-US", "":
		return enUSCatalog
	default:
		return enUSCatalog
	}
}
