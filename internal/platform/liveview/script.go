package liveview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

var selectorEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// FieldUpdateScript returns a script that replaces the inner HTML of the
// element labelled data-field=field, if the page shows one. Both the selector
// and the HTML are embedded as JSON string literals.
func FieldUpdateScript(field, html string) (string, error) {
	selector, err := jsString(`[data-field="` + selectorEscaper.Replace(field) + `"]`)
	if err != nil {
		return "", fmt.Errorf("failed to encode selector: %w", err)
	}
	value, err := jsString(html)
	if err != nil {
		return "", fmt.Errorf("failed to encode field html: %w", err)
	}
	return fmt.Sprintf("var field = document.querySelector(%s); if (field) { field.innerHTML = %s; }",
		selector, value), nil
}

// jsString encodes s as a JSON string literal, leaving HTML characters as is.
func jsString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
