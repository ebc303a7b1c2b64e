// Package apidef renders the API definition template and parses the
// result into a deployable OpenAPI document.
package apidef

import (
	"bytes"
	"encoding/json"
	"os"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"
)

// Render substitutes the variable set into the definition template.
// Every placeholder must be bound: a missing variable fails the render
// rather than leaving a hole in the routing table.
func Render(text string, vars map[string]string) (string, error) {
	tmpl, err := template.New("apidef").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", errors.Wrap(err, "parsing api definition template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", errors.Wrap(err, "rendering api definition")
	}
	return buf.String(), nil
}

// RenderFile renders the template at path.
func RenderFile(path string, vars map[string]string) (string, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading api definition template %s", path)
	}
	return Render(string(text), vars)
}

// Parse validates the rendered definition as an OpenAPI document.
// A malformed definition fails synthesis.
func Parse(doc string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	parsed, err := loader.LoadFromData([]byte(doc))
	if err != nil {
		return nil, errors.Wrap(err, "parsing api definition")
	}
	if err := parsed.Validate(loader.Context); err != nil {
		return nil, errors.Wrap(err, "validating api definition")
	}
	return parsed, nil
}

// Body converts a parsed definition into the generic form embedded as the
// gateway's DefinitionBody.
func Body(parsed *openapi3.T) (map[string]any, error) {
	raw, err := parsed.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "serializing api definition")
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errors.Wrap(err, "serializing api definition")
	}
	return body, nil
}
