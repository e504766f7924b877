package export

import (
	"encoding/json"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

// JSONExporter writes the canonical document with two-space indentation.
// Normalizing its output yields an equal document.
type JSONExporter struct{}

func (JSONExporter) Format() string      { return "json" }
func (JSONExporter) Extension() string   { return "json" }
func (JSONExporter) ContentType() string { return "application/json" }

func (JSONExporter) Export(doc *resume.Document, _ Options) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.NewInternalError("EXPORT_FAILED", "failed to encode resume as JSON", err)
	}
	return string(data), nil
}
