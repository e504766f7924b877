package formatters

import (
	"encoding/json"
	"fmt"
	"slices"

	"resumescore/internal/errors"
	"resumescore/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

const (
	typeAny        = "any"
	typeScore      = "ScoreOutput"
	typeValidation = "ValidateOutput"
	typeSuggest    = "SuggestOutput"
	typeAnalysis   = "AnalysisOutput"
)

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", typeAny, &JSONFormatter{})
	for _, style := range []style{plainStyle, markdownStyle} {
		registry.RegisterFormatter(style.format, typeScore, &ScoreFormatter{style: style})
		registry.RegisterFormatter(style.format, typeValidation, &ValidateFormatter{style: style})
		registry.RegisterFormatter(style.format, typeSuggest, &SuggestFormatter{style: style})
		registry.RegisterFormatter(style.format, typeAnalysis, &AnalysisFormatter{style: style})
	}

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters[typeAny]; exists {
			return formatter.Format(data)
		}
	}

	return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("no formatter found for format '%s' and type '%s'", format, dataType), nil)
}

// GetSupportedFormats returns all supported formats in sorted order
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScoreOutput:
		return typeScore
	case types.ValidateOutput:
		return typeValidation
	case types.SuggestOutput:
		return typeSuggest
	case types.AnalysisOutput:
		return typeAnalysis
	default:
		return typeAny
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", errors.NewInternalError("FORMAT_FAILED", "failed to encode output as JSON", err)
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return typeAny
}

// GlobalRegistry is the registry shared by the CLI commands
var GlobalRegistry = NewFormatterRegistry()
