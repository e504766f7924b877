package resume

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"resumescore/internal/errors"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	})
	return schema, schemaErr
}

// FieldError is one structural mismatch between the input and the schema.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Normalize migrates a raw resume (either schema generation, or a mix of
// both) into a canonical Document. Structural problems such as a number
// where a string belongs are returned as a validation AppError.
func Normalize(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidDocument, "resume input is empty", nil)
	}

	s, err := compiledSchema()
	if err != nil {
		return nil, errors.NewInternalError("SCHEMA_LOAD_FAILED", "failed to compile resume schema", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidDocument, "resume input is not valid JSON", err)
	}
	if !result.Valid() {
		fieldErrs := make([]FieldError, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			fieldErrs = append(fieldErrs, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, errors.NewValidationError(errors.ErrCodeInvalidDocument, "resume input does not match the resume schema", nil).
			WithContext("fields", fieldErrs)
	}

	var in rawDocument
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidDocument, "failed to decode resume", err)
	}
	return in.canonical()
}

// MustNormalize is Normalize for fixtures known to be well-formed.
func MustNormalize(raw []byte) *Document {
	doc, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// text decodes a JSON string, number or null into a string.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*t = text(n.String())
	}
	return nil
}

type rawDocument struct {
	SchemaVersion *int `json:"schemaVersion"`
	PersonalInfo  *struct {
		Name     text `json:"name"`
		Email    text `json:"email"`
		Phone    text `json:"phone"`
		Location text `json:"location"`
	} `json:"personalInfo"`
	Summary   text `json:"summary"`
	Education []struct {
		ID             text `json:"id"`
		School         text `json:"school"`
		Degree         text `json:"degree"`
		Field          text `json:"field"`
		GraduationDate text `json:"graduationDate"`
	} `json:"education"`
	Experience []struct {
		ID          text `json:"id"`
		Company     text `json:"company"`
		Position    text `json:"position"`
		StartDate   text `json:"startDate"`
		EndDate     text `json:"endDate"`
		Description text `json:"description"`
	} `json:"experience"`
	Projects []struct {
		ID           text            `json:"id"`
		Name         text            `json:"name"`
		Description  text            `json:"description"`
		Technologies json.RawMessage `json:"technologies"`
		Link         text            `json:"link"`
		LiveURL      text            `json:"liveUrl"`
		GithubURL    text            `json:"githubUrl"`
	} `json:"projects"`
	Skills json.RawMessage `json:"skills"`
	Links  *struct {
		Github   text `json:"github"`
		LinkedIn text `json:"linkedin"`
	} `json:"links"`
}

func (in *rawDocument) canonical() (*Document, error) {
	if in.SchemaVersion != nil && *in.SchemaVersion > SchemaVersion {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidDocument,
			fmt.Sprintf("unsupported schema version %d (newest is %d)", *in.SchemaVersion, SchemaVersion), nil)
	}

	doc := Empty()

	if in.PersonalInfo != nil {
		doc.PersonalInfo = PersonalInfo{
			Name:     string(in.PersonalInfo.Name),
			Email:    string(in.PersonalInfo.Email),
			Phone:    string(in.PersonalInfo.Phone),
			Location: string(in.PersonalInfo.Location),
		}
	}
	doc.Summary = string(in.Summary)

	for _, e := range in.Education {
		doc.Education = append(doc.Education, Education{
			ID:             string(e.ID),
			School:         string(e.School),
			Degree:         string(e.Degree),
			Field:          string(e.Field),
			GraduationDate: string(e.GraduationDate),
		})
	}

	for _, e := range in.Experience {
		doc.Experience = append(doc.Experience, Experience{
			ID:          string(e.ID),
			Company:     string(e.Company),
			Position:    string(e.Position),
			StartDate:   string(e.StartDate),
			EndDate:     string(e.EndDate),
			Description: string(e.Description),
		})
	}

	for i, p := range in.Projects {
		techs, err := decodeList(p.Technologies)
		if err != nil {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidDocument, "invalid project technologies", err).
				WithContext("field", "projects["+strconv.Itoa(i)+"].technologies")
		}
		link := string(p.Link)
		if link == "" {
			link = string(p.LiveURL)
		}
		doc.Projects = append(doc.Projects, Project{
			ID:           string(p.ID),
			Name:         string(p.Name),
			Description:  string(p.Description),
			Technologies: techs,
			Link:         link,
			GithubURL:    string(p.GithubURL),
		})
	}

	skills, err := decodeSkills(in.Skills)
	if err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidDocument, "invalid skills", err).
			WithContext("field", "skills")
	}
	doc.Skills = skills

	if in.Links != nil {
		doc.Links = Links{Github: string(in.Links.Github), LinkedIn: string(in.Links.LinkedIn)}
	}

	doc.fill()
	return doc, nil
}

// SplitList splits a comma-separated list, trimming entries and dropping
// empty ones. Duplicates are kept.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// decodeList accepts a comma string, a string array, or null.
func decodeList(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return SplitList(s), nil
	}
	var items []text
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return cleanList(items), nil
}

func decodeSkills(raw json.RawMessage) (SkillSet, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var cat struct {
			Technical []text `json:"technical"`
			Soft      []text `json:"soft"`
			Tools     []text `json:"tools"`
		}
		if err := json.Unmarshal(raw, &cat); err != nil {
			return SkillSet{}, err
		}
		return SkillSet{
			Technical: cleanList(cat.Technical),
			Soft:      cleanList(cat.Soft),
			Tools:     cleanList(cat.Tools),
		}, nil
	}

	flat, err := decodeList(raw)
	if err != nil {
		return SkillSet{}, err
	}
	return SkillSet{Technical: flat, Soft: []string{}, Tools: []string{}}, nil
}

func cleanList(items []text) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(string(it)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
