// Package resume holds the canonical resume document and the migration
// that turns any accepted input shape into it.
package resume

import "strings"

// SchemaVersion is the version stamped on every normalized document.
const SchemaVersion = 2

// Document is the canonical resume aggregate. Core packages read it and
// never modify it.
type Document struct {
	SchemaVersion int          `json:"schemaVersion"`
	PersonalInfo  PersonalInfo `json:"personalInfo"`
	Summary       string       `json:"summary"`
	Education     []Education  `json:"education"`
	Experience    []Experience `json:"experience"`
	Projects      []Project    `json:"projects"`
	Skills        SkillSet     `json:"skills"`
	Links         Links        `json:"links"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type Education struct {
	ID             string `json:"id"`
	School         string `json:"school"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
}

// Experience is one position. An empty EndDate means the position is current.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	GithubURL    string   `json:"githubUrl"`
}

// SkillSet is the categorized skill list. Flat comma-separated input is
// migrated into Technical.
type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
}

type Links struct {
	Github   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// Empty returns a blank document with every collection allocated.
func Empty() *Document {
	d := &Document{SchemaVersion: SchemaVersion}
	d.fill()
	return d
}

// SkillList flattens the skill set in technical, soft, tools order.
// Duplicates are kept.
func (d *Document) SkillList() []string {
	out := make([]string, 0, len(d.Skills.Technical)+len(d.Skills.Soft)+len(d.Skills.Tools))
	out = append(out, d.Skills.Technical...)
	out = append(out, d.Skills.Soft...)
	out = append(out, d.Skills.Tools...)
	return out
}

// SkillsText renders the flattened skills as a comma list.
func (d *Document) SkillsText() string {
	return strings.Join(d.SkillList(), ", ")
}

// TechnologiesText renders a project's technologies as a comma list.
func (p Project) TechnologiesText() string {
	return strings.Join(p.Technologies, ", ")
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := *d
	c.Education = append([]Education(nil), d.Education...)
	c.Experience = append([]Experience(nil), d.Experience...)
	c.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.Technologies = append([]string(nil), p.Technologies...)
		c.Projects[i] = p
	}
	c.Skills = SkillSet{
		Technical: append([]string(nil), d.Skills.Technical...),
		Soft:      append([]string(nil), d.Skills.Soft...),
		Tools:     append([]string(nil), d.Skills.Tools...),
	}
	c.fill()
	return &c
}

// fill replaces nil slices with empty ones so JSON output never carries null.
func (d *Document) fill() {
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	for i := range d.Projects {
		if d.Projects[i].Technologies == nil {
			d.Projects[i].Technologies = []string{}
		}
	}
	if d.Skills.Technical == nil {
		d.Skills.Technical = []string{}
	}
	if d.Skills.Soft == nil {
		d.Skills.Soft = []string{}
	}
	if d.Skills.Tools == nil {
		d.Skills.Tools = []string{}
	}
}
