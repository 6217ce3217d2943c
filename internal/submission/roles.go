package submission

// DefaultColor is the embed color used for role titles missing from the table.
const DefaultColor = 0x00ff00

// SkillsLabel is the common long-answer question asked of every applicant.
const SkillsLabel = "Why do you want to be part of the Computer Science Club executive team?"

// FieldSpec describes one role-specific answer: the form field it reads,
// the label it is displayed under, and whether over-long text is chunked.
type FieldSpec struct {
	ID        string
	Label     string
	Chunked   bool
	MaxChunks int
}

// Role holds the display configuration for one volunteer role.
type Role struct {
	Title     string
	Color     int
	Portfolio bool // include the Portfolio/Resume field when provided
	Fields    []FieldSpec
}

// Roles maps role titles to their display configuration. Adding a role is
// a data change here, not new branching logic in the router.
var Roles = map[string]Role{
	"Graphic Designer": {
		Title:     "Graphic Designer",
		Color:     0xff6b35,
		Portfolio: true,
		Fields: []FieldSpec{
			{ID: "designtools", Label: "Design Tools"},
			{ID: "designproject", Label: "Design Project Experience", Chunked: true, MaxChunks: 2},
		},
	},
	"Women in Computer Science Representative": {
		Title: "Women in Computer Science Representative",
		Color: 0x9b59b6,
		Fields: []FieldSpec{
			{ID: "wcssupport", Label: "Initiatives for Underrepresented Groups", Chunked: true, MaxChunks: 2},
		},
	},
	"Web Developer": {
		Title:     "Web Developer",
		Color:     0x2ecc71,
		Portfolio: true,
		Fields: []FieldSpec{
			{ID: "wdexperience", Label: "Development Experience", Chunked: true, MaxChunks: 2},
		},
	},
	"Event Coordinator": {
		Title: "Event Coordinator",
		Color: 0xf39c12,
		Fields: []FieldSpec{
			{ID: "ecorganize", Label: "Event Planning Organization", Chunked: true, MaxChunks: 2},
		},
	},
}

// ColorFor returns the embed color for a role title.
func ColorFor(title string) int {
	if r, ok := Roles[title]; ok {
		return r.Color
	}
	return DefaultColor
}
