// Package submission models volunteer-application payloads and maps them
// to the ordered display fields of the outbound notification.
package submission

import "errors"

// ErrMissingFields is returned when any always-required field is absent.
// The message is deliberately generic; callers must not enumerate which
// field failed.
var ErrMissingFields = errors.New("missing required fields")

// FormFields is the flat mapping of form field IDs to applicant answers.
// Only name, email, year and skills are required for every role; the rest
// are role-dependent and may be absent.
type FormFields struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Year          string `json:"year"`
	Portfolio     string `json:"portfolio,omitempty"`
	DesignTools   string `json:"designtools,omitempty"`
	DesignProject string `json:"designproject,omitempty"`
	WCSSupport    string `json:"wcssupport,omitempty"`
	WDExperience  string `json:"wdexperience,omitempty"`
	ECOrganize    string `json:"ecorganize,omitempty"`
	Skills        string `json:"skills"`
}

// Submission is a decoded application request body. It is constructed once
// per request, immutable thereafter, and never persisted.
type Submission struct {
	FormData  FormFields `json:"formData"`
	RoleTitle string     `json:"roleTitle"`
}

// Validate checks that every always-required field is present and non-empty.
func (s *Submission) Validate() error {
	if s.FormData.Name == "" || s.FormData.Email == "" || s.FormData.Year == "" ||
		s.FormData.Skills == "" || s.RoleTitle == "" {
		return ErrMissingFields
	}
	return nil
}

// fieldValue returns the answer stored under a role-specific field ID.
func (f *FormFields) fieldValue(id string) string {
	switch id {
	case "portfolio":
		return f.Portfolio
	case "designtools":
		return f.DesignTools
	case "designproject":
		return f.DesignProject
	case "wcssupport":
		return f.WCSSupport
	case "wdexperience":
		return f.WDExperience
	case "ecorganize":
		return f.ECOrganize
	default:
		return ""
	}
}
