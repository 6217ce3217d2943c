package submission

import (
	"fmt"
	"strings"

	"github.com/brockcsc/volunteer-intake/internal/chunk"
	"github.com/brockcsc/volunteer-intake/internal/notify"
)

// partLabel labels chunk i (0-based) of n for display. Single-chunk fields
// keep the bare label.
func partLabel(label string, i, n int) string {
	if n > 1 {
		return fmt.Sprintf("%s (Part %d/%d)", label, i+1, n)
	}
	return label
}

// BuildFields assembles the ordered display-field list for a submission:
// identity fields first, then role-specific answers, then the common
// long-answer question. Empty and whitespace-only values are dropped.
func BuildFields(sub *Submission) []notify.Field {
	fields := []notify.Field{
		{Name: "Full Name", Value: sub.FormData.Name},
		{Name: "Email Address", Value: sub.FormData.Email},
		{Name: "Anticipated Graduation Date", Value: sub.FormData.Year},
	}

	role, known := Roles[sub.RoleTitle]

	// Portfolio is only surfaced for roles that ask for one.
	if known && role.Portfolio && sub.FormData.Portfolio != "" {
		fields = append(fields, notify.Field{Name: "Portfolio/Resume", Value: sub.FormData.Portfolio})
	}

	if known {
		for _, spec := range role.Fields {
			value := sub.FormData.fieldValue(spec.ID)
			if value == "" {
				continue
			}
			if !spec.Chunked {
				fields = append(fields, notify.Field{Name: spec.Label, Value: value})
				continue
			}
			chunks := chunk.ProcessField(value, spec.MaxChunks)
			for i, c := range chunks {
				fields = append(fields, notify.Field{Name: partLabel(spec.Label, i, len(chunks)), Value: c})
			}
		}
	}

	// The common long answer is allowed the full chunk budget, not the
	// two-chunk cap of the role-specific answers.
	skillsChunks := chunk.ProcessField(sub.FormData.Skills, chunk.MaxChunks)
	for i, c := range skillsChunks {
		fields = append(fields, notify.Field{Name: partLabel(SkillsLabel, i, len(skillsChunks)), Value: c})
	}

	filtered := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered
}
