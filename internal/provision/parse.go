// Package provision parses bulk unit-definition text and validates the
// input for project creation. The commit itself lives in the study
// service so it can run inside one store transaction.
package provision

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/example/studytrack/pkg/apperrors"
)

// UnitDefinition is one parsed (name, count) pair from the setup input.
type UnitDefinition struct {
	Name  string
	Count int
}

var (
	segmentSplit = regexp.MustCompile(`[\n,;]+`)
	// name, then a colon and/or whitespace, then a trailing positive integer
	defPattern = regexp.MustCompile(`^(.+?)[:\s]+(\d+)\s*$`)
)

// ParseUnitDefinitions extracts unit definitions from free-form text.
// Each line (or comma/semicolon-separated segment) describes one unit as
// "<name>: <count>", "<name>:<count>" or "<name> <count>"; names may
// contain spaces. Segments that yield no valid pair are dropped silently.
func ParseUnitDefinitions(input string) []UnitDefinition {
	var defs []UnitDefinition

	for _, segment := range segmentSplit.Split(strings.TrimSpace(input), -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		m := defPattern.FindStringSubmatch(segment)
		if m == nil {
			continue
		}

		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[1]), ":"))
		count, err := strconv.Atoi(m[2])
		if err != nil || name == "" || count <= 0 {
			continue
		}

		defs = append(defs, UnitDefinition{Name: name, Count: count})
	}

	return defs
}

// Validate checks a project creation request before any write occurs.
// A blank project name or zero parsed definitions is a field-level
// validation error.
func Validate(projectName string, defs []UnitDefinition) error {
	if strings.TrimSpace(projectName) == "" {
		return apperrors.NewValidation("project_name", "project name must not be blank")
	}
	if len(defs) == 0 {
		return apperrors.NewValidation("unit_definitions", "no valid unit definitions, expected lines like \"U1: 32\"")
	}
	return nil
}
