package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckConstraint reports whether toolVersion satisfies the constraint a config file declares
// in its "requires" field.
//
// Rules:
//   - An empty constraint accepts every version
//   - A "main" tool version (development build) accepts every constraint
//   - Otherwise the constraint uses semver range syntax (">= 0.3", "~0.3.1", "^1")
//
// Examples:
//   - Tool 0.3.0, requires ">= 0.2" -> OK
//   - Tool 0.3.0, requires "^1" -> ERROR
//   - Tool main, requires "^1" -> OK (dev build, skip check)
func CheckConstraint(toolVersion, constraint string) error {
	toolVersion = strings.TrimPrefix(strings.TrimSpace(toolVersion), "v")
	constraint = strings.TrimSpace(constraint)

	if constraint == "" || toolVersion == "main" {
		return nil
	}

	current, err := semver.NewVersion(toolVersion)
	if err != nil {
		return fmt.Errorf("invalid tool version '%s': %w", toolVersion, err)
	}

	required, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint '%s': %w", constraint, err)
	}

	if ok, reasons := required.Validate(current); !ok {
		msgs := make([]string, len(reasons))
		for i, reason := range reasons {
			msgs[i] = reason.Error()
		}

		return fmt.Errorf("version mismatch: argo-ingest %s does not satisfy '%s': %s",
			current, constraint, strings.Join(msgs, "; "))
	}

	return nil
}

// Check validates constraint against the running tool version.
func Check(constraint string) error {
	return CheckConstraint(GetVersion(), constraint)
}
