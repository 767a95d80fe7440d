package ir

import (
	"fmt"
	"strings"
)

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Code    string   // e.g., "UNKNOWN_STATE", "TERMINAL_EXIT"
	Message string   // Human-readable description
	Path    []string // e.g., ["states", "IDLE", "transitions", "0"]
}

// String returns a human-readable representation of the issue
func (v ValidationIssue) String() string {
	if len(v.Path) > 0 {
		return fmt.Sprintf("[%s] %s (at %s)", v.Code, v.Message, strings.Join(v.Path, "."))
	}
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// ValidationError contains all validation issues found during validation
type ValidationError struct {
	Issues []ValidationIssue
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0].String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d issues:\n", len(e.Issues))
	for i, issue := range e.Issues {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, issue.String())
	}
	return b.String()
}

// AddIssue adds a validation issue to the error
func (e *ValidationError) AddIssue(code, message string, path ...string) {
	e.Issues = append(e.Issues, ValidationIssue{
		Code:    code,
		Message: message,
		Path:    path,
	})
}

// HasIssues returns true if there are any validation issues
func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// Validation error codes
const (
	ErrCodeInvalidInitial   = "INVALID_INITIAL"
	ErrCodeNoStates         = "NO_STATES"
	ErrCodeUnknownState     = "UNKNOWN_STATE"
	ErrCodeInvalidTarget    = "INVALID_TARGET"
	ErrCodeMissingTrigger   = "MISSING_TRIGGER"
	ErrCodeDuplicateTrigger = "DUPLICATE_TRIGGER"
	ErrCodeTerminalExit     = "TERMINAL_EXIT"
	ErrCodeUnreachable      = "UNREACHABLE_STATE"
)

// Validate checks the transition table for errors
func Validate(t *TransitionTable) *ValidationError {
	errs := &ValidationError{}

	if len(t.States) == 0 {
		errs.AddIssue(ErrCodeNoStates, "at least one state is required")
	}

	if t.Initial != StateInit {
		errs.AddIssue(ErrCodeInvalidInitial,
			fmt.Sprintf("initial state must be %s, got %s", StateInit, t.Initial))
	}

	for _, s := range t.SortedStates() {
		sc := t.States[s]
		statePath := []string{"states", s.String()}

		if !s.Valid() {
			errs.AddIssue(ErrCodeUnknownState,
				fmt.Sprintf("state %d is not part of the enumeration", int(s)),
				statePath...)
			continue
		}

		if s.Terminal() && len(sc.Transitions) > 0 {
			errs.AddIssue(ErrCodeTerminalExit,
				fmt.Sprintf("terminal state %s must not have outgoing transitions", s),
				statePath...)
		}

		seen := make(map[Trigger]bool, len(sc.Transitions))
		for i, tr := range sc.Transitions {
			transPath := append(append([]string(nil), statePath...), "transitions", fmt.Sprintf("%d", i))

			if tr.Trigger == "" {
				errs.AddIssue(ErrCodeMissingTrigger, "transition trigger is required", transPath...)
			} else if seen[tr.Trigger] {
				errs.AddIssue(ErrCodeDuplicateTrigger,
					fmt.Sprintf("trigger '%s' is declared more than once", tr.Trigger),
					transPath...)
			}
			seen[tr.Trigger] = true

			if !tr.Target.Valid() {
				errs.AddIssue(ErrCodeInvalidTarget,
					fmt.Sprintf("transition target %d is not part of the enumeration", int(tr.Target)),
					transPath...)
			}
		}
	}

	// Reachability only makes sense once the table is otherwise sound
	if !errs.HasIssues() {
		reachable := t.Reachable()
		for _, s := range t.SortedStates() {
			if !reachable[s] {
				errs.AddIssue(ErrCodeUnreachable,
					fmt.Sprintf("state %s cannot be reached from %s", s, t.Initial),
					"states", s.String())
			}
		}
	}

	if errs.HasIssues() {
		return errs
	}
	return nil
}
