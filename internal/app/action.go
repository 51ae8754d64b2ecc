package app

import (
	"fmt"
	"strings"
)

// Action is one of the mutually exclusive build operations
type Action string

const (
	ActionBuild   Action = "build"
	ActionRebuild Action = "rebuild"
	ActionClean   Action = "clean"
)

// AllActions returns every action in display order
func AllActions() []Action {
	return []Action{ActionBuild, ActionRebuild, ActionClean}
}

// IsValidAction reports whether a is a known action
func IsValidAction(a Action) bool {
	switch a {
	case ActionBuild, ActionRebuild, ActionClean:
		return true
	}
	return false
}

// ParseAction resolves an action name case-insensitively
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidAction(a) {
		return "", fmt.Errorf("unknown action %q (want build, rebuild or clean)", s)
	}
	return a, nil
}

// State reports what the last operation of an orchestrator left behind
type State int

const (
	StateIdle State = iota
	StateBuilt
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilt:
		return "built"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
