package models

import "fmt"

type Action string

const (
	ActionEvaluateResume    Action = "evaluate_resume"
	ActionPercentageMatch   Action = "percentage_match"
	ActionGenerateWordCloud Action = "generate_wordcloud"
)

// actionOrder is the order actions are handled within one render cycle.
var actionOrder = []Action{
	ActionEvaluateResume,
	ActionPercentageMatch,
	ActionGenerateWordCloud,
}

func ParseAction(s string) (Action, error) {
	for _, a := range actionOrder {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action: %q", s)
}

// Label is the button caption shown on the page.
func (a Action) Label() string {
	switch a {
	case ActionEvaluateResume:
		return "Evaluate Resume"
	case ActionPercentageMatch:
		return "Percentage Match"
	case ActionGenerateWordCloud:
		return "Generate Word Cloud"
	default:
		return string(a)
	}
}

// NeedsResume reports whether the action requires an encoded page image.
func (a Action) NeedsResume() bool {
	return a == ActionEvaluateResume || a == ActionPercentageMatch
}

// OrderedActions returns the distinct actions of in, in handling order.
func OrderedActions(in []Action) []Action {
	seen := make(map[Action]bool, len(in))
	for _, a := range in {
		seen[a] = true
	}

	var out []Action
	for _, a := range actionOrder {
		if seen[a] {
			out = append(out, a)
		}
	}
	return out
}

// AllActions lists every action in handling order.
func AllActions() []Action {
	out := make([]Action, len(actionOrder))
	copy(out, actionOrder)
	return out
}
