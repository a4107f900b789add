package league

import (
	"errors"
	"fmt"
	"strings"
)

// Rule names a validation rule a match can violate.
type Rule string

const (
	RuleDistinctPlayers   Rule = "distinct_players"
	RuleSetCount          Rule = "set_count"
	RuleNegativeScore     Rule = "negative_score"
	RuleMaxGames          Rule = "max_games"
	RuleTiedSet           Rule = "tied_set"
	RuleThirdSetRequired  Rule = "third_set_required"
	RuleThirdSetForbidden Rule = "third_set_forbidden"
	RuleTieBreak          Rule = "tie_break"
	RuleNoWinner          Rule = "no_winner"
	RuleWinnerMismatch    Rule = "winner_mismatch"
	RuleMalformedScore    Rule = "malformed_score"
)

var ruleDescriptions = map[Rule]string{
	RuleDistinctPlayers:   "all four players must be different",
	RuleSetCount:          "a match has two or three sets",
	RuleNegativeScore:     "games cannot be negative",
	RuleMaxGames:          "too many games in a set",
	RuleTiedSet:           "a set cannot end in a tie",
	RuleThirdSetRequired:  "a third set is required when the first two are split",
	RuleThirdSetForbidden: "no third set after a 2-0 sweep",
	RuleTieBreak:          "a set won 7 games must be against 5 or 6",
	RuleNoWinner:          "the match cannot end in a draw",
	RuleWinnerMismatch:    "the declared winners did not win the sets",
	RuleMalformedScore:    "score could not be parsed",
}

// Description returns the human readable text for the rule.
func (r Rule) Description() string {
	if d, ok := ruleDescriptions[r]; ok {
		return d
	}
	return string(r)
}

// InvalidMatchError is returned when a match fails validation. Nothing is
// stored when it is returned.
type InvalidMatchError struct {
	Rules  []Rule
	Detail string
}

func (e *InvalidMatchError) Error() string {
	parts := make([]string, 0, len(e.Rules))
	for _, r := range e.Rules {
		parts = append(parts, r.Description())
	}
	msg := "invalid match: " + strings.Join(parts, "; ")
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Has reports whether the error lists the given rule.
func (e *InvalidMatchError) Has(rule Rule) bool {
	for _, r := range e.Rules {
		if r == rule {
			return true
		}
	}
	return false
}

func (e *InvalidMatchError) add(rule Rule) {
	if !e.Has(rule) {
		e.Rules = append(e.Rules, rule)
	}
}

// NotFoundError is returned when a player does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("player %q not found", e.Name)
}

var (
	ErrPlayerExists    = errors.New("player already exists")
	ErrEmptyPlayerName = errors.New("player name is required")
)

// IsInvalidMatch unwraps err into an InvalidMatchError.
func IsInvalidMatch(err error) (*InvalidMatchError, bool) {
	var target *InvalidMatchError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
