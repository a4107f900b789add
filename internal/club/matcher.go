package club

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/league"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// autoResolveConfidence is the score above which a single best suggestion
	// is accepted without asking.
	autoResolveConfidence = 0.8
	minSuggestConfidence  = 0.3
	maxSuggestions        = 5
	tokenMatchConfidence  = 0.85
)

// PlayerSuggestion is a registered player that could be the one a free-text
// query refers to.
type PlayerSuggestion struct {
	Player     league.Player
	Confidence float64
}

// PlayerMatcher resolves free-text names (Slack commands, Playtomic display
// names) to registered players.
type PlayerMatcher struct {
	store ClubStore
}

// NewPlayerMatcher creates a new player matcher.
func NewPlayerMatcher(store ClubStore) *PlayerMatcher {
	return &PlayerMatcher{store: store}
}

// Resolve finds the player a query refers to. An exact (case-insensitive)
// name wins; otherwise a single confident fuzzy match is accepted. When no
// player can be chosen a NotFoundError is returned together with the best
// suggestions.
func (pm *PlayerMatcher) Resolve(query string) (*league.Player, []PlayerSuggestion, error) {
	normalizedQuery := normalizeName(query)
	if normalizedQuery == "" {
		return nil, nil, &league.NotFoundError{Name: query}
	}

	players, err := pm.store.GetAllPlayers()
	if err != nil {
		return nil, nil, err
	}

	for i := range players {
		if normalizeName(players[i].Name) == normalizedQuery {
			return &players[i], nil, nil
		}
	}

	suggestions := rankSuggestions(normalizedQuery, players)
	if len(suggestions) > 0 && suggestions[0].Confidence >= autoResolveConfidence {
		if len(suggestions) == 1 || suggestions[1].Confidence < suggestions[0].Confidence {
			log.Debug("Resolved player by similarity", "query", query, "player", suggestions[0].Player.Name, "confidence", suggestions[0].Confidence)
			return &suggestions[0].Player, nil, nil
		}
	}
	return nil, suggestions, &league.NotFoundError{Name: query}
}

func rankSuggestions(query string, players []league.Player) []PlayerSuggestion {
	var suggestions []PlayerSuggestion
	for _, player := range players {
		score := similarity(query, normalizeName(player.Name))
		if score > minSuggestConfidence {
			suggestions = append(suggestions, PlayerSuggestion{Player: player, Confidence: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// similarity scores how well a normalized query matches a normalized name.
// Word order does not matter, and a query equal to one of the name's words
// ("morten" for "Morten Voss") counts as a strong match.
func similarity(query, name string) float64 {
	score := max(stringSimilarity(query, name), tokenSimilarity(query, name))
	for _, token := range strings.Fields(name) {
		if token == query {
			return max(score, tokenMatchConfidence)
		}
	}
	return score
}

// normalizeName folds accents ("Núñez" becomes "nunez"), lowercases, drops
// everything but letters and spaces, and collapses whitespace.
func normalizeName(name string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(folder, name); err == nil {
		name = folded
	}
	name = strings.ToLower(strings.TrimSpace(name))

	var result strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

func stringSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}

	r1, r2 := []rune(s1), []rune(s2)
	maxLen := max(len(r1), len(r2))
	return 1.0 - float64(levenshteinDistance(r1, r2))/float64(maxLen)
}

// tokenSimilarity is the share of words that have a close counterpart in the
// other string.
func tokenSimilarity(s1, s2 string) float64 {
	tokens1 := strings.Fields(s1)
	tokens2 := strings.Fields(s2)
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	var matchCount int
	for _, token1 := range tokens1 {
		for _, token2 := range tokens2 {
			if stringSimilarity(token1, token2) > 0.8 {
				matchCount++
				break
			}
		}
	}
	return float64(matchCount) / float64(max(len(tokens1), len(tokens2)))
}

func levenshteinDistance(s1, s2 []rune) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
