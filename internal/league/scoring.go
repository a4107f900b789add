package league

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	sweepWinnerPoints = 3
	splitWinnerPoints = 2
	splitLoserPoints  = 1
)

// Score validates a match with labelled winners and computes the history
// record and the deltas for the four players. The returned result has no ID.
func Score(in MatchInput, policy Policy) (Outcome, error) {
	sets := trimEmptySets(in.Sets)
	if err := validate(in.Winners, in.Losers, sets, policy, true); err != nil {
		return Outcome{}, err
	}
	result := MatchResult{
		PlayedAt: in.PlayedAt,
		Winners:  in.Winners,
		Losers:   in.Losers,
		Sets:     sets,
		Source:   SourceManual,
	}
	return Outcome{Result: result, Deltas: Deltas(result)}, nil
}

// ScorePairs is Score for a match whose winner is not labelled: the pair that
// won the majority of sets becomes the winners and the sets are flipped to
// their point of view.
func ScorePairs(in PairInput, policy Policy) (Outcome, error) {
	sets := trimEmptySets(in.Sets)
	if err := validate(in.PairA, in.PairB, sets, policy, false); err != nil {
		return Outcome{}, err
	}
	result := MatchResult{
		PlayedAt: in.PlayedAt,
		Winners:  in.PairA,
		Losers:   in.PairB,
		Sets:     sets,
		Source:   SourceManual,
	}
	if a, b := tally(sets); b > a {
		result.Winners, result.Losers = in.PairB, in.PairA
		flipped := make([]SetScore, len(sets))
		for i, s := range sets {
			flipped[i] = s.swap()
		}
		result.Sets = flipped
	}
	return Outcome{Result: result, Deltas: Deltas(result)}, nil
}

// Points returns the points awarded to each winner and each loser given how
// many sets the losing pair took.
func Points(loserSets int) (winner, loser int) {
	if loserSets == 0 {
		winner = sweepWinnerPoints
	} else {
		winner = splitWinnerPoints
	}
	if loserSets == 1 {
		loser = splitLoserPoints
	}
	return winner, loser
}

// Deltas computes the per-player changes for a stored result. Sets in the
// result are from the winners' point of view.
func Deltas(m MatchResult) map[string]PlayerDelta {
	winnerSets, loserSets := tally(m.Sets)
	var winnerGames, loserGames int
	for _, s := range m.Sets {
		winnerGames += s.A
		loserGames += s.B
	}
	winnerPts, loserPts := Points(loserSets)

	deltas := make(map[string]PlayerDelta, 4)
	for _, name := range m.Winners {
		deltas[name] = PlayerDelta{
			Points:        winnerPts,
			MatchesPlayed: 1,
			MatchesWon:    1,
			SetsWon:       winnerSets,
			SetsLost:      loserSets,
			GamesWon:      winnerGames,
			GamesLost:     loserGames,
		}
	}
	for _, name := range m.Losers {
		deltas[name] = PlayerDelta{
			Points:        loserPts,
			MatchesPlayed: 1,
			MatchesLost:   1,
			SetsWon:       loserSets,
			SetsLost:      winnerSets,
			GamesWon:      loserGames,
			GamesLost:     winnerGames,
		}
	}
	return deltas
}

// validate checks sets given as sideA-sideB. When labelled is true, sideA
// must be the pair that won.
func validate(sideA, sideB [2]string, sets []SetScore, policy Policy, labelled bool) error {
	verr := &InvalidMatchError{}

	names := []string{sideA[0], sideA[1], sideB[0], sideB[1]}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			verr.add(RuleDistinctPlayers)
			continue
		}
		if _, dup := seen[n]; dup {
			verr.add(RuleDistinctPlayers)
		}
		seen[n] = struct{}{}
	}

	if len(sets) < 2 || len(sets) > 3 {
		verr.add(RuleSetCount)
	}

	for _, s := range sets {
		if s.A < 0 || s.B < 0 {
			verr.add(RuleNegativeScore)
			continue
		}
		if policy.MaxGames > 0 && (s.A > policy.MaxGames || s.B > policy.MaxGames) {
			verr.add(RuleMaxGames)
		}
		if s.A == s.B {
			verr.add(RuleTiedSet)
			continue
		}
		if policy.EnforceTieBreak && !validTieBreak(s) {
			verr.add(RuleTieBreak)
		}
	}

	if len(sets) >= 2 && decided(sets[0]) && decided(sets[1]) {
		split := (sets[0].A > sets[0].B) != (sets[1].A > sets[1].B)
		if split && len(sets) < 3 && policy.RequireThirdSet {
			verr.add(RuleThirdSetRequired)
		}
		if !split && len(sets) == 3 && policy.ForbidThirdSetAfterSweep {
			verr.add(RuleThirdSetForbidden)
		}
	}

	a, b := tally(sets)
	switch {
	case a == b:
		verr.add(RuleNoWinner)
	case labelled && b > a:
		verr.add(RuleWinnerMismatch)
	}

	if len(verr.Rules) > 0 {
		return verr
	}
	return nil
}

func decided(s SetScore) bool {
	return s.A >= 0 && s.B >= 0 && s.A != s.B
}

func validTieBreak(s SetScore) bool {
	if s.A == 7 && s.B != 5 && s.B != 6 {
		return false
	}
	if s.B == 7 && s.A != 5 && s.A != 6 {
		return false
	}
	return true
}

// tally counts the sets won by each side. Undecided sets count for nobody.
func tally(sets []SetScore) (a, b int) {
	for _, s := range sets {
		if !decided(s) {
			continue
		}
		if s.A > s.B {
			a++
		} else {
			b++
		}
	}
	return a, b
}

// trimEmptySets drops trailing 0-0 sets, which mean "not played".
func trimEmptySets(sets []SetScore) []SetScore {
	end := len(sets)
	for end > 0 && sets[end-1].empty() {
		end--
	}
	out := make([]SetScore, end)
	copy(out, sets[:end])
	return out
}

// ParseSets parses a score such as "6-4, 4-6, 7-5".
func ParseSets(score string) ([]SetScore, error) {
	score = strings.TrimSpace(score)
	if score == "" {
		return nil, &InvalidMatchError{Rules: []Rule{RuleMalformedScore}, Detail: "empty score"}
	}
	parts := strings.Split(score, ",")
	sets := make([]SetScore, 0, len(parts))
	for _, part := range parts {
		games := strings.Split(strings.TrimSpace(part), "-")
		if len(games) != 2 {
			return nil, &InvalidMatchError{Rules: []Rule{RuleMalformedScore}, Detail: fmt.Sprintf("set %q", part)}
		}
		a, errA := strconv.Atoi(strings.TrimSpace(games[0]))
		b, errB := strconv.Atoi(strings.TrimSpace(games[1]))
		if errA != nil || errB != nil {
			return nil, &InvalidMatchError{Rules: []Rule{RuleMalformedScore}, Detail: fmt.Sprintf("set %q", part)}
		}
		sets = append(sets, SetScore{A: a, B: b})
	}
	return sets, nil
}

// FormatSets is the inverse of ParseSets.
func FormatSets(sets []SetScore) string {
	parts := make([]string, 0, len(sets))
	for _, s := range sets {
		parts = append(parts, fmt.Sprintf("%d-%d", s.A, s.B))
	}
	return strings.Join(parts, ", ")
}
