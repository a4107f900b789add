package league

import "sort"

// Rank orders players by points, highest first. Players with equal points
// keep the order they were given in (registration order).
//
// With an empty filter the stored totals are used. Otherwise totals are
// recomputed from the matches played inside the filter's range, and players
// without matches in the range rank with zero.
func Rank(players []Player, matches []MatchResult, filter RankingFilter) []Standing {
	rows := make([]Player, len(players))
	copy(rows, players)

	if !filter.IsZero() {
		index := make(map[string]*Player, len(rows))
		for i := range rows {
			rows[i] = Player{Name: rows[i].Name, PhotoURL: rows[i].PhotoURL, CreatedAt: rows[i].CreatedAt}
			index[rows[i].Name] = &rows[i]
		}
		for _, m := range matches {
			if !filter.Contains(m.PlayedAt) {
				continue
			}
			for name, d := range Deltas(m) {
				if p, ok := index[name]; ok {
					p.Apply(d)
				}
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})

	standings := make([]Standing, len(rows))
	for i, p := range rows {
		standings[i] = Standing{
			Position:      i + 1,
			Player:        p,
			WinPercentage: p.WinPercentage(),
		}
	}
	return standings
}

// HeadToHeadOf returns the matches in which both a and b played, in the
// order given, and how many of them each one won.
func HeadToHeadOf(a, b string, matches []MatchResult) HeadToHead {
	h := HeadToHead{PlayerA: a, PlayerB: b, Matches: []MatchResult{}}
	for _, m := range matches {
		if !m.Involves(a) || !m.Involves(b) {
			continue
		}
		h.Matches = append(h.Matches, m)
		if m.Won(a) {
			h.WinsA++
		}
		if m.Won(b) {
			h.WinsB++
		}
	}
	return h
}
