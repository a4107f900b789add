package league

import "time"

// DefaultPhotoURL is used when a player registers without a photo.
const DefaultPhotoURL = "https://cdn-icons-png.flaticon.com/512/3135/3135715.png"

// Source records where a match result came from.
type Source string

const (
	SourceManual    Source = "manual"
	SourcePlaytomic Source = "playtomic"
)

// Player is a league member and their accumulated record.
type Player struct {
	Name          string    `json:"name"`
	PhotoURL      string    `json:"photo_url"`
	Points        int       `json:"points"`
	MatchesPlayed int       `json:"matches_played"`
	MatchesWon    int       `json:"matches_won"`
	MatchesLost   int       `json:"matches_lost"`
	SetsWon       int       `json:"sets_won"`
	SetsLost      int       `json:"sets_lost"`
	GamesWon      int       `json:"games_won"`
	GamesLost     int       `json:"games_lost"`
	CreatedAt     time.Time `json:"created_at"`
}

// WinPercentage returns the share of played matches that were won, in percent.
func (p Player) WinPercentage() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return float64(p.MatchesWon) / float64(p.MatchesPlayed) * 100
}

// Apply adds a delta to the player's totals.
func (p *Player) Apply(d PlayerDelta) {
	p.Points += d.Points
	p.MatchesPlayed += d.MatchesPlayed
	p.MatchesWon += d.MatchesWon
	p.MatchesLost += d.MatchesLost
	p.SetsWon += d.SetsWon
	p.SetsLost += d.SetsLost
	p.GamesWon += d.GamesWon
	p.GamesLost += d.GamesLost
}

// SetScore holds the games of one set. A is the first side, B the second.
// Once a MatchResult is built, A is always the winning pair.
type SetScore struct {
	A int `json:"a" msgpack:"a"`
	B int `json:"b" msgpack:"b"`
}

func (s SetScore) empty() bool { return s.A == 0 && s.B == 0 }

func (s SetScore) swap() SetScore { return SetScore{A: s.B, B: s.A} }

// MatchResult is an immutable entry in the match history.
type MatchResult struct {
	ID         string     `json:"id" msgpack:"id"`
	PlayedAt   time.Time  `json:"played_at" msgpack:"played_at"`
	Winners    [2]string  `json:"winners" msgpack:"winners"`
	Losers     [2]string  `json:"losers" msgpack:"losers"`
	Sets       []SetScore `json:"sets" msgpack:"sets"`
	Source     Source     `json:"source" msgpack:"source"`
	ExternalID string     `json:"external_id,omitempty" msgpack:"external_id"`
}

// Score renders the sets as "6-4, 4-6, 7-5" from the winners' point of view.
func (m MatchResult) Score() string {
	return FormatSets(m.Sets)
}

// Involves reports whether name played in the match, on either side.
func (m MatchResult) Involves(name string) bool {
	return m.Won(name) || m.Lost(name)
}

// Won reports whether name was on the winning pair.
func (m MatchResult) Won(name string) bool {
	return m.Winners[0] == name || m.Winners[1] == name
}

// Lost reports whether name was on the losing pair.
func (m MatchResult) Lost(name string) bool {
	return m.Losers[0] == name || m.Losers[1] == name
}

// Players returns the four participants, winners first.
func (m MatchResult) Players() []string {
	return []string{m.Winners[0], m.Winners[1], m.Losers[0], m.Losers[1]}
}

// PlayerDelta is the change a single match makes to one player's record.
type PlayerDelta struct {
	Points        int `json:"points"`
	MatchesPlayed int `json:"matches_played"`
	MatchesWon    int `json:"matches_won"`
	MatchesLost   int `json:"matches_lost"`
	SetsWon       int `json:"sets_won"`
	SetsLost      int `json:"sets_lost"`
	GamesWon      int `json:"games_won"`
	GamesLost     int `json:"games_lost"`
}

// MatchInput is a finished match with the winning pair already labelled.
type MatchInput struct {
	Winners  [2]string
	Losers   [2]string
	Sets     []SetScore
	PlayedAt time.Time
}

// PairInput is a finished match where the winner is derived from the sets.
// Sets are given as PairA-PairB.
type PairInput struct {
	PairA    [2]string
	PairB    [2]string
	Sets     []SetScore
	PlayedAt time.Time
}

// Outcome is the result of scoring a match: the history record plus the
// per-player deltas to apply.
type Outcome struct {
	Result MatchResult            `json:"result"`
	Deltas map[string]PlayerDelta `json:"deltas"`
}

// Standing is one row of the ranking.
type Standing struct {
	Position int `json:"position"`
	Player
	WinPercentage float64 `json:"win_percentage"`
}

// RankingFilter restricts the ranking to matches played within [From, To].
// Zero values leave that bound open.
type RankingFilter struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether the filter has no bounds.
func (f RankingFilter) IsZero() bool {
	return f.From.IsZero() && f.To.IsZero()
}

// Contains reports whether t falls inside the filter's range. To is inclusive
// of the whole day.
func (f RankingFilter) Contains(t time.Time) bool {
	if !f.From.IsZero() && t.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// HeadToHead is the shared history of two players.
type HeadToHead struct {
	PlayerA string        `json:"player_a"`
	PlayerB string        `json:"player_b"`
	WinsA   int           `json:"wins_a"`
	WinsB   int           `json:"wins_b"`
	Matches []MatchResult `json:"matches"`
}
