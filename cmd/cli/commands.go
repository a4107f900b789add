package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	rankingFrom string
	rankingTo   string
	submitScore string
	importDays  int
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(h2hCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(metricsCmd)

	rankingCmd.Flags().StringVar(&rankingFrom, "from", "", "First day of the range (YYYY-MM-DD)")
	rankingCmd.Flags().StringVar(&rankingTo, "to", "", "Last day of the range (YYYY-MM-DD)")
	submitCmd.Flags().StringVar(&submitScore, "score", "", `Sets from the winners' side, e.g. "6-4, 3-6, 7-5"`)
	submitCmd.MarkFlagRequired("score")
	importCmd.Flags().IntVar(&importDays, "days", 0, "How many days back to import (server default when 0)")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players", nil)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player [name]",
	Short: "Show a player's standing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/"+url.PathEscape(args[0]), nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [name]",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players", nil, map[string]string{"name": args[0]})
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the match history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches", nil)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit [winner1] [winner2] [loser1] [loser2]",
	Short: "Submit a match result",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches", nil, map[string]any{
			"winners": args[0:2],
			"losers":  args[2:4],
			"score":   submitScore,
		})
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show the ranking, optionally for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if rankingFrom != "" {
			query.Set("from", rankingFrom)
		}
		if rankingTo != "" {
			query.Set("to", rankingTo)
		}
		return performGetRequest("/ranking", query)
	},
}

var h2hCmd = &cobra.Command{
	Use:   "h2h [playerA] [playerB]",
	Short: "Show the shared match history of two players",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/head-to-head", url.Values{"a": {args[0]}, "b": {args[1]}})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import recent results from Playtomic",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if importDays > 0 {
			query.Set("days", strconv.Itoa(importDays))
		}
		return performPostRequest("/import", query, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func endpointURL(endpoint string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	if len(query) == 0 {
		return host + endpoint
	}
	return host + endpoint + "?" + query.Encode()
}

func performGetRequest(endpoint string, query url.Values) error {
	target := endpointURL(endpoint, query)
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func performPostRequest(endpoint string, query url.Values, payload any) error {
	target := endpointURL(endpoint, query)
	fmt.Printf("Making request to %s\n", target)

	var body io.Reader = strings.NewReader("")
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := http.Post(target, "application/json", body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
