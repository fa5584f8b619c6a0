package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mauv0809/courtside/internal/rating"
)

var importDays int

func init() {
	importCmd.Flags().IntVar(&importDays, "days", 3, "How many days back to search for matches")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(ratingsCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(tierCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard CLUB",
	Short: "Show the win/loss leaderboard of a club",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/clubs/"+url.PathEscape(args[0])+"/leaderboard", nil)
	},
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings CLUB",
	Short: "Show the rating leaderboard of a club",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/clubs/"+url.PathEscape(args[0])+"/ratings", nil)
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process every match that has not completed yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/process", nil)
	},
}

var importCmd = &cobra.Command{
	Use:   "import CLUB",
	Short: "Import recent Playtomic matches played between club members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("club", args[0])
		query.Set("days", strconv.Itoa(importDays))
		return performRequest(http.MethodPost, "/import", query)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/stats", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var tierCmd = &cobra.Command{
	Use:   "tier RATING",
	Short: "Show the tier a rating falls into",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("rating must be an integer: %w", err)
		}
		tier := rating.ComputeTier(value)
		fmt.Fprintf(cmd.OutOrStdout(), "%d is %s (%s)\n", value, tier.Name, tier.Color)
		return nil
	},
}

func performRequest(method, endpoint string, query url.Values) error {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
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
