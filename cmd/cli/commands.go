package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/report"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	eventID  string
	xlsxPath string
	dryRun   bool
)

var client = &http.Client{Timeout: 30 * time.Second}

func init() {
	leaderboardCmd.Flags().StringVar(&eventID, "event", "", "Show the leaderboard of a single event")
	leaderboardCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Download the leaderboard as an Excel file to this path")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the transitions without performing them")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", false)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard as a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if xlsxPath != "" {
			return downloadWorkbook(xlsxPath)
		}

		path := "/leaderboard"
		if eventID != "" {
			path = "/events/" + url.PathEscape(eventID) + "/leaderboard"
		}
		var rows []stats.LeaderboardRow
		if err := getJSON(path, &rows); err != nil {
			return err
		}
		return report.WriteLeaderboardTable(os.Stdout, rows)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		var players []league.Player
		if err := getJSON("/players", &players); err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("NAME", "TAG", "DISCORD", "REGISTERED")
		for _, p := range players {
			registered := time.Unix(p.CreatedAt, 0).Format("2006-01-02")
			if err := table.Append(p.Name, p.Tag, p.DiscordID, registered); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Advance unfinished matches through channel setup, result announcement and teardown",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/process"
		if dryRun {
			path += "?dry_run=true"
		}
		return performRequest(http.MethodPost, path, true)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get the durable application counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/admin/counters", true)
	},
}

func newRequest(method, endpoint string, admin bool) (*http.Request, error) {
	req, err := http.NewRequest(method, host+endpoint, nil)
	if err != nil {
		return nil, err
	}
	if admin {
		if token == "" {
			return nil, fmt.Errorf("%s needs an admin token, set --token or ADMIN_TOKEN", endpoint)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func performRequest(method, endpoint string, admin bool) error {
	req, err := newRequest(method, endpoint, admin)
	if err != nil {
		return err
	}
	fmt.Printf("Making request to %s\n", req.URL)

	resp, err := client.Do(req)
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

func getJSON(endpoint string, v any) error {
	req, err := newRequest(http.MethodGet, endpoint, false)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func downloadWorkbook(path string) error {
	endpoint := "/leaderboard.xlsx"
	if eventID != "" {
		endpoint += "?event=" + url.QueryEscape(eventID)
	}
	req, err := newRequest(http.MethodGet, endpoint, false)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", endpoint, resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes to %s\n", n, path)
	return nil
}
