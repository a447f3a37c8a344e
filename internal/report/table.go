package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// leaderboardHeader is shared by the terminal table and the workbook.
var leaderboardHeader = []any{"#", "PLAYER", "SCORE", "ACS", "KDA", "HS%", "FB/M", "WIN%", "MATCHES"}

// WriteLeaderboardTable renders ranked rows as a text table.
func WriteLeaderboardTable(w io.Writer, rows []stats.LeaderboardRow) error {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	table.Header(leaderboardHeader...)
	for _, r := range rows {
		table.Append(
			strconv.Itoa(r.Rank),
			r.Name+"#"+r.Tag,
			strconv.Itoa(r.Score),
			fmt.Sprintf("%.1f", r.AvgACS),
			fmt.Sprintf("%.2f", r.AvgKDA),
			fmt.Sprintf("%.1f%%", r.HSPercent),
			fmt.Sprintf("%.2f", r.AvgFirstBloods),
			fmt.Sprintf("%.1f%%", r.Winrate),
			strconv.Itoa(r.MatchesPlayed),
		)
	}
	return table.Render()
}
