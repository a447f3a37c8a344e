package report_test

import (
	"bytes"
	"testing"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/report"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var rows = []stats.LeaderboardRow{
	{Rank: 1, Name: "Sova", Tag: "EUW", Score: 459, AvgACS: 220, AvgKDA: 1.5, HSPercent: 26.666, AvgFirstBloods: 2, Winrate: 60, MatchesPlayed: 5},
	{Rank: 2, Name: "Jett", Tag: "NA1", Score: 108, AvgACS: 250, AvgKDA: 2, HSPercent: 50, AvgFirstBloods: 2, Winrate: 100, MatchesPlayed: 1},
}

func TestWriteLeaderboardTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteLeaderboardTable(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "PLAYER")
	assert.Contains(t, out, "Sova#EUW")
	assert.Contains(t, out, "459")
	assert.Contains(t, out, "26.7%")
	assert.Contains(t, out, "Jett#NA1")
}

func TestLeaderboardWorkbook(t *testing.T) {
	data, err := report.LeaderboardWorkbook(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SheetName}, f.GetSheetList())

	header, err := f.GetCellValue(report.SheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "PLAYER", header)

	name, err := f.GetCellValue(report.SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Sova#EUW", name)

	score, err := f.GetCellValue(report.SheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "459", score)

	hs, err := f.GetCellValue(report.SheetName, "F2")
	require.NoError(t, err)
	assert.Equal(t, "26.7", hs)

	last, err := f.GetCellValue(report.SheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Jett#NA1", last)
}

func TestLeaderboardWorkbook_Empty(t *testing.T) {
	data, err := report.LeaderboardWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
