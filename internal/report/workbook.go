package report

import (
	"fmt"
	"math"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet of the leaderboard workbook.
const SheetName = "Leaderboard"

// LeaderboardWorkbook exports ranked rows as an xlsx file.
// Numeric columns are stored as numbers so they can be sorted in a spreadsheet.
func LeaderboardWorkbook(rows []stats.LeaderboardRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetName); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, h := range leaderboardHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}

	for i, r := range rows {
		values := []any{
			r.Rank,
			r.Name + "#" + r.Tag,
			r.Score,
			round(r.AvgACS, 1),
			round(r.AvgKDA, 2),
			round(r.HSPercent, 1),
			round(r.AvgFirstBloods, 2),
			round(r.Winrate, 1),
			r.MatchesPlayed,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(SheetName, cell, v)
		}
	}

	f.SetColWidth(SheetName, "A", "A", 6)
	f.SetColWidth(SheetName, "B", "B", 24)
	f.SetColWidth(SheetName, "C", "I", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
