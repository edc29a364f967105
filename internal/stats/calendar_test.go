package stats

import (
	"testing"
	"time"

	"github.com/example/studytrack/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logAt(t time.Time, correct bool) models.ActivityLog {
	return models.ActivityLog{Date: t.UnixMilli(), IsCorrect: correct}
}

func TestActivityByDay(t *testing.T) {
	day := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	logs := []models.ActivityLog{
		logAt(day, true),
		logAt(day.Add(2*time.Hour), false),
		logAt(day.AddDate(0, 0, 1), true),
	}

	byDay := ActivityByDay(logs)
	assert.Equal(t, 2, byDay["2025-03-10"])
	assert.Equal(t, 1, byDay["2025-03-11"])
}

func TestBuildCalendarMonthAlignment(t *testing.T) {
	tests := []struct {
		year        int
		month       time.Month
		wantLeading int
		wantDays    int
	}{
		{2024, time.September, 0, 30}, // Sep 1 2024 is a Sunday
		{2024, time.June, 6, 30},      // Jun 1 2024 is a Saturday
		{2024, time.February, 4, 29},  // leap year, Feb 1 2024 is a Thursday
	}

	for _, tt := range tests {
		cells := BuildCalendarMonth(tt.year, tt.month, nil)
		require.Len(t, cells, tt.wantLeading+tt.wantDays, "%v %d", tt.month, tt.year)

		for i := 0; i < tt.wantLeading; i++ {
			assert.Equal(t, 0, cells[i].DayOfMonth)
			assert.Empty(t, cells[i].Date)
		}
		for day := 1; day <= tt.wantDays; day++ {
			cell := cells[tt.wantLeading+day-1]
			assert.Equal(t, day, cell.DayOfMonth)
			assert.NotEmpty(t, cell.Date)
		}
	}
}

func TestBuildCalendarMonthCounts(t *testing.T) {
	activity := map[string]int{"2025-01-15": 7}
	cells := BuildCalendarMonth(2025, time.January, activity)

	for _, cell := range cells {
		if cell.DayOfMonth == 15 {
			assert.Equal(t, 7, cell.Count)
		} else {
			assert.Equal(t, 0, cell.Count)
		}
	}
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0, Accuracy(nil))

	now := time.Now()
	logs := []models.ActivityLog{
		logAt(now, true),
		logAt(now, true),
		logAt(now, false),
	}
	// 2/3 = 66.66..., truncated
	assert.Equal(t, 66, Accuracy(logs))
}

func TestLastActiveDateUsesMaxTimestamp(t *testing.T) {
	assert.Equal(t, "", LastActiveDate(nil))

	newest := time.Date(2025, time.April, 20, 8, 0, 0, 0, time.Local)
	// Deliberately out of insertion order.
	logs := []models.ActivityLog{
		logAt(newest.AddDate(0, 0, -1), true),
		logAt(newest, false),
		logAt(newest.AddDate(0, 0, -10), true),
	}
	assert.Equal(t, "2025-04-20", LastActiveDate(logs))
}
