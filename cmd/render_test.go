package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/studytrack/internal/stats"
	"github.com/example/studytrack/pkg/models"
)

func TestUnitLineScalesProgressRatioToPercent(t *testing.T) {
	unit := models.StudyUnit{ID: 1, Name: "U1", ProblemCount: 10}
	problems := make([]models.Problem, 10)
	for i := range problems {
		problems[i] = models.Problem{ID: int64(i + 1), UnitID: 1, ProblemIndex: i + 1}
		if i < 3 {
			problems[i].Level = 5
		}
	}

	rollups := stats.BuildUnitRollups([]models.StudyUnit{unit}, problems)
	line := unitLine(rollups[0])

	assert.Contains(t, line, "30%")
	assert.Contains(t, line, "[###-------]")
	assert.Contains(t, line, "(3/10 mastered)")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[----------]", progressBar(0))
	assert.Equal(t, "[#####-----]", progressBar(50))
	assert.Equal(t, "[##########]", progressBar(100))
	assert.Equal(t, "[##########]", progressBar(130))
	assert.Equal(t, "[----------]", progressBar(-5))
}

func TestCalendarCell(t *testing.T) {
	assert.Equal(t, "  ", calendarCell(stats.CalendarDay{}))
	assert.Equal(t, " 3", calendarCell(stats.CalendarDay{DayOfMonth: 3}))
	assert.Equal(t, "##", calendarCell(stats.CalendarDay{DayOfMonth: 3, Count: 2}))
}
