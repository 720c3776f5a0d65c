package academic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
)

func TestAttendanceBand_Boundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want models.AttendanceBand
	}{
		{100, models.AttendanceBandExcellent},
		{90, models.AttendanceBandExcellent},
		{89.99, models.AttendanceBandGood},
		{80, models.AttendanceBandGood},
		{79.5, models.AttendanceBandAverage},
		{75, models.AttendanceBandAverage},
		{74.99, models.AttendanceBandPoor},
		{65, models.AttendanceBandPoor},
		{64.99, models.AttendanceBandCritical},
		{0, models.AttendanceBandCritical},
	}
	for _, c := range cases {
		require.Equal(t, c.want, attendanceBand(c.pct), "pct=%v", c.pct)
	}
}

func TestGradeFor_Boundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{95, "A+"},
		{90, "A+"},
		{85, "A"},
		{80, "A"},
		{75, "B+"},
		{70, "B+"},
		{65, "B"},
		{60, "B"},
		{55, "C+"},
		{50, "C+"},
		{45, "C"},
		{40, "C"},
		{36, "D"},
		{35, "D"},
		{34.99, "F"},
		{20, "F"},
		{0, "F"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, gradeFor(c.pct), "pct=%v", c.pct)
	}
}

func TestDeriveMark(t *testing.T) {
	m := &models.Mark{ObtainedMarks: 45, TotalMarks: 50}
	deriveMark(m)
	require.Equal(t, 90.0, m.Percentage)
	require.Equal(t, "A+", m.Grade)

	m = &models.Mark{ObtainedMarks: 1, TotalMarks: 3}
	deriveMark(m)
	require.Equal(t, 33.33, m.Percentage)
	require.Equal(t, "F", m.Grade)

	m = &models.Mark{ObtainedMarks: 10, TotalMarks: 0}
	deriveMark(m)
	require.Equal(t, 0.0, m.Percentage)
	require.Equal(t, "F", m.Grade)
}

func day(statuses map[string]models.AttendanceStatus) []models.DailySubjectStatus {
	out := make([]models.DailySubjectStatus, 0, len(statuses))
	// fixed order for deterministic assertions
	for _, code := range []string{"CS101", "MA102", "PH103"} {
		if st, ok := statuses[code]; ok {
			out = append(out, models.DailySubjectStatus{SubjectCode: code, SubjectName: code, Status: st})
		}
	}
	return out
}

func subjectByCode(t *testing.T, sum *models.AttendanceSummary, code string) models.SubjectAttendance {
	t.Helper()
	for _, s := range sum.Subjects.Data() {
		if s.SubjectCode == code {
			return s
		}
	}
	t.Fatalf("subject %s not found", code)
	return models.SubjectAttendance{}
}

func TestApplyDailyAttendance_NewDate(t *testing.T) {
	sum := &models.AttendanceSummary{}
	applyDailyAttendance(sum, "2026-02-02", day(map[string]models.AttendanceStatus{
		"CS101": models.AttendanceStatusPresent,
		"MA102": models.AttendanceStatusAbsent,
		"PH103": models.AttendanceStatusLate,
	}))

	cs := subjectByCode(t, sum, "CS101")
	require.Equal(t, 1, cs.TotalClasses)
	require.Equal(t, 1, cs.AttendedClasses)
	require.Equal(t, 100.0, cs.Percentage)
	require.Equal(t, models.AttendanceBandExcellent, cs.Status)

	ma := subjectByCode(t, sum, "MA102")
	require.Equal(t, 1, ma.TotalClasses)
	require.Equal(t, 0, ma.AttendedClasses)
	require.Equal(t, models.AttendanceBandCritical, ma.Status)

	// late counts as attended
	ph := subjectByCode(t, sum, "PH103")
	require.Equal(t, 1, ph.AttendedClasses)

	require.Equal(t, 3, sum.OverallTotal)
	require.Equal(t, 2, sum.OverallAttended)
	require.Equal(t, 66.67, sum.OverallPercentage)
	require.Equal(t, models.AttendanceBandPoor, sum.OverallStatus)
	require.Len(t, sum.Daily.Data(), 1)
}

func TestApplyDailyAttendance_SamePayloadTwiceIsNoOp(t *testing.T) {
	payload := day(map[string]models.AttendanceStatus{
		"CS101": models.AttendanceStatusPresent,
		"MA102": models.AttendanceStatusAbsent,
	})
	sum := &models.AttendanceSummary{}
	applyDailyAttendance(sum, "2026-02-02", payload)
	applyDailyAttendance(sum, "2026-02-02", payload)

	cs := subjectByCode(t, sum, "CS101")
	require.Equal(t, 1, cs.TotalClasses)
	require.Equal(t, 1, cs.AttendedClasses)
	require.Equal(t, 2, sum.OverallTotal)
	require.Equal(t, 1, sum.OverallAttended)
	require.Len(t, sum.Daily.Data(), 1)
}

func TestApplyDailyAttendance_ResubmitFlipsStatusWithoutRecount(t *testing.T) {
	sum := &models.AttendanceSummary{}
	applyDailyAttendance(sum, "2026-02-02", day(map[string]models.AttendanceStatus{
		"CS101": models.AttendanceStatusAbsent,
	}))
	applyDailyAttendance(sum, "2026-02-02", day(map[string]models.AttendanceStatus{
		"CS101": models.AttendanceStatusPresent,
	}))

	cs := subjectByCode(t, sum, "CS101")
	require.Equal(t, 1, cs.TotalClasses)
	require.Equal(t, 1, cs.AttendedClasses)
	require.Equal(t, 100.0, cs.Percentage)
}

func TestApplyDailyAttendance_DroppedSubjectLosesAttendance(t *testing.T) {
	sum := &models.AttendanceSummary{}
	applyDailyAttendance(sum, "2026-02-02", day(map[string]models.AttendanceStatus{
		"CS101": models.AttendanceStatusPresent,
		"MA102": models.AttendanceStatusPresent,
	}))
	// resubmit without MA102: its attended credit for the day is withdrawn
	applyDailyAttendance(sum, "2026-02-02", day(map[string]models.AttendanceStatus{
		"CS101": models.AttendanceStatusPresent,
	}))

	ma := subjectByCode(t, sum, "MA102")
	require.Equal(t, 1, ma.TotalClasses)
	require.Equal(t, 0, ma.AttendedClasses)
}

func TestApplyDailyAttendance_SeparateDatesAccumulate(t *testing.T) {
	sum := &models.AttendanceSummary{}
	applyDailyAttendance(sum, "2026-02-02", day(map[string]models.AttendanceStatus{
		"CS101": models.AttendanceStatusPresent,
	}))
	applyDailyAttendance(sum, "2026-02-03", day(map[string]models.AttendanceStatus{
		"CS101": models.AttendanceStatusAbsent,
	}))

	cs := subjectByCode(t, sum, "CS101")
	require.Equal(t, 2, cs.TotalClasses)
	require.Equal(t, 1, cs.AttendedClasses)
	require.Equal(t, 50.0, cs.Percentage)
	require.Len(t, sum.Daily.Data(), 2)
}

func TestOverallCGPA_WeightsPassedSemestersOnly(t *testing.T) {
	results := []*models.Result{
		{Semester: 1, SGPA: 8.0, EarnedCredits: 20, Status: models.ResultStatusPass},
		{Semester: 2, SGPA: 0, EarnedCredits: 0, Status: models.ResultStatusFail},
		{Semester: 3, SGPA: 9.0, EarnedCredits: 22, Status: models.ResultStatusPass},
	}
	// (8.0*20 + 9.0*22) / 42
	require.Equal(t, 8.52, overallCGPA(results))
}

func TestOverallCGPA_NoPassedSemesters(t *testing.T) {
	require.Equal(t, 0.0, overallCGPA(nil))
	require.Equal(t, 0.0, overallCGPA([]*models.Result{
		{SGPA: 5.0, EarnedCredits: 0, Status: models.ResultStatusFail},
	}))
}
