package academic

import (
	"math"

	"gorm.io/datatypes"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
)

// Derivation is kept in pure functions invoked explicitly before every
// persist, so the banding/grade/CGPA formulas are testable without a
// database and recomputation order is visible at the call site.

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percentOf(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return roundTo2(float64(part) / float64(whole) * 100)
}

// attendanceBand maps a percentage to the five-band status. Boundaries
// are inclusive lower bounds: 90 is Excellent, 80 is Good, and so on.
func attendanceBand(pct float64) models.AttendanceBand {
	switch {
	case pct >= 90:
		return models.AttendanceBandExcellent
	case pct >= 80:
		return models.AttendanceBandGood
	case pct >= 75:
		return models.AttendanceBandAverage
	case pct >= 65:
		return models.AttendanceBandPoor
	default:
		return models.AttendanceBandCritical
	}
}

// gradeFor maps a marks percentage to the eight-band letter grade.
func gradeFor(pct float64) string {
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B+"
	case pct >= 60:
		return "B"
	case pct >= 50:
		return "C+"
	case pct >= 40:
		return "C"
	case pct >= 35:
		return "D"
	default:
		return "F"
	}
}

// deriveAttendance recomputes every subject's percentage/status from its
// raw counters, then the overall rollup across all subjects.
func deriveAttendance(sum *models.AttendanceSummary) {
	subjects := sum.Subjects.Data()
	totalAll, attendedAll := 0, 0
	for i := range subjects {
		s := &subjects[i]
		s.Percentage = percentOf(s.AttendedClasses, s.TotalClasses)
		s.Status = attendanceBand(s.Percentage)
		totalAll += s.TotalClasses
		attendedAll += s.AttendedClasses
	}
	sum.Subjects = datatypes.NewJSONType(subjects)
	sum.OverallTotal = totalAll
	sum.OverallAttended = attendedAll
	sum.OverallPercentage = percentOf(attendedAll, totalAll)
	sum.OverallStatus = attendanceBand(sum.OverallPercentage)
}

// applyDailyAttendance merges one day's statuses into the summary, then
// runs the full derive pass. Resubmission for an already-recorded date
// replaces that day's subject list wholesale and adjusts counters by
// diffing old vs. new status per subject: totalClasses is never
// re-incremented for a date that was already counted. Applying the same
// payload twice is therefore a no-op.
func applyDailyAttendance(sum *models.AttendanceSummary, date string, day []models.DailySubjectStatus) {
	subjects := sum.Subjects.Data()
	daily := sum.Daily.Data()

	existing := -1
	for i := range daily {
		if daily[i].Date == date {
			existing = i
			break
		}
	}

	if existing >= 0 {
		prev := make(map[string]models.AttendanceStatus, len(daily[existing].Subjects))
		for _, s := range daily[existing].Subjects {
			prev[s.SubjectCode] = s.Status
		}
		for _, s := range day {
			old, seen := prev[s.SubjectCode]
			if !seen {
				// subject added to an already-recorded day: first count
				subjects = bumpSubject(subjects, s, true, 0)
				continue
			}
			delete(prev, s.SubjectCode)
			switch {
			case s.Status.Counts() && !old.Counts():
				subjects = bumpSubject(subjects, s, false, +1)
			case !s.Status.Counts() && old.Counts():
				subjects = bumpSubject(subjects, s, false, -1)
			}
		}
		// subjects dropped from the resubmitted list count as not present
		for code, old := range prev {
			if old.Counts() {
				subjects = bumpSubject(subjects, models.DailySubjectStatus{SubjectCode: code, Status: models.AttendanceStatusAbsent}, false, -1)
			}
		}
		daily[existing].Subjects = day
	} else {
		daily = append(daily, models.DailyAttendanceEntry{Date: date, Subjects: day})
		for _, s := range day {
			subjects = bumpSubject(subjects, s, true, 0)
		}
	}

	sum.Subjects = datatypes.NewJSONType(subjects)
	sum.Daily = datatypes.NewJSONType(daily)
	deriveAttendance(sum)
}

// bumpSubject adjusts a subject's counters, appending the subject entry
// on first sight. firstCount means the date was not counted for this
// subject yet: totalClasses goes up and the status decides attendance.
// attendedDelta carries the diff adjustment for already-counted dates.
func bumpSubject(subjects []models.SubjectAttendance, s models.DailySubjectStatus, firstCount bool, attendedDelta int) []models.SubjectAttendance {
	idx := -1
	for i := range subjects {
		if subjects[i].SubjectCode == s.SubjectCode {
			idx = i
			break
		}
	}
	if idx < 0 {
		subjects = append(subjects, models.SubjectAttendance{SubjectCode: s.SubjectCode, SubjectName: s.SubjectName})
		idx = len(subjects) - 1
	}
	sub := &subjects[idx]
	if s.SubjectName != "" {
		sub.SubjectName = s.SubjectName
	}
	if firstCount {
		sub.TotalClasses++
		if s.Status.Counts() {
			sub.AttendedClasses++
		}
	}
	sub.AttendedClasses += attendedDelta
	if sub.AttendedClasses < 0 {
		sub.AttendedClasses = 0
	}
	return subjects
}

// deriveMark recomputes the percentage and grade from raw marks.
func deriveMark(m *models.Mark) {
	if m.TotalMarks <= 0 {
		m.Percentage = 0
	} else {
		m.Percentage = roundTo2(m.ObtainedMarks / m.TotalMarks * 100)
	}
	m.Grade = gradeFor(m.Percentage)
}

// overallCGPA credit-weights sgpa over passed semesters only; failed
// semesters carry zero earned credits and contribute nothing.
func overallCGPA(results []*models.Result) float64 {
	var weighted, credits float64
	for _, r := range results {
		if r.Status != models.ResultStatusPass {
			continue
		}
		weighted += r.SGPA * r.EarnedCredits
		credits += r.EarnedCredits
	}
	if credits == 0 {
		return 0
	}
	return roundTo2(weighted / credits)
}
