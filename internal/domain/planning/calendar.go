package planning

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// Day normaliza t al inicio del día calendario en su zona horaria.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate interpreta YYYY-MM-DD en la zona horaria indicada.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(entity.DateLayout, s, loc)
}

// FormatDate devuelve YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(entity.DateLayout)
}

// IsWorkingDay lunes a viernes.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// GraceCutoff primer día que todavía está dentro del periodo de gracia: se retroceden
// graceWorkingDays días hábiles desde today. Un día planeado anterior al corte está vencido.
func GraceCutoff(today time.Time, graceWorkingDays int) time.Time {
	d := Day(today)
	for n := 0; n < graceWorkingDays; {
		d = d.AddDate(0, 0, -1)
		if IsWorkingDay(d) {
			n++
		}
	}
	return d
}

// DateRange devuelve los días [from, from+days) como YYYY-MM-DD.
func DateRange(from time.Time, days int) []string {
	start := Day(from)
	out := make([]string, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, FormatDate(start.AddDate(0, 0, i)))
	}
	return out
}
