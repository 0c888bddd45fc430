package domain

import (
	"fmt"
	"sort"
)

// DailyStat records focus activity for one calendar date.
type DailyStat struct {
	Date               string `json:"date" yaml:"date"`
	FocusTimeMinutes   int    `json:"focusTime" yaml:"focusTime"`
	PomodorosCompleted int    `json:"pomodorosCompleted" yaml:"pomodorosCompleted"`
}

// UserProgress is the lifetime focus history.
type UserProgress struct {
	TotalFocusTimeMinutes   int                  `json:"totalFocusTime" yaml:"totalFocusTime"`
	TotalPomodorosCompleted int                  `json:"totalPomodorosCompleted" yaml:"totalPomodorosCompleted"`
	CurrentStreak           int                  `json:"currentStreak" yaml:"currentStreak"`
	LastActiveDate          string               `json:"lastActiveDate" yaml:"lastActiveDate"`
	DailyStats              map[string]DailyStat `json:"dailyStats" yaml:"dailyStats"`
}

// NewUserProgress returns an empty history.
func NewUserProgress() UserProgress {
	return UserProgress{DailyStats: map[string]DailyStat{}}
}

// NextStreak computes the streak after a focus completion on today.
// A gap of exactly one day extends the streak, a longer gap restarts it,
// and a completion on the same day (or a clock that moved backwards) keeps it.
// An unreadable last date is treated as no history.
func NextStreak(current int, lastActiveDate, today string) int {
	if lastActiveDate == "" {
		return 1
	}
	diff, err := DaysBetween(lastActiveDate, today)
	if err != nil {
		return 1
	}
	switch {
	case diff == 1:
		return current + 1
	case diff > 1:
		return 1
	default:
		return current
	}
}

// RecordFocus folds one completed focus session into the history.
func (p *UserProgress) RecordFocus(today string, minutes int) {
	if p.DailyStats == nil {
		p.DailyStats = map[string]DailyStat{}
	}
	p.CurrentStreak = NextStreak(p.CurrentStreak, p.LastActiveDate, today)

	stat := p.DailyStats[today]
	stat.Date = today
	stat.FocusTimeMinutes += minutes
	stat.PomodorosCompleted++
	p.DailyStats[today] = stat

	p.TotalFocusTimeMinutes += minutes
	p.TotalPomodorosCompleted++
	p.LastActiveDate = today
}

// Day returns the stat for a date, zero-valued when nothing was recorded.
func (p UserProgress) Day(date string) DailyStat {
	if stat, ok := p.DailyStats[date]; ok {
		return stat
	}
	return DailyStat{Date: date}
}

// RecentDays returns n consecutive daily stats ending on today, oldest first.
func (p UserProgress) RecentDays(today string, n int) []DailyStat {
	days := make([]DailyStat, 0, n)
	for i := n - 1; i >= 0; i-- {
		date, err := AddDays(today, -i)
		if err != nil {
			return nil
		}
		days = append(days, p.Day(date))
	}
	return days
}

// SortedDays returns every recorded stat ordered by date.
func (p UserProgress) SortedDays() []DailyStat {
	days := make([]DailyStat, 0, len(p.DailyStats))
	for _, s := range p.DailyStats {
		days = append(days, s)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// Clone returns a copy that shares no map with p.
func (p UserProgress) Clone() UserProgress {
	out := p
	out.DailyStats = make(map[string]DailyStat, len(p.DailyStats))
	for k, v := range p.DailyStats {
		out.DailyStats[k] = v
	}
	return out
}

// FormatMinutes renders a minute count as "Hh Mm", or "Mm" under an hour.
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
