package domain

import "sort"

// AppState is every persisted slice of the application.
type AppState struct {
	Settings     TimerSettings  `json:"settings" yaml:"settings"`
	Tasks        []Task         `json:"tasks" yaml:"tasks"`
	Progress     UserProgress   `json:"progress" yaml:"progress"`
	ActiveTaskID string         `json:"activeTaskId" yaml:"activeTaskId"`
	Weekly       WeeklyProgress `json:"weeklyProgress" yaml:"weeklyProgress"`
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	return AppState{
		Settings:     s.Settings,
		Tasks:        CloneTasks(s.Tasks),
		Progress:     s.Progress.Clone(),
		ActiveTaskID: s.ActiveTaskID,
		Weekly:       s.Weekly.Clone(),
	}
}

// CurrentState is the summary served to external agents.
type CurrentState struct {
	Timer       TimerSnapshot `json:"timer"`
	ActiveTask  *Task         `json:"activeTask,omitempty"`
	Today       DailyStat     `json:"today"`
	Streak      int           `json:"streak"`
	WeeklyCount int           `json:"weeklyCompleted"`
}

// TaskBreakdown is one row of the per-task time report.
type TaskBreakdown struct {
	TaskID           string `json:"taskId"`
	Title            string `json:"title"`
	Pomodoros        int    `json:"pomodoros"`
	FocusTimeMinutes int    `json:"focusTime"`
}

// ProgressReport summarizes progress for display.
type ProgressReport struct {
	TotalFocusTimeMinutes   int             `json:"totalFocusTime"`
	TotalPomodorosCompleted int             `json:"totalPomodorosCompleted"`
	CurrentStreak           int             `json:"currentStreak"`
	Today                   DailyStat       `json:"today"`
	LastSevenDays           []DailyStat     `json:"lastSevenDays"`
	TopTasks                []TaskBreakdown `json:"topTasks"`
	TasksCompleted          int             `json:"tasksCompleted"`
	TasksTotal              int             `json:"tasksTotal"`
}

// TaskCompletionPercent returns completed tasks over all tasks, in [0, 100].
func (r ProgressReport) TaskCompletionPercent() float64 {
	if r.TasksTotal == 0 {
		return 0
	}
	return float64(r.TasksCompleted) / float64(r.TasksTotal) * 100
}

// TopTaskLimit bounds the per-task breakdown.
const TopTaskLimit = 5

// BuildProgressReport assembles the report for today from the current slices.
// Task time is estimated as pomodoros times the current focus duration.
func BuildProgressReport(p UserProgress, tasks []Task, s TimerSettings, today string) ProgressReport {
	r := ProgressReport{
		TotalFocusTimeMinutes:   p.TotalFocusTimeMinutes,
		TotalPomodorosCompleted: p.TotalPomodorosCompleted,
		CurrentStreak:           p.CurrentStreak,
		Today:                   p.Day(today),
		LastSevenDays:           p.RecentDays(today, 7),
		TasksTotal:              len(tasks),
	}

	worked := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			r.TasksCompleted++
		}
		if t.ActualPomodoros > 0 {
			worked = append(worked, t)
		}
	}
	sort.SliceStable(worked, func(i, j int) bool {
		return worked[i].ActualPomodoros > worked[j].ActualPomodoros
	})
	if len(worked) > TopTaskLimit {
		worked = worked[:TopTaskLimit]
	}
	r.TopTasks = make([]TaskBreakdown, 0, len(worked))
	for _, t := range worked {
		r.TopTasks = append(r.TopTasks, TaskBreakdown{
			TaskID:           t.ID,
			Title:            t.Title,
			Pomodoros:        t.ActualPomodoros,
			FocusTimeMinutes: t.ActualPomodoros * s.FocusDuration,
		})
	}
	return r
}
