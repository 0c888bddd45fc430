package domain

import (
	"testing"
	"time"
)

func TestBuildProgressReport(t *testing.T) {
	p := NewUserProgress()
	p.RecordFocus("2024-01-09", 25)
	p.RecordFocus("2024-01-10", 25)
	p.RecordFocus("2024-01-10", 25)

	now := time.Now()
	var tasks []Task
	for i, actual := range []int{1, 6, 0, 3, 2, 4, 5} {
		task, _ := NewTask(string(rune('A'+i)), 4, now)
		task.ActualPomodoros = actual
		task.Completed = i%2 == 0
		tasks = append(tasks, task)
	}

	r := BuildProgressReport(p, tasks, DefaultTimerSettings(), "2024-01-10")

	if r.TotalFocusTimeMinutes != 75 || r.TotalPomodorosCompleted != 3 {
		t.Errorf("totals = %d min / %d pomodoros, want 75 / 3", r.TotalFocusTimeMinutes, r.TotalPomodorosCompleted)
	}
	if r.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", r.CurrentStreak)
	}
	if r.Today.PomodorosCompleted != 2 || r.Today.FocusTimeMinutes != 50 {
		t.Errorf("Today = %+v, want 2 pomodoros / 50 minutes", r.Today)
	}
	if len(r.LastSevenDays) != 7 {
		t.Errorf("LastSevenDays len = %d, want 7", len(r.LastSevenDays))
	}
	if len(r.TopTasks) != TopTaskLimit {
		t.Fatalf("TopTasks len = %d, want %d", len(r.TopTasks), TopTaskLimit)
	}
	wantOrder := []int{6, 5, 4, 3, 2}
	for i, row := range r.TopTasks {
		if row.Pomodoros != wantOrder[i] {
			t.Errorf("TopTasks[%d].Pomodoros = %d, want %d", i, row.Pomodoros, wantOrder[i])
		}
		if row.FocusTimeMinutes != row.Pomodoros*25 {
			t.Errorf("TopTasks[%d].FocusTimeMinutes = %d, want %d", i, row.FocusTimeMinutes, row.Pomodoros*25)
		}
	}
	if r.TasksTotal != 7 || r.TasksCompleted != 4 {
		t.Errorf("tasks = %d/%d, want 4/7", r.TasksCompleted, r.TasksTotal)
	}
}

func TestProgressReport_TaskCompletionPercent(t *testing.T) {
	if got := (ProgressReport{}).TaskCompletionPercent(); got != 0 {
		t.Errorf("TaskCompletionPercent() with no tasks = %v, want 0", got)
	}
	if got := (ProgressReport{TasksCompleted: 1, TasksTotal: 4}).TaskCompletionPercent(); got != 25 {
		t.Errorf("TaskCompletionPercent() = %v, want 25", got)
	}
}

func TestAppState_Clone(t *testing.T) {
	task, _ := NewTask("x", 1, time.Now())
	s := AppState{
		Tasks:    []Task{task},
		Progress: NewUserProgress(),
		Weekly:   WeeklyProgress{WeekStartDate: "2024-01-01", CompletedTaskIDs: []string{task.ID}},
	}
	c := s.Clone()
	c.Tasks[0].Title = "changed"
	c.Weekly.CompletedTaskIDs[0] = "other"
	if s.Tasks[0].Title != "x" || s.Weekly.CompletedTaskIDs[0] != task.ID {
		t.Error("Clone() should not share slices with the original")
	}
}
