package model_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/taskboard/internal/model"
)

func TestParsePriority(t *testing.T) {
	for _, in := range []string{"low", "Medium", " HIGH "} {
		if _, err := model.ParsePriority(in); err != nil {
			t.Errorf("ParsePriority(%q): %v", in, err)
		}
	}
	if _, err := model.ParsePriority("urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestParseDueDate(t *testing.T) {
	got, err := model.ParseDueDate("2024-12-31")
	if err != nil || got != "2024-12-31" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := model.ParseDueDate("31/12/2024"); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestTaskPatchApply(t *testing.T) {
	due := "2024-01-02"
	task := model.Task{Title: "old", Tags: []string{"a"}, DueDate: &due}

	title := "new"
	tags := []string{"b", "c"}
	p := model.TaskPatch{Title: &title, Tags: &tags}
	p.Apply(&task)

	if task.Title != "new" || len(task.Tags) != 2 || task.DueDate == nil {
		t.Fatalf("unexpected task after patch: %+v", task)
	}
	tags[0] = "mutated"
	if task.Tags[0] != "b" {
		t.Fatal("patch tags leaked into task")
	}

	model.TaskPatch{ClearDueDate: true}.Apply(&task)
	if task.DueDate != nil {
		t.Fatal("expected due date cleared")
	}
	if !(model.TaskPatch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
}

func TestSummarize(t *testing.T) {
	done, pending := model.Summarize(sampleTasks())
	if done != 1 || pending != 1 {
		t.Fatalf("expected 1/1, got %d/%d", done, pending)
	}
}

func TestTaskJSON_KeepsMilliseconds(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 5, 0, time.UTC)
	task := model.Task{ID: "a", Title: "t", Priority: model.PriorityLow, CreatedAt: at, UpdatedAt: at.Add(250 * time.Millisecond)}

	b, err := json.Marshal([]model.Task{task})
	if err != nil {
		t.Fatal(err)
	}
	raw := string(b)
	for _, want := range []string{`"createdAt":"2024-03-01T09:00:05.000Z"`, `"updatedAt":"2024-03-01T09:00:05.250Z"`, `"dueDate":null`} {
		if !strings.Contains(raw, want) {
			t.Errorf("expected %s in %s", want, raw)
		}
	}
	if strings.Count(raw, "createdAt") != 1 {
		t.Errorf("createdAt written more than once: %s", raw)
	}

	var back []model.Task
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || !back[0].CreatedAt.Equal(task.CreatedAt) || !back[0].UpdatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("unexpected decode %+v", back)
	}
}
