package domain

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// ParseTaskStatus parses a case-insensitive task status.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: task status %q", ErrUnknownEnumValue, s)
	}
	return status, nil
}

// Task is one workflow step of an engagement.
type Task struct {
	TaskID   string     `json:"taskID"`
	ClientID string     `json:"clientID"`
	ExpertID string     `json:"expertID"`
	Title    string     `json:"title"`
	Status   TaskStatus `json:"status"`
	DueDate  *time.Time `json:"dueDate"`
	AuditFields
}

// Pair returns the client+expert pair the task belongs to.
func (t Task) Pair() PairKey {
	return PairKey{ClientID: t.ClientID, ExpertID: t.ExpertID}
}
