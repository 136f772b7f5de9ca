package model

import "slices"

// Record is a single changelog entry: one tracker key (or a free-text
// message when the work is untracked) and the pull requests it came from.
// Epic sub-tasks are plain Records.
type Record struct {
	TaskKey string   `json:"task_key,omitempty" yaml:"task_key,omitempty"` // empty for untracked work
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`   // shown only when TaskKey is empty
	Author  string   `json:"author,omitempty" yaml:"author,omitempty"`     // empty hides the "by @author" segment
	Numbers []int    `json:"number" yaml:"number"`
	Links   []string `json:"links" yaml:"links"`
}

// Task is a top-level changelog entry. Epic tasks carry their resolved sub-tasks.
type Task struct {
	Record `yaml:",inline"`
	IsEpic bool     `json:"is_epic" yaml:"is_epic"`
	Tasks  []Record `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// HasKey reports whether the record is tracked in the issue tracker
func (r *Record) HasKey() bool {
	return r.TaskKey != ""
}

// HasNumber reports whether the pull request number is already attached
func (r *Record) HasNumber(number int) bool {
	return slices.Contains(r.Numbers, number)
}

// AddPull attaches a pull request number and its link.
// Numbers and Links stay positionally paired; a number already present is ignored.
func (r *Record) AddPull(number int, link string) {
	if r.HasNumber(number) {
		return
	}
	r.Numbers = append(r.Numbers, number)
	r.Links = append(r.Links, link)
}

// SameEntry reports whether two sub-tasks describe the same work (key and message).
func (r *Record) SameEntry(other Record) bool {
	return r.TaskKey == other.TaskKey && r.Message == other.Message
}

// NewRecord builds a record for a single pull request.
// The message is dropped when a task key is present.
func NewRecord(taskKey, message, author string, number int, link string) Record {
	if taskKey != "" {
		message = ""
	}
	return Record{
		TaskKey: taskKey,
		Message: message,
		Author:  author,
		Numbers: []int{number},
		Links:   []string{link},
	}
}

// Less orders records with a task key before untracked ones, then by key.
func Less(a, b Record) bool {
	if a.HasKey() != b.HasKey() {
		return a.HasKey()
	}
	return a.TaskKey < b.TaskKey
}

// TaskLess orders tasks by (key absent, key, is epic).
func TaskLess(a, b Task) bool {
	if a.HasKey() != b.HasKey() || a.TaskKey != b.TaskKey {
		return Less(a.Record, b.Record)
	}
	return !a.IsEpic && b.IsEpic
}
