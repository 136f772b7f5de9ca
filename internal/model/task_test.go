package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name     string
		taskKey  string
		message  string
		expected Record
	}{
		{
			name:    "key drops message",
			taskKey: "ERP-2",
			message: "Pull title 2",
			expected: Record{
				TaskKey: "ERP-2",
				Author:  "user",
				Numbers: []int{2},
				Links:   []string{"https://link.com"},
			},
		},
		{
			name:    "no key keeps message",
			taskKey: "",
			message: "Pull title 3",
			expected: Record{
				Message: "Pull title 3",
				Author:  "user",
				Numbers: []int{2},
				Links:   []string{"https://link.com"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewRecord(tt.taskKey, tt.message, "user", 2, "https://link.com")
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRecord_AddPull(t *testing.T) {
	r := NewRecord("ERP-1", "", "user", 2, "https://link.com/2")

	r.AddPull(3, "https://link.com/3")
	r.AddPull(2, "https://link.com/other")
	r.AddPull(3, "https://link.com/3")

	assert.Equal(t, []int{2, 3}, r.Numbers)
	assert.Equal(t, []string{"https://link.com/2", "https://link.com/3"}, r.Links)
}

func TestRecord_SameEntry(t *testing.T) {
	a := Record{TaskKey: "ERP-1"}
	assert.True(t, a.SameEntry(Record{TaskKey: "ERP-1", Author: "other"}))
	assert.False(t, a.SameEntry(Record{TaskKey: "ERP-2"}))

	b := Record{Message: "Merge pull request #5"}
	assert.True(t, b.SameEntry(Record{Message: "Merge pull request #5"}))
	assert.False(t, b.SameEntry(Record{Message: "Merge pull request #6"}))
}

func TestTaskLess(t *testing.T) {
	tests := []struct {
		name     string
		a        Task
		b        Task
		expected bool
	}{
		{
			name:     "keyed before keyless",
			a:        Task{Record: Record{TaskKey: "ERP-9"}},
			b:        Task{Record: Record{Message: "Support"}},
			expected: true,
		},
		{
			name:     "keyless after keyed",
			a:        Task{Record: Record{Message: "Support"}},
			b:        Task{Record: Record{TaskKey: "ERP-1"}},
			expected: false,
		},
		{
			name:     "lexicographic keys",
			a:        Task{Record: Record{TaskKey: "ERP-10"}},
			b:        Task{Record: Record{TaskKey: "ERP-2"}},
			expected: true,
		},
		{
			name:     "non-epic before epic with the same key",
			a:        Task{Record: Record{TaskKey: "ERP-1"}},
			b:        Task{Record: Record{TaskKey: "ERP-1"}, IsEpic: true},
			expected: true,
		},
		{
			name:     "epic not before non-epic",
			a:        Task{Record: Record{TaskKey: "ERP-1"}, IsEpic: true},
			b:        Task{Record: Record{TaskKey: "ERP-1"}},
			expected: false,
		},
		{
			name:     "two keyless tasks are equal",
			a:        Task{Record: Record{Message: "b"}},
			b:        Task{Record: Record{Message: "a"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TaskLess(tt.a, tt.b))
		})
	}
}
