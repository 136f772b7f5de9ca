package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bjulian5/releasebot/internal/model"
)

// NewTaskTable creates a bordered table with the changelog styling defaults
func NewTaskTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		BorderColumn(true).
		StyleFunc(taskTableStyleFunc)
}

func taskTableStyleFunc(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return TableHeaderStyle
	}
	return TableCellStyle
}

// RenderTaskTable renders one row per standalone task and per epic sub-task.
// Standalone tasks that also belong to an epic are listed once, under the epic.
func RenderTaskTable(tasks []model.Task, epicKeys map[string]bool) string {
	width := GetTerminalWidth()
	t := NewTaskTable().Headers("KEY", "TITLE", "AUTHOR", "PULL REQUESTS", "EPIC")

	for _, task := range tasks {
		if task.IsEpic || (task.HasKey() && epicKeys[task.TaskKey]) {
			continue
		}
		t.Row(taskRow(task.Record, "", width)...)
	}
	for _, task := range tasks {
		if !task.IsEpic {
			continue
		}
		for _, sub := range task.Tasks {
			t.Row(taskRow(sub, task.TaskKey, width)...)
		}
	}

	return t.String()
}

func taskRow(r model.Record, epic string, width int) []string {
	key := r.TaskKey
	if key == "" {
		key = "-"
	}
	author := ""
	if r.Author != "" {
		author = "@" + r.Author
	}
	return []string{key, Truncate(firstLine(r.Message), width/3), author, formatNumbers(r.Numbers), epic}
}
