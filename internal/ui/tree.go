package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bjulian5/releasebot/internal/model"
)

// RenderTaskTree renders the collected task model as a tree
// Example output:
//
//	Changelog for #42
//	├─ ERP-1 @alice #7, #9
//	├─ Support: fix typo @bob #8
//	╰─ ◆ epic ERP-5 #10
//	   ├─ ERP-2 @carol #11
//	   ╰─ ERP-3 @carol #11
func RenderTaskTree(title string, tasks []model.Task, epicKeys map[string]bool) string {
	t := tree.Root(TreeRootStyle.Render(title))
	width := GetTerminalWidth()

	if len(tasks) == 0 {
		t.Child(Dim("No tasks found"))
	}

	for _, task := range tasks {
		if !task.IsEpic {
			label := formatRecordForTree(task.Record, width)
			if task.HasKey() && epicKeys[task.TaskKey] {
				label += " " + Dim("(in epic)")
			}
			t.Child(label)
			continue
		}

		epicNode := tree.Root(EpicStyle.Render("◆ epic "+task.TaskKey) + " " + Dim(formatNumbers(task.Numbers)))
		for _, sub := range task.Tasks {
			epicNode.Child(formatRecordForTree(sub, width))
		}
		epicNode.Enumerator(getRoundedEnumerator()).
			EnumeratorStyle(TreeEnumeratorStyle).
			Indenter(renderTreeIndenter())
		t.Child(epicNode)
	}

	t.Enumerator(getRoundedEnumerator()).
		EnumeratorStyle(TreeEnumeratorStyle).
		Indenter(renderTreeIndenter())

	return t.String()
}

// formatRecordForTree formats a single record: key or message, author, PR numbers
func formatRecordForTree(r model.Record, width int) string {
	var label string
	if r.HasKey() {
		label = TaskKeyStyle.Render(r.TaskKey)
	} else {
		label = UntracedStyle.Render(Truncate(firstLine(r.Message), width/2))
	}
	if r.Author != "" {
		label += " @" + r.Author
	}
	return label + " " + Dim(formatNumbers(r.Numbers))
}

func formatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("#%d", n)
	}
	return strings.Join(parts, ", ")
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

// getRoundedEnumerator returns a custom rounded enumerator for trees
func getRoundedEnumerator() tree.Enumerator {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}

		if i == children.Length()-1 {
			return "╰─ "
		}
		return "├─ "
	}
}

// renderTreeIndenter returns an indenter function for trees
func renderTreeIndenter() tree.Indenter {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}

		if i == children.Length()-1 {
			return "   " // No vertical line after last child
		}
		return "│  "
	}
}
