package collector

import (
	"fmt"
	"strings"

	"github.com/yolodolo42/checkback/internal/feedback"
)

func (m formModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Feedback requested"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("project: " + m.req.ProjectDir))
	b.WriteString("\n\n")

	b.WriteString(summaryStyle.Render(m.req.Summary))
	b.WriteString("\n\n")

	b.WriteString(m.renderSection(focusFeedback, "Feedback"))
	b.WriteString(m.feedbackInput.View())
	b.WriteString("\n\n")

	if m.req.Choices != nil {
		b.WriteString(m.renderChoices())
	}

	b.WriteString(m.renderSection(focusCommand, "Run a command"))
	b.WriteString(m.commandInput.View())
	if m.runningCmd {
		b.WriteString(dimStyle.Render("  running..."))
	}
	b.WriteString("\n")
	if m.commandLogs != "" {
		b.WriteString(dimStyle.Render(tailLines(m.commandLogs, 8)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderSection(focusAttach, "Attach an image"))
	b.WriteString(m.attachInput.View())
	b.WriteString("\n")
	for i, img := range m.images {
		b.WriteString(selectedStyle.Render(fmt.Sprintf("  %s %d. %s (%s)",
			symbolCheck, i+1, img.Name, feedback.FormatSize(img.Size))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.autoRemaining > 0 {
		b.WriteString(countdownStyle.Render(fmt.Sprintf(
			"Auto-submitting the recommended option in %ds (press any key to cancel)", m.autoRemaining)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab switch section · ctrl+d submit · esc cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m formModel) renderSection(zone focusZone, label string) string {
	if m.focus == zone {
		return sectionStyle.Render(symbolArrow+" "+label) + "\n"
	}
	return dimStyle.Render("  "+label) + "\n"
}

func (m formModel) renderChoices() string {
	var b strings.Builder

	label := "Choices (single select)"
	if m.req.Choices.SelectionMode == feedback.ModeMulti {
		label = "Choices (multi select)"
	}
	b.WriteString(m.renderSection(focusChoices, label))

	for i, opt := range m.req.Choices.Options {
		isCursor := m.focus == focusChoices && i == m.cursor

		if isCursor {
			b.WriteString(cursorStyle.Render(symbolArrow) + " ")
		} else {
			b.WriteString("  ")
		}

		marker := "[ ]"
		if m.selected[i] {
			marker = "[" + symbolCheck + "]"
		}
		if m.selected[i] {
			b.WriteString(selectedStyle.Render(marker) + " ")
		} else {
			b.WriteString(dimStyle.Render(marker) + " ")
		}

		line := opt.ID
		if opt.Description != "" && opt.Description != opt.ID {
			line += " - " + opt.Description
		}
		if isCursor {
			b.WriteString(optionActiveStyle.Render(line))
		} else {
			b.WriteString(optionStyle.Render(line))
		}
		if opt.Recommended {
			b.WriteString(" " + recommendedStyle.Render(symbolDot+" recommended"))
		}
		if note := m.annotations[i]; note != "" {
			b.WriteString(dimStyle.Render("  note: " + note))
		}
		b.WriteString("\n")
	}

	if m.editingNote {
		b.WriteString("  " + m.noteInput.View())
		b.WriteString("\n")
	}

	if m.focus == focusChoices {
		b.WriteString(helpStyle.Render("  enter/space select · n add note"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

// tailLines keeps the last n lines of s for display.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
