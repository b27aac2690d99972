package collector

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yolodolo42/checkback/internal/feedback"
)

// Attachments above this size are refused; the whole result has to fit in
// one MCP response.
const maxAttachmentBytes = 10 * 1024 * 1024

type focusZone int

const (
	focusFeedback focusZone = iota
	focusChoices
	focusCommand
	focusAttach
)

type tickMsg time.Time

type commandDoneMsg struct {
	command string
	output  string
	err     error
}

// formModel is the whole feedback form state. One instance per
// invocation; nothing is shared between sessions.
type formModel struct {
	req Request

	feedbackInput textarea.Model
	commandInput  textinput.Model
	attachInput   textinput.Model
	noteInput     textinput.Model

	focus       focusZone
	editingNote bool

	cursor      int
	selected    map[int]bool
	annotations map[int]string

	commandLogs string
	images      []feedback.ImageAttachment
	status      string

	// autoRemaining counts down to an automatic recommended submit;
	// any keypress disarms it.
	autoRemaining int
	deadline      time.Time

	autoSubmitted bool
	cancelled     bool
	runningCmd    bool
	width         int
}

func newForm(req Request) formModel {
	ta := textarea.New()
	ta.Placeholder = "Your feedback on the work above..."
	ta.CharLimit = 4000
	ta.SetWidth(76)
	ta.SetHeight(4)
	ta.ShowLineNumbers = false
	ta.Focus()

	cmd := textinput.New()
	cmd.Placeholder = "command to run in the project directory"
	cmd.CharLimit = 500
	cmd.Width = 70

	attach := textinput.New()
	attach.Placeholder = "path to an image file (png, jpg, gif, webp)"
	attach.CharLimit = 500
	attach.Width = 70

	note := textinput.New()
	note.Placeholder = "note for this option"
	note.CharLimit = 500
	note.Width = 60

	m := formModel{
		req:           req,
		feedbackInput: ta,
		commandInput:  cmd,
		attachInput:   attach,
		noteInput:     note,
		selected:      make(map[int]bool),
		annotations:   make(map[int]string),
		width:         80,
	}

	if req.Choices != nil && req.Choices.AutoSubmitSeconds > 0 {
		m.autoRemaining = req.Choices.AutoSubmitSeconds
	}
	if req.Timeout > 0 {
		m.deadline = time.Now().Add(req.Timeout)
	}

	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m formModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tick())
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 4
		if w > 100 {
			w = 100
		}
		if w > 10 {
			m.feedbackInput.SetWidth(w)
			m.commandInput.Width = w - 6
			m.attachInput.Width = w - 6
		}
		return m, nil

	case tickMsg:
		if !m.deadline.IsZero() && time.Now().After(m.deadline) {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.autoRemaining > 0 {
			m.autoRemaining--
			if m.autoRemaining == 0 {
				return m.autoSubmit()
			}
		}
		return m, tick()

	case commandDoneMsg:
		m.runningCmd = false
		m.commandLogs += fmt.Sprintf("$ %s\n%s", msg.command, msg.output)
		if msg.err != nil {
			m.commandLogs += fmt.Sprintf("error: %v\n", msg.err)
		}
		if !strings.HasSuffix(m.commandLogs, "\n") {
			m.commandLogs += "\n"
		}
		return m, nil

	case tea.KeyMsg:
		// Touching the keyboard disarms the auto-submit countdown.
		m.autoRemaining = 0
		return m.updateKey(msg)
	}

	return m, nil
}

func (m formModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.cancelled = true
		return m, tea.Quit
	}

	if m.editingNote {
		return m.updateNoteKey(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyCtrlD:
		return m, tea.Quit
	case tea.KeyTab:
		m.cycleFocus(1)
		return m, m.focusCmd()
	case tea.KeyShiftTab:
		m.cycleFocus(-1)
		return m, m.focusCmd()
	}

	switch m.focus {
	case focusChoices:
		return m.updateChoiceKey(msg)
	case focusCommand:
		if msg.Type == tea.KeyEnter {
			return m.startCommand()
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	case focusAttach:
		if msg.Type == tea.KeyEnter {
			m.attachImage()
			return m, nil
		}
		var cmd tea.Cmd
		m.attachInput, cmd = m.attachInput.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.feedbackInput, cmd = m.feedbackInput.Update(msg)
		return m, cmd
	}
}

func (m formModel) updateChoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.req.Choices.Options

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case "enter":
		if m.req.Choices.SelectionMode == feedback.ModeMulti {
			m.selected[m.cursor] = !m.selected[m.cursor]
		} else {
			m.selected = map[int]bool{m.cursor: true}
		}
	case " ":
		if m.req.Choices.SelectionMode == feedback.ModeMulti {
			m.selected[m.cursor] = !m.selected[m.cursor]
		} else {
			m.selected = map[int]bool{m.cursor: true}
		}
	case "n":
		m.editingNote = true
		m.noteInput.SetValue(m.annotations[m.cursor])
		return m, m.noteInput.Focus()
	}

	return m, nil
}

func (m formModel) updateNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		note := strings.TrimSpace(m.noteInput.Value())
		if note == "" {
			delete(m.annotations, m.cursor)
		} else {
			m.annotations[m.cursor] = note
		}
		m.editingNote = false
		m.noteInput.Blur()
		m.noteInput.Reset()
		return m, nil
	case tea.KeyEsc:
		m.editingNote = false
		m.noteInput.Blur()
		m.noteInput.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// zones lists the focusable sections in display order. The choices zone
// only exists when a payload was supplied.
func (m *formModel) zones() []focusZone {
	if m.req.Choices == nil {
		return []focusZone{focusFeedback, focusCommand, focusAttach}
	}
	return []focusZone{focusFeedback, focusChoices, focusCommand, focusAttach}
}

func (m *formModel) cycleFocus(delta int) {
	zones := m.zones()
	idx := 0
	for i, z := range zones {
		if z == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(zones)) % len(zones)
	m.focus = zones[idx]
}

func (m *formModel) focusCmd() tea.Cmd {
	m.feedbackInput.Blur()
	m.commandInput.Blur()
	m.attachInput.Blur()

	switch m.focus {
	case focusFeedback:
		return m.feedbackInput.Focus()
	case focusCommand:
		return m.commandInput.Focus()
	case focusAttach:
		return m.attachInput.Focus()
	default:
		return nil
	}
}

func (m formModel) startCommand() (tea.Model, tea.Cmd) {
	command := strings.TrimSpace(m.commandInput.Value())
	if command == "" || m.runningCmd {
		return m, nil
	}

	m.runningCmd = true
	m.commandInput.Reset()
	m.status = ""

	dir := m.req.ProjectDir
	return m, func() tea.Msg {
		shell, flag := "sh", "-c"
		if runtime.GOOS == "windows" {
			shell, flag = "cmd", "/C"
		}
		cmd := exec.Command(shell, flag, command)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		return commandDoneMsg{command: command, output: string(out), err: err}
	}
}

func (m *formModel) attachImage() {
	path := strings.TrimSpace(m.attachInput.Value())
	if path == "" {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		m.status = fmt.Sprintf("cannot attach %s: %v", path, err)
		return
	}
	if info.Size() > maxAttachmentBytes {
		m.status = fmt.Sprintf("cannot attach %s: larger than %s", path,
			feedback.FormatSize(maxAttachmentBytes))
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		m.status = fmt.Sprintf("cannot attach %s: %v", path, err)
		return
	}
	if len(raw) == 0 {
		m.status = fmt.Sprintf("cannot attach %s: file is empty", path)
		return
	}

	m.images = append(m.images, feedback.ImageAttachment{
		Name: filepath.Base(path),
		Size: len(raw),
		Data: raw,
	})
	m.attachInput.Reset()
	m.status = ""
}

// autoSubmit fires when the recommendation countdown expires: if the user
// selected nothing, the recommended options are selected on their behalf.
func (m formModel) autoSubmit() (tea.Model, tea.Cmd) {
	if m.req.Choices != nil && len(m.selected) == 0 {
		for i, opt := range m.req.Choices.Options {
			if opt.Recommended {
				m.selected[i] = true
				if m.req.Choices.SelectionMode != feedback.ModeMulti {
					break
				}
			}
		}
	}
	m.autoSubmitted = true
	return m, tea.Quit
}

// result assembles the FeedbackResult after the program has quit. Only
// meaningful when the form was not cancelled.
func (m formModel) result() *feedback.FeedbackResult {
	res := &feedback.FeedbackResult{
		InteractiveFeedback: strings.TrimSpace(m.feedbackInput.Value()),
		CommandLogs:         m.commandLogs,
		Images:              m.images,
	}

	if m.req.Choices != nil {
		selection := &feedback.ChoiceSelection{
			SelectionMode: m.req.Choices.SelectionMode,
			SelectedIDs:   []string{},
			AutoSubmitted: m.autoSubmitted,
		}
		for i, opt := range m.req.Choices.Options {
			if m.selected[i] {
				selection.SelectedIDs = append(selection.SelectedIDs, opt.ID)
				if opt.Recommended {
					selection.RecommendedSelectedIDs = append(selection.RecommendedSelectedIDs, opt.ID)
				}
			}
			if note := m.annotations[i]; note != "" {
				if selection.OptionAnnotations == nil {
					selection.OptionAnnotations = make(map[string]string)
				}
				selection.OptionAnnotations[opt.ID] = note
			}
		}
		res.ChoiceResult = selection
	}

	return res
}
