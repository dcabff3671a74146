package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/stringed/lang"
	"github.com/ardnew/stringed/log"
)

const (
	programPrompt = "➜ "
	ctrlPrompt    = " :"
	inputPrompt   = "? "
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this cruft
  history  List programs entered so far
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type a program and press Enter to run it in a fresh root scope
  When a program reads input, the prompt changes and the next line is its answer
  Press Tab / Shift-Tab to cycle through earlier programs matching the input
  Press Esc to toggle between program and command modes
  Use Up/Down arrows for history navigation within the current mode
  Press Ctrl+C to interrupt a running program
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeProgram inputMode = iota
	modeInput
	modeCtrl
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)
	inputPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	inputStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle    = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("4"))
)

// formatCommand formats a program for display in the transcript.
func formatCommand(input string) string {
	return promptStyle.Render(programPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats a command for display in the transcript.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// formatAnswer formats a prompt and its answer for display in the transcript.
func formatAnswer(prompt, input string) string {
	if prompt == "" {
		prompt = inputPrompt
	}

	return inputPromptStyle.Render(prompt) + inputStyle.Render(input)
}

type model struct {
	ctxFunc      func() context.Context
	println      func(string) tea.Cmd
	input        textinput.Model
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	sess         *session // running program, if any
	prompt       string   // unterminated output shown while reading input
	programText  string
	programCur   int
	ctrlText     string
	ctrlCur      int
}

// Run starts the interactive playground. History is kept in cacheDir.
func Run(
	ctx context.Context,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(programPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		println:    func(s string) tea.Cmd { return tea.Println(s) },
		input:      ti,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeProgram,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(programPrompt) - 2

		return m, nil

	case stepMsg:
		// Results of an interrupted program arrive late and are dropped.
		if m.sess == nil || msg.sess != m.sess {
			return m, nil
		}

		return m.handleStep(msg.res)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Input line.
	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	// Check if we're viewing history
	viewingHistory := m.historyIdx < m.history.Len()

	switch {
	case m.sess != nil && m.mode != modeInput:
		b.WriteString(hintStyle.Render("Running (press Ctrl+C to interrupt)"))
		b.WriteString("\n")

	case viewingHistory:
		pos := m.historyIdx + 1 // 1-based for display
		total := m.history.Len()
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos)),
			total)
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		var hint string

		switch m.mode {
		case modeProgram:
			hint = "Type a program or press Esc for commands"
		case modeInput:
			hint = "The program is reading a line"
		case modeCtrl:
			hint = "Type: " + strings.Join(ctrlCommands, ", ") +
				" (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case len(m.matches) > 0:
		bar := renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		)
		b.WriteString(bar)
		b.WriteString("\n")

	default:
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.sess != nil {
			m.stopSession(ErrInterrupted)

			return m, m.println(hintStyle.Render("interrupted"))
		}

		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		// End of input answers a prompt with an empty line.
		if m.mode == modeInput && m.input.Value() == "" {
			return m.executeInput()
		}

		if m.input.Value() == "" {
			m.stopSession(ErrInterrupted)
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyTab:
		return m.handleTab(1)

	case tea.KeyShiftTab:
		return m.handleTab(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode()
	}

	// For any other key (runes, backspace, delete, arrows, etc.),
	// update input and recompute matches.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// handleTab cycles through the candidates in direction dir (1 or -1).
func (m model) handleTab(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	// Update word boundaries for the replaced text.
	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When keep is false any tab selection is discarded.
func refreshMatches(m *model, keep bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !keep {
		m.suggIdx = -1
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	raw := m.input.Value()

	switch m.mode {
	case modeInput:
		// Input lines are data: no trimming, and empty lines count.
		m.input.SetValue("")
		_, _ = m.history.Write(raw, modeInput)
		m.historyIdx = m.history.Len()

		echo := m.println(formatAnswer(m.prompt, raw))
		next := m.sess.resume(raw)

		m.prompt = ""
		m.setMode(modeProgram)

		return m, tea.Sequence(echo, next)

	case modeCtrl:
		input := strings.TrimSpace(raw)
		if input == "" {
			return m, nil
		}

		m.ctrlText, m.ctrlCur = "", 0
		m.input.SetValue("")
		_, _ = m.history.Write(input, modeCtrl)
		m.historyIdx = m.history.Len()

		m.logger.TraceContext(
			m.ctxFunc(),
			"repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	input := strings.TrimSpace(raw)
	if input == "" || m.sess != nil {
		return m, nil
	}

	m.programText, m.programCur = "", 0
	m.input.SetValue("")
	_, _ = m.history.Write(input, modeProgram)
	m.historyIdx = m.history.Len()
	refreshMatches(&m, false)

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl run",
		slog.String("input", input),
	)

	m.sess = newSession(m.ctxFunc(), input, m.logger)

	return m, tea.Sequence(m.println(formatCommand(input)), m.sess.step())
}

// handleStep reacts to one result of the running program.
func (m model) handleStep(res lang.Result) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl step",
		slog.String("status", res.Status.String()),
	)

	switch res.Status {
	case lang.StatusOutput:
		cmds := m.printLines(m.sess.lines.Insert(res.Value))

		return m, tea.Sequence(append(cmds, m.sess.step())...)

	case lang.StatusInput:
		m.prompt = m.sess.lines.Flush()
		m.setMode(modeInput)

		return m, nil

	case lang.StatusError:
		cmds := m.printLines(m.finish())
		cmds = append(cmds,
			m.println(errorStyle.Render("error: "+res.Err.Error())))

		return m, tea.Sequence(cmds...)

	default:
		return m, tea.Sequence(m.printLines(m.finish())...)
	}
}

// printLines returns commands printing each line of program output.
func (m model) printLines(lines []string) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(lines))

	for _, line := range lines {
		cmds = append(cmds, m.println(resultStyle.Render(line)))
	}

	return cmds
}

// finish ends the running program and returns its unterminated output.
func (m *model) finish() []string {
	var rest []string

	if m.sess.lines.Len() > 0 {
		rest = append(rest, m.sess.lines.Flush())
	}

	m.stopSession(nil)

	return rest
}

// stopSession abandons the running program, if any.
func (m *model) stopSession(cause error) {
	if m.sess == nil {
		return
	}

	m.sess.stop(cause)
	m.sess = nil
	m.prompt = ""

	if m.mode == modeInput {
		m.setMode(modeProgram)
	}
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := m.println(formatCtrlCommand(input))

	cmd := parts[0]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
		slog.Any("args", parts[1:]),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.stopSession(ErrInterrupted)
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, m.println(helpMessage()))

	case "history":
		return m, tea.Sequence(echoCmd, m.println(m.listPrograms()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, m.println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) listPrograms() string {
	lines := m.history.Lines(modeProgram)
	if len(lines) == 0 {
		return hintStyle.Render("  (no programs yet)")
	}

	var b strings.Builder

	for i, line := range lines {
		fmt.Fprintf(&b, "  %s %s\n",
			hintStyle.Render(strconv.Itoa(len(lines)-i)), line)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historyPrev recalls the previous entry of the current mode.
func (m model) historyPrev() (model, tea.Cmd) {
	for i := m.historyIdx - 1; i >= 0; i-- {
		if entry, err := m.history.GetEntry(i); err == nil &&
			entry.Mode == m.mode {
			m.historyIdx = i
			m.input.SetValue(entry.Line)
			m.input.SetCursor(len(entry.Line))
			refreshMatches(&m, false)

			return m, nil
		}
	}

	return m, nil
}

// historyNext recalls the next entry of the current mode, or clears the
// input past the newest one.
func (m model) historyNext() (model, tea.Cmd) {
	for i := m.historyIdx + 1; i < m.history.Len(); i++ {
		if entry, err := m.history.GetEntry(i); err == nil &&
			entry.Mode == m.mode {
			m.historyIdx = i
			m.input.SetValue(entry.Line)
			m.input.SetCursor(len(entry.Line))
			refreshMatches(&m, false)

			return m, nil
		}
	}

	if m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// toggleMode switches between program and control modes, preserving input
// state. Answering a prompt cannot be left this way.
func (m model) toggleMode() (model, tea.Cmd) {
	switch m.mode {
	case modeProgram:
		m.setMode(modeCtrl)
	case modeCtrl:
		m.setMode(modeProgram)
	}

	return m, nil
}

// setMode switches to the specified mode, preserving input state.
func (m *model) setMode(mode inputMode) {
	switch m.mode {
	case modeProgram:
		m.programText, m.programCur = m.input.Value(), m.input.Position()
	case modeCtrl:
		m.ctrlText, m.ctrlCur = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	m.tabActive = false

	switch mode {
	case modeProgram:
		m.input.Prompt = promptStyle.Render(programPrompt)
		m.input.SetValue(m.programText)
		m.input.SetCursor(m.programCur)
	case modeCtrl:
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCur)
	case modeInput:
		prompt := m.prompt
		if prompt == "" {
			prompt = inputPrompt
		}

		m.input.Prompt = inputPromptStyle.Render(prompt)
		m.input.SetValue("")
	}

	m.historyIdx = m.history.Len()
	refreshMatches(m, false)
}
