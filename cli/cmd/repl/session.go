package repl

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/stringed/lang"
	"github.com/ardnew/stringed/log"
)

// session is a program running in the playground. Its machine is only
// touched by the command currently in flight.
type session struct {
	machine *lang.Machine
	lines   lang.LineQueue
	cancel  context.CancelCauseFunc
}

func newSession(ctx context.Context, source string, logger log.Logger) *session {
	ctx, cancel := context.WithCancelCause(ctx)

	return &session{
		machine: lang.Start(source, lang.WithContext(ctx), lang.WithLogger(logger)),
		cancel:  cancel,
	}
}

// stepMsg carries the result of advancing a session.
type stepMsg struct {
	sess *session
	res  lang.Result
}

// step advances the machine to its next result.
func (s *session) step() tea.Cmd {
	return func() tea.Msg { return stepMsg{sess: s, res: s.machine.Step()} }
}

// resume answers the machine's pending prompt with input.
func (s *session) resume(input string) tea.Cmd {
	return func() tea.Msg { return stepMsg{sess: s, res: s.machine.Resume(input)} }
}

// stop abandons the program. A step in flight observes the cancellation
// within a bounded number of operations.
func (s *session) stop(cause error) { s.cancel(cause) }
