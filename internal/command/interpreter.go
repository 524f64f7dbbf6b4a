package command

import (
	"context"
	"strings"

	"mergebot/internal/model"
	pkgLog "mergebot/pkg/log"
)

// Interpreter receives command requests extracted from comments and
// reviews. Comments that do not address the bot are dropped here rather
// than in the dispatcher, so the extraction path stays uniform.
type Interpreter struct {
	trigger string // leading token that addresses the bot, e.g. "bors"
	l       pkgLog.Logger
}

// New creates a command interpreter listening for the given trigger word.
func New(trigger string, l pkgLog.Logger) *Interpreter {
	return &Interpreter{trigger: trigger, l: l}
}

// Run handles one command request.
func (i *Interpreter) Run(ctx context.Context, cmd model.Command) error {
	if !addressed(cmd.Body, i.trigger) {
		return nil
	}

	// TODO: parse the command verb and forward to the project's batch or
	// attempt actor once those state machines are wired in.
	i.l.Infof(ctx, "command: %s from %s on project %d PR %d", cmd.ID, cmd.Commenter.Login, cmd.ProjectID, cmd.PrNumber)
	return nil
}

// addressed reports whether any line of the comment starts with the
// trigger word followed by a verb.
func addressed(body, trigger string) bool {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), trigger+" ") {
			return true
		}
	}
	return false
}
