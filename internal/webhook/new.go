package webhook

import (
	"mergebot/internal/event"
	pkgLog "mergebot/pkg/log"
)

type Handler struct {
	l        pkgLog.Logger
	uc       event.UseCase
	security *SecurityValidator
	parser   *GitHubEventParser
}

func NewHandler(l pkgLog.Logger, uc event.UseCase, securityConfig SecurityConfig) *Handler {
	return &Handler{
		l:        l,
		uc:       uc,
		security: NewSecurityValidator(securityConfig),
		parser:   NewGitHubParser(),
	}
}
