package registry

import "errors"

var (
	ErrActorNotFound = errors.New("no live actor registered for project")
)
