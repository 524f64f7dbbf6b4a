package event

import "errors"

var (
	ErrInstallationNotFound = errors.New("installation not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrPatchNotFound        = errors.New("patch not found")
)
