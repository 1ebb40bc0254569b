package domain

import "errors"

var (
	ErrNotFound           = errors.New("change record not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPreconditionFailed = errors.New("record status does not allow this operation")
	ErrNotRollbackable    = errors.New("record is not rollbackable")
	ErrPolicyDenied       = errors.New("denied by automation policy")
	ErrExternalMutation   = errors.New("store platform mutation failed")
	ErrInvalidPayload     = errors.New("payload does not match action type")
	ErrSettingsNotFound   = errors.New("automation settings not found")
)
