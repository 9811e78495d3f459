package campaign

import "errors"

// Sentinel errors for the campaign service layer.
var (
	ErrNotFound      = errors.New("campaign not found")
	ErrNoTemplate    = errors.New("campaign template not found")
	ErrNoTargetGroup = errors.New("campaign target group not found")
	ErrEmptyGroup    = errors.New("target group has no users")
)
