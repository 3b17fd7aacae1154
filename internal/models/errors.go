package models

import "errors"

var (
	// ErrProjectNotFound covers both an absent record and a record owned by
	// a different user; callers cannot distinguish the two.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectAlreadyUnlocked is returned when the conditional unlock
	// update finds the record no longer in the locked state.
	ErrProjectAlreadyUnlocked = errors.New("project already unlocked")
)
