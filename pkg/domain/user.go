package domain

import "github.com/google/uuid"

// UserID identifies an authenticated API caller, taken from the JWT subject.
type UserID uuid.UUID

func (id UserID) String() string { return uuid.UUID(id).String() }
