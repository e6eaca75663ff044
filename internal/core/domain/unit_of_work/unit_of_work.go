package uow

import (
	"context"

	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Sessions() user.SessionRepository
	FamilyMembers() family.Repository
	Prescriptions() prescription.Repository
	Reminders() reminder.ReminderRepository
	Acknowledgments() reminder.AcknowledgmentRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
