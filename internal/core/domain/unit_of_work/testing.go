package uow

import (
	"context"

	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository           *user.FakeUserRepository
	SessionRepository        *user.FakeSessionRepository
	FamilyRepository         *family.FakeRepository
	PrescriptionRepository   *prescription.FakeRepository
	ReminderRepository       *reminder.FakeReminderRepository
	AcknowledgmentRepository *reminder.FakeAcknowledgmentRepository
	WasRollbackCalled        bool
	WasCommitCalled          bool
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Sessions() user.SessionRepository {
	return c.SessionRepository
}

func (c *FakeUnitOfWorkContext) FamilyMembers() family.Repository {
	return c.FamilyRepository
}

func (c *FakeUnitOfWorkContext) Prescriptions() prescription.Repository {
	return c.PrescriptionRepository
}

func (c *FakeUnitOfWorkContext) Reminders() reminder.ReminderRepository {
	return c.ReminderRepository
}

func (c *FakeUnitOfWorkContext) Acknowledgments() reminder.AcknowledgmentRepository {
	return c.AcknowledgmentRepository
}

type FakeUnitOfWork struct {
	Context *FakeUnitOfWorkContext
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		Context: &FakeUnitOfWorkContext{
			UserRepository:           userRepository,
			SessionRepository:        user.NewFakeSessionRepository(userRepository),
			FamilyRepository:         family.NewFakeRepository(),
			PrescriptionRepository:   prescription.NewFakeRepository(),
			ReminderRepository:       reminder.NewFakeReminderRepository(),
			AcknowledgmentRepository: reminder.NewFakeAcknowledgmentRepository(),
		},
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	return u.Context, nil
}
