package exportcalendar

import (
	"bytes"
	"context"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID user.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Calendar []byte
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	exporter           reminder.CalendarExporter
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	exporter reminder.CalendarExporter,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if exporter == nil {
		panic(e.NewNilArgumentError("exporter"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		exporter:           exporter,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	reminders, err := s.reminderRepository.Read(ctx, reminder.ReadOptions{
		CreatedByEquals: c.NewOptional(input.UserID, true),
		IsActiveEquals:  c.NewOptional(true, true),
		OrderBy:         reminder.OrderByIDAsc,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	var buffer bytes.Buffer
	if err := s.exporter.Export(&buffer, reminders, s.now()); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Calendar successfully exported.",
		logging.Entry("userID", input.UserID),
		logging.Entry("reminders", len(reminders)),
	)
	return Result{Calendar: buffer.Bytes()}, nil
}
