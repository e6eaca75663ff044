package reminder

import (
	"context"
	"time"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/db"

	"github.com/jackc/pgx/v4"
)

const ACKNOWLEDGMENT_CONSTRAINT_NAME = "acknowledgment_reminder_occurrence_idx"

const acknowledgmentColumns = `id, reminder_id, occurrence_at, acknowledged_at`

type PgxAcknowledgmentRepository struct {
	db db.DBTX
}

func NewPgxAcknowledgmentRepository(db db.DBTX) *PgxAcknowledgmentRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxAcknowledgmentRepository{db: db}
}

func (r *PgxAcknowledgmentRepository) Create(
	ctx context.Context,
	input reminder.CreateAcknowledgmentInput,
) (ack reminder.Acknowledgment, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO acknowledgment (reminder_id, occurrence_at, acknowledged_at)
		VALUES ($1, $2, $3)
		RETURNING `+acknowledgmentColumns,
		int64(input.ReminderID),
		input.OccurrenceAt,
		input.AcknowledgedAt,
	)
	ack, err = scanAcknowledgment(row)
	if db.IsUniqueViolation(err, ACKNOWLEDGMENT_CONSTRAINT_NAME) {
		return ack, reminder.ErrAlreadyAcknowledged
	}
	return ack, err
}

func (r *PgxAcknowledgmentRepository) Read(
	ctx context.Context,
	options reminder.AcknowledgmentReadOptions,
) ([]reminder.Acknowledgment, error) {
	acks := make([]reminder.Acknowledgment, 0)
	if len(options.ReminderIDIn) == 0 {
		return acks, nil
	}
	ids := make([]int64, len(options.ReminderIDIn))
	for ix, id := range options.ReminderIDIn {
		ids[ix] = int64(id)
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+acknowledgmentColumns+` FROM acknowledgment
		WHERE reminder_id = ANY($1) AND occurrence_at >= $2 AND occurrence_at <= $3
		ORDER BY occurrence_at, reminder_id`,
		ids,
		options.OccurrenceAtFrom,
		options.OccurrenceAtTo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		ack, err := scanAcknowledgment(rows)
		if err != nil {
			return nil, err
		}
		acks = append(acks, ack)
	}
	return acks, rows.Err()
}

func scanAcknowledgment(row pgx.Row) (ack reminder.Acknowledgment, err error) {
	var (
		id             int64
		reminderID     int64
		occurrenceAt   time.Time
		acknowledgedAt time.Time
	)
	if err := row.Scan(&id, &reminderID, &occurrenceAt, &acknowledgedAt); err != nil {
		return ack, err
	}
	return reminder.Acknowledgment{
		ID:             id,
		ReminderID:     reminder.ID(reminderID),
		OccurrenceAt:   occurrenceAt,
		AcknowledgedAt: acknowledgedAt,
	}, nil
}
