package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/db"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const reminderColumns = `id, created_by, family_member_id, prescription_id, medication, anchor_at, time_zone, recurrence, note, is_active, created_at, updated_at`

type PgxReminderRepository struct {
	db db.DBTX
}

func NewPgxReminderRepository(db db.DBTX) *PgxReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxReminderRepository{db: db}
}

func (r *PgxReminderRepository) Create(ctx context.Context, input reminder.CreateInput) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reminder (
			created_by, family_member_id, prescription_id, medication, anchor_at, time_zone,
			recurrence, note, is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING `+reminderColumns,
		int64(input.CreatedBy),
		encodeFamilyMemberID(input.FamilyMemberID),
		encodePrescriptionID(input.PrescriptionID),
		input.Medication,
		input.Schedule.AnchorAt,
		reminder.EncodeZone(input.Schedule.AnchorAt),
		input.Schedule.Recurrence.String(),
		encodeNote(input.Schedule.Note),
		input.Schedule.IsActive,
		input.CreatedAt,
	)
	rem, err = scanReminder(row)
	if err != nil {
		return rem, err
	}
	return rem, rem.Validate()
}

// Lock works only within a DB transaction.
func (r *PgxReminderRepository) Lock(ctx context.Context, id reminder.ID) error {
	_, err := r.db.Exec(ctx, `SELECT id FROM reminder WHERE id = $1 FOR UPDATE`, int64(id))
	return err
}

func (r *PgxReminderRepository) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+reminderColumns+` FROM reminder WHERE id = $1`, int64(id))
	rem, err = scanReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	if err != nil {
		return rem, err
	}
	return rem, rem.Validate()
}

func (r *PgxReminderRepository) Read(ctx context.Context, options reminder.ReadOptions) ([]reminder.Reminder, error) {
	where, args := buildFilter(options)
	query := `SELECT ` + reminderColumns + ` FROM reminder` + where + orderBy(options.OrderBy)
	if options.Limit.IsPresent {
		args = append(args, int64(options.Limit.Value))
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if options.Offset > 0 {
		args = append(args, int64(options.Offset))
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		if err := rem.Validate(); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) Count(ctx context.Context, options reminder.ReadOptions) (uint, error) {
	where, args := buildFilter(options)
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM reminder`+where, args...).Scan(&count); err != nil {
		return 0, err
	}
	return uint(count), nil
}

func (r *PgxReminderRepository) Update(ctx context.Context, input reminder.UpdateInput) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE reminder SET
			medication = $2,
			anchor_at = $3,
			time_zone = $4,
			recurrence = $5,
			note = $6,
			is_active = $7,
			updated_at = $8,
			prescription_id = CASE WHEN $9::boolean THEN $10::bigint ELSE prescription_id END
		WHERE id = $1
		RETURNING `+reminderColumns,
		int64(input.ID),
		input.Medication,
		input.Schedule.AnchorAt,
		reminder.EncodeZone(input.Schedule.AnchorAt),
		input.Schedule.Recurrence.String(),
		encodeNote(input.Schedule.Note),
		input.Schedule.IsActive,
		input.UpdatedAt,
		input.DoPrescriptionIDUpdate,
		encodePrescriptionID(input.PrescriptionID),
	)
	rem, err = scanReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	if err != nil {
		return rem, err
	}
	return rem, rem.Validate()
}

func (r *PgxReminderRepository) Delete(ctx context.Context, id reminder.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reminder WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func (r *PgxReminderRepository) DetachFamilyMember(ctx context.Context, id family.ID) (uint, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE reminder SET family_member_id = NULL WHERE family_member_id = $1`,
		int64(id),
	)
	if err != nil {
		return 0, err
	}
	return uint(tag.RowsAffected()), nil
}

func buildFilter(options reminder.ReadOptions) (string, []interface{}) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)
	add := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}
	if options.CreatedByEquals.IsPresent {
		add("created_by = $%d", int64(options.CreatedByEquals.Value))
	}
	if options.FamilyMemberIDEquals.IsPresent {
		add("family_member_id = $%d", int64(options.FamilyMemberIDEquals.Value))
	}
	if options.IsActiveEquals.IsPresent {
		add("is_active = $%d", options.IsActiveEquals.Value)
	}
	if options.AnchorAtNotAfter.IsPresent {
		add("anchor_at <= $%d", options.AnchorAtNotAfter.Value)
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func orderBy(order reminder.OrderBy) string {
	switch order {
	case reminder.OrderByIDDesc:
		return " ORDER BY id DESC"
	case reminder.OrderByAnchorAtAsc:
		return " ORDER BY anchor_at ASC, id ASC"
	case reminder.OrderByAnchorAtDesc:
		return " ORDER BY anchor_at DESC, id DESC"
	default:
		return " ORDER BY id ASC"
	}
}

func encodeFamilyMemberID(id c.Optional[family.ID]) pgtype.Int8 {
	if !id.IsPresent {
		return pgtype.Int8{Status: pgtype.Null}
	}
	return pgtype.Int8{Int: int64(id.Value), Status: pgtype.Present}
}

func encodePrescriptionID(id c.Optional[prescription.ID]) pgtype.Int8 {
	if !id.IsPresent {
		return pgtype.Int8{Status: pgtype.Null}
	}
	return pgtype.Int8{Int: int64(id.Value), Status: pgtype.Present}
}

func encodeNote(note c.Optional[string]) pgtype.Text {
	if !note.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: note.Value, Status: pgtype.Present}
}

func scanReminder(row pgx.Row) (rem reminder.Reminder, err error) {
	var (
		id             int64
		createdBy      int64
		familyMemberID pgtype.Int8
		prescriptionID pgtype.Int8
		medication     string
		anchorAt       time.Time
		timeZone       string
		recurrence     string
		note           pgtype.Text
		isActive       bool
		createdAt      time.Time
		updatedAt      time.Time
	)
	err = row.Scan(
		&id,
		&createdBy,
		&familyMemberID,
		&prescriptionID,
		&medication,
		&anchorAt,
		&timeZone,
		&recurrence,
		&note,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return rem, err
	}

	anchor, err := reminder.InZone(anchorAt, timeZone)
	if err != nil {
		return rem, e.NewInvalidStateErrorf("reminder %d has invalid time zone: %v", id, err)
	}
	rec, err := reminder.ParseRecurrence(recurrence)
	if err != nil {
		return rem, e.NewInvalidStateErrorf("reminder %d has invalid recurrence: %v", id, err)
	}

	return reminder.Reminder{
		ID:             reminder.ID(id),
		CreatedBy:      user.ID(createdBy),
		FamilyMemberID: c.NewOptional(family.ID(familyMemberID.Int), familyMemberID.Status == pgtype.Present),
		PrescriptionID: c.NewOptional(prescription.ID(prescriptionID.Int), prescriptionID.Status == pgtype.Present),
		Medication:     medication,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		Schedule: reminder.Schedule{
			AnchorAt:   anchor,
			Recurrence: rec,
			Note:       c.NewOptional(note.String, note.Status == pgtype.Present),
			IsActive:   isActive,
		},
	}, nil
}
