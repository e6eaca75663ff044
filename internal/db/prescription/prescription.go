package prescription

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
	"medmate/internal/core/domain/user"
	"medmate/internal/db"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const prescriptionColumns = `id, created_by, family_member_id, medicine, dosage, duration, doctor, created_at, updated_at`

type PgxPrescriptionRepository struct {
	db db.DBTX
}

func NewPgxPrescriptionRepository(db db.DBTX) *PgxPrescriptionRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxPrescriptionRepository{db: db}
}

func (r *PgxPrescriptionRepository) Create(
	ctx context.Context,
	input prescription.CreateInput,
) (p prescription.Prescription, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO prescription (
			created_by, family_member_id, medicine, dosage, duration, doctor, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING `+prescriptionColumns,
		int64(input.CreatedBy),
		encodeFamilyMemberID(input.FamilyMemberID),
		input.Medicine,
		input.Dosage,
		input.Duration,
		input.Doctor,
		input.CreatedAt,
	)
	p, err = scanPrescription(row)
	if err != nil {
		return p, err
	}
	return p, p.Validate()
}

func (r *PgxPrescriptionRepository) GetByID(ctx context.Context, id prescription.ID) (p prescription.Prescription, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+prescriptionColumns+` FROM prescription WHERE id = $1`, int64(id))
	p, err = scanPrescription(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, prescription.ErrPrescriptionDoesNotExist
	}
	if err != nil {
		return p, err
	}
	return p, p.Validate()
}

func (r *PgxPrescriptionRepository) Read(
	ctx context.Context,
	options prescription.ReadOptions,
) ([]prescription.Prescription, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if options.CreatedByEquals.IsPresent {
		args = append(args, int64(options.CreatedByEquals.Value))
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if options.FamilyMemberIDEquals.IsPresent {
		args = append(args, int64(options.FamilyMemberIDEquals.Value))
		conditions = append(conditions, fmt.Sprintf("family_member_id = $%d", len(args)))
	}
	query := `SELECT ` + prescriptionColumns + ` FROM prescription`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prescriptions := make([]prescription.Prescription, 0)
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

func (r *PgxPrescriptionRepository) Update(
	ctx context.Context,
	input prescription.UpdateInput,
) (p prescription.Prescription, err error) {
	args := []interface{}{int64(input.ID), input.UpdatedAt}
	assignments := []string{"updated_at = $2"}
	set := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if input.DoFamilyMemberIDUpdate {
		set("family_member_id", encodeFamilyMemberID(input.FamilyMemberID))
	}
	if input.DoMedicineUpdate {
		set("medicine", input.Medicine)
	}
	if input.DoDosageUpdate {
		set("dosage", input.Dosage)
	}
	if input.DoDurationUpdate {
		set("duration", input.Duration)
	}
	if input.DoDoctorUpdate {
		set("doctor", input.Doctor)
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE prescription SET `+strings.Join(assignments, ", ")+` WHERE id = $1 RETURNING `+prescriptionColumns,
		args...,
	)
	p, err = scanPrescription(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, prescription.ErrPrescriptionDoesNotExist
	}
	if err != nil {
		return p, err
	}
	return p, p.Validate()
}

func (r *PgxPrescriptionRepository) Delete(ctx context.Context, id prescription.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM prescription WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return prescription.ErrPrescriptionDoesNotExist
	}
	return nil
}

func (r *PgxPrescriptionRepository) DetachFamilyMember(ctx context.Context, id family.ID) (uint, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE prescription SET family_member_id = NULL WHERE family_member_id = $1`,
		int64(id),
	)
	if err != nil {
		return 0, err
	}
	return uint(tag.RowsAffected()), nil
}

func encodeFamilyMemberID(id c.Optional[family.ID]) pgtype.Int8 {
	if !id.IsPresent {
		return pgtype.Int8{Status: pgtype.Null}
	}
	return pgtype.Int8{Int: int64(id.Value), Status: pgtype.Present}
}

func scanPrescription(row pgx.Row) (p prescription.Prescription, err error) {
	var (
		id             int64
		createdBy      int64
		familyMemberID pgtype.Int8
		medicine       string
		dosage         string
		duration       string
		doctor         string
		createdAt      time.Time
		updatedAt      time.Time
	)
	err = row.Scan(
		&id,
		&createdBy,
		&familyMemberID,
		&medicine,
		&dosage,
		&duration,
		&doctor,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return p, err
	}
	return prescription.Prescription{
		ID:             prescription.ID(id),
		CreatedBy:      user.ID(createdBy),
		FamilyMemberID: c.NewOptional(family.ID(familyMemberID.Int), familyMemberID.Status == pgtype.Present),
		Medicine:       medicine,
		Dosage:         dosage,
		Duration:       duration,
		Doctor:         doctor,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}
