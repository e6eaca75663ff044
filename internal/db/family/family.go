package family

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
	"medmate/internal/db"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const memberColumns = `id, created_by, name, relation, gender, birth_date, created_at`

type PgxFamilyRepository struct {
	db db.DBTX
}

func NewPgxFamilyRepository(db db.DBTX) *PgxFamilyRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxFamilyRepository{db: db}
}

func (r *PgxFamilyRepository) Create(ctx context.Context, input family.CreateInput) (m family.Member, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO family_member (created_by, name, relation, gender, birth_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+memberColumns,
		int64(input.CreatedBy),
		input.Name,
		input.Relation,
		encodeGender(input.Gender),
		encodeBirthDate(input.BirthDate),
		input.CreatedAt,
	)
	m, err = scanMember(row)
	if err != nil {
		return m, err
	}
	return m, m.Validate()
}

func (r *PgxFamilyRepository) GetByID(ctx context.Context, id family.ID) (m family.Member, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM family_member WHERE id = $1`, int64(id))
	m, err = scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, family.ErrMemberDoesNotExist
	}
	if err != nil {
		return m, err
	}
	return m, m.Validate()
}

func (r *PgxFamilyRepository) Read(ctx context.Context, options family.ReadOptions) ([]family.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM family_member`
	args := make([]interface{}, 0, 1)
	if options.CreatedByEquals.IsPresent {
		args = append(args, int64(options.CreatedByEquals.Value))
		query += ` WHERE created_by = $1`
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]family.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PgxFamilyRepository) Update(ctx context.Context, input family.UpdateInput) (m family.Member, err error) {
	assignments := make([]string, 0, 4)
	args := []interface{}{int64(input.ID)}
	set := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if input.DoNameUpdate {
		set("name", input.Name)
	}
	if input.DoRelationUpdate {
		set("relation", input.Relation)
	}
	if input.DoGenderUpdate {
		set("gender", encodeGender(input.Gender))
	}
	if input.DoBirthDateUpdate {
		set("birth_date", encodeBirthDate(input.BirthDate))
	}
	if len(assignments) == 0 {
		return r.GetByID(ctx, input.ID)
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE family_member SET `+strings.Join(assignments, ", ")+` WHERE id = $1 RETURNING `+memberColumns,
		args...,
	)
	m, err = scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, family.ErrMemberDoesNotExist
	}
	if err != nil {
		return m, err
	}
	return m, m.Validate()
}

func (r *PgxFamilyRepository) Delete(ctx context.Context, id family.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM family_member WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return family.ErrMemberDoesNotExist
	}
	return nil
}

func encodeGender(gender c.Optional[family.Gender]) pgtype.Text {
	if !gender.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: string(gender.Value), Status: pgtype.Present}
}

func encodeBirthDate(birthDate c.Optional[time.Time]) pgtype.Date {
	if !birthDate.IsPresent {
		return pgtype.Date{Status: pgtype.Null}
	}
	return pgtype.Date{Time: birthDate.Value, Status: pgtype.Present}
}

func scanMember(row pgx.Row) (m family.Member, err error) {
	var (
		id        int64
		createdBy int64
		name      string
		relation  string
		gender    pgtype.Text
		birthDate pgtype.Date
		createdAt time.Time
	)
	if err := row.Scan(&id, &createdBy, &name, &relation, &gender, &birthDate, &createdAt); err != nil {
		return m, err
	}
	return family.Member{
		ID:        family.ID(id),
		CreatedBy: user.ID(createdBy),
		Name:      name,
		Relation:  relation,
		Gender:    c.NewOptional(family.Gender(gender.String), gender.Status == pgtype.Present),
		BirthDate: c.NewOptional(birthDate.Time, birthDate.Status == pgtype.Present),
		CreatedAt: createdAt,
	}, nil
}
