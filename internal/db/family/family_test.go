package family

import (
	"context"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
	"medmate/internal/db"
	dbuser "medmate/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxFamilyRepository
	user user.User
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxFamilyRepository(suite.pool)
}

func (suite *testSuite) SetupTest() {
	u, err := dbuser.NewPgxRepository(suite.pool).Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail("test@test.test"),
		Name:         "John",
		PasswordHash: user.PasswordHash("test"),
		CreatedAt:    NOW,
	})
	if err != nil {
		suite.FailNowf("could not create user", "%v", err)
	}
	suite.user = u
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxFamilyRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreateAndRead() {
	assert := s.Require()
	birthDate := time.Date(1950, 5, 17, 0, 0, 0, 0, time.UTC)

	mother, err := s.repo.Create(context.Background(), family.CreateInput{
		CreatedBy: s.user.ID,
		Name:      "Anna",
		Relation:  "mother",
		Gender:    c.Some(family.GENDER_FEMALE),
		BirthDate: c.Some(birthDate),
		CreatedAt: NOW,
	})
	assert.Nil(err)
	assert.Equal(c.Some(family.GENDER_FEMALE), mother.Gender)
	assert.True(mother.BirthDate.IsPresent)
	assert.True(birthDate.Equal(mother.BirthDate.Value))

	son, err := s.repo.Create(context.Background(), family.CreateInput{
		CreatedBy: s.user.ID,
		Name:      "Tom",
		CreatedAt: NOW,
	})
	assert.Nil(err)
	assert.False(son.Gender.IsPresent)
	assert.False(son.BirthDate.IsPresent)

	members, err := s.repo.Read(context.Background(), family.ReadOptions{CreatedByEquals: c.Some(s.user.ID)})
	assert.Nil(err)
	assert.Equal([]family.ID{mother.ID, son.ID}, []family.ID{members[0].ID, members[1].ID})

	members, err = s.repo.Read(context.Background(), family.ReadOptions{CreatedByEquals: c.Some(s.user.ID + 1)})
	assert.Nil(err)
	assert.Empty(members)
}

func (s *testSuite) TestUpdate() {
	assert := s.Require()
	member, err := s.repo.Create(context.Background(), family.CreateInput{
		CreatedBy: s.user.ID,
		Name:      "Anna",
		Relation:  "mother",
		BirthDate: c.Some(time.Date(1950, 5, 17, 0, 0, 0, 0, time.UTC)),
		CreatedAt: NOW,
	})
	assert.Nil(err)

	updated, err := s.repo.Update(context.Background(), family.UpdateInput{
		ID:                member.ID,
		DoNameUpdate:      true,
		Name:              "Anne",
		DoGenderUpdate:    true,
		Gender:            c.Some(family.GENDER_OTHER),
		DoBirthDateUpdate: true,
	})
	assert.Nil(err)
	assert.Equal("Anne", updated.Name)
	assert.Equal(c.Some(family.GENDER_OTHER), updated.Gender)
	assert.Equal("mother", updated.Relation)
	assert.False(updated.BirthDate.IsPresent)

	unchanged, err := s.repo.Update(context.Background(), family.UpdateInput{ID: member.ID})
	assert.Nil(err)
	assert.Equal(updated, unchanged)

	_, err = s.repo.Update(context.Background(), family.UpdateInput{ID: member.ID + 100, DoNameUpdate: true, Name: "X"})
	assert.ErrorIs(err, family.ErrMemberDoesNotExist)
}

func (s *testSuite) TestDelete() {
	assert := s.Require()
	member, err := s.repo.Create(context.Background(), family.CreateInput{
		CreatedBy: s.user.ID,
		Name:      "Anna",
		CreatedAt: NOW,
	})
	assert.Nil(err)

	assert.Nil(s.repo.Delete(context.Background(), member.ID))
	assert.ErrorIs(s.repo.Delete(context.Background(), member.ID), family.ErrMemberDoesNotExist)
	_, err = s.repo.GetByID(context.Background(), member.ID)
	assert.ErrorIs(err, family.ErrMemberDoesNotExist)
}
