package listuserreminders

import (
	"context"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID   = user.ID(1)
	MEMBER_ID = family.ID(7)
)

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	Repository *reminder.FakeReminderRepository
	Service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Repository = reminder.NewFakeReminderRepository()
	suite.Service = New(suite.Logger, suite.Repository)

	anchor := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	create := func(userID user.ID, memberID c.Optional[family.ID], dayOffset int, active bool) {
		schedule, err := reminder.NewSchedule(reminder.ScheduleParams{
			AnchorAt:   anchor.AddDate(0, 0, dayOffset),
			Recurrence: reminder.RecurrenceInput{Type: "daily"},
		})
		suite.Require().Nil(err)
		_, err = suite.Repository.Create(context.Background(), reminder.CreateInput{
			CreatedBy:      userID,
			FamilyMemberID: memberID,
			Schedule:       schedule.SetActive(active),
		})
		suite.Require().Nil(err)
	}
	create(USER_ID, c.Optional[family.ID]{}, 3, true)
	create(USER_ID, c.NewOptional(MEMBER_ID, true), 1, true)
	create(USER_ID, c.NewOptional(MEMBER_ID, true), 2, false)
	create(USER_ID+1, c.Optional[family.ID]{}, 0, true)
}

func TestListUserRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestFilters() {
	cases := []struct {
		id          string
		input       Input
		expectedIDs []reminder.ID
		totalCount  uint
	}{
		{id: "all", input: Input{}, expectedIDs: []reminder.ID{1, 2, 3}, totalCount: 3},
		{id: "active", input: Input{IsActiveEquals: c.NewOptional(true, true)}, expectedIDs: []reminder.ID{1, 2}, totalCount: 2},
		{id: "inactive", input: Input{IsActiveEquals: c.NewOptional(false, true)}, expectedIDs: []reminder.ID{3}, totalCount: 1},
		{
			id:          "family-member",
			input:       Input{FamilyMemberIDEquals: c.NewOptional(MEMBER_ID, true)},
			expectedIDs: []reminder.ID{2, 3},
			totalCount:  2,
		},
		{
			id:          "order-by-anchor",
			input:       Input{OrderBy: reminder.OrderByAnchorAtAsc},
			expectedIDs: []reminder.ID{2, 3, 1},
			totalCount:  3,
		},
		{
			id:          "limit-offset",
			input:       Input{OrderBy: reminder.OrderByIDDesc, Limit: c.NewOptional[uint](1, true), Offset: 1},
			expectedIDs: []reminder.ID{2},
			totalCount:  3,
		},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			input := testcase.input
			input.UserID = USER_ID
			result, err := s.Service.Run(context.Background(), input)

			assert := s.Require()
			assert.Nil(err)
			ids := make([]reminder.ID, 0, len(result.Reminders))
			for _, rem := range result.Reminders {
				ids = append(ids, rem.ID)
			}
			assert.Equal(testcase.expectedIDs, ids)
			assert.Equal(testcase.totalCount, result.TotalCount)
		})
	}
}
