package email

import (
	"context"
	"encoding/json"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"golang.org/x/time/rate"
)

const OCCURRENCE_TIME_LAYOUT = "Mon, 02 Jan 2006 15:04 MST"

type sesClient interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type EmailSender struct {
	ses     sesClient
	limiter *rate.Limiter
	// This address must be verified with Amazon SES.
	sender           string
	reminderTemplate string
	userRepository   user.UserRepository
	familyRepository family.Repository
}

func NewEmailSender(
	awsConfig aws.Config,
	maxSendRate float64,
	sender string,
	reminderTemplate string,
	userRepository user.UserRepository,
	familyRepository family.Repository,
) *EmailSender {
	return newEmailSender(
		ses.NewFromConfig(awsConfig),
		maxSendRate,
		sender,
		reminderTemplate,
		userRepository,
		familyRepository,
	)
}

func newEmailSender(
	client sesClient,
	maxSendRate float64,
	sender string,
	reminderTemplate string,
	userRepository user.UserRepository,
	familyRepository family.Repository,
) *EmailSender {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if familyRepository == nil {
		panic(e.NewNilArgumentError("familyRepository"))
	}
	return &EmailSender{
		ses:              client,
		limiter:          rate.NewLimiter(rate.Limit(maxSendRate), 1),
		sender:           sender,
		reminderTemplate: reminderTemplate,
		userRepository:   userRepository,
		familyRepository: familyRepository,
	}
}

func (s *EmailSender) NotifyOccurrence(ctx context.Context, occurrence reminder.Occurrence) error {
	u, err := s.userRepository.GetByID(ctx, occurrence.CreatedBy)
	if err != nil {
		return err
	}

	params := reminderTemplateParams{
		Name:       u.Name,
		Medication: occurrence.Medication,
		Note:       occurrence.Note.Value,
		At:         occurrence.At.Format(OCCURRENCE_TIME_LAYOUT),
	}
	if occurrence.FamilyMemberID.IsPresent {
		member, err := s.familyRepository.GetByID(ctx, occurrence.FamilyMemberID.Value)
		if err != nil {
			return err
		}
		params.FamilyMember = member.Name
	}

	templateParamsBytes, err := json.Marshal(params)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{string(u.Email)},
			},
			Template:     &s.reminderTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type reminderTemplateParams struct {
	Name         string `json:"name"`
	Medication   string `json:"medication"`
	Note         string `json:"note,omitempty"`
	FamilyMember string `json:"familyMember,omitempty"`
	At           string `json:"at"`
}

// Disabled is used when e-mail delivery is switched off.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) NotifyOccurrence(ctx context.Context, occurrence reminder.Occurrence) error {
	return nil
}
