package main

import (
	"context"
	"fmt"
	"os"

	"medmate/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	REMINDER_SUBJECT = "Time to take {{medication}}"
	REMINDER_HTML    = `<p>Hi {{name}},</p>
<p>It is {{at}}: time to take <b>{{medication}}</b>{{#if familyMember}} for {{familyMember}}{{/if}}.</p>
{{#if note}}<p>{{note}}</p>{{/if}}
<p>MedMate</p>`
	REMINDER_TEXT = `Hi {{name}},

It is {{at}}: time to take {{medication}}{{#if familyMember}} for {{familyMember}}{{/if}}.
{{#if note}}{{note}}{{/if}}

MedMate`
)

const USAGE = `usage:
  aws create-reminder-template
  aws delete-reminder-template
  aws send-reminder-test <to>`

// Manages the SES template used for reminder e-mails.
func main() {
	if len(os.Args) < 2 {
		fail(USAGE)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	svc := ses.NewFromConfig(loadAwsConfig(cfg))
	name := cfg.AwsEmailReminderTemplate

	switch os.Args[1] {
	case "create-reminder-template":
		createEmailTemplate(svc, name, REMINDER_SUBJECT, REMINDER_HTML, REMINDER_TEXT)
	case "delete-reminder-template":
		deleteEmailTemplate(svc, name)
	case "send-reminder-test":
		if len(os.Args) != 3 {
			fail(USAGE)
		}
		sendEmailTemplate(
			svc,
			cfg.AwsEmailSender,
			os.Args[2],
			name,
			`{"name": "Test", "medication": "Aspirin", "note": "after breakfast", "at": "Mon, 04 Mar 2024 08:00 CET"}`,
		)
	default:
		fail(USAGE)
	}
}

func fail(err any) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func loadAwsConfig(cfg *config.Config) aws.Config {
	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		fail(err)
	}
	return awsCfg
}

func createEmailTemplate(svc *ses.Client, name string, subject string, htmlPart string, textPart string) {
	result, err := svc.CreateTemplate(context.Background(), &ses.CreateTemplateInput{
		Template: &types.Template{
			SubjectPart:  &subject,
			HtmlPart:     &htmlPart,
			TextPart:     &textPart,
			TemplateName: &name,
		},
	})
	if err != nil {
		fail(err)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}

func deleteEmailTemplate(svc *ses.Client, name string) {
	result, err := svc.DeleteTemplate(
		context.Background(),
		&ses.DeleteTemplateInput{
			TemplateName: &name,
		},
	)
	if err != nil {
		fail(err)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}

func sendEmailTemplate(svc *ses.Client, sender string, to string, name string, args string) {
	result, err := svc.SendTemplatedEmail(
		context.Background(),
		&ses.SendTemplatedEmailInput{
			Source: aws.String(sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{to},
			},
			Template:     &name,
			TemplateData: &args,
		},
	)
	if err != nil {
		fail(err)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}
