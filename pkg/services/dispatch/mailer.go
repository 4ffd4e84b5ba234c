// Package dispatch sends the rendered report and persists the execution
// marker. Send failures are fatal for the run; marker persistence is
// best-effort observability.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// SendFailure categorizes an email send error for the caller's retry and
// alerting decisions.
type SendFailure string

const (
	FailureInvalidRecipient SendFailure = "invalid-recipient"
	FailureQuotaExceeded    SendFailure = "quota-exceeded"
	FailureAuthorization    SendFailure = "authorization"
	FailureTransient        SendFailure = "transient"
)

// SendError wraps an SES failure with its category.
type SendError struct {
	Failure SendFailure
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("email send failed (%s): %v", e.Failure, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

type SendEmailAPI interface {
	SendEmail(
		ctx context.Context,
		params *ses.SendEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendEmailOutput, error)
}

// Message is one outgoing report email.
type Message struct {
	Sender     string
	Recipients []string
	Subject    string
	HTMLBody   string
	TextBody   string
}

type Mailer struct {
	client SendEmailAPI
}

// NewMailer builds a mailer pinned to the configured SES region, which may
// differ from the region the rest of the run talks to.
func NewMailer(cfg aws.Config, region string) *Mailer {
	return &Mailer{
		client: ses.NewFromConfig(cfg, func(o *ses.Options) {
			o.Region = region
		}),
	}
}

func NewMailerWithClient(client SendEmailAPI) *Mailer {
	return &Mailer{client: client}
}

// Send delivers one email per recipient, as the deployed job did, so a
// single rejected address does not block the remaining recipients. The
// first failure is returned after the loop completes.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	logger := zerolog.Ctx(ctx)

	var firstErr error
	for _, recipient := range msg.Recipients {
		input := &ses.SendEmailInput{
			Source: aws.String(msg.Sender),
			Destination: &types.Destination{
				ToAddresses: []string{recipient},
			},
			Message: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(msg.HTMLBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(msg.TextBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		}

		resp, err := m.client.SendEmail(ctx, input)
		if err != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("failed to send report email")
			if firstErr == nil {
				firstErr = classifySendError(err)
			}
			continue
		}
		logger.Info().
			Str("recipient", recipient).
			Str("message_id", aws.ToString(resp.MessageId)).
			Msg("report email sent")
	}
	return firstErr
}

func classifySendError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return &SendError{Failure: FailureTransient, Err: err}
	}

	switch apiErr.ErrorCode() {
	case "MessageRejected", "MailFromDomainNotVerifiedException", "InvalidParameterValue":
		return &SendError{Failure: FailureInvalidRecipient, Err: err}
	case "LimitExceededException", "AccountSendingPausedException":
		return &SendError{Failure: FailureQuotaExceeded, Err: err}
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation":
		return &SendError{Failure: FailureAuthorization, Err: err}
	default:
		return &SendError{Failure: FailureTransient, Err: err}
	}
}
