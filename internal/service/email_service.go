package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/google/uuid"
)

// EmailSender delivers one-time codes to parents
type EmailSender interface {
	SendVerificationCode(ctx context.Context, toEmail, code string, window time.Duration) error
	SendPasswordResetCode(ctx context.Context, toEmail, code string, window time.Duration) error
}

// EmailService sends one-time code emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service that logs codes instead of sending, for local development.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendVerificationCode emails the 6-digit account verification code
func (s *EmailService) SendVerificationCode(ctx context.Context, toEmail, code string, window time.Duration) error {
	if !s.enabled {
		log.Printf("[DEV] Verification code for %s: %s", toEmail, code)
		return nil
	}

	subject := fmt.Sprintf("Confirm your TinyMath account: %s", code)
	htmlBody := codeEmailHTML(
		"To finish setting up your parent account, please use the 6-digit verification code below:",
		code, window,
	)
	textBody := codeEmailText(
		"To finish setting up your parent account, please use the 6-digit verification code below:",
		code, window,
	)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordResetCode emails the 6-digit password reset code
func (s *EmailService) SendPasswordResetCode(ctx context.Context, toEmail, code string, window time.Duration) error {
	if !s.enabled {
		log.Printf("[DEV] Password reset code for %s: %s", toEmail, code)
		return nil
	}

	subject := fmt.Sprintf("Reset your TinyMath password: %s", code)
	htmlBody := codeEmailHTML(
		"We received a request to reset your password. Use the code below:",
		code, window,
	)
	textBody := codeEmailText(
		"We received a request to reset your password. Use the code below:",
		code, window,
	)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES. Every delivery is stamped with
// a generated reference that travels on the message itself, so a parent's
// support ticket can be matched to the exact send and its SES message ID.
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	ref := uuid.New().String()
	input := buildEmailInput(fromAddress, toEmail, subject, htmlBody, textBody, ref)

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s (ref %s): %w", toEmail, ref, err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	log.Printf("Email sent: to=%s, subject=%s, ref=%s, message_id=%s", toEmail, subject, ref, messageID)
	return nil
}

// deliveryRefHeader carries the delivery reference on the outgoing message
const deliveryRefHeader = "X-Entity-Ref-ID"

// buildEmailInput assembles the SES request for a single HTML+text message,
// stamping ref into the message headers
func buildEmailInput(fromAddress, toEmail, subject, htmlBody, textBody, ref string) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
				Headers: []types.MessageHeader{
					{
						Name:  aws.String(deliveryRefHeader),
						Value: aws.String(ref),
					},
				},
			},
		},
	}
}

// codeEmailHTML renders the shared one-time code email body
func codeEmailHTML(intro, code string, window time.Duration) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 500px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.code { font-size: 32px; font-weight: bold; letter-spacing: 12px; text-align: center; padding: 20px; background-color: #f0f7ff; border: 2px solid #4a90e2; border-radius: 8px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>TinyMath Education</h1>
		</div>
		<div class="content">
			<p>Hello,</p>
			<p>%s</p>
			<div class="code">%s</div>
			<p><strong>This code will expire in %s.</strong></p>
			<p>If you didn't request this code, you can safely ignore this email.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from TinyMath. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, intro, code, formatWindow(window))
}

// codeEmailText renders the plain-text alternative body
func codeEmailText(intro, code string, window time.Duration) string {
	return fmt.Sprintf(`Hello,

%s

    %s

This code will expire in %s.

If you didn't request this code, you can safely ignore this email.

---
This is an automated email from TinyMath. Please do not reply.
`, intro, code, formatWindow(window))
}

// formatWindow renders a validity window for email copy ("15 minutes", "1 hour")
func formatWindow(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}

	minutes := int(d / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
