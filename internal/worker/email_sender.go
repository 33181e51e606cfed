package worker

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vibe-gaming/gatekeeper/internal/config"
	emailProvider "github.com/vibe-gaming/gatekeeper/pkg/email"
	"github.com/vibe-gaming/gatekeeper/pkg/logger"

	"go.uber.org/zap"
)

const verificationSubject = "Код подтверждения"

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type verificationEmailInput struct {
	Email            string
	VerificationCode string
	VerificationURL  string
}

func (s *emailSender) SendVerificationEmail(ctx context.Context, email string, verificationCode string) error {
	if !s.config.Enabled {
		logger.Info("email delivery disabled, verification email dropped", zap.String("email", email))
		return nil
	}

	templateInput := verificationEmailInput{
		Email:            email,
		VerificationCode: verificationCode,
		VerificationURL:  s.verificationURL(email, verificationCode),
	}
	sendInput := emailProvider.SendEmailInput{Subject: verificationSubject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.Verification, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	logger.Info("verification email sent", zap.String("email", email))

	return nil
}

func (s *emailSender) verificationURL(email string, verificationCode string) string {
	query := url.Values{}
	query.Set("email", email)
	query.Set("verification_code", verificationCode)

	u, err := url.Parse(s.config.VerifyURL)
	if err != nil {
		return s.config.VerifyURL + "?" + query.Encode()
	}
	u.RawQuery = query.Encode()

	return u.String()
}
