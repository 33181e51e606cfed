package mock_email

import (
	"github.com/vibe-gaming/gatekeeper/pkg/email"

	"github.com/stretchr/testify/mock"
)

var _ email.Sender = (*EmailSender)(nil)

type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) Send(inp email.SendEmailInput) error {
	args := m.Called(inp)

	return args.Error(0)
}

// Sent returns every message passed to Send so far.
func (m *EmailSender) Sent() []email.SendEmailInput {
	var out []email.SendEmailInput
	for _, call := range m.Calls {
		if call.Method != "Send" {
			continue
		}
		if inp, ok := call.Arguments.Get(0).(email.SendEmailInput); ok {
			out = append(out, inp)
		}
	}

	return out
}
