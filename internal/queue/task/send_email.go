package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendEmailTaskName  = "sendVerificationEmailTask"
	SendEmailQueueName = "sendEmailQueue"

	defaultMaxRetry = 5
)

type SendEmail struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

func NewSendEmailTask(email string, verificationCode string, maxRetry int) (*asynq.Task, error) {
	if maxRetry <= 0 {
		maxRetry = defaultMaxRetry
	}

	data := SendEmail{
		Email:            email,
		VerificationCode: verificationCode,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendEmailTaskName,
		payload,
		asynq.MaxRetry(maxRetry),
		asynq.Queue(SendEmailQueueName),
	), nil
}
