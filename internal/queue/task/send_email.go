package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendVerificationEmailTaskName  = "sendVerificationEmailTask"
	SendVerificationEmailQueueName = "sendVerificationEmailQueue"
)

type SendVerificationEmail struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

func NewSendVerificationEmailTask(email string, verificationCode string) (*asynq.Task, error) {
	data := SendVerificationEmail{
		Email:            email,
		VerificationCode: verificationCode,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendVerificationEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendVerificationEmailQueueName),
	), nil
}
