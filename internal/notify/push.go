package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// PushClient delivers push notifications through Firebase Cloud Messaging.
// When no credentials file is configured the client is created disabled and
// Send becomes a no-op, so environments without FCM still run.
type PushClient struct {
	messaging *messaging.Client
	log       zerolog.Logger
}

func NewPushClient(ctx context.Context, credentialsFile string, log zerolog.Logger) (*PushClient, error) {
	if credentialsFile == "" {
		log.Warn().Msg("push credentials not configured, notifications disabled")
		return &PushClient{log: log}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}
	return &PushClient{messaging: client, log: log}, nil
}

func (c *PushClient) Send(ctx context.Context, token, title, body string) error {
	if c.messaging == nil {
		return nil
	}

	_, err := c.messaging.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				DefaultSound: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	return nil
}
