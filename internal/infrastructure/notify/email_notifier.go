package notify

import (
	"context"
	"time"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/pkg/mailer"
	"github.com/oksasatya/customer-directory/pkg/mailer/templates"
)

// Publisher puts a JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier queues a welcome email for every new customer.
// The email worker renders and sends it.
type EmailNotifier struct {
	pub     Publisher
	appName string
	now     func() time.Time
}

func NewEmailNotifier(pub Publisher, appName string) *EmailNotifier {
	return &EmailNotifier{pub: pub, appName: appName, now: time.Now}
}

func (n *EmailNotifier) CustomerRegistered(ctx context.Context, v entity.CustomerView) error {
	job := mailer.EmailJob{
		To:       v.Email,
		Template: templates.Welcome,
		Data: templates.ToMap(templates.EmailData{
			Name:    v.Name,
			Email:   v.Email,
			AppName: n.appName,
			Time:    n.now().UTC().Format(time.RFC1123),
		}),
	}
	return n.pub.PublishJSON(ctx, job)
}
