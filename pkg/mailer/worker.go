package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Disposition tells the consumer what to do with a delivery.
type Disposition int

const (
	Ack Disposition = iota
	Requeue
	Drop
)

func (d Disposition) String() string {
	switch d {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	default:
		return "drop"
	}
}

// Worker turns queued EmailJob payloads into sent mail.
// Defaults fill template data keys a job leaves unset.
type Worker struct {
	Sender   Sender
	Defaults map[string]any
	Timeout  time.Duration
	Logger   *logrus.Logger
}

// Handle sends one message. A failed send is requeued once and dropped when it
// fails again after redelivery.
func (w *Worker) Handle(ctx context.Context, body []byte, redelivered bool) Disposition {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad email message")
		return Drop
	}
	if job.Template != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		for k, v := range w.Defaults {
			if cur, ok := job.Data[k]; !ok || cur == "" {
				job.Data[k] = v
			}
		}
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entry := w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template})
	err := Deliver(sendCtx, w.Sender, job)
	switch {
	case err == nil:
		entry.Info("email sent")
		return Ack
	case errors.Is(err, ErrNoRecipient):
		entry.Warn("dropping email job without recipient")
		return Drop
	case !redelivered:
		entry.WithError(err).Warn("send failed; requeueing once")
		return Requeue
	default:
		entry.WithError(err).Error("send failed again; dropping")
		return Drop
	}
}
