// Package reminder emails the brokerage a daily digest of renewals inside the
// urgent window.
package reminder

import (
	"context"
	"fmt"
	"strings"

	"github.com/SR0NAK/insurebharat/cmd/crm/dashboard"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type IEmailer interface {
	SendRenewalDigest(ctx context.Context, to, body string) error
}

type IRenewals interface {
	UrgentRenewals() []dashboard.Renewal
}

func NewReminder(
	logger *zap.Logger,
	emailer IEmailer,
	renewals IRenewals,
	recipient string,
) *Reminder {
	return &Reminder{
		logger:    logger,
		emailer:   emailer,
		renewals:  renewals,
		recipient: recipient,
	}
}

// Reminder schedules and sends the renewal digest.
type Reminder struct {
	logger    *zap.Logger
	emailer   IEmailer
	renewals  IRenewals
	recipient string
}

// Launch runs the digest on the passed cron schedule until ctx is cancelled.
func (r *Reminder) Launch(ctx context.Context, schedule string) error {
	runner := cron.New()
	if _, err := runner.AddFunc(schedule, func() {
		if err := r.Send(ctx); err != nil {
			r.logger.Error("send renewal digest", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule renewal digest; error: %w", err)
	}

	runner.Start()
	<-ctx.Done()
	<-runner.Stop().Done()

	return ctx.Err()
}

// Send emails the digest immediately. A digest with no urgent renewals is not
// sent.
func (r *Reminder) Send(ctx context.Context) error {
	urgent := r.renewals.UrgentRenewals()
	if len(urgent) == 0 {
		return nil
	}

	return r.emailer.SendRenewalDigest(ctx, r.recipient, digest(urgent))
}

// --- helpers ---

func digest(renewals []dashboard.Renewal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d policies are up for renewal in the next 30 days.\n\n", len(renewals))
	for _, renewal := range renewals {
		fmt.Fprintf(
			&b,
			"- %s (%s): $%d premium, %d days left, status %s\n",
			renewal.Customer,
			renewal.Policy,
			renewal.Premium,
			renewal.DaysLeft,
			renewal.Status,
		)
	}

	return b.String()
}
