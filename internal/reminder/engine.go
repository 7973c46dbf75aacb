// Package reminder implements the daily reminder scheduling engine: it
// classifies the active product set against the business calendar, then
// aggregates and dispatches maturity, interest, and dividend notifications.
package reminder

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"fundwerk/internal/logger"
	"fundwerk/internal/mail"
	"fundwerk/internal/models"
	"fundwerk/internal/services"

	"github.com/shopspring/decimal"
)

// ErrRunInProgress is returned when a run is triggered while a previous run
// is still executing.
var ErrRunInProgress = errors.New("reminder run already in progress")

// RunResult summarizes a single engine run.
type RunResult struct {
	ProductsEvaluated    int           `json:"products_evaluated"`
	Matured              int           `json:"matured"`
	MaturityNotices      int           `json:"maturity_notices"`
	InterestReminders    int           `json:"interest_reminders"`
	DividendReminders    int           `json:"dividend_reminders"`
	NotificationsCreated int           `json:"notifications_created"`
	EmailsSent           int           `json:"emails_sent"`
	Duration             time.Duration `json:"duration"`
}

// Engine runs the daily reminder pass. One logical run at a time: an
// overlapping trigger fails fast with ErrRunInProgress instead of racing
// the bucket-merge phase.
type Engine struct {
	products      services.ProductServicer
	holdings      services.HoldingServicer
	transactions  services.TransactionServicer
	users         services.UserServicer
	notifications services.NotificationServicer
	mailer        mail.Mailer

	now     func() time.Time
	running atomic.Bool
}

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a reminder engine over the given stores and mailer.
func NewEngine(
	products services.ProductServicer,
	holdings services.HoldingServicer,
	transactions services.TransactionServicer,
	users services.UserServicer,
	notifications services.NotificationServicer,
	mailer mail.Mailer,
	opts ...Option,
) *Engine {
	e := &Engine{
		products:      products,
		holdings:      holdings,
		transactions:  transactions,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one reminder pass as of the current time.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	return e.RunAsOf(ctx, e.now())
}

// RunAsOf executes one reminder pass as of the given day. Store read
// failures abort the whole run; dispatch failures are logged and otherwise
// unobserved (no retry, no idempotency key). The run is complete once the
// dispatch loop returns.
func (e *Engine) RunAsOf(ctx context.Context, now time.Time) (*RunResult, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer e.running.Store(false)

	start := time.Now()
	cctx := NewContext(now)
	log := logger.Get()

	log.Infow("reminder run starting",
		"today", cctx.Today.Format("2006-01-02"),
		"first_remind_day", cctx.FirstRemindDay.Format("2006-01-02"),
		"second_remind_day", cctx.SecondRemindDay.Format("2006-01-02"),
	)

	products, err := e.products.FindByStatus(models.ProductStatusActive)
	if err != nil {
		return nil, err
	}

	result := &RunResult{ProductsEvaluated: len(products)}

	// Classification: one product at a time, store lookups awaited in
	// order. A single failed lookup aborts the run.
	outcomes := make([]Outcome, 0, len(products))
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		inst := NewInstrument(p)

		repaid := decimal.Zero
		if inst.Kind == KindInterest && p.SoldVolume() > 0 {
			repaid, err = e.transactions.RepaidAmount(p.ID)
			if err != nil {
				return nil, err
			}
		}

		outcome := Classify(inst, cctx, repaid)
		if outcome.Kind == OutcomeMatured {
			// Fire-and-forget status flip; the pass continues either way.
			if err := e.products.MarkMatured(p.ID); err != nil {
				log.Warnw("failed to mark product matured", "product_id", p.ID, "error", err)
			}
			result.Matured++
		}
		outcomes = append(outcomes, outcome)
	}

	agg, err := e.aggregate(ctx, outcomes)
	if err != nil {
		return nil, err
	}
	result.MaturityNotices = len(agg.maturing)
	result.InterestReminders = agg.interestCount()
	result.DividendReminders = agg.dividendCount()

	e.dispatch(agg, result)

	result.Duration = time.Since(start)
	log.Infow("reminder run finished",
		"products_evaluated", result.ProductsEvaluated,
		"matured", result.Matured,
		"maturity_notices", result.MaturityNotices,
		"interest_reminders", result.InterestReminders,
		"dividend_reminders", result.DividendReminders,
		"notifications_created", result.NotificationsCreated,
		"emails_sent", result.EmailsSent,
		"duration", result.Duration.String(),
	)
	return result, nil
}
