package reminder

import (
	"time"

	"github.com/shopspring/decimal"

	"fundwerk/internal/calendar"
	"fundwerk/internal/mail"
	"fundwerk/internal/models"
)

// MaturityNoticeDays is the notice window before maturity: the maturity
// notification fires exactly this many days ahead of the maturity date.
const MaturityNoticeDays = 1

// Tier is the ordinal position of a reminder in the sequence sent before a
// due event.
type Tier int

const (
	TierFirst Tier = iota
	TierSecond
	TierLast
)

// String returns the human-readable tier label used in emails.
func (t Tier) String() string {
	switch t {
	case TierFirst:
		return "first"
	case TierSecond:
		return "second"
	default:
		return "last"
	}
}

// paymentsPerYear maps payment frequency to coupon payments per year.
var paymentsPerYear = map[models.PaymentFrequency]int64{
	models.FrequencyQuarterly: 4,
	models.FrequencyBiannual:  2,
	models.FrequencyAnnual:    1,
}

// cutoffMonths maps payment frequency to the months whose last work day is a
// payment cutoff.
var cutoffMonths = map[models.PaymentFrequency][]time.Month{
	models.FrequencyQuarterly: {time.March, time.June, time.September, time.December},
	models.FrequencyBiannual:  {time.June, time.December},
	models.FrequencyAnnual:    {time.December},
}

// Context carries the calendar facts of a single run day: the resolved
// reminder days, the payment cutoffs per frequency, and the dividend
// triggers. It is computed once per run so every product is classified
// against the same snapshot.
type Context struct {
	Today           time.Time
	FirstRemindDay  time.Time
	SecondRemindDay time.Time

	cutoffs map[models.PaymentFrequency][]time.Time

	// DividendTriggers are the first Monday of January and the 3rd and 4th
	// Monday of March (first/second/last reminder). An entry is zero when
	// the month lacks enough Mondays.
	DividendTriggers [3]time.Time
}

// NewContext resolves the calendar context for the given run time.
func NewContext(now time.Time) Context {
	today := calendar.Midnight(now)
	ctx := Context{
		Today:           today,
		FirstRemindDay:  calendar.ReminderDate(today, calendar.FirstReminderOffset),
		SecondRemindDay: calendar.ReminderDate(today, calendar.SecondReminderOffset),
		cutoffs:         make(map[models.PaymentFrequency][]time.Time, len(cutoffMonths)),
	}

	for freq, months := range cutoffMonths {
		days := make([]time.Time, len(months))
		for i, m := range months {
			days[i] = calendar.LastWorkDayOfMonth(today, m)
		}
		ctx.cutoffs[freq] = days
	}

	januaryMondays := calendar.MondaysOfMonth(today, time.January)
	marchMondays := calendar.MondaysOfMonth(today, time.March)
	if len(januaryMondays) > 0 {
		ctx.DividendTriggers[0] = januaryMondays[0]
	}
	if len(marchMondays) > 2 {
		ctx.DividendTriggers[1] = marchMondays[2]
	}
	if len(marchMondays) > 3 {
		ctx.DividendTriggers[2] = marchMondays[3]
	}
	return ctx
}

// NextPaymentDate returns the upcoming cutoff implied by the payment
// frequency and the current month bucket.
func (c Context) NextPaymentDate(freq models.PaymentFrequency) time.Time {
	months := cutoffMonths[freq]
	bucketSize := 12 / len(months)
	bucket := ((int(c.Today.Month())-1)/bucketSize + 1) * bucketSize
	return c.cutoffs[freq][bucket/bucketSize-1]
}

// isCutoff reports whether day is one of the payment cutoffs for freq.
func (c Context) isCutoff(freq models.PaymentFrequency, day time.Time) bool {
	for _, cutoff := range c.cutoffs[freq] {
		if calendar.SameDay(cutoff, day) {
			return true
		}
	}
	return false
}

// OutcomeKind tags the classification result of a single product.
type OutcomeKind int

const (
	// OutcomeSkip means no action for this product today.
	OutcomeSkip OutcomeKind = iota
	// OutcomeMatured means the product's maturity date has passed and its
	// status must flip to inactive.
	OutcomeMatured
	// OutcomeMaturityNotice means the product matures in MaturityNoticeDays
	// and enters the maturity-notification set.
	OutcomeMaturityNotice
	// OutcomePaymentDue means one or both reminder days hit a payment
	// cutoff for this product.
	OutcomePaymentDue
	// OutcomeDividendNotice means today is one of the fixed dividend
	// reminder triggers.
	OutcomeDividendNotice
)

// PaymentHit is one rendered interest reminder for a frequency and tier.
type PaymentHit struct {
	Frequency models.PaymentFrequency
	Tier      Tier
	Message   string
}

// Outcome is the tagged classification result of one product.
type Outcome struct {
	Instrument Instrument
	Kind       OutcomeKind

	// Payments is set for OutcomePaymentDue.
	Payments []PaymentHit
	// DividendTier is set for OutcomeDividendNotice.
	DividendTier Tier
}

// Classify maps a product snapshot to its outcome for the run day. It is a
// pure function of the instrument, the calendar context, and the repaid
// amount; it performs no store access.
func Classify(inst Instrument, cctx Context, repaid decimal.Decimal) Outcome {
	if inst.Kind == KindInterest {
		return classifyInterest(inst, cctx, repaid)
	}
	return classifyDividend(inst, cctx)
}

func classifyInterest(inst Instrument, cctx Context, repaid decimal.Decimal) Outcome {
	today := cctx.Today

	if !today.Before(inst.MaturityDate) {
		return Outcome{Instrument: inst, Kind: OutcomeMatured}
	}
	if today.Equal(inst.MaturityDate.AddDate(0, 0, -MaturityNoticeDays)) {
		return Outcome{Instrument: inst, Kind: OutcomeMaturityNotice}
	}

	p := inst.Product
	if p.SoldVolume() == 0 {
		return Outcome{Instrument: inst, Kind: OutcomeSkip}
	}

	// The product matures before its next nominal payment: nothing to remind.
	if !cctx.NextPaymentDate(p.PaymentFrequency).Before(inst.MaturityDate) {
		return Outcome{Instrument: inst, Kind: OutcomeSkip}
	}

	reminderDays := []struct {
		tier Tier
		day  time.Time
	}{
		{TierFirst, cctx.FirstRemindDay},
		{TierSecond, cctx.SecondRemindDay},
	}

	var hits []PaymentHit
	for _, r := range reminderDays {
		if !cctx.isCutoff(p.PaymentFrequency, r.day) {
			continue
		}
		msg := interestMessage(p, repaid)
		if msg == "" {
			// Principal fully repaid: suppress the reminder.
			continue
		}
		hits = append(hits, PaymentHit{Frequency: p.PaymentFrequency, Tier: r.tier, Message: msg})
	}

	if len(hits) == 0 {
		return Outcome{Instrument: inst, Kind: OutcomeSkip}
	}
	return Outcome{Instrument: inst, Kind: OutcomePaymentDue, Payments: hits}
}

// interestMessage renders the interest reminder line for a product, or ""
// when the outstanding principal is zero or negative.
func interestMessage(p models.Product, repaid decimal.Decimal) string {
	principal := decimal.NewFromInt(p.SoldVolume()).Mul(p.TicketSize).Sub(repaid)
	if principal.Sign() <= 0 {
		return ""
	}

	interest := principal.
		Mul(p.CouponRate).
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(paymentsPerYear[p.PaymentFrequency]))

	return mail.RenderInterestLine(p.Name, interest, p.Currency, p.PaymentFrequency)
}

func classifyDividend(inst Instrument, cctx Context) Outcome {
	if inst.Product.SoldVolume() == 0 {
		return Outcome{Instrument: inst, Kind: OutcomeSkip}
	}

	tiers := [3]Tier{TierFirst, TierSecond, TierLast}
	for i, trigger := range cctx.DividendTriggers {
		if !trigger.IsZero() && cctx.Today.Equal(trigger) {
			return Outcome{Instrument: inst, Kind: OutcomeDividendNotice, DividendTier: tiers[i]}
		}
	}
	return Outcome{Instrument: inst, Kind: OutcomeSkip}
}
