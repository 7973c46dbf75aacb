package reminder

import (
	"encoding/json"
	"strconv"

	"fundwerk/internal/logger"
	"fundwerk/internal/mail"
	"fundwerk/internal/models"
)

// frequencies fixes the dispatch order of the interest reminder lists.
var frequencies = []models.PaymentFrequency{
	models.FrequencyQuarterly,
	models.FrequencyBiannual,
	models.FrequencyAnnual,
}

// interestTiers are the two reminder tiers of the payment cadence.
var interestTiers = []Tier{TierFirst, TierSecond}

// dividendTiers are the three reminder tiers of the dividend cadence.
var dividendTiers = []Tier{TierFirst, TierSecond, TierLast}

// dispatch sends the grouped emails and persists the notification records.
// Failures are logged and do not abort the run; a failed send is
// indistinguishable from a successful one to the rest of the pass.
func (e *Engine) dispatch(agg *aggregation, result *RunResult) {
	e.dispatchMaturity(agg, result)
	e.dispatchInterest(agg, result)
	e.dispatchDividend(agg, result)
}

func (e *Engine) dispatchMaturity(agg *aggregation, result *RunResult) {
	if len(agg.maturing) == 0 {
		return
	}

	// One combined email per investor, listing their maturing products, and
	// one notification per (investor, product) pair.
	for _, email := range agg.investorOrder {
		bucket := agg.investors[email]
		e.sendMaturityEmail(mail.RecipientInvestor, []string{email}, bucket.products, result)
		for _, p := range bucket.products {
			receiverID := bucket.investor.ID
			e.persist(&models.Notification{
				EntityType:      "product",
				RelatedEntityID: p.ID,
				Type:            models.NotificationRemindForMaturity,
				Text:            maturityNotificationText(p),
				TranslationData: translationData(p),
				ReceiverID:      &receiverID,
			}, result)
		}
	}

	// One combined email per issuer and one notification per maturing product.
	for _, issuerID := range agg.issuerOrder {
		bucket := agg.issuers[issuerID]
		e.sendMaturityEmail(mail.RecipientIssuer, []string{bucket.issuer.Email}, bucket.products, result)
		for _, p := range bucket.products {
			receiverID := bucket.issuer.ID
			e.persist(&models.Notification{
				EntityType:      "product",
				RelatedEntityID: p.ID,
				Type:            models.NotificationRemindForMaturity,
				Text:            maturityNotificationText(p),
				TranslationData: translationData(p),
				ReceiverID:      &receiverID,
			}, result)
		}
	}

	// One combined email to all admins and one receiver-less notification
	// per maturing product.
	if addrs := adminAddresses(agg.admins); len(addrs) > 0 {
		e.sendMaturityEmail(mail.RecipientAdmin, addrs, agg.maturing, result)
	}
	for _, p := range agg.maturing {
		e.persist(&models.Notification{
			EntityType:      "product",
			RelatedEntityID: p.ID,
			Type:            models.NotificationRemindForMaturity,
			Text:            maturityNotificationText(p),
			TranslationData: translationData(p),
		}, result)
	}
}

func (e *Engine) dispatchInterest(agg *aggregation, result *RunResult) {
	addrs := adminAddresses(agg.admins)

	sentAny := false
	for _, freq := range frequencies {
		for _, tier := range interestTiers {
			messages := agg.interest[freq][tier]
			if len(messages) == 0 {
				continue
			}
			sentAny = true
			if len(addrs) > 0 {
				e.send(mail.Message{
					To:      addrs,
					Subject: mail.InterestSubject(freq, tier.String()),
					Body:    mail.RenderInterestBody(tier.String(), messages),
				}, result)
			}
		}
	}

	// A single summary notification for the whole payment pass, referencing
	// the first classified product.
	if sentAny && agg.firstInterestProduct != "" {
		e.persist(&models.Notification{
			EntityType:      "product",
			RelatedEntityID: agg.firstInterestProduct,
			Type:            models.NotificationRemindForPayment,
			Text:            "Upcoming interest payments require review.",
		}, result)
	}
}

func (e *Engine) dispatchDividend(agg *aggregation, result *RunResult) {
	addrs := adminAddresses(agg.admins)

	for _, tier := range dividendTiers {
		products := agg.dividend[tier]
		if len(products) == 0 {
			continue
		}

		e.persist(&models.Notification{
			EntityType:      "product",
			RelatedEntityID: products[0].ID,
			Type:            models.NotificationRemindForPayment,
			Text:            "Upcoming dividend payments require review.",
		}, result)

		if len(addrs) == 0 {
			continue
		}
		body, err := mail.RenderDividendBody(tier.String(), productNames(products))
		if err != nil {
			logger.Get().Warnw("failed to render dividend email", "tier", tier.String(), "error", err)
			continue
		}
		e.send(mail.Message{To: addrs, Subject: mail.DividendSubject, Body: body}, result)
	}
}

// sendMaturityEmail renders and sends one combined maturity email.
func (e *Engine) sendMaturityEmail(kind mail.RecipientKind, to []string, products []models.Product, result *RunResult) {
	body, err := mail.RenderMaturityBody(kind, productNames(products), MaturityNoticeDays)
	if err != nil {
		logger.Get().Warnw("failed to render maturity email", "recipient_kind", string(kind), "error", err)
		return
	}
	e.send(mail.Message{To: to, Subject: mail.MaturitySubject, Body: body}, result)
}

// send dispatches one email, logging failures without surfacing them.
func (e *Engine) send(msg mail.Message, result *RunResult) {
	if err := e.mailer.Send(msg); err != nil {
		logger.Get().Warnw("failed to send email", "subject", msg.Subject, "error", err)
		return
	}
	result.EmailsSent++
}

// persist creates one notification record, logging failures without
// surfacing them.
func (e *Engine) persist(n *models.Notification, result *RunResult) {
	if err := e.notifications.Create(n); err != nil {
		logger.Get().Warnw("failed to create notification",
			"type", string(n.Type),
			"related_entity_id", n.RelatedEntityID,
			"error", err,
		)
		return
	}
	result.NotificationsCreated++
}

func maturityNotificationText(p models.Product) string {
	return "Product " + strconv.Quote(p.Name) + " reaches maturity in " +
		strconv.Itoa(MaturityNoticeDays) + " day(s)."
}

// translationData carries the message parameters clients need to localize
// the notification text.
func translationData(p models.Product) string {
	data, err := json.Marshal(map[string]any{
		"productName": p.Name,
		"days":        MaturityNoticeDays,
	})
	if err != nil {
		return ""
	}
	return string(data)
}

func productNames(products []models.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

func adminAddresses(admins []models.User) []string {
	addrs := make([]string, 0, len(admins))
	for _, a := range admins {
		if a.Email != "" {
			addrs = append(addrs, a.Email)
		}
	}
	return addrs
}
