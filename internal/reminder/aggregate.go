package reminder

import (
	"context"

	"fundwerk/internal/models"
)

// investorBucket accumulates the maturing products of one investor. Two
// investor records sharing an email address merge into a single bucket.
type investorBucket struct {
	investor models.User
	products []models.Product
}

// issuerBucket accumulates the maturing products of one issuer.
type issuerBucket struct {
	issuer   models.User
	products []models.Product
}

// tierMessages holds rendered interest reminder lines per tier.
type tierMessages map[Tier][]string

// aggregation is the folded view of all per-product outcomes, ready for
// dispatch.
type aggregation struct {
	maturing []models.Product

	// Insertion-ordered buckets keyed by investor email / issuer ID.
	investorOrder []string
	investors     map[string]*investorBucket
	issuerOrder   []string
	issuers       map[string]*issuerBucket

	// interest[freq][tier] is the list of rendered reminder lines.
	interest map[models.PaymentFrequency]tierMessages
	// firstInterestProduct is the product referenced by the single summary
	// payment notification.
	firstInterestProduct string

	dividend map[Tier][]models.Product

	admins []models.User
}

func (a *aggregation) interestCount() int {
	n := 0
	for _, tiers := range a.interest {
		for _, msgs := range tiers {
			n += len(msgs)
		}
	}
	return n
}

func (a *aggregation) dividendCount() int {
	n := 0
	for _, products := range a.dividend {
		n += len(products)
	}
	return n
}

func (a *aggregation) hasAnyReminder() bool {
	return len(a.maturing) > 0 || a.interestCount() > 0 || a.dividendCount() > 0
}

// aggregate folds the per-product outcomes into dispatch buckets. For every
// maturing product it resolves holdings and investors sequentially, product
// by product, so the bucket merge never runs concurrently.
func (e *Engine) aggregate(ctx context.Context, outcomes []Outcome) (*aggregation, error) {
	agg := &aggregation{
		investors: make(map[string]*investorBucket),
		issuers:   make(map[string]*issuerBucket),
		interest:  make(map[models.PaymentFrequency]tierMessages),
		dividend:  make(map[Tier][]models.Product),
	}

	for _, outcome := range outcomes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch outcome.Kind {
		case OutcomeMaturityNotice:
			if err := e.collectMaturity(agg, outcome.Instrument.Product); err != nil {
				return nil, err
			}

		case OutcomePaymentDue:
			for _, hit := range outcome.Payments {
				tiers, ok := agg.interest[hit.Frequency]
				if !ok {
					tiers = make(tierMessages)
					agg.interest[hit.Frequency] = tiers
				}
				tiers[hit.Tier] = append(tiers[hit.Tier], hit.Message)
			}
			if agg.firstInterestProduct == "" {
				agg.firstInterestProduct = outcome.Instrument.Product.ID
			}

		case OutcomeDividendNotice:
			tier := outcome.DividendTier
			agg.dividend[tier] = append(agg.dividend[tier], outcome.Instrument.Product)
		}
	}

	if agg.hasAnyReminder() {
		admins, err := e.users.FindAdmins()
		if err != nil {
			return nil, err
		}
		agg.admins = admins
	}
	return agg, nil
}

// collectMaturity adds a maturing product to the global set and fans it out
// into the issuer and investor buckets. Investors are looked up through the
// product's active holdings and keyed by email, so distinct investor records
// sharing an address receive one combined email.
func (e *Engine) collectMaturity(agg *aggregation, product models.Product) error {
	agg.maturing = append(agg.maturing, product)

	issuer := product.Issuer
	bucket, ok := agg.issuers[product.IssuerID]
	if !ok {
		if issuer.ID == "" {
			// Issuer was not preloaded with the product; resolve it now.
			resolved, err := e.users.FindByID(product.IssuerID)
			if err != nil {
				return err
			}
			issuer = *resolved
		}
		bucket = &issuerBucket{issuer: issuer}
		agg.issuers[product.IssuerID] = bucket
		agg.issuerOrder = append(agg.issuerOrder, product.IssuerID)
	}
	bucket.products = append(bucket.products, product)

	holdings, err := e.holdings.FindActiveByProduct(product.ID)
	if err != nil {
		return err
	}

	investorIDs := make([]string, 0, len(holdings))
	seen := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		if !seen[h.InvestorID] {
			seen[h.InvestorID] = true
			investorIDs = append(investorIDs, h.InvestorID)
		}
	}

	investors, err := e.users.FindByIDs(investorIDs)
	if err != nil {
		return err
	}

	for _, investor := range investors {
		ib, ok := agg.investors[investor.Email]
		if !ok {
			ib = &investorBucket{investor: investor}
			agg.investors[investor.Email] = ib
			agg.investorOrder = append(agg.investorOrder, investor.Email)
		}
		ib.products = append(ib.products, product)
	}
	return nil
}
