package mail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	"fundwerk/internal/models"
)

// RecipientKind selects the wording of a maturity email.
type RecipientKind string

const (
	RecipientInvestor RecipientKind = "investor"
	RecipientIssuer   RecipientKind = "issuer"
	RecipientAdmin    RecipientKind = "admin"
)

// MaturitySubject is the subject line for all maturity emails.
const MaturitySubject = "Products reaching maturity"

// DividendSubject is the subject line for dividend reminder emails.
const DividendSubject = "Dividend payments upcoming"

const maturityTemplate = `Dear {{.Salutation}},

{{.Lead}} in {{.Days}} day{{if ne .Days 1}}s{{end}}:
{{range .Products}}
- {{.}}{{end}}

Please review the scheduled repayments.

Your Fundwerk team
`

const dividendTemplate = `Dear team,

Dividend payments are coming up ({{.Label}} reminder). Affected products:
{{range .Products}}
- {{.}}{{end}}

Your Fundwerk team
`

var (
	maturityTpl = template.Must(template.New("maturity").Parse(maturityTemplate))
	dividendTpl = template.Must(template.New("dividend").Parse(dividendTemplate))
)

// interestSeparator joins the per-product lines of a combined interest email.
const interestSeparator = "\n\n"

var maturityWording = map[RecipientKind]struct {
	salutation string
	lead       string
}{
	RecipientInvestor: {"investor", "The following products you hold will reach maturity"},
	RecipientIssuer:   {"issuer", "The following products you issued will reach maturity"},
	RecipientAdmin:    {"team", "The following products reach maturity"},
}

// RenderMaturityBody renders the maturity email for a recipient kind listing
// the affected product names.
func RenderMaturityBody(kind RecipientKind, products []string, days int) (string, error) {
	wording, ok := maturityWording[kind]
	if !ok {
		return "", fmt.Errorf("unknown recipient kind %q", kind)
	}

	var buf bytes.Buffer
	err := maturityTpl.Execute(&buf, struct {
		Salutation string
		Lead       string
		Days       int
		Products   []string
	}{wording.salutation, wording.lead, days, products})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var frequencyWording = map[models.PaymentFrequency]string{
	models.FrequencyQuarterly: "quarterly",
	models.FrequencyBiannual:  "half-yearly",
	models.FrequencyAnnual:    "annual",
}

// RenderInterestLine renders the single-product line of an interest reminder.
func RenderInterestLine(product string, amount decimal.Decimal, currency string, freq models.PaymentFrequency) string {
	return fmt.Sprintf("The %s interest payment of %s %s for product %q is due at the end of the period.",
		frequencyWording[freq], amount.StringFixed(2), currency, product)
}

// InterestSubject returns the admin email subject for a frequency and
// reminder label.
func InterestSubject(freq models.PaymentFrequency, label string) string {
	caser := frequencyWording[freq]
	return fmt.Sprintf("%s%s interest payments due (%s reminder)",
		strings.ToUpper(caser[:1]), caser[1:], label)
}

// RenderInterestBody joins the per-product interest lines into one combined
// admin email body, labelled with the reminder tier.
func RenderInterestBody(label string, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear team,\n\nUpcoming interest payments (%s reminder):\n\n", label)
	b.WriteString(strings.Join(lines, interestSeparator))
	b.WriteString("\n\nYour Fundwerk team\n")
	return b.String()
}

// RenderDividendBody renders the combined admin email for a dividend
// reminder tier.
func RenderDividendBody(label string, products []string) (string, error) {
	var buf bytes.Buffer
	err := dividendTpl.Execute(&buf, struct {
		Label    string
		Products []string
	}{label, products})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
