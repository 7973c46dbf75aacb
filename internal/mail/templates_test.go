package mail

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"fundwerk/internal/models"
)

func TestRenderMaturityBody(t *testing.T) {
	products := []string{"Solar Bond 2030", "Wind Bond 2031"}

	tests := []struct {
		name       string
		kind       RecipientKind
		salutation string
		lead       string
	}{
		{"investor", RecipientInvestor, "Dear investor", "products you hold"},
		{"issuer", RecipientIssuer, "Dear issuer", "products you issued"},
		{"admin", RecipientAdmin, "Dear team", "products reach maturity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := RenderMaturityBody(tt.kind, products, 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(body, tt.salutation) {
				t.Errorf("expected salutation %q in body:\n%s", tt.salutation, body)
			}
			if !strings.Contains(body, tt.lead) {
				t.Errorf("expected lead %q in body:\n%s", tt.lead, body)
			}
			for _, p := range products {
				if !strings.Contains(body, "- "+p) {
					t.Errorf("expected product line for %q in body:\n%s", p, body)
				}
			}
			if !strings.Contains(body, "in 1 day:") {
				t.Errorf("expected singular day wording, got:\n%s", body)
			}
		})
	}

	t.Run("plural_days", func(t *testing.T) {
		body, err := RenderMaturityBody(RecipientAdmin, products, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(body, "in 3 days:") {
			t.Errorf("expected plural day wording, got:\n%s", body)
		}
	})

	t.Run("unknown_kind", func(t *testing.T) {
		if _, err := RenderMaturityBody(RecipientKind("bogus"), products, 1); err == nil {
			t.Error("expected error for unknown recipient kind")
		}
	})
}

func TestRenderInterestLine(t *testing.T) {
	line := RenderInterestLine("Solar Bond 2030", decimal.NewFromInt(625), "EUR", models.FrequencyQuarterly)

	if !strings.Contains(line, "625.00 EUR") {
		t.Errorf("expected amount with currency, got %q", line)
	}
	if !strings.Contains(line, "quarterly") {
		t.Errorf("expected frequency wording, got %q", line)
	}
	if !strings.Contains(line, `"Solar Bond 2030"`) {
		t.Errorf("expected quoted product name, got %q", line)
	}
}

func TestInterestSubject(t *testing.T) {
	tests := []struct {
		freq models.PaymentFrequency
		want string
	}{
		{models.FrequencyQuarterly, "Quarterly interest payments due (first reminder)"},
		{models.FrequencyBiannual, "Half-yearly interest payments due (first reminder)"},
		{models.FrequencyAnnual, "Annual interest payments due (second reminder)"},
	}
	for _, tt := range tests {
		label := "first"
		if tt.freq == models.FrequencyAnnual {
			label = "second"
		}
		if got := InterestSubject(tt.freq, label); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestRenderInterestBody(t *testing.T) {
	lines := []string{"line one", "line two"}
	body := RenderInterestBody("first", lines)

	if !strings.Contains(body, "(first reminder)") {
		t.Errorf("expected tier label, got:\n%s", body)
	}
	if !strings.Contains(body, "line one\n\nline two") {
		t.Errorf("expected blank-line separated lines, got:\n%s", body)
	}
}

func TestRenderDividendBody(t *testing.T) {
	body, err := RenderDividendBody("last", []string{"Wind Share A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "(last reminder)") {
		t.Errorf("expected tier label, got:\n%s", body)
	}
	if !strings.Contains(body, "- Wind Share A") {
		t.Errorf("expected product line, got:\n%s", body)
	}
}
