package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fundwerk/internal/mail"
	"fundwerk/internal/models"
	"fundwerk/internal/pagination"
	"fundwerk/internal/services"
	"fundwerk/internal/testutil"

	"gorm.io/gorm"
)

// captureMailer records sent messages instead of delivering them.
type captureMailer struct {
	sent    []mail.Message
	failAll bool
}

func (m *captureMailer) Send(msg mail.Message) error {
	if m.failAll {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestEngine(db *gorm.DB, mailer mail.Mailer) *Engine {
	return NewEngine(
		services.NewProductService(db),
		services.NewHoldingService(db),
		services.NewTransactionService(db),
		services.NewUserService(db),
		services.NewNotificationService(db),
		mailer,
	)
}

func listNotifications(t *testing.T, db *gorm.DB, nType models.NotificationType) []models.Notification {
	t.Helper()
	resp, err := services.NewNotificationService(db).List(
		services.NotificationFilter{Type: &nType},
		pagination.PageRequest{Page: 1, PageSize: 100},
	)
	testutil.AssertNoError(t, err)
	return resp.Data
}

func TestEngineMaturityNotice(t *testing.T) {
	t.Run("shared_email_investors_get_one_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		testutil.CreateTestAdmin(t, db)
		issuer := testutil.CreateTestIssuer(t, db)

		// Matures 2025-03-19, so 2025-03-18 is the notice day.
		product := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, date(2022, time.March, 19), 3)

		inv1 := testutil.CreateTestInvestorWithEmail(t, db, "shared@test.com")
		inv2 := testutil.CreateTestInvestorWithEmail(t, db, "shared@test.com")
		testutil.SellUnits(t, db, product, inv1.ID, 30)
		testutil.SellUnits(t, db, product, inv2.ID, 20)

		mailer := &captureMailer{}
		engine := newTestEngine(db, mailer)

		result, err := engine.RunAsOf(context.Background(), date(2025, time.March, 18))
		testutil.AssertNoError(t, err)

		if result.MaturityNotices != 1 {
			t.Errorf("expected 1 maturity notice, got %d", result.MaturityNotices)
		}

		sharedEmails := 0
		for _, msg := range mailer.sent {
			for _, to := range msg.To {
				if to == "shared@test.com" {
					sharedEmails++
				}
			}
		}
		if sharedEmails != 1 {
			t.Errorf("expected exactly 1 email to the shared address, got %d", sharedEmails)
		}

		// Investor, issuer, and admin each get one combined email.
		if len(mailer.sent) != 3 {
			t.Errorf("expected 3 emails total, got %d", len(mailer.sent))
		}

		notifications := listNotifications(t, db, models.NotificationRemindForMaturity)
		if len(notifications) == 0 {
			t.Fatal("expected maturity notifications to be persisted")
		}
		for _, n := range notifications {
			if n.RelatedEntityID != product.ID {
				t.Errorf("expected notification for product %s, got %s", product.ID, n.RelatedEntityID)
			}
		}
	})

	t.Run("matured_flip_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		testutil.CreateTestAdmin(t, db)
		issuer := testutil.CreateTestIssuer(t, db)

		// Matures 2025-03-18, the run day itself.
		product := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, date(2022, time.March, 18), 3)

		mailer := &captureMailer{}
		engine := newTestEngine(db, mailer)

		result, err := engine.RunAsOf(context.Background(), date(2025, time.March, 18))
		testutil.AssertNoError(t, err)
		if result.Matured != 1 {
			t.Fatalf("expected 1 matured product, got %d", result.Matured)
		}

		var reloaded models.Product
		testutil.AssertNoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
		if reloaded.Status != models.ProductStatusInactive {
			t.Errorf("expected status inactive, got %s", reloaded.Status)
		}

		// The second run no longer sees the product.
		second, err := engine.RunAsOf(context.Background(), date(2025, time.March, 18))
		testutil.AssertNoError(t, err)
		if second.ProductsEvaluated != 0 || second.Matured != 0 {
			t.Errorf("expected empty second run, got evaluated=%d matured=%d", second.ProductsEvaluated, second.Matured)
		}
	})
}

func TestEngineInterestReminder(t *testing.T) {
	t.Run("single_summary_notification", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		admin := testutil.CreateTestAdmin(t, db)
		issuer := testutil.CreateTestIssuer(t, db)
		investor := testutil.CreateTestInvestor(t, db)

		product := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, date(2024, time.January, 15), 3)
		testutil.SellUnits(t, db, product, investor.ID, 50)

		mailer := &captureMailer{}
		engine := newTestEngine(db, mailer)

		// 2025-03-18 + 9 days resolves to the March quarter end.
		result, err := engine.RunAsOf(context.Background(), date(2025, time.March, 18))
		testutil.AssertNoError(t, err)

		if result.InterestReminders != 1 {
			t.Fatalf("expected 1 interest reminder, got %d", result.InterestReminders)
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(mailer.sent))
		}
		msg := mailer.sent[0]
		if msg.Subject != "Quarterly interest payments due (first reminder)" {
			t.Errorf("unexpected subject %q", msg.Subject)
		}
		if msg.To[0] != admin.Email {
			t.Errorf("expected email to admin %s, got %s", admin.Email, msg.To[0])
		}
		// 50 units at 1000 EUR and 5% coupon: 625 per quarter.
		if !strings.Contains(msg.Body, "625") {
			t.Errorf("expected body to contain the interest amount, got %q", msg.Body)
		}

		notifications := listNotifications(t, db, models.NotificationRemindForPayment)
		if len(notifications) != 1 {
			t.Fatalf("expected exactly 1 summary notification, got %d", len(notifications))
		}
		if notifications[0].RelatedEntityID != product.ID {
			t.Errorf("expected summary to reference %s, got %s", product.ID, notifications[0].RelatedEntityID)
		}
		if notifications[0].ReceiverID != nil {
			t.Errorf("expected receiver-less summary notification, got receiver %s", *notifications[0].ReceiverID)
		}
	})
}

func TestEngineDividendReminder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.CreateTestAdmin(t, db)
	issuer := testutil.CreateTestIssuer(t, db)
	investor := testutil.CreateTestInvestor(t, db)

	product := testutil.CreateTestDividendProduct(t, db, issuer.ID, date(2024, time.May, 1))
	testutil.SellUnits(t, db, product, investor.ID, 100)

	mailer := &captureMailer{}
	engine := newTestEngine(db, mailer)

	// First Monday of January 2026.
	result, err := engine.RunAsOf(context.Background(), date(2026, time.January, 5))
	testutil.AssertNoError(t, err)

	if result.DividendReminders != 1 {
		t.Fatalf("expected 1 dividend reminder, got %d", result.DividendReminders)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].Subject != mail.DividendSubject {
		t.Errorf("unexpected subject %q", mailer.sent[0].Subject)
	}
	if !strings.Contains(mailer.sent[0].Body, product.Name) {
		t.Errorf("expected body to list %q, got %q", product.Name, mailer.sent[0].Body)
	}

	notifications := listNotifications(t, db, models.NotificationRemindForPayment)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 dividend notification, got %d", len(notifications))
	}
	if notifications[0].RelatedEntityID != product.ID {
		t.Errorf("expected notification for %s, got %s", product.ID, notifications[0].RelatedEntityID)
	}
}

func TestEngineRunGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	engine := newTestEngine(db, &captureMailer{})
	engine.running.Store(true)

	if _, err := engine.Run(context.Background()); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("expected ErrRunInProgress, got %v", err)
	}
}

func TestEngineMailerFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.CreateTestAdmin(t, db)
	issuer := testutil.CreateTestIssuer(t, db)
	investor := testutil.CreateTestInvestor(t, db)

	product := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, date(2024, time.January, 15), 3)
	testutil.SellUnits(t, db, product, investor.ID, 50)

	engine := newTestEngine(db, &captureMailer{failAll: true})

	// Send failures are logged, never surfaced: the run still completes
	// and persists its notifications.
	result, err := engine.RunAsOf(context.Background(), date(2025, time.March, 18))
	testutil.AssertNoError(t, err)

	if result.EmailsSent != 0 {
		t.Errorf("expected 0 emails sent, got %d", result.EmailsSent)
	}
	if n := listNotifications(t, db, models.NotificationRemindForPayment); len(n) != 1 {
		t.Errorf("expected 1 notification despite send failure, got %d", len(n))
	}
}
