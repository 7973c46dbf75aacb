package services

import (
	"testing"
	"time"

	"fundwerk/internal/models"
	"fundwerk/internal/testutil"
)

func TestFindByStatus(t *testing.T) {
	t.Run("returns_only_matching_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		issuer := testutil.CreateTestIssuer(t, db)

		active := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, time.Now(), 3)
		inactive := testutil.CreateTestDividendProduct(t, db, issuer.ID, time.Now())
		if err := db.Model(inactive).Update("status", models.ProductStatusInactive).Error; err != nil {
			t.Fatalf("failed to deactivate product: %v", err)
		}

		products, err := svc.FindByStatus(models.ProductStatusActive)
		testutil.AssertNoError(t, err)

		if len(products) != 1 {
			t.Fatalf("expected 1 product, got %d", len(products))
		}
		if products[0].ID != active.ID {
			t.Errorf("expected product %s, got %s", active.ID, products[0].ID)
		}
	})

	t.Run("preloads_issuer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		issuer := testutil.CreateTestIssuer(t, db)
		testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, time.Now(), 3)

		products, err := svc.FindByStatus(models.ProductStatusActive)
		testutil.AssertNoError(t, err)

		if products[0].Issuer.Email != issuer.Email {
			t.Errorf("expected preloaded issuer %s, got %q", issuer.Email, products[0].Issuer.Email)
		}
	})

	t.Run("orders_by_listing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		issuer := testutil.CreateTestIssuer(t, db)

		later := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 3)
		earlier := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 3)

		products, err := svc.FindByStatus(models.ProductStatusActive)
		testutil.AssertNoError(t, err)

		if len(products) != 2 || products[0].ID != earlier.ID || products[1].ID != later.ID {
			t.Errorf("expected listing-date order [%s %s], got %d products", earlier.ID, later.ID, len(products))
		}
	})

	t.Run("empty_result", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		products, err := svc.FindByStatus(models.ProductStatusActive)
		testutil.AssertNoError(t, err)
		if len(products) != 0 {
			t.Errorf("expected no products, got %d", len(products))
		}
	})
}

func TestMarkMatured(t *testing.T) {
	t.Run("flips_active_to_inactive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		issuer := testutil.CreateTestIssuer(t, db)
		product := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, time.Now(), 3)

		testutil.AssertNoError(t, svc.MarkMatured(product.ID))

		var reloaded models.Product
		testutil.AssertNoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
		if reloaded.Status != models.ProductStatusInactive {
			t.Errorf("expected inactive, got %s", reloaded.Status)
		}
	})

	t.Run("repeated_flip_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		issuer := testutil.CreateTestIssuer(t, db)
		product := testutil.CreateTestInterestProduct(t, db, issuer.ID, models.FrequencyQuarterly, time.Now(), 3)

		testutil.AssertNoError(t, svc.MarkMatured(product.ID))
		testutil.AssertNoError(t, svc.MarkMatured(product.ID))
	})

	t.Run("unknown_product_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		testutil.AssertNoError(t, svc.MarkMatured("0198c5f0-0000-7000-8000-000000000000"))
	})
}
