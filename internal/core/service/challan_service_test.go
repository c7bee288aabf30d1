package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

func seedChallanFixture(t *testing.T) (*ChallanService, *stubAuthRepo, *stubViolationRepo, *stubPaymentRepo, string) {
	t.Helper()
	users := newStubAuthRepo()
	violations := newStubViolationRepo()
	payments := &stubPaymentRepo{}
	vehicles := newStubVehicleRepo("MH12AB1234", "DL05AB5678")

	user, err := users.CreateUser(context.Background(), &domain.User{
		FirstName:     "Sahil",
		LastName:      "Khan",
		Email:         "sahil@example.com",
		VehicleNumber: "MH12AB1234",
		Role:          domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewChallanService(violations, payments, users, vehicles, zerolog.Nop())
	return svc, users, violations, payments, user.ID
}

func seedViolation(t *testing.T, repo *stubViolationRepo, plate string, status domain.ViolationStatus, fine float64) string {
	t.Helper()
	v, err := repo.Create(context.Background(), &domain.Violation{
		ViolationType: "Red Light Jump",
		Location:      "MG Road Junction",
		Timestamp:     time.Now().UTC(),
		Status:        domain.StatusPending,
		ImagePath:     "uploads/evidence.jpg",
	})
	if err != nil {
		t.Fatalf("seed violation: %v", err)
	}
	if status == domain.StatusProcessed || status == domain.StatusPaid {
		err := repo.MarkProcessed(context.Background(), v.ID, ports.ProcessedUpdate{
			VehicleNumber: plate,
			ViolationType: "Red Light Jump",
			FineAmount:    fine,
		})
		if err != nil {
			t.Fatalf("seed processed: %v", err)
		}
	}
	if status == domain.StatusPaid {
		if err := repo.MarkPaid(context.Background(), v.ID, time.Now().UTC(), "TXN-seed"); err != nil {
			t.Fatalf("seed paid: %v", err)
		}
	}
	return v.ID
}

func TestChallanService_ListForUser_FiltersByVehicleAndStatus(t *testing.T) {
	svc, _, violations, _, userID := seedChallanFixture(t)

	seedViolation(t, violations, "MH12AB1234", domain.StatusProcessed, 1000)
	seedViolation(t, violations, "MH12AB1234", domain.StatusPaid, 500)
	seedViolation(t, violations, "DL05AB5678", domain.StatusProcessed, 2000) // other vehicle
	seedViolation(t, violations, "", domain.StatusPending, 0)                // not yet a challan

	challans, err := svc.ListForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(challans) != 2 {
		t.Fatalf("expected 2 challans, got %d", len(challans))
	}
	for _, c := range challans {
		if c.VehicleNumber != "MH12AB1234" {
			t.Fatalf("foreign challan leaked: %+v", c)
		}
		if c.Status == domain.StatusPending {
			t.Fatalf("pending violation exposed as challan")
		}
	}
}

func TestChallanService_Pay_Success(t *testing.T) {
	svc, _, violations, payments, userID := seedChallanFixture(t)
	id := seedViolation(t, violations, "MH12AB1234", domain.StatusProcessed, 1000)

	payment, err := svc.Pay(context.Background(), userID, id)
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if payment.Amount != 1000 {
		t.Fatalf("expected amount 1000, got %v", payment.Amount)
	}
	if !strings.HasPrefix(payment.TransactionRef, "TXN-") {
		t.Fatalf("unexpected transaction ref: %s", payment.TransactionRef)
	}
	if payment.Status != domain.PaymentSuccess {
		t.Fatalf("unexpected payment status: %s", payment.Status)
	}

	v, _ := violations.FindByID(context.Background(), id)
	if v.Status != domain.StatusPaid {
		t.Fatalf("violation not marked paid: %s", v.Status)
	}
	if v.TransactionID != payment.TransactionRef {
		t.Fatalf("transaction ref not echoed onto violation")
	}
	if v.PaymentDate == nil {
		t.Fatalf("payment date not set")
	}
	if len(payments.payments) != 1 {
		t.Fatalf("expected 1 payment record, got %d", len(payments.payments))
	}
}

func TestChallanService_Pay_WrongOwner(t *testing.T) {
	svc, _, violations, _, userID := seedChallanFixture(t)
	id := seedViolation(t, violations, "DL05AB5678", domain.StatusProcessed, 2000)

	if _, err := svc.Pay(context.Background(), userID, id); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestChallanService_Pay_AlreadyPaid(t *testing.T) {
	svc, _, violations, _, userID := seedChallanFixture(t)
	id := seedViolation(t, violations, "MH12AB1234", domain.StatusPaid, 500)

	if _, err := svc.Pay(context.Background(), userID, id); err != domain.ErrChallanAlreadyPaid {
		t.Fatalf("expected ErrChallanAlreadyPaid, got %v", err)
	}
}

func TestChallanService_Pay_PendingNotPayable(t *testing.T) {
	svc, users, violations, _, userID := seedChallanFixture(t)

	// A pending record carries no vehicle yet, so attach the user's plate to
	// get past the ownership check and hit the state check.
	v, _ := violations.Create(context.Background(), &domain.Violation{
		VehicleNumber: "MH12AB1234",
		ViolationType: "Processing...",
		Status:        domain.StatusPending,
	})
	_ = users // fixture user already owns MH12AB1234

	if _, err := svc.Pay(context.Background(), userID, v.ID); err != domain.ErrChallanNotPayable {
		t.Fatalf("expected ErrChallanNotPayable, got %v", err)
	}
}

func TestChallanService_ListAll_IncludesOwner(t *testing.T) {
	svc, _, violations, _, _ := seedChallanFixture(t)
	seedViolation(t, violations, "MH12AB1234", domain.StatusProcessed, 1000)

	details, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 challan, got %d", len(details))
	}
	if details[0].OwnerName != "Owner of MH12AB1234" {
		t.Fatalf("owner not resolved: %q", details[0].OwnerName)
	}
}

func TestChallanService_Payments_ScopedToUser(t *testing.T) {
	svc, _, violations, _, userID := seedChallanFixture(t)
	id := seedViolation(t, violations, "MH12AB1234", domain.StatusProcessed, 1000)

	if _, err := svc.Pay(context.Background(), userID, id); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	history, err := svc.Payments(context.Background(), userID)
	if err != nil {
		t.Fatalf("Payments: %v", err)
	}
	if len(history) != 1 || history[0].ViolationID != id {
		t.Fatalf("unexpected history: %+v", history)
	}

	other, err := svc.Payments(context.Background(), "someone-else")
	if err != nil {
		t.Fatalf("Payments for other user: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("payment leaked across users")
	}
}
