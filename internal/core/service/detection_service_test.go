package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

func detectionFixture() (ports.DetectionService, *stubViolationRepo, *stubCameraRepo, *stubDedup) {
	violations := newStubViolationRepo()
	vehicles := newStubVehicleRepo("MH12AB1234")
	cameras := newStubCameraRepo(&domain.Camera{ID: "cam-1", Location: "MG Road Junction", Status: domain.CameraActive})
	dedup := newStubDedup()
	svc := NewDetectionService(violations, vehicles, cameras, dedup, zerolog.Nop())
	return svc, violations, cameras, dedup
}

func TestDetectionService_KnownPlateBecomesChallan(t *testing.T) {
	svc, violations, cameras, _ := detectionFixture()

	err := svc.Process(context.Background(), domain.Detection{
		CameraID:        "cam-1",
		PlateNumber:     "mh12ab1234",
		ViolationType:   "Red Light Jump",
		Location:        "MG Road Junction",
		Timestamp:       time.Now().UTC(),
		ConfidenceScore: 0.91,
		ImagePath:       "uploads/red-light.jpg",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	list, _ := violations.List(context.Background(), ports.ListViolationsFilter{})
	if len(list) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(list))
	}
	v := list[0]
	if v.Status != domain.StatusProcessed {
		t.Fatalf("expected processed, got %s", v.Status)
	}
	if v.VehicleNumber != "MH12AB1234" {
		t.Fatalf("plate not normalised/resolved: %s", v.VehicleNumber)
	}
	if v.FineAmount != domain.FineFor("Red Light Jump") {
		t.Fatalf("fine not assessed from schedule: %v", v.FineAmount)
	}
	if len(cameras.touched) != 1 || cameras.touched[0] != "cam-1" {
		t.Fatalf("camera heartbeat not recorded: %v", cameras.touched)
	}
}

func TestDetectionService_UnknownPlateStaysPending(t *testing.T) {
	svc, violations, _, _ := detectionFixture()

	err := svc.Process(context.Background(), domain.Detection{
		CameraID:      "cam-1",
		PlateNumber:   "KA01XX0000",
		ViolationType: "Overspeeding",
		Location:      "Ring Road",
		Timestamp:     time.Now().UTC(),
		ImagePath:     "uploads/speed.jpg",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	list, _ := violations.List(context.Background(), ports.ListViolationsFilter{})
	if len(list) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(list))
	}
	if list[0].Status != domain.StatusPending {
		t.Fatalf("unknown plate should stay pending, got %s", list[0].Status)
	}
	if list[0].VehicleNumber != "" {
		t.Fatalf("unexpected vehicle binding: %s", list[0].VehicleNumber)
	}
}

func TestDetectionService_DuplicateSkipped(t *testing.T) {
	svc, violations, _, _ := detectionFixture()

	d := domain.Detection{
		CameraID:      "cam-1",
		PlateNumber:   "MH12AB1234",
		ViolationType: "No Helmet",
		Location:      "MG Road Junction",
		Timestamp:     time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		ImagePath:     "uploads/helmet.jpg",
	}

	if err := svc.Process(context.Background(), d); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	if err := svc.Process(context.Background(), d); err != nil {
		t.Fatalf("duplicate Process: %v", err)
	}

	list, _ := violations.List(context.Background(), ports.ListViolationsFilter{})
	if len(list) != 1 {
		t.Fatalf("duplicate produced a second violation: %d", len(list))
	}
}

func TestStatsService_Snapshot(t *testing.T) {
	users := newStubAuthRepo()
	violations := newStubViolationRepo()
	cameras := newStubCameraRepo(
		&domain.Camera{ID: "cam-1", Status: domain.CameraActive},
		&domain.Camera{ID: "cam-2", Status: domain.CameraInactive},
	)

	_, _ = users.CreateUser(context.Background(), &domain.User{Email: "a@example.com"})
	seedViolation(t, violations, "MH12AB1234", domain.StatusProcessed, 1000)
	seedViolation(t, violations, "MH12AB1234", domain.StatusPaid, 500)
	seedViolation(t, violations, "", domain.StatusPending, 0)

	svc := NewStatsService(violations, cameras, users)
	stats, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if stats.TotalViolations != 3 || stats.Pending != 1 || stats.Processed != 1 || stats.Paid != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.RevenueCollected != 500 {
		t.Fatalf("expected revenue 500, got %v", stats.RevenueCollected)
	}
	if stats.TotalCameras != 2 || stats.ActiveCameras != 1 {
		t.Fatalf("unexpected camera counts: %+v", stats)
	}
	if stats.RegisteredUsers != 1 {
		t.Fatalf("expected 1 user, got %d", stats.RegisteredUsers)
	}
}

func TestSupportService_CreateAndOwnership(t *testing.T) {
	users := newStubAuthRepo()
	violations := newStubViolationRepo()
	tickets := &stubSupportRepo{}

	user, _ := users.CreateUser(context.Background(), &domain.User{
		Email:         "sahil@example.com",
		VehicleNumber: "MH12AB1234",
	})

	own := seedViolation(t, violations, "MH12AB1234", domain.StatusProcessed, 1000)
	foreign := seedViolation(t, violations, "DL05AB5678", domain.StatusProcessed, 2000)

	svc := NewSupportService(tickets, violations, users)

	ticket, err := svc.Create(context.Background(), ports.CreateTicketInput{
		UserID:      user.ID,
		Subject:     "Wrong challan",
		Description: "I was not at this junction.",
		ViolationID: own,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Status != domain.TicketOpen {
		t.Fatalf("expected open ticket, got %s", ticket.Status)
	}

	if _, err := svc.Create(context.Background(), ports.CreateTicketInput{
		UserID:      user.ID,
		Subject:     "Dispute",
		Description: "Not mine.",
		ViolationID: foreign,
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign challan, got %v", err)
	}

	list, err := svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(list))
	}
}
