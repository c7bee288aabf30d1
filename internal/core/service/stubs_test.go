package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// In-memory fakes shared by the service tests. They mirror the repository
// contracts closely enough to exercise the state machine and RBAC paths.

type stubAuthRepo struct {
	users  map[string]*domain.User
	admins map[string]*domain.Admin
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: map[string]*domain.User{}, admins: map[string]*domain.Admin{}}
}

func (r *stubAuthRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = strconv.Itoa(r.nextID)
	r.users[clone.ID] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) UpdateUserContact(_ context.Context, id, email, phone string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Email = email
	u.PhoneNumber = phone
	return nil
}

func (r *stubAuthRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubAuthRepo) CreateAdmin(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, exists := r.admins[admin.Username]; exists {
		return nil, domain.ErrAdminExists
	}
	r.nextID++
	clone := *admin
	clone.ID = strconv.Itoa(r.nextID)
	r.admins[admin.Username] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) FindAdminByIdentifier(_ context.Context, identifier string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Username == identifier || a.Email == identifier {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubVehicleRepo struct {
	vehicles map[string]*domain.Vehicle
}

func newStubVehicleRepo(numbers ...string) *stubVehicleRepo {
	r := &stubVehicleRepo{vehicles: map[string]*domain.Vehicle{}}
	for _, n := range numbers {
		r.vehicles[n] = &domain.Vehicle{VehicleNumber: n, OwnerName: "Owner of " + n}
	}
	return r
}

func (r *stubVehicleRepo) FindByNumber(_ context.Context, number string) (*domain.Vehicle, error) {
	v, ok := r.vehicles[number]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	clone := *v
	return &clone, nil
}

type stubViolationRepo struct {
	violations map[string]*domain.Violation
	order      []string
	nextID     int
}

func newStubViolationRepo() *stubViolationRepo {
	return &stubViolationRepo{violations: map[string]*domain.Violation{}}
}

func (r *stubViolationRepo) Create(_ context.Context, v *domain.Violation) (*domain.Violation, error) {
	r.nextID++
	clone := *v
	clone.ID = strconv.Itoa(r.nextID)
	r.violations[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	copied := clone
	return &copied, nil
}

func (r *stubViolationRepo) FindByID(_ context.Context, id string) (*domain.Violation, error) {
	v, ok := r.violations[id]
	if !ok {
		return nil, domain.ErrViolationNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubViolationRepo) List(_ context.Context, filter ports.ListViolationsFilter) ([]*domain.Violation, error) {
	var out []*domain.Violation
	for i := len(r.order) - 1; i >= 0; i-- {
		v := r.violations[r.order[i]]
		if filter.VehicleNumber != "" && v.VehicleNumber != filter.VehicleNumber {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				if v.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		clone := *v
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubViolationRepo) MarkProcessed(_ context.Context, id string, update ports.ProcessedUpdate) error {
	v, ok := r.violations[id]
	if !ok {
		return domain.ErrViolationNotFound
	}
	if !v.Status.CanTransitionTo(domain.StatusProcessed) {
		return domain.ErrInvalidTransition
	}
	v.Status = domain.StatusProcessed
	v.VehicleNumber = update.VehicleNumber
	v.ViolationType = update.ViolationType
	v.FineAmount = update.FineAmount
	v.ConfidenceScore = update.ConfidenceScore
	v.CroppedPlatePath = update.CroppedPlatePath
	return nil
}

func (r *stubViolationRepo) MarkPaid(_ context.Context, id string, paymentDate time.Time, ref string) error {
	v, ok := r.violations[id]
	if !ok {
		return domain.ErrViolationNotFound
	}
	if !v.Status.CanTransitionTo(domain.StatusPaid) {
		return domain.ErrInvalidTransition
	}
	v.Status = domain.StatusPaid
	v.PaymentDate = &paymentDate
	v.TransactionID = ref
	return nil
}

func (r *stubViolationRepo) CountByStatus(_ context.Context) (map[domain.ViolationStatus]int64, error) {
	counts := map[domain.ViolationStatus]int64{}
	for _, v := range r.violations {
		counts[v.Status]++
	}
	return counts, nil
}

func (r *stubViolationRepo) PaidTotal(_ context.Context) (float64, error) {
	var total float64
	for _, v := range r.violations {
		if v.Status == domain.StatusPaid {
			total += v.FineAmount
		}
	}
	return total, nil
}

type stubPaymentRepo struct {
	payments []*domain.Payment
	nextID   int
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	r.nextID++
	clone := *p
	clone.ID = strconv.Itoa(r.nextID)
	r.payments = append(r.payments, &clone)
	copied := clone
	return &copied, nil
}

func (r *stubPaymentRepo) ListByUser(_ context.Context, userID string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for i := len(r.payments) - 1; i >= 0; i-- {
		if r.payments[i].UserID == userID {
			clone := *r.payments[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubCameraRepo struct {
	cameras map[string]*domain.Camera
	touched []string
}

func newStubCameraRepo(cams ...*domain.Camera) *stubCameraRepo {
	r := &stubCameraRepo{cameras: map[string]*domain.Camera{}}
	for _, c := range cams {
		r.cameras[c.ID] = c
	}
	return r
}

func (r *stubCameraRepo) List(_ context.Context) ([]*domain.Camera, error) {
	var out []*domain.Camera
	for _, c := range r.cameras {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCameraRepo) FindByID(_ context.Context, id string) (*domain.Camera, error) {
	c, ok := r.cameras[id]
	if !ok {
		return nil, domain.ErrCameraNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCameraRepo) Touch(_ context.Context, id string) error {
	r.touched = append(r.touched, id)
	return nil
}

type stubSupportRepo struct {
	tickets []*domain.SupportTicket
	nextID  int
}

func (r *stubSupportRepo) Create(_ context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error) {
	r.nextID++
	clone := *t
	clone.ID = strconv.Itoa(r.nextID)
	r.tickets = append(r.tickets, &clone)
	copied := clone
	return &copied, nil
}

func (r *stubSupportRepo) ListByUser(_ context.Context, userID string) ([]*domain.SupportTicket, error) {
	var out []*domain.SupportTicket
	for i := len(r.tickets) - 1; i >= 0; i-- {
		if r.tickets[i].UserID == userID {
			clone := *r.tickets[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubDedup remembers marked keys in memory.
type stubDedup struct {
	seen map[string]bool
}

func newStubDedup() *stubDedup { return &stubDedup{seen: map[string]bool{}} }

func (d *stubDedup) key(cameraID, plate, violationType string, ts time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%d", cameraID, plate, violationType, ts.Unix())
}

func (d *stubDedup) IsDuplicate(_ context.Context, cameraID, plate, violationType string, ts time.Time) (bool, error) {
	return d.seen[d.key(cameraID, plate, violationType, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, cameraID, plate, violationType string, ts time.Time) error {
	d.seen[d.key(cameraID, plate, violationType, ts)] = true
	return nil
}
