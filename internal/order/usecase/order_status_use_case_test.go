package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"qrmenu/internal/cache"
	"qrmenu/internal/domain"
	apperrors "qrmenu/internal/errors"
)

// statefulOrderRepo keeps a single order in memory so status updates
// and deletes are observable across calls.
type statefulOrderRepo struct {
	order   *domain.Order
	deleted bool
}

func (r *statefulOrderRepo) asMock() *mockOrderRepository {
	return &mockOrderRepository{
		FindByIDWithItemsFunc: func(ctx context.Context, id uint64) (*domain.Order, error) {
			if r.deleted || r.order == nil || r.order.ID != id {
				return nil, apperrors.NewNotFoundError("order not found")
			}
			copied := *r.order
			return &copied, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint64, status domain.OrderStatus) error {
			if r.deleted || r.order == nil || r.order.ID != id {
				return apperrors.NewNotFoundError("order not found")
			}
			r.order.Status = status
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uint64) error {
			if r.deleted || r.order == nil || r.order.ID != id {
				return apperrors.NewNotFoundError("order not found")
			}
			r.deleted = true
			return nil
		},
	}
}

func newTestStatusUseCase(repo *statefulOrderRepo, strict bool, notifier *recordingNotifier, views *recordingInvalidator) *OrderStatusUseCase {
	return NewOrderStatusUseCase(repo.asMock(), ownedPlace(1, 10), notifier, views, strict, zap.NewNop())
}

func pendingOrder(id uint64) *statefulOrderRepo {
	return &statefulOrderRepo{order: &domain.Order{ID: id, PlaceID: 1, Status: domain.OrderStatusPending}}
}

func TestUpdateStatus_UnrecognizedStatusRejected(t *testing.T) {
	repo := pendingOrder(5)
	uc := newTestStatusUseCase(repo, false, &recordingNotifier{}, &recordingInvalidator{})

	_, err := uc.UpdateStatus(context.Background(), 10, 5, "finished")

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.order.Status != domain.OrderStatusPending {
		t.Errorf("order must be untouched, got status %s", repo.order.Status)
	}
}

func TestUpdateStatus_ForbiddenForNonOwner(t *testing.T) {
	repo := pendingOrder(5)
	uc := newTestStatusUseCase(repo, false, &recordingNotifier{}, &recordingInvalidator{})

	_, err := uc.UpdateStatus(context.Background(), 99, 5, "preparing")

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestUpdateStatus_PermissiveModeAllowsAnyRecognizedStatus(t *testing.T) {
	repo := &statefulOrderRepo{order: &domain.Order{ID: 5, PlaceID: 1, Status: domain.OrderStatusServed}}
	notifier := &recordingNotifier{}
	uc := newTestStatusUseCase(repo, false, notifier, &recordingInvalidator{})

	// a served order going back to pending is a correction, allowed by default
	order, err := uc.UpdateStatus(context.Background(), 10, 5, "pending")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected pending, got %s", order.Status)
	}
	if len(notifier.statusChanges) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(notifier.statusChanges))
	}
	change := notifier.statusChanges[0]
	if change.oldStatus != domain.OrderStatusServed || change.newStatus != domain.OrderStatusPending {
		t.Errorf("broadcast carries %s -> %s, want served -> pending", change.oldStatus, change.newStatus)
	}
}

func TestUpdateStatus_StrictModeRejectsBackwardTransition(t *testing.T) {
	repo := &statefulOrderRepo{order: &domain.Order{ID: 5, PlaceID: 1, Status: domain.OrderStatusServed}}
	notifier := &recordingNotifier{}
	uc := newTestStatusUseCase(repo, true, notifier, &recordingInvalidator{})

	_, err := uc.UpdateStatus(context.Background(), 10, 5, "pending")

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.order.Status != domain.OrderStatusServed {
		t.Errorf("order must be untouched, got status %s", repo.order.Status)
	}
	if len(notifier.statusChanges) != 0 {
		t.Error("no broadcast may happen for a rejected transition")
	}
}

func TestUpdateStatus_StrictModeAllowsForwardTransition(t *testing.T) {
	repo := pendingOrder(5)
	uc := newTestStatusUseCase(repo, true, &recordingNotifier{}, &recordingInvalidator{})

	order, err := uc.UpdateStatus(context.Background(), 10, 5, "preparing")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if order.Status != domain.OrderStatusPreparing {
		t.Errorf("expected preparing, got %s", order.Status)
	}
}

func TestUpdateStatus_LegacyNewNormalizedToPending(t *testing.T) {
	repo := &statefulOrderRepo{order: &domain.Order{ID: 5, PlaceID: 1, Status: domain.OrderStatusPreparing}}
	uc := newTestStatusUseCase(repo, false, &recordingNotifier{}, &recordingInvalidator{})

	order, err := uc.UpdateStatus(context.Background(), 10, 5, "new")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected legacy new to persist as pending, got %s", order.Status)
	}
}

func TestUpdateStatus_InvalidatesStatsView(t *testing.T) {
	repo := pendingOrder(5)
	views := &recordingInvalidator{}
	uc := newTestStatusUseCase(repo, false, &recordingNotifier{}, views)

	if _, err := uc.UpdateStatus(context.Background(), 10, 5, "ready"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if !views.contains(cache.PlaceStatsKey(1)) {
		t.Error("place stats view was not invalidated")
	}
}

func TestCancelPublic_PendingOrderDeleted(t *testing.T) {
	repo := pendingOrder(5)
	notifier := &recordingNotifier{}
	views := &recordingInvalidator{}
	uc := newTestStatusUseCase(repo, false, notifier, views)

	result, err := uc.CancelPublic(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if result.ID != 5 || !result.Deleted {
		t.Errorf("unexpected result %+v", result)
	}
	if !repo.deleted {
		t.Error("order row must be deleted after a public cancel")
	}
	if len(notifier.statusChanges) != 1 || notifier.statusChanges[0].newStatus != domain.OrderStatusCancelled {
		t.Errorf("expected one cancelled broadcast, got %+v", notifier.statusChanges)
	}
	if !views.contains(cache.PlaceStatsKey(1)) {
		t.Error("place stats view was not invalidated")
	}
}

func TestCancelPublic_RejectedOnceInPreparation(t *testing.T) {
	repo := &statefulOrderRepo{order: &domain.Order{ID: 5, PlaceID: 1, Status: domain.OrderStatusPreparing}}
	notifier := &recordingNotifier{}
	uc := newTestStatusUseCase(repo, false, notifier, &recordingInvalidator{})

	_, err := uc.CancelPublic(context.Background(), 1, 5)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.deleted {
		t.Error("order must survive a rejected cancel")
	}
	if repo.order.Status != domain.OrderStatusPreparing {
		t.Errorf("order must be untouched, got status %s", repo.order.Status)
	}
	if len(notifier.statusChanges) != 0 {
		t.Error("no broadcast may happen for a rejected cancel")
	}
}

func TestCancelPublic_LegacyNewStatusStillCancellable(t *testing.T) {
	repo := &statefulOrderRepo{order: &domain.Order{ID: 5, PlaceID: 1, Status: domain.OrderStatusNew}}
	uc := newTestStatusUseCase(repo, false, &recordingNotifier{}, &recordingInvalidator{})

	result, err := uc.CancelPublic(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !result.Deleted {
		t.Error("expected deleted result")
	}
}

func TestCancelPublic_WrongPlaceLooksLikeMissingOrder(t *testing.T) {
	repo := pendingOrder(5)
	uc := newTestStatusUseCase(repo, false, &recordingNotifier{}, &recordingInvalidator{})

	_, err := uc.CancelPublic(context.Background(), 2, 5)

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if repo.deleted {
		t.Error("order of another place must not be deleted")
	}
}

func TestDelete_OwnerHardDeletesAnyStatus(t *testing.T) {
	repo := &statefulOrderRepo{order: &domain.Order{ID: 5, PlaceID: 1, Status: domain.OrderStatusServed}}
	views := &recordingInvalidator{}
	uc := newTestStatusUseCase(repo, false, &recordingNotifier{}, views)

	result, err := uc.Delete(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if !result.Deleted || !repo.deleted {
		t.Error("expected the order to be deleted")
	}
	if !views.contains(cache.PlaceStatsKey(1)) {
		t.Error("place stats view was not invalidated")
	}
}

func TestDelete_ForbiddenForNonOwner(t *testing.T) {
	repo := pendingOrder(5)
	uc := newTestStatusUseCase(repo, false, &recordingNotifier{}, &recordingInvalidator{})

	_, err := uc.Delete(context.Background(), 99, 5)

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if repo.deleted {
		t.Error("order must survive a forbidden delete")
	}
}
