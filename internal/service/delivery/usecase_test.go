package delivery_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/clock"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/gateway/persistence"
	"furniture-delivery/internal/lifecycle"
	"furniture-delivery/internal/ordering"
	"furniture-delivery/internal/service/delivery"
	testlog "furniture-delivery/internal/testutil"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

type fixture struct {
	repo     *MockdeliveryRepository
	drivers  *MockdriverDirectory
	mailbox  *MockstatusMailbox
	tracking *MockTrackingFactory
	rejected prometheus.Counter
	log      *testlog.Recorder
	svc      *delivery.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := newCtrl(t)
	clk := clock.NewManual(fixedNow)
	f := &fixture{
		repo:     NewMockdeliveryRepository(ctrl),
		drivers:  NewMockdriverDirectory(ctrl),
		mailbox:  NewMockstatusMailbox(ctrl),
		tracking: NewMockTrackingFactory(ctrl),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{Name: "rejected_test"}),
		log:      testlog.New(),
	}
	f.svc = delivery.NewDeliveryService(delivery.Deps{
		Repo:     f.repo,
		Drivers:  f.drivers,
		Machine:  lifecycle.NewMachine(clk, time.UTC),
		Mailbox:  f.mailbox,
		Tracking: f.tracking,
		Clock:    clk,
		Metrics:  delivery.Metrics{Rejected: f.rejected},
	}, time.Second, f.log.Logger())
	return f
}

func stored(id int64, rt domain.RequestType, st domain.Status) *domain.Delivery {
	return &domain.Delivery{ID: id, TrackingNumber: fmt.Sprintf("20240501-%08X", id), RequestType: rt, Status: st}
}

func TestCreate_AssignsTrackingAndInitialStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.tracking.EXPECT().Next(fixedNow).Return("20240501-ABCDEF01")
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *domain.Delivery) (persistence.WriteResult, error) {
			require.Equal(t, domain.StatusOrderReceived, d.Status)
			require.True(t, d.Action.IsZero())
			d.ID = 11
			return persistence.WriteResult{ID: 11}, nil
		})

	got, err := f.svc.Create(context.Background(), &domain.Delivery{
		RequestType: domain.RequestGeneral,
		Status:      domain.StatusDeliveryCompleted,
		Address:     "서울시 마포구 1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), got.ID)
	require.Equal(t, "20240501-ABCDEF01", got.TrackingNumber)
	require.Equal(t, domain.StatusOrderReceived, got.Status)
}

func TestCreate_Invalid(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	cases := []*domain.Delivery{
		nil,
		{RequestType: "express", Address: "a"},
		{RequestType: domain.RequestGeneral, Address: "  "},
		{RequestType: domain.RequestGeneral, Address: "a", VisitDate: "05/01/2024"},
	}
	for _, d := range cases {
		_, err := f.svc.Create(context.Background(), d)
		require.ErrorIs(t, err, apperr.Invalid)
	}
}

func TestCreate_TrackingCollisionRetries(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	gomock.InOrder(
		f.tracking.EXPECT().Next(gomock.Any()).Return("20240501-AAAAAAAA"),
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(persistence.WriteResult{}, apperr.Conflict),
		f.tracking.EXPECT().Next(gomock.Any()).Return("20240501-BBBBBBBB"),
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(persistence.WriteResult{ID: 3}, nil),
	)

	got, err := f.svc.Create(context.Background(), &domain.Delivery{RequestType: domain.RequestCollection, Address: "a"})
	require.NoError(t, err)
	require.Equal(t, "20240501-BBBBBBBB", got.TrackingNumber)
}

func TestChangeStatus_PersistsThenRelays(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), int64(7)).Return(stored(7, domain.RequestGeneral, domain.StatusInDelivery), nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *domain.Delivery, from domain.Status) (persistence.WriteResult, error) {
			require.Equal(t, domain.StatusInDelivery, from)
			require.Equal(t, domain.StatusDeliveryCompleted, d.Status)
			require.Equal(t, domain.ActionStamp{Date: "2024-05-01", Time: "10:00"}, d.Action)
			return persistence.WriteResult{Written: []string{"status"}, Dropped: []string{"action_time"}}, nil
		})
	f.mailbox.EXPECT().Post(gomock.Any(), []domain.StatusUpdate{{
		DeliveryID: 7, Status: domain.StatusDeliveryCompleted, ActionDate: "2024-05-01", ActionTime: "10:00",
	}}).Return(nil)

	out, err := f.svc.ChangeStatus(context.Background(), 7, domain.StatusDeliveryCompleted)
	require.NoError(t, err)
	require.True(t, out.Changed)
	require.Equal(t, []string{"action_time"}, out.Dropped)
	require.NoError(t, out.MailboxErr)
	require.Equal(t, domain.StatusDeliveryCompleted, out.Delivery.Status)
}

func TestChangeStatus_InvalidTransitionWritesNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), int64(1)).Return(stored(1, domain.RequestGeneral, domain.StatusOrderReceived), nil)

	_, err := f.svc.ChangeStatus(context.Background(), 1, domain.StatusDeliveryCompleted)
	require.ErrorIs(t, err, apperr.InvalidTransition)
	require.Contains(t, err.Error(), "order_received")
	require.Contains(t, err.Error(), "delivery_completed")
	require.Equal(t, 1.0, testutil.ToFloat64(f.rejected))
}

func TestChangeStatus_SameStatusIsNoop(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), int64(2)).Return(stored(2, domain.RequestCollection, domain.StatusInCollection), nil)

	out, err := f.svc.ChangeStatus(context.Background(), 2, domain.StatusInCollection)
	require.NoError(t, err)
	require.False(t, out.Changed)
}

func TestChangeStatus_MailboxFailureDoesNotFailChange(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	boom := errors.New("storage unavailable")
	f.repo.EXPECT().Get(gomock.Any(), int64(3)).Return(stored(3, domain.RequestRemediation, domain.StatusOrderReceived), nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(persistence.WriteResult{}, nil)
	f.mailbox.EXPECT().Post(gomock.Any(), gomock.Any()).Return(boom)

	out, err := f.svc.ChangeStatus(context.Background(), 3, domain.StatusDispatchCompleted)
	require.NoError(t, err)
	require.True(t, out.Changed)
	require.ErrorIs(t, out.MailboxErr, boom)

	e, ok := f.log.Find("status relay failed")
	require.True(t, ok)
	require.Equal(t, "warn", e.Level)
}

func TestChangeStatus_SchemaIncompatibleIsNotRelayed(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), int64(4)).Return(stored(4, domain.RequestGeneral, domain.StatusOrderReceived), nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(persistence.WriteResult{},
		&apperr.StoreError{Kind: apperr.KindSchema, Op: "update deliveries", Missing: []string{"status"}})

	_, err := f.svc.ChangeStatus(context.Background(), 4, domain.StatusDispatchCompleted)
	require.ErrorIs(t, err, apperr.SchemaIncompatible)
}

func TestChangeStatus_ConcurrentCancelWins(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	cancelled := stored(8, domain.RequestGeneral, domain.StatusCancelled)
	cancelled.Cancellation = &domain.Cancellation{Reason: "customer refused", At: fixedNow}
	gomock.InOrder(
		f.repo.EXPECT().Get(gomock.Any(), int64(8)).Return(stored(8, domain.RequestGeneral, domain.StatusInDelivery), nil),
		f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.StatusInDelivery).
			Return(persistence.WriteResult{}, fmt.Errorf("delivery 8 is now cancelled: %w", apperr.Conflict)),
		f.repo.EXPECT().Get(gomock.Any(), int64(8)).Return(cancelled, nil),
	)

	_, err := f.svc.ChangeStatus(context.Background(), 8, domain.StatusDeliveryCompleted)
	require.ErrorIs(t, err, apperr.InvalidTransition)
	require.True(t, f.log.Has("status changed concurrently, deciding again"))
	require.False(t, f.log.Has("status change not persisted"))
}

func TestChangeStatus_ConcurrentChangeRedecided(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	postponed := stored(10, domain.RequestGeneral, domain.StatusPostponed)
	postponed.Postponement = &domain.Postponement{From: domain.StatusDispatchCompleted}
	gomock.InOrder(
		f.repo.EXPECT().Get(gomock.Any(), int64(10)).Return(stored(10, domain.RequestGeneral, domain.StatusDispatchCompleted), nil),
		f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.StatusDispatchCompleted).
			Return(persistence.WriteResult{}, apperr.Conflict),
		f.repo.EXPECT().Get(gomock.Any(), int64(10)).Return(postponed, nil),
		f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.StatusPostponed).
			Return(persistence.WriteResult{}, nil),
	)
	f.mailbox.EXPECT().Post(gomock.Any(), gomock.Len(1)).Return(nil)

	out, err := f.svc.ChangeStatus(context.Background(), 10, domain.StatusInDelivery)
	require.NoError(t, err)
	require.True(t, out.Changed)
	require.Equal(t, domain.StatusInDelivery, out.Delivery.Status)
}

func TestChangeStatus_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), int64(9)).Return(nil, apperr.NotFound)

	_, err := f.svc.ChangeStatus(context.Background(), 9, domain.StatusInDelivery)
	require.ErrorIs(t, err, apperr.NotFound)
}

func TestCancel_RecordsReason(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), int64(5)).Return(stored(5, domain.RequestGeneral, domain.StatusInDelivery), nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *domain.Delivery, _ domain.Status) (persistence.WriteResult, error) {
			require.NotNil(t, d.Cancellation)
			require.Equal(t, "customer refused", d.Cancellation.Reason)
			return persistence.WriteResult{}, nil
		})
	f.mailbox.EXPECT().Post(gomock.Any(), gomock.Any()).Return(nil)

	out, err := f.svc.Cancel(context.Background(), 5, "customer refused")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, out.Delivery.Status)
}

func TestPostpone_MovesVisitDate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), int64(6)).Return(stored(6, domain.RequestGeneral, domain.StatusDispatchCompleted), nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(persistence.WriteResult{}, nil)
	f.mailbox.EXPECT().Post(gomock.Any(), gomock.Any()).Return(nil)

	out, err := f.svc.Postpone(context.Background(), 6, "2024-05-09", "customer away")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPostponed, out.Delivery.Status)
	require.Equal(t, "2024-05-09", out.Delivery.VisitDate)
	require.Equal(t, domain.StatusDispatchCompleted, out.Delivery.Postponement.From)
}

func TestBatchChangeStatus_PartialSuccessOneRelay(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), int64(1)).Return(stored(1, domain.RequestGeneral, domain.StatusOrderReceived), nil)
	f.repo.EXPECT().Get(gomock.Any(), int64(2)).Return(stored(2, domain.RequestGeneral, domain.StatusInDelivery), nil)
	f.repo.EXPECT().Get(gomock.Any(), int64(3)).Return(nil, apperr.NotFound)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(persistence.WriteResult{}, nil).Times(1)
	f.mailbox.EXPECT().Post(gomock.Any(), gomock.Len(1)).Return(nil)

	out, err := f.svc.BatchChangeStatus(context.Background(), []int64{1, 2, 3}, domain.StatusDispatchCompleted)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	require.NoError(t, out.Items[0].Err)
	require.Equal(t, domain.StatusDispatchCompleted, out.Items[0].Status)
	require.ErrorIs(t, out.Items[1].Err, apperr.InvalidTransition)
	require.ErrorIs(t, out.Items[2].Err, apperr.NotFound)
	require.Equal(t, 1, out.Succeeded())
}

func TestBatchChangeStatus_Empty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.BatchChangeStatus(context.Background(), nil, domain.StatusInDelivery)
	require.ErrorIs(t, err, apperr.Invalid)
}

func TestAssignDriver(t *testing.T) {
	t.Parallel()

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), int64(1)).Return(stored(1, domain.RequestGeneral, domain.StatusOrderReceived), nil)
		f.drivers.EXPECT().Exists(gomock.Any(), int64(77)).Return(false, nil)

		_, err := f.svc.AssignDriver(context.Background(), 1, 77)
		require.ErrorIs(t, err, apperr.NotFound)
	})

	t.Run("cancelled delivery", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), int64(1)).Return(stored(1, domain.RequestGeneral, domain.StatusCancelled), nil)

		_, err := f.svc.AssignDriver(context.Background(), 1, 77)
		require.ErrorIs(t, err, apperr.Conflict)
	})

	t.Run("assigned", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), int64(1)).Return(stored(1, domain.RequestGeneral, domain.StatusOrderReceived), nil)
		f.drivers.EXPECT().Exists(gomock.Any(), int64(77)).Return(true, nil)
		f.repo.EXPECT().SetDriver(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, driverID *int64) error {
				require.NotNil(t, driverID)
				require.Equal(t, int64(77), *driverID)
				return nil
			})

		d, err := f.svc.AssignDriver(context.Background(), 1, 77)
		require.NoError(t, err)
		require.Equal(t, int64(77), *d.DriverID)
	})
}

func TestUnassignDriver(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.repo.EXPECT().SetDriver(gomock.Any(), int64(4), (*int64)(nil)).Return(nil)
	require.NoError(t, f.svc.UnassignDriver(context.Background(), 4))
}

func TestSaveManualOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	require.ErrorIs(t, f.svc.SaveManualOrder(context.Background(), nil), apperr.Invalid)
	require.ErrorIs(t, f.svc.SaveManualOrder(context.Background(), []int64{1, 2, 1}), apperr.Invalid)

	f.repo.EXPECT().SaveOrder(gomock.Any(), []int64{3, 1, 2}).Return(nil)
	require.NoError(t, f.svc.SaveManualOrder(context.Background(), []int64{3, 1, 2}))
}

func TestList_AppliesOrdering(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)
	repo := NewMockdeliveryRepository(ctrl)
	sorter := NewMocklistSorter(ctrl)

	in := []domain.Delivery{{ID: 1}, {ID: 2}}
	repo.EXPECT().List(gomock.Any(), domain.DeliveryFilter{}).Return(in, nil)
	sorter.EXPECT().Sort(ordering.ModeAuto, in).Return([]domain.Delivery{{ID: 2}, {ID: 1}})

	svc := delivery.NewDeliveryService(delivery.Deps{Repo: repo, Sorter: sorter}, time.Second, nil)
	got, err := svc.List(context.Background(), domain.DeliveryFilter{}, ordering.ModeAuto)
	require.NoError(t, err)
	require.Equal(t, int64(2), got[0].ID)
}

func TestTrackingFactory_Format(t *testing.T) {
	t.Parallel()

	f := delivery.NewTrackingFactory()
	a := f.Next(fixedNow)
	b := f.Next(fixedNow)
	require.Regexp(t, regexp.MustCompile(`^20240501-[0-9A-F]{8}$`), a)
	require.NotEqual(t, a, b)
}
