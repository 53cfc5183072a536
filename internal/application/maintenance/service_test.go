package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/backend/internal/domain/audit"
	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/domain/maintenance"
	"github.com/transitops/backend/internal/domain/shared"
)

type fakeRepo struct {
	records map[uuid.UUID]*maintenance.Record
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]*maintenance.Record)}
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*maintenance.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) FindAll(_ context.Context, _ shared.Filter) ([]maintenance.Record, error) {
	out := make([]maintenance.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeRepo) Save(_ context.Context, r *maintenance.Record) error {
	cp := *r
	f.records[r.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeAuditRepo struct {
	entries []audit.Entry
}

func (f *fakeAuditRepo) Append(_ context.Context, e audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditRepo) FindByRecord(_ context.Context, kind string, id uuid.UUID) ([]audit.Entry, error) {
	var out []audit.Entry
	for _, e := range f.entries {
		if e.RecordKind == kind && e.RecordID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func member() identity.Actor {
	return identity.Actor{
		ID:           7,
		Registration: "120455",
		Name:         "Ana Dias",
		Departments:  []int{identity.DepartmentMaintenance},
	}
}

func supervisor() identity.Actor {
	a := member()
	a.AccessLevels = []identity.AccessLevel{{Department: identity.DepartmentMaintenance, Level: 1}}
	return a
}

func outsider() identity.Actor {
	return identity.Actor{ID: 9, Registration: "999999", Departments: []int{identity.DepartmentMonitoring}}
}

func createReq() CreateRequest {
	return CreateRequest{
		Car:             "2105",
		BusLine:         "8000-10",
		MaintenanceType: 3,
		Detail:          7,
		Comments:        "engine overheating on terminal loop",
		DateMaintenance: time.Now(),
	}
}

func setup() (*Service, *fakeRepo, *fakeAuditRepo) {
	repo := newFakeRepo()
	auditRepo := &fakeAuditRepo{}
	return NewService(repo, auditRepo, nil), repo, auditRepo
}

func TestService_Create(t *testing.T) {
	svc, _, auditRepo := setup()
	ctx := context.Background()

	t.Run("member can create", func(t *testing.T) {
		resp, err := svc.Create(ctx, member(), createReq())
		require.NoError(t, err)
		assert.Equal(t, int(maintenance.StatusAwaitingMaintenance), resp.Status)
		assert.Equal(t, "120455", resp.ReportedBy)
		assert.Len(t, auditRepo.entries, 1)
		assert.Equal(t, "create", auditRepo.entries[0].Action)
	})

	t.Run("outsider is refused", func(t *testing.T) {
		_, err := svc.Create(ctx, outsider(), createReq())
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("membership alone is insufficient", func(t *testing.T) {
		svc, _, _ := setup()
		resp, err := svc.Create(ctx, member(), createReq())
		require.NoError(t, err)

		_, err = svc.Approve(ctx, member(), resp.ID, resp.Version)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
	})

	t.Run("supervisor approves", func(t *testing.T) {
		svc, _, auditRepo := setup()
		resp, err := svc.Create(ctx, member(), createReq())
		require.NoError(t, err)

		approved, err := svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)
		assert.Equal(t, int(maintenance.StatusApproved), approved.Status)
		assert.Equal(t, "120455", approved.Approver)
		assert.Equal(t, "approve", auditRepo.entries[len(auditRepo.entries)-1].Action)
	})

	t.Run("stale version is rejected before any change", func(t *testing.T) {
		svc, repo, _ := setup()
		resp, err := svc.Create(ctx, member(), createReq())
		require.NoError(t, err)

		_, err = svc.Approve(ctx, supervisor(), resp.ID, resp.Version-1)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "STALE_EDIT", derr.Code)

		stored := repo.records[resp.ID]
		assert.Equal(t, maintenance.StatusAwaitingMaintenance, stored.Status)
	})

	t.Run("unknown record", func(t *testing.T) {
		svc, _, _ := setup()
		_, err := svc.Approve(ctx, supervisor(), uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	resp, err := svc.Create(ctx, member(), createReq())
	require.NoError(t, err)

	t.Run("approved records cannot be edited", func(t *testing.T) {
		approved, err := svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)

		req := UpdateRequest{
			Car: "2106", BusLine: "8000-10", MaintenanceType: 3, Detail: 7,
			Comments: "updated comments text", DateMaintenance: time.Now(),
			Version: approved.Version,
		}
		_, err = svc.Update(ctx, member(), resp.ID, req)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("initial stage can be deleted", func(t *testing.T) {
		svc, _, _ := setup()
		resp, err := svc.Create(ctx, member(), createReq())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, member(), resp.ID))
		_, err = svc.GetByID(ctx, resp.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("a member who did not report it is refused", func(t *testing.T) {
		svc, _, _ := setup()
		resp, err := svc.Create(ctx, member(), createReq())
		require.NoError(t, err)

		colleague := member()
		colleague.ID = 8
		colleague.Registration = "130771"
		err = svc.Delete(ctx, colleague, resp.ID)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
	})

	t.Run("a supervisor may delete another member's record", func(t *testing.T) {
		svc, _, _ := setup()
		resp, err := svc.Create(ctx, member(), createReq())
		require.NoError(t, err)

		sup := supervisor()
		sup.ID = 8
		sup.Registration = "130771"
		require.NoError(t, svc.Delete(ctx, sup, resp.ID))
	})

	t.Run("approved records cannot be deleted", func(t *testing.T) {
		svc, _, _ := setup()
		resp, err := svc.Create(ctx, member(), createReq())
		require.NoError(t, err)
		_, err = svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)

		err = svc.Delete(ctx, member(), resp.ID)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}
