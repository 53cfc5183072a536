package camerareview

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/backend/internal/domain/audit"
	"github.com/transitops/backend/internal/domain/camerareview"
	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/domain/shared"
)

type fakeRepo struct {
	records map[uuid.UUID]*camerareview.Record
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]*camerareview.Record)}
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*camerareview.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) FindAll(_ context.Context, _ shared.Filter) ([]camerareview.Record, error) {
	out := make([]camerareview.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeRepo) Save(_ context.Context, r *camerareview.Record) error {
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

type fakeCatalog struct {
	cutVideoCodes map[int]bool
}

func (f *fakeCatalog) RequiresCutVideo(_ context.Context, code int) (bool, error) {
	return f.cutVideoCodes[code], nil
}

func supervisor() identity.Actor {
	return identity.Actor{
		ID:           21,
		Registration: "310200",
		Name:         "Marcos Leme",
		Departments:  []int{identity.DepartmentCameraReview},
		AccessLevels: []identity.AccessLevel{{Department: identity.DepartmentCameraReview, Level: 1}},
	}
}

func member() identity.Actor {
	a := supervisor()
	a.AccessLevels = nil
	return a
}

func createReq(occurrenceCode int) CreateRequest {
	now := time.Now()
	return CreateRequest{
		Car:            "4412",
		BusLine:        "6030-10",
		OccurrenceCode: occurrenceCode,
		Comment:        "passenger altercation near the rear door",
		DateOccurrence: now.Add(-3 * time.Hour),
		DateCamera:     now,
	}
}

func reviewReq(version int) ReviewRequest {
	return ReviewRequest{
		DateReview: time.Now(),
		ReviewedBy: "310200",
		ThereVideo: true,
		VideoPath:  "/footage/4412/2026-08-29.mp4",
		Version:    version,
	}
}

func setup() *Service {
	catalog := &fakeCatalog{cutVideoCodes: map[int]bool{40: true}}
	return NewService(newFakeRepo(), &fakeAuditRepo{}, catalog, nil)
}

func TestService_Create(t *testing.T) {
	svc := setup()
	ctx := context.Background()

	t.Run("cut-video flag comes from the catalog", func(t *testing.T) {
		resp, err := svc.Create(ctx, member(), createReq(40))
		require.NoError(t, err)
		assert.True(t, resp.RequiresCutVideo)

		resp, err = svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)
		assert.False(t, resp.RequiresCutVideo)
	})

	t.Run("outsider is refused", func(t *testing.T) {
		outsider := identity.Actor{ID: 5, Departments: []int{identity.DepartmentMaintenance}}
		_, err := svc.Create(ctx, outsider, createReq(40))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("requires elevated access", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		_, err = svc.Approve(ctx, member(), resp.ID, resp.Version)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
	})

	t.Run("cut-video occurrence passes through the cut stage", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(40))
		require.NoError(t, err)

		atReview, err := svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)
		assert.Equal(t, int(camerareview.StatusAwaitingCameraReview), atReview.Status)

		reviewed, err := svc.RecordReview(ctx, member(), resp.ID, reviewReq(atReview.Version))
		require.NoError(t, err)

		atCut, err := svc.Approve(ctx, supervisor(), resp.ID, reviewed.Version)
		require.NoError(t, err)
		assert.Equal(t, int(camerareview.StatusAwaitingCutVideo), atCut.Status)

		finished, err := svc.Approve(ctx, supervisor(), resp.ID, atCut.Version)
		require.NoError(t, err)
		assert.Equal(t, int(camerareview.StatusFinished), finished.Status)
	})

	t.Run("plain occurrence finishes straight from review", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		atReview, err := svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)
		reviewed, err := svc.RecordReview(ctx, member(), resp.ID, reviewReq(atReview.Version))
		require.NoError(t, err)

		finished, err := svc.Approve(ctx, supervisor(), resp.ID, reviewed.Version)
		require.NoError(t, err)
		assert.Equal(t, int(camerareview.StatusFinished), finished.Status)
	})

	t.Run("review stage approval needs review data", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		atReview, err := svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)

		_, err = svc.Approve(ctx, supervisor(), resp.ID, atReview.Version)
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
	})

	t.Run("claimed video requires a path", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		atReview, err := svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)

		req := reviewReq(atReview.Version)
		req.VideoPath = ""
		reviewed, err := svc.RecordReview(ctx, member(), resp.ID, req)
		require.NoError(t, err)

		_, err = svc.Approve(ctx, supervisor(), resp.ID, reviewed.Version)
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("video_path"))
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		_, err = svc.Approve(ctx, supervisor(), resp.ID, resp.Version+1)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "STALE_EDIT", derr.Code)
	})
}

func TestService_Reprove(t *testing.T) {
	svc := setup()
	ctx := context.Background()

	resp, err := svc.Create(ctx, member(), createReq(41))
	require.NoError(t, err)
	atReview, err := svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
	require.NoError(t, err)

	reproved, err := svc.Reprove(ctx, supervisor(), resp.ID, atReview.Version)
	require.NoError(t, err)
	assert.Equal(t, int(camerareview.StatusAwaitingMonitoring), reproved.Status)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("request fields can be corrected", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		updated, err := svc.Update(ctx, member(), resp.ID, UpdateRequest{
			Car: "4413", BusLine: "6030-10", OccurrenceCode: 41,
			Comment:        "wrong car picked on the form",
			DateOccurrence: resp.DateOccurrence, DateCamera: resp.DateCamera,
			Version: resp.Version,
		})
		require.NoError(t, err)
		assert.Equal(t, "4413", updated.Car)
		assert.Equal(t, resp.Version+1, updated.Version)
	})

	t.Run("a changed occurrence code re-resolves the cut-video flag", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)
		require.False(t, resp.RequiresCutVideo)

		updated, err := svc.Update(ctx, member(), resp.ID, UpdateRequest{
			Car: "4412", BusLine: "6030-10", OccurrenceCode: 40,
			Comment:        resp.Comment,
			DateOccurrence: resp.DateOccurrence, DateCamera: resp.DateCamera,
			Version: resp.Version,
		})
		require.NoError(t, err)
		assert.True(t, updated.RequiresCutVideo)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		_, err = svc.Update(ctx, member(), resp.ID, UpdateRequest{
			Car: "4412", BusLine: "6030-10", OccurrenceCode: 41,
			DateOccurrence: resp.DateOccurrence, DateCamera: resp.DateCamera,
			Version: resp.Version + 5,
		})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "STALE_EDIT", derr.Code)
	})

	t.Run("finished records cannot be edited", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)
		atReview, err := svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)
		reviewed, err := svc.RecordReview(ctx, member(), resp.ID, reviewReq(atReview.Version))
		require.NoError(t, err)
		finished, err := svc.Approve(ctx, supervisor(), resp.ID, reviewed.Version)
		require.NoError(t, err)
		require.Equal(t, int(camerareview.StatusFinished), finished.Status)

		_, err = svc.Update(ctx, member(), resp.ID, UpdateRequest{
			Car: "4412", BusLine: "6030-10", OccurrenceCode: 41,
			DateOccurrence: resp.DateOccurrence, DateCamera: resp.DateCamera,
			Version: finished.Version,
		})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("initial stage can be deleted", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, member(), resp.ID))
	})

	t.Run("a member who did not request it is refused", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		other := member()
		other.ID = 22
		other.Registration = "310299"
		err = svc.Delete(ctx, other, resp.ID)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
	})

	t.Run("a supervisor can delete another member's record", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)

		sup := supervisor()
		sup.ID = 22
		sup.Registration = "310299"
		require.NoError(t, svc.Delete(ctx, sup, resp.ID))
	})

	t.Run("reviewed records cannot be deleted", func(t *testing.T) {
		svc := setup()
		resp, err := svc.Create(ctx, member(), createReq(41))
		require.NoError(t, err)
		_, err = svc.Approve(ctx, supervisor(), resp.ID, resp.Version)
		require.NoError(t, err)

		err = svc.Delete(ctx, member(), resp.ID)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}
