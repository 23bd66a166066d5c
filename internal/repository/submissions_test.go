package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"StudioLeads/internal/model"
	pkgerrors "StudioLeads/pkg/errors"
	"StudioLeads/storage/localstore"
)

func newTestRepo(t *testing.T) *SubmissionRepository {
	t.Helper()
	store, err := localstore.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewSubmissionRepository(store, "contact_submissions")
}

func sampleSubmission(id string) model.ContactSubmission {
	return model.ContactSubmission{
		ID:        id,
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@x.com",
		Business:  "Rao Clinic",
		Location:  "Pune",
		Timestamp: "2026-08-29T10:00:00+05:30",
		Status:    model.StatusNew,
	}
}

func TestListEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	subs := repo.List(context.Background())
	require.NotNil(t, subs)
	require.Empty(t, subs)
}

func TestListCorruptDocumentTreatedAsEmpty(t *testing.T) {
	store, err := localstore.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("contact_submissions", []byte("{not json")))

	repo := NewSubmissionRepository(store, "contact_submissions")
	require.Empty(t, repo.List(context.Background()))
}

func TestPrependKeepsNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Prepend(ctx, sampleSubmission("a")))
	require.NoError(t, repo.Prepend(ctx, sampleSubmission("b")))
	require.NoError(t, repo.Prepend(ctx, sampleSubmission("c")))

	subs := repo.List(ctx)
	require.Len(t, subs, 3)
	require.Equal(t, "c", subs[0].ID)
	require.Equal(t, "b", subs[1].ID)
	require.Equal(t, "a", subs[2].ID)
}

func TestUpdateStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Prepend(ctx, sampleSubmission("a")))

	sub, err := repo.UpdateStatus(ctx, "a", model.StatusContacted)
	require.NoError(t, err)
	require.Equal(t, model.StatusContacted, sub.Status)

	// 变更已落盘
	subs := repo.List(ctx)
	require.Equal(t, model.StatusContacted, subs[0].Status)
	// 其余字段原样保留
	require.Equal(t, "Rao Clinic", subs[0].Business)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.UpdateStatus(context.Background(), "missing", model.StatusViewed)
	require.ErrorIs(t, err, pkgerrors.SubmissionNotFound)
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Prepend(ctx, sampleSubmission("a")))

	_, err := repo.UpdateStatus(ctx, "a", model.SubmissionStatus("archived"))
	require.ErrorIs(t, err, pkgerrors.StatusInvalid)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Prepend(ctx, sampleSubmission("a")))
	require.NoError(t, repo.Prepend(ctx, sampleSubmission("b")))

	require.NoError(t, repo.Delete(ctx, "a"))

	subs := repo.List(ctx)
	require.Len(t, subs, 1)
	require.Equal(t, "b", subs[0].ID)

	require.ErrorIs(t, repo.Delete(ctx, "a"), pkgerrors.SubmissionNotFound)
}
