package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"cyberguard-lab/internal/domain/models"
)

func TestIncidentRepository_MalformedIDIsNotFound(t *testing.T) {
	// id parsing happens before any collection access, so a repository
	// without a live connection exercises the full path
	repo := &IncidentRepository{}
	ctx := context.Background()

	for _, id := range []string{"not-a-hex", "", "12345", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		t.Run("id "+id, func(t *testing.T) {
			_, err := repo.GetByID(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, repo.UpdateStatus(ctx, id, models.IncidentStatusInReview, "analyst@example.com"), ErrNotFound)
			assert.ErrorIs(t, repo.ApplyReview(ctx, id, Review{}), ErrNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, id), ErrNotFound)
		})
	}
}
