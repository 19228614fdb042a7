package feedback

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefinder/backend/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fb := &domain.Feedback{
		Satisfaction: 4,
		Relevant:     true,
		Criteria: domain.Criteria{
			Cuisines: []string{"indian"},
			Budget:   "medium",
			Location: "bangalore",
			Strategy: domain.StrategyVotesHeavy,
		},
	}
	require.NoError(t, store.Save(ctx, fb))
	assert.NotEmpty(t, fb.ID)
	assert.False(t, fb.CreatedAt.IsZero())

	got, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, fb.ID, got[0].ID)
	assert.Equal(t, 4, got[0].Satisfaction)
	assert.True(t, got[0].Relevant)
	assert.Equal(t, []string{"indian"}, got[0].Criteria.Cuisines)
	assert.Equal(t, domain.StrategyVotesHeavy, got[0].Criteria.Strategy)
}

func TestSave_RejectsOutOfRangeSatisfaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, satisfaction := range []int{0, 6, -1} {
		err := store.Save(ctx, &domain.Feedback{Satisfaction: satisfaction})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, "satisfaction %d", satisfaction)
	}

	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrInvalidRequest)
}

func TestRecent_LimitAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Save(ctx, &domain.Feedback{Satisfaction: (i % 5) + 1}))
	}

	got, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRecent_Empty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
