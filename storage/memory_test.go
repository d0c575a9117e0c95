package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ruteri/trainer-intake/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrainer(id, cref string) *interfaces.TrainerApplication {
	return &interfaces.TrainerApplication{
		ID:                      id,
		Name:                    "Trainer " + id,
		DateOfBirth:             time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:                  interfaces.GenderOther,
		StudentGenderPreference: interfaces.PreferenceEveryone,
		Academies:               "Smart Fit",
		Cref:                    cref,
		CrefValidity:            time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Whatsapp:                "11999999999",
		Email:                   id + "@example.com",
		ContactConsent:          true,
	}
}

func TestMemoryStore_CreateAndList(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		created, err := store.Create(ctx, newTrainer(fmt.Sprintf("id-%d", i), fmt.Sprintf("CREF-%d", i)))
		require.NoError(t, err)
		assert.False(t, created.CreatedAt.IsZero())
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "id-2", all[0].ID)
	assert.Equal(t, "id-1", all[1].ID)
	assert.Equal(t, "id-0", all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "id-2", limited[0].ID)
}

func TestMemoryStore_SameTimestampNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	ctx := context.Background()
	_, err := store.Create(ctx, newTrainer("a", "CREF-A"))
	require.NoError(t, err)
	_, err = store.Create(ctx, newTrainer("b", "CREF-B"))
	require.NoError(t, err)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, []string{all[0].ID, all[1].ID})
}

func TestMemoryStore_DuplicateCref(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Create(ctx, newTrainer("first", "123456-G/SP"))
	require.NoError(t, err)

	_, err = store.Create(ctx, newTrainer("second", "123456-G/SP"))
	assert.ErrorIs(t, err, interfaces.ErrDuplicateCref)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "first", all[0].ID)
}

func TestMemoryStore_ConcurrentDuplicateHasOneWinner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Create(ctx, newTrainer(fmt.Sprintf("id-%d", i), "SAME-CREF"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, interfaces.ErrDuplicateCref)
	}
	assert.Equal(t, 1, winners)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStore_EmptyList(t *testing.T) {
	all, err := NewMemoryStore().List(context.Background(), 500)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
