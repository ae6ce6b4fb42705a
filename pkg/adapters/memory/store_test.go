package memory_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/tablefsm/pkg/adapters/memory"
	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/aretw0/tablefsm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, memory.NewStore())
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "s1", &domain.Snapshot{State: json.RawMessage(`"A"`)}))

	first, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	first.State[1] = 'Z'

	second, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, `"A"`, string(second.State))
}

func TestMemoryStore_ListSorted(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Save(ctx, id, &domain.Snapshot{State: json.RawMessage(`"A"`)}))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestMemoryStore_DeleteUnknownIsNoop(t *testing.T) {
	store := memory.NewStore()
	assert.NoError(t, store.Delete(context.Background(), "ghost"))
}
