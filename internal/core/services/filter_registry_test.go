package services

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
	"github.com/custodia-labs/tutorplug/internal/logger"
)

func cb(name string, op domain.FilterOp, value any) domain.FilterCallback {
	return domain.FilterCallback{Filter: name, Op: op, Value: value}
}

func TestFilterRegistry_AddItem(t *testing.T) {
	r := NewFilterRegistry()

	require.NoError(t, r.Apply(cb("ENV_PATCHES", domain.FilterOpAddItem, []any{"a", "b"})))
	require.NoError(t, r.Apply(cb("ENV_PATCHES", domain.FilterOpAddItem, "c")))

	got, ok := r.Get("ENV_PATCHES")
	require.True(t, ok)
	assert.Equal(t, []any{[]any{"a", "b"}, "c"}, got)
}

func TestFilterRegistry_AddItems(t *testing.T) {
	r := NewFilterRegistry()

	require.NoError(t, r.Apply(cb("CONFIG_DEFAULTS", domain.FilterOpAddItems, []any{"x", 1})))
	require.NoError(t, r.Apply(cb("CONFIG_DEFAULTS", domain.FilterOpAddItems, []any{})))
	require.NoError(t, r.Apply(cb("CONFIG_DEFAULTS", domain.FilterOpAddItems, []any{true})))

	got, _ := r.Get("CONFIG_DEFAULTS")
	assert.Equal(t, []any{"x", 1, true}, got)
}

func TestFilterRegistry_EmptyAddItemsTouchesPoint(t *testing.T) {
	r := NewFilterRegistry()

	require.NoError(t, r.Apply(cb("IMAGES_PULL", domain.FilterOpAddItems, []any{})))

	got, ok := r.Get("IMAGES_PULL")
	require.True(t, ok)
	assert.Equal(t, []any{}, got)
}

func TestFilterRegistry_Replace(t *testing.T) {
	r := NewFilterRegistry()

	require.NoError(t, r.Apply(cb("CONFIG_OVERRIDES", domain.FilterOpAddItem, "dropped")))
	require.NoError(t, r.Apply(cb("CONFIG_OVERRIDES", domain.FilterOpReplace, map[string]any{"A": 1})))

	got, _ := r.Get("CONFIG_OVERRIDES")
	assert.Equal(t, map[string]any{"A": 1}, got)
}

func TestFilterRegistry_ReplaceWithListThenAdd(t *testing.T) {
	r := NewFilterRegistry()

	require.NoError(t, r.Apply(cb("X", domain.FilterOpReplace, []any{1})))
	require.NoError(t, r.Apply(cb("X", domain.FilterOpAddItem, 2)))

	got, _ := r.Get("X")
	assert.Equal(t, []any{1, 2}, got)
}

func TestFilterRegistry_AddToNonList(t *testing.T) {
	r := NewFilterRegistry()
	require.NoError(t, r.Apply(cb("X", domain.FilterOpReplace, "scalar")))

	err := r.Apply(cb("X", domain.FilterOpAddItem, 1))
	assert.ErrorIs(t, err, domain.ErrFilterConflict)

	err = r.Apply(cb("X", domain.FilterOpAddItems, []any{1}))
	assert.ErrorIs(t, err, domain.ErrFilterConflict)

	got, _ := r.Get("X")
	assert.Equal(t, "scalar", got)
}

func TestFilterRegistry_InvalidCallback(t *testing.T) {
	r := NewFilterRegistry()

	assert.ErrorIs(t, r.Apply(cb("lower", domain.FilterOpAddItem, 1)), domain.ErrInvalidFilter)
	assert.ErrorIs(t, r.Apply(cb("X", "append", 1)), domain.ErrInvalidFilter)
	assert.ErrorIs(t, r.Apply(cb("X", domain.FilterOpAddItems, "no")), domain.ErrInvalidFilter)
	assert.Empty(t, r.Names())
}

func TestFilterRegistry_ApplyDescriptor_InOrder(t *testing.T) {
	r := NewFilterRegistry()
	d := &domain.Descriptor{
		Name: "p",
		Filters: []domain.FilterCallback{
			cb("A", domain.FilterOpAddItem, 1),
			cb("B", domain.FilterOpReplace, "b"),
			cb("A", domain.FilterOpAddItems, []any{2, 3}),
		},
	}

	require.NoError(t, r.ApplyDescriptor(d))

	want := map[string]any{"A": []any{1, 2, 3}, "B": "b"}
	if diff := cmp.Diff(want, r.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"A", "B"}, r.Names())
}

func TestFilterRegistry_ApplyDescriptor_AllOrNothing(t *testing.T) {
	r := NewFilterRegistry()
	require.NoError(t, r.Apply(cb("A", domain.FilterOpAddItem, "kept")))

	d := &domain.Descriptor{
		Name: "broken",
		Filters: []domain.FilterCallback{
			cb("A", domain.FilterOpAddItem, "discarded"),
			cb("B", domain.FilterOpReplace, "scalar"),
			cb("B", domain.FilterOpAddItem, 1),
		},
	}

	err := r.ApplyDescriptor(d)
	require.ErrorIs(t, err, domain.ErrFilterConflict)
	assert.Contains(t, err.Error(), "filters[2]")

	assert.Equal(t, map[string]any{"A": []any{"kept"}}, r.Snapshot())
}

func TestFilterRegistry_ApplyDescriptor_Invalid(t *testing.T) {
	r := NewFilterRegistry()

	assert.ErrorIs(t, r.ApplyDescriptor(nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, r.ApplyDescriptor(&domain.Descriptor{}), domain.ErrMissingField)
}

func TestFilterRegistry_ApplyDescriptor_WarnsUnknownFilter(t *testing.T) {
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)

	r := NewFilterRegistry()
	d := &domain.Descriptor{
		Name: "p",
		Filters: []domain.FilterCallback{
			cb("MY_FILTER", domain.FilterOpAddItem, 1),
			cb("ENV_PATCHES", domain.FilterOpAddItem, 1),
		},
	}
	require.NoError(t, r.ApplyDescriptor(d))

	assert.Contains(t, buf.String(), "[WARN] plugin p: filter MY_FILTER is not a known extension point")
	assert.NotContains(t, buf.String(), "filter ENV_PATCHES is not")
}

func TestFilterRegistry_SnapshotIsDeepCopy(t *testing.T) {
	r := NewFilterRegistry()
	value := map[string]any{"nested": []any{"a"}}
	require.NoError(t, r.Apply(cb("X", domain.FilterOpAddItem, value)))

	// Mutating the input must not leak into the registry.
	value["nested"] = "changed"

	snap := r.Snapshot()
	list := snap["X"].([]any)
	inner := list[0].(map[string]any)
	inner["nested"] = "changed again"

	got, _ := r.Get("X")
	assert.Equal(t, []any{map[string]any{"nested": []any{"a"}}}, got)
}

func TestFilterRegistry_Get_Untouched(t *testing.T) {
	_, ok := NewFilterRegistry().Get("NEVER")
	assert.False(t, ok)
}

func TestFilterRegistry_ConcurrentApply(t *testing.T) {
	r := NewFilterRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = r.Apply(cb("X", domain.FilterOpAddItem, n))
			_ = r.Snapshot()
		}(i)
	}
	wg.Wait()

	got, _ := r.Get("X")
	assert.Len(t, got, 20)
}
