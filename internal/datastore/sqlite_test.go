package datastore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meslamib3/storiesdb/internal/errors"
	"github.com/meslamib3/storiesdb/internal/method"
	"github.com/meslamib3/storiesdb/internal/metrics"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "methods.db")
	store, err := Open(context.Background(), dbPath, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func recordA() method.Method {
	return method.Method{
		Partner:             "PartnerX",
		ContactPerson:       "Jane Doe",
		Email:               "jane@x.org",
		Task:                "T1.2",
		MethodType:          "Model",
		MethodName:          "MethodA",
		Objective:           "Predict cell ageing",
		Maturity:            "Established method",
		PartOfMethod:        "",
		UniqueID:            "M-A",
		Category:            "Models",
		Scale:               "device",
		Documentation:       "https://example.org/a",
		CostTime:            "2 weeks",
		Accessibility:       "Open source",
		Interoperability:    "Python API",
		Relevance:           "Batteries",
		BeyondApplicability: "Fuel cells",
		Inputs:              "Geometry",
		InputScale:          "mm",
		InputDetails:        "STEP file",
		Outputs:             "Capacity",
		OutputScale:         "Ah",
		OutputDetails:       "CSV",
		Comments:            "none",
	}
}

func recordB() method.Method {
	m := recordA()
	m.Partner = "PartnerY"
	m.ContactPerson = "John Roe"
	m.MethodType = "Experiment"
	m.MethodName = "MethodB"
	m.UniqueID = "M-B"
	m.PartOfMethod = "M-A"
	m.Comments = "multi\nline 'quoted' \"text\" ; DROP TABLE methods; --"
	return m
}

func withID(m method.Method, id int64) method.Method {
	m.ID = id
	return m
}

func TestInitIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	schemaBefore := tableSQL(t, store)
	for range 3 {
		require.NoError(t, store.Init(ctx))
	}
	assert.Equal(t, schemaBefore, tableSQL(t, store))

	methods, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, methods)
}

func TestOpenPathWithURIDelimiters(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "odd?name#1%20.db")
	store, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Insert(context.Background(), recordA())
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database must be created at the literal path")
}

func TestInitKeepsExistingRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "methods.db")
	ctx := context.Background()

	first, err := Open(ctx, dbPath)
	require.NoError(t, err)
	_, err = first.Insert(ctx, recordA())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	methods, err := second.List(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, withID(recordA(), 1), methods[0])
}

func TestInsertRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inputs := []method.Method{recordA(), recordB(), {}, method.Placeholders()}
	for _, in := range inputs {
		_, err := store.Insert(ctx, in)
		require.NoError(t, err)
	}

	methods, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, methods, len(inputs))
	for i, in := range inputs {
		if diff := cmp.Diff(in, methods[i].WithoutID()); diff != "" {
			t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestInsertIgnoresCallerID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, withID(recordA(), 99))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var last int64
	for i := range 5 {
		id, err := store.Insert(ctx, recordA())
		require.NoError(t, err)
		assert.Greater(t, id, last, "insert %d", i)
		last = id
	}

	// Deleting the newest row must not let its id be reused.
	changed, err := store.Delete(ctx, last)
	require.NoError(t, err)
	require.True(t, changed)

	id, err := store.Insert(ctx, recordB())
	require.NoError(t, err)
	assert.Greater(t, id, last)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	idA, err := store.Insert(ctx, recordA())
	require.NoError(t, err)
	idB, err := store.Insert(ctx, recordB())
	require.NoError(t, err)

	replacement := method.Method{MethodName: "Renamed", Comments: "only two fields set"}
	changed, err := store.Update(ctx, idA, replacement)
	require.NoError(t, err)
	assert.True(t, changed)

	methods, err := store.List(ctx)
	require.NoError(t, err)
	want := []method.Method{withID(replacement, idA), withID(recordB(), idB)}
	if diff := cmp.Diff(want, methods); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateAndDeleteMissingIDAreNoops(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, recordA())
	require.NoError(t, err)
	before, err := store.List(ctx)
	require.NoError(t, err)

	changed, err := store.Update(ctx, 42, recordB())
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = store.Delete(ctx, 42)
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteRemovesRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, recordA())
	require.NoError(t, err)

	changed, err := store.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = store.Get(ctx, id)
	assert.True(t, errors.IsNotFoundError(err))

	// Deleting twice is a silent no-op.
	changed, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, changed)

	methods, err := store.List(ctx)
	require.NoError(t, err)
	for _, m := range methods {
		assert.NotEqual(t, id, m.ID)
	}
}

func TestScenarioInsertInsertDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, recordA())
	require.NoError(t, err)
	methods, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []method.Method{withID(recordA(), 1)}, methods)

	_, err = store.Insert(ctx, recordB())
	require.NoError(t, err)
	methods, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, int64(1), methods[0].ID)
	assert.Equal(t, int64(2), methods[1].ID)

	_, err = store.Delete(ctx, 1)
	require.NoError(t, err)
	methods, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []method.Method{withID(recordB(), 2)}, methods)
}

func TestGetAndIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids, err := store.IDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	idA, err := store.Insert(ctx, recordA())
	require.NoError(t, err)
	idB, err := store.Insert(ctx, recordB())
	require.NoError(t, err)

	got, err := store.Get(ctx, idB)
	require.NoError(t, err)
	assert.Equal(t, withID(recordB(), idB), got)

	ids, err = store.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{idA, idB}, ids)

	_, err = store.Get(ctx, 1000)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "1000")
}

func TestNullColumnsReadAsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, "INSERT INTO methods (method_name) VALUES ('sparse')")
	require.NoError(t, err)

	methods, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, method.Method{ID: 1, MethodName: "sparse"}, methods[0])
}

func TestOperationsOnClosedStoreFail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Close())

	_, err := store.Insert(ctx, recordA())
	assert.Error(t, err)
	_, err = store.List(ctx)
	assert.Error(t, err)
	_, err = store.Update(ctx, 1, recordA())
	assert.Error(t, err)
	_, err = store.Delete(ctx, 1)
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Insert(ctx, recordA())
	assert.Error(t, err)
}

func TestStoreRecordsMetrics(t *testing.T) {
	m := metrics.New()
	store := newTestStore(t, WithMetrics(m))
	ctx := context.Background()

	_, err := store.Insert(ctx, recordA())
	require.NoError(t, err)
	_, err = store.Get(ctx, 77)
	require.Error(t, err)

	expected := `
# HELP storiesdb_store_operations_total Store operations by operation and result.
# TYPE storiesdb_store_operations_total counter
storiesdb_store_operations_total{operation="get",result="ok"} 1
storiesdb_store_operations_total{operation="init",result="ok"} 1
storiesdb_store_operations_total{operation="insert",result="ok"} 1
`
	err = promtestutil.GatherAndCompare(m.Gatherer(), strings.NewReader(expected), "storiesdb_store_operations_total")
	assert.NoError(t, err)
}

func TestStatementsCoverAllColumns(t *testing.T) {
	for _, col := range method.Columns() {
		assert.Contains(t, MethodsSchema, "\t"+col+" TEXT", "schema missing %s", col)
		assert.Contains(t, insertSQL, col)
		assert.Contains(t, updateSQL, col+" = ?")
	}
	assert.Equal(t, len(method.Fields), strings.Count(insertSQL, "?"))
	assert.Equal(t, len(method.Fields)+1, strings.Count(updateSQL, "?"))
}

func tableSQL(t *testing.T, store *SQLiteStore) string {
	t.Helper()

	var schema string
	err := store.db.QueryRow("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", MethodsTable).Scan(&schema)
	require.NoError(t, err)
	return schema
}
