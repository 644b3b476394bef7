package testutil

import (
	"context"
	"testing"

	"github.com/meslamib3/storiesdb/internal/datastore"
	"github.com/meslamib3/storiesdb/internal/method"
	"github.com/stretchr/testify/require"
)

// NewStore opens an initialised methods database inside env. The store is
// closed when the test completes.
func NewStore(t *testing.T, env *TestEnv, opts ...datastore.Option) *datastore.SQLiteStore {
	t.Helper()

	store, err := datastore.Open(context.Background(), env.Path("methods.db"), opts...)
	require.NoError(t, err, "failed to open test store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedMethods inserts methods in order and returns their ids.
func SeedMethods(t *testing.T, store datastore.Store, methods ...method.Method) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(methods))
	for _, m := range methods {
		id, err := store.Insert(context.Background(), m)
		require.NoError(t, err, "failed to seed method %q", m.MethodName)
		ids = append(ids, id)
	}
	return ids
}

// SampleMethod returns a fully populated record named name.
func SampleMethod(name string) method.Method {
	return method.Method{
		Partner:             "PartnerX",
		ContactPerson:       "Jane Doe",
		Email:               "jane.doe@partner.xy",
		Task:                "T1.2",
		MethodType:          "Model",
		MethodName:          name,
		Objective:           "Predict cell ageing",
		Maturity:            "Established method",
		UniqueID:            "M-" + name,
		Category:            "Models",
		Scale:               "device",
		Documentation:       "https://example.org/" + name,
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
