package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tunitour/pkg/utils"
)

type fakeWriter struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeWriter) Describe(_ context.Context, name, city, category string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name+"|"+city+"|"+category)
	if f.fail[name] {
		return "", errors.New("quota exceeded")
	}
	return name + " is worth a visit.", nil
}

func TestEnrichDescriptions(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.legacyCityTables(t)
	writer := &fakeWriter{}
	svc := NewEnrichService(e.tables, writer, zap.NewNop())

	report, err := svc.EnrichDescriptions(ctx, "attractions_sidi_bou_said", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, []string{"Café des Nattes|sidi bou said|attractions"}, writer.calls)

	row, err := e.tables.FindRowByID(ctx, "attractions_sidi_bou_said", "2")
	require.NoError(t, err)
	assert.Equal(t, "Café des Nattes is worth a visit.", row["description"])

	row, err = e.tables.FindRowByID(ctx, "attractions_sidi_bou_said", "1")
	require.NoError(t, err)
	assert.Equal(t, "Baron d'Erlanger palace", row["description"])
}

func TestEnrichDescriptions_FailuresAndLimit(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.exec(t,
		`CREATE TABLE activities_djerba (id INTEGER PRIMARY KEY, name TEXT, description TEXT)`,
		`INSERT INTO activities_djerba (id, name) VALUES (1, 'Jet ski'), (2, 'Camel ride'), (3, 'Pottery')`,
	)
	writer := &fakeWriter{fail: map[string]bool{"Jet ski": true}}
	svc := NewEnrichService(e.tables, writer, zap.NewNop())

	report, err := svc.EnrichDescriptions(ctx, "activities_djerba", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Updated)
}

func TestEnrichDescriptions_Errors(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.exec(t, `CREATE TABLE restaurants_tunis (id INTEGER PRIMARY KEY, name TEXT)`)

	_, err := NewEnrichService(e.tables, nil, zap.NewNop()).EnrichDescriptions(ctx, "restaurants_tunis", 5)
	assert.ErrorIs(t, err, utils.ErrEnrichmentDisabled)

	svc := NewEnrichService(e.tables, &fakeWriter{}, zap.NewNop())
	_, err = svc.EnrichDescriptions(ctx, "restaurants_tunis", 5)
	assert.ErrorIs(t, err, utils.ErrColumnMissing)

	_, err = svc.EnrichDescriptions(ctx, "hotels_tunis", 5)
	assert.ErrorIs(t, err, utils.ErrTableNotFound)
}
