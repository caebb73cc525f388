package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/common"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/interfaces"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/services/advisor"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/services/portfolio"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/storage"
)

// fakeClient records calls and returns scripted results.
type fakeClient struct {
	url          string
	probeErr     error
	pushErr      error
	pullSnapshot *models.Snapshot
	pullErr      error
	calls        []string
}

func (f *fakeClient) TestConnection(ctx context.Context) error {
	f.calls = append(f.calls, "probe")
	return f.probeErr
}

func (f *fakeClient) Pull(ctx context.Context) (*models.Snapshot, error) {
	f.calls = append(f.calls, "pull")
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	if f.pullSnapshot != nil {
		return f.pullSnapshot, nil
	}
	return &models.Snapshot{}, nil
}

func (f *fakeClient) PushPositions(ctx context.Context, positions []models.Position) error {
	f.calls = append(f.calls, "pushPositions")
	return f.pushErr
}

func (f *fakeClient) PushTrades(ctx context.Context, trades []models.Trade) error {
	f.calls = append(f.calls, "pushTrades")
	return f.pushErr
}

func (f *fakeClient) PushDailyResults(ctx context.Context, results []models.DailyResult) error {
	f.calls = append(f.calls, "pushDailyResults")
	return f.pushErr
}

func (f *fakeClient) PushRecommendations(ctx context.Context, recs []models.Recommendation) error {
	f.calls = append(f.calls, "pushRecommendations")
	return f.pushErr
}

func (f *fakeClient) PushInteractions(ctx context.Context, interactions []models.Interaction) error {
	f.calls = append(f.calls, "pushInteractions")
	return f.pushErr
}

func (f *fakeClient) PushAll(ctx context.Context, snapshot *models.Snapshot) error {
	f.calls = append(f.calls, "pushAll")
	return f.pushErr
}

type testEnv struct {
	svc       *Service
	portfolio *portfolio.Service
	advisor   *advisor.Service
	storage   *storage.Manager
	client    *fakeClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := common.NewSilentLogger()
	config := common.NewDefaultConfig()
	config.Storage.Path = t.TempDir()

	mgr, err := storage.NewManager(logger, config)
	require.NoError(t, err)

	pf := portfolio.NewService(mgr, nil, logger)
	adv := advisor.NewService(mgr, pf, logger)

	client := &fakeClient{}
	factory := func(url string) interfaces.SheetsClient {
		client.url = url
		return client
	}

	return &testEnv{
		svc:       NewService(mgr, pf, adv, factory, logger),
		portfolio: pf,
		advisor:   adv,
		storage:   mgr,
		client:    client,
	}
}

func TestConnectPersistsURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	status, err := env.svc.Connect(ctx, "https://script.google.com/macros/s/abc/exec")
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Empty(t, status.LastError)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", env.client.url)

	stored, err := env.storage.KeyValueStore().Get(ctx, KeyWebAppURL)
	require.NoError(t, err)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", stored)
}

func TestConnectProbeFailure(t *testing.T) {
	env := newTestEnv(t)
	env.client.probeErr = errors.New("404 not found")
	ctx := context.Background()

	status, err := env.svc.Connect(ctx, "https://bad.example/exec")
	require.NoError(t, err, "probe failure is reported in the status, not as an error")
	assert.False(t, status.Connected)
	assert.Contains(t, status.LastError, "404")

	// A failed probe must not persist the URL
	stored, err := env.storage.KeyValueStore().Get(ctx, KeyWebAppURL)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestConnectWithoutURL(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Connect(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestConnectFallsBackToStoredURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.storage.KeyValueStore().Set(ctx, KeyWebAppURL, "https://stored.example/exec"))

	status, err := env.svc.Connect(ctx, "")
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "https://stored.example/exec", env.client.url)
}

func TestDisconnectForgetsURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Connect(ctx, "https://script.example/exec")
	require.NoError(t, err)
	require.NoError(t, env.svc.Disconnect(ctx))

	status, err := env.svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Empty(t, status.WebAppURL)

	stored, err := env.storage.KeyValueStore().Get(ctx, KeyWebAppURL)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestPushTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Connect(ctx, "https://script.example/exec")
	require.NoError(t, err)

	cases := map[string]string{
		TargetPositions:       "pushPositions",
		TargetTrades:          "pushTrades",
		TargetDailyResults:    "pushDailyResults",
		TargetRecommendations: "pushRecommendations",
		TargetInteractions:    "pushInteractions",
		TargetAll:             "pushAll",
	}
	for target, call := range cases {
		env.client.calls = nil
		status, err := env.svc.Push(ctx, target)
		require.NoError(t, err, "target %s", target)
		assert.True(t, status.Connected)
		assert.Equal(t, "push:"+target, status.LastAction)
		assert.NotEmpty(t, status.LastSync)
		assert.Equal(t, []string{call}, env.client.calls)
	}
}

func TestPushInvalidTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Connect(ctx, "https://script.example/exec")
	require.NoError(t, err)

	_, err = env.svc.Push(ctx, "everything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sync target")
}

func TestPushFailureMarksConnectionDown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Connect(ctx, "https://script.example/exec")
	require.NoError(t, err)

	env.client.pushErr = errors.New("quota exceeded")
	status, err := env.svc.Push(ctx, TargetPositions)
	require.NoError(t, err, "push failure is reported in the status")
	assert.False(t, status.Connected)
	assert.Contains(t, status.LastError, "quota exceeded")
	assert.Empty(t, status.LastSync)
}

func TestPushReconnectsFromStoredURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.storage.KeyValueStore().Set(ctx, KeyWebAppURL, "https://stored.example/exec"))

	status, err := env.svc.Push(ctx, TargetPositions)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, []string{"probe", "pushPositions"}, env.client.calls)
}

func TestPushWithoutConnection(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Push(context.Background(), TargetPositions)
	require.Error(t, err)
}

func TestPullReplacesLocalCollections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Pre-existing local data is replaced by the pulled snapshot
	require.NoError(t, env.portfolio.ReplacePositions(ctx, []models.Position{{Ticker: "OLD"}}))

	env.client.pullSnapshot = &models.Snapshot{
		Positions:    []models.Position{{Date: "2025-06-27", Ticker: "ABEO", Shares: 6}},
		Trades:       []models.Trade{{Date: "2025-06-27", Ticker: "ABEO"}},
		DailyResults: []models.DailyResult{{Date: "2025-06-27", TotalEquity: 104.5}},
		Recommendations: []models.Recommendation{
			{ID: "r1", Ticker: "CADL", Action: "BUY", Shares: 10},
		},
		Interactions: []models.Interaction{{ID: "i1", Date: "2025-06-27"}},
	}

	_, err := env.svc.Connect(ctx, "https://script.example/exec")
	require.NoError(t, err)

	snapshot, err := env.svc.Pull(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Positions, 1)

	positions, err := env.portfolio.Positions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "ABEO", positions[0].Ticker)

	recs, err := env.advisor.Recommendations(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	status, err := env.svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pull", status.LastAction)
	assert.NotEmpty(t, status.LastSync)
}

func TestPullFailureLeavesLocalUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.portfolio.ReplacePositions(ctx, []models.Position{{Ticker: "KEEP"}}))

	_, err := env.svc.Connect(ctx, "https://script.example/exec")
	require.NoError(t, err)

	env.client.pullErr = errors.New("timeout")
	_, err = env.svc.Pull(ctx)
	require.Error(t, err)

	positions, err := env.portfolio.Positions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "KEEP", positions[0].Ticker)

	status, err := env.svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Contains(t, status.LastError, "timeout")
}
