package auth_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/batch-client/internal/auth"
	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name  string
		token *auth.Token
		want  bool
	}{
		{"nil", nil, false},
		{"no access token", &auth.Token{ExpiresAt: now.Add(time.Hour)}, false},
		{"no expiry", &auth.Token{AccessToken: "t"}, true},
		{"expires in an hour", &auth.Token{AccessToken: "t", ExpiresAt: now.Add(time.Hour)}, true},
		{"expired", &auth.Token{AccessToken: "t", ExpiresAt: now.Add(-time.Minute)}, false},
		{"inside the buffer", &auth.Token{AccessToken: "t", ExpiresAt: now.Add(constants.TokenExpirationBuffer / 2)}, false},
		{"past the buffer", &auth.Token{AccessToken: "t", ExpiresAt: now.Add(constants.TokenExpirationBuffer + 10*time.Second)}, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, testCase.token.Valid())
		})
	}
}

func TestTokenStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	assert.Nil(t, store.Get())

	var group sync.WaitGroup

	for _, value := range []string{"token-a", "token-b"} {
		group.Go(func() {
			for range 100 {
				store.Set(&auth.Token{AccessToken: value})
				_ = store.Get()
			}
		})
	}

	group.Wait()

	require.NotNil(t, store.Get())
	assert.Contains(t, []string{"token-a", "token-b"}, store.Get().AccessToken)

	store.Clear()
	assert.Nil(t, store.Get())
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("static-token")

	token, err := manager.GetToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)

	require.ErrorIs(t, manager.RefreshToken(t.Context()), auth.ErrRefreshNotSupported)

	manager.SetToken("", time.Time{})

	_, err = manager.GetToken(t.Context())
	require.ErrorIs(t, err, auth.ErrNoToken)
}

type savedToken struct {
	batchURL  string
	token     string
	expiresAt time.Time
}

type memoryPersister struct {
	mu    sync.Mutex
	saved []savedToken
}

func (p *memoryPersister) UpdateAccessToken(batchURL, token string, expiresAt time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.saved = append(p.saved, savedToken{batchURL: batchURL, token: token, expiresAt: expiresAt})

	return nil
}

func (p *memoryPersister) all() []savedToken {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]savedToken(nil), p.saved...)
}

var errDiskFull = errors.New("disk full")

type failingPersister struct{}

func (failingPersister) UpdateAccessToken(string, string, time.Time) error {
	return errDiskFull
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

func (l *recordingLogger) all() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]logEntry(nil), l.entries...)
}

var _ batch.Logger = (*recordingLogger)(nil)

func TestConfigTokenManager(t *testing.T) {
	t.Parallel()

	const account = "https://acct.westeurope.batch.azure.com"

	t.Run("changed tokens are persisted once", func(t *testing.T) {
		t.Parallel()

		persister := &memoryPersister{}
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)

		inner := auth.NewStaticTokenManager("first")
		inner.SetToken("first", expiry)

		manager := auth.NewConfigTokenManager(inner, persister, account, "", time.Time{})

		for range 3 {
			token, err := manager.GetToken(t.Context())
			require.NoError(t, err)
			assert.Equal(t, "first", token)
		}

		saved := persister.all()
		require.Len(t, saved, 1)
		assert.Equal(t, account, saved[0].batchURL)
		assert.True(t, expiry.Equal(saved[0].expiresAt))
		assert.True(t, expiry.Equal(manager.GetTokenExpiry()))
	})

	t.Run("valid initial token is served", func(t *testing.T) {
		t.Parallel()

		persister := &memoryPersister{}
		expiry := time.Now().Add(time.Hour)

		manager := auth.NewConfigTokenManager(auth.NewStaticTokenManager("fresh"), persister, account, "saved", expiry)

		token, err := manager.GetToken(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "saved", token)
		assert.Empty(t, persister.all(), "an unchanged token is not written back")
	})

	t.Run("expired initial token is ignored", func(t *testing.T) {
		t.Parallel()

		persister := &memoryPersister{}

		manager := auth.NewConfigTokenManager(auth.NewStaticTokenManager("fresh"), persister, account, "stale", time.Now().Add(-time.Hour))

		token, err := manager.GetToken(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "fresh", token)
		require.Len(t, persister.all(), 1)
	})

	t.Run("persistence failures are logged and do not fail the call", func(t *testing.T) {
		t.Parallel()

		logger := &recordingLogger{}
		manager := auth.NewConfigTokenManager(auth.NewStaticTokenManager("fresh"), failingPersister{}, account, "", time.Time{})
		manager.SetLogger(logger)

		token, err := manager.GetToken(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "fresh", token)

		entries := logger.all()
		require.Len(t, entries, 1)
		assert.Equal(t, "warn", entries[0].level)
		assert.Equal(t, "failed to persist access token", entries[0].msg)
		assert.Equal(t, account, entries[0].fields["batch_url"])
		assert.Contains(t, entries[0].fields["error"], "disk full")
	})

	t.Run("nil logger discards persistence failures", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewConfigTokenManager(auth.NewStaticTokenManager("fresh"), nil, account, "", time.Time{})
		manager.SetLogger(nil)

		token, err := manager.GetToken(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "fresh", token)
	})

	t.Run("refresh errors are wrapped", func(t *testing.T) {
		t.Parallel()

		persister := &memoryPersister{}
		manager := auth.NewConfigTokenManager(auth.NewStaticTokenManager("fresh"), persister, account, "", time.Time{})

		err := manager.RefreshToken(t.Context())
		require.ErrorIs(t, err, auth.ErrRefreshNotSupported)
		assert.Empty(t, persister.all())
	})
}
