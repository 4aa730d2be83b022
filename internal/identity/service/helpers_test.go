package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lanternhq/lantern/internal/identity/revocation"
	"github.com/lanternhq/lantern/internal/identity/store/drivers/sqlite"
	"github.com/lanternhq/lantern/pkg/cryptox"
	"github.com/lanternhq/lantern/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "lantern-service-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// captureMailer records dispatched verification emails instead of sending.
type captureMailer struct {
	mu    sync.Mutex
	sends []capturedEmail
}

type capturedEmail struct {
	To    string
	Name  string
	Token string
}

func (m *captureMailer) SendVerificationEmail(_ context.Context, to, name, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, capturedEmail{To: to, Name: name, Token: token})
	return nil
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sends)
}

// testEnv wires the full service stack onto an in-memory sqlite store with
// a controllable clock.
type testEnv struct {
	store  *sqlite.Store
	mailer *captureMailer

	registry *revocation.Registry
	audit    *AuditService
	reg      *RegistrationService
	sessions *SessionService
	profiles *ProfileService

	mu  sync.Mutex
	now time.Time
}

func (e *testEnv) clock() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

func (e *testEnv) advance(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = e.now.Add(d)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.GenerateSigner()
	require.NoError(t, err)

	logger := testLogger()

	env := &testEnv{
		store:  st,
		mailer: &captureMailer{},
		now:    time.Now().UTC().Truncate(time.Second),
	}

	env.registry = revocation.NewRegistry(logger, time.Minute)
	env.registry.Now = env.clock

	env.audit = &AuditService{Store: st, Now: env.clock}
	env.reg = &RegistrationService{
		Store:       st,
		Mailer:      env.mailer,
		Audit:       env.audit,
		AdminEmails: map[string]struct{}{"root@example.com": {}},
		Now:         env.clock,
	}
	env.sessions = &SessionService{
		Store:     st,
		Signer:    signer,
		Verifier:  signer.Verifier("lantern-test"),
		Blacklist: env.registry,
		Audit:     env.audit,
		Issuer:    "lantern-test",
		Now:       env.clock,
	}
	env.profiles = &ProfileService{Store: st, Audit: env.audit, Now: env.clock}

	return env
}

// register creates and verifies an account so it can log in.
func (e *testEnv) register(t *testing.T, email, password string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.reg.Register(ctx, RegisterParams{
		Email:    email,
		Password: password,
		Name:     "Test Account",
	}))

	token := e.waitForEmail(t, email)
	require.NoError(t, e.reg.VerifyEmail(ctx, token))
}

// waitForEmail polls the capture mailer for the async dispatch addressed to
// the given recipient.
func (e *testEnv) waitForEmail(t *testing.T, to string) string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		e.mailer.mu.Lock()
		for i := len(e.mailer.sends) - 1; i >= 0; i-- {
			if e.mailer.sends[i].To == to {
				token := e.mailer.sends[i].Token
				e.mailer.mu.Unlock()
				return token
			}
		}
		e.mailer.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no verification email dispatched to %s", to)
	return ""
}
