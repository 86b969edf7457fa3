package config

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/audit"
	"github.com/Swarup012/Github-Manager-Backend/internal/services"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, apiKey, systemPrompt, utterance string) (string, error) {
	args := m.Called(ctx, apiKey, systemPrompt, utterance)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) Name() string {
	return "Gemini"
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type doctorFixture struct {
	fileCfg   *config.Config
	runtime   *config.Config
	generator *mockGenerator
	verifier  *mockVerifier
	openedDBs []string
	auditErr  error
}

func newDoctorFixture(t *testing.T) *doctorFixture {
	t.Helper()
	color.NoColor = true
	fileCfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	runtime := *fileCfg
	return &doctorFixture{
		fileCfg:   fileCfg,
		runtime:   &runtime,
		generator: &mockGenerator{},
		verifier:  &mockVerifier{},
	}
}

func (f *doctorFixture) run(t *testing.T) string {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	deps := DoctorDeps{
		Generator: func() (ports.TextGenerator, error) { return f.generator, nil },
		Verifier:  func() (ports.TokenVerifier, error) { return f.verifier, nil },
		OpenAudit: func(path string) (ports.AuditStore, error) {
			f.openedDBs = append(f.openedDBs, path)
			if f.auditErr != nil {
				return nil, f.auditErr
			}
			store := &services.MockAuditStore{}
			store.On("Close").Return(nil).Once()
			return store, nil
		},
	}

	var out bytes.Buffer
	cmd := NewConfigCommandFactory(f.fileCfg, &out).WithDoctor(deps).CreateCommand(translations, f.runtime)
	app := &cli.Command{Name: "github-manager", Commands: []*cli.Command{cmd}}

	require.NoError(t, app.Run(context.Background(), []string{"github-manager", "config", "doctor"}))
	return out.String()
}

func TestDoctorCommand(t *testing.T) {
	t.Run("should report every check as healthy", func(t *testing.T) {
		// arrange
		f := newDoctorFixture(t)
		f.runtime.GeminiAPIKey = "AIzaKey"
		f.runtime.GitHubToken = "ghp_valid"
		f.runtime.AuditDBPath = filepath.Join(t.TempDir(), "audit.db")
		f.generator.On("Generate", mock.Anything, "AIzaKey", pingSystemPrompt, pingUtterance).Return("OK", nil).Once()
		f.verifier.On("VerifyToken", mock.Anything, "ghp_valid").Return("octocat", nil).Once()

		// act
		output := f.run(t)

		// assert
		assert.Contains(t, output, "✓ Configuration file")
		assert.Contains(t, output, f.fileCfg.PathFile)
		assert.Contains(t, output, "✓ Text-generation key")
		assert.Contains(t, output, "Gemini accepted the key")
		assert.Contains(t, output, "✓ GitHub token")
		assert.Contains(t, output, "Authenticated as octocat")
		assert.Contains(t, output, "✓ Audit database")
		assert.Contains(t, output, "Everything is ready")
		assert.NotContains(t, output, "ghp_valid")
		assert.NotContains(t, output, "AIzaKey")
		assert.Equal(t, []string{f.runtime.AuditDBPath}, f.openedDBs)
		f.generator.AssertExpectations(t)
		f.verifier.AssertExpectations(t)
	})

	t.Run("should warn about missing credentials", func(t *testing.T) {
		f := newDoctorFixture(t)
		f.runtime.AIProvider = config.AIAnthropic

		output := f.run(t)

		assert.Contains(t, output, "! Text-generation key")
		assert.Contains(t, output, "No API key configured for anthropic")
		assert.Contains(t, output, "→ Run: github-manager config set anthropic_api_key <value>")
		assert.Contains(t, output, "! GitHub token")
		assert.Contains(t, output, "Disabled (audit_db_path is empty)")
		assert.Contains(t, output, "Ready, with 2 warnings")
		assert.Empty(t, f.openedDBs)
		f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.verifier.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
	})

	t.Run("should report rejected credentials", func(t *testing.T) {
		f := newDoctorFixture(t)
		f.runtime.GeminiAPIKey = "AIzaBad"
		f.runtime.GitHubToken = "ghp_revoked"
		f.generator.On("Generate", mock.Anything, "AIzaBad", mock.Anything, mock.Anything).
			Return("", apperrors.ErrAIGeneration.WithError(errors.New("API key not valid"))).Once()
		f.verifier.On("VerifyToken", mock.Anything, "ghp_revoked").
			Return("", apperrors.ErrVerifyToken.WithContext(apperrors.ContextBackendMessage, "Bad credentials")).Once()

		output := f.run(t)

		assert.Contains(t, output, "✗ Text-generation key")
		assert.Contains(t, output, "Gemini rejected the request: API key not valid")
		assert.Contains(t, output, "✗ GitHub token")
		assert.Contains(t, output, "GitHub rejected the token: Bad credentials")
		assert.Contains(t, output, "→ "+apperrors.ErrVerifyToken.Suggestion)
		assert.Contains(t, output, "2 checks failed")
	})

	t.Run("should bound remote checks with a deadline", func(t *testing.T) {
		f := newDoctorFixture(t)
		f.runtime.GeminiAPIKey = "AIzaKey"
		f.runtime.GitHubToken = "ghp_valid"
		hasDeadline := mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		})
		f.generator.On("Generate", hasDeadline, "AIzaKey", mock.Anything, mock.Anything).Return("OK", nil).Once()
		f.verifier.On("VerifyToken", hasDeadline, "ghp_valid").Return("octocat", nil).Once()

		f.run(t)

		f.generator.AssertExpectations(t)
		f.verifier.AssertExpectations(t)
	})

	t.Run("should report an audit database that cannot be opened", func(t *testing.T) {
		f := newDoctorFixture(t)
		f.runtime.AuditDBPath = "/nonexistent/dir/audit.db"
		f.auditErr = errors.New("unable to open database file")

		output := f.run(t)

		assert.Contains(t, output, "✗ Audit database")
		assert.Contains(t, output, "Cannot open /nonexistent/dir/audit.db: unable to open database file")
		assert.Contains(t, output, "→ Check that the directory exists and is writable")
	})

	t.Run("should flag a missing config file", func(t *testing.T) {
		f := newDoctorFixture(t)
		f.fileCfg.PathFile = filepath.Join(t.TempDir(), "missing.json")

		output := f.run(t)

		assert.Contains(t, output, "✗ Configuration file")
		assert.Contains(t, output, "→ Run: github-manager config init")
	})
}

func TestDoctorCommand_RealAuditStore(t *testing.T) {
	f := newDoctorFixture(t)
	path := filepath.Join(t.TempDir(), "audit.db")
	f.runtime.AuditDBPath = path

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	var out bytes.Buffer
	cmd := NewDoctorCommand(f.fileCfg, DoctorDeps{
		OpenAudit: func(p string) (ports.AuditStore, error) { return audit.NewSQLiteStore(p) },
	}, &out).CreateCommand(translations, f.runtime)

	require.NoError(t, cmd.Run(context.Background(), []string{"doctor"}))

	assert.Contains(t, out.String(), "✓ Audit database")
	assert.FileExists(t, path)
}
