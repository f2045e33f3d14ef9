package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	envauth "github.com/eballot/api/internal/adapters/auth/env"
	handler "github.com/eballot/api/internal/adapters/handler/http"
	repo "github.com/eballot/api/internal/adapters/repository/postgres"
	"github.com/eballot/api/internal/core/services"
)

const (
	testAdminUser = "admin"
	testAdminPass = "test-password"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("ADMIN_USERNAME", testAdminUser)
	os.Setenv("ADMIN_PASSWORD", testAdminPass)

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	candidateRepo := repo.NewCandidateRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	resultRepo := repo.NewResultRepository(db)
	settingsRepo := repo.NewSettingsRepository(db)

	candidateSvc := services.NewCandidateService(candidateRepo)
	voteSvc := services.NewVoteService(candidateRepo, voteRepo)
	resultSvc := services.NewResultService(resultRepo)
	settingsSvc := services.NewSettingsService(settingsRepo)
	authSvc := services.NewAuthService(envauth.NewAuthenticator())

	router := handler.NewHandler(handler.RouterConfig{
		CandidateHandler: handler.NewCandidateHandler(candidateSvc),
		VoteHandler:      handler.NewVoteHandler(voteSvc),
		ResultHandler:    handler.NewResultHandler(resultSvc, settingsSvc),
		AuthHandler:      handler.NewAuthHandler(authSvc),
		AdminVerifier:    authSvc,
		DB:               db,
	})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) adminToken(t *testing.T) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": testAdminUser,
		"password": testAdminPass,
	})
	resp, err := app.Client.Post(app.Server.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload["token"])
	return payload["token"]
}

// doJSON issues a request with an optional admin token and decodes the JSON
// response into out (when out is non-nil).
func (app *TestApp) doJSON(t *testing.T, method, path string, token string, payload any, out any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	resp.Body.Close()
	return resp
}

// insertVote writes a vote row directly, bypassing the API, for seeding
// tally scenarios.
func (app *TestApp) insertVote(t *testing.T, voterName string, candidateID uuid.UUID) {
	t.Helper()

	_, err := app.DB.Exec(
		`INSERT INTO votes (id, voter_name, candidate_id) VALUES ($1, $2, $3)`,
		uuid.New(), voterName, candidateID)
	require.NoError(t, err)
}

// seededCandidates returns the candidates created by the seed migration,
// ordered by position.
func (app *TestApp) seededCandidates(t *testing.T) []candidatePayload {
	t.Helper()

	var payload struct {
		Candidates []candidatePayload `json:"candidates"`
	}
	resp := app.doJSON(t, http.MethodGet, "/api/candidates", "", nil, &payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return payload.Candidates
}

type candidatePayload struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
}
