package integration

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	candidates := app.seededCandidates(t)

	// Fresh voter has not voted yet.
	var check map[string]bool
	resp := app.doJSON(t, http.MethodGet, "/api/voters/Alice/check", "", nil, &check)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, check["hasVoted"])

	var created map[string]string
	resp = app.doJSON(t, http.MethodPost, "/api/votes", "",
		map[string]string{"voterName": "Alice", "candidateId": candidates[0].ID.String()}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, created["id"])

	// The check is case-insensitive.
	resp = app.doJSON(t, http.MethodGet, "/api/voters/ALICE/check", "", nil, &check)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, check["hasVoted"])

	// A second vote under a case variant of the same name conflicts, even
	// for a different candidate.
	var errBody map[string]string
	resp = app.doJSON(t, http.MethodPost, "/api/votes", "",
		map[string]string{"voterName": "ALICE", "candidateId": candidates[1].ID.String()}, &errBody)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, errBody["error"], "already voted")
}

// Voter names with spaces arrive percent-encoded in the check URL and must
// still resolve to their vote.
func TestCheckVoterEscapedName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	candidates := app.seededCandidates(t)

	resp := app.doJSON(t, http.MethodPost, "/api/votes", "",
		map[string]string{"voterName": "John Smith", "candidateId": candidates[0].ID.String()}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var check map[string]bool
	resp = app.doJSON(t, http.MethodGet, "/api/voters/"+url.PathEscape("John Smith")+"/check", "", nil, &check)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, check["hasVoted"])

	// Case variants of the escaped name also match.
	resp = app.doJSON(t, http.MethodGet, "/api/voters/"+url.PathEscape("JOHN SMITH")+"/check", "", nil, &check)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, check["hasVoted"])
}

func TestVoteValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	candidates := app.seededCandidates(t)

	// Missing voter name.
	resp := app.doJSON(t, http.MethodPost, "/api/votes", "",
		map[string]string{"voterName": "  ", "candidateId": candidates[0].ID.String()}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing candidate id.
	resp = app.doJSON(t, http.MethodPost, "/api/votes", "",
		map[string]string{"voterName": "Bob"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown candidate.
	resp = app.doJSON(t, http.MethodPost, "/api/votes", "",
		map[string]string{"voterName": "Bob", "candidateId": uuid.NewString()}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestConcurrentDuplicateVote drives two simultaneous casts for the same
// voter name (different case) and requires that exactly one lands. The
// unique index on the normalized voter name is what breaks the tie.
func TestConcurrentDuplicateVote(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	candidates := app.seededCandidates(t)
	names := []string{"Carol", " carol "}

	statuses := make([]int, len(names))
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			body := fmt.Sprintf(`{"voterName":%q,"candidateId":%q}`,
				name, candidates[i%len(candidates)].ID)
			resp, err := app.Client.Post(app.Server.URL+"/api/votes", "application/json",
				strings.NewReader(body))
			if err != nil {
				errs[i] = err
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i, name)
	}
	wg.Wait()

	created := 0
	for i, s := range statuses {
		require.NoError(t, errs[i])
		switch s {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
		default:
			t.Fatalf("unexpected status %d", s)
		}
	}
	assert.Equal(t, 1, created, "exactly one concurrent cast may succeed")

	var count int
	require.NoError(t, app.DB.QueryRow(
		`SELECT COUNT(*) FROM votes WHERE lower(btrim(voter_name)) = 'carol'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestListVotersNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	candidates := app.seededCandidates(t)

	voters := []string{"First", "Second", "Third"}
	for _, name := range voters {
		resp := app.doJSON(t, http.MethodPost, "/api/votes", "",
			map[string]string{"voterName": name, "candidateId": candidates[0].ID.String()}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		time.Sleep(10 * time.Millisecond)
	}

	var payload struct {
		Voters []struct {
			VoterName     string    `json:"voter_name"`
			CandidateName string    `json:"candidate_name"`
			Timestamp     time.Time `json:"timestamp"`
		} `json:"voters"`
	}
	resp := app.doJSON(t, http.MethodGet, "/api/voters", "", nil, &payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, payload.Voters, 3)

	assert.Equal(t, "Third", payload.Voters[0].VoterName)
	assert.Equal(t, "Second", payload.Voters[1].VoterName)
	assert.Equal(t, "First", payload.Voters[2].VoterName)
	assert.Equal(t, candidates[0].Name, payload.Voters[0].CandidateName)
}

func TestResetVotesClearsEverything(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token := app.adminToken(t)
	candidates := app.seededCandidates(t)

	for i := 0; i < 7; i++ {
		app.insertVote(t, fmt.Sprintf("Voter %d", i), candidates[i%len(candidates)].ID)
	}

	// Publish, so the reset has a flag to clear.
	resp := app.doJSON(t, http.MethodPost, "/api/results/publish", token,
		map[string]bool{"publish": true}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reset map[string]int64
	resp = app.doJSON(t, http.MethodDelete, "/api/votes", token, nil, &reset)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(7), reset["deletedCount"])

	var votersPayload struct {
		Voters []any `json:"voters"`
	}
	resp = app.doJSON(t, http.MethodGet, "/api/voters", "", nil, &votersPayload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, votersPayload.Voters)

	var settingsPayload struct {
		Settings struct {
			ResultsPublished bool `json:"results_published"`
		} `json:"settings"`
	}
	resp = app.doJSON(t, http.MethodGet, "/api/settings", "", nil, &settingsPayload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, settingsPayload.Settings.ResultsPublished, "reset must unpublish results")
}
