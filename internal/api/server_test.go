package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/smomoh/flagquiz/internal/api"
	"github.com/smomoh/flagquiz/internal/countries"
	"github.com/smomoh/flagquiz/internal/mailer"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/quiz"
	"github.com/smomoh/flagquiz/internal/repository/sqlite"
	"github.com/smomoh/flagquiz/internal/restcountries"
	"github.com/smomoh/flagquiz/internal/services"
	"github.com/smomoh/flagquiz/internal/testutil"
	"github.com/smomoh/flagquiz/internal/testutil/mocks"
	"github.com/smomoh/flagquiz/internal/worker"
)

func rawCountry(name, code, region string) restcountries.RawCountry {
	r := restcountries.RawCountry{CCA2: code, Region: region}
	r.Name.Common = name
	r.Name.Official = name
	r.Flags.PNG = fmt.Sprintf("https://flagcdn.com/w320/%s.png", strings.ToLower(code))
	return r
}

// newTestServer spins up the full HTTP surface over an in-memory database
// and a canned country source. The returned client carries cookies between
// requests like a browser would.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	source := new(mocks.MockCountrySource)
	source.On("FetchAll", mock.Anything).Return([]restcountries.RawCountry{
		rawCountry("Australia", "AU", "Oceania"),
		rawCountry("Fiji", "FJ", "Oceania"),
		rawCountry("New Zealand", "NZ", "Oceania"),
		rawCountry("France", "FR", "Europe"),
		rawCountry("Germany", "DE", "Europe"),
	}, nil)

	database := testutil.NewTestDB(t)
	provider := countries.NewProvider(source)
	statsService := services.NewStatsService(sqlite.NewStatsRepository(database.DB))
	answerRepo := sqlite.NewAnswerRepository(database.DB)

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)

	server := &api.Server{
		ProfileService: services.NewProfileService(sqlite.NewProfileRepository(database.DB)),
		StatsService:   statsService,
		QuizService:    services.NewQuizService(provider, statsService, answerRepo, 3),
		AnswerService:  services.NewAnswerService(answerRepo),
		Provider:       provider,
		MailPool:       pool,
		Mailer:         mailer.NewLogSender(),
		MailFrom:       "hello@flagquiz.local",
	}

	ts := httptest.NewServer(server.Routes())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createProfile(t *testing.T, client *http.Client, baseURL, username string) models.Profile {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/profiles", map[string]string{"username": username})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[models.Profile](t, resp)
}

type quizResponse struct {
	State  quiz.State `json:"state"`
	Notice string     `json:"notice"`
}

func TestHealthz(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestQuizRoutesRequireProfile(t *testing.T) {
	ts, client := newTestServer(t)

	for _, path := range []string{"/quiz", "/stats", "/answers"} {
		resp, err := client.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}

func TestCreateProfile(t *testing.T) {
	ts, client := newTestServer(t)

	profile := createProfile(t, client, ts.URL, "Ada")
	assert.Equal(t, "ada", profile.Username)
	assert.NotZero(t, profile.ID)

	// Same username signs back in instead of creating a duplicate.
	resp := postJSON(t, client, ts.URL+"/profiles", map[string]string{"username": "ada"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	again := decodeBody[models.Profile](t, resp)
	assert.Equal(t, profile.ID, again.ID)
}

func TestCreateProfile_EmptyUsername(t *testing.T) {
	ts, client := newTestServer(t)

	resp := postJSON(t, client, ts.URL+"/profiles", map[string]string{"username": "   "})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestContinents(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/continents")
	require.NoError(t, err)

	body := decodeBody[map[string][]struct {
		Continent    models.Continent `json:"continent"`
		CountryCount int              `json:"country_count"`
	}](t, resp)

	counts := map[models.Continent]int{}
	for _, c := range body["continents"] {
		counts[c.Continent] = c.CountryCount
	}
	assert.Equal(t, 3, counts[models.Oceania])
	assert.Equal(t, 2, counts[models.Europe])
	assert.Zero(t, counts[models.Africa])
}

func TestContinentCountries_UnknownContinent(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/continents/Atlantis/countries")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuizFlow(t *testing.T) {
	ts, client := newTestServer(t)
	createProfile(t, client, ts.URL, "ada")

	// Start a multiple-choice quiz.
	resp := postJSON(t, client, ts.URL+"/quiz/start", map[string]string{"continent": "Oceania"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	started := decodeBody[quizResponse](t, resp)
	require.Equal(t, quiz.StatusActive, started.State.Status)
	require.NotNil(t, started.State.CurrentQuestion)
	target := started.State.CurrentQuestion.TargetCountry

	// Answer correctly.
	resp = postJSON(t, client, ts.URL+"/quiz/answer", map[string]string{"code": target.Code})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	answered := decodeBody[quizResponse](t, resp)
	assert.Equal(t, quiz.StatusFeedback, answered.State.Status)
	assert.Equal(t, 1, answered.State.Score)
	assert.Contains(t, answered.Notice, "Correct")

	// Stats were persisted for the target country.
	resp, err := client.Get(ts.URL + "/stats/Oceania")
	require.NoError(t, err)
	cs := decodeBody[models.ContinentStats](t, resp)
	assert.Equal(t, 1, cs.TotalAttempts)
	assert.Equal(t, 1, cs.CountryStats[target.Code].Level)

	// The attempt log has one entry.
	resp, err = client.Get(ts.URL + "/answers")
	require.NoError(t, err)
	answers := decodeBody[struct {
		Answers []models.AnswerRecord `json:"answers"`
		Total   int                   `json:"total"`
	}](t, resp)
	assert.Equal(t, 1, answers.Total)
	require.Len(t, answers.Answers, 1)
	assert.Equal(t, target.Code, answers.Answers[0].CountryCode)

	// Move on and finish.
	resp = postJSON(t, client, ts.URL+"/quiz/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, ts.URL+"/quiz/end", nil)
	ended := decodeBody[quizResponse](t, resp)
	assert.Equal(t, quiz.StatusCompleted, ended.State.Status)
	assert.Nil(t, ended.State.CurrentQuestion)

	resp = postJSON(t, client, ts.URL+"/quiz/reset", nil)
	reset := decodeBody[quizResponse](t, resp)
	assert.Equal(t, quiz.StatusIdle, reset.State.Status)
}

func TestQuizStart_InvalidContinent(t *testing.T) {
	ts, client := newTestServer(t)
	createProfile(t, client, ts.URL, "ada")

	resp := postJSON(t, client, ts.URL+"/quiz/start", map[string]string{"continent": "Atlantis"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuizStart_InsufficientCountries(t *testing.T) {
	ts, client := newTestServer(t)
	createProfile(t, client, ts.URL, "ada")

	resp := postJSON(t, client, ts.URL+"/quiz/start", map[string]string{"continent": "Asia"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSubmitAnswer_RequiresCodeOrName(t *testing.T) {
	ts, client := newTestServer(t)
	createProfile(t, client, ts.URL, "ada")

	resp := postJSON(t, client, ts.URL+"/quiz/answer", map[string]string{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDueForReview(t *testing.T) {
	ts, client := newTestServer(t)
	createProfile(t, client, ts.URL, "ada")

	resp, err := client.Get(ts.URL + "/stats/Europe/due")
	require.NoError(t, err)

	body := decodeBody[struct {
		Continent models.Continent `json:"continent"`
		Due       []string         `json:"due"`
	}](t, resp)
	assert.Equal(t, models.Europe, body.Continent)
	assert.NotNil(t, body.Due)
}

func TestSelectAndDeleteProfile(t *testing.T) {
	ts, client := newTestServer(t)
	profile := createProfile(t, client, ts.URL, "ada")

	resp := postJSON(t, client, fmt.Sprintf("%s/profiles/%d/select", ts.URL, profile.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, fmt.Sprintf("%s/profiles/%d/delete", ts.URL, profile.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The cookie was cleared along with the profile.
	getResp, err := client.Get(ts.URL + "/quiz")
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, getResp.StatusCode)
}

func TestSelectProfile_Unknown(t *testing.T) {
	ts, client := newTestServer(t)

	resp := postJSON(t, client, ts.URL+"/profiles/9999/select", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
