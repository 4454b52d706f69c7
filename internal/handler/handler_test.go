package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/prompt"
	"github.com/easeaico/chat-coach/internal/storage"
	"github.com/easeaico/chat-coach/internal/types"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

const analysisText = `NAME: Ana
SUMMARY: She asked about the weekend.
REPLIES:
✅ REPLY 1 (Playful)
Sounds fun, what are you up to?
✅ REPLY 2 (Direct)
Let's grab coffee Saturday.`

type stubGateway struct {
	reply        string
	err          error
	translateErr error
}

var _ coach.Gateway = (*stubGateway)(nil)

func (g *stubGateway) Analyze(_ context.Context, _ []byte, _ string, _ prompt.Instruction) (string, error) {
	return g.reply, g.err
}

func (g *stubGateway) TranslateToEnglish(_ context.Context, text string) string {
	return "EN:" + text
}

func (g *stubGateway) TranslateToLanguage(_ context.Context, text, languageName string) (string, error) {
	if g.translateErr != nil {
		return "", g.translateErr
	}
	return languageName + ":" + text, nil
}

func newTestServer(t *testing.T, gw *stubGateway) (*httptest.Server, *coach.Service) {
	t.Helper()
	composer, err := prompt.NewComposer(20, time.UTC)
	require.NoError(t, err)
	store := storage.NewMemoryStore()
	svc := coach.NewService(store.Sessions, gw, composer, 1<<20)
	srv := httptest.NewServer(NewRouter(NewHandler(svc, 1<<20)))
	t.Cleanup(srv.Close)
	return srv, svc
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func createSession(t *testing.T, srv *httptest.Server) types.ChatSession {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/sessions", map[string]interface{}{"goal": "getNumber"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session types.ChatSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	return session
}

func uploadImage(t *testing.T, url string, image []byte, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "shot.png")
	require.NoError(t, err)
	_, err = fw.Write(image)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{})
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAndListSessions(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{})

	created := createSession(t, srv)
	assert.Equal(t, types.NewChatName, created.ContactName)
	assert.Equal(t, types.GoalGetNumber, created.Goal)
	assert.NotEmpty(t, created.ID)

	resp, err := http.Get(srv.URL + "/api/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()
	var sessions []types.ChatSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)
}

func TestGetUnknownSessionIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{})
	resp, err := http.Get(srv.URL + "/api/sessions/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalyzeUpdatesSession(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{reply: analysisText})
	session := createSession(t, srv)

	resp := uploadImage(t, srv.URL+"/api/sessions/"+session.ID+"/analyze", pngHeader, map[string]string{"outfitSent": "true"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out coach.Analysis
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Ana", out.Result.DetectedName)
	assert.Len(t, out.Result.Replies, 2)
	assert.False(t, out.Degraded)
	assert.Equal(t, "Ana", out.Session.ContactName)
	assert.Equal(t, []string{"She asked about the weekend."}, out.Session.History)
}

func TestAnalyzeIgnoresNonImage(t *testing.T) {
	srv, svc := newTestServer(t, &stubGateway{reply: analysisText})
	session := createSession(t, srv)

	resp := uploadImage(t, srv.URL+"/api/sessions/"+session.ID+"/analyze", []byte("plain text, not a screenshot"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	got, err := svc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, got.History)
	assert.Equal(t, types.NewChatName, got.ContactName)
}

func TestAnalyzeServiceFailure(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{err: errors.New("boom")})
	session := createSession(t, srv)

	resp := uploadImage(t, srv.URL+"/api/sessions/"+session.ID+"/analyze", pngHeader, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, coach.MessageAnalysisFailed, body["error"])
}

func TestFeedbackAndContext(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{})
	session := createSession(t, srv)
	base := srv.URL + "/api/sessions/" + session.ID

	resp := postJSON(t, base+"/feedback", map[string]string{"reply": "hi there", "rating": "positive"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, base+"/feedback", map[string]string{"reply": "hi there", "rating": "meh"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPut, base+"/context", strings.NewReader(`{"personalContext":"met at the gym"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated types.ChatSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "met at the gym", updated.PersonalContext)
	require.Len(t, updated.FeedbackLog, 1)
	assert.Equal(t, types.RatingPositive, updated.FeedbackLog[0].Rating)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	srv, svc := newTestServer(t, &stubGateway{})
	session := createSession(t, srv)
	url := srv.URL + "/api/sessions/" + session.ID

	req, err := http.NewRequest(http.MethodDelete, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	req, err = http.NewRequest(http.MethodDelete, url+"?confirm=true", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = svc.GetSession(context.Background(), session.ID)
	assert.ErrorIs(t, err, coach.ErrSessionNotFound)
}

func TestTranslate(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{})

	resp := postJSON(t, srv.URL+"/api/translate", map[string]string{"text": "hola"})
	var out translateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, "EN:hola", out.Text)

	resp = postJSON(t, srv.URL+"/api/translate", map[string]string{"text": "hola", "language": "en"})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, "English:hola", out.Text)
	assert.Equal(t, "English", out.Language)

	resp = postJSON(t, srv.URL+"/api/translate", map[string]string{"text": "hello", "language": "lg"})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, "Luganda:hello", out.Text)
	assert.Equal(t, "Luganda", out.Language)

	resp = postJSON(t, srv.URL+"/api/translate", map[string]string{"text": "hello", "language": "Klingon"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTranslateFailureMessage(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{translateErr: errors.New("down")})

	resp := postJSON(t, srv.URL+"/api/translate", map[string]string{"text": "hello", "language": "Swahili"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Failed to translate to Swahili.", body["error"])
}

func TestTranslateToEnglishReportsFailure(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{translateErr: errors.New("down")})

	resp := postJSON(t, srv.URL+"/api/translate", map[string]string{"text": "hola", "language": "English"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Failed to translate to English.", body["error"])
}

func TestListLanguages(t *testing.T) {
	srv, _ := newTestServer(t, &stubGateway{})
	resp, err := http.Get(srv.URL + "/api/languages")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out languagesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Luganda", out.Default.Name)
	assert.Equal(t, len(types.Languages), len(out.Languages))
}
