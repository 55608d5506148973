package africastalking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/domain"
	"github.com/kailas-cloud/rentbill/internal/metrics"
)

// fakeProvider records what the client sent to the two endpoints.
type fakeProvider struct {
	balance    string
	sendStatus int
	sendBody   string

	gotUsername string
	gotTo       string
	gotMessage  string
	gotFrom     string
}

func (f *fakeProvider) router(t *testing.T) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("apiKey") != "test-key" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte("The supplied authentication is invalid"))
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/version1/user", func(w http.ResponseWriter, req *http.Request) {
		f.gotUsername = req.URL.Query().Get("username")
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"UserData": map[string]any{}}
		if f.balance != "" {
			resp["UserData"] = map[string]any{"balance": f.balance}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	r.Post("/version1/messaging", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.gotUsername = req.PostForm.Get("username")
		f.gotTo = req.PostForm.Get("to")
		f.gotMessage = req.PostForm.Get("message")
		f.gotFrom = req.PostForm.Get("from")

		status := f.sendStatus
		if status == 0 {
			status = http.StatusCreated
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(f.sendBody))
	})
	return r
}

func newTestClient(t *testing.T, f *fakeProvider, apiKey string) *Client {
	t.Helper()
	server := httptest.NewServer(f.router(t))
	t.Cleanup(server.Close)

	c, err := NewClient(&Config{
		Username: "sandbox",
		APIKey:   apiKey,
		BaseURL:  server.URL,
		Timeout:  5 * time.Second,
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	return c
}

const sendOK = `{"SMSMessageData":{"Message":"Sent to 1/1 Total Cost: KES 0.8000","Recipients":[` +
	`{"statusCode":101,"number":"+254712345678","status":"Success","cost":"KES 0.8000","messageId":"ATXid_1"}]}}`

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(&Config{Username: "sandbox"})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)

	_, err = NewClient(&Config{APIKey: "key"})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestNewClient_BaseURLFromUsername(t *testing.T) {
	sandbox, err := NewClient(&Config{Username: "Sandbox-Test", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, SandboxBaseURL, sandbox.baseURL)

	prod, err := NewClient(&Config{Username: "landlord", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, ProductionBaseURL, prod.baseURL)

	custom, err := NewClient(&Config{Username: "landlord", APIKey: "k", BaseURL: "http://localhost:1/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1", custom.baseURL)
}

func TestEnvironment(t *testing.T) {
	assert.Equal(t, "Sandbox", Environment("sandbox"))
	assert.Equal(t, "Sandbox", Environment("my-SANDBOX-app"))
	assert.Equal(t, "Production", Environment("landlord"))
}

func TestFetchBalance(t *testing.T) {
	f := &fakeProvider{balance: "KES 1785.50"}
	c := newTestClient(t, f, "test-key")

	balance, err := c.FetchBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "KES 1785.50", balance)
	assert.Equal(t, "sandbox", f.gotUsername)
}

func TestFetchBalance_Unknown(t *testing.T) {
	c := newTestClient(t, &fakeProvider{}, "test-key")

	balance, err := c.FetchBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Unknown", balance)
}

func TestFetchBalance_BadKey(t *testing.T) {
	c := newTestClient(t, &fakeProvider{}, "wrong-key")

	_, err := c.FetchBalance(context.Background())
	require.Error(t, err)

	var pe *domain.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.Equal(t, "The supplied authentication is invalid", pe.Body)
}

func TestSendSMS(t *testing.T) {
	f := &fakeProvider{sendBody: sendOK}
	c := newTestClient(t, f, "test-key")
	before := testutil.ToFloat64(metrics.ProviderRequestsTotal.WithLabelValues(providerName, "send", "success"))

	d, err := c.SendSMS(context.Background(), "Dear Jane, your bill is ready.", []string{"+254712345678"})
	require.NoError(t, err)

	assert.Equal(t, "+254712345678", f.gotTo)
	assert.Equal(t, "Dear Jane, your bill is ready.", f.gotMessage)
	assert.Equal(t, "sandbox", f.gotUsername)
	assert.Empty(t, f.gotFrom)

	assert.Equal(t, "Sent to 1/1 Total Cost: KES 0.8000", d.Summary)
	require.Len(t, d.Recipients, 1)
	assert.Equal(t, "Success", d.Recipients[0].Status)
	assert.Equal(t, 101, d.Recipients[0].StatusCode)
	assert.Equal(t, "ATXid_1", d.Recipients[0].MessageID)
	assert.JSONEq(t, sendOK, d.Raw)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ProviderRequestsTotal.WithLabelValues(providerName, "send", "success")))
}

func TestSendSMS_SenderID(t *testing.T) {
	f := &fakeProvider{sendBody: sendOK}
	server := httptest.NewServer(f.router(t))
	defer server.Close()

	c, err := NewClient(&Config{Username: "sandbox", APIKey: "test-key", SenderID: "RENTCO", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.SendSMS(context.Background(), "hi", []string{"+254712345678"})
	require.NoError(t, err)
	assert.Equal(t, "RENTCO", f.gotFrom)
}

func TestSendSMS_Rejected(t *testing.T) {
	f := &fakeProvider{sendStatus: http.StatusBadRequest, sendBody: "Invalid senderId"}
	c := newTestClient(t, f, "test-key")

	_, err := c.SendSMS(context.Background(), "hi", []string{"+254712345678"})
	assert.ErrorIs(t, err, domain.ErrProviderError)
}

func TestSendSMS_MalformedResponse(t *testing.T) {
	f := &fakeProvider{sendBody: "<html>gateway</html>"}
	c := newTestClient(t, f, "test-key")

	_, err := c.SendSMS(context.Background(), "hi", []string{"+254712345678"})
	assert.Error(t, err)
}

func TestSendSMS_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c, err := NewClient(&Config{Username: "sandbox", APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.SendSMS(context.Background(), "hi", []string{"+254712345678"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProviderError)
}

func TestSendSMS_ContextCanceled(t *testing.T) {
	c := newTestClient(t, &fakeProvider{sendBody: sendOK}, "test-key")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SendSMS(ctx, "hi", []string{"+254712345678"})
	assert.ErrorIs(t, err, context.Canceled)
}
