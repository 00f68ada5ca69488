package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"twittertext/internal/adapters/cache"
	"twittertext/internal/adapters/configstore"
	"twittertext/internal/domain"
	"twittertext/internal/usecases"
	"twittertext/pkg/log"
	"twittertext/pkg/twittertext"
)

func newTestServer(t *testing.T, rateLimit int) *fiber.App {
	t.Helper()
	logger := log.Discard()
	configs := configstore.New(logger)
	results := cache.NewMemoryCache(time.Minute, 0)
	t.Cleanup(results.Close)
	metrics := NewMetrics()
	handlers := NewHandlers(
		usecases.NewAnalyzeTextUseCase(results, configs, 1024, logger),
		usecases.NewExtractEntitiesUseCase(1024, logger),
		usecases.NewValidateTextUseCase(configs, 1024, logger),
		configs,
		metrics,
		logger,
	)
	return NewApp(AppConfig{
		Handlers:    handlers,
		RateLimiter: NewRateLimiter(rateLimit, time.Minute),
		Metrics:     metrics,
		Logger:      logger,
	})
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func TestHandlers_Extract(t *testing.T) {
	// Arrange
	app := newTestServer(t, 0)

	// Act
	resp, body := postJSON(t, app, "/api/extract?types=hashtag", `{"text":"#go and @gopher","types":["mention"]}`)

	// Assert
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var got struct {
		Entities []twittertext.Entity `json:"entities"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Entities) != 2 || got.Entities[0].Value != "go" || got.Entities[1].Type != twittertext.Mention {
		t.Errorf("entities = %+v", got.Entities)
	}
	if !strings.Contains(string(body), `"type":"hashtag"`) {
		t.Errorf("entity types should be encoded as names: %s", body)
	}
}

func TestHandlers_Parse(t *testing.T) {
	app := newTestServer(t, 0)

	resp, body := postJSON(t, app, "/api/parse", `{"text":"hello https://example.com/x","config":"v2","extract_urls":true}`)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var got domain.Analysis
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Config != "v2" || got.Results.WeightedLength != 29 || !got.Results.IsValid {
		t.Errorf("analysis = %+v", got)
	}
	if len(got.Entities) != 1 || got.Entities[0].Start != 6 {
		t.Errorf("entities = %+v", got.Entities)
	}
}

func TestHandlers_Validate(t *testing.T) {
	app := newTestServer(t, 0)

	resp, body := postJSON(t, app, "/api/validate", `{"kind":"hashtag","text":"#golang"}`)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `"valid":true`) {
		t.Errorf("body = %s", body)
	}
}

func TestHandlers_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"empty text", "/api/parse", `{"text":""}`, 400, "empty_text"},
		{"too long", "/api/parse", `{"text":"` + strings.Repeat("a", 2000) + `"}`, 413, "text_too_long"},
		{"unknown config", "/api/parse", `{"text":"x","config":"v9"}`, 404, "unknown_config"},
		{"unknown type", "/api/extract", `{"text":"x","types":["emoji"]}`, 400, "unknown_entity_type"},
		{"unknown kind", "/api/validate", `{"kind":"emoji","text":"x"}`, 400, "unknown_validation"},
		{"malformed", "/api/extract", `{"text":`, 400, "bad_request"},
	}
	app := newTestServer(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, tt.path, tt.body)

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var got errorResponse
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("body is not an error response: %s", body)
			}
			if got.Code != tt.code {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
		})
	}
}

func TestHandlers_Configs(t *testing.T) {
	app := newTestServer(t, 0)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/configs", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got struct {
		Configs []struct {
			Name    string                    `json:"name"`
			Default bool                      `json:"default"`
			Config  twittertext.Configuration `json:"config"`
		} `json:"configs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Configs) != 3 || got.Configs[2].Name != "v3" || !got.Configs[2].Default {
		t.Fatalf("configs = %+v", got.Configs)
	}
	if got.Configs[1].Config.Ranges[0].Range.End != 4351 {
		t.Errorf("v2 ranges = %+v", got.Configs[1].Config.Ranges)
	}
}

func TestHandlers_Playground(t *testing.T) {
	app := newTestServer(t, 0)
	form := url.Values{"text": {"hi #go <b>"}, "config": {"v3"}, "extract_urls": {"true"}}
	req := httptest.NewRequest("POST", "/playground", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{`<mark data-kind="hashtag">#go</mark>`, "&lt;b&gt;", "<strong>10</strong>"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("body should contain %s: %s", want, body)
		}
	}
}

func TestHandlers_HomeAndHealth(t *testing.T) {
	app := newTestServer(t, 0)

	home, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(home.Body)
	home.Body.Close()
	if !strings.Contains(string(body), `<option value="v3" selected>v3</option>`) {
		t.Errorf("home should preselect the default config: %s", body)
	}

	health, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	health.Body.Close()
	if health.StatusCode != fiber.StatusOK {
		t.Errorf("health status = %d", health.StatusCode)
	}
}

func TestHandlers_RateLimitedAndMetrics(t *testing.T) {
	app := newTestServer(t, 1)

	first, _ := postJSON(t, app, "/api/extract", `{"text":"#one"}`)
	second, body := postJSON(t, app, "/api/extract", `{"text":"#two"}`)

	if first.StatusCode != fiber.StatusOK || second.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("statuses = %d, %d (%s)", first.StatusCode, second.StatusCode, body)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	metrics, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		`twittertext_rate_limited_total 1`,
		`twittertext_entities_extracted_total{kind="hashtag"} 1`,
		`twittertext_http_requests_total{method="POST",route="/api/extract",status="429"} 1`,
	} {
		if !strings.Contains(string(metrics), want) {
			t.Errorf("metrics should contain %s", want)
		}
	}
}

func TestHandlers_Playground_MarksNormalizedText(t *testing.T) {
	// Arrange
	app := newTestServer(t, 0)
	form := url.Values{"text": {"cafe\u0301 #go"}, "config": {"v3"}, "extract_urls": {"true"}}
	req := httptest.NewRequest("POST", "/playground", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Act
	resp, err := app.Test(req)

	// Assert
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if want := "caf\u00e9 <mark data-kind=\"hashtag\">#go</mark></pre>"; !strings.Contains(string(body), want) {
		t.Errorf("body should contain %q: %s", want, body)
	}
	if strings.Contains(string(body), `class="over"`) {
		t.Errorf("nothing should be struck through: %s", body)
	}
}
