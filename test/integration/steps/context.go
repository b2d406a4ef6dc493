// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/budget-dashboard/backend/config"
	"github.com/budget-dashboard/backend/internal/infra/db"
	"github.com/budget-dashboard/backend/internal/infra/dependency"
	"github.com/budget-dashboard/backend/internal/integration/persistence/model"
	"github.com/budget-dashboard/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Session
	sessionToken string

	// Dependencies
	cfg      *config.Config
	injector *dependency.Injector
	db       *mock.Db
	clock    *mock.Time
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// scenario is GetTestContext for step functions.
func scenario(ctx context.Context) (*TestContext, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}
	return tc, nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = "test-jwt-secret-key-for-testing-purposes"
	cfg.Session.IdleTTL = 2 * time.Hour
	cfg.Upload.RateLimitRequests = 1000
	return cfg
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		database := mock.NewDb(&model.UploadModel{})
		if err := database.ClearDB(); err != nil {
			return ctx, err
		}
		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			cfg:            testConfig(),
			db:             database,
			clock:          mock.NewTime(),
		}
		tc.injector = dependency.NewInjectorWithClock(tc.cfg, db.Wrap(database.DbConn), redisClient, tc.clock.Now)
		tc.engine = tc.injector.Router.Setup("test")
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerSessionSteps(ctx)
	registerResponseSteps(ctx)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I upload the budget document "([^"]*)":$`, iUploadTheBudgetDocument)
	ctx.Step(`^I upload the spending export "([^"]*)":$`, iUploadTheSpendingExport)
}

// registerSessionSteps registers session lifecycle steps.
func registerSessionSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I have a session$`, iHaveASession)
	ctx.Step(`^I use the token "([^"]*)"$`, iUseTheToken)
	ctx.Step(`^(\d+) hours pass$`, hoursPass)
	ctx.Step(`^the session janitor runs$`, theSessionJanitorRuns)
	ctx.Step(`^(\d+) uploads? should be recorded$`, uploadsShouldBeRecorded)
	ctx.Step(`^the spending cache should hold (\d+) entr(?:y|ies)$`, theSpendingCacheShouldHold)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, theResponseHeaderShouldContain)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (tc *TestContext) do(method, endpoint, contentType string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.sessionToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc, err := scenario(ctx)
	if err != nil {
		return ctx, err
	}
	return ctx, tc.do(method, endpoint, "", nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc, err := scenario(ctx)
	if err != nil {
		return ctx, err
	}
	return ctx, tc.do(method, endpoint, "application/json", bytes.NewBufferString(body.Content))
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc, err := scenario(ctx)
	if err != nil {
		return ctx, err
	}
	tc.requestHeaders[header] = value
	return ctx, nil
}

func iUploadTheBudgetDocument(ctx context.Context, name string, body *godog.DocString) (context.Context, error) {
	tc, err := scenario(ctx)
	if err != nil {
		return ctx, err
	}
	return ctx, tc.do(http.MethodPut, "/api/v1/budget?filename="+name, "application/octet-stream", strings.NewReader(body.Content))
}

func iUploadTheSpendingExport(ctx context.Context, name string, body *godog.DocString) (context.Context, error) {
	tc, err := scenario(ctx)
	if err != nil {
		return ctx, err
	}
	return ctx, tc.do(http.MethodPut, "/api/v1/actuals?filename="+name, "text/csv", strings.NewReader(body.Content))
}

func iHaveASession(ctx context.Context) (context.Context, error) {
	tc, err := scenario(ctx)
	if err != nil {
		return ctx, err
	}
	if err := tc.do(http.MethodPost, "/api/v1/sessions", "", nil); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return ctx, fmt.Errorf("failed to create session: %d %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var created struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(tc.responseBody, &created); err != nil {
		return ctx, fmt.Errorf("failed to parse session response: %w", err)
	}
	tc.sessionToken = created.Token
	return ctx, nil
}

func iUseTheToken(ctx context.Context, token string) (context.Context, error) {
	tc, err := scenario(ctx)
	if err != nil {
		return ctx, err
	}
	tc.sessionToken = token
	return ctx, nil
}

func hoursPass(ctx context.Context, hours int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.clock.Advance(time.Duration(hours) * time.Hour)
	return nil
}

func theSessionJanitorRuns(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return tc.injector.Janitor.Run()
}

func uploadsShouldBeRecorded(ctx context.Context, expected int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	count, err := tc.db.Count(&model.UploadModel{})
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d recorded uploads, got %d", expected, count)
	}
	return nil
}

func theSpendingCacheShouldHold(ctx context.Context, expected int) error {
	keys := mock.RedisKeys()
	if len(keys) != expected {
		return fmt.Errorf("expected %d cache entries, got %d: %v", expected, len(keys), keys)
	}
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

// lookupField resolves a dotted path such as "variances.0.category".
func lookupField(body []byte, path string) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = value
		case []interface{}:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' of '%s' out of range", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}

	value, err := lookupField(tc.responseBody, field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	_, err = lookupField(tc.responseBody, field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}

	value, err := lookupField(tc.responseBody, field)
	if err != nil {
		return err
	}
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(items) != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expected, len(items))
	}
	return nil
}

func theResponseHeaderShouldContain(ctx context.Context, header, expected string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if actual := tc.response.Header.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}
