// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/personal-finance/tracker-api/config"
	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/infra/dependency"
	"github.com/personal-finance/tracker-api/internal/integration/cache"
	"github.com/personal-finance/tracker-api/internal/integration/email"
	"github.com/personal-finance/tracker-api/internal/integration/persistence/model"
	"github.com/personal-finance/tracker-api/test/integration/mock"
)

const (
	testJWTSecret      = "test-jwt-secret-key-for-testing-purposes"
	testLoginRateLimit = 5
	emailsPath         = "/emails"
)

// suiteResources are shared by every scenario and reset between them.
type suiteResources struct {
	db       *mock.Db
	redis    *miniredis.Miniredis
	emailAPI *mock.ApiMock
	insights *insightStub
	events   *eventRecorder
	injector *dependency.Injector
	server   *httptest.Server
}

var (
	suiteOnce sync.Once
	suite     *suiteResources
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		suiteOnce.Do(func() {
			suite = newSuiteResources()
		})
	})

	ctx.AfterSuite(func() {
		if suite == nil {
			return
		}
		suite.server.Close()
		suite.emailAPI.Close()
		_ = suite.injector.Close()
	})
}

func newSuiteResources() *suiteResources {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.LoginRateLimit = testLoginRateLimit
	cfg.JWT.Secret = testJWTSecret
	cfg.Redis.Enabled = true
	cfg.Gemini.Timeout = 2 * time.Second
	cfg.Scheduler.Enabled = false

	database := mock.NewDb("tracker_bdd",
		[]string{"budgets", "transactions", "refresh_tokens", "users"},
		model.AllModels()...,
	)
	redisServer, redisClient := mock.NewRedis()

	emailAPI := mock.NewApiServer()
	emailAPI.Start()
	sender, err := email.NewResendClient("re_test", "Finance Tracker", "alerts@example.com", emailAPI.GetUrl())
	if err != nil {
		panic(fmt.Sprintf("failed to create email client: %v", err))
	}

	insights := &insightStub{}
	events := &eventRecorder{}

	injector, err := dependency.NewInjector(cfg, database.Database, dependency.Externals{
		StatisticsCache:  cache.NewRedisStatisticsCache(redisClient, cfg.Redis.StatisticsTTL),
		EventPublisher:   events,
		EmailSender:      sender,
		InsightGenerator: insights,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to wire application: %v", err))
	}

	return &suiteResources{
		db:       database,
		redis:    redisServer,
		emailAPI: emailAPI,
		insights: insights,
		events:   events,
		injector: injector,
		server:   httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
	}
}

func (s *suiteResources) reset() error {
	if err := s.db.ClearDB(); err != nil {
		return err
	}
	s.redis.SetError("")
	mock.ClearRedis(s.redis)
	s.emailAPI.Reset()
	s.emailAPI.SetResponse(http.MethodPost, emailsPath, http.StatusOK, map[string]any{"id": "email-test-id"})
	s.insights.reset()
	s.events.reset()
	s.injector.LoginRateLimiter.Reset()
	return nil
}

// TestContext holds the state of one scenario.
type TestContext struct {
	client      *http.Client
	baseURL     string
	response    *response
	accessToken string
	tokens      map[string]tokenPair // by email
	variables   map[string]string
}

type tokenPair struct {
	access  string
	refresh string
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &TestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		suiteOnce.Do(func() {
			suite = newSuiteResources()
		})
		if err := suite.reset(); err != nil {
			return ctx, err
		}

		*tc = TestContext{
			client:    &http.Client{Timeout: 10 * time.Second},
			baseURL:   suite.server.URL,
			tokens:    map[string]tokenPair{},
			variables: map[string]string{},
		}
		return ctx, nil
	})

	registerAPISteps(ctx, tc)
	registerResponseSteps(ctx, tc)
	registerDomainSteps(ctx, tc)
}

// insightStub is a scripted insight generator.
type insightStub struct {
	mu        sync.Mutex
	available bool
	answer    string
	err       error
	prompts   []string
}

func (s *insightStub) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.answer, s.err
}

func (s *insightStub) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

func (s *insightStub) script(available bool, answer string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available, s.answer, s.err = available, answer, err
}

func (s *insightStub) receivedPrompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

func (s *insightStub) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available, s.answer, s.err, s.prompts = false, "", nil, nil
}

// eventRecorder captures published ledger events.
type eventRecorder struct {
	mu     sync.Mutex
	events []adapter.LedgerEvent
}

func (r *eventRecorder) Publish(_ context.Context, event adapter.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) Close() error { return nil }

func (r *eventRecorder) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, event := range r.events {
		if string(event.Type) == eventType {
			count++
		}
	}
	return count
}

func (r *eventRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
