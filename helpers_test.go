package kiln

import (
	"context"
	"testing"
)

// Shared test types and factories used across test files.

type testLogger struct{ Prefix string }
type testConfig struct{ DSN string }

type testDatabase struct {
	Config *testConfig
	Logger *testLogger
}

type testUserRepo struct {
	DB     *testDatabase
	Logger *testLogger
}

type testService interface {
	Name() string
}

type testUserService struct {
	Repo   *testUserRepo
	Logger *testLogger
}

func (s *testUserService) Name() string { return "user" }

type testOrderService struct{ Logger *testLogger }

func (s *testOrderService) Name() string { return "order" }

func newTestLoggerImpl() Implementation {
	return Factory(func() *testLogger { return &testLogger{Prefix: "app"} })
}

func newTestConfigImpl() Implementation {
	return Factory(func() *testConfig { return &testConfig{DSN: "postgres://localhost"} })
}

func newTestDatabaseImpl() Implementation {
	return Factory(func(deps Dependencies) *testDatabase {
		return &testDatabase{
			Config: deps["config"].(*testConfig),
			Logger: deps["logger"].(*testLogger),
		}
	}, "config", "logger")
}

func newTestUserRepoImpl() Implementation {
	return Factory(func(deps Dependencies) *testUserRepo {
		return &testUserRepo{
			DB:     deps["database"].(*testDatabase),
			Logger: deps["logger"].(*testLogger),
		}
	}, "database", "logger")
}

func newTestUserServiceImpl() Implementation {
	return Factory(func(deps Dependencies) *testUserService {
		return &testUserService{
			Repo:   deps["user-repo"].(*testUserRepo),
			Logger: deps["logger"].(*testLogger),
		}
	}, "user-repo", "logger")
}

func newTestOrderServiceImpl() Implementation {
	return Factory(func(deps Dependencies) *testOrderService {
		return &testOrderService{Logger: deps["logger"].(*testLogger)}
	}, "logger")
}

func newTestCircAImpl() Implementation {
	return Factory(func(deps Dependencies) any { return deps["circ-b"] }, "circ-b")
}

func newTestCircBImpl() Implementation {
	return Factory(func(deps Dependencies) any { return deps["circ-c"] }, "circ-c")
}

func newTestCircCImpl() Implementation {
	return Factory(func(deps Dependencies) any { return deps["circ-a"] }, "circ-a")
}

// registerFullChain wires logger -> config -> database -> user-repo ->
// user-service, exercising every level of the test fixture graph.
func registerFullChain(t testing.TB, c Container) {
	t.Helper()
	mustRegister(t, c, "logger", newTestLoggerImpl())
	mustRegister(t, c, "config", newTestConfigImpl())
	mustRegister(t, c, "database", newTestDatabaseImpl())
	mustRegister(t, c, "user-repo", newTestUserRepoImpl())
	mustRegister(t, c, "user-service", newTestUserServiceImpl())
}

func mustRegister(t testing.TB, c Container, name string, impl Implementation, opts ...Option) {
	t.Helper()
	if err := c.Register(name, impl, opts...); err != nil {
		t.Fatalf("Register(%q) failed: %v", name, err)
	}
}

func mustInitialize(t testing.TB, c Container) {
	t.Helper()
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
}
