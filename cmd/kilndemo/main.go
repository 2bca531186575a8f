// Command kilndemo wires a small layered application with kiln,
// including discovery of a plugin-style greeter and graceful shutdown.
// Run it with:
//
//	go run ./cmd/kilndemo
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/kilnhq/kiln"
	"github.com/kilnhq/kiln/discovery"
)

// ---------------------------------------------------------------------------
// Domain types
// ---------------------------------------------------------------------------

type Config struct {
	DatabaseURL string
	LogLevel    string
}

type Logger struct{ Level string }

func (l *Logger) Info(msg string) { fmt.Printf("[%s] %s\n", l.Level, msg) }

// Database implements kiln.Shutdowner — kiln calls Shutdown on it
// automatically, in reverse construction order.
type Database struct {
	URL    string
	Logger *Logger
}

func (db *Database) Query(q string) string {
	db.Logger.Info("query: " + q)
	return "row-result"
}

func (db *Database) Shutdown(ctx context.Context) error {
	db.Logger.Info("database connection closed")
	return nil
}

type UserRepository struct{ DB *Database }

func (r *UserRepository) FindByID(id int) string {
	return r.DB.Query(fmt.Sprintf("SELECT * FROM users WHERE id = %d", id))
}

type UserService struct {
	Repo   *UserRepository
	Logger *Logger
}

func (s *UserService) GetUser(id int) string {
	s.Logger.Info(fmt.Sprintf("looking up user %d", id))
	return s.Repo.FindByID(id)
}

// Greeter is resolved through the discovery pipeline rather than being
// registered directly, demonstrating the manifest + scan + bind flow.
type Greeter interface{ Greet() string }

type englishGreeter struct{ requestID string }

func (g *englishGreeter) Greet() string {
	return fmt.Sprintf("hello (request %s)", g.requestID)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

func main() {
	reg := prometheus.NewRegistry()
	instrumentation := kiln.NewInstrumentation(reg)

	implLoader := discovery.NewRegistryImplementationLoader()

	c := kiln.New(
		kiln.WithInstrumentation(instrumentation),
		kiln.WithScanner(discovery.NewDirScanner()),
		kiln.WithConfigLoader(discovery.NewKoanfConfigLoader()),
		kiln.WithConfigValidator(discovery.NewJSONSchemaValidator()),
		kiln.WithImplementationLoader(implLoader),
	)

	c.On(kiln.EventShutdownError, func(p any) {
		evt := p.(kiln.ShutdownError)
		log.Printf("shutdown error for %s: %v", evt.Name, evt.Err)
	})

	// Registration order does not matter; dependencies are declared
	// explicitly by name.
	mustRegister(c, "config", kiln.Factory(func() *Config {
		return &Config{
			DatabaseURL: env("DATABASE_URL", "postgres://localhost:5432/app"),
			LogLevel:    env("LOG_LEVEL", "info"),
		}
	}))
	mustRegister(c, "logger", kiln.Factory(func(deps kiln.Dependencies) *Logger {
		return &Logger{Level: deps["config"].(*Config).LogLevel}
	}, "config"))
	mustRegister(c, "database", kiln.Factory(func(deps kiln.Dependencies) *Database {
		return &Database{URL: deps["config"].(*Config).DatabaseURL, Logger: deps["logger"].(*Logger)}
	}, "config", "logger"))
	mustRegister(c, "user-repo", kiln.Factory(func(deps kiln.Dependencies) *UserRepository {
		return &UserRepository{DB: deps["database"].(*Database)}
	}, "database"))
	mustRegister(c, "user-service", kiln.Factory(func(deps kiln.Dependencies) *UserService {
		return &UserService{Repo: deps["user-repo"].(*UserRepository), Logger: deps["logger"].(*Logger)}
	}, "user-repo", "logger"))

	if err := c.Initialize(context.Background()); err != nil {
		log.Fatal(err)
	}

	svc, err := c.Resolve(context.Background(), "user-service")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("result:", svc.(*UserService).GetUser(42))

	discoverGreeter(c, implLoader)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error:", err)
	}
}

// discoverGreeter demonstrates the discovery pipeline end to end: it
// registers a manifest, binds a plugin path to a concrete greeter, then
// runs a discovery pass against a directory containing a single enabled
// plugin entry.
func discoverGreeter(c kiln.Container, implLoader *discovery.RegistryImplementationLoader) {
	dir, err := os.MkdirTemp("", "kilndemo-plugins-*")
	if err != nil {
		log.Printf("discovery skipped: %v", err)
		return
	}
	defer os.RemoveAll(dir)

	pluginDir := dir + "/english"
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		log.Printf("discovery skipped: %v", err)
		return
	}
	manifestYAML, err := yaml.Marshal(struct {
		Name    string `yaml:"name"`
		Enabled bool   `yaml:"enabled"`
	}{Name: "english", Enabled: true})
	if err != nil {
		log.Printf("discovery skipped: %v", err)
		return
	}
	if err := os.WriteFile(pluginDir+"/component.yaml", manifestYAML, 0o644); err != nil {
		log.Printf("discovery skipped: %v", err)
		return
	}

	implLoader.Bind(pluginDir, kiln.Factory(func() Greeter {
		return &englishGreeter{requestID: uuid.NewString()}
	}))

	if err := c.RegisterManifest("greeter", kiln.Manifest{ConfigSchema: []byte(`{"type":"object","required":["name","enabled"]}`)}); err != nil {
		log.Printf("manifest registration failed: %v", err)
		return
	}

	results, err := c.Discover(context.Background(), "greeter", dir)
	if err != nil {
		log.Printf("discovery failed: %v", err)
		return
	}

	for name, result := range results {
		if regErr := c.Register(name, result.Implementation); regErr != nil {
			log.Printf("register discovered %s: %v", name, regErr)
			continue
		}
		instance, resolveErr := c.Resolve(context.Background(), name)
		if resolveErr != nil {
			log.Printf("resolve discovered %s: %v", name, resolveErr)
			continue
		}
		fmt.Println("greeter:", instance.(Greeter).Greet())
	}
}

func mustRegister(c kiln.Container, name string, impl kiln.Implementation, opts ...kiln.Option) {
	if err := c.Register(name, impl, opts...); err != nil {
		log.Fatalf("register %s: %v", name, err)
	}
}
