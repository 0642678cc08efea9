package params_test

import (
	"errors"
	"fmt"

	params "github.com/0xalexb/hjarta-params"
	"github.com/0xalexb/hjarta-params/check"
	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/inject"

	"go.uber.org/fx"
)

// ServerConfig is decoded from the "server" namespace.
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Timeout int    `yaml:"timeout"`
}

// Validate validates the configuration.
func (c *ServerConfig) Validate() error {
	if c.Timeout < 1 {
		return errors.New("timeout must be positive")
	}

	return nil
}

// ServerService is a service that depends on config.
type ServerService struct {
	Config *ServerConfig
}

// Address returns the server address from config.
func (s *ServerService) Address() string {
	return fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
}

func declareServer() *config.Config {
	cfg := config.New()
	cfg.DeclareSection("server", "HTTP server").
		Param("host", config.Param{Checker: check.Str(), Default: "localhost"}).
		Param("port", config.Param{Checker: check.And(check.Int(), check.InRange(1, 65535)), Default: 8080}).
		Param("timeout", config.Param{Checker: check.Int(), Default: 30})

	return cfg
}

// Example_appWithConfigIntegration declares parameters, resolves them from
// several sources and hands them to Fx constructors.
func Example_appWithConfigIntegration() {
	serviceModule := fx.Module("service",
		params.Bind[ServerConfig]("server"),
		fx.Provide(func(cfg *ServerConfig) *ServerService {
			return &ServerService{Config: cfg}
		}),
	)

	var service *ServerService

	app := params.NewApp(
		params.WithLogLevel("error"),
		params.WithConfig(declareServer()),
		params.WithSources(
			config.EnvSource{Environ: []string{"server.host=api.example.com"}},
			config.MapSource{"server": map[string]any{"port": "9000"}},
		),
		params.WithModules(serviceModule, fx.Invoke(func(s *ServerService) {
			service = s
		})),
	)

	err := app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	fmt.Printf("Server address: %s\n", service.Address())
	fmt.Printf("Timeout: %d\n", service.Config.Timeout)
	// Output:
	// Server address: api.example.com:9000
	// Timeout: 30
}

func ExampleInvoke() {
	greet := inject.New(func(host string, port int) {
		fmt.Printf("listening on %s:%d\n", host, port)
	}, "host", "port").
		Param("host").
		Param("port").
		Section("server")

	app := params.NewApp(
		params.WithLogLevel("error"),
		params.WithConfig(declareServer()),
		params.WithModules(params.Invoke(greet)),
	)

	err := app.Start()
	if err != nil {
		fmt.Println(err)

		return
	}

	_ = app.Stop()
	// Output: listening on localhost:8080
}
