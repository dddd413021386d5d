package confinode_test

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/amitgilad3/confinode"
	"github.com/amitgilad3/confinode/description"
	"github.com/amitgilad3/confinode/gateway"
	"github.com/amitgilad3/confinode/logging"
)

// Example searches upward from a sub-directory and binds the first
// configuration found into a struct.
func Example() {
	type Config struct {
		Environment string `conf:"default:dev,oneof:prod,staging,dev"`
		Port        int    `conf:"default:8080,min:1024,max:65535"`
		Database    struct {
			Host string `conf:"required"`
			Port int    `conf:"default:5432"`
		} `conf:"prefix:database"`
	}

	fsys := afero.NewMemMapFs()
	_ = fsys.MkdirAll("/srv/project/cmd/server", 0o755)
	_ = afero.WriteFile(fsys, "/srv/project/.myapprc.yaml", []byte("environment: staging\ndatabase:\n  host: db.internal\n"), 0o644)

	c := confinode.New[Config]("myapp", description.Struct[Config](),
		confinode.WithGateway(gateway.NewFS(fsys)),
		confinode.WithBaseDirectory("/srv/project"),
		confinode.WithStopDirectory("/srv"),
		confinode.WithLogger(logging.Discard()))

	result := c.Search(context.Background(), "cmd/server")
	if result == nil {
		fmt.Println("not found")
		return
	}

	fmt.Printf("File: %s\n", result.Files.Name)
	fmt.Printf("Environment: %s\n", result.Config.Environment)
	fmt.Printf("Port: %d\n", result.Config.Port)
	fmt.Printf("Database: %s:%d\n", result.Config.Database.Host, result.Config.Database.Port)

	// Output:
	// File: /srv/project/.myapprc.yaml
	// Environment: staging
	// Port: 8080
	// Database: db.internal:5432
}

// ExampleConfinode_LoadAsync loads a file by path on the non-blocking driver.
func ExampleConfinode_LoadAsync() {
	type Config struct {
		Timeout    time.Duration `conf:"default:30s"`
		MaxRetries int           `conf:"default:3,min:1,max:10"`
	}

	fsys := afero.NewMemMapFs()
	_ = afero.WriteFile(fsys, "/srv/project/conf/client.toml", []byte("maxretries = 5\n"), 0o644)

	c := confinode.New[Config]("client", description.Struct[Config](),
		confinode.WithGateway(gateway.NewFS(fsys)),
		confinode.WithBaseDirectory("/srv/project"),
		confinode.WithLogger(logging.Discard()))

	ctx := context.Background()
	result, err := c.LoadAsync(ctx, "./conf/client.toml").Await(ctx)
	if err != nil || result == nil {
		fmt.Println("not loaded")
		return
	}

	fmt.Printf("Timeout: %v\n", result.Config.Timeout)
	fmt.Printf("MaxRetries: %d\n", result.Config.MaxRetries)

	// Output:
	// Timeout: 30s
	// MaxRetries: 5
}
