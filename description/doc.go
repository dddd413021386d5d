// Package description turns raw configuration documents into typed values.
//
// Struct binds a parsed document into a struct using `conf` tags:
//
//	type Config struct {
//		Host     string        `conf:"required"`
//		Port     int           `conf:"default:8080,min:1024,max:65535"`
//		Mode     string        `conf:"default:dev,oneof:dev,staging,prod"`
//		Password string        `conf:"secret"`
//		Timeout  time.Duration `conf:"default:5s"`
//		Database Database      `conf:"prefix:db"`
//	}
//
// Nested maps are flattened to lowercase dot-separated keys ("db.host") and
// matched against field key paths. Field names are lowercased ("MaxConns"
// matches "maxconns"); name:<path> sets an absolute key path and prefix:<path>
// re-roots a nested struct. Unknown keys are rejected unless strict mode is
// turned off. WithEnvPrefix overlays environment variables on top of the file
// ("APP_DB__HOST" sets "db.host").
//
// All binding and validation failures of one document are reported together
// in a *ValidationError.
package description
