package description

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindStruct_SimpleFields(t *testing.T) {
	type Config struct {
		Host string
		Port int
	}

	var cfg Config
	errs := bindStruct(reflect.ValueOf(&cfg), map[string]any{"host": "localhost", "port": "8080"}, "", "")

	require.Empty(t, errs)
	assert.Equal(t, Config{Host: "localhost", Port: 8080}, cfg)
}

func TestBindStruct_Defaults(t *testing.T) {
	type Config struct {
		Host    string        `conf:"default:localhost"`
		Port    int           `conf:"default:8080"`
		Timeout time.Duration `conf:"default:5s"`
	}

	var cfg Config
	errs := bindStruct(reflect.ValueOf(&cfg), map[string]any{"host": "example.com", "port": nil}, "", "")

	require.Empty(t, errs)
	assert.Equal(t, Config{Host: "example.com", Port: 8080, Timeout: 5 * time.Second}, cfg)
}

func TestBindStruct_RequiredField(t *testing.T) {
	type Config struct {
		Host string `conf:"required"`
		Port int
	}

	var cfg Config
	errs := bindStruct(reflect.ValueOf(&cfg), map[string]any{"port": 1}, "", "")

	require.Len(t, errs, 1)
	assert.Equal(t, "Host", errs[0].FieldPath)
	assert.Equal(t, ErrCodeRequired, errs[0].Code)
}

func TestBindStruct_Nested(t *testing.T) {
	type Database struct {
		Host string
		Port int
	}
	type Config struct {
		Database Database
		Replica  Database `conf:"prefix:db.replica"`
		Key      string   `conf:"name:auth.apikey"`
	}

	data := map[string]any{
		"database.host":   "primary",
		"database.port":   5432,
		"db.replica.host": "replica",
		"auth.apikey":     "k",
	}
	var cfg Config
	errs := bindStruct(reflect.ValueOf(&cfg), data, "", "")

	require.Empty(t, errs)
	assert.Equal(t, "primary", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "replica", cfg.Replica.Host)
	assert.Equal(t, "k", cfg.Key)
}

func TestBindStruct_MapField(t *testing.T) {
	type Config struct {
		Labels map[string]string
		Limits map[string]int
	}

	data := map[string]any{
		"labels.team": "core",
		"labels.tier": 1,
		"limits.cpu":  "2",
	}
	var cfg Config
	errs := bindStruct(reflect.ValueOf(&cfg), data, "", "")

	require.Empty(t, errs)
	assert.Equal(t, map[string]string{"team": "core", "tier": "1"}, cfg.Labels)
	assert.Equal(t, map[string]int{"cpu": 2}, cfg.Limits)
}

func TestBindStruct_CollectsAllErrors(t *testing.T) {
	type Config struct {
		Port    int
		Debug   bool
		Timeout time.Duration
		Name    string `conf:"required"`
	}

	var cfg Config
	errs := bindStruct(reflect.ValueOf(&cfg), map[string]any{
		"port":    "abc",
		"debug":   "maybe",
		"timeout": "soon",
	}, "", "")

	require.Len(t, errs, 4)
	codes := make([]string, len(errs))
	for i, fe := range errs {
		codes[i] = fe.Code
	}
	assert.Equal(t, []string{ErrCodeInvalidType, ErrCodeInvalidType, ErrCodeInvalidType, ErrCodeRequired}, codes)
}

func TestBindStruct_OptionalAndTime(t *testing.T) {
	type Config struct {
		Metrics Optional[bool]
		Limit   Optional[int]
		Since   time.Time
	}

	var cfg Config
	errs := bindStruct(reflect.ValueOf(&cfg), map[string]any{
		"metrics": false,
		"since":   "2024-01-02",
	}, "", "")

	require.Empty(t, errs)
	v, ok := cfg.Metrics.Get()
	assert.True(t, ok)
	assert.False(t, v)
	_, ok = cfg.Limit.Get()
	assert.False(t, ok)
	assert.Equal(t, 7, cfg.Limit.OrDefault(7))
	assert.Equal(t, 2024, cfg.Since.Year())
}

func TestDetermineKeyPath(t *testing.T) {
	tests := []struct {
		name         string
		fieldName    string
		tags         tagConfig
		parentPrefix string
		expected     string
	}{
		{name: "simple field", fieldName: "Host", expected: "host"},
		{name: "mixed case", fieldName: "HTTPPort", expected: "httpport"},
		{name: "underscores kept", fieldName: "Max_Connections", expected: "max_connections"},
		{name: "parent prefix", fieldName: "Host", parentPrefix: "app.server.db", expected: "app.server.db.host"},
		{name: "name is absolute", fieldName: "Host", tags: tagConfig{name: "custom_host"}, parentPrefix: "database", expected: "custom_host"},
		{name: "name lowercased", fieldName: "Host", tags: tagConfig{name: "DB.Primary.Host"}, expected: "db.primary.host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineKeyPath(tt.fieldName, tt.tags, tt.parentPrefix))
		})
	}
}

func TestCollectKeys(t *testing.T) {
	type Server struct {
		Host string
		Port int `conf:"env:PORT"`
	}
	type Config struct {
		Server  Server `conf:"prefix:http"`
		Labels  map[string]string
		Created time.Time
		Opt     Optional[int]
		private string
	}

	keys := collectKeys(reflect.TypeOf(Config{}))

	assert.Equal(t, map[string]bool{
		"http.host": true,
		"http.port": true,
		"created":   true,
		"opt":       true,
	}, keys.exact)
	assert.Equal(t, []string{"labels"}, keys.prefixes)
	assert.Equal(t, map[string]string{"http.port": "PORT"}, keys.env)

	assert.True(t, keys.accepts("labels.anything"))
	assert.False(t, keys.accepts("labels"))
	assert.False(t, keys.accepts("private"))
}

func TestUnknownKeys(t *testing.T) {
	type Config struct {
		Host string
	}

	errs := unknownKeys(map[string]any{"host": "x", "zeta": 1, "alpha": 2}, collectKeys(reflect.TypeOf(Config{})))

	require.Len(t, errs, 2)
	assert.Equal(t, "alpha", errs[0].FieldPath)
	assert.Equal(t, "zeta", errs[1].FieldPath)
	assert.Equal(t, ErrCodeUnknownKey, errs[0].Code)
}
