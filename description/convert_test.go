package description

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level string

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		target  reflect.Type
		want    any
		wantErr bool
	}{
		{name: "string to string", raw: "hello", target: reflect.TypeOf(""), want: "hello"},
		{name: "int to string", raw: 42, target: reflect.TypeOf(""), want: "42"},
		{name: "nil to string", raw: nil, target: reflect.TypeOf(""), want: ""},
		{name: "named string type", raw: "debug", target: reflect.TypeOf(level("")), want: level("debug")},
		{name: "bool to bool", raw: true, target: reflect.TypeOf(false), want: true},
		{name: "yes to bool", raw: "YES", target: reflect.TypeOf(false), want: true},
		{name: "invalid bool", raw: "maybe", target: reflect.TypeOf(false), wantErr: true},
		{name: "int to int", raw: 8080, target: reflect.TypeOf(0), want: 8080},
		{name: "int64 to int", raw: int64(7), target: reflect.TypeOf(0), want: 7},
		{name: "integral float to int", raw: float64(3), target: reflect.TypeOf(0), want: 3},
		{name: "fractional float to int", raw: 3.5, target: reflect.TypeOf(0), wantErr: true},
		{name: "string to int", raw: " -123 ", target: reflect.TypeOf(0), want: -123},
		{name: "invalid string to int", raw: "not a number", target: reflect.TypeOf(0), wantErr: true},
		{name: "int8 overflow", raw: 300, target: reflect.TypeOf(int8(0)), wantErr: true},
		{name: "uint from int", raw: 5, target: reflect.TypeOf(uint(0)), want: uint(5)},
		{name: "negative uint", raw: -1, target: reflect.TypeOf(uint(0)), wantErr: true},
		{name: "float from int", raw: 2, target: reflect.TypeOf(0.0), want: 2.0},
		{name: "float from string", raw: "3.14", target: reflect.TypeOf(0.0), want: 3.14},
		{name: "duration from string", raw: "5s", target: durationType, want: 5 * time.Second},
		{name: "duration from int", raw: 1000, target: durationType, want: time.Microsecond},
		{name: "invalid duration", raw: "soon", target: durationType, wantErr: true},
		{
			name:   "time from RFC3339",
			raw:    "2024-03-01T10:00:00Z",
			target: timeType,
			want:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{name: "time from date", raw: "2024-03-01", target: timeType, want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "invalid time", raw: "yesterday", target: timeType, wantErr: true},
		{name: "string slice from list", raw: []any{"a", 1}, target: reflect.TypeOf([]string{}), want: []string{"a", "1"}},
		{name: "string slice from csv", raw: "a, b", target: reflect.TypeOf([]string{}), want: []string{"a", "b"}},
		{name: "int slice from list", raw: []any{1, "2"}, target: reflect.TypeOf([]int{}), want: []int{1, 2}},
		{name: "int slice bad item", raw: []any{1, "x"}, target: reflect.TypeOf([]int{}), wantErr: true},
		{name: "interface keeps value", raw: map[string]any{"a": 1}, target: reflect.TypeOf((*any)(nil)).Elem(), want: map[string]any{"a": 1}},
		{name: "unsupported type", raw: "x", target: reflect.TypeOf(struct{}{}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertValue(tt.raw, tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertValue_Optional(t *testing.T) {
	got, err := convertValue("42", reflect.TypeOf(Optional[int]{}))
	require.NoError(t, err)
	assert.Equal(t, Optional[int]{Value: 42, Set: true}, got)

	got, err = convertValue(nil, reflect.TypeOf(Optional[int]{}))
	require.NoError(t, err)
	assert.Equal(t, Optional[int]{}, got)

	_, err = convertValue("x", reflect.TypeOf(Optional[bool]{}))
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"false", false, false},
		{"1", true, false},
		{"0", false, false},
		{"Yes", true, false},
		{"no", false, false},
		{"  true  ", true, false},
		{"maybe", false, true},
		{"", false, true},
		{"2", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseBool(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStringSlice(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    []string
		wantErr bool
	}{
		{name: "[]string", input: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "comma-separated", input: "a, b,c", want: []string{"a", "b", "c"}},
		{name: "empty string", input: "", want: []string{}},
		{name: "[]any", input: []any{"a", 1, true, 3.14}, want: []string{"a", "1", "true", "3.14"}},
		{name: "unsupported", input: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStringSlice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
