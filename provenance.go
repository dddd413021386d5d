package confinode

// Provenance records which file a configuration came from.
type Provenance struct {
	Name    string       `json:"name" yaml:"name"`
	Extends []Provenance `json:"extends" yaml:"extends"` // Inherited files; reserved, always empty
}

// Result is a loaded configuration together with its provenance.
type Result[T any] struct {
	Config T
	Files  Provenance
}

func newResult[T any](cfg T, fileName string) *Result[T] {
	return &Result[T]{
		Config: cfg,
		Files:  Provenance{Name: fileName, Extends: []Provenance{}},
	}
}
