package database

// -----------------------------------------------------------
// DOCUMENTO: Título del catálogo
// Colección: titles
// -----------------------------------------------------------

// TitleDocument is one catalog row. Seq keeps the CSV order, which decides
// node insertion order and therefore every tie-break downstream.
type TitleDocument struct {
	Seq         int      `bson:"seq" json:"seq"`
	ShowID      string   `bson:"show_id,omitempty" json:"show_id,omitempty"`
	Kind        string   `bson:"type,omitempty" json:"type,omitempty"`
	Title       string   `bson:"title" json:"title"`
	ReleaseYear int      `bson:"release_year,omitempty" json:"release_year,omitempty"`
	Countries   []string `bson:"countries" json:"countries"`
	Genres      []string `bson:"genres" json:"genres"`
	Directors   []string `bson:"directors,omitempty" json:"directors,omitempty"`
	Cast        []string `bson:"cast,omitempty" json:"cast,omitempty"`
}

// -----------------------------------------------------------
// DOCUMENTO: Log de consultas
// Colección: logs
// -----------------------------------------------------------

// LogDocument records that a query happened. Scores are never stored.
type LogDocument struct {
	RequestID     string `bson:"request_id" json:"request_id"`
	Query         string `bson:"query" json:"query"`
	Resolved      bool   `bson:"resolved" json:"resolved"`
	Results       int    `bson:"results" json:"results"`
	Node          string `bson:"node,omitempty" json:"node,omitempty"`
	LatencyMS     int64  `bson:"latency_ms" json:"latency_ms"`
	TimestampUnix int64  `bson:"timestamp" json:"timestamp"`
}
