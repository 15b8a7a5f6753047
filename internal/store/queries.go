package store

// Query history queries
const (
	queryInsertHistory = `
		INSERT INTO query_history (id, sql_text, outcome, row_count, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	queryPruneHistory = `
		DELETE FROM query_history
		WHERE created_at < now() - to_days(?)`
)
