package store

// Run queries
const (
	queryInsertRun = `
		INSERT INTO runs (
			id, operation, host, username, trust_fingerprint, forced, expect_failure,
			outcome, exit_code, log_path, error_message, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryDeleteRunsBefore = `DELETE FROM runs WHERE started_at < ?`
)

var runColumns = []string{
	"id",
	"operation",
	"host",
	"username",
	"trust_fingerprint",
	"forced",
	"expect_failure",
	"outcome",
	"exit_code",
	"log_path",
	"error_message",
	"started_at",
	"finished_at",
}
