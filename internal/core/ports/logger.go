package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info and Warn take trailing key/value pairs in log/slog style.
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error)
}
