package constant

const (
	NoteListLimit = 50
	NoteTable     = "notes"

	HealthStatusOK = "ok"
	RuntimeName    = "Go Fiber"

	// ISO-8601 in UTC with millisecond precision, e.g. 2024-05-01T10:00:00.000Z
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)
