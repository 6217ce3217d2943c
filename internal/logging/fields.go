package logging

import "log/slog"

// Common field names for consistent logging across the service.
const (
	FieldService   = "service"
	FieldIP        = "ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldRole      = "role"
	FieldFields    = "field_count"
	FieldRemaining = "remaining"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// IP returns a slog attribute for the client IP address.
func IP(ip string) slog.Attr {
	return slog.String(FieldIP, ip)
}

// Method returns a slog attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// Role returns a slog attribute for the applied-for role title.
func Role(title string) slog.Attr {
	return slog.String(FieldRole, title)
}

// FieldCount returns a slog attribute for the outbound field count.
func FieldCount(n int) slog.Attr {
	return slog.Int(FieldFields, n)
}

// Remaining returns a slog attribute for the remaining rate-limit budget.
func Remaining(n int) slog.Attr {
	return slog.Int(FieldRemaining, n)
}
