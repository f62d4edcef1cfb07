package catalog

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"
)

// isTransientCause inspects a raw driver/network error and reports whether
// it belongs to the transient class: connection I/O failure, wire protocol
// error, or pool exhaustion/timeout. Anything else (constraint violations,
// malformed SQL, context errors) is treated as permanent.
func isTransientCause(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return false
}
