// Package util provides shared helpers for log-body handling.
//
// Gateway responses are bounded in practice but not by contract;
// TruncateBody caps what reaches the debug log.
package util
