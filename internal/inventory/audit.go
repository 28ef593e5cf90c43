package inventory

import (
	"fmt"
	"strings"
	"time"
)

const auditTimeLayout = "2006-01-02T15:04:05.000Z"

// AuditTimestamp renders t as a UTC ISO-8601 timestamp with millisecond precision.
func AuditTimestamp(t time.Time) string {
	return t.UTC().Format(auditTimeLayout)
}

func adjustmentLine(at time.Time, delta int, reason *string) string {
	line := fmt.Sprintf("%s: Stock adjusted by %d", AuditTimestamp(at), delta)
	if reason != nil && *reason != "" {
		line += ". Reason: " + *reason
	}
	return line
}

func restockLine(at time.Time, quantity int) string {
	return fmt.Sprintf("%s: Restocked %d units", AuditTimestamp(at), quantity)
}

// appendAudit adds line after the existing notes, oldest first.
func appendAudit(notes *string, line string) string {
	if notes == nil || *notes == "" {
		return line
	}
	return *notes + "\n" + line
}

// AuditLines splits a notes value into its individual audit entries.
func AuditLines(notes *string) []string {
	if notes == nil || *notes == "" {
		return nil
	}
	return strings.Split(*notes, "\n")
}
