package utils

import (
	"log"
	"strings"
)

// LogEvent writes one document-pipeline log line tagged with the request id.
// Detail is a short summary; never log record payloads or photo URLs.
func LogEvent(requestID, module, stage, detail string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("%s: stage=%s rid=%s %s", module, stage, rid, detail)
}
