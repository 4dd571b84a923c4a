// Package redact masks OCIDs and IPv4 addresses in text shown to the
// user or logged. It is applied at output boundaries only: the
// command handed to the executor always carries real values.
package redact

import (
	"regexp"
	"strings"
)

const (
	ocidPlaceholder = "[REDACTED_OCID]"
	ipPlaceholder   = "[REDACTED_IP]"

	// segmentFiller replaces the middle of a partially redacted OCID
	// unique segment. It contains no dot so re-redaction finds the
	// same segment boundary, keeping the transform idempotent.
	segmentFiller = "****"
	maskedSegment = "********"
)

// The OCID pattern anchors on the literal prefix and then accepts any
// non-whitespace, non-quote tail, so malformed identifiers typed by a
// user are still caught.
var (
	ocidPattern = regexp.MustCompile(`(?i)\bocid1\.[^\s"']+`)
	ipPattern   = regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)
	// A partially redacted IP ("203.x.x.x"); recognized so Full over
	// partial output stays idempotent instead of leaking placeholders.
	partialIPPattern = regexp.MustCompile(`\b[0-9]{1,3}\.x\.x\.x\b`)
)

// Policy selects how much of a matched identifier survives.
type Policy int

const (
	// Full replaces the whole identifier with a fixed placeholder.
	Full Policy = iota
	// Partial keeps the identifier's fixed prefix and at most 4
	// leading/trailing characters of its unique segment.
	Partial
)

// Redactor applies one policy to both identifier classes.
type Redactor struct {
	policy Policy
}

func New(policy Policy) *Redactor {
	return &Redactor{policy: policy}
}

// Redact masks all OCIDs and IPv4 addresses in text. Idempotent under
// either policy.
func (r *Redactor) Redact(text string) string {
	if r.policy == Partial {
		text = ocidPattern.ReplaceAllStringFunc(text, partialOCID)
		return ipPattern.ReplaceAllStringFunc(text, partialIP)
	}
	text = ocidPattern.ReplaceAllString(text, ocidPlaceholder)
	text = ipPattern.ReplaceAllString(text, ipPlaceholder)
	return partialIPPattern.ReplaceAllString(text, ipPlaceholder)
}

// partialOCID keeps everything up to the last dot and masks the
// unique segment down to at most 4 leading and 4 trailing characters.
// Identifiers without a usable unique segment degrade to the full
// placeholder rather than risk leaking.
func partialOCID(ocid string) string {
	i := strings.LastIndex(ocid, ".")
	if i <= 0 || i == len(ocid)-1 {
		return ocidPlaceholder
	}
	prefix, segment := ocid[:i+1], ocid[i+1:]
	if len(segment) <= len(maskedSegment) {
		return prefix + maskedSegment
	}
	return prefix + segment[:4] + segmentFiller + segment[len(segment)-4:]
}

// partialIP keeps the first octet only.
func partialIP(ip string) string {
	octet, _, ok := strings.Cut(ip, ".")
	if !ok {
		return ipPlaceholder
	}
	return octet + ".x.x.x"
}
