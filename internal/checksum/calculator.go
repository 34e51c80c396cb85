package checksum

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Calculator computes file checksums.
type Calculator interface {
	// CalculateRaw hashes content unmodified.
	CalculateRaw(content []byte) string

	// CalculateNormalized hashes content after mzTab normalization.
	CalculateNormalized(content []byte) string
}

// SHA256 is a zero-size Calculator.
type SHA256 struct{}

// New returns a SHA-256 calculator.
func New() SHA256 {
	return SHA256{}
}

func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256([]byte(Normalize(content)))
	return hex.EncodeToString(hash[:])
}

// Normalize returns content with one "\n"-terminated line per non-blank,
// non-comment line and every tab-separated field trimmed. Field case is
// kept: accessions and values are case-sensitive.
func Normalize(content []byte) string {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))

	var b strings.Builder
	b.Grow(len(content))
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(nil, len(content)+1)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if strings.TrimSpace(fields[0]) == "COM" {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}

// NamespaceDocumentIdentity is the UUID v5 namespace of document ids.
var NamespaceDocumentIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mztabm/document-identity/v1"))

// DocumentID returns the deterministic identity of a normalized checksum.
func DocumentID(normalized string) uuid.UUID {
	return uuid.NewSHA1(NamespaceDocumentIdentity, []byte(strings.ToLower(normalized)))
}
