package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/Jung-Seung-hwa/genmind/core"
)

// Key prefixes for different data types
const (
	faqRecordPrefix    = "faqrec"
	faqSourcePrefix    = "faqsrc"
	faqQuestionPrefix  = "faqqst"
	faqRecordIDSeq     = "faqrecseq"
	tenantRecordPrefix = "tenrec"
	tenantDomainPrefix = "tendom"
)

// makeFAQRecordKey generates a key for a FAQ record by ID.
func makeFAQRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", faqRecordPrefix, id))
}

// makeFAQSourceKey generates a composite key for the source file index.
// Format: prefix:tenantID:sourceFile NUL recordID
// The NUL terminator keeps source file names with shared prefixes from
// colliding during range scans.
func makeFAQSourceKey(tenantID core.ID, sourceFile string, recordID core.ID) []byte {
	partial := makePartialFAQSourceKey(tenantID, sourceFile)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	// BigEndian so lexicographic order matches numeric order
	binary.BigEndian.PutUint64(buf[offset:], uint64(recordID))
	return buf
}

// makePartialFAQSourceKey generates a partial key for scanning all records
// of a (tenant, source file) pair.
func makePartialFAQSourceKey(tenantID core.ID, sourceFile string) []byte {
	prefix := faqSourcePrefix + ":"
	totalSize := len(prefix) + 8 + len(sourceFile) + 1
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], uint64(tenantID))
	offset += 8
	offset += copy(buf[offset:], []byte(sourceFile))
	buf[offset] = 0x00
	return buf
}

// makeTenantFAQPrefix generates the scan prefix covering every source index
// entry of a tenant.
func makeTenantFAQPrefix(tenantID core.ID) []byte {
	prefix := faqSourcePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], uint64(tenantID))
	return buf
}

// sourceFileFromKey extracts the source file name from a source index key.
// Returns "" if the key is malformed.
func sourceFileFromKey(key []byte, tenantID core.ID) string {
	head := makeTenantFAQPrefix(tenantID)
	// layout: head + sourceFile + NUL + 8-byte record ID
	if len(key) < len(head)+9 {
		return ""
	}
	return string(key[len(head) : len(key)-9])
}

// makeFAQQuestionKey generates a key for the exact question lookup index.
// Format: prefix:tenantID:questionHash:recordID
// The record ID suffix gives every record its own index slot, so records
// sharing a question text never overwrite or delete each other's entries.
func makeFAQQuestionKey(tenantID core.ID, question string, recordID core.ID) []byte {
	partial := makePartialFAQQuestionKey(tenantID, question)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], uint64(recordID))
	return buf
}

// makePartialFAQQuestionKey generates a partial key for scanning all records
// indexed under a (tenant, question hash) pair.
func makePartialFAQQuestionKey(tenantID core.ID, question string) []byte {
	prefix := faqQuestionPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], uint64(tenantID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(question)))
	return buf
}

// makeTenantKey generates a key for a tenant record by ID.
func makeTenantKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", tenantRecordPrefix, id))
}

// makeTenantDomainKey generates a key for the tenant domain index.
func makeTenantDomainKey(domain string) []byte {
	return []byte(fmt.Sprintf("%s:%s", tenantDomainPrefix, domain))
}
