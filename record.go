package wheel

import (
	"bytes"
	"fmt"
)

const recordName = "RECORD"

// renderRecord serializes the manifest in the order entries were written,
// ending with the self-referential RECORD line carrying no hash or size.
func renderRecord(records []Record, distInfo string) []byte {
	var buf bytes.Buffer
	for _, r := range records {
		fmt.Fprintf(&buf, "%s,sha256=%s,%d\n", r.Path, r.Hash, r.Size)
	}
	fmt.Fprintf(&buf, "%s/%s,,\n", distInfo, recordName)
	return buf.Bytes()
}
