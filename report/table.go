// Package report renders a short human-readable listing of a dump.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/cqkv/statdump/model"
)

const rule = "---------------------------------------------------------------"

// PrintTop writes a table of the first n records to w.
func PrintTop(w io.Writer, records []model.Record, n int) error {
	if n > len(records) {
		n = len(records)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%-18s %-11s %-9s %-8s %-8s\n", "id", "count", "cost", "primary", "mode")
	buf.WriteString(rule)
	buf.WriteByte('\n')
	for i := 0; i < n; i++ {
		writeRow(&buf, &records[i])
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeRow(buf *bytes.Buffer, r *model.Record) {
	primary := "n"
	if r.Primary {
		primary = "y"
	}
	fmt.Fprintf(buf, "0x%016x %-10d % .3e %-8s %s\n", uint64(r.ID), r.Count, r.Cost, primary, ModeString(r.Mode))
}

// ModeString renders the masked mode in binary without leading zeros.
func ModeString(mode uint8) string {
	return strconv.FormatUint(uint64(mode&model.ModeMask), 2)
}
