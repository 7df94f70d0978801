package chyp

import (
	"bufio"
	"fmt"
	"io"
)

// DumpFormat selects how Dump prints each byte.
type DumpFormat int

const (
	DumpHex DumpFormat = iota
	DumpDec
)

// Dump writes mem as rows of 32 bytes in groups of 8, each row prefixed with
// its address counted from start.
func Dump(w io.Writer, mem []uint8, start int, format DumpFormat) error {
	cell := "%02x "
	if format == DumpDec {
		cell = "%03d "
	}

	bw := bufio.NewWriter(w)
	for i, b := range mem {
		if i%32 == 0 {
			if i > 0 {
				bw.WriteString("\n")
			}
			fmt.Fprintf(bw, "%04x: ", start+i)
		} else if i%8 == 0 {
			bw.WriteString(" ")
		}
		fmt.Fprintf(bw, cell, b)
	}
	if len(mem) > 0 {
		bw.WriteString("\n")
	}
	return bw.Flush()
}
