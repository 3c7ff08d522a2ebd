package exporter

import (
	"fmt"
	"strings"
)

// Excel sheet names are limited to 31 characters and a set of forbidden
// characters; worse, they must be unique within a workbook.
const maxSheetNameLen = 31

var sheetNameReplacer = strings.NewReplacer(
	":", " ",
	"\\", " ",
	"/", " ",
	"?", " ",
	"*", " ",
	"[", "(",
	"]", ")",
)

// SanitizeSheetName makes an area name safe to use as an Excel sheet name.
// Reserved sheet names get an "Area " prefix so area sheets can never
// collide with the fixed report sheets.
func SanitizeSheetName(area string) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(area))
	if name == "" {
		name = "Unnamed Area"
	}

	switch name {
	case SheetSummary, SheetExpired, SheetExpiringSoon, SheetAllRecords:
		name = "Area " + name
	}

	// Excel counts the limit in characters, and slicing bytes could cut a
	// multi-byte rune in half
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	return name
}

// uniqueSheetName resolves collisions between sanitized sheet names by
// appending a numeric suffix, keeping the result within the length limit.
// The used set is keyed by lowercased name because Excel treats sheet
// names case-insensitively.
func uniqueSheetName(name string, used map[string]bool) string {
	if !used[strings.ToLower(name)] {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetNameLen {
			base = base[:maxSheetNameLen-len(suffix)]
		}
		candidate := string(base) + suffix
		if !used[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
