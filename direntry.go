package fat16

import (
	"encoding/binary"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Directory entry layout (spec §4.F): 32-byte records, 8.3 name at [0:11],
// attribute byte at +11, first cluster at +26 (LE16), size at +28 (LE32).
// The 14 bytes in between (NTRes, creation/access/write time and date) are
// written as zero by this driver (spec §1: "timestamps written as zero");
// SPEC_FULL.md's read-only date/time decode lives in datetime.go.
const (
	sizeDirEntry    = 32
	direntNameOff   = 0
	direntNameLen   = 8
	direntExtOff    = 8
	direntExtLen    = 3
	direntAttrOff   = 11
	direntWriteDate = 24
	direntClusterOff = 26
	direntSizeOff   = 28
)

// fileType is the tagged variant a directory entry resolves to (spec §3).
// Deliberately not represented as a subset of the attribute byte: the
// sentinel cases depend on first-byte inspection attributes cannot express.
type fileType uint8

const (
	typeNone fileType = iota
	typeDeleted
	typeFile
	typeSubdir
	typeLabel
	typeLFN
	typeSelf
	typeParent
)

func (t fileType) String() string {
	switch t {
	case typeNone:
		return "NONE"
	case typeDeleted:
		return "DELETED"
	case typeFile:
		return "FILE"
	case typeSubdir:
		return "SUBDIR"
	case typeLabel:
		return "LABEL"
	case typeLFN:
		return "LFN"
	case typeSelf:
		return "SELF"
	case typeParent:
		return "PARENT"
	default:
		return "UNKNOWN"
	}
}

// attribute bits, standard FAT layout.
const (
	attrReadOnly byte = 1 << 0
	attrHidden   byte = 1 << 1
	attrSystem   byte = 1 << 2
	attrLabel    byte = 1 << 3
	attrDir      byte = 1 << 4
	attrArchive  byte = 1 << 5
	attrLFN      byte = 0x0F
)

// dirEntry wraps one 32-byte directory record and exposes the fields the
// driver reads and writes, in the teacher's pattern of a typed accessor
// window over a raw byte slice rather than a parsed struct.
type dirEntry struct {
	raw  [sizeDirEntry]byte
	kind fileType
}

func decodeDirEntry(raw []byte) dirEntry {
	var e dirEntry
	copy(e.raw[:], raw[:sizeDirEntry])
	e.kind = e.resolveType()
	return e
}

// resolveType applies the first-byte sentinel table and, for provisional
// FILE entries, the attribute post-processing rules, in the exact order
// spec §4.F specifies (ported from original _fat16_fopen).
func (e *dirEntry) resolveType() fileType {
	switch e.raw[0] {
	case 0x00:
		return typeNone
	case 0xE5:
		return typeDeleted
	case 0x05:
		e.raw[0] = 0xE5 // substitute the real first character in memory
	case 0x2E:
		if e.raw[1] == 0x2E {
			return typeParent
		}
		return typeSelf
	}

	t := typeFile
	attrs := e.Attributes()
	if attrs&attrDir != 0 {
		t = typeSubdir
	} else if attrs == attrLabel {
		t = typeLabel
	} else if attrs == attrLFN {
		t = typeLFN
	}
	return t
}

func (e *dirEntry) Type() fileType { return e.kind }

func (e *dirEntry) Attributes() byte { return e.raw[direntAttrOff] }

func (e *dirEntry) FirstCluster() uint16 {
	return binary.LittleEndian.Uint16(e.raw[direntClusterOff:])
}

func (e *dirEntry) SetFirstCluster(c uint16) {
	binary.LittleEndian.PutUint16(e.raw[direntClusterOff:], c)
}

func (e *dirEntry) Size() uint32 {
	return binary.LittleEndian.Uint32(e.raw[direntSizeOff:])
}

func (e *dirEntry) SetSize(n uint32) {
	binary.LittleEndian.PutUint32(e.raw[direntSizeOff:], n)
}

// shortNameCaser folds a caller-supplied display name to upper case before
// the 8.3 undisplay step, using golang.org/x/text/cases instead of a
// hand-rolled ASCII loop.
var shortNameCaser = cases.Upper(language.Und)

// DisplayName strips trailing spaces from the name field and, for regular
// files whose extension field is not blank, appends a "." and the
// non-space extension (a blank extension adds no dot); SUBDIR/SELF/PARENT/
// LABEL entries have no extension suffix. NONE/DELETED/LFN have no display
// form and return "".
func (e *dirEntry) DisplayName() string {
	switch e.kind {
	case typeNone, typeDeleted, typeLFN:
		return ""
	}

	name := e.raw[direntNameOff : direntNameOff+direntNameLen]
	j := direntNameLen
	for j > 0 && name[j-1] == ' ' {
		j--
	}
	out := make([]byte, 0, direntNameLen+1+direntExtLen)
	out = append(out, name[:j]...)

	switch e.kind {
	case typeSubdir, typeSelf, typeParent:
		return string(out)
	}

	if e.kind != typeLabel {
		ext := e.raw[direntExtOff : direntExtOff+direntExtLen]
		if ext[0] != ' ' {
			out = append(out, '.')
			for _, c := range ext {
				if c == ' ' {
					break
				}
				out = append(out, c)
			}
		}
	}
	return string(out)
}

// undisplayName converts a caller-supplied display name ("NAME.EXT") into
// the 11-byte short-name field (spec §4.F "Undisplay"). The result is
// upper-cased via golang.org/x/text/cases before the 0xE5 reserved-char
// escape is applied, so callers may pass a lower-case name.
func undisplayName(name string) [direntNameLen + direntExtLen]byte {
	var out [direntNameLen + direntExtLen]byte
	for i := range out {
		out[i] = ' '
	}

	upper := shortNameCaser.String(name)

	i := 0
	for i < direntNameLen && i < len(upper) && upper[i] != '.' {
		out[i] = upper[i]
		i++
	}
	// Skip to the extension: either right after the dot, or at end-of-string.
	for i < len(upper) && upper[i] != '.' {
		i++
	}
	if i < len(upper) && upper[i] == '.' {
		i++
	}
	for j := 0; j < direntExtLen && i < len(upper); i, j = i+1, j+1 {
		out[direntNameLen+j] = upper[i]
	}

	if out[0] == 0xE5 {
		out[0] = 0x05
	}
	return out
}

// encodeNewEntry builds a fresh 32-byte record for file creation (spec
// §4.J step 5): 11-byte name, attribute 0, 14 reserved/date/time bytes
// zero, first cluster, size 0.
func encodeNewEntry(shortName [direntNameLen + direntExtLen]byte, firstCluster uint16) dirEntry {
	var e dirEntry
	copy(e.raw[0:direntNameLen+direntExtLen], shortName[:])
	e.raw[direntAttrOff] = 0
	e.SetFirstCluster(firstCluster)
	e.SetSize(0)
	e.kind = typeFile
	return e
}
