package fat16

// Handle is a file or directory handle: a directory entry plus the cursor
// state machine and directory provenance (spec §3 "File handle"). The same
// type serves both files and directories — opening a directory yields a
// Handle positioned at entry 0 of the chain its SUBDIR entry points to,
// rather than a value of a distinct type, mirroring the original source
// where FAT16_FILE plays both roles.
type Handle struct {
	vol   *Volume
	entry dirEntry

	// cluStart is the first cluster of this entry's own content (file data
	// or subdirectory entries); 0/1 for the root directory.
	cluStart uint16

	// Cursor state (spec §3 invariants 1-4).
	curAbs uint32
	curRel uint32
	curClu uint16
	curOfs uint32

	// Directory provenance: the cluster of the directory containing this
	// entry (0 for root) and the entry's index within it.
	dirClu uint16
	index  uint32
}

// Type returns the handle's resolved tagged-variant type.
func (h *Handle) Type() fileType { return h.entry.Type() }

// IsValid reports whether the handle is one of {FILE, SUBDIR, SELF,
// PARENT} — the set the original source's fat16_is_file_valid considers
// worth showing in a listing (supplemented feature, SPEC_FULL.md §4).
func (h *Handle) IsValid() bool {
	switch h.entry.Type() {
	case typeFile, typeSubdir, typeSelf, typeParent:
		return true
	default:
		return false
	}
}

// Name returns the entry's display name, or "" for NONE/DELETED/LFN
// entries which have no display form.
func (h *Handle) Name() string { return h.entry.DisplayName() }

// Size returns the entry's on-disk size field. Meaningless for
// directories, which size themselves by chain length instead.
func (h *Handle) Size() uint32 { return h.entry.Size() }

// IsDir reports whether the entry's own attribute byte has the directory
// bit set. That holds for SUBDIR and, when the volume sets the bit on
// them, for SELF and PARENT too; callers distinguish these via Type().
func (h *Handle) IsDir() bool {
	return h.entry.Attributes()&attrDir != 0
}

// firstDataCluster is the cluster this entry's own content chain starts
// at, as stored in the on-disk field; a value of 0 or 1 there denotes the
// root directory, which clusterStart and entryAddr both understand.
func (h *Handle) firstDataCluster() uint16 {
	return h.entry.FirstCluster()
}

// loadEntry reads and decodes the 32-byte directory record at absolute
// address addr into h, recording its directory provenance and
// (re-)initializing its cursor to offset 0 (ground: original _fat16_fopen,
// which always ends by calling fat16_fseek(file, 0)).
func (v *Volume) loadEntry(addr uint32, dirClu uint16, index uint32) (*Handle, error) {
	var raw [sizeDirEntry]byte
	if err := v.dev.ReadAt(raw[:], addr); err != nil {
		return nil, err
	}
	h := &Handle{
		vol:      v,
		entry:    decodeDirEntry(raw[:]),
		dirClu:   dirClu,
		index:    index,
		cluStart: 0,
	}
	h.cluStart = h.entry.FirstCluster()
	if err := h.seekTo(0, false); err != nil {
		return nil, err
	}
	return h, nil
}
