package fat16

// entryAddr resolves the absolute address of entry index within the
// directory rooted at dirClu. dirClu 0 denotes the root directory, a flat
// region with no cluster chain; anything else walks the chain via resolve
// (ground: original _fat16_clu_add's two-branch "root vs cluster" split,
// mirrored in _fat16_fopen).
func (v *Volume) entryAddr(dirClu uint16, index uint32) (uint32, error) {
	if dirClu < 2 {
		return v.rootAddr + index*sizeDirEntry, nil
	}
	return v.resolve(dirClu, index*sizeDirEntry)
}

// writeEntryField writes a field range back into the on-disk directory
// entry at (dirClu, index), used by Write to persist an extended size.
// CreateFile writes its new entry whole, through writeWholeEntry.
func (v *Volume) writeEntryField(dirClu uint16, index uint32, fieldOff int, data []byte) error {
	addr, err := v.entryAddr(dirClu, index)
	if err != nil {
		return err
	}
	return v.dev.WriteAt(data, addr+uint32(fieldOff))
}

// writeWholeEntry writes all 32 bytes of e back to (dirClu, index).
func (v *Volume) writeWholeEntry(dirClu uint16, index uint32, e *dirEntry) error {
	addr, err := v.entryAddr(dirClu, index)
	if err != nil {
		return err
	}
	return v.dev.WriteAt(e.raw[:], addr)
}

// OpenRoot loads entry 0 of the root directory (component G, ground:
// original fat16_open_root). The returned handle IS that entry, not a
// synthetic "root" object — exactly as the original treats the root
// directory as dir_cluster 0.
func (v *Volume) OpenRoot() (*Handle, error) {
	return v.loadEntry(v.rootAddr, 0, 0)
}

// OpenDir returns a new handle positioned at entry 0 of the cluster chain
// h's own first-cluster field names; h itself is left unchanged
// (component G, ground: original
// fat16_opendir). Fails with ErrNotADirectory unless h is a directory and
// is not the "." (SELF) entry, matching the original's precondition.
func (h *Handle) OpenDir() (*Handle, error) {
	if h.entry.Attributes()&attrDir == 0 || h.Type() == typeSelf {
		return nil, ErrNotADirectory
	}
	addr, err := h.vol.entryAddr(h.cluStart, 0)
	if err != nil {
		return nil, err
	}
	return h.vol.loadEntry(addr, h.cluStart, 0)
}

// Next repositions h to the following entry in its own directory (ground:
// original fat16_next). Fails when the root directory's fixed capacity is
// exhausted, when resolve cannot reach the next slot (chain exhausted), or
// when the next slot's first byte is the NONE sentinel (spec invariant 6:
// every NONE slot terminates enumeration).
func (h *Handle) Next() error {
	nextIndex := h.index + 1
	if h.dirClu < 2 && uint32(nextIndex) >= uint32(h.vol.rootEntryCount) {
		return ErrOutOfRange
	}

	addr, err := h.vol.entryAddr(h.dirClu, nextIndex)
	if err != nil {
		return err
	}

	var first [1]byte
	if err := h.vol.dev.ReadAt(first[:], addr); err != nil {
		return err
	}
	if first[0] == 0x00 {
		return ErrOutOfRange
	}

	reloaded, err := h.vol.loadEntry(addr, h.dirClu, nextIndex)
	if err != nil {
		return err
	}
	*h = *reloaded
	return nil
}

// Prev repositions h to the preceding entry in its own directory (ground:
// original fat16_prev). Fails with ErrInvalidForOperation at index 0.
func (h *Handle) Prev() error {
	if h.index == 0 {
		return ErrInvalidForOperation
	}
	addr, err := h.vol.entryAddr(h.dirClu, h.index-1)
	if err != nil {
		return err
	}
	reloaded, err := h.vol.loadEntry(addr, h.dirClu, h.index-1)
	if err != nil {
		return err
	}
	*h = *reloaded
	return nil
}

// First rewinds h to entry 0 of its own directory.
func (h *Handle) First() error {
	addr, err := h.vol.entryAddr(h.dirClu, 0)
	if err != nil {
		return err
	}
	reloaded, err := h.vol.loadEntry(addr, h.dirClu, 0)
	if err != nil {
		return err
	}
	*h = *reloaded
	return nil
}

// Find scans forward from h's current position for an entry whose 8.3
// short name matches name, comparing the raw 11-byte form byte-for-byte
// (ground: spec §4.G "Find-by-display-name"; no LFN checksum matching, per
// the LFN-never-synthesized rule). On a match h is left positioned at it;
// on failure h is left at the last entry it examined (the final entry
// before the NONE sentinel or the end of the directory), and the caller
// must call First to scan the directory again from the start.
func (h *Handle) Find(name string) (bool, error) {
	target := undisplayName(name)
	for {
		const nameLen = direntNameLen + direntExtLen
		if h.entry.Type() != typeNone && h.entry.Type() != typeDeleted &&
			[nameLen]byte(h.entry.raw[:nameLen]) == target {
			return true, nil
		}
		if err := h.Next(); err != nil {
			return false, nil
		}
	}
}
