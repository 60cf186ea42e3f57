package fat16

// CreateFile creates a new regular file named name inside the directory
// dir, per spec §4.J (component J, ground: teacher's dir.register/
// dir.alloc in fat.go, trimmed to 8.3-only — no LFN entries are ever
// written, per the spec's "LFN is recognized and skipped, never
// synthesized" rule).
//
// Steps: reject if name already exists; scan for the first NONE or
// DELETED slot, extending the directory's chain if none is found (failing
// with ErrRootFull if dir is the root, which cannot grow); allocate a data
// cluster for the new file; write the 32-byte entry; reload it to
// normalize cursor state.
func (v *Volume) CreateFile(dir *Handle, name string) (*Handle, error) {
	shortName := undisplayName(name)

	scanAddr, err := v.entryAddr(dir.dirClu, 0)
	if err != nil {
		return nil, err
	}
	scan, err := v.loadEntry(scanAddr, dir.dirClu, 0)
	if err != nil {
		return nil, err
	}
	if found, err := scan.Find(name); err != nil {
		return nil, err
	} else if found {
		return nil, ErrAlreadyExists
	}

	slotClu, slotIndex, err := v.findFreeSlot(dir.dirClu)
	if err != nil {
		return nil, err
	}

	dataCluster, err := v.allocCluster()
	if err != nil {
		return nil, err
	}

	entry := encodeNewEntry(shortName, dataCluster)
	if err := v.writeWholeEntry(slotClu, slotIndex, &entry); err != nil {
		return nil, err
	}

	addr, err := v.entryAddr(slotClu, slotIndex)
	if err != nil {
		return nil, err
	}
	v.trace("created file", "name", name, "cluster", dataCluster, "index", slotIndex)
	return v.loadEntry(addr, slotClu, slotIndex)
}

// findFreeSlot scans the directory rooted at dirClu for the first entry
// whose type is NONE or DELETED, extending the chain by one cluster when
// the scan runs off the end of an allocated chain. The root directory
// cannot be extended (spec §4.J step 3: "root directory cannot extend —
// fail with RootFull").
func (v *Volume) findFreeSlot(dirClu uint16) (uint16, uint32, error) {
	var index uint32
	for {
		addr, err := v.entryAddr(dirClu, index)
		if err == ErrChainExhausted {
			if dirClu < 2 {
				return 0, 0, ErrRootFull
			}
			last, lerr := v.lastClusterOf(dirClu)
			if lerr != nil {
				return 0, 0, lerr
			}
			// appendCluster allocates via allocCluster, which already
			// zero-fills every 32-byte boundary (§4.D) — every slot in
			// the new cluster starts out NONE.
			if _, aerr := v.appendCluster(last); aerr != nil {
				return 0, 0, aerr
			}
			continue
		}
		if err != nil {
			return 0, 0, err
		}

		var first [1]byte
		if err := v.dev.ReadAt(first[:], addr); err != nil {
			return 0, 0, err
		}
		if first[0] == 0x00 || first[0] == 0xE5 {
			return dirClu, index, nil
		}
		index++
		if dirClu < 2 && uint32(index) >= uint32(v.rootEntryCount) {
			return 0, 0, ErrRootFull
		}
	}
}

// lastClusterOf walks the chain rooted at start to find its final member
// (the one whose FAT entry is end-of-chain).
func (v *Volume) lastClusterOf(start uint16) (uint16, error) {
	cluster := start
	for {
		next, err := v.nextCluster(cluster)
		if err != nil {
			return 0, err
		}
		if isEndOfChain(next) {
			return cluster, nil
		}
		cluster = next
	}
}
