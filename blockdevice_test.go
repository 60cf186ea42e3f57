package fat16

// memDevice is an in-memory BlockDevice backed by a single growable byte
// slice, the byte-addressed analogue of the teacher's block-indexed
// BlockMap (vfs_test.go) and BytesBlocks (fat_test.go) test doubles.
type memDevice struct {
	data []byte
}

func newMemDevice(size int) *memDevice {
	return &memDevice{data: make([]byte, size)}
}

func (m *memDevice) ReadAt(dst []byte, addr uint32) error {
	copy(dst, m.data[addr:])
	return nil
}

func (m *memDevice) WriteAt(src []byte, addr uint32) error {
	end := int(addr) + len(src)
	if end > len(m.data) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[addr:], src)
	return nil
}
