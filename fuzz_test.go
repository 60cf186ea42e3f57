package fat16

import (
	"errors"
	"testing"
)

// FuzzVolume drives the read/write/seek/create surface through a bit-packed
// operation encoding, following the teacher's FuzzFS in fuzz_test.go: each
// uint64 seed packs an opcode, a target index and a data size, and the fuzz
// loop interprets a sequence of them as a script against one mounted volume.
// Unlike the teacher's version there is no directory tree or open/close
// lifecycle to model — every handle in this package is reloaded directly
// from its directory slot — so the encoding drops WHO's directory-changing
// bits and keeps only file selection, write/read length and seek offset.
func FuzzVolume(f *testing.F) {
	const (
		opCreateFile uint64 = iota
		opWriteFile
		opReadFile
		opSeek
		opSeekClamp

		whoOff      = 4
		datasizeOff = 16
	)

	writeData := make([]byte, 1<<12)
	for i := range writeData {
		writeData[i] = byte(i)
	}

	f.Add(opCreateFile, opWriteFile|(1000<<datasizeOff),
		opSeekClamp|(10<<datasizeOff), opReadFile|(500<<datasizeOff),
		opCreateFile|(1<<whoOff), opWriteFile|(1<<whoOff)|(4000<<datasizeOff),
		opSeek|(9000<<datasizeOff), opWriteFile|(200<<datasizeOff))

	const dataClusters = 64

	f.Fuzz(func(t *testing.T, fsop0, fsop1, fsop2, fsop3, fsop4, fsop5, fsop6, fsop7 uint64) {
		img := newTestImage(dataClusters)
		root, err := img.vol.OpenRoot()
		if err != nil {
			t.Fatalf("open root: %v", err)
		}

		var handles []*Handle
		getWho := func(who uint8) *Handle {
			if len(handles) == 0 {
				return nil
			}
			return handles[int(who)%len(handles)]
		}

		fsops := [...]uint64{fsop0, fsop1, fsop2, fsop3, fsop4, fsop5, fsop6, fsop7}
		readBuf := make([]byte, len(writeData))
		totalWritten := 0

		for i, fsop := range fsops {
			op := fsop & 0xf
			who := uint8(fsop>>whoOff) & 0xf
			size := uint16(fsop >> datasizeOff)

			switch op {
			case opCreateFile:
				name := genFuzzName(i)
				h, err := img.vol.CreateFile(root, name)
				if err != nil {
					// ErrAlreadyExists/ErrRootFull are expected outcomes, not bugs.
					continue
				}
				handles = append(handles, h)

			case opWriteFile:
				h := getWho(who)
				if h == nil || totalWritten >= dataClusters*int(img.vol.bytesPerCluster)*4/5 {
					continue
				}
				n := int(size) % len(writeData)
				written, err := h.Write(writeData[:n])
				if err != nil {
					// A write that extends the chain past the volume's
					// capacity is an expected outcome, not a bug.
					if errors.Is(err, ErrAllocFailed) {
						continue
					}
					t.Fatalf("write: %v", err)
				}
				if written != n {
					t.Fatalf("write: wrote %d, want %d", written, n)
				}
				totalWritten += written

			case opReadFile:
				h := getWho(who)
				if h == nil {
					continue
				}
				n := int(size) % len(readBuf)
				if _, err := h.Read(readBuf[:n]); err != nil {
					// A cursor positioned past size by an extending Seek
					// (which does not update size itself) makes the next
					// Read legitimately out-of-range, not a bug.
					if errors.Is(err, ErrOutOfRange) {
						continue
					}
					t.Fatalf("read: %v", err)
				}

			case opSeek:
				h := getWho(who)
				if h == nil {
					continue
				}
				if err := h.Seek(uint32(size) * 4); err != nil {
					if errors.Is(err, ErrAllocFailed) {
						continue
					}
					t.Fatalf("seek: %v", err)
				}

			case opSeekClamp:
				h := getWho(who)
				if h == nil {
					continue
				}
				// Out-of-range is an expected outcome of a clamped seek, not a bug.
				_ = h.SeekClamp(uint32(size) * 4)
			}
		}
	})
}

// genFuzzName produces a distinct valid 8.3 short name per creation attempt
// so repeated opCreateFile ops exercise both the fresh-slot and
// already-exists paths.
func genFuzzName(i int) string {
	const alphabet = "ABCDEFGHIJKLMNOP"
	return string(alphabet[i%len(alphabet)]) + ".TXT"
}
