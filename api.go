package fat16

// ForEach iterates every entry in the directory h (which must itself be a
// directory handle, as returned by OpenRoot/OpenDir), first rewinding h to
// entry 0 with First, calling fn once per entry. A NONE entry is never
// passed to fn; DELETED, LABEL and LFN entries are, and report
// IsValid()==false — callers typically check IsValid() first, matching the original's commented-out
// "skip bad files" convention in fat16_next/fat16_prev. Iteration stops
// when Next reports the directory is exhausted, or fn returns a non-nil
// error (which ForEach returns to its caller).
//
// Grounded on the teacher's Dir.ForEachFile in exported.go, adapted to
// this package's Handle-for-both-files-and-directories shape instead of a
// distinct Dir type.
func (h *Handle) ForEach(fn func(entry *Handle) error) error {
	if err := h.First(); err != nil {
		return err
	}
	for {
		if h.Type() != typeNone {
			if err := fn(h); err != nil {
				return err
			}
		}
		if err := h.Next(); err != nil {
			return nil
		}
	}
}
