package agentcycle

// historyLog is the ordered transition record of a run.
// A positive limit keeps only the newest entries.
type historyLog struct {
	entries []HistoryEntry
	limit   int
}

func (h *historyLog) append(e HistoryEntry) {
	h.entries = append(h.entries, e)
	if h.limit > 0 && len(h.entries) > h.limit {
		// Shift in place so the backing array does not grow without bound
		n := copy(h.entries, h.entries[len(h.entries)-h.limit:])
		clear(h.entries[n:])
		h.entries = h.entries[:n]
	}
}

func (h *historyLog) len() int {
	return len(h.entries)
}

func (h *historyLog) snapshot() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *historyLog) reset() {
	h.entries = nil
}
