package realtime

// LiveList is the client-side view of a table kept current by applying events in arrival order.
type LiveList struct {
	key  string
	rows []map[string]any
}

func NewLiveList(key string, rows []map[string]any) *LiveList {
	if key == "" {
		key = "id"
	}
	cp := make([]map[string]any, len(rows))
	copy(cp, rows)
	return &LiveList{key: key, rows: cp}
}

// Apply reports whether the list changed.
func (l *LiveList) Apply(e Event) bool {
	switch e.Type {
	case Insert:
		if e.Record == nil {
			return false
		}
		if i := l.indexOf(field(e.Record, l.key)); i >= 0 {
			l.rows[i] = e.Record
			return true
		}
		l.rows = append(l.rows, e.Record)
		return true
	case Update:
		if e.Record == nil {
			return false
		}
		if i := l.indexOf(field(e.Record, l.key)); i >= 0 {
			l.rows[i] = e.Record
			return true
		}
		return false
	case Delete:
		i := l.indexOf(field(e.row(), l.key))
		if i < 0 {
			return false
		}
		l.rows = append(l.rows[:i], l.rows[i+1:]...)
		return true
	}
	return false
}

func (l *LiveList) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range l.rows {
		if field(r, l.key) == id {
			return i
		}
	}
	return -1
}

func (l *LiveList) Rows() []map[string]any {
	out := make([]map[string]any, len(l.rows))
	copy(out, l.rows)
	return out
}

func (l *LiveList) Len() int { return len(l.rows) }
