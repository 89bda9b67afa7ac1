package domain

// Status is the wire value stored for one task calendar cell.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
	StatusDelayed    Status = "Delayed"
)

// displayLabels maps wire values to the dashboard labels. Both dialects
// live in this one table; nothing else hardcodes a label.
var displayLabels = map[Status]string{
	StatusNew:        "Pending",
	StatusInProgress: "Doing",
	StatusDone:       "Done",
	StatusDelayed:    "Delayed",
}

var wireByLabel = func() map[string]Status {
	m := make(map[string]Status, len(displayLabels))
	for s, label := range displayLabels {
		m[label] = s
	}
	return m
}()

// Valid reports whether s is one of the four wire values.
func (s Status) Valid() bool {
	_, ok := displayLabels[s]
	return ok
}

// Display returns the dashboard label for s. Unknown values pass
// through unchanged.
func (s Status) Display() string {
	if label, ok := displayLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseStatus converts a wire value sent by the client.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

// ParseDisplay converts a dashboard label back to its wire value.
func ParseDisplay(label string) (Status, bool) {
	s, ok := wireByLabel[label]
	return s, ok
}

// NextStatus advances one click through the cell cycle:
// nothing -> New -> InProgress -> Done -> Delayed -> nothing.
// Any unknown current value resets to nothing.
func NextStatus(cur *Status) *Status {
	var next Status
	if cur == nil {
		next = StatusNew
		return &next
	}
	switch *cur {
	case StatusNew:
		next = StatusInProgress
	case StatusInProgress:
		next = StatusDone
	case StatusDone:
		next = StatusDelayed
	default:
		return nil
	}
	return &next
}
