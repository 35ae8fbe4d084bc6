package history

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanEvent scans a single row into an Event. The row must contain columns
// in the order defined by eventColumns.
func scanEvent(row scannable) (*Event, error) {
	var ev Event
	var payload []byte
	err := row.Scan(
		&ev.ID,
		&ev.RunID,
		&ev.EventType,
		&ev.JobNamespace,
		&ev.JobName,
		&ev.Producer,
		&ev.EventTime,
		&payload,
		&ev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		ev.Payload = payload
	}
	return &ev, nil
}
