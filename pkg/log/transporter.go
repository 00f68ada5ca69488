package log

// Transporter is a destination for entries.
type Transporter interface {
	Name() string
	// Write delivers one entry. It is called from a single goroutine.
	Write(entry Entry) error
	Close() error
}

type discard struct{}

func (discard) Name() string      { return "discard" }
func (discard) Write(Entry) error { return nil }
func (discard) Close() error      { return nil }
