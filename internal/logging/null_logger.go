package logging

// NullLogger drops every message. Parsers, validators and ontology clients
// default to it when the caller supplies no logger.
type NullLogger struct{}

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (*NullLogger) Verbose(string, ...any) {}
func (*NullLogger) Info(string, ...any)    {}
func (*NullLogger) Error(string, ...any)   {}
