package exchange

// Logger receives the client's diagnostics. Its method set matches
// pluginapi.LogService, so a plugin can pass &client.Log directly.
type Logger interface {
	Debug(message string, keyValuePairs ...interface{})
	Error(message string, keyValuePairs ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{}) {}
