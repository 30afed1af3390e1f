package logger

// Get returns the global logger tagged with the given component name.
func Get(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}
