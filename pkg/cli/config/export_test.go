package config

// NewAppWithPath builds an App with a fixed config path for testing
func NewAppWithPath(path string) *App {
	return &App{path: path}
}
