package tools

// Config holds the name and description shared by the built-in tools.
// Backends embed it and expose their own Schema/Invoke.
type Config struct {
	// name is the tool identifier; backends set a default that options
	// may override.
	name string
	// description is the model-facing summary of the tool.
	description string
}

func (c *Config) SetName(v string) {
	c.name = v
}

func (c Config) Name() string {
	return c.name
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}
