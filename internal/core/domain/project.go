package domain

// Project is a loaded envcache.yaml.
type Project struct {
	// Root is the directory holding the project file.
	Root string
	// Path is the project file.
	Path string
	// Python is the interpreter to use; empty means the default lookup.
	Python string
	Spec   EnvironmentSpec
	// BuildConstraints pin packages in isolated build environments.
	BuildConstraints []Requirement
	Settings         Settings
	Concurrency      Concurrency
}
