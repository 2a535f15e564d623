package common

type Mode int

const (
	Browse Mode = iota
	Edit
	Command
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Mode() Mode
	CurrentDir() string
	ShowHelp() bool
	CommandBuffer() string
	BrowserView() string
	EditorView() string
	StatusView() string
}
