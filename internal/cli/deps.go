package cli

import (
	"io"
	"os"

	"github.com/xolan/nutritrack/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is nil until the root command has parsed its flags;
	// tests set it directly.
	Services *service.Services
}

// DefaultDeps creates a new Deps wired to the process streams
func DefaultDeps() *Deps {
	return &Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Exit:   os.Exit,
	}
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services) *Deps {
	d := DefaultDeps()
	d.Services = services
	return d
}

// Global deps instance for CLI
var deps = DefaultDeps()

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	return deps
}
