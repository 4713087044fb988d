package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/alarm-relay/internal/domain/alarm"
)

// Process resolves the current process identity once and caches it.
// It implements alarm.Identity and is safe for concurrent use.
type Process struct {
	// override replaces the detected identity when non-empty.
	override string
	// executable returns the name of the running binary.
	executable func() (string, error)
	// hostname returns the machine name.
	hostname func() (string, error)

	once sync.Once
	name string
}

var _ alarm.Identity = (*Process)(nil)

// New returns a provider that reports override if set,
// otherwise `<executable>@<hostname>` of the running process.
func New(override string) *Process {
	return &Process{
		override:   strings.TrimSpace(override),
		executable: currentExecutable,
		hostname:   os.Hostname,
	}
}

// ProcessName returns the process identity, resolving it on first use.
func (p *Process) ProcessName() string {
	p.once.Do(func() {
		p.name = p.resolve()
	})

	return p.name
}

func (p *Process) resolve() string {
	if p.override != "" {
		return p.override
	}

	executable, err := p.executable()
	if err != nil || executable == "" {
		executable = fallbackExecutable()
	}

	hostname, err := p.hostname()
	if err != nil || hostname == "" {
		return executable
	}

	return executable + "@" + hostname
}

// currentExecutable looks the running process up in the process table.
func currentExecutable() (string, error) {
	process, err := ps.FindProcess(os.Getpid())
	if err != nil {
		return "", fmt.Errorf("find process: %w", err)
	}

	if process == nil {
		return "", nil
	}

	return trimExtension(process.Executable()), nil
}

// fallbackExecutable derives the binary name from the command line.
func fallbackExecutable() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "unknown"
	}

	return trimExtension(filepath.Base(os.Args[0]))
}

// trimExtension drops ".exe" so identities match across platforms.
func trimExtension(name string) string {
	return strings.TrimSuffix(name, ".exe")
}
