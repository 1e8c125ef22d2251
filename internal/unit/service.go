package unit

import (
	"errors"
	"fmt"
	"strings"
)

// HomeDir is the systemd specifier for the user's home directory.
const HomeDir = "%h"

// Extension is appended to a service name to form its unit file name.
const Extension = ".service"

var (
	ErrEmptyName         = errors.New("service name is required")
	ErrInvalidName       = errors.New("invalid service name")
	ErrEmptyStartCommand = errors.New("start command is required")
	ErrInvalidPort       = errors.New("port must be between 1 and 65535")
	ErrDomainWithoutPort = errors.New("a domain can only be registered for a service with a port")
	ErrInvalidDomain     = errors.New("invalid domain")
)

// Options holds the fields used to build a Service.
// A zero Port means the service does not listen on a port.
type Options struct {
	Name            string
	Description     string
	Directory       string
	Port            int
	PreStartCommand string
	StartCommand    string
	Domain          string
}

// Service describes a single user service. It is immutable once built;
// use New to construct one.
type Service struct {
	name            string
	description     string
	directory       string
	port            int
	preStartCommand string
	startCommand    string
	domain          string
}

// New validates opts and returns the Service they describe.
// An empty description defaults to the name and an empty directory
// defaults to the home directory specifier.
func New(opts Options) (Service, error) {
	if err := ValidateName(opts.Name); err != nil {
		return Service{}, err
	}
	if strings.TrimSpace(opts.StartCommand) == "" {
		return Service{}, ErrEmptyStartCommand
	}
	if opts.Port < 0 || opts.Port > 65535 {
		return Service{}, fmt.Errorf("%w: %d", ErrInvalidPort, opts.Port)
	}
	if opts.Domain != "" {
		if opts.Port == 0 {
			return Service{}, ErrDomainWithoutPort
		}
		if err := ValidateDomain(opts.Domain); err != nil {
			return Service{}, err
		}
	}

	s := Service{
		name:            opts.Name,
		description:     opts.Description,
		directory:       opts.Directory,
		port:            opts.Port,
		preStartCommand: opts.PreStartCommand,
		startCommand:    opts.StartCommand,
		domain:          opts.Domain,
	}
	if s.description == "" {
		s.description = s.name
	}
	if s.directory == "" {
		s.directory = HomeDir
	}
	return s, nil
}

// ValidateName reports whether name can be used as a unit file basename.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.HasSuffix(name, Extension) {
		return fmt.Errorf("%w: %q (omit the %s suffix)", ErrInvalidName, name, Extension)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\ \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ValidateDomain reports whether domain can be recorded on the first line
// of a unit file and read back from it.
func ValidateDomain(domain string) error {
	if domain == "" || strings.ContainsAny(domain, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	return nil
}

// FileName returns the unit file name for a service name.
func FileName(name string) string {
	return name + Extension
}

// WithDomain returns a copy of s with domain recorded as registered.
func (s Service) WithDomain(domain string) (Service, error) {
	if domain != "" {
		if s.port == 0 {
			return Service{}, ErrDomainWithoutPort
		}
		if err := ValidateDomain(domain); err != nil {
			return Service{}, err
		}
	}
	s.domain = domain
	return s, nil
}

func (s Service) Name() string            { return s.name }
func (s Service) Description() string     { return s.description }
func (s Service) Directory() string       { return s.directory }
func (s Service) PreStartCommand() string { return s.preStartCommand }
func (s Service) StartCommand() string    { return s.startCommand }

// Port returns the port and whether one is configured.
func (s Service) Port() (int, bool) {
	return s.port, s.port != 0
}

// Domain returns the registered domain and whether one is set.
func (s Service) Domain() (string, bool) {
	return s.domain, s.domain != ""
}
