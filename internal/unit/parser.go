package unit

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Pattern: #api.example.com (first line only)
	domainLineRe = regexp.MustCompile(`^#\s*(\S+)\s*$`)

	// Pattern: Key=value
	keyValueRe = regexp.MustCompile(`^([A-Za-z]+)=(.*)$`)

	// Pattern: PORT=8080 inside an Environment= value
	portEnvRe = regexp.MustCompile(`(?:^|[\s"])PORT=(\d+)`)
)

// Info is the summary of a stored unit file.
type Info struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Directory       string `yaml:"directory"`
	Port            int    `yaml:"port,omitempty"`
	PreStartCommand string `yaml:"pre_start_command,omitempty"`
	StartCommand    string `yaml:"start_command"`
	Domain          string `yaml:"domain,omitempty"`
}

// DomainFromLine extracts the domain from a leading "#<domain>" line.
func DomainFromLine(line string) (string, bool) {
	matches := domainLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if matches == nil {
		return "", false
	}
	return matches[1], true
}

// ParseContent parses unit file content from string
func ParseContent(content string) (Info, error) {
	return Parse(bufio.NewScanner(strings.NewReader(content)))
}

// Parse reads the fields written by Render back from a scanner.
// Unknown keys and sections are ignored.
func Parse(scanner *bufio.Scanner) (Info, error) {
	var info Info
	first := true

	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		if first {
			first = false
			if domain, ok := DomainFromLine(line); ok {
				info.Domain = domain
				continue
			}
		}

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "[") {
			continue
		}

		matches := keyValueRe.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		key, value := matches[1], matches[2]

		switch key {
		case "Description":
			info.Description = value
		case "WorkingDirectory":
			info.Directory = value
		case "Environment":
			if m := portEnvRe.FindStringSubmatch(value); m != nil {
				port, _ := strconv.Atoi(m[1])
				info.Port = port
			}
		case "ExecStartPre":
			info.PreStartCommand = strings.TrimPrefix(value, "-")
		case "ExecStart":
			info.StartCommand = value
		}
	}

	if err := scanner.Err(); err != nil {
		return Info{}, fmt.Errorf("scan error: %w", err)
	}

	return info, nil
}
