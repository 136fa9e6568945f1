package venv

import (
	"bufio"
	"bytes"
	"strings"
)

// configLine is one line of a pyvenv.cfg file. Lines that are not key = value pairs
// keep their raw text and are written back unchanged.
type configLine struct {
	key   string
	value string
	raw   string
}

// Config is a parsed pyvenv.cfg that preserves line order.
type Config struct {
	lines []configLine
}

// ParseConfig parses pyvenv.cfg contents.
func ParseConfig(data []byte) *Config {
	c := &Config{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		text := scanner.Text()
		key, value, ok := strings.Cut(text, "=")
		if !ok || strings.TrimSpace(key) == "" {
			c.lines = append(c.lines, configLine{raw: text})
			continue
		}
		c.lines = append(c.lines, configLine{
			key:   strings.TrimSpace(key),
			value: strings.TrimSpace(value),
		})
	}
	return c
}

// Get returns the value for key.
func (c *Config) Get(key string) (string, bool) {
	for _, l := range c.lines {
		if l.key == key {
			return l.value, true
		}
	}
	return "", false
}

// Set replaces the value of key in place, or appends it.
func (c *Config) Set(key, value string) {
	for i, l := range c.lines {
		if l.key == key {
			c.lines[i].value = value
			return
		}
	}
	c.lines = append(c.lines, configLine{key: key, value: value})
}

// Map returns every key and value.
func (c *Config) Map() map[string]string {
	m := make(map[string]string, len(c.lines))
	for _, l := range c.lines {
		if l.key != "" {
			m[l.key] = l.value
		}
	}
	return m
}

// Bytes renders the configuration.
func (c *Config) Bytes() []byte {
	var buf bytes.Buffer
	for _, l := range c.lines {
		if l.key == "" {
			buf.WriteString(l.raw)
		} else {
			buf.WriteString(l.key)
			buf.WriteString(" = ")
			buf.WriteString(l.value)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
