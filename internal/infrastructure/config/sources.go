package config

import (
	"errors"
	"fmt"
	"strings"
)

// AddSource appends a document address to the default sources.
func (c *Config) AddSource(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("source address is empty")
	}
	if c.HasSource(address) {
		return fmt.Errorf("source %q already configured", address)
	}
	c.Sources = append(c.Sources, address)
	return nil
}

// RemoveSource removes a document address from the default sources.
func (c *Config) RemoveSource(address string) error {
	if len(c.Sources) == 0 {
		return errors.New("no sources configured")
	}
	for i, s := range c.Sources {
		if s == address {
			c.Sources = append(c.Sources[:i], c.Sources[i+1:]...)
			return nil
		}
	}

	available := c.Sources
	if len(available) > 5 {
		available = append(available[:5:5], "...")
	}
	return fmt.Errorf("source %q not found (available: %s)", address, strings.Join(available, ", "))
}

// HasSource checks if an address is among the default sources.
func (c *Config) HasSource(address string) bool {
	for _, s := range c.Sources {
		if s == address {
			return true
		}
	}
	return false
}
