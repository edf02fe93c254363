// Package logging holds logging helpers shared by the client packages.
package logging

import (
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
)

var _ general_i.Logger = Nop{}

// Nop discards every message. Components fall back to it when no logger is configured.
type Nop struct{}

func (Nop) Info(string)    {}
func (Nop) Warning(string) {}
func (Nop) Error(string)   {}
