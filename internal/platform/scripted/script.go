// Package scripted is a compositor backend that replays a YAML event
// script. It reacts to focus and launch requests like a real compositor,
// which makes it useful for demos and tests.
package scripted

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Step kinds.
const (
	KindOpen    = "open"
	KindResolve = "resolve"
	KindTitle   = "title"
	KindFocus   = "focus"
	KindClose   = "close"
	KindSync    = "sync"
)

// Step is one scripted compositor event.
type Step struct {
	Kind    string        `yaml:"kind"`
	ID      uint64        `yaml:"id"`
	AppID   string        `yaml:"app_id,omitempty"`
	Title   string        `yaml:"title,omitempty"`
	Focused bool          `yaml:"focused,omitempty"`
	Pending bool          `yaml:"pending,omitempty"`
	Delay   time.Duration `yaml:"delay,omitempty"`
}

// Script is the file format read by Load.
type Script struct {
	Steps []Step `yaml:"steps"`
	// Titles gives the window title used when an app is launched.
	Titles map[string]string `yaml:"titles,omitempty"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (st Step) validate() error {
	switch st.Kind {
	case KindSync:
		return nil
	case KindOpen:
		if st.ID == 0 {
			return fmt.Errorf("open needs a non-zero id")
		}
		if !st.Pending && st.AppID == "" {
			return fmt.Errorf("open of window %d needs app_id unless pending", st.ID)
		}
	case KindResolve:
		if st.ID == 0 || st.AppID == "" {
			return fmt.Errorf("resolve needs id and app_id")
		}
	case KindTitle, KindFocus, KindClose:
		if st.ID == 0 {
			return fmt.Errorf("%s needs an id", st.Kind)
		}
	default:
		return fmt.Errorf("unknown step kind %q", st.Kind)
	}
	if st.Delay < 0 {
		return fmt.Errorf("negative delay %s", st.Delay)
	}
	return nil
}
