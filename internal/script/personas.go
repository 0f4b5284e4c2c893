package script

import (
	"encoding/json"
	"fmt"
	"os"
)

// Persona defines a host's identity, personality, and speaking style.
// VoiceID is the TTS voice used for this host's lines.
type Persona struct {
	Name        string `json:"name"`
	Personality string `json:"personality"`
	Style       string `json:"style"`
	VoiceID     string `json:"voice_id,omitempty"`
}

// HostPair is exactly two personas. The two-host invariant is enforced at
// construction so downstream code never revalidates it.
type HostPair struct {
	Host1 Persona
	Host2 Persona
}

// NewHostPair builds a HostPair, rejecting anything other than two hosts
// with distinct, non-empty names.
func NewHostPair(hosts []Persona) (HostPair, error) {
	if len(hosts) != 2 {
		return HostPair{}, inputErr("need exactly 2 host personas, got %d", len(hosts))
	}
	for i, h := range hosts {
		if h.Name == "" {
			return HostPair{}, inputErr("host %d missing name", i)
		}
	}
	if hosts[0].Name == hosts[1].Name {
		return HostPair{}, inputErr("host names must be distinct, both are %q", hosts[0].Name)
	}
	return HostPair{Host1: hosts[0], Host2: hosts[1]}, nil
}

// Names returns the two speaker keys.
func (p HostPair) Names() []string {
	return []string{p.Host1.Name, p.Host2.Name}
}

// Hosts returns the pair as a slice in order.
func (p HostPair) Hosts() []Persona {
	return []Persona{p.Host1, p.Host2}
}

type personaFile struct {
	Hosts []Persona `json:"hosts"`
}

// LoadPersonas reads a persona config file of the form
// {"hosts": [{"name": ..., "personality": ..., "style": ..., "voice_id": ...}]}.
func LoadPersonas(path string) (HostPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HostPair{}, fmt.Errorf("read personas from %s: %w", path, err)
	}
	var pf personaFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return HostPair{}, fmt.Errorf("parse personas from %s: %w", path, err)
	}
	return NewHostPair(pf.Hosts)
}
