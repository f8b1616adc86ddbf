package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// MockProvider implements Provider for testing and demos without real
// API calls. Responses are scripted: the first rule whose match string
// appears in the prompt wins. Rules can be registered in code or loaded
// from a YAML script file.
type MockProvider struct {
	mu        sync.Mutex
	rules     []scriptRule
	fallback  string
	failures  int
	failErr   error
	alwaysErr error
	requests  []string
}

type scriptRule struct {
	Match    string `yaml:"match"`
	Response string `yaml:"response"`
}

type scriptFile struct {
	Rules    []scriptRule `yaml:"rules"`
	Fallback string       `yaml:"fallback"`
}

// NewMockProvider creates an empty mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// LoadMockScript creates a mock provider from a YAML script file with
// the shape:
//
//	rules:
//	  - match: "router agent"
//	    response: '["analysis"]'
//	fallback: "ok"
func LoadMockScript(path string) (*MockProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock script %q: %w", path, err)
	}
	var script scriptFile
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse mock script %q: %w", path, err)
	}
	return &MockProvider{
		rules:    script.Rules,
		fallback: script.Fallback,
	}, nil
}

// Script registers a rule: prompts containing match get response.
func (m *MockProvider) Script(match, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, scriptRule{Match: match, Response: response})
}

// SetFallback sets the response for prompts matching no rule.
func (m *MockProvider) SetFallback(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = response
}

// FailTimes makes the next n calls return err before scripted behavior
// resumes. Useful for retry tests.
func (m *MockProvider) FailTimes(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = n
	m.failErr = err
}

// FailAlways makes every call return err.
func (m *MockProvider) FailAlways(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alwaysErr = err
}

// Requests returns a copy of all prompts seen so far.
func (m *MockProvider) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.requests))
	copy(out, m.requests)
	return out
}

// Complete implements Provider.Complete.
func (m *MockProvider) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, prompt)

	if m.alwaysErr != nil {
		return "", m.alwaysErr
	}
	if m.failures > 0 {
		m.failures--
		return "", m.failErr
	}

	for _, rule := range m.rules {
		if strings.Contains(prompt, rule.Match) {
			return rule.Response, nil
		}
	}
	if m.fallback != "" {
		return m.fallback, nil
	}
	return "", fmt.Errorf("mock provider: no rule matched prompt")
}

// Name implements Provider.Name.
func (m *MockProvider) Name() string {
	return "mock"
}

// Model implements Provider.Model.
func (m *MockProvider) Model() string {
	return "scripted"
}
