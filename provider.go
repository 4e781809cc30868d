package main

import (
	"fmt"
	"strings"
	"time"
)

// DefaultProviderName is selected on first start and for unknown names
const DefaultProviderName = "AIStudio"

// providerCheckTimeout bounds one reachability request
const providerCheckTimeout = 8 * time.Second

// DefaultProviders returns the built-in provider list
func DefaultProviders() []ProviderEntry {
	return []ProviderEntry{
		{Name: "ChatGPT", URL: "https://chat.openai.com"},
		{Name: "Gemini", URL: "https://gemini.google.com/app"},
		{Name: "AIStudio", URL: "https://aistudio.google.com"},
		{Name: "Claude", URL: "https://claude.ai/chats"},
		{Name: "Grok", URL: "https://grok.com/chat"},
	}
}

// FindProvider returns the provider called name. Unknown names fall back
// to AIStudio when the list has it, else to the first entry.
func FindProvider(providers []ProviderEntry, name string) ProviderEntry {
	if len(providers) == 0 {
		providers = DefaultProviders()
	}
	for _, p := range providers {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	for _, p := range providers {
		if p.Name == DefaultProviderName {
			return p
		}
	}
	return providers[0]
}

// ProviderStatus is the result of one reachability check
type ProviderStatus struct {
	Code      int
	Err       string
	CheckedAt time.Time
}

// OK reports a response below 500. Login walls (401/403) still mean the
// page is up.
func (s ProviderStatus) OK() bool {
	return s.Err == "" && s.Code > 0 && s.Code < 500
}

func (s ProviderStatus) String() string {
	if s.Err != "" {
		return "unreachable: " + s.Err
	}
	return fmt.Sprintf("HTTP %d at %s", s.Code, s.CheckedAt.Format("15:04:05"))
}

// ProviderChecker checks provider reachability and caches the results
type ProviderChecker struct {
	cache   *AppCache
	timeout time.Duration
	fetch   func(url string, timeout time.Duration) (int, error)
}

// NewProviderChecker returns a checker backed by c
func NewProviderChecker(c *AppCache) *ProviderChecker {
	return &ProviderChecker{
		cache:   c,
		timeout: providerCheckTimeout,
		fetch:   httpStatus,
	}
}

// Status returns the cached status of p, checking it when there is none
func (pc *ProviderChecker) Status(p ProviderEntry) ProviderStatus {
	if st, ok := pc.cache.GetStatus(p.Name); ok {
		LogDebug("Provider status cache hit: %s", p.Name)
		return st
	}
	return pc.Refresh(p)
}

// Refresh checks p now and replaces the cached status
func (pc *ProviderChecker) Refresh(p ProviderEntry) ProviderStatus {
	st := ProviderStatus{CheckedAt: time.Now()}
	code, err := pc.fetch(p.URL, pc.timeout)
	if err != nil {
		st.Err = err.Error()
		LogWarn("Provider %s unreachable: %v", p.Name, err)
	} else {
		st.Code = code
	}
	pc.cache.SetStatus(p.Name, st)
	return st
}
