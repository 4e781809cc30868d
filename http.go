package main

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests (30 seconds)
const DefaultHTTPTimeout = 30 * time.Second

// userAgent is sent with reachability checks; some providers reject the Go default
const userAgent = "Mozilla/5.0 (compatible; llmoverlay)"

// insecureClient is an HTTP client that skips TLS certificate verification
var insecureClient = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	},
}

// HTTPSession maintains cookies across multiple HTTP requests of one script run
type HTTPSession struct {
	jar    *cookiejar.Jar
	client *http.Client
}

// NewHTTPSession creates a new HTTP session with cookie jar support
func NewHTTPSession(skipVerify bool) (*HTTPSession, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport
	if skipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &HTTPSession{
		jar:    jar,
		client: &http.Client{Jar: jar, Transport: transport},
	}, nil
}

// Get performs an HTTP GET request using the session's cookie jar
func (s *HTTPSession) Get(url string, headers map[string]string, timeout time.Duration) (string, error) {
	return doRequest(s.client, "GET", url, "", headers, timeout)
}

// Post performs an HTTP POST request using the session's cookie jar
func (s *HTTPSession) Post(url string, body string, headers map[string]string, timeout time.Duration) (string, error) {
	return doRequest(s.client, "POST", url, body, headers, timeout)
}

// httpGet performs an HTTP GET request with optional headers, timeout, and skip_verify
func httpGet(url string, headers map[string]string, timeout time.Duration, skipVerify bool) (string, error) {
	return doRequest(pickClient(skipVerify), "GET", url, "", headers, timeout)
}

// httpPost performs an HTTP POST request with body, optional headers, timeout, and skip_verify
func httpPost(url string, body string, headers map[string]string, timeout time.Duration, skipVerify bool) (string, error) {
	return doRequest(pickClient(skipVerify), "POST", url, body, headers, timeout)
}

// httpStatus fetches url and returns only the status code
func httpStatus(url string, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}

func pickClient(skipVerify bool) *http.Client {
	if skipVerify {
		return insecureClient
	}
	return http.DefaultClient
}

func doRequest(client *http.Client, method, url, body string, headers map[string]string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var reader io.Reader
	if method == "POST" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return "", err
	}

	// Default content type
	if method == "POST" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(respBody), nil
}
