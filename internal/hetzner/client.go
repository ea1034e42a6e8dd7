package hetzner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.hetzner.cloud/v1"

// Server is the provider's descriptor of a remote instance.
type Server struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	PublicNet  PublicNet  `json:"public_net"`
	Type       ServerType `json:"server_type"`
	Datacenter Datacenter `json:"datacenter"`
	Image      Image      `json:"image"`
	Created    string     `json:"created"`
}

type PublicNet struct {
	IPv4 *IPAddress `json:"ipv4"`
	IPv6 *IPAddress `json:"ipv6"`
}

type IPAddress struct {
	IP string `json:"ip"`
}

type ServerType struct {
	Name   string  `json:"name"`
	Cores  int     `json:"cores"`
	Memory float64 `json:"memory"`
	Disk   int     `json:"disk"`
	Prices []Price `json:"prices"`
}

type Price struct {
	Location     string       `json:"location"`
	PriceMonthly PriceDetails `json:"price_monthly"`
}

type PriceDetails struct {
	Gross string `json:"gross"`
	Net   string `json:"net"`
}

type Datacenter struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

type Location struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Image struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateServerRequest struct {
	Name             string   `json:"name"`
	ServerType       string   `json:"server_type"`
	Location         string   `json:"location"`
	Image            string   `json:"image"`
	SSHKeys          []string `json:"ssh_keys,omitempty"`
	UserData         *string  `json:"user_data,omitempty"`
	StartAfterCreate bool     `json:"start_after_create"`
}

type serverResponse struct {
	Server Server `json:"server"`
}

type serversResponse struct {
	Servers []Server `json:"servers"`
}

// Client talks to the Hetzner Cloud control plane. Every call attaches the
// bearer token; any non-2xx status or decode failure surfaces as a plain
// error without retries.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiToken string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) request(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Hetzner API request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("hetzner API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(resp.Body)
		c.logger.Error("Hetzner API returned non-2xx status",
			zap.String("endpoint", endpoint), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("hetzner API error %d: %s", resp.StatusCode, string(errText))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to parse hetzner response: %w", err)
		}
	}
	return nil
}

func (c *Client) CreateServer(ctx context.Context, req CreateServerRequest) (*Server, error) {
	var resp serverResponse
	if err := c.request(ctx, http.MethodPost, "/servers", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Server, nil
}

func (c *Client) GetServer(ctx context.Context, serverID int64) (*Server, error) {
	var resp serverResponse
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/servers/%d", serverID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Server, nil
}

func (c *Client) ListServers(ctx context.Context) ([]Server, error) {
	var resp serversResponse
	if err := c.request(ctx, http.MethodGet, "/servers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Servers, nil
}

func (c *Client) DeleteServer(ctx context.Context, serverID int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/servers/%d", serverID), nil, nil)
}

// PowerOn is fire-and-forget on the provider side; callers re-fetch the
// server to observe the effect. The same holds for PowerOff and Reboot.
func (c *Client) PowerOn(ctx context.Context, serverID int64) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/servers/%d/actions/poweron", serverID), nil, nil)
}

func (c *Client) PowerOff(ctx context.Context, serverID int64) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/servers/%d/actions/poweroff", serverID), nil, nil)
}

func (c *Client) Reboot(ctx context.Context, serverID int64) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/servers/%d/actions/reboot", serverID), nil, nil)
}
