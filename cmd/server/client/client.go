// Package client provides commands that call a running knight API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/knight-api/internal/errors"
	v1 "github.com/KirkDiggler/knight-api/internal/handlers/api/v1"
)

var (
	// Connection flags
	serverAddr string
	apiURL     string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the knight API",
	Long:  `Client commands call a running knight API over HTTP, and its gRPC health endpoint.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "HTTP API base URL")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(healthCmd)
	ClientCmd.AddCommand(listCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(renameCmd)
	ClientCmd.AddCommand(killCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// apiClient calls the knight HTTP API
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *apiClient) listKnights(ctx context.Context, filter string) ([]v1.KnightResponse, error) {
	path := "/knights"
	if filter != "" {
		path += "?filter=" + url.QueryEscape(filter)
	}

	var knights []v1.KnightResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &knights); err != nil {
		return nil, err
	}
	return knights, nil
}

func (c *apiClient) getKnight(ctx context.Context, id string) (*v1.KnightResponse, error) {
	var knight v1.KnightResponse
	if err := c.do(ctx, http.MethodGet, "/knights/"+url.PathEscape(id), nil, &knight); err != nil {
		return nil, err
	}
	return &knight, nil
}

func (c *apiClient) renameKnight(ctx context.Context, id, nickname string) (*v1.KnightResponse, error) {
	body := v1.UpdateKnightRequest{Nickname: &nickname}

	var knight v1.KnightResponse
	if err := c.do(ctx, http.MethodPatch, "/knights/"+url.PathEscape(id), body, &knight); err != nil {
		return nil, err
	}
	return &knight, nil
}

func (c *apiClient) deleteKnight(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/knights/"+url.PathEscape(id), nil, nil)
}

// do sends the request and decodes a 2xx body into out. Error bodies are
// turned back into *errors.Error with the server's code and message.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach knight api")
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	if resp.StatusCode >= 300 {
		var apiErr v1.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Code == "" {
			return errors.Internalf("unexpected status %d", resp.StatusCode)
		}
		code, known := errors.ParseCode(apiErr.Code)
		e := errors.New(code, apiErr.Message)
		if !known {
			e = e.WithMeta("code", apiErr.Code)
		}
		for k, v := range apiErr.Meta {
			e = e.WithMeta(k, v)
		}
		return e
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func printKnight(w io.Writer, k *v1.KnightResponse) {
	status := "alive"
	if k.IsDeleted {
		status = "hero"
		if k.DeletedAt != nil {
			status = fmt.Sprintf("hero since %s", k.DeletedAt.Format(time.DateOnly))
		}
	}

	fmt.Fprintf(w, "%s\n", k.Name)
	fmt.Fprintf(w, "  ID:       %s\n", k.ID)
	fmt.Fprintf(w, "  Nickname: %s\n", k.Nickname)
	fmt.Fprintf(w, "  Birthday: %s (age %d)\n", k.Birthday, k.Age)
	fmt.Fprintf(w, "  Attack:   %d (key %s)\n", k.Attack, k.KeyAttribute)
	fmt.Fprintf(w, "  Exp:      %d\n", k.Exp)
	fmt.Fprintf(w, "  Status:   %s\n", status)
	for _, weapon := range k.Weapons {
		equipped := ""
		if weapon.Equipped {
			equipped = " [equipped]"
		}
		fmt.Fprintf(w, "  Weapon:   %s +%d (%s)%s\n", weapon.Name, weapon.Mod, weapon.Attr, equipped)
	}
}
