package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"tasklist/config"
	"tasklist/internal/domains/todo/model/dto"
	"tasklist/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

const todosPath = "/todos"

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the todo API over one base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	return NewClient(cfg.Client.APIURL, time.Duration(cfg.Client.TimeoutSeconds)*time.Second)
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) List(ctx context.Context) ([]dto.TodoResponse, error) {
	res := []dto.TodoResponse{}

	if err := c.do(ctx, http.MethodGet, todosPath, nil, &res); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Client) Create(ctx context.Context, title string) (dto.TodoResponse, error) {
	var res dto.TodoResponse

	err := c.do(ctx, http.MethodPost, todosPath, dto.CreateTodoRequest{Title: title}, &res)

	return res, err
}

func (c *Client) Toggle(ctx context.Context, id string) (dto.TodoResponse, error) {
	var res dto.TodoResponse

	err := c.do(ctx, http.MethodPatch, todoPath(id), nil, &res)

	return res, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id string) string {
	return todosPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}

		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if payload != nil {
		request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")

		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	log.Debug().Str("method", method).Str("path", path).Int("status", response.StatusCode).Msg("api call")

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return decodeError(response)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func decodeError(response *http.Response) error {
	apiErr := &Error{StatusCode: response.StatusCode}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(response.Body).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Error
		if apiErr.Message == "" {
			apiErr.Message = envelope.Message
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(response.StatusCode)
	}

	return apiErr
}
