package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"checkin-guide/models"
)

var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

var filterEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// RESTStore talks to a PocketBase style content API:
// /api/collections/{collection}/records[/{id}].
type RESTStore struct {
	baseURL string
	token   string
	perPage int
	client  *http.Client
}

func NewRESTStore(baseURL, token string, perPage int, timeout time.Duration) *RESTStore {
	if perPage <= 0 {
		perPage = 200
	}
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		perPage: perPage,
		client:  &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalPages int             `json:"totalPages"`
	TotalItems int             `json:"totalItems"`
	Items      []models.Record `json:"items"`
}

// BuildFilter renders an equality filter as (a='x' && b='y'), keys sorted.
func BuildFilter(filter Filter) (string, error) {
	if len(filter) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		if !fieldNamePattern.MatchString(k) {
			return "", fmt.Errorf("store: invalid filter field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s='%s'", k, filterEscaper.Replace(filter[k])))
	}
	return "(" + strings.Join(parts, " && ") + ")", nil
}

func (s *RESTStore) recordsPath(collection, id string) string {
	p := "/api/collections/" + url.PathEscape(collection) + "/records"
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}

func (s *RESTStore) List(ctx context.Context, collection string, filter Filter) ([]models.Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	expr, err := BuildFilter(filter)
	if err != nil {
		return nil, err
	}

	out := []models.Record{}
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("perPage", strconv.Itoa(s.perPage))
		q.Set("sort", "created")
		if expr != "" {
			q.Set("filter", expr)
		}

		var resp listResponse
		if err := s.do(ctx, http.MethodGet, s.recordsPath(collection, "")+"?"+q.Encode(), nil, &resp); err != nil {
			return nil, err
		}
		out = append(out, resp.Items...)
		if len(resp.Items) == 0 || page >= resp.TotalPages {
			return out, nil
		}
	}
}

func (s *RESTStore) Get(ctx context.Context, collection, id string) (models.Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	var rec models.Record
	if err := s.do(ctx, http.MethodGet, s.recordsPath(collection, id), nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RESTStore) Create(ctx context.Context, collection string, rec models.Record) (models.Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	var out models.Record
	if err := s.do(ctx, http.MethodPost, s.recordsPath(collection, ""), rec, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RESTStore) Update(ctx context.Context, collection, id string, patch models.Record) (models.Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	var out models.Record
	if err := s.do(ctx, http.MethodPatch, s.recordsPath(collection, id), patch, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RESTStore) Delete(ctx context.Context, collection, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	return s.do(ctx, http.MethodDelete, s.recordsPath(collection, id), nil, nil)
}

func (s *RESTStore) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("store: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", authHeader(s.token))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("store: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("store: decode %s %s: %w", method, path, err)
	}
	return nil
}

// authHeader sends a bare token as a bearer credential and passes anything
// with a scheme through unchanged.
func authHeader(token string) string {
	if strings.Contains(token, " ") {
		return token
	}
	return "Bearer " + token
}
