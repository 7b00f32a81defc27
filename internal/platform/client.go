package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/pathok/admin-console/internal/models"
)

// DefaultBaseURL is the production platform API.
const DefaultBaseURL = "https://lkp.pathok.com.bd"

// Client is an HTTP client for the Pathok platform REST API. All endpoints
// except Login require a bearer token obtained from Login.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a platform client. An empty baseURL selects the
// production API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LoginResult is the platform's response to a successful login.
type LoginResult struct {
	User struct {
		ID    string      `json:"_id"`
		Email string      `json:"email"`
		Role  models.Role `json:"role"`
		Name  string      `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. Any non-2xx status is a
// login failure.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/user/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call login endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("login returned status %d: %s", resp.StatusCode, string(body))
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	return &result, nil
}

// ListBooks fetches all book records.
func (c *Client) ListBooks(ctx context.Context, token string) ([]models.Book, error) {
	var books []models.Book
	if err := c.getJSON(ctx, token, "/api/book", &books); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetBook fetches a single book by id.
func (c *Client) GetBook(ctx context.Context, token, id string) (*models.Book, error) {
	var book models.Book
	if err := c.getJSON(ctx, token, "/api/book/"+url.PathEscape(id), &book); err != nil {
		return nil, fmt.Errorf("failed to get book %s: %w", id, err)
	}
	return &book, nil
}

// CountBooks returns the total number of books on the platform.
func (c *Client) CountBooks(ctx context.Context, token string) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	if err := c.getJSON(ctx, token, "/api/book/count/count-books", &result); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return result.Count, nil
}

// BookUpload carries the multipart fields for creating a book. Cover and
// File stream the uploaded cover image and book document.
type BookUpload struct {
	Title     string
	Author    string
	Editor    string
	Publisher string
	Type      string
	Category  string

	CoverName string
	Cover     io.Reader
	FileName  string
	File      io.Reader
}

// CreateBook uploads a new book as a multipart form.
func (c *Client) CreateBook(ctx context.Context, token string, upload BookUpload) (*models.Book, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":     upload.Title,
		"author":    upload.Author,
		"editor":    upload.Editor,
		"publisher": upload.Publisher,
		"type":      upload.Type,
		"category":  upload.Category,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if upload.Cover != nil {
		part, err := w.CreateFormFile("bookCover", upload.CoverName)
		if err != nil {
			return nil, fmt.Errorf("failed to create cover part: %w", err)
		}
		if _, err := io.Copy(part, upload.Cover); err != nil {
			return nil, fmt.Errorf("failed to copy cover data: %w", err)
		}
	}
	if upload.File != nil {
		part, err := w.CreateFormFile("bookFile", upload.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create book file part: %w", err)
		}
		if _, err := io.Copy(part, upload.File); err != nil {
			return nil, fmt.Errorf("failed to copy book file data: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/book", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create book request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var book models.Book
	if err := c.doJSON(req, &book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return &book, nil
}

// DeleteBook removes a book by id.
func (c *Client) DeleteBook(ctx context.Context, token, id string) error {
	if err := c.delete(ctx, token, "/api/book/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete book %s: %w", id, err)
	}
	return nil
}

// ListBookTypes fetches all book types.
func (c *Client) ListBookTypes(ctx context.Context, token string) ([]models.BookType, error) {
	var types []models.BookType
	if err := c.getJSON(ctx, token, "/api/bookType", &types); err != nil {
		return nil, fmt.Errorf("failed to list book types: %w", err)
	}
	return types, nil
}

// CreateBookType creates a new book type with the given name.
func (c *Client) CreateBookType(ctx context.Context, token, name string) (*models.BookType, error) {
	var bt models.BookType
	if err := c.postJSON(ctx, token, "/api/bookType", map[string]string{"name": name}, &bt); err != nil {
		return nil, fmt.Errorf("failed to create book type: %w", err)
	}
	return &bt, nil
}

// DeleteBookType removes a book type by id.
func (c *Client) DeleteBookType(ctx context.Context, token, id string) error {
	if err := c.delete(ctx, token, "/api/bookType/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete book type %s: %w", id, err)
	}
	return nil
}

// ListTags fetches all tags.
func (c *Client) ListTags(ctx context.Context, token string) ([]models.Tag, error) {
	var tags []models.Tag
	if err := c.getJSON(ctx, token, "/api/tag", &tags); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a new tag with the given name.
func (c *Client) CreateTag(ctx context.Context, token, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := c.postJSON(ctx, token, "/api/tag", map[string]string{"name": name}, &tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

// DeleteTag removes a tag by id.
func (c *Client) DeleteTag(ctx context.Context, token, id string) error {
	if err := c.delete(ctx, token, "/api/tag/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", id, err)
	}
	return nil
}

// CreateUser creates a platform user.
func (c *Client) CreateUser(ctx context.Context, token string, user models.User) (*models.User, error) {
	var created models.User
	if err := c.postJSON(ctx, token, "/api/user", user, &created); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, nil
}

// UpdateUser updates a platform user by id.
func (c *Client) UpdateUser(ctx context.Context, token, id string, user models.User) (*models.User, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+"/api/user/"+url.PathEscape(id), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create user update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	var updated models.User
	if err := c.doJSON(req, &updated); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.doJSON(req, out)
}

func (c *Client) postJSON(ctx context.Context, token, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return c.doJSON(req, out)
}

func (c *Client) delete(ctx context.Context, token, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.doJSON(req, nil)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("platform API returned status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
