package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"complaints/internal/core"
	"complaints/internal/store"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config selects the spreadsheet and the credentials used to reach it.
type Config struct {
	SpreadsheetID      string
	ComplaintsSheet    string // default "Complaints"
	CategoriesSheet    string // default "Categories"
	CategoriesHeader   bool   // first categories row is a column title
	ServiceAccountJSON string
	ServiceAccountFile string
}

// Client is a Google Sheets backed store.Gateway. The complaints sheet carries a
// header row with Name, Email, Message and Category columns; the categories
// sheet holds one label per row in column A, optionally under a title row.
type Client struct {
	svc             *gsheet.Service
	spreadsheetID   string
	complaintsSheet string
	categoriesSheet string
	categoriesHdr   bool
}

var _ store.Gateway = (*Client)(nil)

// New creates a Sheets client authenticated with a service account.
// GOOGLE_APPLICATION_CREDENTIALS is honoured when the config carries no credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	creds, err := credentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(creds),
		"scope", gsheet.SpreadsheetsScope)

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope),
		goption.WithHTTPClient(newHTTPClientWithPooling()))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewWithService(svc, cfg), nil
}

// NewWithService wraps an already configured Sheets service.
func NewWithService(svc *gsheet.Service, cfg Config) *Client {
	complaints := strings.TrimSpace(cfg.ComplaintsSheet)
	if complaints == "" {
		complaints = "Complaints"
	}
	categories := strings.TrimSpace(cfg.CategoriesSheet)
	if categories == "" {
		categories = "Categories"
	}
	return &Client{
		svc:             svc,
		spreadsheetID:   cfg.SpreadsheetID,
		complaintsSheet: complaints,
		categoriesSheet: categories,
		categoriesHdr:   cfg.CategoriesHeader,
	}
}

func credentials(ctx context.Context, cfg Config) ([]byte, error) {
	inline := strings.TrimSpace(cfg.ServiceAccountJSON)
	file := strings.TrimSpace(cfg.ServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		slog.InfoContext(ctx, "Checking GOOGLE_APPLICATION_CREDENTIALS", "path", file)
	}

	switch {
	case inline != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		return []byte(inline), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		slog.InfoContext(ctx, "Read credentials file", "path", file, "size", len(data))
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// newHTTPClientWithPooling creates an HTTP client tuned for the Sheets API.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

// ListSubmissions implements store.SubmissionLister.
func (c *Client) ListSubmissions(ctx context.Context) ([]core.Submission, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:Z", c.complaintsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	subs, err := parseSubmissions(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rng, err)
	}
	return subs, nil
}

// ListCategories implements store.CategoryLister.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:A", c.categoriesSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return parseCategories(resp.Values, c.categoriesHdr), nil
}

// AppendCategory implements store.CategoryAppender.
func (c *Client) AppendCategory(ctx context.Context, name string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:A", c.categoriesSheet)
	vr := &gsheet.ValueRange{Values: [][]any{{name}}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rng, err)
	}
	slog.InfoContext(ctx, "Category appended to sheet", "sheet", c.categoriesSheet, "category", name)
	return nil
}
