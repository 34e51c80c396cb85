package ontology

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/mztabm/internal/logging"
	"github.com/vvka-141/mztabm/internal/retry"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// DefaultOLSURL is the public EBI Ontology Lookup Service.
const DefaultOLSURL = "https://www.ebi.ac.uk/ols4"

const defaultOLSPageSize = 100

// OLSClient looks terms up in an OLS-compatible REST service.
type OLSClient struct {
	baseURL  string
	http     *http.Client
	exec     *retry.Executor
	pageSize int
	logger   mztab.Logger
}

type OLSOption func(*OLSClient)

func WithHTTPClient(c *http.Client) OLSOption {
	return func(o *OLSClient) { o.http = c }
}

func WithRetry(exec *retry.Executor) OLSOption {
	return func(o *OLSClient) { o.exec = exec }
}

func WithPageSize(n int) OLSOption {
	return func(o *OLSClient) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

func WithLogger(l mztab.Logger) OLSOption {
	return func(o *OLSClient) { o.logger = l }
}

// NewOLSClient returns a client rooted at baseURL (DefaultOLSURL when empty).
// Requests are retried three times on transient failures by default.
func NewOLSClient(baseURL string, opts ...OLSOption) *OLSClient {
	if baseURL == "" {
		baseURL = DefaultOLSURL
	}
	c := &OLSClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		pageSize: defaultOLSPageSize,
		logger:   logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.exec == nil {
		c.exec = retry.NewExecutor(retry.NewHTTPClassifier(), retry.NewExponentialBackoff(3))
	}
	c.exec = c.exec.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		c.logger.Verbose("OLS request failed (%v), retry %d in %s", err, attempt+1, delay)
	})
	return c
}

type olsTerm struct {
	OboID  string `json:"obo_id"`
	Label  string `json:"label"`
	Prefix string `json:"ontology_prefix"`
}

type olsPage struct {
	Embedded struct {
		Terms []olsTerm `json:"terms"`
	} `json:"_embedded"`
	Page struct {
		Number     int `json:"number"`
		TotalPages int `json:"totalPages"`
	} `json:"page"`
}

func (c *OLSClient) ResolveChildren(ctx context.Context, term mztab.Term) ([]mztab.Term, error) {
	return c.list(ctx, "children", term)
}

// ResolveParents walks the parents endpoint level by level; an unbounded
// walk uses the ancestors endpoint in a single listing.
func (c *OLSClient) ResolveParents(ctx context.Context, term mztab.Term, maxDepth int) ([]mztab.Term, error) {
	if maxDepth < 0 {
		return c.list(ctx, "ancestors", term)
	}
	return walkParents(ctx, term, maxDepth, func(ctx context.Context, t mztab.Term) ([]mztab.Term, error) {
		return c.list(ctx, "parents", t)
	})
}

func (c *OLSClient) Compare(ctx context.Context, reference, candidate mztab.Term, maxDepth int) (mztab.Relation, error) {
	return Relate(ctx, c, reference, candidate, maxDepth)
}

// list fetches every page of a term relation listing.
func (c *OLSClient) list(ctx context.Context, relation string, term mztab.Term) ([]mztab.Term, error) {
	var out []mztab.Term
	for page := 0; ; page++ {
		var body olsPage
		err := c.exec.Execute(ctx, func(ctx context.Context) error {
			return c.get(ctx, c.endpoint(relation, term, page), &body)
		})
		if err != nil {
			return nil, fmt.Errorf("%s of %s: %w", relation, term.Accession, err)
		}
		for _, t := range body.Embedded.Terms {
			if t.OboID == "" {
				continue
			}
			label := t.Prefix
			if label == "" {
				label = mztab.NewTerm(t.OboID).Label
			}
			out = append(out, mztab.Term{Label: label, Accession: t.OboID, Name: t.Label})
		}
		if page+1 >= body.Page.TotalPages {
			return out, nil
		}
	}
}

func (c *OLSClient) endpoint(relation string, term mztab.Term, page int) string {
	q := url.Values{}
	q.Set("id", term.Accession)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(c.pageSize))
	ontology := url.PathEscape(strings.ToLower(term.Label))
	return c.baseURL + "/api/ontologies/" + ontology + "/" + relation + "?" + q.Encode()
}

func (c *OLSClient) get(ctx context.Context, endpoint string, into *olsPage) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Verbose("GET %s", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return mztab.ErrTermNotFound
	case resp.StatusCode != http.StatusOK:
		return &retry.StatusError{Code: resp.StatusCode, URL: endpoint}
	}
	*into = olsPage{}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
