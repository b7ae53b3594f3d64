// Package fetch retrieves the OData metadata document, downloading it from
// the service only when no cached copy exists.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/syssam/odatagen"
	"github.com/syssam/odatagen/schema/edmx"
)

// MetadataPath is appended to the service root to address the metadata document.
const MetadataPath = "$metadata/"

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("odatagen: fetch %s: unexpected status %s", e.URL, e.Status)
}

// Source loads the metadata document of one OData service.
type Source struct {
	// BaseURL is the service root, e.g. "https://nav.example.com:7048/ODataV4/".
	BaseURL string
	// Username and Password are sent as basic auth credentials.
	Username string
	Password string
	// Cache holds the downloaded document. Required.
	Cache odatagen.Cache
	// Client performs the request. Defaults to http.DefaultClient.
	Client *http.Client
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// URL returns the address of the metadata document.
func (s *Source) URL() string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + MetadataPath
}

// Load returns the cached document if there is one. Otherwise it downloads
// the document with a single GET, stores it in the cache and returns it.
// A downloaded body that is not well-formed XML is not cached.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if s.Cache == nil {
		return nil, fmt.Errorf("%w: metadata cache", odatagen.ErrMissingConfig)
	}
	log := s.logger()
	data, err := s.Cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read cached metadata: %w", err)
	}
	if data != nil {
		log.Debug("using cached metadata")
		return data, nil
	}
	if s.BaseURL == "" {
		return nil, fmt.Errorf("%w: no cached metadata and no service URL", odatagen.ErrMissingConfig)
	}
	data, err = s.download(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := edmx.ParseBytes(data); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL(), err)
	}
	if err := s.Cache.Set(ctx, data); err != nil {
		return nil, fmt.Errorf("cache metadata: %w", err)
	}
	log.WithField("bytes", len(data)).Info("metadata downloaded")
	return data, nil
}

func (s *Source) download(ctx context.Context) ([]byte, error) {
	url := s.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(s.Username, s.Password)
	req.Header.Set("Accept", "application/xml")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	s.logger().WithField("url", url).Debug("downloading metadata")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}

func (s *Source) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
