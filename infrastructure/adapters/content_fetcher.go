package adapters

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
)

const maxErrorBodyBytes = 4096

type ContentFetcher interface {
	FetchContent(req *http.Request) ([]byte, error)
	// FetchToFile streams the response body to destPath.
	FetchToFile(req *http.Request, destPath string) error
}

type contentFetcher struct {
	logger outbound.LoggerPort
	client *http.Client
}

func NewContentFetcher(logger outbound.LoggerPort, client *http.Client) ContentFetcher {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	return &contentFetcher{
		logger: logger,
		client: client,
	}
}

func (c *contentFetcher) FetchContent(req *http.Request) ([]byte, error) {
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(req, res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	return payload, nil
}

func (c *contentFetcher) FetchToFile(req *http.Request, destPath string) error {
	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer c.closeBody(req, res.Body)

	file, err := os.Create(destPath)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to create the destination file", map[string]interface{}{
			"path": destPath,
		})
		return err
	}

	if _, err = io.Copy(file, res.Body); err != nil {
		_ = file.Close()
		c.logger.ErrorWithFields(err, "Failed to write the response body to file", map[string]interface{}{
			"URL":  req.URL.String(),
			"path": destPath,
		})
		return err
	}

	return file.Close()
}

func (c *contentFetcher) do(req *http.Request) (*http.Response, error) {
	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		defer c.closeBody(req, res.Body)
		bodyPayload, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
		message := string(bodyPayload)
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"method":  req.Method,
			"URL":     req.URL.String(),
			"status":  res.StatusCode,
			"message": message,
		})
		return nil, &HTTPStatusError{StatusCode: res.StatusCode, Body: message}
	}

	return res, nil
}

func (c *contentFetcher) closeBody(req *http.Request, body io.ReadCloser) {
	if err := body.Close(); err != nil {
		c.logger.ErrorWithFields(err, "Failed to close the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
	}
}

type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP request returned non-OK status code: %d: %s", e.StatusCode, e.Body)
}
