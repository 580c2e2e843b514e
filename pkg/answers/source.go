package answers

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/pkg/errors"
)

// maxDocumentBytes bounds how much of an answer document is read.
const maxDocumentBytes = 1 << 20

// Load reads and parses an answer document from a file.
func Load(path string) (set scoring.AnswerSet, err error) {
	var data []byte
	data, err = readFile(path)
	if err != nil {
		return set, err
	}

	set, err = Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse answers: %s", path)
		return set, err
	}

	return set, err
}

// Fetch retrieves an answer document from a file path, an http(s) URL, or
// standard input when input is "-".
func Fetch(ctx context.Context, input string) (set scoring.AnswerSet, err error) {
	var data []byte

	parsedURL, urlErr := url.Parse(input)
	switch {
	case input == "-":
		data, err = readAll(os.Stdin)
		if err != nil {
			err = errors.Wrap(err, "failed to read answers from stdin")
			return set, err
		}
	case urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https"):
		data, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch answers from URL: %s", input)
			return set, err
		}
	default:
		data, err = readFile(input)
		if err != nil {
			return set, err
		}
	}

	set, err = Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse answers: %s", input)
		return set, err
	}

	return set, err
}

func readFile(path string) (data []byte, err error) {
	var f *os.File
	f, err = os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read answers file: %s", path)
		return data, err
	}
	defer f.Close()

	data, err = readAll(f)
	if err != nil {
		err = errors.Wrapf(err, "failed to read answers file: %s", path)
		return data, err
	}

	if len(data) == 0 {
		err = errors.Errorf("answers file is empty: %s", path)
		return data, err
	}

	return data, err
}

// readAll reads at most maxDocumentBytes and fails on anything longer.
func readAll(r io.Reader) (data []byte, err error) {
	data, err = io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return data, err
	}

	if len(data) > maxDocumentBytes {
		data = nil
		err = errors.Errorf("answers document too large (limit %d bytes)", maxDocumentBytes)
		return data, err
	}

	return data, err
}

func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", "candidate-scorer/1.0")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = readAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("fetched answers are empty")
		return data, err
	}

	return data, err
}
