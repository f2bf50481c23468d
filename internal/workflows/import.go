package workflows

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/pmanager/pm/internal/audit"
	kerrors "github.com/pmanager/pm/internal/errors"
	"github.com/pmanager/pm/internal/utils"
)

// ImportOptions configures an import.
type ImportOptions struct {
	// Source is a file path, an http(s) URL, or empty for standard input.
	Source string

	// Format of the payload. Unset picks YAML for .yaml/.yml sources and
	// JSON otherwise.
	Format Format
}

// Import replaces the whole store with the payload read from Source.
//
// The current store is loaded first so that the passphrase is checked
// before anything is replaced. The payload must satisfy every structural
// rule of the store; any violation fails with ErrNonCompliantData and
// leaves the store untouched.
func (e *Engine) Import(ctx context.Context, opts ImportOptions) (*Result, error) {
	if _, err := e.Repo.Load(ctx); err != nil {
		return nil, err
	}

	data, origin, err := e.readSource(ctx, opts.Source)
	if err != nil {
		return nil, err
	}

	format := formatFor(opts.Format, opts.Source)
	s, err := decodeStore(data, format)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry("import")
	entry.Source = origin
	entry.Format = string(format)
	digest, err := e.commit(ctx, s, entry)
	if err != nil {
		return nil, err
	}

	e.Log.Infof("Imported %d scope(s) from %s", s.Len(), origin)
	return &Result{
		Message:  fmt.Sprintf("Imported %d scope(s) from %s", s.Len(), origin),
		Hashcode: digest,
	}, nil
}

// IsRemote reports whether source is fetched over HTTP.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (e *Engine) readSource(ctx context.Context, source string) ([]byte, string, error) {
	switch {
	case source == "":
		in := e.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := utils.ReadStdin(in)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", kerrors.ErrIO, err)
		}
		return data, "stdin", nil

	case IsRemote(source):
		data, err := e.fetch(ctx, source)
		if err != nil {
			return nil, "", err
		}
		return data, source, nil

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", kerrors.ErrIO, err)
		}
		return data, source, nil
	}
}

func (e *Engine) fetch(ctx context.Context, url string) ([]byte, error) {
	if e.ImportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.ImportTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrIO, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	client := e.HTTPClient
	if client == nil {
		client = cleanhttp.DefaultClient()
	}

	e.Log.Debugf("Fetching %s", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrIO, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", kerrors.ErrIO, url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrIO, url, err)
	}
	return data, nil
}
