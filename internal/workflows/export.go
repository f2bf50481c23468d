package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/pmanager/pm/internal/audit"
	kerrors "github.com/pmanager/pm/internal/errors"
)

// ExportOptions configures an export.
type ExportOptions struct {
	// Path is the output file, or empty for standard output.
	Path string

	// Format of the output. Unset picks YAML for .yaml/.yml paths and
	// JSON otherwise.
	Format Format
}

// Export writes the decrypted store, pretty-printed, to Path or stdout.
// Files are created with 0600 permissions since they hold plaintext.
func (e *Engine) Export(ctx context.Context, opts ExportOptions) (*Result, error) {
	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	format := formatFor(opts.Format, opts.Path)
	data, err := encodeStore(s, format)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	entry := audit.NewEntry("export")
	entry.Format = string(format)

	if opts.Path == "" {
		out := e.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(data); err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrIO, err)
		}
	} else {
		if err := os.WriteFile(opts.Path, data, 0600); err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrIO, err)
		}
		entry.OutputPath = opts.Path
	}

	digest := Digest(s)
	if e.Trail != nil {
		entry.Hashcode = digest
		e.Trail.Log(entry)
	}

	msg := "Exported to stdout"
	if opts.Path != "" {
		msg = fmt.Sprintf("Exported to %s", opts.Path)
	}
	return &Result{Message: msg, Hashcode: digest}, nil
}
