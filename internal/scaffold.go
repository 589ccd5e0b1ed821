package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/mailmerge/pkg/config"
)

const scaffoldConfig = `# Recipients without a column get these values.
defaults:
  company: Example Inc.
  name:
    template: "{{ .first | title }}"

# Leave both providers empty for a dry run into .output/.
# smtp:
#   host: smtp.example.com
#   user: me@example.com
# resend:
#   api_key: re_...

delay: 1s
`

const scaffoldTemplate = `---
signature: The team
---

# Hello {{ name }}

Thanks for being with {{ company }}.

Regards,
{{ signature }}
`

const scaffoldData = `address,first
alice@example.com,alice
bob@example.com,bob
`

// Init creates a starter project in root: a config file, a template and a
// data file. root is created when missing and must otherwise be empty.
func Init(root string) error {
	if root == "" {
		root = "."
	}

	entries, err := os.ReadDir(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(root, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", root, err)
		}
	case err != nil:
		return fmt.Errorf("read %s: %w", root, err)
	case len(entries) > 0:
		return fmt.Errorf("%w: %s", ErrWorkspaceNotEmpty, root)
	}

	files := []struct{ name, content string }{
		{config.FileName, scaffoldConfig},
		{config.DefaultTemplate, scaffoldTemplate},
		{config.DefaultData, scaffoldData},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f.name), []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}
