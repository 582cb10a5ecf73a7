package actions

import (
	"fmt"
	"io"

	"github.com/ethpandaops/loadtest-collect/internal/config"
)

// ShowConfig displays the current configuration
func ShowConfig(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, err = fmt.Fprintln(w, cfg.String())
	return err
}
