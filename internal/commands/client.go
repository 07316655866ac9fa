package commands

import (
	"fmt"

	"github.com/colonyops/fitsel/internal/core/archive"
	"github.com/colonyops/fitsel/internal/core/config"
)

func newArchiveClient(cfg *config.Config) (*archive.Client, error) {
	client, err := archive.New(archive.Options{
		BaseURL:           cfg.Server.BaseURL,
		Timeout:           cfg.Server.Timeout,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		UserAgent:         cfg.Server.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("create archive client: %w", err)
	}
	return client, nil
}
