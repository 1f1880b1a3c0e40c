package reports

import (
	reportcore "codeberg.org/docqa/server/internal/reports"
)

// resolves stored reports by id
type Store interface {
	Get(id string) (*reportcore.Report, error)
}
