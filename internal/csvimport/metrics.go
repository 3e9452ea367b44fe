package csvimport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
)

// rowsTotal counts processed roster rows by validation result.
var rowsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "roster_import_rows_total",
		Help: "Number of roster CSV rows processed, differentiated by validation result.",
	},
	[]string{"result"},
)
