package scan

import (
	"fmt"

	"github.com/eoltools/eolscan/catalog"
)

// Resolve derives the support verdict for a matched product from its
// lifecycle cycles. An empty version means the caller wants the verdict
// for the newest cycle. Pure lookup: callers degrade failed cycle fetches
// to an empty slice, which lands in the unknown branch here.
func Resolve(product, version string, cycles []catalog.Cycle) Result {
	if len(cycles) == 0 {
		return Result{
			Product:       product,
			Version:       version,
			Status:        StatusUnknown,
			SupportStatus: SupportUnknown,
			Message:       "Product not found in EOL database",
		}
	}

	if version == "" {
		// The database serves cycles newest first.
		return cycleResult(product, "latest", cycles[0],
			fmt.Sprintf("Found %d versions", len(cycles)))
	}

	for _, cycle := range cycles {
		// Exact label equality, no normalization. First match wins.
		if string(cycle.Cycle) != version {
			continue
		}
		return cycleResult(product, version, cycle, "")
	}

	return Result{
		Product:       product,
		Version:       version,
		Status:        StatusVersionNotFound,
		SupportStatus: SupportUnknown,
		Message:       fmt.Sprintf("Version %s not found for %s", version, product),
	}
}

func cycleResult(product, version string, cycle catalog.Cycle, message string) Result {
	result := Result{
		Product:       product,
		Version:       version,
		Status:        StatusFound,
		SupportStatus: SupportActive,
		EOLDate:       cycle.EOL.Date,
		Message:       message,
	}
	if cycle.EOL.EOLed {
		result.SupportStatus = SupportEOL
	}

	if result.Message == "" {
		switch {
		case cycle.EOL.Date != "":
			result.Message = fmt.Sprintf("EOL date: %s", cycle.EOL.Date)
		case cycle.EOL.EOLed:
			result.Message = "No longer supported"
		default:
			result.Message = "Still supported"
		}
	}
	return result
}
