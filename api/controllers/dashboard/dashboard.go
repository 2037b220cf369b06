package dashboard

import (
	"net/http"

	"github.com/warelinehq/wareline-backend/api/responses"
	"github.com/warelinehq/wareline-backend/api/validators"
	internaldashboard "github.com/warelinehq/wareline-backend/internal/dashboard"
	pkgerrors "github.com/warelinehq/wareline-backend/pkg/errors"
	"github.com/warelinehq/wareline-backend/pkg/logger"
)

const defaultRecentLimit = 10

// StatusCounts returns one bucket per pipeline stage, zero-filled, in
// pipeline order.
func StatusCounts(svc internaldashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		counts, err := svc.StatusCounts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, counts)
	}
}

// RecentOrders returns the most recently created orders with their line counts.
func RecentOrders(svc internaldashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", defaultRecentLimit, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.RecentOrders(r.Context(), filter, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

func parseFilter(r *http.Request) (internaldashboard.Filter, error) {
	warehouseID, err := validators.ParseQueryUUID(r, "warehouse_id")
	if err != nil {
		return internaldashboard.Filter{}, err
	}
	companyID, err := validators.ParseQueryUUID(r, "company_id")
	if err != nil {
		return internaldashboard.Filter{}, err
	}
	return internaldashboard.Filter{WarehouseID: warehouseID, CompanyID: companyID}, nil
}
