package catalog

import (
	"net/http"

	"github.com/warelinehq/wareline-backend/api/responses"
	internalcatalog "github.com/warelinehq/wareline-backend/internal/catalog"
	pkgerrors "github.com/warelinehq/wareline-backend/pkg/errors"
	"github.com/warelinehq/wareline-backend/pkg/logger"
)

// ListWarehouses returns every warehouse ordered by name.
func ListWarehouses(svc internalcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		warehouses, err := svc.ListWarehouses(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, warehouses)
	}
}

// ListCompanies returns every company ordered by name.
func ListCompanies(svc internalcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		companies, err := svc.ListCompanies(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, companies)
	}
}
