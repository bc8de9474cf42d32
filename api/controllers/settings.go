package controllers

import (
	"context"
	"net/http"

	"github.com/hiddenspringfield/shop-backend/api/responses"
	"github.com/hiddenspringfield/shop-backend/api/validators"
	"github.com/hiddenspringfield/shop-backend/internal/settings"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

// SettingsStore is the process-wide theme state served to the storefront.
type SettingsStore interface {
	Current() settings.ThemeSettings
	Update(ctx context.Context, patch settings.Patch) (settings.ThemeSettings, <-chan error)
}

func SettingsGet(store SettingsStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Current())
	}
}

// AdminSettingsUpdate merges the patch into the store and waits for the durable
// write. A failed write is reported but the merged state stays in place.
func AdminSettingsUpdate(store SettingsStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings store unavailable"))
			return
		}

		var patch settings.Patch
		if err := validators.DecodeJSONPatch(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := patch.Validate(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		_, saved := store.Update(r.Context(), patch)
		select {
		case err, ok := <-saved:
			if ok && err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		case <-r.Context().Done():
			return
		}

		responses.WriteSuccess(w, store.Current())
	}
}
