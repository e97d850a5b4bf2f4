package orders

import (
	"net/http"

	"github.com/buildmat/buildmat-backend/api/middleware"
	"github.com/buildmat/buildmat-backend/api/responses"
	"github.com/buildmat/buildmat-backend/api/validators"
	"github.com/buildmat/buildmat-backend/internal/checkout"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
	"github.com/buildmat/buildmat-backend/pkg/logger"
)

// SubmitRequest carries the order-level fields collected on the final step.
type SubmitRequest struct {
	ProjectID       string `json:"project_id" validate:"required"`
	DeliveryAddress string `json:"delivery_address" validate:"required"`
	ContactPhone    string `json:"contact_phone,omitempty" validate:"max=32"`
	Note            string `json:"note,omitempty" validate:"max=1000"`
}

// Submit validates the cart and sends it to the order-creation API. A cart
// that fails the scheduling gate comes back as a state conflict carrying the
// per-item issues.
func Submit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload SubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form := checkout.OrderForm{
			ProjectID:       payload.ProjectID,
			DeliveryAddress: payload.DeliveryAddress,
			ContactPhone:    payload.ContactPhone,
			Note:            payload.Note,
		}

		result, err := svc.Submit(r.Context(), middleware.SessionKeyFromContext(r.Context()), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
