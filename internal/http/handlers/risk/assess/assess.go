package assess

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// Request содержит пять обязательных факторов риска и необязательную
// привязку к делу. Значения факторов проверяются по закрытым перечням.
type Request struct {
	CaseID            *int   `json:"case_id,omitempty"`
	CaseComplexity    string `json:"case_complexity" validate:"required,oneof=low medium high"`
	EvidenceStrength  string `json:"evidence_strength" validate:"required,oneof=strong moderate weak"`
	OpponentResources string `json:"opponent_resources" validate:"required,oneof=limited moderate extensive"`
	TimeConstraints   string `json:"time_constraints" validate:"required,oneof=adequate tight urgent"`
	FinancialImpact   string `json:"financial_impact" validate:"required,oneof=low medium high"`
}

type Assessor interface {
	Assess(factors map[string]string) (*models.RiskAssessment, error)
}

type CaseReader interface {
	ReadCase(ctx context.Context, id int, userUID string) (*models.Case, error)
}

type Recorder interface {
	CreateRiskAssessment(ctx context.Context, a models.StoredRiskAssessment) (int, error)
}

// New возвращает обработчик оценки рисков. При указании case_id итог
// дополнительно сохраняется в истории оценок дела.
func New(log *slog.Logger, engine Assessor, cases CaseReader, recorder Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.risk.assess.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		principal, ok := middlewarectx.PrincipalFromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Err(response.CodeTokenRequired, "authorization token required"))
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Err(response.CodeValidationError, "failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		factors := map[string]string{
			models.FactorCaseComplexity:    req.CaseComplexity,
			models.FactorEvidenceStrength:  req.EvidenceStrength,
			models.FactorOpponentResources: req.OpponentResources,
			models.FactorTimeConstraints:   req.TimeConstraints,
			models.FactorFinancialImpact:   req.FinancialImpact,
		}

		result, err := engine.Assess(factors)
		if err != nil {
			log.Error("failed to assess risk", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Err(response.CodeValidationError, err.Error()))
			return
		}

		if req.CaseID != nil {
			if _, err := cases.ReadCase(r.Context(), *req.CaseID, principal.UID); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					render.Status(r, http.StatusNotFound)
					render.JSON(w, r, response.Err(response.CodeNotFound, "case not found"))
					return
				}
				log.Error("failed to read case", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Err(response.CodeInternalError, "failed to read case"))
				return
			}
			stored := models.StoredRiskAssessment{
				CaseID:    *req.CaseID,
				UserUID:   principal.UID,
				RiskScore: result.RiskScore,
				RiskLevel: result.RiskLevel,
			}
			if _, err := recorder.CreateRiskAssessment(r.Context(), stored); err != nil {
				// Оценка уже рассчитана, поэтому клиенту она возвращается,
				// а сбой записи истории только логируется.
				log.Error("failed to record risk assessment", sl.Err(err))
			}
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
