package exam

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/platform/auth"
	"github.com/Kaseketi/kaseketi-vet-clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleVeterinarian, auth.RoleTechnician, auth.RoleReceptionist))
	read.GET("/catalog/systems", h.ListCatalogSystems)
	read.GET("/exams", h.ListExams)
	read.GET("/exams/:id", h.GetExam)
	read.GET("/exams/:id/report", h.GetReport)

	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleVeterinarian, auth.RoleTechnician))
	write.POST("/exams", h.CreateExam)
	write.PUT("/exams/:id", h.UpdateExam)
	write.DELETE("/exams/:id", h.DeleteExam)
	write.POST("/exams/preview", h.PreviewReport)

	// Signing is restricted: it is irreversible and fixes the examiner.
	sign := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleVeterinarian))
	sign.POST("/exams/:id/sign", h.SignExam)
}

func (h *Handler) ListCatalogSystems(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Catalog().Systems())
}

func (h *Handler) CreateExam(c echo.Context) error {
	var req CreateExamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.CreateExam(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, ErrPatientInactive) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) GetExam(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.GetExam(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "exam not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) ListExams(c echo.Context) error {
	pg := pagination.FromContext(c)

	if patientID := c.QueryParam("patient_id"); patientID != "" {
		pid, err := uuid.Parse(patientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		exams, total, err := h.svc.ListExamsByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(exams, total, pg.Limit, pg.Offset))
	}

	exams, total, err := h.svc.ListExams(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(exams, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateExam(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var e Exam
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e.ID = id
	updated, err := h.svc.UpdateExam(c.Request().Context(), &e)
	if err != nil {
		switch {
		case errors.Is(err, ErrExamNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "exam not found")
		case errors.Is(err, ErrExamSigned):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteExam(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteExam(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrExamNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "exam not found")
		case errors.Is(err, ErrExamSigned):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SignExam(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx := c.Request().Context()
	signerID, err := uuid.Parse(auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "signer identity unavailable")
	}

	// The body is optional, but a present-and-malformed one is rejected.
	var body struct {
		SignerName string `json:"signer_name"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e, err := h.svc.SignExam(ctx, id, signerID, body.SignerName)
	if err != nil {
		switch {
		case errors.Is(err, ErrExamNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "exam not found")
		case errors.Is(err, ErrExamSigned):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	report, err := h.svc.Report(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "exam not found")
	}
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (h *Handler) PreviewReport(c echo.Context) error {
	var state State
	if err := c.Bind(&state); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	report, err := h.svc.Preview(&state)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}
