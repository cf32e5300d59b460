package analytics

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/server/middleware"
	"orderdesk/internal/server/response"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) Dashboard(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	stats, err := c.service.GetDashboardStats(r.Context(), middleware.GetOwnerID(r.Context()))
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, toDashboardResponse(*stats))
}

func (c *Controller) Weekly(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	year, week, err := intParams(r, "year", "week")
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	weekly, err := c.service.GetWeeklyOrders(r.Context(), middleware.GetOwnerID(r.Context()), year, week)
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, WeeklyResponse{
		OrdersByDay: toBuckets(weekly.OrdersByDay),
		WeekStart:   weekly.WeekStart,
		WeekEnd:     weekly.WeekEnd,
	})
}

func (c *Controller) Monthly(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	year, month, err := intParams(r, "year", "month")
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	monthly, err := c.service.GetMonthlyOrders(r.Context(), middleware.GetOwnerID(r.Context()), year, month)
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, MonthlyResponse{
		Year:        monthly.Year,
		Month:       monthly.Month,
		OrdersByDay: toBuckets(monthly.OrdersByDay),
	})
}

func intParams(r *http.Request, names ...string) (int, int, error) {
	values := make([]int, len(names))
	var details []apperrors.ValidationDetail
	for i, name := range names {
		raw := r.URL.Query().Get(name)
		v, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, apperrors.ValidationDetail{Field: name, Message: name + " must be an integer"})
			continue
		}
		values[i] = v
	}
	if len(details) > 0 {
		return 0, 0, apperrors.NewValidationError("invalid query parameters", details...)
	}
	return values[0], values[1], nil
}
