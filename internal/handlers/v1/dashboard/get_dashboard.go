package dashboard

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/aggregate"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// GetDashboardInput is the Huma input for the dashboard.
type GetDashboardInput struct {
	User     string `query:"user" doc:"Only aggregate transactions recorded by this cashier"`
	Date     string `query:"date" doc:"Reference date, YYYY-MM-DD. Defaults to today"`
	Window   int    `query:"window" minimum:"1" maximum:"366" default:"7" doc:"Days in the daily window ending at the reference date"`
	Products int    `query:"products" minimum:"1" maximum:"100" default:"10" doc:"Maximum number of product groups"`
	Locale   string `query:"locale" default:"en" doc:"Label language, en or id"`
}

// GetDashboardOutput is the Huma output for the dashboard.
type GetDashboardOutput struct {
	Body Dashboard
}

type dashboardBuilder interface {
	Dashboard(ctx context.Context, query aggregate.DashboardQuery, locale aggregate.Locale) (aggregate.Dashboard, error)
}

// GetDashboardHandler handles GET /v1/dashboard.
type GetDashboardHandler struct {
	PettyCashService dashboardBuilder
}

func NewGetDashboardHandler(svc dashboardBuilder) *GetDashboardHandler {
	return &GetDashboardHandler{PettyCashService: svc}
}

// Register registers the dashboard endpoint with the Huma API.
func (h *GetDashboardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard",
		Summary:     "Spending dashboard",
		Description: "Aggregates petty-cash transactions by day, week, month, category and product.",
		Tags:        []string{"Dashboard"},
	}, h.handle)
}

func parseGetDashboardInput(input *GetDashboardInput) (aggregate.DashboardQuery, aggregate.Locale, error) {
	query := aggregate.DashboardQuery{
		CreatedBy:    strings.TrimSpace(input.User),
		WindowDays:   input.Window,
		ProductLimit: input.Products,
	}
	if strings.TrimSpace(input.Date) != "" {
		date, err := ledger.ParseDate("date", input.Date)
		if err != nil {
			return query, aggregate.Locale{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
		query.ReferenceDate = date
	}
	return query, aggregate.LocaleFor(input.Locale), nil
}

func (h *GetDashboardHandler) handle(ctx context.Context, input *GetDashboardInput) (*GetDashboardOutput, error) {
	query, locale, err := parseGetDashboardInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		logData.AddData("locale", locale.Name)
		stopTimer = logData.AddTiming("dashboardMs")
	}
	dashboard, err := h.PettyCashService.Dashboard(ctx, query, locale)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build dashboard", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", dashboard.Summary.TotalTransactions)
	}
	return &GetDashboardOutput{Body: toResponse(dashboard)}, nil
}
