package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	saleshttpmapper "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/http/mapper"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/receipt"
	salesdomain "github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

// ReportsAPI serves sales reports built from the ledger.
type ReportsAPI struct {
	service  salesports.Service
	renderer *receipt.Renderer
	opts     Options
}

// NewReportsAPI creates a ReportsAPI backed by the provided service.
func NewReportsAPI(service salesports.Service, renderer *receipt.Renderer, opts Options) ReportsAPI {
	opts = opts.withDefaults()
	if renderer == nil {
		renderer = receipt.NewRenderer("", opts.Formatter)
	}
	return ReportsAPI{service: service, renderer: renderer, opts: opts}
}

// Get /v1/reports/profit
// Profit per part over [from, to); defaults to the current month
func (api *ReportsAPI) ProfitReport(c *gin.Context) {
	report, ok := api.buildReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromProfitReport(report, api.opts.Formatter))
}

// Get /v1/reports/profit.csv
// Downloads the profit report as CSV
func (api *ReportsAPI) ProfitReportCSV(c *gin.Context) {
	report, ok := api.buildReport(c)
	if !ok {
		return
	}
	data, err := api.renderer.ReportCSV(report)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	attachment(c, receipt.ReportFileName, contentTypeCSV, data)
}

func (api *ReportsAPI) buildReport(c *gin.Context) (*salesdomain.ProfitReport, bool) {
	period, err := api.period(c)
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return nil, false
	}
	report, err := api.service.ProfitReport(c.Request.Context(), period)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return nil, false
	}
	return report, true
}

// period reads from and to. A missing from means the current month; a
// missing to means one month after from.
func (api *ReportsAPI) period(c *gin.Context) (salesdomain.ReportPeriod, error) {
	from, err := bindOptionalDate(c, "from")
	if err != nil {
		return salesdomain.ReportPeriod{}, err
	}
	to, err := bindOptionalDate(c, "to")
	if err != nil {
		return salesdomain.ReportPeriod{}, err
	}
	period := salesdomain.MonthOf(api.opts.Now().UTC())
	if from != nil {
		period = salesdomain.ReportPeriod{From: *from, To: from.AddDate(0, 1, 0)}
	}
	if to != nil {
		period.To = *to
	}
	return period, nil
}
