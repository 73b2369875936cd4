package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mashtal/internal/services"
)

// ReportHandler serves the derived read models: dashboard, alerts and the
// per-entity financial reports
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard handles the dashboard report
// @Summary     Get dashboard
// @Description Get the active-cycle totals, the seven-day series, the expense breakdown and the highlight KPIs
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} engine.Dashboard "Dashboard figures"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.reportService.Dashboard(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}

// GetAlerts handles the alert evaluation
// @Summary     Get alerts
// @Description Evaluate the high-cost, stagnant-cycle and negative-balance alerts for the active cycles
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} engine.Alert "Active alerts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/alerts [get]
func (h *ReportHandler) GetAlerts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alerts, err := h.reportService.Alerts(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// GetCycleOverview handles the combined cycle report
// @Summary     Get cycle overview
// @Description Get a cycle's financial summary, production metrics and treasury fund in one response
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Success     200 {object} services.CycleOverview "Cycle overview"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id}/overview [get]
func (h *ReportHandler) GetCycleOverview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.reportService.CycleOverview(userID, c.Param("id"), time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"overview": overview})
}

// GetGreenhouseReport handles the greenhouse lifetime report
// @Summary     Get greenhouse report
// @Description Get a greenhouse's lifetime profit, capital recovery and return on investment
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Greenhouse ID"
// @Success     200 {object} engine.GreenhouseReport "Greenhouse report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Greenhouse not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /greenhouses/{id}/report [get]
func (h *ReportHandler) GetGreenhouseReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.GreenhouseReport(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetFarmerAccounts handles the farmer account statement
// @Summary     Get farmer accounts
// @Description Get every farmer's accrued share, withdrawals and balance; requires the farmer system
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} engine.FarmerAccount "Farmer accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Farmer system disabled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/farmers [get]
func (h *ReportHandler) GetFarmerAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accounts, err := h.reportService.FarmerAccounts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// GetSupplierStatement handles the supplier statement
// @Summary     Get supplier statement
// @Description Get a supplier's invoice total, payment total, outstanding balance and per-invoice settlement
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Supplier ID"
// @Success     200 {object} engine.SupplierStatement "Supplier statement"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Supplier not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suppliers/{id}/statement [get]
func (h *ReportHandler) GetSupplierStatement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statement, err := h.reportService.SupplierStatement(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statement": statement})
}

// GetProgramSummary handles the fertilization-program summary
// @Summary     Get program summary
// @Description Get a program's attributed revenue, expenses, farmer share and net profit
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Program ID"
// @Success     200 {object} engine.ProgramSummary "Program summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Program not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /programs/{id}/summary [get]
func (h *ReportHandler) GetProgramSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.ProgramSummary(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetTreasuryOverview handles the treasury overview
// @Summary     Get treasury overview
// @Description Get the per-cycle funds, the aggregate balance, the advance total and the supplier grouping
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} engine.TreasuryOverview "Treasury overview"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/treasury [get]
func (h *ReportHandler) GetTreasuryOverview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.reportService.TreasuryOverview(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"treasury": overview})
}

// GetCycleTreasury handles one cycle's treasury fund
// @Summary     Get cycle treasury
// @Description Get one cycle's treasury fund with its included and excluded expense split
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cycle ID"
// @Success     200 {object} engine.TreasuryDetail "Cycle treasury fund"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/{id}/treasury [get]
func (h *ReportHandler) GetCycleTreasury(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	detail, err := h.reportService.TreasuryDetail(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"treasury": detail})
}
