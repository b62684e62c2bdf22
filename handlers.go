package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ViewSnapshot is the full response to every view endpoint: the current
// parameters plus whatever the orchestrator has loaded, rendered.
type ViewSnapshot struct {
	State      ViewState       `json:"state"`
	FetchState FetchState      `json:"fetchState"`
	Home       *DailyTable     `json:"home,omitempty"`
	Analysis   *AnalysisTables `json:"analysis,omitempty"`
}

type setDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type setInvestorRequest struct {
	Investor Investor `json:"investor" binding:"required"`
}

type setPageRequest struct {
	Page Page `json:"page" binding:"required"`
}

type setWindowRequest struct {
	// Kept as a string so free-form widget input coerces instead of
	// failing JSON binding.
	Days string `json:"days" binding:"required"`
}

func (ws *WebServer) snapshot() ViewSnapshot {
	snap := ViewSnapshot{
		State:      ws.store.State(),
		FetchState: ws.orch.CurrentState(),
	}
	if daily := ws.orch.Daily(); daily != nil {
		table := BuildDailyTable(daily)
		snap.Home = &table
	}
	if analysis := ws.orch.Analysis(); analysis != nil {
		tables := BuildAnalysisTables(analysis)
		snap.Analysis = &tables
	}
	return snap
}

func (ws *WebServer) getView(c *gin.Context) {
	c.JSON(http.StatusOK, ws.snapshot())
}

func (ws *WebServer) setDate(c *gin.Context) {
	var req setDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be an 8-digit YYYYMMDD string"})
		return
	}

	ws.orch.Apply(ws.store.SetDate(req.Date))
	c.JSON(http.StatusOK, ws.snapshot())
}

func (ws *WebServer) setInvestor(c *gin.Context) {
	var req setInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Investor.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid investor type"})
		return
	}

	ws.orch.Apply(ws.store.SetActiveInvestor(req.Investor))
	c.JSON(http.StatusOK, ws.snapshot())
}

func (ws *WebServer) setPage(c *gin.Context) {
	var req setPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Page.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}

	ws.orch.Apply(ws.store.SetActivePage(req.Page))
	c.JSON(http.StatusOK, ws.snapshot())
}

func (ws *WebServer) setWindow(c *gin.Context) {
	var req setWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws.orch.Apply(ws.store.SetAnalysisWindowDays(parseWindowDays(req.Days)))
	c.JSON(http.StatusOK, ws.snapshot())
}

func (ws *WebServer) setAnalysisInvestor(c *gin.Context) {
	var req setInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Investor.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid investor type"})
		return
	}

	ws.orch.Apply(ws.store.SetAnalysisInvestor(req.Investor))
	c.JSON(http.StatusOK, ws.snapshot())
}

// getExportURL materializes the bulk-download locator for a date range.
// The export never reads or touches the view state; everything it needs
// arrives as query parameters.
func (ws *WebServer) getExportURL(c *gin.Context) {
	req := ExportRequest{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	for _, raw := range c.QueryArray("investors") {
		investor := Investor(raw)
		if !investor.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid investor type: " + raw})
			return
		}
		req.Investors = append(req.Investors, investor)
	}
	if len(req.Investors) == 0 {
		req.Investors = AllInvestors
	}

	locator, ok := ws.client.ExportURL(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": locator})
}
