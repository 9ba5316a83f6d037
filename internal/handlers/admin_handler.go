package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kamau_backend/internal/middleware"
	"kamau_backend/internal/models"
	"kamau_backend/internal/services"
	"kamau_backend/internal/services/dto"
	"kamau_backend/pkg/apperrors"
)

// AdminHandler serves the back-office surface: dashboard, professional
// management, the verification workflow actions, analytics and export.
type AdminHandler struct {
	*BaseHandler
	profService         services.ProfessionalService
	verificationService services.VerificationService
	analyticsService    services.AnalyticsService
}

func NewAdminHandler(base *BaseHandler, prof services.ProfessionalService, verification services.VerificationService, analytics services.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		profService:         prof,
		verificationService: verification,
		analyticsService:    analytics,
	}
}

// RegisterRoutes mounts /admin. Every route requires an admin token plus
// an admin role; each endpoint is additionally gated on its permission.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(adminAuth, middleware.RequireAdminRole())
	{
		dashboard := admin.Group("/dashboard")
		{
			dashboard.GET("/stats", middleware.RequirePermission(models.PermViewDashboard), h.DashboardStats)
			dashboard.GET("/recent", middleware.RequirePermission(models.PermViewDashboard), h.RecentApplications)
			dashboard.GET("/analytics", middleware.RequirePermission(models.PermViewAnalytics), h.Analytics)
		}

		pros := admin.Group("/professionals")
		pros.Use(middleware.RequirePermission(models.PermManageProfessionals))
		{
			pros.GET("", h.List)
			pros.GET("/search", h.Search)
			pros.GET("/pending", h.ListPending)
			pros.GET("/:id", h.GetByID)
		}

		apps := admin.Group("/applications")
		{
			apps.PATCH("/:id/approve", middleware.RequirePermission(models.PermVerifyApplications), h.Approve)
			apps.PATCH("/:id/reject", middleware.RequirePermission(models.PermRejectApplications), h.Reject)
			apps.PATCH("/:id/reopen", middleware.RequirePermission(models.PermVerifyApplications), h.Reopen)
		}

		analytics := admin.Group("/analytics")
		analytics.Use(middleware.RequirePermission(models.PermViewAnalytics))
		{
			analytics.GET("/categories", h.CategoryDistribution)
			analytics.GET("/areas", h.AreaDistribution)
			analytics.GET("/status", h.StatusDistribution)
		}

		admin.GET("/export", middleware.RequirePermission(models.PermExportData), h.Export)
	}
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	db := h.GetDB(c)
	stats, err := h.analyticsService.DashboardStats(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, stats)
}

func (h *AdminHandler) RecentApplications(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 5)
	db := h.GetDB(c)
	items, err := h.analyticsService.RecentApplications(db, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, items)
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	db := h.GetDB(c)
	data, err := h.analyticsService.Analytics(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, data)
}

// List is the admin listing; unlike the public one it accepts any status
// and defaults to all records.
func (h *AdminHandler) List(c *gin.Context) {
	var q dto.ListProfessionalsQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}
	q.Page, q.Limit = normalizePaging(q.Page, q.Limit)

	db := h.GetDB(c)
	items, pagination, err := h.profService.List(db, &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Paginated(c, items, pagination)
}

func (h *AdminHandler) Search(c *gin.Context) {
	var q dto.SearchProfessionalsQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}
	q.Page, q.Limit = normalizePaging(q.Page, q.Limit)

	db := h.GetDB(c)
	items, pagination, err := h.profService.Search(db, &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Paginated(c, items, pagination)
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	page, limit := ParsePagination(c)
	q := dto.ListProfessionalsQuery{
		Status: string(models.VerificationStatusPending),
		Page:   page,
		Limit:  limit,
	}

	db := h.GetDB(c)
	items, pagination, err := h.profService.List(db, &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Paginated(c, items, pagination)
}

func (h *AdminHandler) GetByID(c *gin.Context) {
	db := h.GetDB(c)
	prof, err := h.profService.GetByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	// Admins see the full record including documents.
	h.OK(c, prof)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	db := h.GetDB(c)
	prof, err := h.verificationService.Approve(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "Application approved", prof)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	// "reason" is accepted as a legacy alias for the documented field.
	var req struct {
		RejectionReason string `json:"rejectionReason"`
		Reason          string `json:"reason"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	reason := req.RejectionReason
	if reason == "" {
		reason = req.Reason
	}

	db := h.GetDB(c)
	prof, err := h.verificationService.Reject(db, c.Param("id"), reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "Application rejected", prof)
}

func (h *AdminHandler) Reopen(c *gin.Context) {
	db := h.GetDB(c)
	prof, err := h.verificationService.Reopen(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "Application reopened", prof)
}

func (h *AdminHandler) CategoryDistribution(c *gin.Context) {
	db := h.GetDB(c)
	rows, err := h.analyticsService.CategoryDistribution(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, rows)
}

func (h *AdminHandler) AreaDistribution(c *gin.Context) {
	db := h.GetDB(c)
	rows, err := h.analyticsService.AreaDistribution(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, rows)
}

func (h *AdminHandler) StatusDistribution(c *gin.Context) {
	db := h.GetDB(c)
	dist, err := h.analyticsService.StatusDistribution(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, dist)
}

// Export streams the professionals dataset as JSON or CSV.
func (h *AdminHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	status := c.Query("status")
	db := h.GetDB(c)

	switch format {
	case "json":
		items, err := h.analyticsService.ExportJSON(db, status)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		h.OK(c, items)
	case "csv":
		data, err := h.analyticsService.ExportCSV(db, status)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		filename := fmt.Sprintf("professionals-%s.csv", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv", data)
	default:
		h.HandleServiceError(c, apperrors.NewBadRequestError("Unsupported export format: "+format))
	}
}
