package handlers

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"kamau_backend/internal/middleware"
	"kamau_backend/internal/models"
	"kamau_backend/internal/services"
	"kamau_backend/internal/services/dto"
)

// documentHeaders pulls the verification document parts out of a
// multipart form; the frontend sends them under "verificationDocuments".
func documentHeaders(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	return form.File["verificationDocuments"]
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// ProfessionalHandler serves the public provider endpoints: registration,
// browsing and profile pages.
type ProfessionalHandler struct {
	*BaseHandler
	profService services.ProfessionalService
}

func NewProfessionalHandler(base *BaseHandler, profService services.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{BaseHandler: base, profService: profService}
}

func (h *ProfessionalHandler) RegisterRoutes(rg *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	pros := rg.Group("/professionals")
	{
		pros.POST("/register", h.Register)
		pros.GET("", h.List)
		pros.GET("/search", h.PublicSearch)
		pros.GET("/username/:username", h.GetByUsername)
		pros.GET("/:id", h.GetByID)
	}

	managed := rg.Group("/professionals")
	managed.Use(adminAuth, middleware.RequireAdminRole(), middleware.RequirePermission(models.PermManageProfessionals))
	{
		managed.PUT("/:id", h.Update)
		managed.DELETE("/:id", h.Delete)
	}
}

func (h *ProfessionalHandler) Register(c *gin.Context) {
	var req dto.RegisterProfessionalRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	profileImage, err := c.FormFile("profileImage")
	if err != nil {
		profileImage = nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		form = nil
	}

	db := h.GetDB(c)
	resp, svcErr := h.profService.Register(db, &req, profileImage, documentHeaders(form))
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}
	h.Created(c, "Registration submitted for verification", resp)
}

func (h *ProfessionalHandler) GetByID(c *gin.Context) {
	db := h.GetDB(c)
	prof, err := h.profService.GetByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	// Public endpoint; documents stay private.
	prof.VerificationDocuments = nil
	h.OK(c, prof)
}

func (h *ProfessionalHandler) GetByUsername(c *gin.Context) {
	db := h.GetDB(c)
	prof, err := h.profService.GetVerifiedByUsername(db, c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, prof)
}

// List defaults to verified records for the public surface.
func (h *ProfessionalHandler) List(c *gin.Context) {
	var q dto.ListProfessionalsQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}
	if q.Status == "" {
		q.Status = string(models.VerificationStatusVerified)
	}
	q.Page, q.Limit = normalizePaging(q.Page, q.Limit)

	db := h.GetDB(c)
	items, pagination, err := h.profService.List(db, &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	for i := range items {
		items[i].VerificationDocuments = nil
	}
	h.Paginated(c, items, pagination)
}

func (h *ProfessionalHandler) PublicSearch(c *gin.Context) {
	category := c.Query("serviceCategory")
	area := c.Query("serviceArea")

	db := h.GetDB(c)
	items, err := h.profService.PublicSearch(db, category, area)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, items)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	var req dto.UpdateProfessionalRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	profileImage, err := c.FormFile("profileImage")
	if err != nil {
		profileImage = nil
	}

	db := h.GetDB(c)
	prof, svcErr := h.profService.Update(db, c.Param("id"), &req, profileImage)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}
	h.OKWithMessage(c, "Professional updated", prof)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.profService.Delete(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "Professional deleted", nil)
}
