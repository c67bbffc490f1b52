package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/middleware"
	"github.com/yourorg/buildbid/internal/model"
	"github.com/yourorg/buildbid/internal/service"
	"github.com/yourorg/buildbid/internal/utils"
)

// VendorHandler handles vendor profile and marketplace HTTP requests
type VendorHandler struct {
	vendorService *service.VendorService
	logger        *zap.Logger
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *service.VendorService, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		logger:        logger,
	}
}

// Onboard handles vendor profile creation
// POST /api/v1/vendors
func (h *VendorHandler) Onboard(c *gin.Context) {
	var request model.VendorProfileCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.vendorService.Onboard(c.Request.Context(), middleware.UserID(c), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// GetProfile handles fetching a vendor profile
// GET /api/v1/vendors/:id
func (h *VendorHandler) GetProfile(c *gin.Context) {
	profile, err := h.vendorService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetMyProfile handles fetching the caller's vendor profile
// GET /api/v1/vendors/me
func (h *VendorHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.vendorService.GetProfileByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListProfiles handles listing vendor profiles
// GET /api/v1/vendors
func (h *VendorHandler) ListProfiles(c *gin.Context) {
	params := utils.ParsePaginationParams(c, 20, 100)

	profiles, err := h.vendorService.ListProfiles(c.Request.Context(), params.Limit, utils.CalculateOffset(params.Page, params.Limit))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// CreateProduct handles adding a marketplace listing
// POST /api/v1/products
func (h *VendorHandler) CreateProduct(c *gin.Context) {
	var request model.VendorProduct
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.vendorService.CreateProduct(c.Request.Context(), middleware.UserID(c), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// ListProducts handles listing a vendor's products
// GET /api/v1/vendors/:id/products
func (h *VendorHandler) ListProducts(c *gin.Context) {
	products, err := h.vendorService.ListProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// SearchProducts handles marketplace search with filters and pagination
// GET /api/v1/products/search
func (h *VendorHandler) SearchProducts(c *gin.Context) {
	params := utils.ParsePaginationParams(c, 20, 100)

	filter := model.ProductSearchFilter{
		Query:       c.Query("q"),
		SortBy:      c.Query("sort"),
		InStockOnly: c.Query("in_stock") == "true",
		Page:        params.Page,
		Limit:       params.Limit,
	}

	if categories := c.Query("categories"); categories != "" {
		filter.Categories = strings.Split(categories, ",")
	}
	if v := c.Query("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.Query("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}
	if v := c.Query("min_rating"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = &r
		}
	}

	products, total, err := h.vendorService.SearchProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendPaginatedResponse(c, http.StatusOK, products, total, filter.Page, filter.Limit)
}
