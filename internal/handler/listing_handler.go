package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/scrazdxvf/baraholka-backend/internal/discovery"
	"github.com/scrazdxvf/baraholka-backend/internal/model"
	"github.com/scrazdxvf/baraholka-backend/internal/service"
	"github.com/scrazdxvf/baraholka-backend/internal/taxonomy"
)

type ListingHandler struct {
	svc    service.ListingService
	poller *discovery.Poller
}

func NewListingHandler(svc service.ListingService, poller *discovery.Poller) *ListingHandler {
	return &ListingHandler{svc: svc, poller: poller}
}

type ListingResponse struct {
	ID              uint64   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           uint     `json:"price"`
	Category        string   `json:"category"`
	CategoryName    string   `json:"categoryName"`
	Subcategory     string   `json:"subcategory,omitempty"`
	SubcategoryName string   `json:"subcategoryName,omitempty"`
	City            string   `json:"city"`
	Condition       string   `json:"condition"`
	Images          []string `json:"images"`
	ContactInfo     string   `json:"contactInfo"`
	OwnerUID        string   `json:"ownerUid"`
	OwnerName       string   `json:"ownerName,omitempty"`
	Status          string   `json:"status"`
	RejectionReason *string  `json:"rejectionReason,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
	Total    int               `json:"total"`
}

type ListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       uint     `json:"price"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	City        string   `json:"city"`
	Condition   string   `json:"condition"`
	ContactInfo string   `json:"contactInfo"`
	Images      []string `json:"images"`
}

func (r *ListingRequest) toInput() service.ListingInput {
	return service.ListingInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		City:        r.City,
		Condition:   model.Condition(r.Condition),
		ContactInfo: r.ContactInfo,
		Images:      r.Images,
	}
}

func (h *ListingHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	name, _ := c.Get("name").(string)
	var req ListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	listing, err := h.svc.Submit(c.Request().Context(), uid, name, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toListingResponse(listing))
}

func (h *ListingHandler) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	listing, err := h.svc.Edit(c.Request().Context(), id, uid, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	listing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

// List serves discovery over the poller's active-set snapshot. Filter
// changes from the client hit this endpoint directly, so they re-run the
// pipeline immediately without waiting for the next poll tick; the snapshot
// itself only moves at the poll interval.
func (h *ListingHandler) List(c echo.Context) error {
	spec := discovery.FilterSpec{
		Query:       c.QueryParam("query"),
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		City:        c.QueryParam("city"),
		Condition:   c.QueryParam("condition"),
		MinPrice:    c.QueryParam("minPrice"),
		MaxPrice:    c.QueryParam("maxPrice"),
		Sort:        discovery.Sort(c.QueryParam("sort")),
	}
	corpus, ok := h.poller.Snapshot()
	if !ok {
		var err error
		corpus, err = h.svc.ActiveListings(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch listings"))
		}
	}
	result := discovery.Discover(corpus, spec)
	return c.JSON(http.StatusOK, toListingListResponse(result))
}

func (h *ListingHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	listings, err := h.svc.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch listings"))
	}
	return c.JSON(http.StatusOK, toListingListResponse(listings))
}

func (h *ListingHandler) MarkSold(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	listing, err := h.svc.MarkSold(c.Request().Context(), id, uid)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	isAdmin, _ := c.Get("admin").(bool)
	if err := h.svc.Remove(c.Request().Context(), id, uid, isAdmin); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func toListingResponse(l *model.Listing) ListingResponse {
	return ListingResponse{
		ID:              l.ID,
		Title:           l.Title,
		Description:     l.Description,
		Price:           l.Price,
		Category:        l.Category,
		CategoryName:    taxonomy.CategoryName(l.Category),
		Subcategory:     l.Subcategory,
		SubcategoryName: taxonomy.SubcategoryName(l.Category, l.Subcategory),
		City:            l.City,
		Condition:       string(l.Condition),
		Images:          l.ImageURLs(),
		ContactInfo:     l.ContactInfo,
		OwnerUID:        l.OwnerUID,
		OwnerName:       l.OwnerName,
		Status:          string(l.Status),
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
}

func toListingListResponse(listings []model.Listing) ListingListResponse {
	resp := ListingListResponse{
		Listings: make([]ListingResponse, 0, len(listings)),
		Total:    len(listings),
	}
	for i := range listings {
		resp.Listings = append(resp.Listings, toListingResponse(&listings[i]))
	}
	return resp
}
