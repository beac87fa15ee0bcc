package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ackkerman111/sixseven-store/internal/blobstore"
	"github.com/Ackkerman111/sixseven-store/internal/catalog"
	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	repo     catalog.Repository
	uploader *blobstore.Uploader
	timeout  time.Duration
}

func NewProductHandler(repo catalog.Repository, uploader *blobstore.Uploader, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		repo:     repo,
		uploader: uploader,
		timeout:  timeout,
	}
}

type ProductResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Stock           int      `json:"stock"`
	Tag             string   `json:"tag"`
	AvailableSizes  []string `json:"available_sizes"`
	AvailableColors []string `json:"available_colors"`
	Images          []string `json:"images"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type UpdateProductRequestDTO struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Stock           int      `json:"stock"`
	Tag             string   `json:"tag"`
	AvailableSizes  []string `json:"available_sizes"`
	AvailableColors []string `json:"available_colors"`
	Images          []string `json:"images"`
}

type CreateProductResponseDTO struct {
	Product      ProductResponse `json:"product"`
	FailedImages []string        `json:"failed_images,omitempty"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := r.URL.Query().Get("q")
	tag := r.URL.Query().Get("tag")

	var (
		products []*domain.Product
		err      error
	)
	if query != "" || tag != "" {
		products, err = h.repo.Search(ctx, query, tag)
	} else {
		products, err = h.repo.List(ctx)
	}
	if err != nil {
		handleDomainError(w, err)
		return
	}

	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: out})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := h.repo.GetByID(ctx, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := toProductResponse(product)
	respondJSON(w, http.StatusOK, &resp)
}

// Create accepts a multipart form from the dashboard: product fields plus any
// number of image files. Images upload concurrently; files that fail are
// reported back and the product is created with the ones that made it.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}

	name := r.FormValue("name")
	priceStr := r.FormValue("price")
	if name == "" || priceStr == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name and price are required")
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative number")
		return
	}

	stock, _ := strconv.Atoi(r.FormValue("stock"))

	var files []blobstore.File
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			f, openErr := header.Open()
			if openErr != nil {
				respondError(w, http.StatusBadRequest, "invalid_image", "could not read uploaded image")
				return
			}
			defer f.Close()
			files = append(files, blobstore.File{Name: header.Filename, Reader: f})
		}
	}

	urls, failures := h.uploader.UploadAll(ctx, files)

	product := &domain.Product{
		Name:            name,
		Description:     r.FormValue("description"),
		Price:           price,
		Stock:           stock,
		Tag:             r.FormValue("tag"),
		AvailableSizes:  splitFormList(r.FormValue("sizes")),
		AvailableColors: splitFormList(r.FormValue("colors")),
		Images:          urls,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		handleDomainError(w, err)
		return
	}

	resp := CreateProductResponseDTO{Product: toProductResponse(product)}
	for _, f := range failures {
		resp.FailedImages = append(resp.FailedImages, f.Name)
	}

	respondJSON(w, http.StatusCreated, &resp)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	var req UpdateProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name must not be empty")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be non-negative")
		return
	}

	product := &domain.Product{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Stock:           req.Stock,
		Tag:             req.Tag,
		AvailableSizes:  req.AvailableSizes,
		AvailableColors: req.AvailableColors,
		Images:          req.Images,
	}

	if err := h.repo.Update(ctx, product); err != nil {
		handleDomainError(w, err)
		return
	}

	resp := toProductResponse(product)
	respondJSON(w, http.StatusOK, &resp)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.repo.Delete(ctx, id); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Stock:           p.Stock,
		Tag:             p.Tag,
		AvailableSizes:  p.AvailableSizes,
		AvailableColors: p.AvailableColors,
		Images:          p.Images,
	}
}

// splitFormList parses the dashboard's comma-separated size/color inputs.
func splitFormList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
