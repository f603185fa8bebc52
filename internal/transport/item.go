package transport

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"brewbar-be/internal/item"
	"brewbar-be/internal/logger"
	"brewbar-be/internal/utils"

	"go.uber.org/zap"
)

// Admin item forms arrive as multipart: text fields plus an optional img file.
const maxItemFormSize = 10 << 20

type ItemHandler struct {
	items item.Service
}

func NewItemHandler(items item.Service) *ItemHandler {
	return &ItemHandler{items: items}
}

// List handles GET /api/items and GET /api/admin/items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list items", zap.Error(err))
		utils.WriteJSONError(w, "failed to load items", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /api/admin/item/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	it, err := h.items.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			utils.WriteJSONError(w, "item not found", http.StatusNotFound)
			return
		}
		logger.FromCtx(r.Context()).Error("failed to load item", zap.Error(err))
		utils.WriteJSONError(w, "failed to load item", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, it)
}

// Create handles POST /api/admin/additem.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxItemFormSize); err != nil {
		utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	p := item.CreateParams{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
	if p.Name == "" {
		utils.WriteJSONError(w, "name is required", http.StatusBadRequest)
		return
	}

	var err error
	if p.UnitPrice, err = parsePrice(r.FormValue("unit_price")); err != nil {
		utils.WriteJSONError(w, "unit_price must be a non-negative number", http.StatusBadRequest)
		return
	}
	if p.Tax, err = parsePrice(r.FormValue("tax")); err != nil {
		utils.WriteJSONError(w, "tax must be a non-negative number", http.StatusBadRequest)
		return
	}
	if p.Stock, err = parseStock(r.FormValue("quantity_in_stock")); err != nil {
		utils.WriteJSONError(w, "quantity_in_stock must be a non-negative integer", http.StatusBadRequest)
		return
	}

	if p.Img, err = formImage(r); err != nil {
		utils.WriteJSONError(w, "failed to read img upload", http.StatusBadRequest)
		return
	}

	it, err := h.items.Create(r.Context(), p)
	if err != nil {
		if errors.Is(err, item.ErrNameTaken) {
			utils.WriteJSONError(w, "item name already exists", http.StatusConflict)
			return
		}
		logger.FromCtx(r.Context()).Error("failed to create item", zap.Error(err))
		utils.WriteJSONError(w, "failed to create item", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, it)
}

// Update handles PUT /api/admin/item/{id}. Only submitted fields change.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxItemFormSize); err != nil {
		utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	var p item.UpdateParams
	if v, present := formField(r, "name"); present {
		p.Name = &v
	}
	if v, present := formField(r, "description"); present {
		p.Description = &v
	}
	if v, present := formField(r, "category"); present {
		p.Category = &v
	}
	if v, present := formField(r, "unit_price"); present {
		price, err := parsePrice(v)
		if err != nil {
			utils.WriteJSONError(w, "unit_price must be a non-negative number", http.StatusBadRequest)
			return
		}
		p.UnitPrice = &price
	}
	if v, present := formField(r, "tax"); present {
		tax, err := parsePrice(v)
		if err != nil {
			utils.WriteJSONError(w, "tax must be a non-negative number", http.StatusBadRequest)
			return
		}
		p.Tax = &tax
	}
	if v, present := formField(r, "quantity_in_stock"); present {
		stock, err := parseStock(v)
		if err != nil {
			utils.WriteJSONError(w, "quantity_in_stock must be a non-negative integer", http.StatusBadRequest)
			return
		}
		p.Stock = &stock
	}

	img, err := formImage(r)
	if err != nil {
		utils.WriteJSONError(w, "failed to read img upload", http.StatusBadRequest)
		return
	}
	p.Img = img

	if err := h.items.Update(r.Context(), id, p); err != nil {
		switch {
		case errors.Is(err, item.ErrNoFields):
			utils.WriteJSONError(w, "no fields to update", http.StatusBadRequest)
		case errors.Is(err, item.ErrNotFound):
			utils.WriteJSONError(w, "item not found", http.StatusNotFound)
		case errors.Is(err, item.ErrNameTaken):
			utils.WriteJSONError(w, "item name already exists", http.StatusConflict)
		default:
			logger.FromCtx(r.Context()).Error("failed to update item", zap.Error(err))
			utils.WriteJSONError(w, "failed to update item", http.StatusInternalServerError)
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "item updated"})
}

// Delete handles DELETE /api/admin/item/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.items.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, item.ErrNotFound):
			utils.WriteJSONError(w, "item not found", http.StatusNotFound)
		case errors.Is(err, item.ErrInUse):
			utils.WriteJSONError(w, "item is referenced by existing orders", http.StatusConflict)
		default:
			logger.FromCtx(r.Context()).Error("failed to delete item", zap.Error(err))
			utils.WriteJSONError(w, "failed to delete item", http.StatusInternalServerError)
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.WriteJSONError(w, "invalid item id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func formField(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func formImage(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("img")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, errors.New("invalid price")
	}
	return v, nil
}

func parseStock(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, errors.New("invalid stock")
	}
	return v, nil
}
