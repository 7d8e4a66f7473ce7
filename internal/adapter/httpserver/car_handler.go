package httpserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxMultipartMemory = 32 << 20 // 32 MB

type CarHandler struct {
	queryUC    *usecase.CarQueryUseCase
	mutationUC *usecase.CarMutationUseCase
	logger     *zap.Logger
}

func NewCarHandler(queryUC *usecase.CarQueryUseCase, mutationUC *usecase.CarMutationUseCase, logger *zap.Logger) *CarHandler {
	return &CarHandler{
		queryUC:    queryUC,
		mutationUC: mutationUC,
		logger:     logger,
	}
}

func (h *CarHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.queryUC.Search(r.Context(), query, page, limit)
	if err != nil {
		h.logger.Error("Failed to search cars", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

func (h *CarHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")

	car, err := h.queryUC.GetByID(r.Context(), carID)
	if err != nil {
		if errors.Is(err, usecase.ErrCarNotFound) {
			writeError(w, http.StatusNotFound, "Car not found")
			return
		}
		h.logger.Error("Failed to get car", zap.Error(err), zap.String("car_id", carID))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"car":     car,
	})
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	input := carInputFromForm(r)

	images, err := readIndexedFiles(r, "image-")
	if err != nil {
		h.logger.Error("Failed to read uploaded images", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	car, err := h.mutationUC.Create(r.Context(), userID, input, images)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCarData) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to add car", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to add car")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Car added successfully",
		"car":     car,
	})
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	carID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	input := carInputFromForm(r)
	keepImageURLs := prefixedFormValues(r, "existing-image-")

	newImages, err := readPrefixedFiles(r, "new-image-")
	if err != nil {
		h.logger.Error("Failed to read uploaded images", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	car, err := h.mutationUC.Update(r.Context(), userID, carID, input, keepImageURLs, newImages)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCarNotFound):
			writeError(w, http.StatusNotFound, "Car not found")
		case errors.Is(err, usecase.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, usecase.ErrInvalidCarData):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update car", zap.Error(err), zap.String("car_id", carID))
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"updatedCar": car,
	})
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	carID := chi.URLParam(r, "id")

	if err := h.mutationUC.Delete(r.Context(), userID, carID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCarNotFound):
			writeError(w, http.StatusNotFound, "Car not found")
		case errors.Is(err, usecase.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "Unauthorized")
		default:
			h.logger.Error("Failed to delete car", zap.Error(err), zap.String("car_id", carID))
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Car deleted successfully",
	})
}

func carInputFromForm(r *http.Request) usecase.CarInput {
	return usecase.CarInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Company:     r.FormValue("company"),
		Engine:      entity.Engine(r.FormValue("engine")),
		Segment:     entity.Segment(r.FormValue("segment")),
		Dealer:      r.FormValue("dealer"),
	}
}

// readIndexedFiles collects the image-0..image-9 form files in index
// order. Gaps are fine; absent fields are skipped.
func readIndexedFiles(r *http.Request, prefix string) ([]usecase.ImageUpload, error) {
	images := make([]usecase.ImageUpload, 0, usecase.MaxImagesPerCar)
	for i := 0; i < usecase.MaxImagesPerCar; i++ {
		file, header, err := r.FormFile(fmt.Sprintf("%s%d", prefix, i))
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			return nil, err
		}
		upload, err := readUpload(file, header)
		if err != nil {
			return nil, err
		}
		images = append(images, upload)
	}
	return images, nil
}

// readPrefixedFiles collects every file field starting with prefix,
// sorted by field name for a stable order.
func readPrefixedFiles(r *http.Request, prefix string) ([]usecase.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var keys []string
	for key := range r.MultipartForm.File {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var images []usecase.ImageUpload
	for _, key := range keys {
		file, header, err := r.FormFile(key)
		if err != nil {
			return nil, err
		}
		upload, err := readUpload(file, header)
		if err != nil {
			return nil, err
		}
		images = append(images, upload)
	}
	return images, nil
}

func prefixedFormValues(r *http.Request, prefix string) []string {
	if r.MultipartForm == nil {
		return nil
	}

	var keys []string
	for key := range r.MultipartForm.Value {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var values []string
	for _, key := range keys {
		for _, v := range r.MultipartForm.Value[key] {
			if v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func readUpload(file multipart.File, header *multipart.FileHeader) (usecase.ImageUpload, error) {
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return usecase.ImageUpload{}, err
	}
	return usecase.ImageUpload{FileName: header.Filename, Data: data}, nil
}
