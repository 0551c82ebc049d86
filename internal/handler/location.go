package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/11shadownevermore11/Hackaton/internal/model"
	"github.com/11shadownevermore11/Hackaton/internal/repository"
)

// LocationHandler serves the location catalog: CRUD, search, projections
// and photo uploads.
type LocationHandler struct {
	Locations *repository.LocationRepo
	UploadDir string
}

func NewLocationHandler(l *repository.LocationRepo, uploadDir string) *LocationHandler {
	return &LocationHandler{Locations: l, UploadDir: uploadDir}
}

type createLocationReq struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Coords      string            `json:"coords"`
	Photo       string            `json:"photo"`
	WorkTime    string            `json:"work_time"`
	Contacts    map[string]string `json:"contacts"`
}

func locationID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// List returns every location.
func (h *LocationHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Locations.All())
}

// Get returns one location by id.
func (h *LocationHandler) Get(c echo.Context) error {
	id, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	loc, err := h.Locations.Get(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, loc)
}

// Create adds a location with a client-assigned id.
func (h *LocationHandler) Create(c echo.Context) error {
	var req createLocationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ID == 0 || req.Name == "" || req.Description == "" || req.Address == "" ||
		req.Coords == "" || req.WorkTime == "" || req.Contacts == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location data"})
	}
	loc := model.Location{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Coords:      req.Coords,
		Photo:       req.Photo,
		WorkTime:    req.WorkTime,
		Contacts:    req.Contacts,
	}
	if err := h.Locations.Create(loc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location id already exists"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "location created",
		"location_id": loc.ID,
		"location":    loc,
	})
}

// Update applies a partial update to a location.
func (h *LocationHandler) Update(c echo.Context) error {
	id, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	var patch model.LocationPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	loc, err := h.Locations.Update(id, patch)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":          "location updated",
		"location_id":      id,
		"updated_location": loc,
	})
}

// Delete removes a location from the catalog.
func (h *LocationHandler) Delete(c echo.Context) error {
	id, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	if err := h.Locations.Delete(id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "location deleted",
		"location_id": id,
	})
}

// Search filters locations by substring on address, description and
// working hours.
func (h *LocationHandler) Search(c echo.Context) error {
	results := h.Locations.Search(
		c.QueryParam("address"),
		c.QueryParam("description"),
		c.QueryParam("work_time"),
	)
	return c.JSON(http.StatusOK, echo.Map{
		"found_count": len(results),
		"locations":   results,
	})
}

// Contacts returns only the contacts of a location.
func (h *LocationHandler) Contacts(c echo.Context) error {
	id, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	loc, err := h.Locations.Get(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"location_id": id,
		"contacts":    loc.Contacts,
	})
}

// Details returns the expanded projection of a location.
func (h *LocationHandler) Details(c echo.Context) error {
	id, err := locationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	loc, err := h.Locations.Get(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"location_id":   id,
		"address":       loc.Address,
		"coordinates":   loc.Coords,
		"working_hours": loc.WorkTime,
		"description":   loc.Description,
		"photo":         loc.Photo,
		"contacts":      loc.Contacts,
	})
}

// Upload stores a location photo from a multipart form (location_id + file)
// and records its public URL on the location.
func (h *LocationHandler) Upload(c echo.Context) error {
	id, err := strconv.ParseUint(c.FormValue("location_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	if _, err := h.Locations.Get(id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	name := filepath.Base(fh.Filename)
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	url := "/uploads/" + name
	if err := h.Locations.SetPhoto(id, url); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"filename": name, "url": url})
}

// ServeUpload returns a previously uploaded file by name.
func (h *LocationHandler) ServeUpload(c echo.Context) error {
	name := filepath.Base(c.Param("filename"))
	path := filepath.Join(h.UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
	}
	return c.File(path)
}
