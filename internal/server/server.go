package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/business-case/internal/config"
	"github.com/iwvelando/business-case/internal/preset"
	"github.com/iwvelando/business-case/internal/reference"
	"github.com/iwvelando/business-case/internal/simulator"
	"github.com/iwvelando/business-case/pkg/constants"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	conf        *config.Configuration
}

// NewHandler constructs the HTTP handler that serves the cost model API.
// Every request builds its own simulator from conf, so handlers share no
// mutable state.
func NewHandler(logger *zap.Logger, conf *config.Configuration, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = config.Default()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion, conf: conf}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.respondErrorWithOp(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), "server.notFound")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.respondErrorWithOp(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.methodNotAllowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/defaults", h.handleDefaults)
		r.Post("/compute", h.handleCompute)
		r.Get("/presets", h.handlePresets)
		r.Get("/sliders", h.handleSliders)
		r.Get("/reference/{table}", h.handleReference)
		r.Get("/schema", h.handleSchema)
		r.Get("/version", h.handleVersion)
	})

	return r
}

// computeRequest is the body of POST /api/compute. Inputs may name any subset
// of fields; values are clamped to the slider bounds after the preset is applied.
type computeRequest struct {
	Inputs map[string]float64 `json:"inputs,omitempty"`
	Preset string             `json:"preset,omitempty"`
	View   string             `json:"view,omitempty"`
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	sim, err := h.newSimulator()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleDefaults")
		return
	}
	h.writeJSON(w, http.StatusOK, sim.State())
}

func (h *handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompute"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req computeRequest
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	sim, err := h.newSimulator()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	if err := applyRequest(sim, req); err != nil {
		status := http.StatusBadRequest
		if !isClientError(err) {
			status = http.StatusInternalServerError
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	h.logger.Debug("computed business case",
		zap.String("op", op),
		zap.String("preset", sim.ActivePreset()),
		zap.Int("overrides", len(req.Inputs)),
	)
	h.writeJSON(w, http.StatusOK, sim.State())
}

// applyRequest applies the preset first, then the field overrides in name
// order, then the view.
func applyRequest(sim *simulator.Simulator, req computeRequest) error {
	if key := strings.TrimSpace(req.Preset); key != "" {
		if err := sim.ApplyPreset(key); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(req.Inputs))
	for name := range req.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := simulator.Field(name)
		slider, err := simulator.SliderFor(field)
		if err != nil {
			return err
		}
		if err := sim.Set(field, slider.Clamp(req.Inputs[name])); err != nil {
			return err
		}
	}

	if name := strings.TrimSpace(req.View); name != "" {
		view, err := simulator.ParseView(name)
		if err != nil {
			return err
		}
		if err := sim.SetView(view); err != nil {
			return err
		}
	}
	return nil
}

func isClientError(err error) bool {
	return errors.Is(err, preset.ErrUnknownPreset) ||
		errors.Is(err, simulator.ErrUnknownField) ||
		errors.Is(err, simulator.ErrUnknownView)
}

func (h *handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.conf.PresetCatalog()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handlePresets")
		return
	}
	h.writeJSON(w, http.StatusOK, catalog.List())
}

func (h *handler) handleSliders(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, simulator.Sliders())
}

func (h *handler) handleReference(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReference"

	table, err := reference.Table(chi.URLParam(r, "table"))
	if err != nil {
		if errors.Is(err, reference.ErrUnknownTable) {
			h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, table)
}

func (h *handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := config.Schema()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleSchema")
		return
	}
	h.writeJSON(w, http.StatusOK, schema)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) newSimulator() (*simulator.Simulator, error) {
	opts, err := h.conf.SimulatorOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare simulator: %w", err)
	}
	sim, err := simulator.New(h.logger, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build simulator: %w", err)
	}
	return sim, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
