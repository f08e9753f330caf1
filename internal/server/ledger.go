package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/pkg/validation"
)

func (h *handler) handleListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.ledger.ListSettings(r.Context())
	if err != nil {
		h.respondStoreError(w, err, "server.handleListSettings")
		return
	}
	if settings == nil {
		settings = []ledger.Setting{}
	}
	h.writeJSON(w, http.StatusOK, settings)
}

func (h *handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.ledger.LookupSetting(r.Context(), r.PathValue("name"))
	if err != nil {
		h.respondStoreError(w, err, "server.handleGetSetting")
		return
	}
	h.writeJSON(w, http.StatusOK, setting)
}

func (h *handler) handleCreateSetting(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateSetting"

	var setting ledger.Setting
	if !h.decodeJSON(w, r, &setting, op) {
		return
	}
	if err := validation.ValidateSetting(setting); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	_, err := h.ledger.LookupSetting(r.Context(), setting.Name)
	switch {
	case err == nil:
		h.respondErrorWithOp(w, http.StatusConflict, fmt.Sprintf("setting %s already exists", setting.Name), op)
		return
	case !errors.Is(err, ledger.ErrNotFound):
		h.respondStoreError(w, err, op)
		return
	}

	if err := h.ledger.UpsertSetting(r.Context(), setting); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, setting)
}

func (h *handler) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateSetting"

	var body ledger.Setting
	if !h.decodeJSON(w, r, &body, op) {
		return
	}
	setting := ledger.Setting{Name: r.PathValue("name"), Value: body.Value}
	if err := validation.ValidateSetting(setting); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	if err := h.ledger.UpdateSetting(r.Context(), setting); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, setting)
}

func (h *handler) handleDeleteSetting(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteSetting(r.Context(), r.PathValue("name")); err != nil {
		h.respondStoreError(w, err, "server.handleDeleteSetting")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Setting deleted"})
}

func (h *handler) handleListStaticRows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ledger.ListStaticRows(r.Context())
	if err != nil {
		h.respondStoreError(w, err, "server.handleListStaticRows")
		return
	}
	if rows == nil {
		rows = []ledger.StaticRow{}
	}
	h.writeJSON(w, http.StatusOK, rows)
}

func (h *handler) handleGetStaticRow(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetStaticRow"

	id, ok := h.rowID(w, r, op)
	if !ok {
		return
	}
	row, err := h.ledger.GetStaticRow(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, row)
}

func (h *handler) handleCreateStaticRow(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateStaticRow"

	var row ledger.StaticRow
	if !h.decodeJSON(w, r, &row, op) {
		return
	}
	row.ID = 0
	if err := validation.ValidateStaticRow(row); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	created, err := h.ledger.CreateStaticRow(r.Context(), row)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *handler) handleUpdateStaticRow(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateStaticRow"

	id, ok := h.rowID(w, r, op)
	if !ok {
		return
	}
	var body ledger.StaticRow
	if !h.decodeJSON(w, r, &body, op) {
		return
	}

	row := ledger.StaticRow{
		ID:         id,
		Resource:   body.Resource,
		FlowType:   body.FlowType,
		FiscalYear: body.FiscalYear,
		FlowSource: body.FlowSource,
		Amount:     body.Amount,
	}
	if err := validation.ValidateStaticRow(row); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	if err := h.ledger.UpdateStaticRow(r.Context(), row); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, row)
}

func (h *handler) handleDeleteStaticRow(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteStaticRow"

	id, ok := h.rowID(w, r, op)
	if !ok {
		return
	}
	if err := h.ledger.DeleteStaticRow(r.Context(), id); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Row deleted"})
}

func (h *handler) rowID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid static row id %q", raw), op)
		return 0, false
	}
	return id, true
}
