package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"daybook/i18n"
	"daybook/store"
)

type entryRequest struct {
	EntryDate string `json:"entry_date"`
	Content   string `json:"content"`
}

// validateEntry returns the message key of the first violation, or "".
func validateEntry(input entryRequest) string {
	if _, err := time.Parse("2006-01-02", input.EntryDate); err != nil {
		return "InvalidEntryDate"
	}
	if input.Content == "" {
		return "EmptyContent"
	}
	return ""
}

func formatEntryDate(lang, entryDate string) string {
	t, err := time.Parse("2006-01-02", entryDate)
	if err != nil {
		return entryDate
	}
	return i18n.FormatDate(lang, t)
}

// entryIDParam parses the {id} route parameter. A non-numeric id maps to the
// same collapsed not-found error as a missing row.
func entryIDParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// ListEntriesHandler returns all of the caller's entries, most recent date
// first, with the display date rendered for the request's language.
func (h *Handlers) ListEntriesHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	ident, _ := identityFromContext(r.Context())

	entries, err := h.entries.ListByUser(r.Context(), ident.UserID)
	if err != nil {
		log.Printf("Error fetching entries: %v", err)
		sendMessage(w, http.StatusInternalServerError, lang, "ErrorFetchingEntries")
		return
	}

	for i := range entries {
		entries[i].FormattedDate = formatEntryDate(lang, entries[i].EntryDate)
	}

	sendJSON(w, http.StatusOK, entries)
}

// CreateEntryHandler adds a new entry for the caller's user.
func (h *Handlers) CreateEntryHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	ident, _ := identityFromContext(r.Context())

	var input entryRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendMessage(w, http.StatusBadRequest, lang, "InvalidRequestBody")
		return
	}
	if key := validateEntry(input); key != "" {
		sendMessage(w, http.StatusBadRequest, lang, key)
		return
	}

	entry, err := h.entries.Create(r.Context(), ident.UserID, input.EntryDate, input.Content)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEntryDate) {
			sendMessage(w, http.StatusConflict, lang, "DuplicateEntryDate")
			return
		}
		log.Printf("Error adding entry: %v", err)
		sendMessage(w, http.StatusInternalServerError, lang, "ErrorAddingEntry")
		return
	}

	entry.FormattedDate = formatEntryDate(lang, entry.EntryDate)
	sendJSON(w, http.StatusCreated, entry)
}

// UpdateEntryHandler rewrites an entry owned by the caller.
func (h *Handlers) UpdateEntryHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	ident, _ := identityFromContext(r.Context())

	id, ok := entryIDParam(r)
	if !ok {
		sendMessage(w, http.StatusNotFound, lang, "EntryNotFound")
		return
	}

	var input entryRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendMessage(w, http.StatusBadRequest, lang, "InvalidRequestBody")
		return
	}
	if key := validateEntry(input); key != "" {
		sendMessage(w, http.StatusBadRequest, lang, key)
		return
	}

	entry, err := h.entries.Update(r.Context(), ident.UserID, id, input.EntryDate, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEntryNotFound):
			sendMessage(w, http.StatusNotFound, lang, "EntryNotFound")
		case errors.Is(err, store.ErrDuplicateEntryDate):
			sendMessage(w, http.StatusConflict, lang, "DuplicateEntryDate")
		default:
			log.Printf("Error updating entry: %v", err)
			sendMessage(w, http.StatusInternalServerError, lang, "ErrorUpdatingEntry")
		}
		return
	}

	entry.FormattedDate = formatEntryDate(lang, entry.EntryDate)
	sendJSON(w, http.StatusOK, entry)
}

// DeleteEntryHandler removes an entry owned by the caller.
func (h *Handlers) DeleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	ident, _ := identityFromContext(r.Context())

	id, ok := entryIDParam(r)
	if !ok {
		sendMessage(w, http.StatusNotFound, lang, "EntryNotFound")
		return
	}

	if err := h.entries.Delete(r.Context(), ident.UserID, id); err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			sendMessage(w, http.StatusNotFound, lang, "EntryNotFound")
			return
		}
		log.Printf("Error deleting entry: %v", err)
		sendMessage(w, http.StatusInternalServerError, lang, "ErrorDeletingEntry")
		return
	}

	sendMessage(w, http.StatusOK, lang, "EntryDeleted")
}
