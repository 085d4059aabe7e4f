package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"albion-guild-dashboard/internal/table"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

const maxBodyBytes = 4 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dest)
}

type tableOptions struct {
	sort string
	desc bool
	csv  bool
}

func parseTableOptions(r *http.Request) tableOptions {
	q := r.URL.Query()
	desc, _ := strconv.ParseBool(q.Get("desc"))
	return tableOptions{
		sort: q.Get("sort"),
		desc: desc,
		csv:  q.Get("format") == "csv",
	}
}

// applySort orders t by the requested column. It reports false after
// answering 400 for an unknown column.
func applySort[T any](w http.ResponseWriter, t *table.Table[T], opts tableOptions) bool {
	if opts.sort == "" {
		return true
	}
	if err := t.SortBy(opts.sort, opts.desc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeCSV[T any](w http.ResponseWriter, t *table.Table[T], filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := t.WriteCSV(w); err != nil {
		slog.Error("Failed to write CSV", "file", filename, "error", err)
	}
}
