package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// ResultsHandler serves persisted match results for human review.
type ResultsHandler struct {
	DB *sql.DB
}

// ResultRow is one match result row as returned by the review API.
type ResultRow struct {
	CompanyCode      string    `json:"company_code"`
	SourceSystem     string    `json:"source_system"`
	CustomerID       string    `json:"customer_id"`
	CustomerNumber   string    `json:"customer_number"`
	AccountID        string    `json:"account_id"`
	ExternalCode     *string   `json:"external_code,omitempty"`
	Dist             int       `json:"dist"`
	EmailScore       int       `json:"email_score"`
	PhoneScore       int       `json:"phone_score"`
	ZipScore         int       `json:"zip_score"`
	AddressCityScore int       `json:"address_city_score"`
	StateScore       int       `json:"state_score"`
	MultiSignalBonus int       `json:"multi_signal_bonus"`
	TotalScore       int       `json:"total_score"`
	ConfidenceBand   string    `json:"confidence_band"`
	BestMatchFlag    bool      `json:"best_match_flag"`
	RunDate          time.Time `json:"run_date"`
}

const resultColumns = `
	company_code, source_system, customer_id, customer_number,
	account_id, external_code,
	dist, email_score, phone_score, zip_score,
	address_city_score, state_score, multi_signal_bonus,
	total_score, confidence_band, best_match_flag, run_date
`

// ListResults returns match results filtered by company, system, band and
// best-match flag. Best matches only by default; pass all=true for every row.
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + resultColumns + ` FROM match_result WHERE 1=1`
	var args []interface{}

	addFilter := func(column, value string) {
		if value != "" {
			args = append(args, value)
			query += " AND " + column + " = $" + strconv.Itoa(len(args))
		}
	}
	addFilter("company_code", r.URL.Query().Get("company"))
	addFilter("source_system", r.URL.Query().Get("system"))
	addFilter("confidence_band", r.URL.Query().Get("band"))

	if r.URL.Query().Get("all") != "true" {
		query += " AND best_match_flag = 1"
	}

	limit := 500
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 5000 {
		limit = v
	}
	args = append(args, limit)
	query += " ORDER BY company_code, customer_id, total_score LIMIT $" + strconv.Itoa(len(args))

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	results, err := scanResults(rows)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

// GetCandidates returns every scored candidate for one customer, best first,
// so a reviewer can compare the alternatives behind a best-match flag.
func (h *ResultsHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["id"]

	rows, err := h.DB.Query(
		`SELECT `+resultColumns+` FROM match_result WHERE customer_id = $1 ORDER BY total_score`,
		customerID,
	)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	results, err := scanResults(rows)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if len(results) == 0 {
		http.Error(w, "No results for customer", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"customer_id": customerID,
		"candidates":  results,
	})
}

func scanResults(rows *sql.Rows) ([]ResultRow, error) {
	results := []ResultRow{}
	for rows.Next() {
		var row ResultRow
		var external sql.NullString
		var flag int

		err := rows.Scan(
			&row.CompanyCode, &row.SourceSystem, &row.CustomerID, &row.CustomerNumber,
			&row.AccountID, &external,
			&row.Dist, &row.EmailScore, &row.PhoneScore, &row.ZipScore,
			&row.AddressCityScore, &row.StateScore, &row.MultiSignalBonus,
			&row.TotalScore, &row.ConfidenceBand, &flag, &row.RunDate,
		)
		if err != nil {
			return nil, err
		}
		if external.Valid {
			row.ExternalCode = &external.String
		}
		row.BestMatchFlag = flag == 1
		results = append(results, row)
	}
	return results, rows.Err()
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
