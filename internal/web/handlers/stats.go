package handlers

import (
	"database/sql"
	"net/http"
)

// StatsHandler serves aggregate statistics over persisted match results.
type StatsHandler struct {
	DB *sql.DB
}

// StatsResponse summarizes the match result table.
type StatsResponse struct {
	TotalRows      int            `json:"total_rows"`
	BestMatches    int            `json:"best_matches"`
	ByBand         map[string]int `json:"by_band"`
	ByCompanyCode  map[string]int `json:"by_company_code"`
	BySourceSystem map[string]int `json:"by_source_system"`
}

// GetStats returns overall matching statistics.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	var stats StatsResponse

	err := h.DB.QueryRow(`
		SELECT COUNT(*), COUNT(CASE WHEN best_match_flag = 1 THEN 1 END)
		FROM match_result
	`).Scan(&stats.TotalRows, &stats.BestMatches)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	var loadErr error
	stats.ByBand, loadErr = h.countBy("confidence_band")
	if loadErr == nil {
		stats.ByCompanyCode, loadErr = h.countBy("company_code")
	}
	if loadErr == nil {
		stats.BySourceSystem, loadErr = h.countBy("source_system")
	}
	if loadErr != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats)
}

func (h *StatsHandler) countBy(column string) (map[string]int, error) {
	rows, err := h.DB.Query(`SELECT ` + column + `, COUNT(*) FROM match_result GROUP BY ` + column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
