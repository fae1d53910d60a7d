package store

import (
	"database/sql"
	"fmt"

	"github.com/crete-bi/account-linkage/internal/config"
	"github.com/crete-bi/account-linkage/internal/match"
)

// Store loads source/reference records and persists match results.
type Store struct {
	db *sql.DB
}

// New creates a store over an open database connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CompanyCodes returns the distinct company codes known to the CRM, used
// when a run requests ALL.
func (s *Store) CompanyCodes() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT company_code
		FROM crm_account
		WHERE company_code IS NOT NULL AND company_code != ''
		ORDER BY company_code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load company codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// LoadReferenceRecords loads CRM accounts for one company code that have no
// external linkage yet. Already-linked accounts are not re-matched.
func (s *Store) LoadReferenceRecords(companyCode string) ([]match.ReferenceRecord, error) {
	rows, err := s.db.Query(`
		SELECT
			account_id, name, email, phone,
			billing_city, billing_state, billing_postal_code,
			shipping_city, shipping_state, shipping_postal_code,
			external_code
		FROM crm_account
		WHERE external_code IS NULL
		  AND company_code = $1
	`, companyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load CRM accounts: %w", err)
	}
	defer rows.Close()

	var records []match.ReferenceRecord
	for rows.Next() {
		var r match.ReferenceRecord
		var email, phone, bCity, bState, bZip, sCity, sState, sZip, external sql.NullString

		err := rows.Scan(
			&r.AccountID, &r.Name, &email, &phone,
			&bCity, &bState, &bZip,
			&sCity, &sState, &sZip,
			&external,
		)
		if err != nil {
			return nil, err
		}

		r.Email = email.String
		r.Phone = phone.String
		r.BillingCity = bCity.String
		r.BillingState = bState.String
		r.BillingPostalCode = bZip.String
		r.ShippingCity = sCity.String
		r.ShippingState = sState.String
		r.ShippingPostalCode = sZip.String
		if external.Valid && external.String != "" {
			r.ExternalCode = &external.String
		}

		records = append(records, r)
	}
	return records, rows.Err()
}

// sourceTables maps each operational system to its customer table. Both
// tables share the same column set.
var sourceTables = map[config.SourceSystem]string{
	config.SystemBuildOps: "buildops_customer",
	config.SystemSpectrum: "spectrum_customer",
}

// LoadSourceRecords loads operational customers for one company code from
// the table backing the given system.
func (s *Store) LoadSourceRecords(system config.SourceSystem, companyCode string) ([]match.SourceRecord, error) {
	table, ok := sourceTables[system]
	if !ok {
		return nil, fmt.Errorf("no source table for system %q", system)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT id, customer_number, name, email, phone, city, state, zip
		FROM %s
		WHERE company_code = $1
	`, table), companyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s customers: %w", system, err)
	}
	defer rows.Close()

	var records []match.SourceRecord
	for rows.Next() {
		var r match.SourceRecord
		var number, email, phone, city, state, zip sql.NullString

		err := rows.Scan(&r.ID, &number, &r.Name, &email, &phone, &city, &state, &zip)
		if err != nil {
			return nil, err
		}

		r.CustomerNumber = number.String
		r.Email = email.String
		r.Phone = phone.String
		r.City = city.String
		r.State = state.String
		r.Zip = zip.String
		r.CompanyCode = companyCode
		r.SourceSystem = string(system)

		records = append(records, r)
	}
	return records, rows.Err()
}

// SaveResults appends one unit's result rows in a single transaction, so a
// unit is persisted completely or not at all and best-match groups never
// interleave with another run's rows.
func (s *Store) SaveResults(results []match.Result) (int, error) {
	if len(results) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO match_result (
			company_code, source_system, customer_id, customer_number,
			account_id, external_code,
			dist, email_score, phone_score, zip_score,
			address_city_score, state_score, multi_signal_bonus,
			total_score, confidence_band, best_match_flag, run_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		var external sql.NullString
		if r.ExternalCode != nil {
			external = sql.NullString{String: *r.ExternalCode, Valid: true}
		}

		flag := 0
		if r.BestMatchFlag {
			flag = 1
		}

		_, err := stmt.Exec(
			r.CompanyCode, r.SourceSystem, r.CustomerID, r.CustomerNumber,
			r.AccountID, external,
			r.Dist, r.EmailScore, r.PhoneScore, r.ZipScore,
			r.AddressCityScore, r.StateScore, r.MultiSignalBonus,
			r.TotalScore, string(r.ConfidenceBand), flag, r.RunDate,
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert result row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit results: %w", err)
	}
	return len(results), nil
}
