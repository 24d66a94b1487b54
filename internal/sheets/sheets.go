// Package sheets implements the remote transaction store on top of a Google
// Sheets spreadsheet with a single Transactions tab. Each transaction is one
// row; the breakdown travels as a JSON cell.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/store"
)

const (
	// DefaultSheetName is the tab holding the transaction table.
	DefaultSheetName = "Transactions"

	// probeTimeout bounds the reachability check so an unreachable remote
	// answers quickly with "offline" instead of hanging the caller.
	probeTimeout = 5 * time.Second
)

// Store is a Google Sheets-backed store.RemoteStore.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetName     string
	log           zerolog.Logger

	mu      sync.Mutex
	sheetID int64 // numeric tab ID, resolved lazily for row deletion
	haveID  bool
}

// New creates a Sheets store for the given spreadsheet. Credentials are
// picked up from the supplied client options (service-account JSON file or
// application default credentials).
func New(ctx context.Context, spreadsheetID, sheetName string, log zerolog.Logger, opts ...option.ClientOption) (*Store, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet ID is required")
	}
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		log:           log,
	}, nil
}

// TestConnection implements store.RemoteStore with a cheap metadata fetch.
func (s *Store) TestConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	if err != nil {
		s.log.Debug().Err(err).Msg("Sheets connection probe failed")
		return false
	}
	return true
}

// GetAll implements store.RemoteStore. Malformed rows are skipped with a
// warning rather than failing the whole fetch.
func (s *Store) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	readRange := fmt.Sprintf("%s!A2:L", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read transactions: %w: %v", domain.ErrRemoteUnreachable, err)
	}

	txs := make([]domain.Transaction, 0, len(resp.Values))
	for i, row := range resp.Values {
		tx, err := transactionFromRow(row)
		if err != nil {
			s.log.Warn().Err(err).Int("row", i+2).Msg("Skipping malformed sheet row")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Add implements store.RemoteStore by appending a row.
func (s *Store) Add(ctx context.Context, tx domain.Transaction) (store.Outcome, error) {
	row, err := rowFromTransaction(tx)
	if err != nil {
		return store.OutcomeFailed, err
	}

	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetName+"!A:L", &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return s.outcome(err, "append", tx.ID)
}

// Update implements store.RemoteStore by rewriting the row holding the same
// ID. A missing ID is a failure, not an implicit add.
func (s *Store) Update(ctx context.Context, tx domain.Transaction) (store.Outcome, error) {
	rowIdx, err := s.findRow(ctx, tx.ID)
	if err != nil {
		return s.outcome(err, "locate", tx.ID)
	}
	if rowIdx < 0 {
		return store.OutcomeFailed, fmt.Errorf("sheets: update %s: %w", tx.ID, domain.ErrNotFound)
	}

	row, err := rowFromTransaction(tx)
	if err != nil {
		return store.OutcomeFailed, err
	}

	writeRange := fmt.Sprintf("%s!A%d:L%d", s.sheetName, rowIdx+2, rowIdx+2)
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return s.outcome(err, "update", tx.ID)
}

// Delete implements store.RemoteStore by removing the row holding the ID.
// Deleting an absent ID reports OK, matching the engine's tolerance.
func (s *Store) Delete(ctx context.Context, id string) (store.Outcome, error) {
	rowIdx, err := s.findRow(ctx, id)
	if err != nil {
		return s.outcome(err, "locate", id)
	}
	if rowIdx < 0 {
		return store.OutcomeOK, nil
	}

	sheetID, err := s.resolveSheetID(ctx)
	if err != nil {
		return s.outcome(err, "resolve sheet", id)
	}

	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIdx + 1), // +1 for the header row
					EndIndex:   int64(rowIdx + 2),
				},
			},
		}},
	}).Context(ctx).Do()
	return s.outcome(err, "delete", id)
}

// findRow returns the zero-based data row index of the transaction ID, or -1.
func (s *Store) findRow(ctx context.Context, id string) (int, error) {
	idRange := fmt.Sprintf("%s!A2:A", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, idRange).
		Context(ctx).
		Do()
	if err != nil {
		return -1, fmt.Errorf("sheets: read IDs: %w: %v", domain.ErrRemoteUnreachable, err)
	}
	for i, row := range resp.Values {
		if len(row) > 0 && fmt.Sprint(row[0]) == id {
			return i, nil
		}
	}
	return -1, nil
}

func (s *Store) resolveSheetID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.haveID {
		return s.sheetID, nil
	}

	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: read spreadsheet metadata: %w: %v", domain.ErrRemoteUnreachable, err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == s.sheetName {
			s.sheetID = sheet.Properties.SheetId
			s.haveID = true
			return s.sheetID, nil
		}
	}
	return 0, fmt.Errorf("sheets: tab %q not found", s.sheetName)
}

// outcome classifies a mutation error. A deadline or cancellation means the
// request may or may not have landed, which is reported as Unknown so the
// next reconciliation pass settles it.
func (s *Store) outcome(err error, op, id string) (store.Outcome, error) {
	if err == nil {
		return store.OutcomeOK, nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return store.OutcomeUnknown, fmt.Errorf("sheets: %s %s: result unobservable: %w", op, id, err)
	}
	return store.OutcomeFailed, fmt.Errorf("sheets: %s %s: %w", op, id, err)
}

var _ store.RemoteStore = (*Store)(nil)
