package settlement

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidResult  = errors.New("result must be exactly 3 digits")
	ErrMissingRound   = errors.New("gameId and roundNumber are required")
	ErrBackupNotFound = errors.New("backup not found")

	// ErrRestoreIncomplete acompanha um RestoreReport com Failures preenchido
	ErrRestoreIncomplete = errors.New("restore incomplete: some balances were not restored")
)

// BackupError indica que o snapshot não pôde ser persistido.
// A liquidação aborta sem mutar nada.
type BackupError struct{ Err error }

func (e *BackupError) Error() string { return fmt.Sprintf("settlement aborted, backup failed: %v", e.Err) }
func (e *BackupError) Unwrap() error { return e.Err }

// BatchUpdateError indica que o lote de apostas falhou mesmo após retries.
// O lote é transacional: nenhuma aposta fica meio-atualizada.
type BatchUpdateError struct{ Err error }

func (e *BatchUpdateError) Error() string { return fmt.Sprintf("bet batch update failed: %v", e.Err) }
func (e *BatchUpdateError) Unwrap() error { return e.Err }
