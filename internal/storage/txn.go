package storage

import (
	"log"

	"github.com/katalvlaran/graphdb/internal/txn"
)

// Begin opens a transaction over this engine.
func (e *Engine) Begin() error { return e.tx.Begin() }

// Commit discards the most recent snapshot, keeping the transaction open.
func (e *Engine) Commit() error { return e.tx.Commit() }

// Rollback undoes the most recent mutation by restoring the snapshot
// taken just before it.
func (e *Engine) Rollback() error {
	snap, ok, err := e.tx.Rollback()
	if err != nil {
		return err
	}
	if !ok {
		log.Println("graphdb: rollback: nothing to roll back")
		return nil
	}
	e.restoreSnapshot(snap.(snapshot))
	return e.save()
}

// Stop clears the snapshot stack and moves the transaction to the Stopped
// state.
func (e *Engine) Stop() error { return e.tx.Stop() }

// TxState reports the engine's current transaction state.
func (e *Engine) TxState() txn.State { return e.tx.State() }
