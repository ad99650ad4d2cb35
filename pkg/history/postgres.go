package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey is returned when a record was already stored
var ErrDuplicateKey = errors.New("record already exists")

// Postgres stores history in postgres
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a recorder for the database
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Error("could not rollback transaction")
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return ErrDuplicateKey
		}

		return err
	}

	return tx.Commit()
}

// RecordHand implements Recorder
func (p *Postgres) RecordHand(ctx context.Context, hand *Hand) error {
	state, err := json.Marshal(hand.State)
	if err != nil {
		return err
	}

	board := make([]string, len(hand.Board))
	for i, card := range hand.Board {
		board[i] = card.String()
	}

	return withTx(ctx, p.db, func(tx *sql.Tx) error {
		const query = `
INSERT INTO hands (id, room_id, hand_number, deck_hash, board, showdown, pot, state, ended)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

		if _, err := tx.ExecContext(ctx, query, hand.ID, hand.RoomID, hand.Number, hand.DeckHash,
			pq.Array(board), hand.Showdown, hand.Pot, state, hand.Ended.UTC()); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO hand_payouts (hand_id, player_id, player_name, amount, hand_description)
VALUES ($1, $2, $3, $4, $5)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, payout := range hand.Payouts {
			if _, err := stmt.ExecContext(ctx, hand.ID, payout.PlayerID, hand.Names[payout.PlayerID], payout.Amount, payout.HandDescription); err != nil {
				return err
			}
		}

		return nil
	})
}

// RecordSettlement implements Recorder
func (p *Postgres) RecordSettlement(ctx context.Context, s *Settlement) error {
	balances, err := json.Marshal(s.Balances)
	if err != nil {
		return err
	}

	return withTx(ctx, p.db, func(tx *sql.Tx) error {
		const query = `
INSERT INTO settlements (id, room_id, chips_per_unit, balances, created)
VALUES ($1, $2, $3, $4, $5)`

		if _, err := tx.ExecContext(ctx, query, s.ID, s.RoomID, s.ChipsPerUnit, balances, s.Created.UTC()); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO settlement_payments (settlement_id, seq, from_id, from_name, to_id, to_name, amount)
VALUES ($1, $2, $3, $4, $5, $6, $7)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, payment := range s.Payments {
			if _, err := stmt.ExecContext(ctx, s.ID, i, payment.FromID, payment.From, payment.ToID, payment.To, payment.Amount); err != nil {
				return err
			}
		}

		return nil
	})
}
