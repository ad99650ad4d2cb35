package room

import (
	"context"
	"homegame-server/pkg/history"
	"homegame-server/pkg/holdem"
	"homegame-server/pkg/settlement"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// action applies a betting action for the seat
// NOTE: must only be called from the run loop
func (d *Dealer) action(s *seat, kind string, amount int) error {
	if d.game == nil {
		return ErrNoGame
	}

	action, err := holdem.ParseAction(kind, amount)
	if err != nil {
		return err
	}

	next, err := d.game.ApplyAction(s.id, action, d.deck)
	if err != nil {
		return err
	}

	d.log.WithFields(logrus.Fields{
		"player": s.id,
		"action": action.Kind(),
		"amount": amount,
		"phase":  next.Phase,
	}).Debug("action applied")

	d.transition(next)
	d.broadcastState()
	return nil
}

// dealNextHand moves the button and deals
// NOTE: must only be called from the run loop
func (d *Dealer) dealNextHand() error {
	d.cancelCountdown()

	game := d.game.SitOutBusted().AdvanceDealer()
	if game.PlayersWithChips() < 2 {
		return ErrInsufficientPlayers
	}

	next, err := game.StartHand(d.deck)
	if err != nil {
		return err
	}

	d.beginHand(next)
	return nil
}

// beginHand publishes a freshly dealt hand
// A hand can finish as it is dealt when the blinds put everyone all-in.
// NOTE: must only be called from the run loop
func (d *Dealer) beginHand(next *holdem.GameState) {
	d.handNumber++
	d.handOpen = true
	d.deckHash = d.deck.HashCode()
	d.log.WithFields(logrus.Fields{
		"hand":     d.handNumber,
		"dealer":   next.DealerIndex,
		"deckHash": d.deckHash,
	}).Info("dealing hand")

	d.transition(next)
	d.broadcastState()
	for _, s := range d.seats {
		d.sendPrivateCards(s)
	}
}

// resolveHand pays out a completed hand and starts the countdown to the next one
// NOTE: must only be called from the run loop
func (d *Dealer) resolveHand() {
	d.handOpen = false

	game := d.game
	showdown := game.IsShowdown()

	var (
		winners []holdem.PotWinner
		err     error
	)

	if showdown {
		winners, err = game.EvaluateHands(d.opts.Oracle)
	} else {
		winners, err = game.AwardToLastPlayer()
	}

	if err != nil {
		// the chips stay where they are; the host can still end the session
		d.log.WithError(err).WithField("type", "exception").Error("could not resolve hand")
		return
	}

	pot := game.PotTotal()
	resolved, payouts := game.DistributeWinnings(winners)
	d.setGame(resolved)

	result := &HandResult{
		Type:    TypeHandResult,
		Winners: make([]Winner, 0, len(payouts)),
		Hands:   holdem.HandDescriptions(winners),
	}

	for _, payout := range payouts {
		result.Winners = append(result.Winners, Winner{
			PlayerID:        payout.PlayerID,
			HandDescription: payout.HandDescription,
			Amount:          payout.Amount,
		})
	}

	if showdown {
		result.ShowdownCards = showdownCards(game)
	}

	d.log.WithFields(logrus.Fields{
		"hand":     d.handNumber,
		"pot":      pot,
		"showdown": showdown,
		"winners":  len(result.Winners),
	}).Info("hand resolved")

	d.broadcast(result)
	d.recordHand(resolved, pot, showdown, payouts)

	if resolved.PlayersWithChips() >= 2 {
		d.startCountdown(d.opts.NextHandDelay)
	} else {
		d.log.Info("not enough players with chips for another hand")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) recordHand(game *holdem.GameState, pot int, showdown bool, payouts []holdem.Payout) {
	names := make(map[string]string, len(game.Players))
	for _, p := range game.Players {
		names[p.ID] = p.Name
	}

	hand := &history.Hand{
		ID:       uuid.New(),
		RoomID:   d.id,
		Number:   d.handNumber,
		DeckHash: d.deckHash,
		Board:    game.CommunityCards,
		Showdown: showdown,
		Pot:      pot,
		Payouts:  payouts,
		Names:    names,
		State:    game,
		Ended:    time.Now(),
	}

	if err := d.opts.Recorder.RecordHand(context.Background(), hand); err != nil {
		d.log.WithError(err).WithField("hand", d.handNumber).Warn("could not record hand")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) recordSettlement(balances []settlement.Balance, payments []settlement.Payment) {
	s := &history.Settlement{
		ID:           uuid.New(),
		RoomID:       d.id,
		ChipsPerUnit: d.chipsPerUnit,
		Balances:     balances,
		Payments:     payments,
		Created:      time.Now(),
	}

	if err := d.opts.Recorder.RecordSettlement(context.Background(), s); err != nil {
		d.log.WithError(err).Warn("could not record settlement")
	}
}
