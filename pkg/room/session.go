package room

import (
	"fmt"
	"homegame-server/pkg/holdem"
	"homegame-server/pkg/settlement"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

const maxNameLength = 32

// join seats a client
// A seat token reclaims its seat, otherwise a disconnected seat with the same name is reclaimed.
// New players can only join the lobby.
// NOTE: must only be called from the run loop
func (d *Dealer) join(c *Client, name, token string) error {
	if c.playerID != "" {
		return ErrAlreadyJoined
	}

	name = strings.TrimSpace(name)
	if token == "" && (name == "" || utf8.RuneCountInString(name) > maxNameLength) {
		return ErrInvalidName
	}

	if s := d.reclaimableSeat(name, token); s != nil {
		d.reconnect(c, s)
		return nil
	}

	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return ErrInvalidName
	}

	if d.game != nil {
		return ErrGameInProgress
	}

	for _, s := range d.seats {
		if s.client != nil && strings.EqualFold(s.name, name) {
			return ErrNameTaken
		}
	}

	if len(d.seats) >= d.opts.MaxSeats {
		return ErrRoomFull
	}

	d.counter++
	s := &seat{
		id:     fmt.Sprintf("p%d", d.counter),
		name:   name,
		client: c,
	}

	d.seats = append(d.seats, s)
	c.playerID = s.id
	if d.hostID == "" {
		d.hostID = s.id
	}

	d.log.WithField("player", s.id).WithField("host", d.hostID).Infof("%s joined", name)
	d.broadcast(&PlayerEvent{Type: TypePlayerJoined, Name: name})
	d.welcome(s)
	return nil
}

// reclaimableSeat finds the seat a joining client is returning to
// NOTE: must only be called from the run loop
func (d *Dealer) reclaimableSeat(name, token string) *seat {
	if token != "" && d.opts.Tokens != nil {
		playerID, err := d.opts.Tokens.Verify(token, d.id)
		if err != nil {
			d.log.WithError(err).Info("rejected seat token")
		} else if s := d.seatByID(playerID); s != nil {
			return s
		}
	}

	for _, s := range d.seats {
		if s.client == nil && s.name == name {
			return s
		}
	}

	return nil
}

// reconnect attaches a client to an existing seat
// NOTE: must only be called from the run loop
func (d *Dealer) reconnect(c *Client, s *seat) {
	if s.client != nil && s.client != c {
		// the seat moved to a new connection
		s.client.playerID = ""
		s.client.Send(newErrorMessage(fmt.Errorf("%s joined from another connection", s.name)))
		s.client.Disconnect("seat reclaimed")
	}

	s.client = c
	c.playerID = s.id

	if d.game != nil {
		if next, err := d.game.SitIn(s.id); err == nil {
			d.setGame(next)
		}
	}

	d.log.WithField("player", s.id).Infof("%s reconnected", s.name)
	d.welcome(s)
}

// welcome sends a seated client everything it missed
// NOTE: must only be called from the run loop
func (d *Dealer) welcome(s *seat) {
	joined := &Joined{
		Type:     TypeJoined,
		PlayerID: s.id,
		RoomID:   d.id,
	}

	if d.opts.Tokens != nil {
		token, err := d.opts.Tokens.Sign(d.id, s.id)
		if err != nil {
			d.log.WithError(err).WithField("player", s.id).Error("could not sign seat token")
		}

		joined.Token = token
	}

	s.client.Send(joined)
	for _, msg := range d.chatLog {
		s.client.Send(msg)
	}

	d.broadcastState()
	d.sendPrivateCards(s)
}

// clientDisconnected sits out the client's seat
// A player whose turn it was folds; the hand resolves if that ends it.
// NOTE: must only be called from the run loop
func (d *Dealer) clientDisconnected(c *Client) {
	s := d.seatForClient(c)
	if s == nil {
		return
	}

	s.client = nil
	d.log.WithField("player", s.id).Infof("%s disconnected", s.name)

	if d.game != nil {
		next, err := d.game.SitOut(s.id, d.deck)
		if err != nil {
			d.log.WithError(err).WithField("player", s.id).Error("could not sit out player")
		} else {
			d.transition(next)
		}
	}

	d.broadcast(&PlayerEvent{Type: TypePlayerLeft, Name: s.name})
	d.broadcastState()
}

// startGame deals every connected seat in with the same stack and starts the first hand
// buyInUnits, if set, fixes the chips-per-currency-unit rate used by the settlement.
// NOTE: must only be called from the run loop
func (d *Dealer) startGame(s *seat, buyIn, smallBlind, bigBlind int, buyInUnits float64) error {
	if s.id != d.hostID {
		return ErrNotHost
	}

	if d.game != nil {
		return ErrGameInProgress
	}

	if buyIn <= 0 || buyInUnits < 0 {
		return ErrInvalidAmount
	}

	connected := make([]*seat, 0, len(d.seats))
	players := make([]*holdem.Player, 0, len(d.seats))
	for _, seat := range d.seats {
		if seat.client == nil {
			continue
		}

		connected = append(connected, seat)
		players = append(players, holdem.NewPlayer(seat.id, seat.name, buyIn))
	}

	game, err := holdem.New(players, smallBlind, bigBlind)
	if err != nil {
		return err
	}

	first, err := game.StartHand(d.deck)
	if err != nil {
		return err
	}

	// seats that left before the game started rejoin as new players after it
	d.seats = connected
	for _, seat := range d.seats {
		seat.buyIn = buyIn
		seat.buyInUnits = buyInUnits
	}

	d.chipsPerUnit = 0
	if buyInUnits > 0 {
		d.chipsPerUnit = float64(buyIn) / buyInUnits
	}

	d.log.WithFields(logrus.Fields{
		"buyIn":      buyIn,
		"buyInUnits": buyInUnits,
		"smallBlind": smallBlind,
		"bigBlind":   bigBlind,
		"players":    len(players),
	}).Info("starting game")

	d.beginHand(first)
	return nil
}

// nextHand deals the next hand early
// NOTE: must only be called from the run loop
func (d *Dealer) nextHand(s *seat) error {
	if s.id != d.hostID {
		return ErrNotHost
	}

	if d.game == nil {
		return ErrNoGame
	}

	if d.game.Phase != holdem.Complete {
		return ErrHandNotComplete
	}

	return d.dealNextHand()
}

// rebuy adds chips to a player's stack between hands
// NOTE: must only be called from the run loop
func (d *Dealer) rebuy(s *seat, amount int) error {
	if d.game == nil {
		return ErrNoGame
	}

	if d.game.Phase.InHand() {
		return ErrRebuyDuringHand
	}

	if amount <= 0 {
		return ErrInvalidAmount
	}

	next, err := d.game.AddChips(s.id, amount)
	if err != nil {
		return err
	}

	s.buyIn += amount
	if d.chipsPerUnit > 0 {
		s.buyInUnits += float64(amount) / d.chipsPerUnit
	}

	d.log.WithField("player", s.id).WithField("buyIn", s.buyIn).Infof("rebuy of %d", amount)
	d.setGame(next)
	d.broadcastState()
	return nil
}

// kick removes a player from the lobby
// NOTE: must only be called from the run loop
func (d *Dealer) kick(s *seat, targetID string) error {
	if s.id != d.hostID {
		return ErrNotHost
	}

	if targetID == d.hostID {
		return ErrCannotKickHost
	}

	if d.game != nil {
		return ErrKickDuringGame
	}

	target := d.seatByID(targetID)
	if target == nil {
		return ErrUnknownPlayer
	}

	seats := make([]*seat, 0, len(d.seats)-1)
	for _, seat := range d.seats {
		if seat != target {
			seats = append(seats, seat)
		}
	}

	d.seats = seats
	if target.client != nil {
		target.client.playerID = ""
		target.client.Send(newErrorMessage(errKicked))
		target.client.Disconnect("kicked")
	}

	d.log.WithField("player", target.id).Infof("%s was kicked", target.name)
	d.broadcast(&PlayerEvent{Type: TypePlayerLeft, Name: target.name})
	d.broadcastState()
	return nil
}

// endSession settles the session and returns the room to the lobby
// A hand in progress is called off and every bet returned.
// NOTE: must only be called from the run loop
func (d *Dealer) endSession(s *seat) error {
	if s.id != d.hostID {
		return ErrNotHost
	}

	if d.game == nil {
		return ErrNoGame
	}

	d.cancelCountdown()
	game := d.game.AbortHand()

	balances := d.balances(game)
	payments := settlement.Calculate(balances)
	d.log.WithField("payments", len(payments)).WithField("total", settlement.Total(payments)).Info("session ended")

	d.broadcast(&Settlement{
		Type:     TypeSettlement,
		Payments: payments,
	})

	d.recordSettlement(balances, payments)
	d.resetToLobby()
	d.broadcastState()
	return nil
}

// balances converts chip stacks into a balance sheet
// With a chips-per-unit rate the sheet is in currency, otherwise in chips.
// NOTE: must only be called from the run loop
func (d *Dealer) balances(game *holdem.GameState) []settlement.Balance {
	balances := make([]settlement.Balance, 0, len(game.Players))
	for _, p := range game.Players {
		s := d.seatByID(p.ID)
		if s == nil {
			continue
		}

		b := settlement.Balance{
			ID:      p.ID,
			Name:    s.name,
			BuyIn:   float64(s.buyIn),
			CashOut: float64(p.Chips),
		}

		if d.chipsPerUnit > 0 {
			b.BuyIn = s.buyInUnits
			b.CashOut = float64(p.Chips) / d.chipsPerUnit
		}

		balances = append(balances, b)
	}

	return balances
}

// resetToLobby drops the game
// Disconnected seats are released; the host keeps their seat.
// NOTE: must only be called from the run loop
func (d *Dealer) resetToLobby() {
	d.setGame(nil)
	d.handOpen = false
	d.chipsPerUnit = 0

	seats := make([]*seat, 0, len(d.seats))
	for _, s := range d.seats {
		if s.client == nil && s.id != d.hostID {
			continue
		}

		s.buyIn = 0
		s.buyInUnits = 0
		seats = append(seats, s)
	}

	d.seats = seats
}
