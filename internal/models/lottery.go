package models

// Lottery is a single draw instance: one admin, a fixed ticket price, the
// participants who bought in, and (after a draw) a winner. The prize pool
// accrues ticket_price per ticket sold and never shrinks while active.
type Lottery struct {
	ID           string        `json:"id"`
	Admin        string        `json:"admin"`
	TicketPrice  uint64        `json:"ticket_price"`
	Participants []Participant `json:"participants"`
	IsActive     bool          `json:"is_active"`
	PrizePool    uint64        `json:"prize_pool"`
	Winner       *string       `json:"winner"`
	CreatedAt    string        `json:"created_at"`
	EndTime      *string       `json:"end_time"`
}

// Participant is one wallet's stake in a lottery. The wallet address is the
// participant's identity; a wallet appears at most once per lottery.
type Participant struct {
	WalletAddress string `json:"wallet_address"`
	TicketsBought uint32 `json:"tickets_bought"`
}

// Clone returns a deep copy of the lottery. The registry hands out clones so
// no caller ever holds a reference into registry-owned state.
func (l *Lottery) Clone() Lottery {
	c := *l
	c.Participants = make([]Participant, len(l.Participants))
	copy(c.Participants, l.Participants)
	if l.Winner != nil {
		w := *l.Winner
		c.Winner = &w
	}
	if l.EndTime != nil {
		e := *l.EndTime
		c.EndTime = &e
	}
	return c
}

// TotalTickets sums tickets bought across all participants.
func (l *Lottery) TotalTickets() uint64 {
	var total uint64
	for _, p := range l.Participants {
		total += uint64(p.TicketsBought)
	}
	return total
}
