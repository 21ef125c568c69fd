package services

import (
	"crypto/rand"
	"math/big"

	"github.com/ihlicid/rondo-mundi/internal/models"
)

// pickWinner selects a winning wallet with probability proportional to
// tickets held. It draws a uniform ticket number in [1, total] from the OS
// CSPRNG (crypto/rand.Int rejection-samples, so the draw is unbiased for any
// total) and walks the participants in stored order until the cumulative
// ticket count reaches the drawn number. Ties at a cumulative boundary go to
// the earlier entrant, which follows from the walk order itself.
//
// Pure: the caller applies the result. The caller must have checked that
// total tickets > 0.
func pickWinner(participants []models.Participant) (string, error) {
	var total uint64
	for _, p := range participants {
		total += uint64(p.TicketsBought)
	}

	n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(total))
	if err != nil {
		return "", err
	}
	winningTicket := n.Uint64() + 1

	var cumulative uint64
	for _, p := range participants {
		cumulative += uint64(p.TicketsBought)
		if winningTicket <= cumulative {
			return p.WalletAddress, nil
		}
	}
	// Unreachable: winningTicket <= total == final cumulative.
	return participants[len(participants)-1].WalletAddress, nil
}
