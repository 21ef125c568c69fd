package services

import (
	"math"
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"

	"github.com/ihlicid/rondo-mundi/internal/models"
)

// Bounds on a single ticket purchase.
const (
	MinTicketsPerPurchase = 1
	MaxTicketsPerPurchase = 10000
)

// Registry is the store of all lotteries. Every operation is atomic with
// respect to every other operation, and every returned Lottery is a snapshot
// copy of registry-owned state.
type Registry interface {
	Create(admin string, ticketPrice uint64, endTime *string) models.Lottery
	Get(id string) (models.Lottery, error)
	List() []models.Lottery
	BuyTickets(id, walletAddress string, tickets uint32) (models.Lottery, error)
	DrawWinner(id, admin string) (models.Lottery, error)
}

// LotteryRegistry is the in-memory Registry. A single mutex serializes all
// operations across all lotteries; lock hold time is bounded by map and slice
// work only, so the global lock stays cheap at this scale.
type LotteryRegistry struct {
	mu        sync.Mutex
	lotteries map[string]*models.Lottery

	newID func() string
	now   func() string
}

// NewLotteryRegistry creates an empty registry using UUIDv4 identifiers and
// RFC3339 UTC creation timestamps.
func NewLotteryRegistry() *LotteryRegistry {
	return &LotteryRegistry{
		lotteries: make(map[string]*models.Lottery),
		newID:     uuid.NewString,
		now: func() string {
			return time.Now().UTC().Format(time.RFC3339)
		},
	}
}

// Create opens a new lottery administered by admin at the given ticket price.
// endTime is informational only; nothing in the registry enforces it.
func (r *LotteryRegistry) Create(admin string, ticketPrice uint64, endTime *string) models.Lottery {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := &models.Lottery{
		ID:           r.newID(),
		Admin:        admin,
		TicketPrice:  ticketPrice,
		Participants: make([]models.Participant, 0),
		IsActive:     true,
		PrizePool:    0,
		CreatedAt:    r.now(),
		EndTime:      endTime,
	}
	r.lotteries[l.ID] = l

	logger.Infof("Created lottery %s (admin=%s, ticket_price=%d)", l.ID, admin, ticketPrice)
	return l.Clone()
}

// Get returns a snapshot of the lottery with the given id.
func (r *LotteryRegistry) Get(id string) (models.Lottery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lotteries[id]
	if !ok {
		return models.Lottery{}, ErrLotteryNotFound
	}
	return l.Clone(), nil
}

// List returns a snapshot of every lottery. Order is unspecified.
func (r *LotteryRegistry) List() []models.Lottery {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Lottery, 0, len(r.lotteries))
	for _, l := range r.lotteries {
		out = append(out, l.Clone())
	}
	return out
}

// BuyTickets adds tickets tickets to walletAddress's stake in the lottery and
// grows the prize pool accordingly. A wallet that already participates has its
// count incremented; a new wallet is appended, preserving first-purchase
// order. Input is validated before any state is touched.
func (r *LotteryRegistry) BuyTickets(id, walletAddress string, tickets uint32) (models.Lottery, error) {
	if tickets < MinTicketsPerPurchase {
		return models.Lottery{}, validationErrorf("Must buy at least %d ticket", MinTicketsPerPurchase)
	}
	if tickets > MaxTicketsPerPurchase {
		return models.Lottery{}, validationErrorf("Cannot buy more than %d tickets at once", MaxTicketsPerPurchase)
	}
	if walletAddress == "" {
		return models.Lottery{}, validationErrorf("Wallet address is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lotteries[id]
	if !ok {
		return models.Lottery{}, ErrLotteryNotFound
	}
	if !l.IsActive {
		return models.Lottery{}, ErrLotteryInactive
	}

	cost, ok := checkedMul(l.TicketPrice, uint64(tickets))
	if !ok {
		return models.Lottery{}, ErrOverflow
	}
	pool, ok := checkedAdd(l.PrizePool, cost)
	if !ok {
		return models.Lottery{}, ErrOverflow
	}

	// All overflow checks happen before any mutation so a failed purchase
	// leaves the lottery untouched, the ticket counter included.
	existing := -1
	for i := range l.Participants {
		if l.Participants[i].WalletAddress == walletAddress {
			if uint64(l.Participants[i].TicketsBought)+uint64(tickets) > math.MaxUint32 {
				return models.Lottery{}, ErrOverflow
			}
			existing = i
			break
		}
	}

	l.PrizePool = pool
	if existing >= 0 {
		l.Participants[existing].TicketsBought += tickets
	} else {
		l.Participants = append(l.Participants, models.Participant{
			WalletAddress: walletAddress,
			TicketsBought: tickets,
		})
	}

	return l.Clone(), nil
}

// DrawWinner picks a winner weighted by tickets held and closes the lottery.
// Only the admin recorded at creation may draw, and only once: a successful
// draw flips is_active to false permanently.
func (r *LotteryRegistry) DrawWinner(id, admin string) (models.Lottery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lotteries[id]
	if !ok {
		return models.Lottery{}, ErrLotteryNotFound
	}
	if l.Admin != admin {
		return models.Lottery{}, ErrNotAdmin
	}
	if !l.IsActive {
		return models.Lottery{}, ErrLotteryEnded
	}
	if len(l.Participants) == 0 {
		return models.Lottery{}, ErrNoParticipants
	}
	if l.TotalTickets() == 0 {
		return models.Lottery{}, ErrNoTicketsSold
	}

	winner, err := pickWinner(l.Participants)
	if err != nil {
		return models.Lottery{}, err
	}
	l.Winner = &winner
	l.IsActive = false

	logger.Infof("Lottery %s concluded: winner=%s, prize_pool=%d", l.ID, winner, l.PrizePool)
	return l.Clone(), nil
}

func checkedMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

func checkedAdd(a, b uint64) (uint64, bool) {
	s := a + b
	if s < a {
		return 0, false
	}
	return s, true
}
