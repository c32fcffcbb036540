package services

import (
	"errors"
	"math/rand"

	"github.com/Shiziso/Bot/internal/content"
	"github.com/Shiziso/Bot/internal/repository"
)

// TipPicker chooses the next tip for a user, avoiding repeats from the
// last week while any unseen tips remain.
type TipPicker struct {
	pool []string
	rand *rand.Rand
}

func NewTipPicker(src rand.Source) *TipPicker {
	return &TipPicker{
		pool: content.DailyTips,
		rand: rand.New(src),
	}
}

// Pick returns a tip the user has not seen recently. When the user has
// exhausted the pool within the window, any tip may repeat.
func (p *TipPicker) Pick(telegramID int64) (string, error) {
	if len(p.pool) == 0 {
		return "", errors.New("tip pool is empty")
	}

	recent, err := repository.GetRecentTips(telegramID, 7)
	if err != nil {
		return "", err
	}
	seen := make(map[string]bool, len(recent))
	for _, t := range recent {
		seen[t] = true
	}

	fresh := make([]string, 0, len(p.pool))
	for _, t := range p.pool {
		if !seen[t] {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		fresh = p.pool
	}
	return fresh[p.rand.Intn(len(fresh))], nil
}
